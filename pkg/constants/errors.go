// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "errors"

var (
	ErrArtifactNotFound  = errors.New("artifact not found")
	ErrAmbiguousArtifact = errors.New("multiple artifacts match contract name")
	ErrNotDeployable     = errors.New("contract has no creation bytecode (abstract contract or interface)")
	ErrUnlinkedLibraries = errors.New("contract bytecode has unlinked library references")
	ErrNoDeployerKey     = errors.New("no deployer key configured: set private-key or mnemonic (XTOKEN_PRIVATE_KEY / XTOKEN_MNEMONIC)")
	ErrUnknownNetwork    = errors.New("unknown network")
	ErrChainIDMismatch   = errors.New("chain ID mismatch")
)

var (
	ErrDeploymentReverted = errors.New("deployment transaction reverted")
	ErrNoCodeAfterDeploy  = errors.New("no contract code after deployment")
)
