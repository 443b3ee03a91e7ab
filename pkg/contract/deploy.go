// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"bytes"
	"context"
	"fmt"

	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/accounts/abi/bind"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	"github.com/luxfi/xtoken-deploy/pkg/artifacts"
	"github.com/luxfi/xtoken-deploy/pkg/constants"
)

// Backend is the chain access needed to send a creation tx and wait for it
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Factory deploys instances of one compiled contract
type Factory struct {
	name     string
	abi      abi.ABI
	bytecode []byte
	backend  Backend
	opts     *bind.TransactOpts
}

// Deployment is the handle returned once the contract code is on chain
type Deployment struct {
	Name    string
	Address common.Address
	Tx      *types.Transaction
	Receipt *types.Receipt
}

func NewFactory(artifact *artifacts.Artifact, backend Backend, opts *bind.TransactOpts) (*Factory, error) {
	parsed, err := abi.JSON(bytes.NewReader(artifact.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s ABI: %w", artifact.ContractName, err)
	}
	bytecode, err := artifact.CreationCode()
	if err != nil {
		return nil, err
	}
	return &Factory{
		name:     artifact.ContractName,
		abi:      parsed,
		bytecode: bytecode,
		backend:  backend,
		opts:     opts,
	}, nil
}

func (f *Factory) Name() string {
	return f.name
}

// Deploy sends the creation tx with the given constructor arguments and waits
// until it is mined and the contract code is present.
func (f *Factory) Deploy(ctx context.Context, args ...interface{}) (*Deployment, error) {
	opts := *f.opts
	opts.Context = ctx
	address, tx, _, err := bind.DeployContract(&opts, f.abi, f.bytecode, f.backend, args...)
	if err != nil {
		return nil, TransactionError(tx, err, "failed to deploy %s", f.name)
	}
	receipt, err := bind.WaitMined(ctx, f.backend, tx)
	if err != nil {
		return nil, TransactionError(tx, err, "failed waiting for %s deployment", f.name)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, TransactionError(tx, constants.ErrDeploymentReverted, "failed to deploy %s", f.name)
	}
	if receipt.ContractAddress != (common.Address{}) {
		address = receipt.ContractAddress
	}
	code, err := f.backend.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, TransactionError(tx, err, "failed to read %s code at %s", f.name, address.Hex())
	}
	if len(code) == 0 {
		return nil, TransactionError(tx, constants.ErrNoCodeAfterDeploy, "failed to deploy %s at %s", f.name, address.Hex())
	}
	return &Deployment{
		Name:    f.name,
		Address: address,
		Tx:      tx,
		Receipt: receipt,
	}, nil
}
