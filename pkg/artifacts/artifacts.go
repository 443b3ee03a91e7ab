// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package artifacts reads compiled contract artifacts in the Hardhat layout:
// <root>/<sourceName>/<ContractName>.json
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/luxfi/geth/common/hexutil"
	"github.com/luxfi/xtoken-deploy/pkg/constants"
	"github.com/spf13/afero"
)

type LinkReference struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// LinkReferences maps source name -> library name -> placeholder positions
type LinkReferences map[string]map[string][]LinkReference

type Artifact struct {
	Format                 string          `json:"_format"`
	ContractName           string          `json:"contractName"`
	SourceName             string          `json:"sourceName"`
	ABI                    json.RawMessage `json:"abi"`
	Bytecode               string          `json:"bytecode"`
	DeployedBytecode       string          `json:"deployedBytecode"`
	LinkReferences         LinkReferences  `json:"linkReferences"`
	DeployedLinkReferences LinkReferences  `json:"deployedLinkReferences"`
}

func (a *Artifact) FullyQualifiedName() string {
	return a.SourceName + ":" + a.ContractName
}

// CreationCode returns the decoded creation bytecode
func (a *Artifact) CreationCode() ([]byte, error) {
	code := strings.TrimSpace(a.Bytecode)
	if !strings.HasPrefix(code, "0x") && !strings.HasPrefix(code, "0X") {
		code = "0x" + code
	}
	bs, err := hexutil.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode in artifact %s: %w", a.FullyQualifiedName(), err)
	}
	return bs, nil
}

// Validate checks the artifact can be deployed as is
func (a *Artifact) Validate() error {
	code := strings.TrimPrefix(strings.TrimSpace(a.Bytecode), "0x")
	if code == "" {
		return fmt.Errorf("%s: %w", a.FullyQualifiedName(), constants.ErrNotDeployable)
	}
	if libs := a.LinkReferences.Libraries(); len(libs) > 0 {
		return fmt.Errorf("%s: %w: %s", a.FullyQualifiedName(), constants.ErrUnlinkedLibraries, strings.Join(libs, ", "))
	}
	return nil
}

// Libraries returns the fully qualified library names, sorted
func (l LinkReferences) Libraries() []string {
	libs := []string{}
	for source, byName := range l {
		for name := range byName {
			libs = append(libs, source+":"+name)
		}
	}
	sort.Strings(libs)
	return libs
}

type Store struct {
	fs   afero.Fs
	root string
}

func NewStore(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, root: root}
}

func (s *Store) Root() string {
	return s.root
}

// Read resolves an artifact by bare contract name ("XToken") or by fully
// qualified name ("contracts/XToken.sol:XToken") and validates it.
func (s *Store) Read(name string) (*Artifact, error) {
	exists, err := afero.DirExists(s.fs, s.root)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: artifacts directory %q does not exist, compile the contracts first", constants.ErrArtifactNotFound, s.root)
	}
	var artifact *Artifact
	if i := strings.LastIndex(name, ":"); i >= 0 {
		artifact, err = s.readFullyQualified(name[:i], name[i+1:])
	} else {
		artifact, err = s.readByName(name)
	}
	if err != nil {
		return nil, err
	}
	if err := artifact.Validate(); err != nil {
		return nil, err
	}
	return artifact, nil
}

func (s *Store) readFullyQualified(sourceName, contractName string) (*Artifact, error) {
	path := filepath.Join(s.root, filepath.FromSlash(sourceName), contractName+".json")
	artifact, err := s.load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s:%s", constants.ErrArtifactNotFound, sourceName, contractName)
		}
		return nil, err
	}
	if artifact.ContractName != contractName {
		return nil, fmt.Errorf("%w: %s:%s", constants.ErrArtifactNotFound, sourceName, contractName)
	}
	return artifact, nil
}

func (s *Store) readByName(contractName string) (*Artifact, error) {
	var matches []*Artifact
	fileName := contractName + ".json"
	err := afero.Walk(s.fs, s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == constants.BuildInfoDir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(info.Name(), constants.DebugFileSuffix) || info.Name() != fileName {
			return nil
		}
		artifact, err := s.load(path)
		if err != nil {
			return err
		}
		if artifact.ContractName == contractName {
			matches = append(matches, artifact)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed scanning artifacts in %s: %w", s.root, err)
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", constants.ErrArtifactNotFound, contractName)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, m.FullyQualifiedName())
		}
		sort.Strings(names)
		return nil, fmt.Errorf("%w %q, use one of: %s", constants.ErrAmbiguousArtifact, contractName, strings.Join(names, ", "))
	}
}

func (s *Store) load(path string) (*Artifact, error) {
	bs, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, err
	}
	var artifact Artifact
	if err := json.Unmarshal(bs, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	return &artifact, nil
}
