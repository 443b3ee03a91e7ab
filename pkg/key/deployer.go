// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package key resolves the account that signs and pays for the deployment.
package key

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/accounts/abi/bind"
	"github.com/luxfi/geth/common"
	bip39 "github.com/luxfi/go-bip39"
	"github.com/luxfi/xtoken-deploy/pkg/constants"
)

type Source string

const (
	SourcePrivateKey  Source = "private-key"
	SourceMnemonic    Source = "mnemonic"
	SourceDevMnemonic Source = "hardhat-dev-mnemonic"
)

type Options struct {
	PrivateKey   string
	Mnemonic     string
	AccountIndex uint32
	// AllowDevKey falls back to the public Hardhat development mnemonic.
	// Only local networks should set it.
	AllowDevKey bool
}

type Deployer struct {
	Key     *ecdsa.PrivateKey
	Address common.Address
	Source  Source
	// Path is the derivation path, empty for raw private keys
	Path string
}

// Resolve picks the deployer key.
// Priority: private key > mnemonic > Hardhat dev mnemonic (local networks only)
func Resolve(opts Options) (*Deployer, error) {
	if opts.PrivateKey != "" {
		key, err := FromPrivateKey(opts.PrivateKey)
		if err != nil {
			return nil, err
		}
		return newDeployer(key, SourcePrivateKey, ""), nil
	}
	mnemonic, source := opts.Mnemonic, SourceMnemonic
	if mnemonic == "" {
		if !opts.AllowDevKey {
			return nil, constants.ErrNoDeployerKey
		}
		mnemonic, source = constants.HardhatDevMnemonic, SourceDevMnemonic
	}
	key, err := FromMnemonic(mnemonic, opts.AccountIndex)
	if err != nil {
		return nil, err
	}
	return newDeployer(key, source, fmt.Sprintf(constants.EthereumDerivationPath, opts.AccountIndex)), nil
}

func newDeployer(key *ecdsa.PrivateKey, source Source, path string) *Deployer {
	return &Deployer{
		Key:     key,
		Address: common.Address(crypto.PubkeyToAddress(key.PublicKey)),
		Source:  source,
		Path:    path,
	}
}

// Transactor returns signing options bound to [chainID]
func (d *Deployer) Transactor(chainID *big.Int) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(d.Key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	return opts, nil
}

// FromPrivateKey parses a hex private key, with or without 0x prefix
func FromPrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// FromMnemonic derives m/44'/60'/0'/0/[accountIndex] from a BIP39 mnemonic
func FromMnemonic(mnemonic string, accountIndex uint32) (*ecdsa.PrivateKey, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, "")
	masterKey, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}
	path := []uint32{
		hdkeychain.HardenedKeyStart + 44,
		hdkeychain.HardenedKeyStart + 60,
		hdkeychain.HardenedKeyStart + 0,
		0,
		accountIndex,
	}
	child := masterKey
	for _, index := range path {
		child, err = child.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("failed to derive key: %w", err)
		}
	}
	ecPrivKey, err := child.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get EC private key: %w", err)
	}
	return ecPrivKey.ToECDSA(), nil
}
