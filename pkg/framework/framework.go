// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package framework ties artifacts, the network connection and the deployer
// key together into a deploy.Runtime.
package framework

import (
	"context"

	"github.com/luxfi/geth/accounts/abi/bind"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/xtoken-deploy/pkg/artifacts"
	"github.com/luxfi/xtoken-deploy/pkg/config"
	"github.com/luxfi/xtoken-deploy/pkg/contract"
	"github.com/luxfi/xtoken-deploy/pkg/deploy"
	"github.com/luxfi/xtoken-deploy/pkg/key"
	"github.com/luxfi/xtoken-deploy/pkg/network"
	"github.com/spf13/afero"
)

type Runtime struct {
	store   *artifacts.Store
	backend contract.Backend
	opts    *bind.TransactOpts
	log     luxlog.Logger
	close   func()
}

// New resolves the deployer key, connects to the configured network and
// opens the artifacts directory on [fs].
func New(ctx context.Context, cfg *config.Config, fs afero.Fs, log luxlog.Logger) (*Runtime, error) {
	deployer, err := key.Resolve(key.Options{
		PrivateKey:   cfg.Network.PrivateKey,
		Mnemonic:     cfg.Network.Mnemonic,
		AccountIndex: cfg.Network.AccountIndex,
		AllowDevKey:  cfg.Network.IsLocal(),
	})
	if err != nil {
		return nil, err
	}
	client, err := network.Dial(ctx, cfg.Network)
	if err != nil {
		return nil, err
	}
	opts, err := deployer.Transactor(client.ChainID)
	if err != nil {
		client.Close()
		return nil, err
	}
	log.Debug("connected",
		luxlog.String("network", cfg.Network.Name),
		luxlog.String("rpc", cfg.Network.URL),
		luxlog.String("chainID", client.ChainID.String()),
		luxlog.String("deployer", deployer.Address.Hex()),
		luxlog.String("keySource", string(deployer.Source)),
	)
	return &Runtime{
		store:   artifacts.NewStore(fs, cfg.ArtifactsDir),
		backend: client,
		opts:    opts,
		log:     log,
		close:   client.Close,
	}, nil
}

// GetContractFactory reads the artifact for [name] and binds it to the
// network connection and the deployer key.
func (r *Runtime) GetContractFactory(_ context.Context, name string) (deploy.ContractFactory, error) {
	artifact, err := r.store.Read(name)
	if err != nil {
		return nil, err
	}
	r.log.Debug("resolved artifact",
		luxlog.String("contract", artifact.FullyQualifiedName()),
		luxlog.String("artifacts", r.store.Root()),
	)
	factory, err := contract.NewFactory(artifact, r.backend, r.opts)
	if err != nil {
		return nil, err
	}
	return factory, nil
}

func (r *Runtime) Close() {
	if r.close != nil {
		r.close()
	}
}
