// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"context"
	"fmt"
	"math/big"

	"github.com/luxfi/geth/ethclient"
	"github.com/luxfi/xtoken-deploy/pkg/config"
	"github.com/luxfi/xtoken-deploy/pkg/constants"
)

// Client is an RPC connection to the network being deployed to
type Client struct {
	*ethclient.Client
	Network config.Network
	ChainID *big.Int
}

// Dial connects to [network] and checks it reports the expected chain ID
func Dial(ctx context.Context, network config.Network) (*Client, error) {
	client, err := ethclient.DialContext(ctx, network.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", network.URL, err)
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain ID from %s: %w", network.URL, err)
	}
	if err := VerifyChainID(network, chainID); err != nil {
		client.Close()
		return nil, err
	}
	return &Client{
		Client:  client,
		Network: network,
		ChainID: chainID,
	}, nil
}

// VerifyChainID accepts any chain when the network does not declare one
func VerifyChainID(network config.Network, actual *big.Int) error {
	if network.ChainID == 0 {
		return nil
	}
	expected := new(big.Int).SetUint64(network.ChainID)
	if actual == nil || expected.Cmp(actual) != 0 {
		return fmt.Errorf("%w: network %s expects %s, node reports %v", constants.ErrChainIDMismatch, network.Name, expected, actual)
	}
	return nil
}
