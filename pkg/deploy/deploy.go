// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package deploy is the deployment entry point: resolve the factory for a
// named contract, deploy it with no constructor arguments and report the
// address it landed at.
package deploy

import (
	"context"
	"fmt"

	luxlog "github.com/luxfi/log"
	"github.com/luxfi/xtoken-deploy/pkg/constants"
	"github.com/luxfi/xtoken-deploy/pkg/contract"
	"github.com/luxfi/xtoken-deploy/pkg/ux"
)

// Runtime resolves contract factories by name
type Runtime interface {
	GetContractFactory(ctx context.Context, name string) (ContractFactory, error)
}

// ContractFactory deploys one contract and waits for it to be on chain
type ContractFactory interface {
	Deploy(ctx context.Context, args ...interface{}) (*contract.Deployment, error)
}

// Run makes a single deployment attempt of [contractName]. On success the
// address is printed as the only line of output. Any failure, including a
// panic inside the runtime, is returned to the caller without printing.
func Run(ctx context.Context, runtime Runtime, contractName string, out *ux.UserLog) (deployment *contract.Deployment, err error) {
	defer func() {
		if r := recover(); r != nil {
			deployment = nil
			err = fmt.Errorf("deployment of %s aborted: %v", contractName, r)
		}
	}()
	factory, err := runtime.GetContractFactory(ctx, contractName)
	if err != nil {
		return nil, err
	}
	deployment, err = factory.Deploy(ctx)
	if err != nil {
		return nil, err
	}
	out.PrintToUser("%s %s", constants.AddressLogPrefix, deployment.Address.Hex())

	fields := []interface{}{
		luxlog.String("contract", contractName),
		luxlog.String("address", deployment.Address.Hex()),
	}
	if deployment.Tx != nil {
		fields = append(fields, luxlog.String("txHash", deployment.Tx.Hash().Hex()))
	}
	if deployment.Receipt != nil {
		fields = append(fields, luxlog.Uint64("gasUsed", deployment.Receipt.GasUsed))
		if deployment.Receipt.BlockNumber != nil {
			fields = append(fields, luxlog.Uint64("block", deployment.Receipt.BlockNumber.Uint64()))
		}
	}
	out.Info("contract deployed", fields...)
	return deployment, nil
}
