// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deploy_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/xtoken-deploy/pkg/constants"
	"github.com/luxfi/xtoken-deploy/pkg/contract"
	"github.com/luxfi/xtoken-deploy/pkg/deploy"
	"github.com/luxfi/xtoken-deploy/pkg/deploy/mocks"
	"github.com/luxfi/xtoken-deploy/pkg/ux"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var tokenAddress = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

func newUserLog() (*ux.UserLog, *bytes.Buffer, *bytes.Buffer, *bytes.Buffer) {
	var logs, out, errOut bytes.Buffer
	return ux.NewUserLog(luxlog.NewWriter(&logs), &out, &errOut), &out, &errOut, &logs
}

func TestRunLogsAddress(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	tx := types.NewTx(&types.LegacyTx{Nonce: 0, Data: []byte{0x60}})
	factory := &mocks.ContractFactory{}
	factory.On("Deploy", ctx).Return(&contract.Deployment{
		Name:    constants.DefaultContractName,
		Address: tokenAddress,
		Tx:      tx,
		Receipt: &types.Receipt{GasUsed: 21000, BlockNumber: big.NewInt(1)},
	}, nil)
	runtime := &mocks.Runtime{}
	runtime.On("GetContractFactory", ctx, constants.DefaultContractName).Return(factory, nil)
	userLog, out, errOut, logs := newUserLog()

	deployment, err := deploy.Run(ctx, runtime, constants.DefaultContractName, userLog)
	require.NoError(err)
	require.Equal(tokenAddress, deployment.Address)
	require.Equal("tonContract address--> 0x5FbDB2315678afecb367f032d93F642f64180aa3\n", out.String())
	require.Empty(errOut.String())

	var entry map[string]interface{}
	require.NoError(json.Unmarshal(logs.Bytes(), &entry))
	require.Equal("contract deployed", entry["message"])
	require.Equal(tx.Hash().Hex(), entry["txHash"])
	require.Equal(tokenAddress.Hex(), entry["address"])
	require.EqualValues(21000, entry["gasUsed"])
	runtime.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRunFailures(t *testing.T) {
	deployErr := errors.New("sender doesn't have enough funds to send tx")
	lookupErr := errors.New("artifact for contract \"XToken\" not found")

	tests := []struct {
		name     string
		setup    func(runtime *mocks.Runtime, factory *mocks.ContractFactory)
		expected error
		contains string
	}{
		{
			name: "deploy rejected",
			setup: func(runtime *mocks.Runtime, factory *mocks.ContractFactory) {
				runtime.On("GetContractFactory", mock.Anything, "XToken").Return(factory, nil)
				factory.On("Deploy", mock.Anything).Return(nil, deployErr)
			},
			expected: deployErr,
		},
		{
			name: "factory lookup fails",
			setup: func(runtime *mocks.Runtime, _ *mocks.ContractFactory) {
				runtime.On("GetContractFactory", mock.Anything, "XToken").Return(nil, lookupErr)
			},
			expected: lookupErr,
		},
		{
			name: "factory lookup panics",
			setup: func(runtime *mocks.Runtime, _ *mocks.ContractFactory) {
				runtime.On("GetContractFactory", mock.Anything, "XToken").Panic("XContract is not defined")
			},
			contains: "XContract is not defined",
		},
		{
			name: "deploy panics",
			setup: func(runtime *mocks.Runtime, factory *mocks.ContractFactory) {
				runtime.On("GetContractFactory", mock.Anything, "XToken").Return(factory, nil)
				factory.On("Deploy", mock.Anything).Panic("nonce too low")
			},
			contains: "deployment of XToken aborted: nonce too low",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runtime := &mocks.Runtime{}
			factory := &mocks.ContractFactory{}
			tt.setup(runtime, factory)
			userLog, out, errOut, _ := newUserLog()

			deployment, err := deploy.Run(context.Background(), runtime, "XToken", userLog)
			require.Error(t, err)
			require.Nil(t, deployment)
			if tt.expected != nil {
				require.ErrorIs(t, err, tt.expected)
			}
			if tt.contains != "" {
				require.ErrorContains(t, err, tt.contains)
			}
			// failures are reported by the caller, never here
			require.Empty(t, out.String())
			require.Empty(t, errOut.String())
		})
	}
}
