// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/luxfi/crypto"
	ethereum "github.com/luxfi/geth"
	"github.com/luxfi/geth/accounts/abi/bind"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	"github.com/luxfi/xtoken-deploy/pkg/artifacts"
	"github.com/luxfi/xtoken-deploy/pkg/constants"
	"github.com/stretchr/testify/require"
)

// fakeBackend answers the calls made by a legacy-priced deployment. Methods
// not overridden here panic through the nil embedded interface.
type fakeBackend struct {
	Backend
	sendErr error
	status  uint64
	code    []byte
	sent    []*types.Transaction
}

func (b *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(1)}, nil
}

func (*fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return 0, nil
}

func (*fakeBackend) PendingCodeAt(context.Context, common.Address) ([]byte, error) {
	return nil, nil
}

func (*fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (*fakeBackend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (*fakeBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 1_000_000, nil
}

func (b *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	if b.sendErr != nil {
		return b.sendErr
	}
	b.sent = append(b.sent, tx)
	return nil
}

func (b *fakeBackend) TransactionReceipt(_ context.Context, txHash common.Hash) (*types.Receipt, error) {
	return &types.Receipt{
		Status:      b.status,
		TxHash:      txHash,
		BlockNumber: big.NewInt(1),
	}, nil
}

func (b *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return b.code, nil
}

var testArtifact = &artifacts.Artifact{
	ContractName: "XToken",
	SourceName:   "contracts/XToken.sol",
	ABI:          json.RawMessage(`[{"inputs":[],"stateMutability":"nonpayable","type":"constructor"},{"inputs":[],"name":"name","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"}]`),
	Bytecode:     "0x6080604052348015600f57600080fd5b50",
}

func newTestFactory(t *testing.T, backend *fakeBackend) (*Factory, common.Address) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	opts, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(constants.HardhatChainID))
	require.NoError(t, err)
	opts.GasPrice = big.NewInt(1_000_000_000)
	opts.GasLimit = 3_000_000
	factory, err := NewFactory(testArtifact, backend, opts)
	require.NoError(t, err)
	return factory, opts.From
}

func TestDeploy(t *testing.T) {
	require := require.New(t)
	backend := &fakeBackend{status: types.ReceiptStatusSuccessful, code: []byte{0x60}}
	factory, from := newTestFactory(t, backend)

	deployment, err := factory.Deploy(context.Background())
	require.NoError(err)
	require.Equal("XToken", deployment.Name)
	require.Equal(common.Address(crypto.CreateAddress(crypto.Address(from), 0)), deployment.Address)
	require.Len(backend.sent, 1)
	require.Nil(backend.sent[0].To())
	code, err := testArtifact.CreationCode()
	require.NoError(err)
	require.Equal(code, backend.sent[0].Data())
	require.Equal(backend.sent[0].Hash(), deployment.Tx.Hash())
}

func TestDeployFailures(t *testing.T) {
	tests := []struct {
		name     string
		backend  *fakeBackend
		args     []interface{}
		expected error
		contains string
	}{
		{
			name:     "send rejected",
			backend:  &fakeBackend{sendErr: errors.New("insufficient funds")},
			contains: "tx failed to be submitted",
		},
		{
			name:     "reverted",
			backend:  &fakeBackend{status: types.ReceiptStatusFailed, code: []byte{0x60}},
			expected: constants.ErrDeploymentReverted,
			contains: "txHash=",
		},
		{
			name:     "no code",
			backend:  &fakeBackend{status: types.ReceiptStatusSuccessful},
			expected: constants.ErrNoCodeAfterDeploy,
		},
		{
			name:     "unexpected constructor argument",
			backend:  &fakeBackend{status: types.ReceiptStatusSuccessful, code: []byte{0x60}},
			args:     []interface{}{"XT"},
			contains: "failed to deploy XToken",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory, _ := newTestFactory(t, tt.backend)
			_, err := factory.Deploy(context.Background(), tt.args...)
			require.Error(t, err)
			if tt.expected != nil {
				require.ErrorIs(t, err, tt.expected)
			}
			if tt.contains != "" {
				require.ErrorContains(t, err, tt.contains)
			}
		})
	}
}

func TestNewFactoryInvalidABI(t *testing.T) {
	bad := *testArtifact
	bad.ABI = json.RawMessage(`{"not":"an abi"`)
	_, err := NewFactory(&bad, &fakeBackend{}, &bind.TransactOpts{})
	require.ErrorContains(t, err, "failed to parse XToken ABI")
}

func TestTransactionError(t *testing.T) {
	base := errors.New("boom")
	err := TransactionError(nil, base, "failed to deploy %s", "XToken")
	require.ErrorIs(t, err, base)
	require.Equal(t, "failed to deploy XToken: boom (tx failed to be submitted)", err.Error())

	tx := types.NewTx(&types.LegacyTx{Nonce: 1})
	err = TransactionError(tx, base, "failed")
	require.Equal(t, "failed: boom (txHash="+tx.Hash().String()+")", err.Error())
}
