// Code generated manually for testing. Update as needed.

package mocks

import (
	"context"

	"github.com/luxfi/xtoken-deploy/pkg/contract"
	"github.com/luxfi/xtoken-deploy/pkg/deploy"
	"github.com/stretchr/testify/mock"
)

// Runtime is a mock implementation of deploy.Runtime
type Runtime struct {
	mock.Mock
}

func (m *Runtime) GetContractFactory(ctx context.Context, name string) (deploy.ContractFactory, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(deploy.ContractFactory), args.Error(1)
}

// ContractFactory is a mock implementation of deploy.ContractFactory
type ContractFactory struct {
	mock.Mock
}

func (m *ContractFactory) Deploy(ctx context.Context, params ...interface{}) (*contract.Deployment, error) {
	args := m.Called(append([]interface{}{ctx}, params...)...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Deployment), args.Error(1)
}
