package mocks

import (
	"context"

	"pantrylink/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockStoreClient is a mock implementation of service.StoreClient.
type MockStoreClient struct {
	mock.Mock
}

// NewMockStoreClient creates a mock whose expectations are asserted on test
// cleanup.
func NewMockStoreClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockStoreClient {
	m := &MockStoreClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockStoreClient) Name() string {
	args := m.Called()

	return args.String(0)
}

func (m *MockStoreClient) ProductByBarcode(ctx context.Context, barcode string) (service.StoreProduct, error) {
	args := m.Called(ctx, barcode)

	return args.Get(0).(service.StoreProduct), args.Error(1)
}

func (m *MockStoreClient) Login(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)

	return args.Error(0)
}

func (m *MockStoreClient) Logout(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockStoreClient) FillCart(ctx context.Context, items []service.CartItem) error {
	args := m.Called(ctx, items)

	return args.Error(0)
}

func (m *MockStoreClient) EmptyCart(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}
