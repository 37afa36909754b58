package mocks

import (
	"context"

	"pantrylink/internal/domain/entity"
	"pantrylink/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockPlatform is a mock implementation of service.Platform.
type MockPlatform struct {
	mock.Mock
}

// NewMockPlatform creates a mock whose expectations are asserted on test
// cleanup.
func NewMockPlatform(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPlatform {
	m := &MockPlatform{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPlatform) PublishState(ctx context.Context, view entity.View) error {
	args := m.Called(ctx, view)

	return args.Error(0)
}

func (m *MockPlatform) RemoveEntity(ctx context.Context, key string) error {
	args := m.Called(ctx, key)

	return args.Error(0)
}

// MockEventPublisher is a mock implementation of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a mock whose expectations are asserted on
// test cleanup.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) Publish(ctx context.Context, event service.Event) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}
