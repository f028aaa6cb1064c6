package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storyteller-server/story-service/internal/messaging"
)

// MockReconciliationPublisher is a mock type for the ReconciliationPublisher type
type MockReconciliationPublisher struct {
	mock.Mock
}

// PublishUsageReconciliation provides a mock function with given fields: ctx, event
func (_m *MockReconciliationPublisher) PublishUsageReconciliation(ctx context.Context, event messaging.UsageReconciliationEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

// NewMockReconciliationPublisher creates a new instance of MockReconciliationPublisher.
// The first argument is typically a *testing.T value.
func NewMockReconciliationPublisher(t interface {
	mock.TestingT
	Helper()
}) *MockReconciliationPublisher {
	m := &MockReconciliationPublisher{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ messaging.ReconciliationPublisher = (*MockReconciliationPublisher)(nil)
