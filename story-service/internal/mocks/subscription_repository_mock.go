package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"storyteller-server/shared/interfaces"
	"storyteller-server/shared/models"
)

// MockSubscriptionRepository is a mock type for the SubscriptionRepository type
type MockSubscriptionRepository struct {
	mock.Mock
}

// LoadOrCreate provides a mock function with given fields: ctx, userID
func (_m *MockSubscriptionRepository) LoadOrCreate(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	ret := _m.Called(ctx, userID)

	var r0 *models.Subscription
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Subscription)
	}
	return r0, ret.Error(1)
}

// ResetIfNewCycle provides a mock function with given fields: ctx, sub
func (_m *MockSubscriptionRepository) ResetIfNewCycle(ctx context.Context, sub *models.Subscription) (*models.Subscription, error) {
	ret := _m.Called(ctx, sub)

	var r0 *models.Subscription
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Subscription)
	}
	return r0, ret.Error(1)
}

// CommitIncrement provides a mock function with given fields: ctx, userID, field, observed
func (_m *MockSubscriptionRepository) CommitIncrement(ctx context.Context, userID uuid.UUID, field models.UsageField, observed int) error {
	ret := _m.Called(ctx, userID, field, observed)
	return ret.Error(0)
}

// NewMockSubscriptionRepository creates a new instance of MockSubscriptionRepository.
// The first argument is typically a *testing.T value.
func NewMockSubscriptionRepository(t interface {
	mock.TestingT
	Helper()
}) *MockSubscriptionRepository {
	m := &MockSubscriptionRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.SubscriptionRepository = (*MockSubscriptionRepository)(nil)
