package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"storyteller-server/shared/models"
	"storyteller-server/story-service/internal/service"
)

// MockStoryService is a mock type for the StoryService type
type MockStoryService struct {
	mock.Mock
}

// GenerateStory provides a mock function with given fields: ctx, userID, req
func (_m *MockStoryService) GenerateStory(ctx context.Context, userID uuid.UUID, req *models.StoryRequest) (*service.StoryResult, error) {
	ret := _m.Called(ctx, userID, req)

	var r0 *service.StoryResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.StoryResult)
	}
	return r0, ret.Error(1)
}

// AuthorizeNarration provides a mock function with given fields: ctx, userID
func (_m *MockStoryService) AuthorizeNarration(ctx context.Context, userID uuid.UUID) (*service.UsageSnapshot, error) {
	ret := _m.Called(ctx, userID)

	var r0 *service.UsageSnapshot
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.UsageSnapshot)
	}
	return r0, ret.Error(1)
}

// GetUsage provides a mock function with given fields: ctx, userID
func (_m *MockStoryService) GetUsage(ctx context.Context, userID uuid.UUID) (*service.UsageSnapshot, error) {
	ret := _m.Called(ctx, userID)

	var r0 *service.UsageSnapshot
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.UsageSnapshot)
	}
	return r0, ret.Error(1)
}

// NewMockStoryService creates a new instance of MockStoryService.
// The first argument is typically a *testing.T value.
func NewMockStoryService(t interface {
	mock.TestingT
	Helper()
}) *MockStoryService {
	m := &MockStoryService{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.StoryService = (*MockStoryService)(nil)
