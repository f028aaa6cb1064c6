package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storyteller-server/story-service/internal/service"
)

// MockAIClient is a mock type for the AIClient type
type MockAIClient struct {
	mock.Mock
}

// GenerateText provides a mock function with given fields: ctx, prompt
func (_m *MockAIClient) GenerateText(ctx context.Context, prompt string) (string, service.UsageInfo, error) {
	ret := _m.Called(ctx, prompt)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, string) string); ok {
		r0 = rf(ctx, prompt)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(string)
		}
	}

	var r1 service.UsageInfo
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(service.UsageInfo)
	}

	r2 := ret.Error(2)

	return r0, r1, r2
}

// NewMockAIClient creates a new instance of MockAIClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockAIClient(t interface {
	mock.TestingT
	Helper()
}) *MockAIClient {
	m := &MockAIClient{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.AIClient = (*MockAIClient)(nil)
