package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storyteller-server/shared/interfaces"
)

// MockPhraseSetRepository is a mock type for the PhraseSetRepository type
type MockPhraseSetRepository struct {
	mock.Mock
}

// GetLatest provides a mock function with given fields: ctx, kind
func (_m *MockPhraseSetRepository) GetLatest(ctx context.Context, kind string) (*interfaces.PhraseSet, error) {
	ret := _m.Called(ctx, kind)

	var r0 *interfaces.PhraseSet
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*interfaces.PhraseSet)
	}
	return r0, ret.Error(1)
}

// NewMockPhraseSetRepository creates a new instance of MockPhraseSetRepository.
// The first argument is typically a *testing.T value.
func NewMockPhraseSetRepository(t interface {
	mock.TestingT
	Helper()
}) *MockPhraseSetRepository {
	m := &MockPhraseSetRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.PhraseSetRepository = (*MockPhraseSetRepository)(nil)
