package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context, userID string) (*oauth2.Token, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, userID string, tok *oauth2.Token) error {
	args := m.Called(ctx, userID, tok)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
