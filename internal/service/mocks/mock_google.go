package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockGoogleAuth struct {
	mock.Mock
}

func (m *MockGoogleAuth) AuthURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockGoogleAuth) Exchange(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockGoogleAuth) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGoogleAuth) IsAuthenticated(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

type MockDriveUploader struct {
	mock.Mock
}

func (m *MockDriveUploader) Upload(ctx context.Context, name, mimeType string, r io.Reader) (string, error) {
	args := m.Called(ctx, name, mimeType, r)
	return args.String(0), args.Error(1)
}

type MockDocsReader struct {
	mock.Mock
}

func (m *MockDocsReader) Text(ctx context.Context, documentID string) (string, error) {
	args := m.Called(ctx, documentID)
	return args.String(0), args.Error(1)
}

type MockDriveService struct {
	mock.Mock
}

func (m *MockDriveService) SignInURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockDriveService) Callback(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockDriveService) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDriveService) Status(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockDriveService) Upload(ctx context.Context, name, mimeType string, r io.Reader) (string, error) {
	args := m.Called(ctx, name, mimeType, r)
	return args.String(0), args.Error(1)
}

type MockDocsService struct {
	mock.Mock
}

func (m *MockDocsService) ExtractText(ctx context.Context, documentID string) (string, error) {
	args := m.Called(ctx, documentID)
	return args.String(0), args.Error(1)
}
