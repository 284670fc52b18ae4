package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"scriptum/internal/google"
)

// ErrNotAuthenticated is returned by Google operations before the user has signed in.
var ErrNotAuthenticated = google.ErrNotAuthenticated

// GoogleAuth is the OAuth flow for the single configured Google user.
type GoogleAuth interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) error
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
}

// DriveUploader stores a file in Google Drive and returns its id.
type DriveUploader interface {
	Upload(ctx context.Context, name, mimeType string, r io.Reader) (string, error)
}

// DocsReader returns the plain text of a Google Docs document.
type DocsReader interface {
	Text(ctx context.Context, documentID string) (string, error)
}

// DriveService covers sign-in and uploads to Google Drive.
type DriveService interface {
	SignInURL(state string) string
	// Callback completes sign-in with the authorization code Google redirected back with.
	Callback(ctx context.Context, code string) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) bool
	Upload(ctx context.Context, name, mimeType string, r io.Reader) (string, error)
}

// DocsService extracts text from Google Docs documents.
type DocsService interface {
	ExtractText(ctx context.Context, documentID string) (string, error)
}

type driveService struct {
	auth     GoogleAuth
	uploader DriveUploader
	log      *zap.Logger
}

// NewDriveService constructs a new DriveService.
func NewDriveService(auth GoogleAuth, uploader DriveUploader, log *zap.Logger) DriveService {
	return &driveService{auth: auth, uploader: uploader, log: log.Named("drive")}
}

func (s *driveService) SignInURL(state string) string {
	return s.auth.AuthURL(state)
}

func (s *driveService) Callback(ctx context.Context, code string) error {
	if strings.TrimSpace(code) == "" {
		return ErrCodeRequired
	}
	return s.auth.Exchange(ctx, code)
}

func (s *driveService) Logout(ctx context.Context) error {
	return s.auth.Logout(ctx)
}

func (s *driveService) Status(ctx context.Context) bool {
	return s.auth.IsAuthenticated(ctx)
}

func (s *driveService) Upload(ctx context.Context, name, mimeType string, r io.Reader) (string, error) {
	if r == nil {
		return "", ErrReaderNil
	}
	if strings.TrimSpace(name) == "" {
		return "", ErrNameRequired
	}
	s.log.Debug("request to upload file to drive", zap.String("name", name), zap.String("mime_type", mimeType))

	id, err := s.uploader.Upload(ctx, name, mimeType, r)
	if err != nil {
		return "", err
	}
	s.log.Info("file uploaded to drive", zap.String("name", name), zap.String("file_id", id))
	return id, nil
}

type docsService struct {
	reader DocsReader
	log    *zap.Logger
}

// NewDocsService constructs a new DocsService.
func NewDocsService(reader DocsReader, log *zap.Logger) DocsService {
	return &docsService{reader: reader, log: log.Named("docs")}
}

func (s *docsService) ExtractText(ctx context.Context, documentID string) (string, error) {
	if strings.TrimSpace(documentID) == "" {
		return "", ErrIDRequired
	}
	text, err := s.reader.Text(ctx, documentID)
	if errors.Is(err, google.ErrDocumentNotFound) {
		return "", ErrNotFound
	}
	return text, err
}
