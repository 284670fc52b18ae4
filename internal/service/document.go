package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"scriptum/internal/model"
	"scriptum/internal/repository"
	"scriptum/internal/storage"
)

const (
	defaultBlobContentType = "application/octet-stream"
	blobURLExpiry          = 15 * time.Minute
)

// ErrNoBlob is returned when a blob is requested for a document that has none.
var ErrNoBlob = errors.New("document has no blob")

// DocumentService defines the use cases for documents. A document blob lives in
// object storage and its key in the document row.
type DocumentService interface {
	// Create stores the blob (if any) and then the record; the blob is removed again if the record cannot be saved.
	Create(ctx context.Context, doc *model.AppDocument) (*model.AppDocument, error)

	// Update replaces every field and relationship of an existing document.
	// A missing blob in doc clears the stored one.
	Update(ctx context.Context, doc *model.AppDocument) (*model.AppDocument, error)

	// UpdateFields replaces content, link and blob, keeping category and tags.
	UpdateFields(ctx context.Context, doc *model.Document) (*model.Document, error)

	// List returns documents using limit/offset and a total count. Blobs are not loaded.
	List(ctx context.Context, limit, offset int) (*ListResult[model.AppDocument], error)

	// Get returns a single document with its blob.
	Get(ctx context.Context, id string) (*model.AppDocument, error)

	// BlobURL returns a short-lived download URL for the document blob.
	BlobURL(ctx context.Context, id string) (string, error)

	// Delete removes the document record and its blob.
	Delete(ctx context.Context, id string) error
}

type documentService struct {
	store storage.Storage
	repo  repository.DocumentRepository
	log   *zap.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, log *zap.Logger) DocumentService {
	return &documentService{store: store, repo: repo, log: log.Named("document")}
}

func validateDocument(d *model.Document) error {
	if strings.TrimSpace(d.Content) == "" {
		return ErrContentRequired
	}
	if strings.TrimSpace(d.DocumentLink) == "" {
		return ErrLinkRequired
	}
	return nil
}

func (s *documentService) Create(ctx context.Context, doc *model.AppDocument) (*model.AppDocument, error) {
	if doc.ID != "" {
		return nil, ErrIDExists
	}
	if err := validateDocument(&doc.Document); err != nil {
		return nil, err
	}

	in := *doc
	in.ID = uuid.NewString()
	in.BlobKey = ""
	s.log.Debug("request to save document", zap.String("id", in.ID), zap.Int("blob_size", len(in.Blob)))

	if err := s.putBlob(ctx, &in.Document); err != nil {
		return nil, err
	}

	stored, err := s.repo.Create(ctx, &in)
	if err != nil {
		return nil, s.discardBlob(ctx, in.BlobKey, fmt.Errorf("db save failed: %w", err))
	}
	stored.Blob = in.Blob
	return stored, nil
}

func (s *documentService) Update(ctx context.Context, doc *model.AppDocument) (*model.AppDocument, error) {
	if doc.ID == "" {
		return nil, ErrIDRequired
	}
	if err := validateDocument(&doc.Document); err != nil {
		return nil, err
	}
	s.log.Debug("request to update document", zap.String("id", doc.ID))

	current, err := s.repo.FindByID(ctx, doc.ID)
	if err != nil {
		return nil, notFound(err)
	}

	in := *doc
	in.BlobKey = ""
	if err := s.putBlob(ctx, &in.Document); err != nil {
		return nil, err
	}

	stored, err := s.repo.Update(ctx, &in)
	if err != nil {
		return nil, s.discardBlob(ctx, in.BlobKey, notFound(err))
	}
	s.dropStaleBlob(ctx, current.BlobKey, in.BlobKey)
	stored.Blob = in.Blob
	return stored, nil
}

func (s *documentService) UpdateFields(ctx context.Context, doc *model.Document) (*model.Document, error) {
	if doc.ID == "" {
		return nil, ErrIDRequired
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}
	s.log.Debug("request to update document fields", zap.String("id", doc.ID))

	current, err := s.repo.FindByID(ctx, doc.ID)
	if err != nil {
		return nil, notFound(err)
	}

	in := *doc
	in.BlobKey = ""
	if err := s.putBlob(ctx, &in); err != nil {
		return nil, err
	}

	stored, err := s.repo.UpdateFields(ctx, &in)
	if err != nil {
		return nil, s.discardBlob(ctx, in.BlobKey, notFound(err))
	}
	s.dropStaleBlob(ctx, current.BlobKey, in.BlobKey)
	stored.Blob = in.Blob
	return stored, nil
}

func (s *documentService) List(ctx context.Context, limit, offset int) (*ListResult[model.AppDocument], error) {
	limit, offset = clampPage(limit, offset)
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ListResult[model.AppDocument]{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.AppDocument, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if doc.BlobKey == "" {
		return doc, nil
	}

	rc, _, err := s.store.Get(ctx, doc.BlobKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		s.log.Warn("document blob missing from storage", zap.String("id", id), zap.String("key", doc.BlobKey))
		return nil, ErrNoBlob
	}
	if err != nil {
		return nil, fmt.Errorf("get blob: %w", err)
	}
	defer rc.Close()
	if doc.Blob, err = io.ReadAll(rc); err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return doc, nil
}

func (s *documentService) BlobURL(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", notFound(err)
	}
	if doc.BlobKey == "" {
		return "", ErrNoBlob
	}
	return s.store.PresignGet(ctx, doc.BlobKey, blobURLExpiry)
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	s.log.Debug("request to delete document", zap.String("id", id))

	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	// Storage goes first so a failure keeps the row pointing at the blob.
	if doc.BlobKey != "" {
		if err := s.store.Delete(ctx, doc.BlobKey); err != nil {
			return fmt.Errorf("delete storage: %w", err)
		}
	}
	return s.repo.Delete(ctx, id)
}

// putBlob uploads d.Blob under a fresh version key and records the key on d.
func (s *documentService) putBlob(ctx context.Context, d *model.Document) error {
	if len(d.Blob) == 0 {
		d.BlobContentType = ""
		return nil
	}
	if d.BlobContentType == "" {
		d.BlobContentType = defaultBlobContentType
	}
	info, err := s.store.Put(ctx, storage.BlobKey(d.ID, uuid.NewString()), bytes.NewReader(d.Blob), storage.PutObjectOptions{
		Size:        int64(len(d.Blob)),
		ContentType: d.BlobContentType,
		Metadata:    map[string]string{"document-id": d.ID},
	})
	if err != nil {
		return fmt.Errorf("upload to storage: %w", err)
	}
	d.BlobKey = info.Key
	return nil
}

// discardBlob removes a blob uploaded for a write that was not persisted and
// returns cause, annotated when the removal fails too.
func (s *documentService) discardBlob(ctx context.Context, key string, cause error) error {
	if key == "" {
		return cause
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w; rollback delete failed: %v", cause, err)
	}
	return cause
}

// dropStaleBlob removes a blob that the updated record no longer references.
func (s *documentService) dropStaleBlob(ctx context.Context, oldKey, newKey string) {
	if oldKey == "" || oldKey == newKey {
		return
	}
	if err := s.store.Delete(ctx, oldKey); err != nil {
		s.log.Warn("stale blob not removed", zap.String("key", oldKey), zap.Error(err))
	}
}
