package repository

import (
	"context"

	"scriptum/internal/model"
)

// DocumentRepository defines data access for documents and their tag links.
// Persistence only; validation lives in the service layer.
type DocumentRepository interface {
	// Create inserts a document together with its category reference and tag links.
	// doc.ID must already be set by the caller.
	Create(ctx context.Context, doc *model.AppDocument) (*model.AppDocument, error)

	// Update rewrites all columns of an existing document and replaces its tag links.
	// It returns sql.ErrNoRows if the document does not exist.
	Update(ctx context.Context, doc *model.AppDocument) (*model.AppDocument, error)

	// UpdateFields rewrites the scalar columns only and leaves the relationships untouched.
	UpdateFields(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document with its tag ids.
	FindByID(ctx context.Context, id string) (*model.AppDocument, error)

	// List returns a page of documents, newest first, with their tag ids.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.AppDocument], error)

	// Delete removes a document and its tag links. Missing rows are not an error.
	Delete(ctx context.Context, id string) error
}
