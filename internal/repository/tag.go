package repository

import (
	"context"

	"scriptum/internal/model"
)

// TagRepository defines data access for tags.
// Read methods fill Tag.DocumentIDs from the document_tags links.
type TagRepository interface {
	Create(ctx context.Context, t *model.Tag) (*model.Tag, error)
	// Update renames an existing tag; sql.ErrNoRows if it does not exist.
	Update(ctx context.Context, t *model.Tag) (*model.Tag, error)
	FindByID(ctx context.Context, id string) (*model.Tag, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Tag], error)
	// Delete removes a tag and its document links.
	Delete(ctx context.Context, id string) error
}
