package repository

import (
	"context"

	"scriptum/internal/model"
)

// CategoryRepository defines data access for categories.
// Read methods fill Category.DocumentIDs from the documents referencing it.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) (*model.Category, error)
	// Update renames an existing category; sql.ErrNoRows if it does not exist.
	Update(ctx context.Context, c *model.Category) (*model.Category, error)
	FindByID(ctx context.Context, id string) (*model.Category, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Category], error)
	// Delete removes a category; documents pointing at it lose their reference.
	Delete(ctx context.Context, id string) error
}
