package postgres

import (
	"context"
	"database/sql"

	"scriptum/internal/model"
	"scriptum/internal/repository"
)

// CategoryPostgres is a PostgreSQL implementation of repository.CategoryRepository.
type CategoryPostgres struct {
	db *sql.DB
}

// NewCategoryPostgres creates a new CategoryPostgres repository.
func NewCategoryPostgres(db *sql.DB) *CategoryPostgres {
	return &CategoryPostgres{db: db}
}

var _ repository.CategoryRepository = (*CategoryPostgres)(nil)

const categoryColumns = `c.id, c.name,
		COALESCE((SELECT string_agg(d.id::text, ',' ORDER BY d.id) FROM documents d WHERE d.category_id = c.id), '')`

func scanCategory(row rowScanner) (*model.Category, error) {
	var (
		c    model.Category
		docs string
	)
	if err := row.Scan(&c.ID, &c.Name, &docs); err != nil {
		return nil, err
	}
	c.DocumentIDs = splitIDs(docs)
	return &c, nil
}

// Create inserts a new category. Documents join a category from the document side.
func (r *CategoryPostgres) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	const q = `INSERT INTO categories (id, name) VALUES ($1, $2) RETURNING id, name`
	var out model.Category
	if err := r.db.QueryRowContext(ctx, q, c.ID, c.Name).Scan(&out.ID, &out.Name); err != nil {
		return nil, err
	}
	out.DocumentIDs = model.IDSet{}
	return &out, nil
}

// Update renames a category and returns it with its current documents.
func (r *CategoryPostgres) Update(ctx context.Context, c *model.Category) (*model.Category, error) {
	const q = `UPDATE categories c SET name = $2 WHERE c.id = $1 RETURNING ` + categoryColumns
	return scanCategory(r.db.QueryRowContext(ctx, q, c.ID, c.Name))
}

// FindByID fetches a single category by its ID.
func (r *CategoryPostgres) FindByID(ctx context.Context, id string) (*model.Category, error) {
	q := `SELECT ` + categoryColumns + ` FROM categories c WHERE c.id = $1`
	return scanCategory(r.db.QueryRowContext(ctx, q, id))
}

// List returns categories ordered by name.
func (r *CategoryPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Category], error) {
	total, err := count(ctx, r.db, `SELECT COUNT(*) FROM categories`)
	if err != nil {
		return nil, err
	}

	q := `SELECT ` + categoryColumns + `
		FROM categories c
		ORDER BY c.name, c.id
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Category]{Items: items, Total: total}, nil
}

// Delete removes a category by ID.
func (r *CategoryPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}
