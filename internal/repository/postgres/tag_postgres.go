package postgres

import (
	"context"
	"database/sql"

	"scriptum/internal/model"
	"scriptum/internal/repository"
)

// TagPostgres is a PostgreSQL implementation of repository.TagRepository.
type TagPostgres struct {
	db *sql.DB
}

// NewTagPostgres creates a new TagPostgres repository.
func NewTagPostgres(db *sql.DB) *TagPostgres {
	return &TagPostgres{db: db}
}

var _ repository.TagRepository = (*TagPostgres)(nil)

const tagColumns = `t.id, t.name,
		COALESCE((SELECT string_agg(dt.document_id::text, ',' ORDER BY dt.document_id) FROM document_tags dt WHERE dt.tag_id = t.id), '')`

func scanTag(row rowScanner) (*model.Tag, error) {
	var (
		t    model.Tag
		docs string
	)
	if err := row.Scan(&t.ID, &t.Name, &docs); err != nil {
		return nil, err
	}
	t.DocumentIDs = splitIDs(docs)
	return &t, nil
}

// Create inserts a new tag.
func (r *TagPostgres) Create(ctx context.Context, t *model.Tag) (*model.Tag, error) {
	const q = `INSERT INTO tags (id, name) VALUES ($1, $2) RETURNING id, name`
	var out model.Tag
	if err := r.db.QueryRowContext(ctx, q, t.ID, t.Name).Scan(&out.ID, &out.Name); err != nil {
		return nil, err
	}
	out.DocumentIDs = model.IDSet{}
	return &out, nil
}

// Update renames a tag.
func (r *TagPostgres) Update(ctx context.Context, t *model.Tag) (*model.Tag, error) {
	const q = `UPDATE tags t SET name = $2 WHERE t.id = $1 RETURNING ` + tagColumns
	return scanTag(r.db.QueryRowContext(ctx, q, t.ID, t.Name))
}

// FindByID fetches a single tag by its ID.
func (r *TagPostgres) FindByID(ctx context.Context, id string) (*model.Tag, error) {
	q := `SELECT ` + tagColumns + ` FROM tags t WHERE t.id = $1`
	return scanTag(r.db.QueryRowContext(ctx, q, id))
}

// List returns tags ordered by name.
func (r *TagPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Tag], error) {
	total, err := count(ctx, r.db, `SELECT COUNT(*) FROM tags`)
	if err != nil {
		return nil, err
	}

	q := `SELECT ` + tagColumns + `
		FROM tags t
		ORDER BY t.name, t.id
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Tag, 0)
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Tag]{Items: items, Total: total}, nil
}

// Delete removes a tag by ID.
func (r *TagPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	return err
}
