package postgres

import (
	"context"
	"database/sql"

	"scriptum/internal/model"
	"scriptum/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// Tag links live in document_tags and are written in the same transaction as the row.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `d.id, d.content, d.document_link, d.blob_key, d.blob_content_type, d.category_id,
		COALESCE((SELECT string_agg(dt.tag_id::text, ',' ORDER BY dt.tag_id) FROM document_tags dt WHERE dt.document_id = d.id), '')`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*model.AppDocument, error) {
	var (
		d        model.AppDocument
		category sql.NullString
		tags     string
	)
	if err := row.Scan(
		&d.ID,
		&d.Content,
		&d.DocumentLink,
		&d.BlobKey,
		&d.BlobContentType,
		&category,
		&tags,
	); err != nil {
		return nil, err
	}
	if category.Valid {
		d.CategoryID = &category.String
	}
	d.TagIDs = splitIDs(tags)
	return &d, nil
}

// Create inserts a document row and its tag links.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.AppDocument) (*model.AppDocument, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO documents (id, content, document_link, blob_key, blob_content_type, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.ExecContext(ctx, q,
		doc.ID,
		doc.Content,
		doc.DocumentLink,
		doc.BlobKey,
		doc.BlobContentType,
		doc.CategoryID,
	); err != nil {
		return nil, translate(err)
	}
	if err := insertTags(ctx, tx, doc.ID, doc.TagIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return cloneDocument(doc), nil
}

// Update rewrites the document row and replaces its tag links.
func (r *DocumentPostgres) Update(ctx context.Context, doc *model.AppDocument) (*model.AppDocument, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const q = `
		UPDATE documents
		SET content = $2, document_link = $3, blob_key = $4, blob_content_type = $5, category_id = $6
		WHERE id = $1
	`
	res, err := tx.ExecContext(ctx, q,
		doc.ID,
		doc.Content,
		doc.DocumentLink,
		doc.BlobKey,
		doc.BlobContentType,
		doc.CategoryID,
	)
	if err != nil {
		return nil, translate(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, sql.ErrNoRows
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM document_tags WHERE document_id = $1`, doc.ID); err != nil {
		return nil, err
	}
	if err := insertTags(ctx, tx, doc.ID, doc.TagIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return cloneDocument(doc), nil
}

// UpdateFields rewrites content, link and blob columns of an existing document.
func (r *DocumentPostgres) UpdateFields(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET content = $2, document_link = $3, blob_key = $4, blob_content_type = $5
		WHERE id = $1
		RETURNING id, content, document_link, blob_key, blob_content_type
	`
	var out model.Document
	if err := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Content,
		doc.DocumentLink,
		doc.BlobKey,
		doc.BlobContentType,
	).Scan(
		&out.ID,
		&out.Content,
		&out.DocumentLink,
		&out.BlobKey,
		&out.BlobContentType,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.AppDocument, error) {
	q := `SELECT ` + documentColumns + ` FROM documents d WHERE d.id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// List returns documents using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.AppDocument], error) {
	total, err := count(ctx, r.db, `SELECT COUNT(*) FROM documents`)
	if err != nil {
		return nil, err
	}

	q := `SELECT ` + documentColumns + `
		FROM documents d
		ORDER BY d.created_at DESC, d.id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.AppDocument, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.AppDocument]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a document by ID; its tag links go with it through ON DELETE CASCADE.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	return err
}

func insertTags(ctx context.Context, q querier, docID string, tags model.IDSet) error {
	const stmt = `INSERT INTO document_tags (document_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, tagID := range tags.Slice() {
		if _, err := q.ExecContext(ctx, stmt, docID, tagID); err != nil {
			return translate(err)
		}
	}
	return nil
}

func cloneDocument(doc *model.AppDocument) *model.AppDocument {
	out := *doc
	out.Blob = nil
	out.TagIDs = model.NewIDSet(doc.TagIDs.Slice()...)
	if doc.CategoryID != nil {
		id := *doc.CategoryID
		out.CategoryID = &id
	}
	return &out
}
