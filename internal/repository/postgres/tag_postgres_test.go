package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scriptum/internal/model"
	"scriptum/internal/repository"
)

func TestTagPostgres_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTagPostgres(db)

	mock.ExpectQuery("INSERT INTO tags").
		WithArgs("tag-1", "urgent").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("tag-1", "urgent"))

	got, err := repo.Create(context.Background(), &model.Tag{ID: "tag-1", Name: "urgent"})

	require.NoError(t, err)
	assert.Equal(t, "urgent", got.Name)
	assert.NotNil(t, got.DocumentIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagPostgres_Update(t *testing.T) {
	ctx := context.Background()
	db, mock := newMock(t)
	repo := NewTagPostgres(db)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("UPDATE tags t SET name = (.+) RETURNING").
			WithArgs("tag-1", "later").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "document_ids"}).AddRow("tag-1", "later", "doc-1"))

		got, err := repo.Update(ctx, &model.Tag{ID: "tag-1", Name: "later"})

		require.NoError(t, err)
		assert.True(t, got.DocumentIDs.Has("doc-1"))
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery("UPDATE tags").
			WithArgs("missing", "x").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.Update(ctx, &model.Tag{ID: "missing", Name: "x"})

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagPostgres_FindByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTagPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM tags t WHERE t.id = ").
		WithArgs("tag-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "document_ids"}).AddRow("tag-1", "urgent", "doc-2,doc-1"))

	got, err := repo.FindByID(context.Background(), "tag-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"doc-1", "doc-2"}, got.DocumentIDs.Slice())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagPostgres_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTagPostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM tags").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM tags t ORDER BY").
		WithArgs(5, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "document_ids"}).AddRow("tag-1", "urgent", ""))

	res, err := repo.List(context.Background(), repository.PageQuery{Limit: 5, Offset: 10})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagPostgres_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTagPostgres(db)

	mock.ExpectExec("DELETE FROM tags WHERE id = ").
		WithArgs("tag-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), "tag-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
