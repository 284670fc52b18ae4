package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"scriptum/internal/model"
	"scriptum/internal/repository"
	repoMocks "scriptum/internal/repository/mocks"
)

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         *model.Category
		setupMocks func(mRepo *repoMocks.MockCategoryRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			in:   &model.Category{Name: "Invoices"},
			setupMocks: func(mRepo *repoMocks.MockCategoryRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(c *model.Category) bool {
					return c.ID != "" && c.Name == "Invoices"
				})).Return(&model.Category{ID: "cat-1", Name: "Invoices"}, nil)
			},
		},
		{
			name:       "validation - id already set",
			in:         &model.Category{ID: "cat-1", Name: "Invoices"},
			setupMocks: func(*repoMocks.MockCategoryRepository) {},
			wantErr:    ErrIDExists,
		},
		{
			name:       "validation - name required",
			in:         &model.Category{Name: " "},
			setupMocks: func(*repoMocks.MockCategoryRepository) {},
			wantErr:    ErrNameRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockCategoryRepository)
			svc := NewCategoryService(mRepo, nil, zap.NewNop())
			tt.setupMocks(mRepo)

			c, err := svc.Create(ctx, tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "cat-1", c.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockCategoryRepository)
		svc := NewCategoryService(mRepo, nil, zap.NewNop())
		in := &model.Category{ID: "cat-1", Name: "Receipts"}
		mRepo.On("Update", ctx, in).Return(in, nil)

		out, err := svc.Update(ctx, in)

		assert.NoError(t, err)
		assert.Equal(t, "Receipts", out.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockCategoryRepository)
		svc := NewCategoryService(mRepo, nil, zap.NewNop())
		mRepo.On("Update", ctx, mock.Anything).Return(nil, sql.ErrNoRows)

		_, err := svc.Update(ctx, &model.Category{ID: "missing", Name: "x"})

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing id", func(t *testing.T) {
		svc := NewCategoryService(nil, nil, zap.NewNop())
		_, err := svc.Update(ctx, &model.Category{Name: "x"})
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestCategoryService_ListGetDelete(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockCategoryRepository)
	svc := NewCategoryService(mRepo, nil, zap.NewNop())

	mRepo.On("List", ctx, repository.PageQuery{Limit: 5, Offset: 10}).
		Return(&repository.PageResult[model.Category]{Items: []model.Category{{ID: "cat-1"}}, Total: 11}, nil)
	mRepo.On("FindByID", ctx, "cat-1").Return(&model.Category{ID: "cat-1"}, nil)
	mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)
	mRepo.On("Delete", ctx, "cat-1").Return(nil)

	res, err := svc.List(ctx, 5, 10)
	assert.NoError(t, err)
	assert.Equal(t, 11, res.Total)
	assert.Len(t, res.Items, 1)

	c, err := svc.Get(ctx, "cat-1")
	assert.NoError(t, err)
	assert.Equal(t, "cat-1", c.ID)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, svc.Delete(ctx, "cat-1"))
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, ""), ErrIDRequired)

	mRepo.AssertExpectations(t)
}

func TestCategoryService_AddDocument(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		setupMocks func(mRepo *repoMocks.MockCategoryRepository, mDocs *repoMocks.MockDocumentRepository)
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "moves document into category",
			setupMocks: func(mRepo *repoMocks.MockCategoryRepository, mDocs *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "cat-1").Return(&model.Category{ID: "cat-1"}, nil)
				old := "cat-0"
				mDocs.On("FindByID", ctx, "doc-1").Return(&model.AppDocument{Document: model.Document{ID: "doc-1"}, CategoryID: &old}, nil)
				mDocs.On("Update", ctx, mock.MatchedBy(func(d *model.AppDocument) bool {
					return d.CategoryID != nil && *d.CategoryID == "cat-1"
				})).Return(&model.AppDocument{}, nil)
			},
		},
		{
			name: "category not found",
			setupMocks: func(mRepo *repoMocks.MockCategoryRepository, mDocs *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "cat-1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "document not found",
			setupMocks: func(mRepo *repoMocks.MockCategoryRepository, mDocs *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "cat-1").Return(&model.Category{ID: "cat-1"}, nil)
				mDocs.On("FindByID", ctx, "doc-1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "persist error",
			setupMocks: func(mRepo *repoMocks.MockCategoryRepository, mDocs *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "cat-1").Return(&model.Category{ID: "cat-1"}, nil)
				mDocs.On("FindByID", ctx, "doc-1").Return(&model.AppDocument{Document: model.Document{ID: "doc-1"}}, nil)
				mDocs.On("Update", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErrMsg: "db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockCategoryRepository)
			mDocs := new(repoMocks.MockDocumentRepository)
			svc := NewCategoryService(mRepo, mDocs, zap.NewNop())
			tt.setupMocks(mRepo, mDocs)

			c, err := svc.AddDocument(ctx, "cat-1", "doc-1")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.ErrorContains(t, err, tt.wantErrMsg)
			default:
				assert.NoError(t, err)
				assert.True(t, c.DocumentIDs.Has("doc-1"))
			}
			mRepo.AssertExpectations(t)
			mDocs.AssertExpectations(t)
		})
	}
}

func TestCategoryService_RemoveDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("member is removed and persisted", func(t *testing.T) {
		mRepo := new(repoMocks.MockCategoryRepository)
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := NewCategoryService(mRepo, mDocs, zap.NewNop())

		catID := "cat-1"
		mRepo.On("FindByID", ctx, "cat-1").Return(&model.Category{ID: "cat-1", DocumentIDs: model.NewIDSet("doc-1")}, nil)
		mDocs.On("FindByID", ctx, "doc-1").Return(&model.AppDocument{Document: model.Document{ID: "doc-1"}, CategoryID: &catID}, nil)
		mDocs.On("Update", ctx, mock.MatchedBy(func(d *model.AppDocument) bool { return d.CategoryID == nil })).
			Return(&model.AppDocument{}, nil)

		c, err := svc.RemoveDocument(ctx, "cat-1", "doc-1")

		assert.NoError(t, err)
		assert.False(t, c.DocumentIDs.Has("doc-1"))
		mDocs.AssertExpectations(t)
	})

	t.Run("non-member is a no-op", func(t *testing.T) {
		mRepo := new(repoMocks.MockCategoryRepository)
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := NewCategoryService(mRepo, mDocs, zap.NewNop())

		other := "cat-2"
		mRepo.On("FindByID", ctx, "cat-1").Return(&model.Category{ID: "cat-1"}, nil)
		mDocs.On("FindByID", ctx, "doc-1").Return(&model.AppDocument{Document: model.Document{ID: "doc-1"}, CategoryID: &other}, nil)

		_, err := svc.RemoveDocument(ctx, "cat-1", "doc-1")

		assert.NoError(t, err)
		mDocs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing ids", func(t *testing.T) {
		svc := NewCategoryService(nil, nil, zap.NewNop())
		_, err := svc.RemoveDocument(ctx, "", "doc-1")
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}
