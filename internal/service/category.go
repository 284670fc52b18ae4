package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"scriptum/internal/model"
	"scriptum/internal/repository"
)

// CategoryService defines the use cases for categories and their documents.
type CategoryService interface {
	Create(ctx context.Context, c *model.Category) (*model.Category, error)
	// Update fails with ErrNotFound if the category does not exist.
	Update(ctx context.Context, c *model.Category) (*model.Category, error)
	List(ctx context.Context, limit, offset int) (*ListResult[model.Category], error)
	Get(ctx context.Context, id string) (*model.Category, error)
	Delete(ctx context.Context, id string) error

	// AddDocument files the document under the category.
	AddDocument(ctx context.Context, categoryID, documentID string) (*model.Category, error)
	// RemoveDocument takes the document out of the category.
	RemoveDocument(ctx context.Context, categoryID, documentID string) (*model.Category, error)
}

type categoryService struct {
	repo repository.CategoryRepository
	docs repository.DocumentRepository
	log  *zap.Logger
}

// NewCategoryService constructs a new CategoryService.
func NewCategoryService(repo repository.CategoryRepository, docs repository.DocumentRepository, log *zap.Logger) CategoryService {
	return &categoryService{repo: repo, docs: docs, log: log.Named("category")}
}

func (s *categoryService) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	if c.ID != "" {
		return nil, ErrIDExists
	}
	if strings.TrimSpace(c.Name) == "" {
		return nil, ErrNameRequired
	}
	s.log.Debug("request to save category", zap.String("name", c.Name))

	in := *c
	in.ID = uuid.NewString()
	return s.repo.Create(ctx, &in)
}

func (s *categoryService) Update(ctx context.Context, c *model.Category) (*model.Category, error) {
	if c.ID == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(c.Name) == "" {
		return nil, ErrNameRequired
	}
	s.log.Debug("request to update category", zap.String("id", c.ID))

	out, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

func (s *categoryService) List(ctx context.Context, limit, offset int) (*ListResult[model.Category], error) {
	limit, offset = clampPage(limit, offset)
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Category]{Items: res.Items, Total: res.Total}, nil
}

func (s *categoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	s.log.Debug("request to delete category", zap.String("id", id))
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFound(err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *categoryService) AddDocument(ctx context.Context, categoryID, documentID string) (*model.Category, error) {
	c, doc, err := s.load(ctx, categoryID, documentID)
	if err != nil {
		return nil, err
	}
	model.AddDocumentToCategory(c, doc)
	if _, err := s.docs.Update(ctx, doc); err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (s *categoryService) RemoveDocument(ctx context.Context, categoryID, documentID string) (*model.Category, error) {
	c, doc, err := s.load(ctx, categoryID, documentID)
	if err != nil {
		return nil, err
	}
	wasMember := c.DocumentIDs.Has(doc.ID)
	model.RemoveDocumentFromCategory(c, doc)
	if !wasMember {
		return c, nil
	}
	if _, err := s.docs.Update(ctx, doc); err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (s *categoryService) load(ctx context.Context, categoryID, documentID string) (*model.Category, *model.AppDocument, error) {
	if categoryID == "" || documentID == "" {
		return nil, nil, ErrIDRequired
	}
	c, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, nil, notFound(err)
	}
	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		return nil, nil, notFound(err)
	}
	return c, doc, nil
}

// notFound maps a missing row onto ErrNotFound and passes other errors through.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
