package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"scriptum/internal/model"
	"scriptum/internal/repository"
)

// TagService defines the use cases for tags and their documents.
type TagService interface {
	Create(ctx context.Context, t *model.Tag) (*model.Tag, error)
	// Update fails with ErrNotFound if the tag does not exist.
	Update(ctx context.Context, t *model.Tag) (*model.Tag, error)
	List(ctx context.Context, limit, offset int) (*ListResult[model.Tag], error)
	Get(ctx context.Context, id string) (*model.Tag, error)
	Delete(ctx context.Context, id string) error

	// AddDocument tags the document. Tagging twice is a no-op.
	AddDocument(ctx context.Context, tagID, documentID string) (*model.Tag, error)
	// RemoveDocument untags the document.
	RemoveDocument(ctx context.Context, tagID, documentID string) (*model.Tag, error)
}

type tagService struct {
	repo repository.TagRepository
	docs repository.DocumentRepository
	log  *zap.Logger
}

// NewTagService constructs a new TagService.
func NewTagService(repo repository.TagRepository, docs repository.DocumentRepository, log *zap.Logger) TagService {
	return &tagService{repo: repo, docs: docs, log: log.Named("tag")}
}

func (s *tagService) Create(ctx context.Context, t *model.Tag) (*model.Tag, error) {
	if t.ID != "" {
		return nil, ErrIDExists
	}
	if strings.TrimSpace(t.Name) == "" {
		return nil, ErrNameRequired
	}
	s.log.Debug("request to save tag", zap.String("name", t.Name))

	in := *t
	in.ID = uuid.NewString()
	return s.repo.Create(ctx, &in)
}

func (s *tagService) Update(ctx context.Context, t *model.Tag) (*model.Tag, error) {
	if t.ID == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(t.Name) == "" {
		return nil, ErrNameRequired
	}
	s.log.Debug("request to update tag", zap.String("id", t.ID))

	out, err := s.repo.Update(ctx, t)
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

func (s *tagService) List(ctx context.Context, limit, offset int) (*ListResult[model.Tag], error) {
	limit, offset = clampPage(limit, offset)
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Tag]{Items: res.Items, Total: res.Total}, nil
}

func (s *tagService) Get(ctx context.Context, id string) (*model.Tag, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (s *tagService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	s.log.Debug("request to delete tag", zap.String("id", id))
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFound(err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *tagService) AddDocument(ctx context.Context, tagID, documentID string) (*model.Tag, error) {
	t, doc, err := s.load(ctx, tagID, documentID)
	if err != nil {
		return nil, err
	}
	linked := doc.TagIDs.Has(t.ID)
	model.AddTagToDocument(t, doc)
	if linked {
		return t, nil
	}
	if _, err := s.docs.Update(ctx, doc); err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (s *tagService) RemoveDocument(ctx context.Context, tagID, documentID string) (*model.Tag, error) {
	t, doc, err := s.load(ctx, tagID, documentID)
	if err != nil {
		return nil, err
	}
	linked := doc.TagIDs.Has(t.ID)
	model.RemoveTagFromDocument(t, doc)
	if !linked {
		return t, nil
	}
	if _, err := s.docs.Update(ctx, doc); err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (s *tagService) load(ctx context.Context, tagID, documentID string) (*model.Tag, *model.AppDocument, error) {
	if tagID == "" || documentID == "" {
		return nil, nil, ErrIDRequired
	}
	t, err := s.repo.FindByID(ctx, tagID)
	if err != nil {
		return nil, nil, notFound(err)
	}
	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		return nil, nil, notFound(err)
	}
	return t, doc, nil
}
