package app

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/NotJorge/tienda-informatica/internal/domain"
)

type CategoryService struct {
	repo     domain.CategoryRepository
	cache    domain.Cache[domain.Category]
	notifier domain.Notifier
	group    singleflight.Group
}

func NewCategoryService(repo domain.CategoryRepository, cache domain.Cache[domain.Category], notifier domain.Notifier) *CategoryService {
	return &CategoryService{repo: repo, cache: cache, notifier: notifier}
}

func (s *CategoryService) FindAll(ctx context.Context, filter domain.CategoryFilter, p domain.Pageable) (*domain.PageResponse[domain.Category], error) {
	p = p.Normalize()
	categories, total, err := s.repo.FindAll(ctx, filter, p)
	if err != nil {
		return nil, err
	}
	resp := domain.NewPageResponse(categories, total, p)
	return &resp, nil
}

func (s *CategoryService) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	result, err, _ := s.group.Do(id.String(), func() (any, error) {
		if cached, ok := s.cache.Get(ctx, id.String()); ok {
			return &cached, nil
		}

		category, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		s.cache.Put(ctx, id.String(), *category)
		return category, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Category), nil
}

func (s *CategoryService) Create(ctx context.Context, req domain.CategoryCreateRequest) (*domain.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Category{Name: req.Name})
	if err != nil {
		return nil, err
	}

	s.cache.Put(ctx, created.ID.String(), *created)
	s.notifier.Broadcast(domain.ChannelCategory, domain.OperationCreate, created)
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req domain.CategoryUpdateRequest) (*domain.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}

	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		return nil, err
	}

	s.cache.Put(ctx, updated.ID.String(), *updated)
	s.notifier.Broadcast(domain.ChannelCategory, domain.OperationUpdate, updated)
	return updated, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Evict(ctx, id.String())
	s.notifier.Broadcast(domain.ChannelCategory, domain.OperationDelete, map[string]any{"id": id})
	return nil
}
