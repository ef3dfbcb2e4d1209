package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/NotJorge/tienda-informatica/internal/domain"
)

// ProductService orchestrates product use cases. Mutations broadcast on the
// product channel only after the repository commit succeeds; cache writes are
// best-effort and never fail the operation.
type ProductService struct {
	repo     domain.ProductRepository
	cache    domain.Cache[domain.Product]
	notifier domain.Notifier
	images   ImageStore
	group    singleflight.Group
}

func NewProductService(repo domain.ProductRepository, cache domain.Cache[domain.Product], notifier domain.Notifier, images ImageStore) *ProductService {
	return &ProductService{repo: repo, cache: cache, notifier: notifier, images: images}
}

func (s *ProductService) FindAll(ctx context.Context, filter domain.ProductFilter, p domain.Pageable) (*domain.PageResponse[domain.Product], error) {
	p = p.Normalize()
	products, total, err := s.repo.FindAll(ctx, filter, p)
	if err != nil {
		return nil, err
	}
	resp := domain.NewPageResponse(products, total, p)
	return &resp, nil
}

// FindByID reads through the cache. Concurrent lookups for the same id are
// collapsed into a single repository query.
func (s *ProductService) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	result, err, _ := s.group.Do(id.String(), func() (any, error) {
		if cached, ok := s.cache.Get(ctx, id.String()); ok {
			return &cached, nil
		}

		product, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		s.cache.Put(ctx, id.String(), *product)
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Product), nil
}

func (s *ProductService) Create(ctx context.Context, req domain.ProductCreateRequest) (*domain.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        req.Name,
		Weight:      req.Weight,
		Price:       req.Price,
		Stock:       req.Stock,
		Description: req.Description,
		CategoryID:  uuid.MustParse(req.CategoryID),
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.cache.Put(ctx, created.ID.String(), *created)
	s.notifier.Broadcast(domain.ChannelProduct, domain.OperationCreate, created)
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req domain.ProductUpdateRequest) (*domain.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Weight != nil {
		product.Weight = *req.Weight
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.CategoryID != nil {
		product.CategoryID = uuid.MustParse(*req.CategoryID)
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, err
	}

	s.cache.Put(ctx, updated.ID.String(), *updated)
	s.notifier.Broadcast(domain.ChannelProduct, domain.OperationUpdate, updated)
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Evict(ctx, id.String())
	s.notifier.Broadcast(domain.ChannelProduct, domain.OperationDelete, map[string]any{"id": id})
	return nil
}

// UpdateImage stores a new image for the product, replacing and removing the
// previous one.
func (s *ProductService) UpdateImage(ctx context.Context, id uuid.UUID, upload io.Reader) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, err := s.images.Save(upload)
	if err != nil {
		return nil, err
	}

	previous := product.Image
	product.Image = name

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		if rmErr := s.images.Remove(name); rmErr != nil {
			slog.Warn("Failed to remove orphaned product image", "image", name, "error", rmErr)
		}
		return nil, err
	}

	if previous != "" {
		if err := s.images.Remove(previous); err != nil {
			slog.Warn("Failed to remove replaced product image", "image", previous, "error", err)
		}
	}

	s.cache.Put(ctx, updated.ID.String(), *updated)
	s.notifier.Broadcast(domain.ChannelProduct, domain.OperationUpdate, updated)
	return updated, nil
}
