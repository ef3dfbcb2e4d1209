package app

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/NotJorge/tienda-informatica/internal/domain"
)

type SupplierService struct {
	repo     domain.SupplierRepository
	cache    domain.Cache[domain.Supplier]
	notifier domain.Notifier
	group    singleflight.Group
}

func NewSupplierService(repo domain.SupplierRepository, cache domain.Cache[domain.Supplier], notifier domain.Notifier) *SupplierService {
	return &SupplierService{repo: repo, cache: cache, notifier: notifier}
}

func (s *SupplierService) FindAll(ctx context.Context, filter domain.SupplierFilter, p domain.Pageable) (*domain.PageResponse[domain.Supplier], error) {
	p = p.Normalize()
	suppliers, total, err := s.repo.FindAll(ctx, filter, p)
	if err != nil {
		return nil, err
	}
	resp := domain.NewPageResponse(suppliers, total, p)
	return &resp, nil
}

func (s *SupplierService) FindByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	result, err, _ := s.group.Do(id.String(), func() (any, error) {
		if cached, ok := s.cache.Get(ctx, id.String()); ok {
			return &cached, nil
		}

		supplier, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		s.cache.Put(ctx, id.String(), *supplier)
		return supplier, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Supplier), nil
}

func (s *SupplierService) Create(ctx context.Context, req domain.SupplierCreateRequest) (*domain.Supplier, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	supplier := &domain.Supplier{
		Name:    req.Name,
		Contact: req.Contact,
		Address: req.Address,
	}

	created, err := s.repo.Create(ctx, supplier)
	if err != nil {
		return nil, err
	}

	s.cache.Put(ctx, created.ID.String(), *created)
	s.notifier.Broadcast(domain.ChannelSupplier, domain.OperationCreate, created)
	return created, nil
}

func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req domain.SupplierUpdateRequest) (*domain.Supplier, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.Contact != nil {
		supplier.Contact = *req.Contact
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}

	updated, err := s.repo.Update(ctx, supplier)
	if err != nil {
		return nil, err
	}

	s.cache.Put(ctx, updated.ID.String(), *updated)
	s.notifier.Broadcast(domain.ChannelSupplier, domain.OperationUpdate, updated)
	return updated, nil
}

func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Evict(ctx, id.String())
	s.notifier.Broadcast(domain.ChannelSupplier, domain.OperationDelete, map[string]any{"id": id})
	return nil
}
