package app

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/NotJorge/tienda-informatica/internal/domain"
)

// ClientService orchestrates client use cases. Deletes are soft: the row is
// flagged instead of removed, and a flagged client behaves like a missing one
// everywhere except listings that ask for deleted rows explicitly.
type ClientService struct {
	repo     domain.ClientRepository
	cache    domain.Cache[domain.Client]
	notifier domain.Notifier
	images   ImageStore
	group    singleflight.Group
}

func NewClientService(repo domain.ClientRepository, cache domain.Cache[domain.Client], notifier domain.Notifier, images ImageStore) *ClientService {
	return &ClientService{repo: repo, cache: cache, notifier: notifier, images: images}
}

func (s *ClientService) FindAll(ctx context.Context, filter domain.ClientFilter, p domain.Pageable) (*domain.PageResponse[domain.Client], error) {
	p = p.Normalize()
	clients, total, err := s.repo.FindAll(ctx, filter, p)
	if err != nil {
		return nil, err
	}
	resp := domain.NewPageResponse(clients, total, p)
	return &resp, nil
}

func (s *ClientService) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	key := strconv.FormatInt(id, 10)
	result, err, _ := s.group.Do(key, func() (any, error) {
		if cached, ok := s.cache.Get(ctx, key); ok {
			return &cached, nil
		}

		client, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		s.cache.Put(ctx, key, *client)
		return client, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Client), nil
}

func (s *ClientService) Create(ctx context.Context, req domain.ClientCreateRequest) (*domain.Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	client := &domain.Client{
		Username: req.Username,
		Name:     req.Name,
		Address:  req.Address,
		Email:    req.Email,
		Phone:    req.Phone,
	}

	created, err := s.repo.Create(ctx, client)
	if err != nil {
		return nil, err
	}

	s.cache.Put(ctx, strconv.FormatInt(created.ID, 10), *created)
	s.notifier.Broadcast(domain.ChannelClient, domain.OperationCreate, created)
	return created, nil
}

func (s *ClientService) Update(ctx context.Context, id int64, req domain.ClientUpdateRequest) (*domain.Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}

	updated, err := s.repo.Update(ctx, client)
	if err != nil {
		return nil, err
	}

	s.cache.Put(ctx, strconv.FormatInt(updated.ID, 10), *updated)
	s.notifier.Broadcast(domain.ChannelClient, domain.OperationUpdate, updated)
	return updated, nil
}

func (s *ClientService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Evict(ctx, strconv.FormatInt(id, 10))
	s.notifier.Broadcast(domain.ChannelClient, domain.OperationDelete, map[string]any{"id": id})
	return nil
}

func (s *ClientService) UpdateImage(ctx context.Context, id int64, upload io.Reader) (*domain.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, err := s.images.Save(upload)
	if err != nil {
		return nil, err
	}

	previous := client.Image
	client.Image = name

	updated, err := s.repo.Update(ctx, client)
	if err != nil {
		if rmErr := s.images.Remove(name); rmErr != nil {
			slog.Warn("Failed to remove orphaned client image", "image", name, "error", rmErr)
		}
		return nil, err
	}

	if previous != "" {
		if err := s.images.Remove(previous); err != nil {
			slog.Warn("Failed to remove replaced client image", "image", previous, "error", err)
		}
	}

	s.cache.Put(ctx, strconv.FormatInt(updated.ID, 10), *updated)
	s.notifier.Broadcast(domain.ChannelClient, domain.OperationUpdate, updated)
	return updated, nil
}
