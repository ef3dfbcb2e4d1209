package app

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/NotJorge/tienda-informatica/internal/domain"
)

// --- Mock implementations ---

type mockProductRepo struct {
	findAllFn  func(ctx context.Context, filter domain.ProductFilter, p domain.Pageable) ([]domain.Product, int64, error)
	findByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	createFn   func(ctx context.Context, product *domain.Product) (*domain.Product, error)
	updateFn   func(ctx context.Context, product *domain.Product) (*domain.Product, error)
	deleteFn   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockProductRepo) FindAll(ctx context.Context, filter domain.ProductFilter, p domain.Pageable) ([]domain.Product, int64, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, filter, p)
	}
	return nil, 0, fmt.Errorf("not implemented")
}

func (m *mockProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, domain.ErrProductNotFound
}

func (m *mockProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if m.createFn != nil {
		return m.createFn(ctx, product)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, product)
	}
	return nil, domain.ErrProductNotFound
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return domain.ErrProductNotFound
}

type mockClientRepo struct {
	findAllFn  func(ctx context.Context, filter domain.ClientFilter, p domain.Pageable) ([]domain.Client, int64, error)
	findByIDFn func(ctx context.Context, id int64) (*domain.Client, error)
	createFn   func(ctx context.Context, client *domain.Client) (*domain.Client, error)
	updateFn   func(ctx context.Context, client *domain.Client) (*domain.Client, error)
	deleteFn   func(ctx context.Context, id int64) error
}

func (m *mockClientRepo) FindAll(ctx context.Context, filter domain.ClientFilter, p domain.Pageable) ([]domain.Client, int64, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, filter, p)
	}
	return nil, 0, fmt.Errorf("not implemented")
}

func (m *mockClientRepo) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, domain.ErrClientNotFound
}

func (m *mockClientRepo) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if m.createFn != nil {
		return m.createFn(ctx, client)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockClientRepo) Update(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, client)
	}
	return nil, domain.ErrClientNotFound
}

func (m *mockClientRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return domain.ErrClientNotFound
}

type mockUserRepo struct {
	findByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	createFn         func(ctx context.Context, user *domain.User) (*domain.User, error)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil, fmt.Errorf("not implemented")
}

// memoryCache is a map-backed domain.Cache used to observe cache traffic.
type memoryCache[T any] struct {
	mu      sync.Mutex
	entries map[string]T
}

func newMemoryCache[T any]() *memoryCache[T] {
	return &memoryCache[T]{entries: make(map[string]T)}
}

func (c *memoryCache[T]) Get(_ context.Context, key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *memoryCache[T]) Put(_ context.Context, key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *memoryCache[T]) Evict(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *memoryCache[T]) contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// recordingNotifier captures every broadcast for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []broadcastEvent
}

type broadcastEvent struct {
	entity  string
	op      domain.Operation
	payload any
}

func (n *recordingNotifier) Broadcast(entity string, op domain.Operation, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, broadcastEvent{entity: entity, op: op, payload: payload})
}

func (n *recordingNotifier) recorded() []broadcastEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]broadcastEvent(nil), n.events...)
}

type mockImageStore struct {
	saveFn   func(r io.Reader) (string, error)
	removed  []string
	removeMu sync.Mutex
}

func (m *mockImageStore) Save(r io.Reader) (string, error) {
	if m.saveFn != nil {
		return m.saveFn(r)
	}
	return "stored.jpg", nil
}

func (m *mockImageStore) Remove(name string) error {
	m.removeMu.Lock()
	defer m.removeMu.Unlock()
	m.removed = append(m.removed, name)
	return nil
}
