package httpserver

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/NotJorge/tienda-informatica/internal/auth"
	"github.com/NotJorge/tienda-informatica/internal/config"
	"github.com/NotJorge/tienda-informatica/internal/domain"
	"github.com/NotJorge/tienda-informatica/internal/notify"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

// --- Mock services ---

type mockProductService struct {
	findAllFn     func(ctx context.Context, filter domain.ProductFilter, p domain.Pageable) (*domain.PageResponse[domain.Product], error)
	findByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	createFn      func(ctx context.Context, req domain.ProductCreateRequest) (*domain.Product, error)
	updateFn      func(ctx context.Context, id uuid.UUID, req domain.ProductUpdateRequest) (*domain.Product, error)
	deleteFn      func(ctx context.Context, id uuid.UUID) error
	updateImageFn func(ctx context.Context, id uuid.UUID, upload io.Reader) (*domain.Product, error)
}

func (m *mockProductService) FindAll(ctx context.Context, filter domain.ProductFilter, p domain.Pageable) (*domain.PageResponse[domain.Product], error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, filter, p)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockProductService) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, domain.ErrProductNotFound
}

func (m *mockProductService) Create(ctx context.Context, req domain.ProductCreateRequest) (*domain.Product, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockProductService) Update(ctx context.Context, id uuid.UUID, req domain.ProductUpdateRequest) (*domain.Product, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, req)
	}
	return nil, domain.ErrProductNotFound
}

func (m *mockProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return domain.ErrProductNotFound
}

func (m *mockProductService) UpdateImage(ctx context.Context, id uuid.UUID, upload io.Reader) (*domain.Product, error) {
	if m.updateImageFn != nil {
		return m.updateImageFn(ctx, id, upload)
	}
	return nil, domain.ErrProductNotFound
}

type mockCategoryService struct {
	findAllFn  func(ctx context.Context, filter domain.CategoryFilter, p domain.Pageable) (*domain.PageResponse[domain.Category], error)
	findByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	createFn   func(ctx context.Context, req domain.CategoryCreateRequest) (*domain.Category, error)
	updateFn   func(ctx context.Context, id uuid.UUID, req domain.CategoryUpdateRequest) (*domain.Category, error)
	deleteFn   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCategoryService) FindAll(ctx context.Context, filter domain.CategoryFilter, p domain.Pageable) (*domain.PageResponse[domain.Category], error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, filter, p)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockCategoryService) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *mockCategoryService) Create(ctx context.Context, req domain.CategoryCreateRequest) (*domain.Category, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockCategoryService) Update(ctx context.Context, id uuid.UUID, req domain.CategoryUpdateRequest) (*domain.Category, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, req)
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *mockCategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return domain.ErrCategoryNotFound
}

type mockSupplierService struct {
	findAllFn  func(ctx context.Context, filter domain.SupplierFilter, p domain.Pageable) (*domain.PageResponse[domain.Supplier], error)
	findByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Supplier, error)
	createFn   func(ctx context.Context, req domain.SupplierCreateRequest) (*domain.Supplier, error)
	updateFn   func(ctx context.Context, id uuid.UUID, req domain.SupplierUpdateRequest) (*domain.Supplier, error)
	deleteFn   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSupplierService) FindAll(ctx context.Context, filter domain.SupplierFilter, p domain.Pageable) (*domain.PageResponse[domain.Supplier], error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, filter, p)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockSupplierService) FindByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, domain.ErrSupplierNotFound
}

func (m *mockSupplierService) Create(ctx context.Context, req domain.SupplierCreateRequest) (*domain.Supplier, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockSupplierService) Update(ctx context.Context, id uuid.UUID, req domain.SupplierUpdateRequest) (*domain.Supplier, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, req)
	}
	return nil, domain.ErrSupplierNotFound
}

func (m *mockSupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return domain.ErrSupplierNotFound
}

type mockClientService struct {
	findAllFn     func(ctx context.Context, filter domain.ClientFilter, p domain.Pageable) (*domain.PageResponse[domain.Client], error)
	findByIDFn    func(ctx context.Context, id int64) (*domain.Client, error)
	createFn      func(ctx context.Context, req domain.ClientCreateRequest) (*domain.Client, error)
	updateFn      func(ctx context.Context, id int64, req domain.ClientUpdateRequest) (*domain.Client, error)
	deleteFn      func(ctx context.Context, id int64) error
	updateImageFn func(ctx context.Context, id int64, upload io.Reader) (*domain.Client, error)
}

func (m *mockClientService) FindAll(ctx context.Context, filter domain.ClientFilter, p domain.Pageable) (*domain.PageResponse[domain.Client], error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, filter, p)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockClientService) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, domain.ErrClientNotFound
}

func (m *mockClientService) Create(ctx context.Context, req domain.ClientCreateRequest) (*domain.Client, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockClientService) Update(ctx context.Context, id int64, req domain.ClientUpdateRequest) (*domain.Client, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, req)
	}
	return nil, domain.ErrClientNotFound
}

func (m *mockClientService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return domain.ErrClientNotFound
}

func (m *mockClientService) UpdateImage(ctx context.Context, id int64, upload io.Reader) (*domain.Client, error) {
	if m.updateImageFn != nil {
		return m.updateImageFn(ctx, id, upload)
	}
	return nil, domain.ErrClientNotFound
}

type mockEmployeeService struct {
	findAllFn  func(ctx context.Context, filter domain.EmployeeFilter, p domain.Pageable) (*domain.PageResponse[domain.Employee], error)
	findByIDFn func(ctx context.Context, id int64) (*domain.Employee, error)
	createFn   func(ctx context.Context, req domain.EmployeeCreateRequest) (*domain.Employee, error)
	updateFn   func(ctx context.Context, id int64, req domain.EmployeeUpdateRequest) (*domain.Employee, error)
	deleteFn   func(ctx context.Context, id int64) error
}

func (m *mockEmployeeService) FindAll(ctx context.Context, filter domain.EmployeeFilter, p domain.Pageable) (*domain.PageResponse[domain.Employee], error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, filter, p)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockEmployeeService) FindByID(ctx context.Context, id int64) (*domain.Employee, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, domain.ErrEmployeeNotFound
}

func (m *mockEmployeeService) Create(ctx context.Context, req domain.EmployeeCreateRequest) (*domain.Employee, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockEmployeeService) Update(ctx context.Context, id int64, req domain.EmployeeUpdateRequest) (*domain.Employee, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, req)
	}
	return nil, domain.ErrEmployeeNotFound
}

func (m *mockEmployeeService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return domain.ErrEmployeeNotFound
}

type mockAuthService struct {
	loginFn func(ctx context.Context, username, password string) (string, error)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return "", fmt.Errorf("not implemented")
}

// --- Test server setup ---

type serverOption func(*Services, *[]HealthCheck)

func withProducts(m *mockProductService) serverOption {
	return func(s *Services, _ *[]HealthCheck) { s.Products = m }
}

func withCategories(m *mockCategoryService) serverOption {
	return func(s *Services, _ *[]HealthCheck) { s.Categories = m }
}

func withClients(m *mockClientService) serverOption {
	return func(s *Services, _ *[]HealthCheck) { s.Clients = m }
}

func withAuth(m *mockAuthService) serverOption {
	return func(s *Services, _ *[]HealthCheck) { s.Auth = m }
}

func withHealthChecks(checks ...HealthCheck) serverOption {
	return func(_ *Services, hc *[]HealthCheck) { *hc = checks }
}

func newTestServer(t *testing.T, opts ...serverOption) *Server {
	t.Helper()

	services := Services{
		Products:   &mockProductService{},
		Categories: &mockCategoryService{},
		Suppliers:  &mockSupplierService{},
		Clients:    &mockClientService{},
		Employees:  &mockEmployeeService{},
		Auth:       &mockAuthService{},
	}
	var healthChecks []HealthCheck
	for _, opt := range opts {
		opt(&services, &healthChecks)
	}

	cfg := &config.Config{AppEnv: "test", Port: "0", JWTSecret: testJWTSecret}
	tokens := auth.NewManager(testJWTSecret, time.Hour, clockwork.NewRealClock())
	registry := notify.NewRegistry(clockwork.NewRealClock(), 0, nil,
		domain.ChannelProduct, domain.ChannelCategory, domain.ChannelSupplier,
		domain.ChannelClient, domain.ChannelEmployee)
	t.Cleanup(registry.Stop)

	return NewServer(cfg, services, tokens, registry, prometheus.NewRegistry(), healthChecks)
}

func issueToken(t *testing.T, srv *Server, roles ...domain.Role) string {
	t.Helper()
	token, err := srv.tokens.Issue(&domain.User{Username: "tester", Roles: roles})
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}
	return token
}
