// Package httpserver exposes the REST API, the websocket notification
// endpoints and the operational endpoints over echo.
package httpserver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/NotJorge/tienda-informatica/internal/adapter/metrics"
	"github.com/NotJorge/tienda-informatica/internal/auth"
	"github.com/NotJorge/tienda-informatica/internal/config"
	"github.com/NotJorge/tienda-informatica/internal/domain"
	"github.com/NotJorge/tienda-informatica/internal/notify"
)

type productService interface {
	FindAll(ctx context.Context, filter domain.ProductFilter, p domain.Pageable) (*domain.PageResponse[domain.Product], error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, req domain.ProductCreateRequest) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, req domain.ProductUpdateRequest) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateImage(ctx context.Context, id uuid.UUID, upload io.Reader) (*domain.Product, error)
}

type categoryService interface {
	FindAll(ctx context.Context, filter domain.CategoryFilter, p domain.Pageable) (*domain.PageResponse[domain.Category], error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	Create(ctx context.Context, req domain.CategoryCreateRequest) (*domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, req domain.CategoryUpdateRequest) (*domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type supplierService interface {
	FindAll(ctx context.Context, filter domain.SupplierFilter, p domain.Pageable) (*domain.PageResponse[domain.Supplier], error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error)
	Create(ctx context.Context, req domain.SupplierCreateRequest) (*domain.Supplier, error)
	Update(ctx context.Context, id uuid.UUID, req domain.SupplierUpdateRequest) (*domain.Supplier, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type clientService interface {
	FindAll(ctx context.Context, filter domain.ClientFilter, p domain.Pageable) (*domain.PageResponse[domain.Client], error)
	FindByID(ctx context.Context, id int64) (*domain.Client, error)
	Create(ctx context.Context, req domain.ClientCreateRequest) (*domain.Client, error)
	Update(ctx context.Context, id int64, req domain.ClientUpdateRequest) (*domain.Client, error)
	Delete(ctx context.Context, id int64) error
	UpdateImage(ctx context.Context, id int64, upload io.Reader) (*domain.Client, error)
}

type employeeService interface {
	FindAll(ctx context.Context, filter domain.EmployeeFilter, p domain.Pageable) (*domain.PageResponse[domain.Employee], error)
	FindByID(ctx context.Context, id int64) (*domain.Employee, error)
	Create(ctx context.Context, req domain.EmployeeCreateRequest) (*domain.Employee, error)
	Update(ctx context.Context, id int64, req domain.EmployeeUpdateRequest) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type authService interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Services bundles the application services the server dispatches to.
type Services struct {
	Products   productService
	Categories categoryService
	Suppliers  supplierService
	Clients    clientService
	Employees  employeeService
	Auth       authService
}

// HealthCheck is a named health check function.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	services Services
	tokens   *auth.Manager
	notify   *notify.Registry

	metricsRegistry *prometheus.Registry
	httpMetrics     *metrics.HTTPMetrics
	healthChecks    []HealthCheck
	startTime       time.Time
}

func NewServer(cfg *config.Config, services Services, tokens *auth.Manager, registry *notify.Registry, metricsRegistry *prometheus.Registry, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:            e,
		config:          cfg,
		services:        services,
		tokens:          tokens,
		notify:          registry,
		metricsRegistry: metricsRegistry,
		httpMetrics:     metrics.NewHTTPMetrics(metricsRegistry),
		healthChecks:    healthChecks,
		startTime:       time.Now(),
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
