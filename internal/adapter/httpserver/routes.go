package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/NotJorge/tienda-informatica/internal/adapter/metrics"
)

func (s *Server) registerRoutes() {
	s.echo.Use(correlationMiddleware)
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(ErrorHandlingMiddleware(s.httpMetrics))
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	s.registerHealthRoutes()

	s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler(s.metricsRegistry)))

	s.echo.POST("/api/auth/login", s.handleLogin)

	requireUser := s.requireRoleMiddleware(readerRole)
	requireAdmin := s.requireRoleMiddleware(writerRole)

	api := s.echo.Group("/api", s.authMiddleware)

	products := api.Group("/products")
	products.GET("", s.handleListProducts, requireUser)
	products.GET("/:id", s.handleGetProduct, requireUser)
	products.POST("", s.handleCreateProduct, requireAdmin)
	products.PUT("/:id", s.handleUpdateProduct, requireAdmin)
	products.DELETE("/:id", s.handleDeleteProduct, requireAdmin)
	products.PATCH("/:id/image", s.handleUpdateProductImage, requireAdmin)

	categories := api.Group("/categories")
	categories.GET("", s.handleListCategories, requireUser)
	categories.GET("/:id", s.handleGetCategory, requireUser)
	categories.POST("", s.handleCreateCategory, requireAdmin)
	categories.PUT("/:id", s.handleUpdateCategory, requireAdmin)
	categories.DELETE("/:id", s.handleDeleteCategory, requireAdmin)

	suppliers := api.Group("/suppliers")
	suppliers.GET("", s.handleListSuppliers, requireUser)
	suppliers.GET("/:id", s.handleGetSupplier, requireUser)
	suppliers.POST("", s.handleCreateSupplier, requireAdmin)
	suppliers.PUT("/:id", s.handleUpdateSupplier, requireAdmin)
	suppliers.DELETE("/:id", s.handleDeleteSupplier, requireAdmin)

	clients := api.Group("/clients")
	clients.GET("", s.handleListClients, requireUser)
	clients.GET("/:id", s.handleGetClient, requireUser)
	clients.POST("", s.handleCreateClient, requireAdmin)
	clients.PUT("/:id", s.handleUpdateClient, requireAdmin)
	clients.DELETE("/:id", s.handleDeleteClient, requireAdmin)
	clients.PATCH("/:id/image", s.handleUpdateClientImage, requireAdmin)

	employees := api.Group("/employees")
	employees.GET("", s.handleListEmployees, requireUser)
	employees.GET("/:id", s.handleGetEmployee, requireUser)
	employees.POST("", s.handleCreateEmployee, requireAdmin)
	employees.PUT("/:id", s.handleUpdateEmployee, requireAdmin)
	employees.DELETE("/:id", s.handleDeleteEmployee, requireAdmin)

	s.registerNotificationRoutes()
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.Info("Request", attrs...)
			return nil
		},
	})
}
