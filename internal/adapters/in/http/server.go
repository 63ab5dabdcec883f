package http

import (
	"context"
	"net/http"

	"encomendas/internal/core/domain/model/catalog"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

// Handlers groups the use cases the API exposes.
type Handlers struct {
	Clients    CatalogHandlers[*catalog.Client, catalog.ClientFields]
	Suppliers  CatalogHandlers[*catalog.Supplier, catalog.SupplierFields]
	Products   CatalogHandlers[*catalog.Product, catalog.ProductFields]
	Orders     OrderHandlers
	Deliveries DeliveryHandlers
}

// Server routes HTTP requests to the application use cases.
type Server struct {
	handlers Handlers
	doc      *openapi3.T
	logger   *zap.Logger
}

// NewServer loads the API contract and registers it for the swagger UI.
func NewServer(ctx context.Context, handlers Handlers, logger *zap.Logger) (*Server, error) {
	doc, err := LoadSpec(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerSwaggerDoc(doc); err != nil {
		return nil, err
	}

	return &Server{
		handlers: handlers,
		doc:      doc,
		logger:   logger,
	}, nil
}

// Register installs the middleware chain and every route on e.
func (s *Server) Register(e *echo.Echo) error {
	validation, err := RequestValidation(s.doc)
	if err != nil {
		return err
	}

	e.HideBanner = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(s.logger)

	e.Use(middleware.RequestID())
	e.Use(ContextLogger(s.logger))
	e.Use(AccessLog(s.logger))
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", openAPISpec)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(apiPrefix, validation, TenantMiddleware())
	catalogResource[*catalog.Client, catalog.ClientFields, ClientRequest, Client]{
		handlers: s.handlers.Clients, fields: clientFields, view: clientResponse,
	}.register(api, "/clients")
	catalogResource[*catalog.Supplier, catalog.SupplierFields, SupplierRequest, Supplier]{
		handlers: s.handlers.Suppliers, fields: supplierFields, view: supplierResponse,
	}.register(api, "/suppliers")
	catalogResource[*catalog.Product, catalog.ProductFields, ProductRequest, Product]{
		handlers: s.handlers.Products, fields: productFields, view: productResponse,
	}.register(api, "/products")
	orderResource{h: s.handlers.Orders}.register(api)
	deliveryResource{h: s.handlers.Deliveries}.register(api)

	return nil
}
