package http

import (
	"context"
	"errors"
	"net/http"

	"encomendas/internal/core/application/usecases/commands"
	"encomendas/internal/core/application/usecases/queries"
	"encomendas/internal/core/domain/model/catalog"
	"encomendas/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type ClientRequest struct {
	Code      string `json:"code" validate:"max=50"`
	Name      string `json:"name" validate:"max=200"`
	Street    string `json:"street"`
	District  string `json:"district"`
	Reference string `json:"reference"`
	Phone     string `json:"phone"`
}

type Client struct {
	ID kernel.UUID `json:"id"`
	ClientRequest
}

type SupplierRequest struct {
	Code    string `json:"code" validate:"max=50"`
	Name    string `json:"name" validate:"max=200"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type Supplier struct {
	ID kernel.UUID `json:"id"`
	SupplierRequest
}

type ProductRequest struct {
	Code        string       `json:"code" validate:"max=50"`
	Name        string       `json:"name" validate:"max=200"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	BasePrice   kernel.Money `json:"basePrice"`
}

type Product struct {
	ID kernel.UUID `json:"id"`
	ProductRequest
}

// Page is a page of list results.
type Page[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

func clientFields(r ClientRequest) catalog.ClientFields {
	return catalog.ClientFields(r)
}

func clientResponse(c *catalog.Client) Client {
	return Client{ID: c.ID(), ClientRequest: ClientRequest(c.Fields())}
}

func supplierFields(r SupplierRequest) catalog.SupplierFields {
	return catalog.SupplierFields(r)
}

func supplierResponse(s *catalog.Supplier) Supplier {
	return Supplier{ID: s.ID(), SupplierRequest: SupplierRequest(s.Fields())}
}

func productFields(r ProductRequest) catalog.ProductFields {
	return catalog.ProductFields(r)
}

func productResponse(p *catalog.Product) Product {
	return Product{ID: p.ID(), ProductRequest: ProductRequest(p.Fields())}
}

type (
	catalogCreator[T, F any] interface {
		Handle(ctx context.Context, cmd commands.CreateCatalogEntryCommand[F]) (T, error)
	}
	catalogUpdater[T, F any] interface {
		Handle(ctx context.Context, cmd commands.UpdateCatalogEntryCommand[F]) (T, error)
	}
	catalogDeleter interface {
		Handle(ctx context.Context, cmd commands.DeleteCatalogEntryCommand) error
	}
)

// CatalogHandlers are the use cases behind one catalog resource. T is the
// entity and F its fields.
type CatalogHandlers[T, F any] struct {
	Create catalogCreator[T, F]
	Update catalogUpdater[T, F]
	Delete catalogDeleter
	Get    queries.GetCatalogEntryQueryHandler[T]
	List   queries.ListCatalogEntriesQueryHandler[T]
}

// catalogResource serves the CRUD endpoints of one catalog. R is the request
// body and V the response view.
type catalogResource[T, F, R, V any] struct {
	handlers CatalogHandlers[T, F]
	fields   func(R) F
	view     func(T) V
}

func (r catalogResource[T, F, R, V]) register(g *echo.Group, path string) {
	g.POST(path, r.create)
	g.GET(path, r.list)
	g.GET(path+"/:id", r.get)
	g.PUT(path+"/:id", r.update)
	g.DELETE(path+"/:id", r.delete)
}

func (r catalogResource[T, F, R, V]) create(c echo.Context) error {
	var req R
	if err := bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateCatalogEntryCommand(tenant(c), r.fields(req))
	if err != nil {
		return err
	}
	entry, err := r.handlers.Create.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r.view(entry))
}

func (r catalogResource[T, F, R, V]) update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req R
	if err := bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateCatalogEntryCommand(tenant(c), id, r.fields(req))
	if err != nil {
		return err
	}
	entry, err := r.handlers.Update.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r.view(entry))
}

func (r catalogResource[T, F, R, V]) delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var cascade *bool
	if err := queryParam(c, "cascade", &cascade); err != nil {
		return err
	}

	cmd, err := commands.NewDeleteCatalogEntryCommand(tenant(c), id, cascade != nil && *cascade)
	if err != nil {
		return err
	}
	if err := r.handlers.Delete.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (r catalogResource[T, F, R, V]) get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetCatalogEntryQuery(tenant(c), id)
	if err != nil {
		return err
	}
	entry, err := r.handlers.Get.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r.view(entry))
}

func (r catalogResource[T, F, R, V]) list(c echo.Context) error {
	var filter catalog.Filter
	var search *string
	var limit, offset *int
	if err := errors.Join(
		queryParam(c, "search", &search),
		queryParam(c, "limit", &limit),
		queryParam(c, "offset", &offset),
	); err != nil {
		return err
	}
	filter.Search = deref(search)
	filter.Limit = deref(limit)
	filter.Offset = deref(offset)

	query, err := queries.NewListCatalogEntriesQuery(tenant(c), filter)
	if err != nil {
		return err
	}
	page, err := r.handlers.List.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	views := make([]V, 0, len(page.Entries))
	for _, entry := range page.Entries {
		views = append(views, r.view(entry))
	}
	return c.JSON(http.StatusOK, Page[V]{Items: views, Total: page.Total, Limit: page.Limit, Offset: page.Offset})
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
