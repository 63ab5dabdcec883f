package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"encomendas/internal/core/application/usecases/commands"
	"encomendas/internal/core/application/usecases/queries"
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// OrderHandlers are the use cases behind the order endpoints.
type OrderHandlers struct {
	Create      commands.CreateOrderCommandHandler
	Update      commands.UpdateOrderCommandHandler
	Delete      commands.DeleteOrderCommandHandler
	AddItem     commands.AddOrderItemCommandHandler
	UpdateItem  commands.UpdateOrderItemCommandHandler
	RemoveItem  commands.RemoveOrderItemCommandHandler
	Recalculate commands.RecalculateOrderTotalCommandHandler
	SetStatus   commands.SetOrderStatusCommandHandler
	Detail      queries.GetOrderDetailQueryHandler
	List        queries.ListOrdersQueryHandler
	Dashboard   queries.GetDashboardQueryHandler
}

type OrderItemRequest struct {
	ProductID   kernel.UUID  `json:"productId"`
	SupplierID  kernel.UUID  `json:"supplierId"`
	Quantity    int          `json:"quantity"`
	QuotedPrice kernel.Money `json:"quotedPrice"`
	Notes       string       `json:"notes"`
}

type CreateOrderRequest struct {
	ClientID             kernel.UUID        `json:"clientId"`
	Responsible          string             `json:"responsible"`
	OrderedAt            *string            `json:"orderedAt" validate:"omitempty,datetime=2006-01-02"`
	ExpectedDeliveryDate *string            `json:"expectedDeliveryDate" validate:"omitempty,datetime=2006-01-02"`
	AdvancePaid          kernel.Money       `json:"advancePaid"`
	Notes                string             `json:"notes"`
	Items                []OrderItemRequest `json:"items" validate:"max=200,dive"`
}

// UpdateOrderRequest is a partial header update. Absent fields are kept; an
// explicit null expectedDeliveryDate clears it.
type UpdateOrderRequest struct {
	ClientID             *kernel.UUID  `json:"clientId"`
	Responsible          *string       `json:"responsible"`
	OrderedAt            *string       `json:"orderedAt" validate:"omitempty,datetime=2006-01-02"`
	ExpectedDeliveryDate nullableDate  `json:"expectedDeliveryDate"`
	AdvancePaid          *kernel.Money `json:"advancePaid"`
	Notes                *string       `json:"notes"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// nullableDate tells an absent date from an explicit null.
type nullableDate struct {
	Set   bool
	Value *time.Time
}

func (d *nullableDate) UnmarshalJSON(data []byte) error {
	d.Set = true
	if string(data) == "null" {
		d.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := kernel.ParseDate("expectedDeliveryDate", s)
	if err != nil {
		return err
	}
	d.Value = &t
	return nil
}

type OrderItem struct {
	ID          kernel.UUID  `json:"id"`
	ProductID   kernel.UUID  `json:"productId"`
	SupplierID  kernel.UUID  `json:"supplierId"`
	Quantity    int          `json:"quantity"`
	QuotedPrice kernel.Money `json:"quotedPrice"`
	LineTotal   kernel.Money `json:"lineTotal"`
	Notes       string       `json:"notes"`
}

// Order is the state of an order right after a change.
type Order struct {
	ID                   kernel.UUID  `json:"id"`
	Number               int64        `json:"number"`
	ClientID             kernel.UUID  `json:"clientId"`
	Responsible          string       `json:"responsible"`
	OrderedAt            string       `json:"orderedAt"`
	ExpectedDeliveryDate *string      `json:"expectedDeliveryDate"`
	AdvancePaid          kernel.Money `json:"advancePaid"`
	Notes                string       `json:"notes"`
	Status               order.Status `json:"status"`
	StatusLabel          string       `json:"statusLabel"`
	Total                kernel.Money `json:"total"`
	RemainingBalance     kernel.Money `json:"remainingBalance"`
	Version              int          `json:"version"`
	Items                []OrderItem  `json:"items"`
}

type OrderSummary struct {
	ID                   kernel.UUID  `json:"id"`
	Number               int64        `json:"number"`
	ClientID             kernel.UUID  `json:"clientId"`
	ClientCode           string       `json:"clientCode"`
	ClientName           string       `json:"clientName"`
	Responsible          string       `json:"responsible"`
	OrderedAt            string       `json:"orderedAt"`
	ExpectedDeliveryDate *string      `json:"expectedDeliveryDate"`
	Status               order.Status `json:"status"`
	StatusLabel          string       `json:"statusLabel"`
	Total                kernel.Money `json:"total"`
	AdvancePaid          kernel.Money `json:"advancePaid"`
	RemainingBalance     kernel.Money `json:"remainingBalance"`
}

type OrderDetailItem struct {
	ID           kernel.UUID  `json:"id"`
	ProductID    kernel.UUID  `json:"productId"`
	ProductCode  string       `json:"productCode"`
	ProductName  string       `json:"productName"`
	SupplierID   kernel.UUID  `json:"supplierId"`
	SupplierCode string       `json:"supplierCode"`
	SupplierName string       `json:"supplierName"`
	Quantity     int          `json:"quantity"`
	QuotedPrice  kernel.Money `json:"quotedPrice"`
	LineTotal    kernel.Money `json:"lineTotal"`
	Notes        string       `json:"notes"`
}

type OrderDetail struct {
	OrderSummary
	Notes     string            `json:"notes"`
	Version   int               `json:"version"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Items     []OrderDetailItem `json:"items"`
	Delivery  *Delivery         `json:"delivery"`
}

type Dashboard struct {
	TotalOrders     int64          `json:"totalOrders"`
	PendingOrders   int64          `json:"pendingOrders"`
	DeliveredOrders int64          `json:"deliveredOrders"`
	LatestOrders    []OrderSummary `json:"latestOrders"`
}

func (r CreateOrderRequest) header() (order.Header, error) {
	orderedAt, errOrdered := parseDate("orderedAt", r.OrderedAt)
	expected, errExpected := parseDate("expectedDeliveryDate", r.ExpectedDeliveryDate)
	if err := errors.Join(errOrdered, errExpected); err != nil {
		return order.Header{}, err
	}

	h := order.Header{
		Responsible:          r.Responsible,
		ExpectedDeliveryDate: expected,
		AdvancePaid:          r.AdvancePaid,
		Notes:                r.Notes,
	}
	if orderedAt != nil {
		h.OrderedAt = *orderedAt
	}
	return h, nil
}

func (r UpdateOrderRequest) patch() (commands.OrderPatch, error) {
	orderedAt, err := parseDate("orderedAt", r.OrderedAt)
	if err != nil {
		return commands.OrderPatch{}, err
	}

	p := commands.OrderPatch{
		ClientID:    r.ClientID,
		Responsible: r.Responsible,
		OrderedAt:   orderedAt,
		AdvancePaid: r.AdvancePaid,
		Notes:       r.Notes,
	}
	if r.ExpectedDeliveryDate.Set {
		p.ExpectedDeliveryDate = r.ExpectedDeliveryDate.Value
		p.ClearExpectedDeliveryDate = r.ExpectedDeliveryDate.Value == nil
	}
	return p, nil
}

func (r OrderItemRequest) spec() commands.OrderItemSpec {
	return commands.OrderItemSpec(r)
}

func optionalID(id *openapi_types.UUID) kernel.UUID {
	if id == nil {
		return kernel.UUID{}
	}
	return kernel.UUIDFromGoogle(*id)
}

func optionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := kernel.FormatDate(t)
	return &s
}

func orderResponse(o *order.Order) Order {
	h := o.Header()
	items := make([]OrderItem, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, OrderItem{
			ID:          it.ID(),
			ProductID:   it.ProductID(),
			SupplierID:  it.SupplierID(),
			Quantity:    it.Quantity(),
			QuotedPrice: it.QuotedPrice(),
			LineTotal:   it.LineTotal(),
			Notes:       it.Notes(),
		})
	}

	return Order{
		ID:                   o.ID(),
		Number:               o.Number(),
		ClientID:             o.ClientID(),
		Responsible:          h.Responsible,
		OrderedAt:            kernel.FormatDate(&h.OrderedAt),
		ExpectedDeliveryDate: optionalDate(h.ExpectedDeliveryDate),
		AdvancePaid:          h.AdvancePaid,
		Notes:                h.Notes,
		Status:               o.Status(),
		StatusLabel:          o.Status().Label(),
		Total:                o.Total(),
		RemainingBalance:     o.RemainingBalance(),
		Version:              o.Version(),
		Items:                items,
	}
}

func summaryResponse(s queries.OrderSummary) OrderSummary {
	return OrderSummary{
		ID:                   s.ID,
		Number:               s.Number,
		ClientID:             s.ClientID,
		ClientCode:           s.ClientCode,
		ClientName:           s.ClientName,
		Responsible:          s.Responsible,
		OrderedAt:            kernel.FormatDate(&s.OrderedAt),
		ExpectedDeliveryDate: optionalDate(s.ExpectedDeliveryDate),
		Status:               s.Status,
		StatusLabel:          s.Status.Label(),
		Total:                s.Total,
		AdvancePaid:          s.AdvancePaid,
		RemainingBalance:     s.RemainingBalance,
	}
}

func summariesResponse(in []queries.OrderSummary) []OrderSummary {
	out := make([]OrderSummary, 0, len(in))
	for _, s := range in {
		out = append(out, summaryResponse(s))
	}
	return out
}

func detailResponse(d *queries.OrderDetail) OrderDetail {
	items := make([]OrderDetailItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, OrderDetailItem(it))
	}

	out := OrderDetail{
		OrderSummary: summaryResponse(d.OrderSummary),
		Notes:        d.Notes,
		Version:      d.Version,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
		Items:        items,
	}
	if d.Delivery != nil {
		out.Delivery = deliveryViewResponse(d.ID, *d.Delivery)
	}
	return out
}

type orderResource struct {
	h OrderHandlers
}

func (r orderResource) register(g *echo.Group) {
	g.GET("/dashboard", r.dashboard)
	g.POST("/orders", r.create)
	g.GET("/orders", r.list)
	g.GET("/orders/:id", r.get)
	g.PATCH("/orders/:id", r.update)
	g.DELETE("/orders/:id", r.delete)
	g.POST("/orders/:id/items", r.addItem)
	g.PUT("/orders/:id/items/:itemId", r.updateItem)
	g.DELETE("/orders/:id/items/:itemId", r.removeItem)
	g.POST("/orders/:id/recalculate", r.recalculate)
	g.POST("/orders/:id/status", r.setStatus)
}

func (r orderResource) create(c echo.Context) error {
	var req CreateOrderRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	header, err := req.header()
	if err != nil {
		return err
	}
	items := make([]commands.OrderItemSpec, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, it.spec())
	}

	cmd, err := commands.NewCreateOrderCommand(tenant(c), req.ClientID, header, items)
	if err != nil {
		return err
	}
	o, err := r.h.Create.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, orderResponse(o))
}

func (r orderResource) list(c echo.Context) error {
	var (
		status, search *string
		clientID       *openapi_types.UUID
		limit, offset  *int
	)
	if err := errors.Join(
		queryParam(c, "status", &status),
		queryParam(c, "clientId", &clientID),
		queryParam(c, "search", &search),
		queryParam(c, "limit", &limit),
		queryParam(c, "offset", &offset),
	); err != nil {
		return err
	}

	query, err := queries.NewListOrdersQuery(tenant(c), queries.OrderFilter{
		Status:   deref(status),
		ClientID: optionalID(clientID),
		Search:   deref(search),
		Limit:    deref(limit),
		Offset:   deref(offset),
	})
	if err != nil {
		return err
	}
	page, err := r.h.List.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Page[OrderSummary]{
		Items:  summariesResponse(page.Orders),
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

func (r orderResource) get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderDetailQuery(tenant(c), id)
	if err != nil {
		return err
	}
	detail, err := r.h.Detail.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detailResponse(detail))
}

func (r orderResource) update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateOrderRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	patch, err := req.patch()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderCommand(tenant(c), id, patch)
	if err != nil {
		return err
	}
	o, err := r.h.Update.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderResponse(o))
}

func (r orderResource) delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(tenant(c), id)
	if err != nil {
		return err
	}
	if err := r.h.Delete.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (r orderResource) addItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req OrderItemRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewAddOrderItemCommand(tenant(c), id, req.spec())
	if err != nil {
		return err
	}
	o, err := r.h.AddItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, orderResponse(o))
}

func (r orderResource) updateItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	var req OrderItemRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderItemCommand(tenant(c), id, itemID, req.spec())
	if err != nil {
		return err
	}
	o, err := r.h.UpdateItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderResponse(o))
}

func (r orderResource) removeItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveOrderItemCommand(tenant(c), id, itemID)
	if err != nil {
		return err
	}
	o, err := r.h.RemoveItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderResponse(o))
}

func (r orderResource) recalculate(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewRecalculateOrderTotalCommand(tenant(c), id)
	if err != nil {
		return err
	}
	o, err := r.h.Recalculate.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderResponse(o))
}

func (r orderResource) setStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req SetStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSetOrderStatusCommand(tenant(c), id, req.Status)
	if err != nil {
		return err
	}
	o, err := r.h.SetStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderResponse(o))
}

func (r orderResource) dashboard(c echo.Context) error {
	query, err := queries.NewGetDashboardQuery(tenant(c))
	if err != nil {
		return err
	}
	d, err := r.h.Dashboard.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Dashboard{
		TotalOrders:     d.TotalOrders,
		PendingOrders:   d.PendingOrders,
		DeliveredOrders: d.DeliveredOrders,
		LatestOrders:    summariesResponse(d.LatestOrders),
	})
}
