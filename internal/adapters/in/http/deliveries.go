package http

import (
	"errors"
	"net/http"
	"time"

	"encomendas/internal/core/application/usecases/commands"
	"encomendas/internal/core/application/usecases/queries"
	"encomendas/internal/core/domain/model/delivery"
	"encomendas/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type DeliveryHandlers struct {
	GetOrCreate commands.GetOrCreateDeliveryCommandHandler
	Finalize    commands.FinalizeDeliveryCommandHandler
	Delete      commands.DeleteDeliveryCommandHandler
}

// DeliveryRequest updates the delivery of an order. Absent fields keep their
// stored value.
type DeliveryRequest struct {
	Responsible   *string `json:"responsible" validate:"omitempty,max=100"`
	ScheduledDate *string `json:"scheduledDate" validate:"omitempty,datetime=2006-01-02"`
	DeliveredDate *string `json:"deliveredDate" validate:"omitempty,datetime=2006-01-02"`
	DeliveredTime *string `json:"deliveredTime"`
	DeliveredBy   *string `json:"deliveredBy" validate:"omitempty,max=100"`
	Signature     *string `json:"signature"`
	Notes         *string `json:"notes"`
}

type Delivery struct {
	ID            kernel.UUID `json:"id"`
	OrderID       kernel.UUID `json:"orderId"`
	Responsible   string      `json:"responsible"`
	ScheduledDate *string     `json:"scheduledDate"`
	DeliveredDate *string     `json:"deliveredDate"`
	DeliveredTime string      `json:"deliveredTime"`
	DeliveredBy   string      `json:"deliveredBy"`
	Signature     string      `json:"signature"`
	Notes         string      `json:"notes"`
	RealizedAt    *time.Time  `json:"realizedAt"`
	Completed     bool        `json:"completed"`
}

type FinalizeDeliveryResponse struct {
	Delivery      Delivery `json:"delivery"`
	Order         Order    `json:"order"`
	StatusChanged bool     `json:"statusChanged"`
}

func (r DeliveryRequest) fields() (delivery.Fields, error) {
	scheduled, errScheduled := parseDate("scheduledDate", r.ScheduledDate)
	delivered, errDelivered := parseDate("deliveredDate", r.DeliveredDate)
	if err := errors.Join(errScheduled, errDelivered); err != nil {
		return delivery.Fields{}, err
	}

	return delivery.Fields{
		Responsible:   r.Responsible,
		ScheduledDate: scheduled,
		DeliveredDate: delivered,
		DeliveredTime: r.DeliveredTime,
		DeliveredBy:   r.DeliveredBy,
		Signature:     r.Signature,
		Notes:         r.Notes,
	}, nil
}

func deliveryResponse(d *delivery.Delivery) Delivery {
	s := d.State()
	return Delivery{
		ID:            d.ID(),
		OrderID:       d.OrderID(),
		Responsible:   s.Responsible,
		ScheduledDate: optionalDate(s.ScheduledDate),
		DeliveredDate: optionalDate(s.DeliveredDate),
		DeliveredTime: s.DeliveredTime,
		DeliveredBy:   s.DeliveredBy,
		Signature:     s.Signature,
		Notes:         s.Notes,
		RealizedAt:    s.RealizedAt,
		Completed:     d.IsCompleted(),
	}
}

func deliveryViewResponse(orderID kernel.UUID, v queries.DeliveryView) *Delivery {
	return &Delivery{
		ID:            v.ID,
		OrderID:       orderID,
		Responsible:   v.Responsible,
		ScheduledDate: optionalDate(v.ScheduledDate),
		DeliveredDate: optionalDate(v.DeliveredDate),
		DeliveredTime: v.DeliveredTime,
		DeliveredBy:   v.DeliveredBy,
		Signature:     v.Signature,
		Notes:         v.Notes,
		RealizedAt:    v.RealizedAt,
		Completed:     v.Completed,
	}
}

type deliveryResource struct {
	h DeliveryHandlers
}

func (r deliveryResource) register(g *echo.Group) {
	g.GET("/orders/:id/delivery", r.get)
	g.PUT("/orders/:id/delivery", r.finalize)
	g.DELETE("/orders/:id/delivery", r.delete)
}

// get opens the delivery of an order, creating an empty one on first access.
func (r deliveryResource) get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewGetOrCreateDeliveryCommand(tenant(c), id)
	if err != nil {
		return err
	}
	d, err := r.h.GetOrCreate.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deliveryResponse(d))
}

func (r deliveryResource) finalize(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req DeliveryRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	fields, err := req.fields()
	if err != nil {
		return err
	}

	cmd, err := commands.NewFinalizeDeliveryCommand(tenant(c), id, fields)
	if err != nil {
		return err
	}
	res, err := r.h.Finalize.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, FinalizeDeliveryResponse{
		Delivery:      deliveryResponse(res.Delivery),
		Order:         orderResponse(res.Order),
		StatusChanged: res.StatusChanged,
	})
}

func (r deliveryResource) delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteDeliveryCommand(tenant(c), id)
	if err != nil {
		return err
	}
	if err := r.h.Delete.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
