package usecasees

import (
	"alpaca/internal/controllers"
	"alpaca/internal/usecasees/structs"
	"alpaca/models"
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type orderUseCase struct {
	upstream

	tgmController controllers.TgmCtrl

	url string
}

func NewOrderUseCase(
	client controllers.ClientCtrl,
	tgm controllers.TgmCtrl,
	url string,
	metrics Metrics,
	logger *logrus.Logger,
) *orderUseCase {
	return &orderUseCase{
		upstream: upstream{
			clientController: client,
			metrics:          metrics,
			logger:           logger,
		},
		tgmController: tgm,
		url:           url,
	}
}

// Submit validates the request and places the order. Invalid requests never
// reach the brokerage.
func (u *orderUseCase) Submit(ctx context.Context, req *structs.OrderRequest) (*models.Order, error) {
	spec, err := req.Build()
	if err != nil {
		u.inc(structs.MetricOrderInvalid)
		return nil, err
	}

	return u.place(ctx, spec.Payload())
}

func (u *orderUseCase) place(ctx context.Context, payload *structs.OrderPayload) (*models.Order, error) {
	target, err := buildURL(u.url, nil, ordersUrlPath)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := u.do(ctx, http.MethodPost, target, payload, &order); err != nil {
		u.logger.
			WithField("method", "place").
			WithField("symbol", payload.Symbol).
			WithField("type", payload.Type).
			WithError(err).
			Info("order rejected")

		return nil, err
	}

	u.inc(structs.MetricOrderSubmitted)

	u.logger.
		WithField("method", "place").
		WithField("order_id", order.ID).
		WithField("status", order.Status).
		Info("order submitted")

	u.notify(u.tgmController, fmt.Sprintf(
		"[ Order ]\n%s %s %s %s\nStatus:\t%s\nID:\t%s",
		order.Side,
		orderAmount(&order),
		order.Symbol,
		order.Type,
		order.Status,
		order.ID,
	))

	return &order, nil
}

// List returns the orders matching the status filter in the order the
// brokerage reports them.
func (u *orderUseCase) List(ctx context.Context, query *structs.OrdersQuery) ([]models.Order, error) {
	values, err := query.Values()
	if err != nil {
		return nil, err
	}

	target, err := buildURL(u.url, values, ordersUrlPath)
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := u.do(ctx, http.MethodGet, target, nil, &orders); err != nil {
		return nil, err
	}

	out := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if !query.Status.Matches(structs.OrderStatus(order.Status)) {
			u.logger.
				WithField("method", "List").
				WithField("order_id", order.ID).
				WithField("status", order.Status).
				Warn("upstream returned order outside of status filter")

			continue
		}
		out = append(out, order)
	}

	return out, nil
}

func (u *orderUseCase) Get(ctx context.Context, id string) (*models.Order, error) {
	if err := checkOrderID(id); err != nil {
		return nil, err
	}

	target, err := buildURL(u.url, nil, ordersUrlPath, id)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := u.do(ctx, http.MethodGet, target, nil, &order); err != nil {
		return nil, notFoundOn(err, "order", id, http.StatusNotFound)
	}

	return &order, nil
}

// Cancel forwards a cancel request on every call. An order that is already
// in a terminal state yields a ConflictError.
func (u *orderUseCase) Cancel(ctx context.Context, id string) error {
	if err := checkOrderID(id); err != nil {
		return err
	}

	target, err := buildURL(u.url, nil, ordersUrlPath, id)
	if err != nil {
		return err
	}

	if err := u.do(ctx, http.MethodDelete, target, nil, nil); err != nil {
		err = notFoundOn(err, "order", id, http.StatusNotFound)
		return conflictOn(err, "order", id, http.StatusConflict, http.StatusUnprocessableEntity)
	}

	u.inc(structs.MetricOrderCanceled)

	u.notify(u.tgmController, fmt.Sprintf("[ Cancel ]\nID:\t%s", id))

	return nil
}

// CancelAll returns the per-order outcome reported by the brokerage.
func (u *orderUseCase) CancelAll(ctx context.Context) ([]models.CancelStatus, error) {
	target, err := buildURL(u.url, nil, ordersUrlPath)
	if err != nil {
		return nil, err
	}

	statuses := make([]models.CancelStatus, 0)
	if err := u.do(ctx, http.MethodDelete, target, nil, &statuses); err != nil {
		return nil, err
	}

	u.inc(structs.MetricOrderCancelAll)

	if len(statuses) > 0 {
		u.notify(u.tgmController, fmt.Sprintf("[ Cancel all ]\nOrders:\t%d", len(statuses)))
	}

	return statuses, nil
}

func checkOrderID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return &NotFoundError{Resource: "order", ID: id, Message: "malformed order id"}
	}

	return nil
}

func orderAmount(order *models.Order) string {
	switch {
	case order.Qty.Valid:
		return order.Qty.Decimal.String()
	case order.Notional.Valid:
		return "$" + order.Notional.Decimal.String()
	default:
		return "-"
	}
}
