package usecasees

import (
	"alpaca/internal/controllers"
	"alpaca/internal/usecasees/structs"
	"alpaca/models"
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

type positionUseCase struct {
	upstream

	tgmController controllers.TgmCtrl

	url string
}

func NewPositionUseCase(
	client controllers.ClientCtrl,
	tgm controllers.TgmCtrl,
	url string,
	metrics Metrics,
	logger *logrus.Logger,
) *positionUseCase {
	return &positionUseCase{
		upstream: upstream{
			clientController: client,
			metrics:          metrics,
			logger:           logger,
		},
		tgmController: tgm,
		url:           url,
	}
}

func (u *positionUseCase) List(ctx context.Context) ([]models.Position, error) {
	target, err := buildURL(u.url, nil, positionsUrlPath)
	if err != nil {
		return nil, err
	}

	positions := make([]models.Position, 0)
	if err := u.do(ctx, http.MethodGet, target, nil, &positions); err != nil {
		return nil, err
	}

	return positions, nil
}

func (u *positionUseCase) Get(ctx context.Context, rawSymbol string) (*models.Position, error) {
	symbol, err := structs.NormalizeSymbol(rawSymbol)
	if err != nil {
		return nil, err
	}

	target, err := buildURL(u.url, nil, positionsUrlPath, symbol)
	if err != nil {
		return nil, err
	}

	var position models.Position
	if err := u.do(ctx, http.MethodGet, target, nil, &position); err != nil {
		return nil, notFoundOn(err, "position", symbol, http.StatusNotFound)
	}

	return &position, nil
}

// Close liquidates the position, entirely or partially, and returns the
// closing order placed by the brokerage.
func (u *positionUseCase) Close(ctx context.Context, rawSymbol string, req *structs.ClosePositionRequest) (*models.Order, error) {
	symbol, err := structs.NormalizeSymbol(rawSymbol)
	if err != nil {
		return nil, err
	}

	if req == nil {
		req = &structs.ClosePositionRequest{}
	}

	values, err := req.Values()
	if err != nil {
		return nil, err
	}

	target, err := buildURL(u.url, values, positionsUrlPath, symbol)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := u.do(ctx, http.MethodDelete, target, nil, &order); err != nil {
		return nil, notFoundOn(err, "position", symbol, http.StatusNotFound)
	}

	u.inc(structs.MetricPositionClosed)

	u.logger.
		WithField("method", "Close").
		WithField("symbol", symbol).
		WithField("order_id", order.ID).
		Info("position close requested")

	u.notify(u.tgmController, fmt.Sprintf(
		"[ Close position ]\n%s %s\nID:\t%s",
		symbol,
		orderAmount(&order),
		order.ID,
	))

	return &order, nil
}
