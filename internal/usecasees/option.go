package usecasees

import (
	"alpaca/internal/controllers"
	"alpaca/internal/usecasees/structs"
	"alpaca/models"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type optionUseCase struct {
	upstream

	orders *orderUseCase

	tradingURL string
	dataURL    string
}

func NewOptionUseCase(
	client controllers.ClientCtrl,
	orders *orderUseCase,
	tradingURL, dataURL string,
	metrics Metrics,
	logger *logrus.Logger,
) *optionUseCase {
	return &optionUseCase{
		upstream: upstream{
			clientController: client,
			metrics:          metrics,
			logger:           logger,
		},
		orders:     orders,
		tradingURL: tradingURL,
		dataURL:    dataURL,
	}
}

func (u *optionUseCase) Contracts(ctx context.Context, query *structs.OptionContractsQuery) (*models.OptionContractPage, error) {
	values, err := query.Values()
	if err != nil {
		return nil, err
	}

	target, err := buildURL(u.tradingURL, values, optionContractsUrlPath)
	if err != nil {
		return nil, err
	}

	page := models.OptionContractPage{OptionContracts: make([]models.OptionContract, 0)}
	if err := u.do(ctx, http.MethodGet, target, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// Contract looks a contract up by its asset id or its OCC symbol.
func (u *optionUseCase) Contract(ctx context.Context, symbolOrID string) (*models.OptionContract, error) {
	key, err := contractKey(symbolOrID)
	if err != nil {
		return nil, err
	}

	target, err := buildURL(u.tradingURL, nil, optionContractsUrlPath, key)
	if err != nil {
		return nil, err
	}

	var contract models.OptionContract
	if err := u.do(ctx, http.MethodGet, target, nil, &contract); err != nil {
		return nil, notFoundOn(err, "option contract", key, http.StatusNotFound, http.StatusUnprocessableEntity)
	}

	return &contract, nil
}

func (u *optionUseCase) Chain(ctx context.Context, rawUnderlying string, query *structs.OptionChainQuery) (*models.OptionChain, error) {
	underlying, err := structs.NormalizeSymbol(rawUnderlying)
	if err != nil {
		return nil, err
	}

	values, err := query.Values()
	if err != nil {
		return nil, err
	}

	target, err := buildURL(u.dataURL, values, optionSnapshotsUrlPath, underlying)
	if err != nil {
		return nil, err
	}

	var snapshots structs.Snapshots
	if err := u.do(ctx, http.MethodGet, target, nil, &snapshots); err != nil {
		return nil, notFoundOn(err, "option chain", underlying, http.StatusNotFound)
	}

	chain := models.OptionChain{
		Snapshots:     make(map[string]models.OptionSnapshot, len(snapshots.Snapshots)),
		NextPageToken: snapshots.NextPageToken,
	}
	for symbol, entry := range snapshots.Snapshots {
		chain.Snapshots[symbol] = entry.ToModel(symbol)
	}

	return &chain, nil
}

func (u *optionUseCase) Quote(ctx context.Context, rawSymbol string) (*models.Quote, error) {
	symbol, err := structs.NormalizeSymbol(rawSymbol)
	if err != nil {
		return nil, err
	}

	target, err := buildURL(u.dataURL, url.Values{"symbols": []string{symbol}}, optionQuotesUrlPath)
	if err != nil {
		return nil, err
	}

	var latest structs.LatestQuotes
	if err := u.do(ctx, http.MethodGet, target, nil, &latest); err != nil {
		return nil, notFoundOn(err, "option quote", symbol,
			http.StatusBadRequest, http.StatusNotFound, http.StatusUnprocessableEntity)
	}

	entry, ok := latest.Quotes[symbol]
	if !ok || entry.Timestamp.IsZero() {
		return nil, &NotFoundError{Resource: "option quote", ID: symbol, Message: "no quote available"}
	}

	quote := entry.ToModel(symbol)

	return &quote, nil
}

func (u *optionUseCase) Snapshot(ctx context.Context, rawSymbol string) (*models.OptionSnapshot, error) {
	symbol, err := structs.NormalizeSymbol(rawSymbol)
	if err != nil {
		return nil, err
	}

	target, err := buildURL(u.dataURL, url.Values{"symbols": []string{symbol}}, optionSnapshotsUrlPath)
	if err != nil {
		return nil, err
	}

	var snapshots structs.Snapshots
	if err := u.do(ctx, http.MethodGet, target, nil, &snapshots); err != nil {
		return nil, notFoundOn(err, "option snapshot", symbol,
			http.StatusBadRequest, http.StatusNotFound, http.StatusUnprocessableEntity)
	}

	entry, ok := snapshots.Snapshots[symbol]
	if !ok {
		return nil, &NotFoundError{Resource: "option snapshot", ID: symbol, Message: "no snapshot available"}
	}

	snapshot := entry.ToModel(symbol)

	return &snapshot, nil
}

func (u *optionUseCase) SubmitOrder(ctx context.Context, req *structs.OptionOrderRequest) (*models.Order, error) {
	spec, err := req.Build()
	if err != nil {
		u.inc(structs.MetricOrderInvalid)
		return nil, err
	}

	return u.orders.place(ctx, spec.Payload())
}

func (u *optionUseCase) SubmitMultiLeg(ctx context.Context, req *structs.MultiLegOrderRequest) (*models.Order, error) {
	order, err := req.Build()
	if err != nil {
		u.inc(structs.MetricOrderInvalid)
		return nil, err
	}

	return u.orders.place(ctx, order.Payload())
}

// Exercise asks the brokerage to exercise a held option position.
func (u *optionUseCase) Exercise(ctx context.Context, symbolOrID string) (string, error) {
	key, err := contractKey(symbolOrID)
	if err != nil {
		return "", err
	}

	target, err := buildURL(u.tradingURL, nil, positionsUrlPath, key, "exercise")
	if err != nil {
		return "", err
	}

	if err := u.do(ctx, http.MethodPost, target, nil, nil); err != nil {
		err = notFoundOn(err, "position", key, http.StatusNotFound)
		return "", conflictOn(err, "position", key, http.StatusConflict, http.StatusUnprocessableEntity)
	}

	u.inc(structs.MetricOptionExercised)

	u.logger.
		WithField("method", "Exercise").
		WithField("symbol_or_id", key).
		Info("option exercised")

	u.notify(u.orders.tgmController, fmt.Sprintf("[ Exercise ]\n%s", key))

	return key, nil
}

// contractKey keeps asset ids untouched and normalizes anything else as a
// contract symbol.
func contractKey(symbolOrID string) (string, error) {
	raw := strings.TrimSpace(symbolOrID)
	if _, err := uuid.Parse(raw); err == nil {
		return strings.ToLower(raw), nil
	}

	return structs.NormalizeSymbol(raw)
}
