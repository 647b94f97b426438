package http

import (
	"alpaca/internal/usecasees/structs"
	"alpaca/models"
	"context"
)

type AccountUseCase interface {
	GetAccount(ctx context.Context) (*models.Account, error)
	GetClock(ctx context.Context) (*models.Clock, error)
}

type OrderUseCase interface {
	Submit(ctx context.Context, req *structs.OrderRequest) (*models.Order, error)
	List(ctx context.Context, query *structs.OrdersQuery) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	Cancel(ctx context.Context, id string) error
	CancelAll(ctx context.Context) ([]models.CancelStatus, error)
}

type PositionUseCase interface {
	List(ctx context.Context) ([]models.Position, error)
	Get(ctx context.Context, symbol string) (*models.Position, error)
	Close(ctx context.Context, symbol string, req *structs.ClosePositionRequest) (*models.Order, error)
}

type QuoteUseCase interface {
	Latest(ctx context.Context, symbol, feed string) (*models.Quote, error)
}

type OptionUseCase interface {
	Contracts(ctx context.Context, query *structs.OptionContractsQuery) (*models.OptionContractPage, error)
	Contract(ctx context.Context, symbolOrID string) (*models.OptionContract, error)
	Chain(ctx context.Context, underlying string, query *structs.OptionChainQuery) (*models.OptionChain, error)
	Quote(ctx context.Context, symbol string) (*models.Quote, error)
	Snapshot(ctx context.Context, symbol string) (*models.OptionSnapshot, error)
	SubmitOrder(ctx context.Context, req *structs.OptionOrderRequest) (*models.Order, error)
	SubmitMultiLeg(ctx context.Context, req *structs.MultiLegOrderRequest) (*models.Order, error)
	Exercise(ctx context.Context, symbolOrID string) (string, error)
}

// UseCases bundles everything the handlers forward to.
type UseCases struct {
	Account  AccountUseCase
	Order    OrderUseCase
	Position PositionUseCase
	Quote    QuoteUseCase
	Option   OptionUseCase
}
