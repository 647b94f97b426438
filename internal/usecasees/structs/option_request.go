package structs

import (
	"strings"

	"github.com/shopspring/decimal"
)

type OptionOrderRequest struct {
	Symbol         string              `json:"symbol" validate:"required,symbol"`
	Qty            int64               `json:"qty" validate:"gt=0"`
	Side           OrderSide           `json:"side" validate:"required,oneof=buy sell"`
	Type           OrderType           `json:"type" validate:"required,oneof=market limit stop stop_limit"`
	TimeInForce    TimeInForce         `json:"time_in_force" validate:"required,oneof=day gtc opg cls ioc fok"`
	PositionIntent PositionIntent      `json:"position_intent" validate:"omitempty,oneof=buy_to_open buy_to_close sell_to_open sell_to_close"`
	LimitPrice     decimal.NullDecimal `json:"limit_price"`
	StopPrice      decimal.NullDecimal `json:"stop_price"`
}

// Build validates a single-leg option order. Trailing stops are not
// offered for options.
func (r *OptionOrderRequest) Build() (OrderSpec, error) {
	r.Symbol = strings.ToUpper(strings.TrimSpace(r.Symbol))
	if r.TimeInForce == "" {
		r.TimeInForce = TIFDay
	}

	if err := validateStruct(r); err != nil {
		return nil, err
	}

	base := OrderBase{
		Symbol:         r.Symbol,
		Amount:         Amount{Value: decimal.NewFromInt(r.Qty)},
		Side:           r.Side,
		TimeInForce:    r.TimeInForce,
		PositionIntent: r.PositionIntent,
	}

	return buildSpec(base, r.Type, prices{limit: r.LimitPrice, stop: r.StopPrice})
}

type OptionLeg struct {
	Symbol         string          `json:"symbol" validate:"required,symbol"`
	RatioQty       decimal.Decimal `json:"ratio_qty"`
	Side           OrderSide       `json:"side" validate:"omitempty,oneof=buy sell"`
	PositionIntent PositionIntent  `json:"position_intent" validate:"omitempty,oneof=buy_to_open buy_to_close sell_to_open sell_to_close"`
}

type MultiLegOrderRequest struct {
	Qty         int64               `json:"qty" validate:"gt=0"`
	Type        OrderType           `json:"type" validate:"required,oneof=market limit"`
	TimeInForce TimeInForce         `json:"time_in_force" validate:"required,oneof=day gtc opg cls ioc fok"`
	Legs        []OptionLeg         `json:"legs" validate:"min=2,max=4,dive"`
	LimitPrice  decimal.NullDecimal `json:"limit_price"`
}

// MultiLegOrder is a validated spread: a market or limit order carrying
// between two and four legs.
type MultiLegOrder struct {
	Spec OrderSpec
	Legs []LegPayload
}

func (o *MultiLegOrder) Payload() *OrderPayload {
	p := o.Spec.Payload()
	p.OrderClass = ClassMLeg
	p.Legs = o.Legs

	return p
}

func (r *MultiLegOrderRequest) Build() (*MultiLegOrder, error) {
	if r.TimeInForce == "" {
		r.TimeInForce = TIFDay
	}
	for i := range r.Legs {
		r.Legs[i].Symbol = strings.ToUpper(strings.TrimSpace(r.Legs[i].Symbol))
	}

	if err := validateStruct(r); err != nil {
		return nil, err
	}

	legs := make([]LegPayload, 0, len(r.Legs))
	for _, leg := range r.Legs {
		if !leg.RatioQty.IsPositive() {
			return nil, &ValidationError{Field: "legs.ratio_qty", Message: "must be greater than 0"}
		}

		legs = append(legs, LegPayload{
			Symbol:         leg.Symbol,
			RatioQty:       leg.RatioQty,
			Side:           leg.Side,
			PositionIntent: leg.PositionIntent,
		})
	}

	base := OrderBase{
		Amount:      Amount{Value: decimal.NewFromInt(r.Qty)},
		TimeInForce: r.TimeInForce,
	}

	spec, err := buildSpec(base, r.Type, prices{limit: r.LimitPrice})
	if err != nil {
		return nil, err
	}

	return &MultiLegOrder{Spec: spec, Legs: legs}, nil
}
