package structs

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderRequest is the loosely typed body of POST /orders. Build turns it into
// one of the OrderSpec variants.
type OrderRequest struct {
	Symbol        string              `json:"symbol" validate:"required,symbol"`
	Qty           decimal.NullDecimal `json:"qty"`
	Notional      decimal.NullDecimal `json:"notional"`
	Side          OrderSide           `json:"side" validate:"required,oneof=buy sell"`
	Type          OrderType           `json:"type" validate:"required,oneof=market limit stop stop_limit trailing_stop"`
	TimeInForce   TimeInForce         `json:"time_in_force" validate:"required,oneof=day gtc opg cls ioc fok"`
	LimitPrice    decimal.NullDecimal `json:"limit_price"`
	StopPrice     decimal.NullDecimal `json:"stop_price"`
	TrailPrice    decimal.NullDecimal `json:"trail_price"`
	TrailPercent  decimal.NullDecimal `json:"trail_percent"`
	ExtendedHours bool                `json:"extended_hours"`
	ClientOrderID string              `json:"client_order_id" validate:"max=128"`
}

// OrderSpec is a validated order. Its dynamic type is one of MarketOrder,
// LimitOrder, StopOrder, StopLimitOrder or TrailingStopOrder.
type OrderSpec interface {
	OrderType() OrderType
	Base() OrderBase
	Payload() *OrderPayload
}

// Amount is either a share quantity or a notional dollar value.
type Amount struct {
	Value    decimal.Decimal
	Notional bool
}

type OrderBase struct {
	Symbol         string
	Amount         Amount
	Side           OrderSide
	TimeInForce    TimeInForce
	ExtendedHours  bool
	ClientOrderID  string
	PositionIntent PositionIntent
}

type MarketOrder struct {
	OrderBase
}

type LimitOrder struct {
	OrderBase
	LimitPrice decimal.Decimal
}

type StopOrder struct {
	OrderBase
	StopPrice decimal.Decimal
}

type StopLimitOrder struct {
	OrderBase
	LimitPrice decimal.Decimal
	StopPrice  decimal.Decimal
}

// TrailingStopOrder trails by an absolute price offset, or by a percentage
// when Percent is set.
type TrailingStopOrder struct {
	OrderBase
	Trail   decimal.Decimal
	Percent bool
}

// OrderPayload is the order body understood by the brokerage.
type OrderPayload struct {
	Symbol         string           `json:"symbol,omitempty"`
	Qty            *decimal.Decimal `json:"qty,omitempty"`
	Notional       *decimal.Decimal `json:"notional,omitempty"`
	Side           OrderSide        `json:"side,omitempty"`
	Type           OrderType        `json:"type"`
	TimeInForce    TimeInForce      `json:"time_in_force"`
	LimitPrice     *decimal.Decimal `json:"limit_price,omitempty"`
	StopPrice      *decimal.Decimal `json:"stop_price,omitempty"`
	TrailPrice     *decimal.Decimal `json:"trail_price,omitempty"`
	TrailPercent   *decimal.Decimal `json:"trail_percent,omitempty"`
	ExtendedHours  bool             `json:"extended_hours,omitempty"`
	ClientOrderID  string           `json:"client_order_id,omitempty"`
	OrderClass     OrderClass       `json:"order_class,omitempty"`
	PositionIntent PositionIntent   `json:"position_intent,omitempty"`
	Legs           []LegPayload     `json:"legs,omitempty"`
}

type LegPayload struct {
	Symbol         string          `json:"symbol"`
	RatioQty       decimal.Decimal `json:"ratio_qty"`
	Side           OrderSide       `json:"side,omitempty"`
	PositionIntent PositionIntent  `json:"position_intent,omitempty"`
}

func (o *MarketOrder) OrderType() OrderType { return TypeMarket }
func (o *MarketOrder) Base() OrderBase      { return o.OrderBase }
func (o *MarketOrder) Payload() *OrderPayload {
	return o.payload(TypeMarket)
}

func (o *LimitOrder) OrderType() OrderType { return TypeLimit }
func (o *LimitOrder) Base() OrderBase      { return o.OrderBase }
func (o *LimitOrder) Payload() *OrderPayload {
	p := o.payload(TypeLimit)
	p.LimitPrice = decimalPtr(o.LimitPrice)
	return p
}

func (o *StopOrder) OrderType() OrderType { return TypeStop }
func (o *StopOrder) Base() OrderBase      { return o.OrderBase }
func (o *StopOrder) Payload() *OrderPayload {
	p := o.payload(TypeStop)
	p.StopPrice = decimalPtr(o.StopPrice)
	return p
}

func (o *StopLimitOrder) OrderType() OrderType { return TypeStopLimit }
func (o *StopLimitOrder) Base() OrderBase      { return o.OrderBase }
func (o *StopLimitOrder) Payload() *OrderPayload {
	p := o.payload(TypeStopLimit)
	p.LimitPrice = decimalPtr(o.LimitPrice)
	p.StopPrice = decimalPtr(o.StopPrice)
	return p
}

func (o *TrailingStopOrder) OrderType() OrderType { return TypeTrailingStop }
func (o *TrailingStopOrder) Base() OrderBase      { return o.OrderBase }
func (o *TrailingStopOrder) Payload() *OrderPayload {
	p := o.payload(TypeTrailingStop)
	if o.Percent {
		p.TrailPercent = decimalPtr(o.Trail)
	} else {
		p.TrailPrice = decimalPtr(o.Trail)
	}
	return p
}

func (b OrderBase) payload(t OrderType) *OrderPayload {
	p := &OrderPayload{
		Symbol:         b.Symbol,
		Side:           b.Side,
		Type:           t,
		TimeInForce:    b.TimeInForce,
		ExtendedHours:  b.ExtendedHours,
		ClientOrderID:  b.ClientOrderID,
		PositionIntent: b.PositionIntent,
	}

	if !b.Amount.Value.IsZero() {
		if b.Amount.Notional {
			p.Notional = decimalPtr(b.Amount.Value)
		} else {
			p.Qty = decimalPtr(b.Amount.Value)
		}
	}

	return p
}

func (r *OrderRequest) normalize() {
	r.Symbol = strings.ToUpper(strings.TrimSpace(r.Symbol))
	r.ClientOrderID = strings.TrimSpace(r.ClientOrderID)
	if r.TimeInForce == "" {
		r.TimeInForce = TIFDay
	}
}

// Build validates the request and returns the variant matching its type.
func (r *OrderRequest) Build() (OrderSpec, error) {
	r.normalize()

	if err := validateStruct(r); err != nil {
		return nil, err
	}

	amount, err := r.amount()
	if err != nil {
		return nil, err
	}

	base := OrderBase{
		Symbol:        r.Symbol,
		Amount:        amount,
		Side:          r.Side,
		TimeInForce:   r.TimeInForce,
		ExtendedHours: r.ExtendedHours,
		ClientOrderID: r.ClientOrderID,
	}

	return buildSpec(base, r.Type, prices{
		limit:        r.LimitPrice,
		stop:         r.StopPrice,
		trailPrice:   r.TrailPrice,
		trailPercent: r.TrailPercent,
	})
}

func (r *OrderRequest) amount() (Amount, error) {
	switch {
	case r.Qty.Valid && r.Notional.Valid:
		return Amount{}, &ValidationError{Field: "qty", Message: "qty and notional are mutually exclusive"}
	case r.Notional.Valid:
		if !r.Notional.Decimal.IsPositive() {
			return Amount{}, &ValidationError{Field: "notional", Message: "must be greater than 0"}
		}
		if r.Type != TypeMarket || r.TimeInForce != TIFDay {
			return Amount{}, &ValidationError{Field: "notional", Message: "notional is only supported for market orders with time_in_force day"}
		}
		return Amount{Value: r.Notional.Decimal, Notional: true}, nil
	case r.Qty.Valid:
		if !r.Qty.Decimal.IsPositive() {
			return Amount{}, &ValidationError{Field: "qty", Message: "must be greater than 0"}
		}
		return Amount{Value: r.Qty.Decimal}, nil
	default:
		return Amount{}, &ValidationError{Field: "qty", Message: "field is required"}
	}
}

type prices struct {
	limit        decimal.NullDecimal
	stop         decimal.NullDecimal
	trailPrice   decimal.NullDecimal
	trailPercent decimal.NullDecimal
}

func buildSpec(base OrderBase, t OrderType, p prices) (OrderSpec, error) {
	switch t {
	case TypeMarket:
		return &MarketOrder{OrderBase: base}, nil

	case TypeLimit:
		limit, err := requirePositive("limit_price", p.limit, t)
		if err != nil {
			return nil, err
		}
		return &LimitOrder{OrderBase: base, LimitPrice: limit}, nil

	case TypeStop:
		stop, err := requirePositive("stop_price", p.stop, t)
		if err != nil {
			return nil, err
		}
		return &StopOrder{OrderBase: base, StopPrice: stop}, nil

	case TypeStopLimit:
		limit, err := requirePositive("limit_price", p.limit, t)
		if err != nil {
			return nil, err
		}
		stop, err := requirePositive("stop_price", p.stop, t)
		if err != nil {
			return nil, err
		}
		return &StopLimitOrder{OrderBase: base, LimitPrice: limit, StopPrice: stop}, nil

	case TypeTrailingStop:
		switch {
		case p.trailPrice.Valid && p.trailPercent.Valid:
			return nil, &ValidationError{Field: "trail_price", Message: "trail_price and trail_percent are mutually exclusive"}
		case p.trailPrice.Valid:
			trail, err := requirePositive("trail_price", p.trailPrice, t)
			if err != nil {
				return nil, err
			}
			return &TrailingStopOrder{OrderBase: base, Trail: trail}, nil
		case p.trailPercent.Valid:
			trail, err := requirePositive("trail_percent", p.trailPercent, t)
			if err != nil {
				return nil, err
			}
			return &TrailingStopOrder{OrderBase: base, Trail: trail, Percent: true}, nil
		default:
			return nil, &ValidationError{Field: "trail_price", Message: "trail_price or trail_percent required for trailing_stop orders"}
		}
	}

	return nil, &ValidationError{Field: "type", Message: fmt.Sprintf("unsupported order type %q", t)}
}

func requirePositive(field string, v decimal.NullDecimal, t OrderType) (decimal.Decimal, error) {
	if !v.Valid {
		return decimal.Decimal{}, &ValidationError{Field: field, Message: fmt.Sprintf("%s required for %s orders", field, t)}
	}

	if !v.Decimal.IsPositive() {
		return decimal.Decimal{}, &ValidationError{Field: field, Message: "must be greater than 0"}
	}

	return v.Decimal, nil
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
