package models

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID             string              `json:"id"`
	ClientOrderID  string              `json:"client_order_id"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      *time.Time          `json:"updated_at"`
	SubmittedAt    *time.Time          `json:"submitted_at"`
	FilledAt       *time.Time          `json:"filled_at"`
	ExpiredAt      *time.Time          `json:"expired_at"`
	CanceledAt     *time.Time          `json:"canceled_at"`
	FailedAt       *time.Time          `json:"failed_at"`
	ReplacedAt     *time.Time          `json:"replaced_at"`
	ReplacedBy     *string             `json:"replaced_by"`
	Replaces       *string             `json:"replaces"`
	AssetID        string              `json:"asset_id"`
	Symbol         string              `json:"symbol"`
	AssetClass     string              `json:"asset_class"`
	Notional       decimal.NullDecimal `json:"notional"`
	Qty            decimal.NullDecimal `json:"qty"`
	FilledQty      decimal.Decimal     `json:"filled_qty"`
	FilledAvgPrice decimal.NullDecimal `json:"filled_avg_price"`
	OrderClass     string              `json:"order_class"`
	Type           string              `json:"type"`
	Side           string              `json:"side"`
	PositionIntent string              `json:"position_intent,omitempty"`
	TimeInForce    string              `json:"time_in_force"`
	LimitPrice     decimal.NullDecimal `json:"limit_price"`
	StopPrice      decimal.NullDecimal `json:"stop_price"`
	TrailPrice     decimal.NullDecimal `json:"trail_price"`
	TrailPercent   decimal.NullDecimal `json:"trail_percent"`
	HWM            decimal.NullDecimal `json:"hwm"`
	Status         string              `json:"status"`
	ExtendedHours  bool                `json:"extended_hours"`
	Legs           []Order             `json:"legs,omitempty"`

	Extra Extra `json:"-"`
}

type plainOrder Order

var orderKeys = jsonKeys(reflect.TypeOf(plainOrder{}))

func (o *Order) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*plainOrder)(o)); err != nil {
		return err
	}

	extra, err := unknownKeys(data, orderKeys)
	if err != nil {
		return err
	}
	o.Extra = extra

	return nil
}

func (o Order) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(plainOrder(o))
	if err != nil {
		return nil, err
	}

	return withExtra(encoded, o.Extra)
}

// CancelStatus is one entry of a bulk cancel: the upstream HTTP status for
// the order and, when available, the order itself.
type CancelStatus struct {
	ID     string `json:"id"`
	Status int    `json:"status"`
	Body   *Order `json:"body,omitempty"`
}
