package models

import (
	"encoding/json"
	"reflect"

	"github.com/shopspring/decimal"
)

// Position is an open position as the brokerage reports it. Intraday
// figures are null outside of a session.
type Position struct {
	AssetID                string              `json:"asset_id"`
	Symbol                 string              `json:"symbol"`
	Exchange               string              `json:"exchange"`
	AssetClass             string              `json:"asset_class"`
	Side                   string              `json:"side"`
	Qty                    decimal.Decimal     `json:"qty"`
	QtyAvailable           decimal.NullDecimal `json:"qty_available"`
	AvgEntryPrice          decimal.Decimal     `json:"avg_entry_price"`
	MarketValue            decimal.NullDecimal `json:"market_value"`
	CostBasis              decimal.Decimal     `json:"cost_basis"`
	UnrealizedPL           decimal.NullDecimal `json:"unrealized_pl"`
	UnrealizedPLPC         decimal.NullDecimal `json:"unrealized_plpc"`
	UnrealizedIntradayPL   decimal.NullDecimal `json:"unrealized_intraday_pl"`
	UnrealizedIntradayPLPC decimal.NullDecimal `json:"unrealized_intraday_plpc"`
	CurrentPrice           decimal.NullDecimal `json:"current_price"`
	LastdayPrice           decimal.NullDecimal `json:"lastday_price"`
	ChangeToday            decimal.NullDecimal `json:"change_today"`

	Extra Extra `json:"-"`
}

type plainPosition Position

var positionKeys = jsonKeys(reflect.TypeOf(plainPosition{}))

func (p *Position) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*plainPosition)(p)); err != nil {
		return err
	}

	extra, err := unknownKeys(data, positionKeys)
	if err != nil {
		return err
	}
	p.Extra = extra

	return nil
}

func (p Position) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(plainPosition(p))
	if err != nil {
		return nil, err
	}

	return withExtra(encoded, p.Extra)
}
