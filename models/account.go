package models

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/shopspring/decimal"
)

// Account is the brokerage account snapshot. Balances the brokerage may
// leave unset stay null.
type Account struct {
	ID                       string              `json:"id"`
	AccountNumber            string              `json:"account_number"`
	Status                   string              `json:"status"`
	CryptoStatus             string              `json:"crypto_status,omitempty"`
	Currency                 string              `json:"currency"`
	BuyingPower              decimal.NullDecimal `json:"buying_power"`
	RegTBuyingPower          decimal.NullDecimal `json:"regt_buying_power"`
	DaytradingBuyingPower    decimal.NullDecimal `json:"daytrading_buying_power"`
	NonMarginableBuyingPower decimal.NullDecimal `json:"non_marginable_buying_power"`
	OptionsBuyingPower       decimal.NullDecimal `json:"options_buying_power"`
	Cash                     decimal.NullDecimal `json:"cash"`
	PortfolioValue           decimal.NullDecimal `json:"portfolio_value"`
	Equity                   decimal.NullDecimal `json:"equity"`
	LastEquity               decimal.NullDecimal `json:"last_equity"`
	LongMarketValue          decimal.NullDecimal `json:"long_market_value"`
	ShortMarketValue         decimal.NullDecimal `json:"short_market_value"`
	InitialMargin            decimal.NullDecimal `json:"initial_margin"`
	MaintenanceMargin        decimal.NullDecimal `json:"maintenance_margin"`
	LastMaintenanceMargin    decimal.NullDecimal `json:"last_maintenance_margin"`
	SMA                      decimal.NullDecimal `json:"sma"`
	Multiplier               decimal.NullDecimal `json:"multiplier"`
	DaytradeCount            int                 `json:"daytrade_count"`
	PatternDayTrader         bool                `json:"pattern_day_trader"`
	TradingBlocked           bool                `json:"trading_blocked"`
	TransfersBlocked         bool                `json:"transfers_blocked"`
	AccountBlocked           bool                `json:"account_blocked"`
	TradeSuspendedByUser     bool                `json:"trade_suspended_by_user"`
	ShortingEnabled          bool                `json:"shorting_enabled"`
	OptionsApprovedLevel     *int                `json:"options_approved_level"`
	OptionsTradingLevel      *int                `json:"options_trading_level"`
	CreatedAt                time.Time           `json:"created_at"`

	Extra Extra `json:"-"`
}

type plainAccount Account

var accountKeys = jsonKeys(reflect.TypeOf(plainAccount{}))

func (a *Account) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*plainAccount)(a)); err != nil {
		return err
	}

	extra, err := unknownKeys(data, accountKeys)
	if err != nil {
		return err
	}
	a.Extra = extra

	return nil
}

func (a Account) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(plainAccount(a))
	if err != nil {
		return nil, err
	}

	return withExtra(encoded, a.Extra)
}

type Clock struct {
	Timestamp time.Time `json:"timestamp"`
	IsOpen    bool      `json:"is_open"`
	NextOpen  time.Time `json:"next_open"`
	NextClose time.Time `json:"next_close"`
}
