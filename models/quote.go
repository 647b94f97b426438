package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Quote struct {
	Symbol      string          `json:"symbol"`
	BidPrice    decimal.Decimal `json:"bid_price"`
	BidSize     decimal.Decimal `json:"bid_size"`
	BidExchange string          `json:"bid_exchange,omitempty"`
	AskPrice    decimal.Decimal `json:"ask_price"`
	AskSize     decimal.Decimal `json:"ask_size"`
	AskExchange string          `json:"ask_exchange,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
	Conditions  []string        `json:"conditions,omitempty"`
	Tape        string          `json:"tape,omitempty"`
}

type Trade struct {
	Price      decimal.Decimal `json:"price"`
	Size       decimal.Decimal `json:"size"`
	Exchange   string          `json:"exchange,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
	Conditions []string        `json:"conditions,omitempty"`
}
