package structs

import (
	"encoding/json"
	"time"

	"alpaca/models"

	"github.com/shopspring/decimal"
)

// Market data endpoints answer with single-letter keys.

type QuoteEntry struct {
	Timestamp   time.Time       `json:"t"`
	AskExchange string          `json:"ax"`
	AskPrice    decimal.Decimal `json:"ap"`
	AskSize     decimal.Decimal `json:"as"`
	BidExchange string          `json:"bx"`
	BidPrice    decimal.Decimal `json:"bp"`
	BidSize     decimal.Decimal `json:"bs"`
	Conditions  Conditions      `json:"c"`
	Tape        string          `json:"z"`
}

type TradeEntry struct {
	Timestamp  time.Time       `json:"t"`
	Exchange   string          `json:"x"`
	Price      decimal.Decimal `json:"p"`
	Size       decimal.Decimal `json:"s"`
	Conditions Conditions      `json:"c"`
}

type LatestQuote struct {
	Symbol string      `json:"symbol"`
	Quote  *QuoteEntry `json:"quote"`
}

type LatestQuotes struct {
	Quotes map[string]QuoteEntry `json:"quotes"`
}

type SnapshotEntry struct {
	LatestTrade       *TradeEntry    `json:"latestTrade"`
	LatestQuote       *QuoteEntry    `json:"latestQuote"`
	Greeks            *models.Greeks `json:"greeks"`
	ImpliedVolatility *float64       `json:"impliedVolatility"`
}

type Snapshots struct {
	Snapshots     map[string]SnapshotEntry `json:"snapshots"`
	NextPageToken *string                  `json:"next_page_token"`
}

// Conditions holds trade or quote condition codes. Stock feeds send a list,
// option feeds a single string.
type Conditions []string

func (c *Conditions) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*c = nil
		} else {
			*c = Conditions{single}
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*c = list

	return nil
}

func (q *QuoteEntry) ToModel(symbol string) models.Quote {
	return models.Quote{
		Symbol:      symbol,
		BidPrice:    q.BidPrice,
		BidSize:     q.BidSize,
		BidExchange: q.BidExchange,
		AskPrice:    q.AskPrice,
		AskSize:     q.AskSize,
		AskExchange: q.AskExchange,
		Timestamp:   q.Timestamp,
		Conditions:  q.Conditions,
		Tape:        q.Tape,
	}
}

func (t *TradeEntry) ToModel() models.Trade {
	return models.Trade{
		Price:      t.Price,
		Size:       t.Size,
		Exchange:   t.Exchange,
		Timestamp:  t.Timestamp,
		Conditions: t.Conditions,
	}
}

func (s *SnapshotEntry) ToModel(symbol string) models.OptionSnapshot {
	snapshot := models.OptionSnapshot{
		Symbol:            symbol,
		Greeks:            s.Greeks,
		ImpliedVolatility: s.ImpliedVolatility,
	}

	if s.LatestTrade != nil {
		trade := s.LatestTrade.ToModel()
		snapshot.LatestTrade = &trade
	}

	if s.LatestQuote != nil {
		quote := s.LatestQuote.ToModel(symbol)
		snapshot.LatestQuote = &quote
	}

	return snapshot
}
