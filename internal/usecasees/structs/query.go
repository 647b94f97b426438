package structs

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	maxOrdersLimit    = 500
	maxContractsLimit = 10000
)

type OrdersQuery struct {
	Status    QueryOrderStatus `json:"status" validate:"required,oneof=open closed all"`
	Limit     string           `json:"limit" validate:"omitempty,number"`
	Direction string           `json:"direction" validate:"omitempty,oneof=asc desc"`
}

// Values validates the query and encodes it for the brokerage.
func (q *OrdersQuery) Values() (url.Values, error) {
	q.Status = QueryOrderStatus(strings.ToLower(strings.TrimSpace(string(q.Status))))
	if q.Status == "" {
		q.Status = QueryOpen
	}

	if err := validateStruct(q); err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("status", string(q.Status))

	if q.Limit != "" {
		if err := checkLimit(q.Limit, maxOrdersLimit); err != nil {
			return nil, err
		}
		values.Set("limit", q.Limit)
	}

	if q.Direction != "" {
		values.Set("direction", q.Direction)
	}

	return values, nil
}

type OptionContractsQuery struct {
	UnderlyingSymbols string `json:"underlying_symbols"`
	ExpirationDate    string `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	ExpirationDateGte string `json:"expiration_date_gte" validate:"omitempty,datetime=2006-01-02"`
	ExpirationDateLte string `json:"expiration_date_lte" validate:"omitempty,datetime=2006-01-02"`
	RootSymbol        string `json:"root_symbol"`
	Type              string `json:"type" validate:"omitempty,oneof=call put"`
	Style             string `json:"style" validate:"omitempty,oneof=american european"`
	StrikePriceGte    string `json:"strike_price_gte" validate:"omitempty,numeric"`
	StrikePriceLte    string `json:"strike_price_lte" validate:"omitempty,numeric"`
	Limit             string `json:"limit" validate:"omitempty,number"`
	PageToken         string `json:"page_token"`
}

func (q *OptionContractsQuery) Values() (url.Values, error) {
	if err := validateStruct(q); err != nil {
		return nil, err
	}

	values := url.Values{}

	if q.UnderlyingSymbols != "" {
		symbols := make([]string, 0)
		for _, s := range strings.Split(q.UnderlyingSymbols, ",") {
			if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
				symbols = append(symbols, s)
			}
		}
		if len(symbols) > 0 {
			values.Set("underlying_symbols", strings.Join(symbols, ","))
		}
	}

	if q.Limit != "" {
		if err := checkLimit(q.Limit, maxContractsLimit); err != nil {
			return nil, err
		}
	}

	setIf(values, "expiration_date", q.ExpirationDate)
	setIf(values, "expiration_date_gte", q.ExpirationDateGte)
	setIf(values, "expiration_date_lte", q.ExpirationDateLte)
	setIf(values, "root_symbol", strings.ToUpper(q.RootSymbol))
	setIf(values, "type", q.Type)
	setIf(values, "style", q.Style)
	setIf(values, "strike_price_gte", q.StrikePriceGte)
	setIf(values, "strike_price_lte", q.StrikePriceLte)
	setIf(values, "limit", q.Limit)
	setIf(values, "page_token", q.PageToken)

	return values, nil
}

type OptionChainQuery struct {
	Type              string `json:"type" validate:"omitempty,oneof=call put"`
	StrikePriceGte    string `json:"strike_price_gte" validate:"omitempty,numeric"`
	StrikePriceLte    string `json:"strike_price_lte" validate:"omitempty,numeric"`
	ExpirationDate    string `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	ExpirationDateGte string `json:"expiration_date_gte" validate:"omitempty,datetime=2006-01-02"`
	ExpirationDateLte string `json:"expiration_date_lte" validate:"omitempty,datetime=2006-01-02"`
	RootSymbol        string `json:"root_symbol"`
}

func (q *OptionChainQuery) Values() (url.Values, error) {
	if err := validateStruct(q); err != nil {
		return nil, err
	}

	values := url.Values{}
	setIf(values, "type", q.Type)
	setIf(values, "strike_price_gte", q.StrikePriceGte)
	setIf(values, "strike_price_lte", q.StrikePriceLte)
	setIf(values, "expiration_date", q.ExpirationDate)
	setIf(values, "expiration_date_gte", q.ExpirationDateGte)
	setIf(values, "expiration_date_lte", q.ExpirationDateLte)
	setIf(values, "root_symbol", strings.ToUpper(q.RootSymbol))

	return values, nil
}

// ClosePositionRequest optionally limits a close to a quantity or a
// percentage of the position. Both empty closes everything.
type ClosePositionRequest struct {
	Qty        decimal.NullDecimal `json:"qty"`
	Percentage decimal.NullDecimal `json:"percentage"`
}

var hundred = decimal.NewFromInt(100)

func ParseClosePosition(qty, percentage string) (*ClosePositionRequest, error) {
	var req ClosePositionRequest

	if qty = strings.TrimSpace(qty); qty != "" {
		d, err := decimal.NewFromString(qty)
		if err != nil {
			return nil, &ValidationError{Field: "qty", Message: "must be a number"}
		}
		req.Qty = decimal.NullDecimal{Decimal: d, Valid: true}
	}

	if percentage = strings.TrimSpace(percentage); percentage != "" {
		d, err := decimal.NewFromString(percentage)
		if err != nil {
			return nil, &ValidationError{Field: "percentage", Message: "must be a number"}
		}
		req.Percentage = decimal.NullDecimal{Decimal: d, Valid: true}
	}

	return &req, nil
}

func (r *ClosePositionRequest) Empty() bool {
	return !r.Qty.Valid && !r.Percentage.Valid
}

func (r *ClosePositionRequest) Values() (url.Values, error) {
	values := url.Values{}

	switch {
	case r.Qty.Valid && r.Percentage.Valid:
		return nil, &ValidationError{Field: "qty", Message: "qty and percentage are mutually exclusive"}
	case r.Qty.Valid:
		if !r.Qty.Decimal.IsPositive() {
			return nil, &ValidationError{Field: "qty", Message: "must be greater than 0"}
		}
		values.Set("qty", r.Qty.Decimal.String())
	case r.Percentage.Valid:
		if !r.Percentage.Decimal.IsPositive() || r.Percentage.Decimal.GreaterThan(hundred) {
			return nil, &ValidationError{Field: "percentage", Message: "must be greater than 0 and at most 100"}
		}
		values.Set("percentage", r.Percentage.Decimal.String())
	}

	return values, nil
}

func checkLimit(raw string, max int) error {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > max {
		return &ValidationError{Field: "limit", Message: "must be between 1 and " + strconv.Itoa(max)}
	}

	return nil
}

func setIf(values url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		values.Set(key, value)
	}
}
