package models

import "github.com/shopspring/decimal"

type OptionContract struct {
	ID                string              `json:"id"`
	Symbol            string              `json:"symbol"`
	Name              string              `json:"name"`
	Status            string              `json:"status"`
	Tradable          bool                `json:"tradable"`
	ExpirationDate    string              `json:"expiration_date"`
	RootSymbol        string              `json:"root_symbol"`
	UnderlyingSymbol  string              `json:"underlying_symbol"`
	UnderlyingAssetID string              `json:"underlying_asset_id"`
	Type              string              `json:"type"`
	Style             string              `json:"style"`
	StrikePrice       decimal.Decimal     `json:"strike_price"`
	Size              string              `json:"size"`
	OpenInterest      decimal.NullDecimal `json:"open_interest"`
	OpenInterestDate  *string             `json:"open_interest_date"`
	ClosePrice        decimal.NullDecimal `json:"close_price"`
	ClosePriceDate    *string             `json:"close_price_date"`
}

type OptionContractPage struct {
	OptionContracts []OptionContract `json:"option_contracts"`
	NextPageToken   *string          `json:"next_page_token"`
}

type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Rho   float64 `json:"rho"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
}

type OptionSnapshot struct {
	Symbol            string   `json:"symbol"`
	LatestTrade       *Trade   `json:"latest_trade"`
	LatestQuote       *Quote   `json:"latest_quote"`
	Greeks            *Greeks  `json:"greeks"`
	ImpliedVolatility *float64 `json:"implied_volatility"`
}

type OptionChain struct {
	Snapshots     map[string]OptionSnapshot `json:"snapshots"`
	NextPageToken *string                   `json:"next_page_token"`
}
