package usecasees

import (
	"alpaca/internal/controllers"
	"alpaca/internal/usecasees/structs"
	"alpaca/models"
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

type quoteUseCase struct {
	upstream

	url string
}

func NewQuoteUseCase(
	client controllers.ClientCtrl,
	url string,
	metrics Metrics,
	logger *logrus.Logger,
) *quoteUseCase {
	return &quoteUseCase{
		upstream: upstream{
			clientController: client,
			metrics:          metrics,
			logger:           logger,
		},
		url: url,
	}
}

// Latest returns the most recent NBBO quote for a stock symbol. feed is
// optional and forwarded as is (iex, sip).
func (u *quoteUseCase) Latest(ctx context.Context, rawSymbol, feed string) (*models.Quote, error) {
	symbol, err := structs.NormalizeSymbol(rawSymbol)
	if err != nil {
		return nil, err
	}

	var query url.Values
	if feed = strings.ToLower(strings.TrimSpace(feed)); feed != "" {
		if feed != "iex" && feed != "sip" {
			return nil, &structs.ValidationError{Field: "feed", Message: "must be one of: iex, sip"}
		}
		query = url.Values{"feed": []string{feed}}
	}

	target, err := buildURL(u.url, query, stockQuotesUrlPath, symbol, "quotes", "latest")
	if err != nil {
		return nil, err
	}

	var latest structs.LatestQuote
	if err := u.do(ctx, http.MethodGet, target, nil, &latest); err != nil {
		return nil, notFoundOn(err, "quote", symbol,
			http.StatusBadRequest, http.StatusNotFound, http.StatusUnprocessableEntity)
	}

	if latest.Quote == nil || latest.Quote.Timestamp.IsZero() {
		return nil, &NotFoundError{Resource: "quote", ID: symbol, Message: "no quote available"}
	}

	quote := latest.Quote.ToModel(symbol)

	return &quote, nil
}
