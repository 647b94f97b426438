package structs_test

import (
	"alpaca/internal/usecasees/structs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdersQuery_Values(t *testing.T) {
	t.Run("defaults to open", func(t *testing.T) {
		values, err := (&structs.OrdersQuery{}).Values()
		require.NoError(t, err)
		assert.Equal(t, "status=open", values.Encode())
	})

	t.Run("all params", func(t *testing.T) {
		values, err := (&structs.OrdersQuery{Status: "CLOSED", Limit: "50", Direction: "asc"}).Values()
		require.NoError(t, err)
		assert.Equal(t, "closed", values.Get("status"))
		assert.Equal(t, "50", values.Get("limit"))
		assert.Equal(t, "asc", values.Get("direction"))
	})

	for _, q := range []structs.OrdersQuery{
		{Status: "pending"},
		{Limit: "0"},
		{Limit: "501"},
		{Limit: "ten"},
		{Direction: "sideways"},
	} {
		q := q
		t.Run("invalid "+string(q.Status)+q.Limit+q.Direction, func(t *testing.T) {
			_, err := q.Values()

			var vErr *structs.ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestOptionContractsQuery_Values(t *testing.T) {
	values, err := (&structs.OptionContractsQuery{
		UnderlyingSymbols: " spy,,aapl ",
		ExpirationDateGte: "2024-01-19",
		RootSymbol:        "spy",
		Limit:             "100",
	}).Values()
	require.NoError(t, err)

	assert.Equal(t, "SPY,AAPL", values.Get("underlying_symbols"))
	assert.Equal(t, "2024-01-19", values.Get("expiration_date_gte"))
	assert.Equal(t, "SPY", values.Get("root_symbol"))
	assert.Equal(t, "100", values.Get("limit"))
	assert.Empty(t, values.Get("type"))

	_, err = (&structs.OptionContractsQuery{ExpirationDate: "19/01/2024"}).Values()
	var vErr *structs.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "expiration_date", vErr.Field)

	_, err = (&structs.OptionContractsQuery{Style: "asian"}).Values()
	assert.ErrorAs(t, err, &vErr)
}

func TestOptionChainQuery_Values(t *testing.T) {
	values, err := (&structs.OptionChainQuery{Type: "put", StrikePriceLte: "150.5"}).Values()
	require.NoError(t, err)
	assert.Equal(t, "put", values.Get("type"))
	assert.Equal(t, "150.5", values.Get("strike_price_lte"))

	_, err = (&structs.OptionChainQuery{StrikePriceGte: "cheap"}).Values()
	var vErr *structs.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestClosePositionRequest(t *testing.T) {
	t.Run("empty closes everything", func(t *testing.T) {
		req, err := structs.ParseClosePosition("", " ")
		require.NoError(t, err)
		assert.True(t, req.Empty())

		values, err := req.Values()
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("qty", func(t *testing.T) {
		req, err := structs.ParseClosePosition("2.5", "")
		require.NoError(t, err)

		values, err := req.Values()
		require.NoError(t, err)
		assert.Equal(t, "2.5", values.Get("qty"))
	})

	t.Run("percentage bounds", func(t *testing.T) {
		for _, pct := range []string{"0", "-5", "100.01"} {
			req, err := structs.ParseClosePosition("", pct)
			require.NoError(t, err)

			_, err = req.Values()
			var vErr *structs.ValidationError
			require.ErrorAs(t, err, &vErr, pct)
			assert.Equal(t, "percentage", vErr.Field)
		}

		req, err := structs.ParseClosePosition("", "100")
		require.NoError(t, err)
		_, err = req.Values()
		assert.NoError(t, err)
	})

	t.Run("not a number", func(t *testing.T) {
		_, err := structs.ParseClosePosition("all", "")

		var vErr *structs.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "qty", vErr.Field)
	})
}

func TestNormalizeSymbol(t *testing.T) {
	symbol, err := structs.NormalizeSymbol(" brk.b ")
	require.NoError(t, err)
	assert.Equal(t, "BRK.B", symbol)

	for _, raw := range []string{"", "AA PL", "BTC/USD", "THISSYMBOLISWAYTOOLONGTOBEREALLYVALID"} {
		_, err := structs.NormalizeSymbol(raw)
		assert.Error(t, err, raw)
	}
}
