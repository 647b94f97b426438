package usecasees

import (
	"alpaca/internal/controllers"
	ctrlMocks "alpaca/internal/controllers/mocks"
	"alpaca/internal/usecasees/structs"
	"alpaca/models"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	tradingURL = "https://paper-api.alpaca.markets"
	dataURL    = "https://data.alpaca.markets"

	orderID = "61e69015-8549-4bfd-b9c3-01e75843f47d"
)

type mockGen struct {
	t *testing.T

	clientCtrl *ctrlMocks.ClientCtrl
	tgmCtrl    *ctrlMocks.TgmCtrl

	metrics Metrics
	logger  *logrus.Logger
}

func newMockGen(t *testing.T) *mockGen {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	metrics := make(Metrics, len(structs.MetricList))
	for _, m := range structs.MetricList {
		metrics[m] = prometheus.NewCounter(prometheus.CounterOpts{Name: m.ToString()})
	}

	return &mockGen{
		t:          t,
		clientCtrl: ctrlMocks.NewClientCtrl(t),
		tgmCtrl:    ctrlMocks.NewTgmCtrl(t),
		metrics:    metrics,
		logger:     logger,
	}
}

func (mockGen *mockGen) initOrderUseCase() *orderUseCase {
	u := NewOrderUseCase(mockGen.clientCtrl, mockGen.tgmCtrl, tradingURL, mockGen.metrics, mockGen.logger)
	// runs before the mocks assert their expectations
	mockGen.t.Cleanup(u.waitNotifications)

	return u
}

func (mockGen *mockGen) count(m structs.MetricConst) float64 {
	return testutil.ToFloat64(mockGen.metrics[m])
}

// expect registers a single upstream call matched on method and path.
func (mockGen *mockGen) expect(method, path string, resp interface{}, err error) *mock.Call {
	var body []byte
	switch v := resp.(type) {
	case nil:
	case string:
		body = []byte(v)
	default:
		body, _ = json.Marshal(v)
	}

	return mockGen.clientCtrl.On("Send", mock.Anything, method, mock.MatchedBy(func(input *url.URL) bool {
		return input.Path == path
	}), mock.Anything).Return(body, err).Once()
}

func newOrder(status structs.OrderStatus) models.Order {
	return models.Order{
		ID:          orderID,
		Symbol:      "AAPL",
		Qty:         decimal.NullDecimal{Decimal: decimal.NewFromInt(1), Valid: true},
		Side:        string(structs.SideBuy),
		Type:        string(structs.TypeMarket),
		TimeInForce: string(structs.TIFDay),
		Status:      string(status),
	}
}

func Test_OrderUseCase_Submit(t *testing.T) {
	t.Run("market order", func(t *testing.T) {
		mockGen := newMockGen(t)

		mockGen.clientCtrl.On("Send", mock.Anything, http.MethodPost, mock.MatchedBy(func(input *url.URL) bool {
			return input.String() == tradingURL+"/v2/orders"
		}), mock.MatchedBy(func(body []byte) bool {
			var payload map[string]interface{}
			if err := json.Unmarshal(body, &payload); err != nil {
				return false
			}
			_, hasLimit := payload["limit_price"]
			return payload["symbol"] == "AAPL" && payload["qty"] == "1" && payload["type"] == "market" && !hasLimit
		})).Return(mustJSON(newOrder(structs.StatusAccepted)), nil).Once()
		mockGen.tgmCtrl.On("Send", mock.AnythingOfType("string")).Return(nil).Once()

		order, err := mockGen.initOrderUseCase().Submit(context.Background(), &structs.OrderRequest{
			Symbol:      "aapl",
			Qty:         decimal.NullDecimal{Decimal: decimal.NewFromInt(1), Valid: true},
			Side:        structs.SideBuy,
			Type:        structs.TypeMarket,
			TimeInForce: structs.TIFDay,
			LimitPrice:  decimal.NullDecimal{Decimal: decimal.NewFromInt(100), Valid: true},
		})
		require.NoError(t, err)

		assert.Equal(t, "AAPL", order.Symbol)
		assert.True(t, order.Qty.Decimal.Equal(decimal.NewFromInt(1)))
		assert.Equal(t, float64(1), mockGen.count(structs.MetricOrderSubmitted))
	})

	t.Run("limit without limit price never reaches upstream", func(t *testing.T) {
		mockGen := newMockGen(t)

		_, err := mockGen.initOrderUseCase().Submit(context.Background(), &structs.OrderRequest{
			Symbol:      "AAPL",
			Qty:         decimal.NullDecimal{Decimal: decimal.NewFromInt(1), Valid: true},
			Side:        structs.SideBuy,
			Type:        structs.TypeLimit,
			TimeInForce: structs.TIFGTC,
		})

		var vErr *structs.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "limit_price", vErr.Field)
		assert.Equal(t, float64(1), mockGen.count(structs.MetricOrderInvalid))
		mockGen.clientCtrl.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("brokerage rejection is propagated", func(t *testing.T) {
		mockGen := newMockGen(t)
		mockGen.expect(http.MethodPost, "/v2/orders", nil, &controllers.UpstreamError{
			StatusCode: http.StatusForbidden,
			Code:       40310000,
			Message:    "insufficient buying power",
		})

		_, err := mockGen.initOrderUseCase().Submit(context.Background(), &structs.OrderRequest{
			Symbol:      "AAPL",
			Qty:         decimal.NullDecimal{Decimal: decimal.NewFromInt(1000000), Valid: true},
			Side:        structs.SideBuy,
			Type:        structs.TypeMarket,
			TimeInForce: structs.TIFDay,
		})

		var upErr *controllers.UpstreamError
		require.ErrorAs(t, err, &upErr)
		assert.Equal(t, http.StatusForbidden, upErr.StatusCode)
		assert.Equal(t, float64(1), mockGen.count(structs.MetricUpstreamError))
		assert.Equal(t, float64(0), mockGen.count(structs.MetricOrderSubmitted))
	})

	t.Run("notification failure does not fail the order", func(t *testing.T) {
		mockGen := newMockGen(t)
		mockGen.expect(http.MethodPost, "/v2/orders", newOrder(structs.StatusNew), nil)
		mockGen.tgmCtrl.On("Send", mock.AnythingOfType("string")).Return(errors.New("bot blocked")).Once()

		order, err := mockGen.initOrderUseCase().Submit(context.Background(), &structs.OrderRequest{
			Symbol:      "AAPL",
			Qty:         decimal.NullDecimal{Decimal: decimal.NewFromInt(1), Valid: true},
			Side:        structs.SideBuy,
			Type:        structs.TypeMarket,
			TimeInForce: structs.TIFDay,
		})
		require.NoError(t, err)
		assert.Equal(t, string(structs.StatusNew), order.Status)
	})

	t.Run("slow telegram does not delay the order", func(t *testing.T) {
		mockGen := newMockGen(t)
		mockGen.expect(http.MethodPost, "/v2/orders", newOrder(structs.StatusNew), nil)

		release := make(chan struct{})
		mockGen.tgmCtrl.On("Send", mock.AnythingOfType("string")).Run(func(mock.Arguments) {
			<-release
		}).Return(nil).Once()

		u := mockGen.initOrderUseCase()
		t.Cleanup(func() { close(release) })

		start := time.Now()
		order, err := u.Submit(context.Background(), &structs.OrderRequest{
			Symbol:      "AAPL",
			Qty:         decimal.NullDecimal{Decimal: decimal.NewFromInt(1), Valid: true},
			Side:        structs.SideBuy,
			Type:        structs.TypeMarket,
			TimeInForce: structs.TIFDay,
		})
		require.NoError(t, err)
		assert.True(t, time.Since(start) < time.Second, "submit waited on telegram")
		assert.Equal(t, orderID, order.ID)
		assert.Equal(t, float64(1), mockGen.count(structs.MetricOrderSubmitted))
	})

	t.Run("without telegram", func(t *testing.T) {
		mockGen := newMockGen(t)
		mockGen.expect(http.MethodPost, "/v2/orders", newOrder(structs.StatusNew), nil)

		u := NewOrderUseCase(mockGen.clientCtrl, nil, tradingURL, mockGen.metrics, mockGen.logger)
		_, err := u.Submit(context.Background(), &structs.OrderRequest{
			Symbol:      "AAPL",
			Qty:         decimal.NullDecimal{Decimal: decimal.NewFromInt(1), Valid: true},
			Side:        structs.SideBuy,
			Type:        structs.TypeMarket,
			TimeInForce: structs.TIFDay,
		})
		require.NoError(t, err)
	})
}

func Test_OrderUseCase_List(t *testing.T) {
	upstreamOrders := []models.Order{
		newOrder(structs.StatusNew),
		newOrder(structs.StatusFilled),
		newOrder(structs.StatusPartiallyFilled),
		newOrder(structs.StatusCanceled),
	}

	tests := []struct {
		status   structs.QueryOrderStatus
		expected []string
	}{
		{status: "", expected: []string{"new", "partially_filled"}},
		{status: structs.QueryOpen, expected: []string{"new", "partially_filled"}},
		{status: structs.QueryClosed, expected: []string{"filled", "canceled"}},
		{status: structs.QueryAll, expected: []string{"new", "filled", "partially_filled", "canceled"}},
	}

	for _, tt := range tests {
		t.Run("status "+string(tt.status), func(t *testing.T) {
			mockGen := newMockGen(t)

			want := string(tt.status)
			if want == "" {
				want = "open"
			}

			mockGen.clientCtrl.On("Send", mock.Anything, http.MethodGet, mock.MatchedBy(func(input *url.URL) bool {
				return input.Path == "/v2/orders" && input.Query().Get("status") == want
			}), []byte(nil)).Return(mustJSON(upstreamOrders), nil).Once()

			orders, err := mockGen.initOrderUseCase().List(context.Background(), &structs.OrdersQuery{Status: tt.status})
			require.NoError(t, err)

			statuses := make([]string, 0, len(orders))
			for _, o := range orders {
				statuses = append(statuses, o.Status)
			}
			assert.Equal(t, tt.expected, statuses)
		})
	}

	t.Run("invalid status", func(t *testing.T) {
		mockGen := newMockGen(t)

		_, err := mockGen.initOrderUseCase().List(context.Background(), &structs.OrdersQuery{Status: "pending"})

		var vErr *structs.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "status", vErr.Field)
	})
}

func Test_OrderUseCase_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockGen := newMockGen(t)
		mockGen.expect(http.MethodGet, "/v2/orders/"+orderID, newOrder(structs.StatusNew), nil)

		order, err := mockGen.initOrderUseCase().Get(context.Background(), orderID)
		require.NoError(t, err)
		assert.Equal(t, orderID, order.ID)
	})

	t.Run("unknown", func(t *testing.T) {
		mockGen := newMockGen(t)
		mockGen.expect(http.MethodGet, "/v2/orders/"+orderID, nil, &controllers.UpstreamError{
			StatusCode: http.StatusNotFound,
			Message:    "order not found",
		})

		_, err := mockGen.initOrderUseCase().Get(context.Background(), orderID)

		var nfErr *NotFoundError
		require.ErrorAs(t, err, &nfErr)
		assert.Equal(t, "order", nfErr.Resource)
	})

	t.Run("malformed id", func(t *testing.T) {
		mockGen := newMockGen(t)

		_, err := mockGen.initOrderUseCase().Get(context.Background(), "not-an-id")

		var nfErr *NotFoundError
		require.ErrorAs(t, err, &nfErr)
	})
}

func Test_OrderUseCase_Cancel(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		mockGen := newMockGen(t)
		mockGen.expect(http.MethodDelete, "/v2/orders/"+orderID, nil, nil)
		mockGen.tgmCtrl.On("Send", mock.AnythingOfType("string")).Return(nil).Once()

		require.NoError(t, mockGen.initOrderUseCase().Cancel(context.Background(), orderID))
		assert.Equal(t, float64(1), mockGen.count(structs.MetricOrderCanceled))
	})

	t.Run("every call is forwarded", func(t *testing.T) {
		mockGen := newMockGen(t)
		mockGen.expect(http.MethodDelete, "/v2/orders/"+orderID, nil, nil).Twice()
		mockGen.tgmCtrl.On("Send", mock.AnythingOfType("string")).Return(nil).Twice()

		u := mockGen.initOrderUseCase()
		require.NoError(t, u.Cancel(context.Background(), orderID))
		require.NoError(t, u.Cancel(context.Background(), orderID))
	})

	t.Run("nonexistent order", func(t *testing.T) {
		mockGen := newMockGen(t)
		mockGen.expect(http.MethodDelete, "/v2/orders/"+orderID, nil, &controllers.UpstreamError{
			StatusCode: http.StatusNotFound,
			Message:    "order not found",
		})

		var nfErr *NotFoundError
		assert.ErrorAs(t, mockGen.initOrderUseCase().Cancel(context.Background(), orderID), &nfErr)
	})

	t.Run("terminal order", func(t *testing.T) {
		mockGen := newMockGen(t)
		mockGen.expect(http.MethodDelete, "/v2/orders/"+orderID, nil, &controllers.UpstreamError{
			StatusCode: http.StatusUnprocessableEntity,
			Message:    "order is already in \"filled\" state",
		})

		var cErr *ConflictError
		require.ErrorAs(t, mockGen.initOrderUseCase().Cancel(context.Background(), orderID), &cErr)
		assert.Contains(t, cErr.Message, "filled")
		assert.Equal(t, float64(0), mockGen.count(structs.MetricOrderCanceled))
	})

	t.Run("upstream outage passes through", func(t *testing.T) {
		mockGen := newMockGen(t)
		mockGen.expect(http.MethodDelete, "/v2/orders/"+orderID, nil, &controllers.UpstreamError{
			StatusCode: http.StatusServiceUnavailable,
			Message:    "service unavailable",
		})

		var upErr *controllers.UpstreamError
		require.ErrorAs(t, mockGen.initOrderUseCase().Cancel(context.Background(), orderID), &upErr)
		assert.Equal(t, http.StatusServiceUnavailable, upErr.StatusCode)
	})
}

func Test_OrderUseCase_CancelAll(t *testing.T) {
	t.Run("per order outcome", func(t *testing.T) {
		mockGen := newMockGen(t)
		order := newOrder(structs.StatusPendingCancel)
		mockGen.expect(http.MethodDelete, "/v2/orders", []models.CancelStatus{
			{ID: orderID, Status: http.StatusOK, Body: &order},
			{ID: "0d1f7a4e-7f8d-4e0e-9a6b-1c2d3e4f5a6b", Status: http.StatusInternalServerError},
		}, nil)
		mockGen.tgmCtrl.On("Send", mock.AnythingOfType("string")).Return(nil).Once()

		statuses, err := mockGen.initOrderUseCase().CancelAll(context.Background())
		require.NoError(t, err)
		require.Len(t, statuses, 2)
		assert.Equal(t, http.StatusOK, statuses[0].Status)
		assert.Nil(t, statuses[1].Body)
		assert.Equal(t, float64(1), mockGen.count(structs.MetricOrderCancelAll))
	})

	t.Run("nothing to cancel", func(t *testing.T) {
		mockGen := newMockGen(t)
		mockGen.expect(http.MethodDelete, "/v2/orders", "[]", nil)

		statuses, err := mockGen.initOrderUseCase().CancelAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, statuses)
		assert.Empty(t, statuses)
	})
}

func mustJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
