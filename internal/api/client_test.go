package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/folio/internal/common"
	"github.com/Veraticus/folio/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Options{BaseURL: server.URL + "/", Retries: 3})
	require.NoError(t, err)
	client.retry.InitialDelay = time.Millisecond
	client.retry.MaxDelay = time.Millisecond
	return client
}

func TestNew(t *testing.T) {
	_, err := New(Options{})
	require.ErrorIs(t, err, common.ErrMissingConfig)

	client, err := New(Options{BaseURL: "http://localhost:8000/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", client.baseURL)
	assert.Equal(t, 1, client.retry.MaxAttempts)
}

func TestDecodeError(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantDetail string
	}{
		{
			name:       "string detail",
			body:       `{"detail": "Holding not found"}`,
			wantDetail: "Holding not found",
		},
		{
			name:       "structured detail",
			body:       `{"detail": [{"loc": ["body", "quantity"], "msg": "must be positive"}]}`,
			wantDetail: `[{"loc": ["body", "quantity"], "msg": "must be positive"}]`,
		},
		{
			name:       "plain text body",
			body:       "Internal Server Error\n",
			wantDetail: "Internal Server Error",
		},
		{
			name:       "empty body",
			body:       "",
			wantDetail: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, tt.body)
			})

			err := client.DeleteFD(context.Background(), "fd-1")
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
			assert.Equal(t, http.MethodDelete, apiErr.Method)
			assert.Equal(t, "/api/fd/fd-1", apiErr.Path)
		})
	}
}

func TestDetailOf(t *testing.T) {
	withDetail := &APIError{Detail: "Insufficient quantity", StatusCode: 400}
	assert.Equal(t, "Insufficient quantity", DetailOf(withDetail, "Failed to sell"))
	assert.Equal(t, "Insufficient quantity", DetailOf(&common.RetryableError{Err: withDetail}, "Failed to sell"))
	assert.Equal(t, "Failed to sell", DetailOf(&APIError{StatusCode: 500}, "Failed to sell"))
	assert.Equal(t, "Failed to sell", DetailOf(errors.New("boom"), "Failed to sell"))
}

func TestReadsRetryServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stocks/summary", r.URL.Path)
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, `{"holdings": [{"id": "h1", "symbol": "INFY", "quantity": 10, "buy_price": 1400, "buy_date": "2024-01-15", "current_price": 1500}], "total_invested": 14000, "current_value": 15000}`)
	})

	summary, err := client.StockSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	require.Len(t, summary.Holdings, 1)
	assert.Equal(t, "INFY", summary.Holdings[0].Symbol)
	assert.InDelta(t, 1500.0, summary.LivePrices()["INFY"], 0.001)
}

func TestReadsGiveUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"detail": "database locked"}`)
	})

	_, err := client.FDSummary(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMaxRetries)
	assert.Equal(t, "database locked", DetailOf(err, ""))
	assert.Equal(t, int32(3), calls.Load())
}

func TestReadsDoNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.PPFSummary(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWritesAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.SellStock(context.Background(), model.SellOrder{
		HoldingID: "h1",
		SellDate:  model.MustParseDate("2024-06-01"),
		Quantity:  5,
		SellPrice: 1600,
	})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestUnreachableBackend(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := New(Options{BaseURL: url})
	require.NoError(t, err)

	_, err = client.DashboardSummary(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrBackendUnreachable)
}

func TestSellStockRequestBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/stocks/sell", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "h1", body["holding_id"])
		assert.Equal(t, "2024-06-01", body["sell_date"])
		assert.InDelta(t, 5.0, body["quantity"], 0.001)
		assert.NotContains(t, body, "Symbol")
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.SellStock(context.Background(), model.SellOrder{
		HoldingID: "h1",
		Symbol:    "INFY",
		SellDate:  model.MustParseDate("2024-06-01"),
		Quantity:  5,
		SellPrice: 1600,
	})
	require.NoError(t, err)
}

func TestTickerIsCachedUntilWrite(t *testing.T) {
	var tickerCalls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/market/ticker":
			tickerCalls.Add(1)
			_, _ = io.WriteString(w, `[{"symbol": "NIFTY 50", "price": 22000, "change": 110, "change_pct": 0.5}]`)
		case "/api/market/ticker/refresh":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	items, err := client.MarketTicker(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "NIFTY 50", items[0].Symbol)

	_, err = client.MarketTicker(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), tickerCalls.Load())

	require.NoError(t, client.RefreshTicker(ctx))

	_, err = client.MarketTicker(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), tickerCalls.Load())
}

func TestParseContractNoteUpload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/contract-notes/parse", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer func() { _ = file.Close() }()
		data, err := io.ReadAll(file)
		assert.NoError(t, err)
		assert.Equal(t, "note-1.pdf", header.Filename)
		assert.Equal(t, "%PDF-1.4 fake", string(data))

		_, _ = io.WriteString(w, `{"contract_no": "CN1", "trade_date": "2024-05-02", "transactions": [{"symbol": "TCS", "action": "Buy", "quantity": 2, "price": 3800, "trade_date": "2024-05-02"}], "total": 1, "buys": 1, "sells": 0}`)
	})

	preview, err := client.ParseContractNote(context.Background(), "note-1.pdf", strings.NewReader("%PDF-1.4 fake"))
	require.NoError(t, err)
	assert.Equal(t, "CN1", preview.ContractNo)
	require.Len(t, preview.Trades, 1)
	assert.Equal(t, model.ActionBuy, preview.Trades[0].Action)
}

func TestSetRefreshInterval(t *testing.T) {
	var got map[string]int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.SetRefreshInterval(context.Background(), 5*time.Minute))
	assert.Equal(t, 300, got["seconds"])

	require.Error(t, client.SetRefreshInterval(context.Background(), 0))
}

func TestItemEscapesID(t *testing.T) {
	assert.Equal(t, "/api/sip/ABC%2F1/execute", item(pathSIP, "ABC/1", "execute"))
	assert.Equal(t, "/api/fd/fd-1", item(pathFD, "fd-1"))
}
