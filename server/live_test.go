package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/fcbrates/metrics"
	"github.com/sig-0/fcbrates/provider/currencies"
	"github.com/sig-0/fcbrates/provider/firstbank"
)

type getRatesDelegate func(context.Context, string) ([]firstbank.RateEntry, error)

type mockLiveRates struct {
	getRatesFn getRatesDelegate
}

func (m *mockLiveRates) GetRates(ctx context.Context, currency string) ([]firstbank.RateEntry, error) {
	if m.getRatesFn != nil {
		return m.getRatesFn(ctx, currency)
	}

	return nil, nil
}

func newLiveServer(t *testing.T, live LiveRates) *Server {
	t.Helper()

	return &Server{
		logger:  noopLogger,
		metrics: metrics.New(),
		live:    live,
	}
}

func TestLive(t *testing.T) {
	t.Parallel()

	t.Run("invalid currency", func(t *testing.T) {
		t.Parallel()

		var called bool

		s := newLiveServer(t, &mockLiveRates{
			getRatesFn: func(_ context.Context, _ string) ([]firstbank.RateEntry, error) {
				called = true

				return nil, nil
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/v1/live/US", http.NoBody)
		req = withRouteParams(t, req, map[string]string{"currency": "US"})

		w := httptest.NewRecorder()
		s.Live(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, called)
	})

	t.Run("unsupported currency", func(t *testing.T) {
		t.Parallel()

		s := newLiveServer(t, &mockLiveRates{
			getRatesFn: func(_ context.Context, currency string) ([]firstbank.RateEntry, error) {
				return nil, &firstbank.UnsupportedCurrencyError{Code: currency}
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/v1/live/XYZ", http.NoBody)
		req = withRouteParams(t, req, map[string]string{"currency": "XYZ"})

		w := httptest.NewRecorder()
		s.Live(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)

		var resp ErrorResponse

		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Contains(t, resp.Error, `"XYZ"`)

		assert.Equal(
			t,
			1.0,
			testutil.ToFloat64(s.metrics.LiveRequestsTotal.WithLabelValues(metrics.StatusError)),
		)
	})

	t.Run("upstream failure", func(t *testing.T) {
		t.Parallel()

		s := newLiveServer(t, &mockLiveRates{
			getRatesFn: func(_ context.Context, _ string) ([]firstbank.RateEntry, error) {
				return nil, errors.New("connection reset")
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/v1/live/USD", http.NoBody)
		req = withRouteParams(t, req, map[string]string{"currency": "USD"})

		w := httptest.NewRecorder()
		s.Live(w, req)

		require.Equal(t, http.StatusBadGateway, w.Code)

		var resp ErrorResponse

		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, errUnableToFetchLiveRates.Error(), resp.Error)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		var (
			capturedCurrency string
			updatedAt        = time.Date(2026, time.October, 17, 8, 0, 0, 0, time.UTC)
		)

		s := newLiveServer(t, &mockLiveRates{
			getRatesFn: func(_ context.Context, currency string) ([]firstbank.RateEntry, error) {
				capturedCurrency = currency

				return []firstbank.RateEntry{
					{UpdatedAt: updatedAt, CurrencyCode: "TWD", Rate: decimal.RequireFromString("31.7")},
					{UpdatedAt: updatedAt, CurrencyCode: "USD", Rate: decimal.NewFromInt(1)},
				}, nil
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/v1/live/usd", http.NoBody)
		req = withRouteParams(t, req, map[string]string{"currency": "usd"})

		w := httptest.NewRecorder()
		s.Live(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, currencies.USD.String(), capturedCurrency)

		var resp LiveRatesResponse

		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

		assert.Equal(t, currencies.USD, resp.Base)
		require.Len(t, resp.Results, 2)

		assert.Equal(t, "TWD", resp.Results[0].CurrencyCode)
		assert.True(t, decimal.RequireFromString("31.7").Equal(resp.Results[0].Rate))
		assert.Equal(t, updatedAt, resp.Results[0].UpdatedAt)

		assert.Equal(
			t,
			1.0,
			testutil.ToFloat64(s.metrics.LiveRequestsTotal.WithLabelValues(metrics.StatusSuccess)),
		)
	})
}
