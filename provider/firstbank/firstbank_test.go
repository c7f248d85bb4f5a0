package firstbank

import (
	"context"
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/fcbrates/provider/currencies"
	"github.com/sig-0/fcbrates/storage/types"
)

// newTestProvider creates a provider pointed at a server serving the given page
func newTestProvider(t *testing.T, status int, page string) *Provider {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)

		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(srv.Close)

	p := NewProvider(srv.URL, time.Second*5, time.Hour)
	p.now = func() time.Time {
		return testNow
	}

	return p
}

func TestProvider_GetRates(t *testing.T) {
	t.Parallel()

	t.Run("anchor requested", func(t *testing.T) {
		t.Parallel()

		p := newTestProvider(t, http.StatusOK, testTableHTML)

		entries, err := p.GetRates(context.Background(), "TWD")
		require.NoError(t, err)
		require.Len(t, entries, 4)

		assert.Equal(t, "TWD", entries[0].CurrencyCode)
		assert.Equal(t, "USD", entries[1].CurrencyCode)
		assert.Equal(t, "JPY", entries[2].CurrencyCode)
		assert.Equal(t, "CNY", entries[3].CurrencyCode)

		assertRate(t, "1", entries[0].Rate)
		assertRate(t, "0.0315457413249211", entries[1].Rate)
		assertRate(t, "0.2325581395348837", entries[3].Rate) // cash only

		for _, e := range entries {
			assert.Equal(t, testNow, e.UpdatedAt)
		}
	})

	t.Run("foreign currency requested", func(t *testing.T) {
		t.Parallel()

		p := newTestProvider(t, http.StatusOK, testTableHTML)

		entries, err := p.GetRates(context.Background(), "USD")
		require.NoError(t, err)

		assertRate(t, "31.7", rateOf(t, entries, "TWD"))
		assertRate(t, "1", rateOf(t, entries, "USD"))
		assertRate(t, "147.4419", rateOf(t, entries, "JPY"))
	})

	t.Run("unsupported currency", func(t *testing.T) {
		t.Parallel()

		p := newTestProvider(t, http.StatusOK, testTableHTML)

		_, err := p.GetRates(context.Background(), "XYZ")

		assert.ErrorIs(t, err, ErrUnsupportedCurrency)
	})

	t.Run("invalid status code", func(t *testing.T) {
		t.Parallel()

		p := newTestProvider(t, http.StatusBadGateway, "")

		_, err := p.GetRates(context.Background(), "TWD")

		assert.Error(t, err)
	})

	t.Run("missing table", func(t *testing.T) {
		t.Parallel()

		p := newTestProvider(t, http.StatusOK, "<html><body>maintenance</body></html>")

		_, err := p.GetRates(context.Background(), "TWD")

		assert.ErrorIs(t, err, ErrMalformedRow)
	})

	t.Run("untrusted certificate", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(testTableHTML))
		}))
		t.Cleanup(srv.Close)

		p := NewProvider(srv.URL, time.Second*5, time.Hour)

		_, err := p.GetRates(context.Background(), "TWD")
		require.Error(t, err)

		var certErr *tls.CertificateVerificationError
		assert.ErrorAs(t, err, &certErr)
	})

	t.Run("trusted certificate", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(testTableHTML))
		}))
		t.Cleanup(srv.Close)

		p := NewProvider(srv.URL, time.Second*5, time.Hour)
		p.client.Transport = srv.Client().Transport

		entries, err := p.GetRates(context.Background(), "TWD")
		require.NoError(t, err)

		assert.Len(t, entries, 4)
	})
}

func TestProvider_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("valid page", func(t *testing.T) {
		t.Parallel()

		p := newTestProvider(t, http.StatusOK, testTableHTML)

		rates, err := p.Fetch(context.Background())
		require.NoError(t, err)

		// 3 MID rates, 3 BUY/SELL pairs
		require.Len(t, rates, 9)

		var mids, buys, sells int

		for _, rate := range rates {
			assert.Equal(t, Source, rate.Source)
			assert.Equal(t, testNow, rate.AsOf)
			assert.Equal(t, testNow, rate.FetchedAt)

			switch rate.RateType {
			case types.RateTypeMID:
				mids++

				assert.Equal(t, currencies.TWD, rate.Base)
			case types.RateTypeBUY:
				buys++

				assert.Equal(t, currencies.TWD, rate.Target)
			case types.RateTypeSELL:
				sells++

				assert.Equal(t, currencies.TWD, rate.Target)
			}
		}

		assert.Equal(t, 3, mids)
		assert.Equal(t, 3, buys)
		assert.Equal(t, 3, sells)

		// The CNY prices come from its cash quote
		assert.Equal(t, currencies.CNY, rates[7].Base)
		assert.Equal(t, types.RateTypeBUY, rates[7].RateType)
		assertRate(t, "4.3", rates[7].Rate)
	})

	t.Run("invalid status code", func(t *testing.T) {
		t.Parallel()

		p := newTestProvider(t, http.StatusInternalServerError, "")

		rates, err := p.Fetch(context.Background())

		assert.Error(t, err)
		assert.Nil(t, rates)
	})
}

func TestProvider_Metadata(t *testing.T) {
	t.Parallel()

	p := NewProvider(DefaultURL, time.Second, time.Minute*30)

	assert.Equal(t, "First Bank", p.Name())
	assert.Equal(t, time.Minute*30, p.Interval())
}
