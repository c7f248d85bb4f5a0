package firstbank

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sig-0/fcbrates/storage/types"
)

// Source is the source name of the rates ingested from First Bank
var Source types.Source = "FirstBank"

// DefaultURL is the published First Bank rate table
const DefaultURL = "https://ibank.firstbank.com.tw/NetBank/7/0201.html?sh=none"

// Provider is the First Bank rate table scraping provider
type Provider struct {
	client   *http.Client
	now      func() time.Time
	url      string
	interval time.Duration
}

// NewProvider creates a new instance of the First Bank provider
func NewProvider(url string, timeout, interval time.Duration) *Provider {
	tr := http.DefaultTransport.(*http.Transport).Clone()

	return &Provider{
		client: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
		now: func() time.Time {
			return time.Now().UTC()
		},
		url:      url,
		interval: interval,
	}
}

// Name returns the display name of the provider
func (p *Provider) Name() string {
	return "First Bank"
}

func (p *Provider) Interval() time.Duration {
	return p.interval
}

// GetRates fetches the rate table and returns the rate of every quoted
// currency relative to the requested one. The anchor is always included
func (p *Provider) GetRates(ctx context.Context, requested string) ([]RateEntry, error) {
	quotes, fetchTime, err := p.fetchQuotes(ctx)
	if err != nil {
		return nil, err
	}

	return Convert(quotes, requested, fetchTime)
}

// Fetch fetches the rate table and yields the MID rate of every quoted
// currency against the anchor, along with the published BUY and SELL prices
func (p *Provider) Fetch(ctx context.Context) ([]*types.ExchangeRate, error) {
	quotes, fetchTime, err := p.fetchQuotes(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := AnchorRates(quotes, fetchTime)
	if err != nil {
		return nil, err
	}

	out := make([]*types.ExchangeRate, 0, len(quotes)*3)

	// The first entry is the anchor itself
	for _, e := range entries[1:] {
		out = append(out, &types.ExchangeRate{
			AsOf:      fetchTime,
			FetchedAt: fetchTime,
			Base:      Anchor,
			Target:    types.Currency(e.CurrencyCode),
			RateType:  types.RateTypeMID,
			Source:    Source,
			Rate:      e.Rate,
		})
	}

	for _, q := range quotes {
		buy, sell := q.SpotBuy, q.SpotSell
		if !q.HasSpot() {
			buy, sell = q.CashBuy, q.CashSell
		}

		if !buy.Valid || !sell.Valid {
			continue
		}

		out = append(
			out,
			&types.ExchangeRate{
				AsOf:      fetchTime,
				FetchedAt: fetchTime,
				Base:      types.Currency(q.CurrencyCode),
				Target:    Anchor,
				RateType:  types.RateTypeBUY,
				Source:    Source,
				Rate:      buy.Decimal,
			},
			&types.ExchangeRate{
				AsOf:      fetchTime,
				FetchedAt: fetchTime,
				Base:      types.Currency(q.CurrencyCode),
				Target:    Anchor,
				RateType:  types.RateTypeSELL,
				Source:    Source,
				Rate:      sell.Decimal,
			},
		)
	}

	return out, nil
}

// fetchQuotes downloads and parses the rate table
func (p *Provider) fetchQuotes(ctx context.Context) ([]QuoteRecord, time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, http.NoBody)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("unable to create GET request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("unable to execute GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, time.Time{}, fmt.Errorf("invalid status code received: %d", resp.StatusCode)
	}

	fetchTime := p.now()

	rows, err := ParseTable(resp.Body)
	if err != nil {
		return nil, time.Time{}, err
	}

	quotes, err := ParseQuotes(rows)
	if err != nil {
		return nil, time.Time{}, err
	}

	return quotes, fetchTime, nil
}
