package firstbank

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sig-0/fcbrates/provider/currencies"
)

// Anchor is the currency all published prices are quoted in
var Anchor = currencies.TWD

// ratePrecision is the number of decimal places kept after re-basing
const ratePrecision = 4

var two = decimal.NewFromInt(2)

// RateEntry is a single normalized rate.
// Rate is the amount of CurrencyCode per one unit of the base currency
type RateEntry struct {
	UpdatedAt    time.Time       `json:"updated_at"`
	CurrencyCode string          `json:"currency_code"`
	Rate         decimal.Decimal `json:"rate"`
}

// Convert computes the rates for every quoted currency relative to the requested one
func Convert(quotes []QuoteRecord, requested string, now time.Time) ([]RateEntry, error) {
	entries, err := AnchorRates(quotes, now)
	if err != nil {
		return nil, err
	}

	return Rebase(entries, requested)
}

// AnchorRates computes the rate of every quoted currency relative to the anchor.
// The anchor itself is always the first entry, with a rate of 1
func AnchorRates(quotes []QuoteRecord, now time.Time) ([]RateEntry, error) {
	entries := make([]RateEntry, 0, len(quotes)+1)

	entries = append(entries, RateEntry{
		CurrencyCode: Anchor.String(),
		Rate:         decimal.NewFromInt(1),
		UpdatedAt:    now,
	})

	for _, q := range quotes {
		mid, err := midPrice(q)
		if err != nil {
			return nil, err
		}

		if mid.IsZero() {
			return nil, fmt.Errorf("%w: mid price for %s", ErrDivisionByZero, q.CurrencyCode)
		}

		entries = append(entries, RateEntry{
			CurrencyCode: q.CurrencyCode,
			Rate:         decimal.NewFromInt(1).Div(mid),
			UpdatedAt:    now,
		})
	}

	return entries, nil
}

// midPrice returns the representative anchor price of one unit of the currency.
// Spot quotes are averaged; without them the cash buying price is used as-is
func midPrice(q QuoteRecord) (decimal.Decimal, error) {
	switch {
	case q.HasSpot():
		return q.SpotBuy.Decimal.Add(q.SpotSell.Decimal).Div(two), nil
	case q.CashBuy.Valid:
		return q.CashBuy.Decimal.Add(q.CashBuy.Decimal).Div(two), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: no spot or cash prices for %s", ErrMissingQuote, q.CurrencyCode)
	}
}

// Rebase re-expresses anchor-relative entries relative to the requested currency.
// The entries are returned unchanged when the anchor is requested
func Rebase(entries []RateEntry, requested string) ([]RateEntry, error) {
	requested = strings.TrimSpace(requested)

	if strings.EqualFold(requested, Anchor.String()) {
		return entries, nil
	}

	var base *RateEntry

	for i := range entries {
		if strings.EqualFold(entries[i].CurrencyCode, requested) {
			base = &entries[i]

			break
		}
	}

	if base == nil {
		return nil, &UnsupportedCurrencyError{Code: requested}
	}

	if base.Rate.IsZero() {
		return nil, fmt.Errorf("%w: rate for %s", ErrDivisionByZero, base.CurrencyCode)
	}

	out := make([]RateEntry, 0, len(entries))

	for _, e := range entries {
		out = append(out, RateEntry{
			CurrencyCode: e.CurrencyCode,
			Rate:         e.Rate.Div(base.Rate).Round(ratePrecision),
			UpdatedAt:    e.UpdatedAt,
		})
	}

	return out, nil
}
