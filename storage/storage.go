package storage

import (
	"context"
	"time"

	"github.com/sig-0/fcbrates/storage/types"
)

// Writer persists ingested exchange rates
type Writer interface {
	// SaveExchangeRate upserts the rate data point.
	// A point is unique per base, target, type, source and effective date
	SaveExchangeRate(context.Context, *types.ExchangeRate) error
}

// Reader queries the stored exchange rates
type Reader interface {
	// RateAsOf returns the latest rate per target, source and type,
	// effective at or before the given time
	RateAsOf(context.Context, *types.RateQuery, time.Time) (*types.Page[*types.ExchangeRate], error)

	// RatesInRange returns the rates effective within [from, to], newest first
	RatesInRange(context.Context, *types.RateQuery, time.Time, time.Time) (*types.Page[*types.ExchangeRate], error)

	// ListSources lists the sources with at least one stored rate
	ListSources(context.Context) ([]types.Source, error)

	// ListCurrencies lists the currencies appearing as a base or target
	ListCurrencies(context.Context) ([]types.Currency, error)
}

// Storage is the exchange rate datastore
type Storage interface {
	Writer
	Reader
}
