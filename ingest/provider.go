package ingest

import (
	"context"
	"time"

	"github.com/rs/xid"

	"github.com/sig-0/fcbrates/storage/types"
)

// Provider is a rate table source polled by the orchestrator
type Provider interface {
	// Name returns the human-readable name of the provider
	Name() string

	// Interval returns how often the provider's table is ingested
	Interval() time.Duration

	// Fetch downloads the published table and yields its exchange rate data points
	Fetch(context.Context) ([]*types.ExchangeRate, error)
}

// registeredProvider is a provider known to the orchestrator.
// failures is only accessed from the orchestrator loop
type registeredProvider struct {
	Provider

	id       xid.ID
	failures int // consecutive failed fetches
}

// retryDelay returns how long the provider waits before the next fetch,
// after its latest fetch failed. The delay doubles with every consecutive
// failure, and never exceeds the provider interval
func (r *registeredProvider) retryDelay(base time.Duration) time.Duration {
	var (
		delay    = base
		interval = r.Interval()
	)

	for i := 1; i < r.failures && delay < interval; i++ {
		delay *= 2
	}

	return min(delay, interval)
}
