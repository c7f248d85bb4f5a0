package ingest

import (
	"context"
	"time"

	"github.com/sig-0/fcbrates/storage/types"
)

// scheduledIngest is a single scheduled provider ingest job
type scheduledIngest struct {
	at       time.Time
	provider *registeredProvider
}

// Less orders scheduled ingests by their due time (earliest first)
func (a scheduledIngest) Less(b scheduledIngest) bool {
	return a.at.Before(b.at)
}

// fetchResult is the outcome of a single provider fetch
type fetchResult struct {
	provider *registeredProvider
	err      error
	rates    []*types.ExchangeRate
	duration time.Duration
}

// runFetch fetches the provider's rates and hands the result to the collector
func runFetch(
	ctx context.Context,
	provider *registeredProvider,
	resCh chan<- *fetchResult,
) {
	start := time.Now()
	rates, err := provider.Fetch(ctx)

	result := &fetchResult{
		provider: provider,
		err:      err,
		rates:    rates,
		duration: time.Since(start),
	}

	select {
	case <-ctx.Done():
	case resCh <- result:
	}
}
