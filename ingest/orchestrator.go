package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sig-0/iq"

	"github.com/sig-0/fcbrates/metrics"
	"github.com/sig-0/fcbrates/storage"
)

const saveTimeout = time.Second * 10

var (
	errInvalidProvider = errors.New("invalid provider")
	errInvalidInterval = errors.New("invalid interval")
)

// Orchestrator polls the registered rate table providers on their
// intervals, and stores every rate they yield
type Orchestrator struct {
	storage storage.Writer
	logger  *slog.Logger
	metrics *metrics.Metrics

	q             iq.Queue[scheduledIngest]
	queryInterval time.Duration
	retryDelay    time.Duration
	bufferSize    int
	qMux          sync.Mutex
}

// New creates a new Orchestrator instance
func New(storage storage.Writer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		storage:       storage,
		metrics:       metrics.New(),
		q:             iq.NewQueue[scheduledIngest](),
		queryInterval: time.Second,
		retryDelay:    time.Second * 10,
		bufferSize:    100,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Register registers a new provider with the orchestrator.
// The provider is queued up for an immediate fetch
func (o *Orchestrator) Register(p Provider) error {
	if p == nil || p.Name() == "" {
		return errInvalidProvider
	}

	if p.Interval() <= 0 {
		return errInvalidInterval
	}

	rp := &registeredProvider{
		Provider: p,
		id:       xid.New(),
	}

	o.logger.Info(
		"registered new provider",
		"name", p.Name(),
		"id", rp.id.String(),
		"interval", p.Interval().String(),
	)

	o.scheduleIngest(time.Now().UTC(), rp)

	return nil
}

// Start runs the ingestion loop until the context is cancelled [BLOCKING]
func (o *Orchestrator) Start(ctx context.Context) error {
	resCh := make(chan *fetchResult, o.bufferSize)

	ticker := time.NewTicker(o.queryInterval)
	defer ticker.Stop()

	// Kick off the jobs that are due on boot
	o.dispatchDue(ctx, resCh)

	for {
		select {
		case <-ctx.Done():
			o.logger.Info("orchestrator service shut down")

			return nil
		case <-ticker.C:
			o.dispatchDue(ctx, resCh)
		case result := <-resCh:
			o.handleResult(ctx, result)
		}
	}
}

// dispatchDue spawns a fetch for every ingest that is due
func (o *Orchestrator) dispatchDue(ctx context.Context, resCh chan<- *fetchResult) {
	for ctx.Err() == nil {
		next := o.nextIngest()
		if next == nil {
			return
		}

		o.logger.Debug(
			"fetching provider rates",
			"name", next.provider.Name(),
			"id", next.provider.id.String(),
		)

		go runFetch(ctx, next.provider, resCh)
	}
}

// handleResult stores the fetched rates, and schedules the next
// fetch of the provider. Failed fetches are retried with a backoff
func (o *Orchestrator) handleResult(ctx context.Context, result *fetchResult) {
	var (
		now  = time.Now().UTC()
		rp   = result.provider
		name = rp.Name()
		id   = rp.id.String()
	)

	o.metrics.ProviderFetchDuration.
		WithLabelValues(name).
		Observe(result.duration.Seconds())

	if result.err != nil {
		rp.failures++

		delay := rp.retryDelay(o.retryDelay)

		o.logger.Error(
			"unable to fetch provider rates",
			"name", name,
			"id", id,
			"failures", rp.failures,
			"retry_in", delay.String(),
			"err", result.err,
		)

		o.metrics.ProviderFetchesTotal.
			WithLabelValues(name, metrics.StatusError).
			Inc()

		o.scheduleIngest(now.Add(delay), rp)

		return
	}

	rp.failures = 0

	o.metrics.ProviderFetchesTotal.
		WithLabelValues(name, metrics.StatusSuccess).
		Inc()

	saved := o.saveRates(ctx, result)

	o.logger.Info(
		"provider rates ingested",
		"name", name,
		"id", id,
		"fetched", len(result.rates),
		"saved", saved,
	)

	o.scheduleIngest(now.Add(rp.Interval()), rp)
}

// saveRates persists the fetched rates, returning how many were saved.
// A failed save does not stop the remaining ones
func (o *Orchestrator) saveRates(ctx context.Context, result *fetchResult) int {
	saved := 0

	for _, rate := range result.rates {
		saveCtx, cancelFn := context.WithTimeout(ctx, saveTimeout)
		err := o.storage.SaveExchangeRate(saveCtx, rate)

		cancelFn()

		if err != nil {
			o.logger.Error(
				"unable to save exchange rate",
				"base", rate.Base,
				"target", rate.Target,
				"rate_type", rate.RateType,
				"source", rate.Source,
				"err", err,
			)

			o.metrics.RatesSavedTotal.
				WithLabelValues(rate.Source.String(), metrics.StatusError).
				Inc()

			continue
		}

		saved++

		o.logger.Debug(
			"saved exchange rate",
			"base", rate.Base,
			"target", rate.Target,
			"rate_type", rate.RateType,
			"source", rate.Source,
			"rate", rate.Rate.String(),
			"as_of", rate.AsOf.String(),
		)

		o.metrics.RatesSavedTotal.
			WithLabelValues(rate.Source.String(), metrics.StatusSuccess).
			Inc()
	}

	return saved
}

// scheduleIngest queues a fetch of the provider at the given time
func (o *Orchestrator) scheduleIngest(at time.Time, rp *registeredProvider) {
	o.qMux.Lock()
	defer o.qMux.Unlock()

	o.q.Push(scheduledIngest{
		at:       at,
		provider: rp,
	})
}

// nextIngest pops the earliest ingest, if it is due
func (o *Orchestrator) nextIngest() *scheduledIngest {
	o.qMux.Lock()
	defer o.qMux.Unlock()

	if o.q.Len() == 0 {
		return nil
	}

	if o.q.Index(0).at.After(time.Now().UTC()) {
		return nil
	}

	return o.q.PopFront()
}
