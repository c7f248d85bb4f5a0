package serve

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/sig-0/fcbrates/ingest"
	"github.com/sig-0/fcbrates/metrics"
	"github.com/sig-0/fcbrates/server"
	"github.com/sig-0/fcbrates/server/config"
	"github.com/sig-0/fcbrates/server/graph"
	"github.com/sig-0/fcbrates/storage"
)

// runService starts the HTTP server and the rate ingestion
// on top of the given store, until the context is cancelled
// or a termination signal is received
func runService(
	ctx context.Context,
	logger *slog.Logger,
	cfg *config.Config,
	store storage.Storage,
) error {
	var (
		m        = metrics.New()
		provider = newFirstBankProvider(cfg)
	)

	// Create the ingestion service
	orchestrator := ingest.New(
		store,
		ingest.WithLogger(logger),
		ingest.WithMetrics(m),
	)

	if err := orchestrator.Register(provider); err != nil {
		return fmt.Errorf("unable to register provider: %w", err)
	}

	// Create the server instance
	s, err := server.New(
		store,
		server.WithLogger(logger),
		server.WithConfig(cfg),
		server.WithMetrics(m),
		server.WithLiveRates(provider),
	)
	if err != nil {
		return fmt.Errorf("unable to create server, %w", err)
	}

	// Mount the GraphQL endpoint
	s.Routes(func(r chi.Router) {
		graph.Setup(store, logger, r)
	})

	runCtx, cancelFn := signal.NotifyContext(
		ctx,
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancelFn()

	group, gCtx := errgroup.WithContext(runCtx)

	// Start the HTTP server
	group.Go(func() error {
		return s.Serve(gCtx)
	})

	// Start the ingestion service
	group.Go(func() error {
		return orchestrator.Start(gCtx)
	})

	return group.Wait()
}
