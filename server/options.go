package server

import (
	"log/slog"

	"github.com/sig-0/fcbrates/metrics"
	"github.com/sig-0/fcbrates/server/config"
)

type Option func(s *Server)

// WithLogger specifies the logger for the server
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithConfig specifies the config for the server
func WithConfig(c *config.Config) Option {
	return func(s *Server) {
		s.config = c
	}
}

// WithMetrics specifies the metrics the server reports to and exposes
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLiveRates enables the live conversion endpoint, backed by the given source
func WithLiveRates(l LiveRates) Option {
	return func(s *Server) {
		s.live = l
	}
}
