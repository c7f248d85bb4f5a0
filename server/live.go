package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sig-0/fcbrates/metrics"
	"github.com/sig-0/fcbrates/provider/firstbank"
)

var errUnableToFetchLiveRates = errors.New("unable to fetch live rates")

// LiveRates fetches the published rates and converts them to the requested currency
type LiveRates interface {
	GetRates(ctx context.Context, currency string) ([]firstbank.RateEntry, error)
}

// Live serves the freshly fetched rates of every quoted currency,
// relative to the requested one
func (s *Server) Live(w http.ResponseWriter, r *http.Request) {
	currency, err := parseCurrencySymbol(chi.URLParam(r, "currency"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	entries, err := s.live.GetRates(r.Context(), currency.String())
	if err != nil {
		s.metrics.LiveRequestsTotal.WithLabelValues(metrics.StatusError).Inc()

		if errors.Is(err, firstbank.ErrUnsupportedCurrency) {
			writeError(w, http.StatusNotFound, err)

			return
		}

		s.logger.Error(
			"unable to fetch live rates",
			"currency", currency,
			"err", err,
		)

		writeError(w, http.StatusBadGateway, errUnableToFetchLiveRates)

		return
	}

	s.metrics.LiveRequestsTotal.WithLabelValues(metrics.StatusSuccess).Inc()

	writeJSON(w, http.StatusOK, &LiveRatesResponse{
		Base:    currency,
		Results: entries,
	})
}
