package graph

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/sig-0/fcbrates/storage"
	"github.com/sig-0/fcbrates/storage/types"
)

var (
	errUnableToFetchRates      = errors.New("unable to fetch rates")
	errUnableToFetchCurrencies = errors.New("unable to fetch currencies")
	errUnableToFetchSources    = errors.New("unable to fetch sources")
)

// Resolver resolves the Query fields against the rate store
type Resolver struct {
	Storage storage.Reader

	logger *slog.Logger
}

func NewResolver(s storage.Reader, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Resolver{
		Storage: s,
		logger:  logger,
	}
}

// Rates returns the latest rates for the base currency, as of the given time
func (r *Resolver) Rates(ctx context.Context, args map[string]any) (*types.Page[*types.ExchangeRate], error) {
	baseArg, err := stringArg(args, "base")
	if err != nil {
		return nil, err
	}

	if baseArg == nil {
		return nil, errInvalidCcy
	}

	base, err := parseCurrencySymbol(*baseArg)
	if err != nil {
		return nil, err
	}

	q := &types.RateQuery{
		Base: base,
	}

	targetArg, err := stringArg(args, "target")
	if err != nil {
		return nil, err
	}

	if targetArg != nil {
		target, err := parseCurrencySymbol(*targetArg)
		if err != nil {
			return nil, err
		}

		q.Target = &target
	}

	asOfArg, err := timeArg(args, "asOf")
	if err != nil {
		return nil, err
	}

	if err := parseFilters(args, q); err != nil {
		return nil, err
	}

	page, err := r.Storage.RateAsOf(ctx, q, parseAsOf(asOfArg))
	if err != nil {
		r.logger.Debug(
			"unable to fetch rates",
			"err", err,
		)

		return nil, errUnableToFetchRates
	}

	return orEmpty(page), nil
}

// History returns the rates of the currency pair effective within the range
func (r *Resolver) History(ctx context.Context, args map[string]any) (*types.Page[*types.ExchangeRate], error) {
	baseArg, err := stringArg(args, "base")
	if err != nil {
		return nil, err
	}

	targetArg, err := stringArg(args, "target")
	if err != nil {
		return nil, err
	}

	if baseArg == nil || targetArg == nil {
		return nil, errInvalidCcy
	}

	base, err := parseCurrencySymbol(*baseArg)
	if err != nil {
		return nil, err
	}

	target, err := parseCurrencySymbol(*targetArg)
	if err != nil {
		return nil, err
	}

	fromArg, err := timeArg(args, "from")
	if err != nil {
		return nil, err
	}

	toArg, err := timeArg(args, "to")
	if err != nil {
		return nil, err
	}

	from, to, err := parseRange(fromArg, toArg)
	if err != nil {
		return nil, err
	}

	q := &types.RateQuery{
		Base:   base,
		Target: &target,
	}

	if err := parseFilters(args, q); err != nil {
		return nil, err
	}

	page, err := r.Storage.RatesInRange(ctx, q, from, to)
	if err != nil {
		r.logger.Debug(
			"unable to fetch rate history",
			"err", err,
		)

		return nil, errUnableToFetchRates
	}

	return orEmpty(page), nil
}

// Sources lists the sources with stored rates
func (r *Resolver) Sources(ctx context.Context) ([]string, error) {
	items, err := r.Storage.ListSources(ctx)
	if err != nil {
		r.logger.Debug(
			"unable to fetch sources",
			"err", err,
		)

		return nil, errUnableToFetchSources
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.String())
	}

	return out, nil
}

// Currencies lists the currencies with stored rates
func (r *Resolver) Currencies(ctx context.Context) ([]string, error) {
	items, err := r.Storage.ListCurrencies(ctx)
	if err != nil {
		r.logger.Debug(
			"unable to fetch currencies",
			"err", err,
		)

		return nil, errUnableToFetchCurrencies
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.String())
	}

	return out, nil
}

// parseFilters applies the optional source, type and pagination arguments
func parseFilters(args map[string]any, q *types.RateQuery) error {
	sourceArg, err := stringArg(args, "source")
	if err != nil {
		return err
	}

	typeArg, err := stringArg(args, "type")
	if err != nil {
		return err
	}

	source, rateType, err := parseSourceAndType(sourceArg, typeArg)
	if err != nil {
		return err
	}

	limitArg, err := intArg(args, "limit")
	if err != nil {
		return err
	}

	offsetArg, err := intArg(args, "offset")
	if err != nil {
		return err
	}

	limit, offset, err := parseLimitOffset(limitArg, offsetArg)
	if err != nil {
		return err
	}

	q.Source = source
	q.RateType = rateType
	q.Limit = limit
	q.Offset = offset

	return nil
}

func orEmpty(page *types.Page[*types.ExchangeRate]) *types.Page[*types.ExchangeRate] {
	if page == nil {
		return &types.Page[*types.ExchangeRate]{}
	}

	return page
}
