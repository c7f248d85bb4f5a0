package sql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	pgStorage "github.com/sig-0/fcbrates/storage/sql/gen"
	"github.com/sig-0/fcbrates/storage/types"
)

const (
	defaultLimit = int32(100)
	maxLimit     = int32(500)
)

type Storage struct {
	queries *pgStorage.Queries
}

func NewStorage(queries *pgStorage.Queries) *Storage {
	return &Storage{
		queries: queries,
	}
}

func (s *Storage) SaveExchangeRate(
	ctx context.Context,
	rate *types.ExchangeRate,
) error {
	arg := pgStorage.SaveExchangeRateParams{
		Base:      rate.Base.String(),
		Target:    rate.Target.String(),
		Rate:      decimalToNumeric(rate.Rate),
		RateType:  rate.RateType.String(),
		Source:    rate.Source.String(),
		AsOf:      timeToTimestampz(rate.AsOf),
		FetchedAt: timeToTimestampz(rate.FetchedAt),
	}

	if err := s.queries.SaveExchangeRate(ctx, arg); err != nil {
		return fmt.Errorf("unable to save exchange rate: %w", err)
	}

	return nil
}

func (s *Storage) RateAsOf(
	ctx context.Context,
	query *types.RateQuery,
	t time.Time,
) (*types.Page[*types.ExchangeRate], error) {
	arg := pgStorage.RateAsOfParams{
		Base:      query.Base.String(),
		Target:    optionalText(query.Target),
		Source:    optionalText(query.Source),
		RateType:  optionalText(query.RateType),
		AsOf:      timeToTimestampz(t),
		RowLimit:  clampLimit(query.Limit),
		RowOffset: query.Offset,
	}

	results, err := s.queries.RateAsOf(ctx, arg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return emptyPage(), nil // valid case
		}

		return nil, fmt.Errorf("unable to fetch rates: %w", err)
	}

	if len(results) == 0 {
		return emptyPage(), nil // valid case
	}

	items := make([]*types.ExchangeRate, 0, len(results))

	for i := range results {
		pgRate := pgStorage.ExchangeRate{
			ID:        results[i].ID,
			Base:      results[i].Base,
			Target:    results[i].Target,
			Rate:      results[i].Rate,
			RateType:  results[i].RateType,
			Source:    results[i].Source,
			AsOf:      results[i].AsOf,
			FetchedAt: results[i].FetchedAt,
		}

		if rate := parseExchangeRate(pgRate); rate != nil {
			items = append(items, rate)
		}
	}

	return &types.Page[*types.ExchangeRate]{
		Results: items,
		Total:   results[0].Total,
	}, nil
}

func (s *Storage) RatesInRange(
	ctx context.Context,
	query *types.RateQuery,
	from time.Time,
	to time.Time,
) (*types.Page[*types.ExchangeRate], error) {
	arg := pgStorage.RatesInRangeParams{
		Base:      query.Base.String(),
		Target:    optionalText(query.Target),
		Source:    optionalText(query.Source),
		RateType:  optionalText(query.RateType),
		FromAsOf:  timeToTimestampz(from),
		ToAsOf:    timeToTimestampz(to),
		RowLimit:  clampLimit(query.Limit),
		RowOffset: query.Offset,
	}

	results, err := s.queries.RatesInRange(ctx, arg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return emptyPage(), nil // valid case
		}

		return nil, fmt.Errorf("unable to fetch rates: %w", err)
	}

	if len(results) == 0 {
		return emptyPage(), nil // valid case
	}

	items := make([]*types.ExchangeRate, 0, len(results))

	for i := range results {
		pgRate := pgStorage.ExchangeRate{
			ID:        results[i].ID,
			Base:      results[i].Base,
			Target:    results[i].Target,
			Rate:      results[i].Rate,
			RateType:  results[i].RateType,
			Source:    results[i].Source,
			AsOf:      results[i].AsOf,
			FetchedAt: results[i].FetchedAt,
		}

		if rate := parseExchangeRate(pgRate); rate != nil {
			items = append(items, rate)
		}
	}

	return &types.Page[*types.ExchangeRate]{
		Results: items,
		Total:   results[0].Total,
	}, nil
}

func (s *Storage) ListSources(ctx context.Context) ([]types.Source, error) {
	results, err := s.queries.ListSources(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil //nolint:nilnil // valid case
		}

		return nil, fmt.Errorf("unable to fetch sources: %w", err)
	}

	if len(results) == 0 {
		return nil, nil //nolint:nilnil // valid case
	}

	out := make([]types.Source, 0, len(results))

	for _, src := range results {
		out = append(out, types.Source(src))
	}

	return out, nil
}

func (s *Storage) ListCurrencies(ctx context.Context) ([]types.Currency, error) {
	results, err := s.queries.ListCurrencies(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil //nolint:nilnil // valid case
		}

		return nil, fmt.Errorf("unable to fetch currencies: %w", err)
	}

	if len(results) == 0 {
		return nil, nil //nolint:nilnil // valid case
	}

	out := make([]types.Currency, 0, len(results))

	for _, code := range results {
		out = append(out, types.Currency(code))
	}

	return out, nil
}

// parseExchangeRate parses the postgres exchange rate to the common Go type
func parseExchangeRate(pgRate pgStorage.ExchangeRate) *types.ExchangeRate {
	if !pgRate.Rate.Valid || pgRate.Rate.Int == nil {
		return nil
	}

	return &types.ExchangeRate{
		Base:      types.Currency(pgRate.Base),
		Target:    types.Currency(pgRate.Target),
		Rate:      numericToDecimal(pgRate.Rate),
		RateType:  types.RateType(pgRate.RateType),
		Source:    types.Source(pgRate.Source),
		AsOf:      timestampzToTime(pgRate.AsOf),
		FetchedAt: timestampzToTime(pgRate.FetchedAt),
	}
}

func emptyPage() *types.Page[*types.ExchangeRate] {
	return &types.Page[*types.ExchangeRate]{
		Results: nil,
		Total:   0,
	}
}

// clampLimit applies the default and maximum page size
func clampLimit(limit int32) int32 {
	if limit <= 0 {
		return defaultLimit
	}

	if limit > maxLimit {
		return maxLimit
	}

	return limit
}

// optionalText converts an optional filter value to a nullable postgres text
func optionalText[T ~string](v *T) pgtype.Text {
	if v == nil {
		return pgtype.Text{}
	}

	return pgtype.Text{
		String: string(*v),
		Valid:  true,
	}
}

// decimalToNumeric converts the decimal value to postgres numeric
func decimalToNumeric(value decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:   value.Coefficient(),
		Exp:   value.Exponent(),
		Valid: true,
	}
}

// numericToDecimal converts the postgres value to decimal
func numericToDecimal(value pgtype.Numeric) decimal.Decimal {
	return decimal.NewFromBigInt(value.Int, value.Exp)
}

// timeToTimestampz converts the time value to postgres timestamp
func timeToTimestampz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:  t.UTC(),
		Valid: true,
	}
}

// timestampzToTime converts the postgres timestamp value to time
func timestampzToTime(ts pgtype.Timestamptz) time.Time {
	if !ts.Valid {
		return time.Time{}
	}

	return ts.Time
}
