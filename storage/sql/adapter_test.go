package sql

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgStorage "github.com/sig-0/fcbrates/storage/sql/gen"
	"github.com/sig-0/fcbrates/storage/types"
)

func TestAdapter_NumericConversion(t *testing.T) {
	t.Parallel()

	// Full anchor-relative precision is kept
	value := decimal.RequireFromString("0.0315457413249211")

	numeric := decimalToNumeric(value)

	assert.True(t, numeric.Valid)
	assert.Equal(t, int32(-16), numeric.Exp)
	assert.True(t, value.Equal(numericToDecimal(numeric)))
}

func TestAdapter_ParseExchangeRate(t *testing.T) {
	t.Parallel()

	t.Run("invalid rate", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, parseExchangeRate(pgStorage.ExchangeRate{}))
	})

	t.Run("valid rate", func(t *testing.T) {
		t.Parallel()

		asOf := time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)

		rate := parseExchangeRate(pgStorage.ExchangeRate{
			Base:      "TWD",
			Target:    "USD",
			Rate:      decimalToNumeric(decimal.RequireFromString("0.0315")),
			RateType:  types.RateTypeMID.String(),
			Source:    "FirstBank",
			AsOf:      timeToTimestampz(asOf),
			FetchedAt: pgtype.Timestamptz{},
		})
		require.NotNil(t, rate)

		assert.Equal(t, types.Currency("USD"), rate.Target)
		assert.True(t, decimal.RequireFromString("0.0315").Equal(rate.Rate))
		assert.Equal(t, asOf, rate.AsOf)
		assert.True(t, rate.FetchedAt.IsZero())
	})
}

func TestAdapter_QueryParams(t *testing.T) {
	t.Parallel()

	assert.False(t, optionalText[types.Currency](nil).Valid)

	target := types.Currency("USD")
	text := optionalText(&target)

	assert.True(t, text.Valid)
	assert.Equal(t, "USD", text.String)

	assert.Equal(t, defaultLimit, clampLimit(0))
	assert.Equal(t, maxLimit, clampLimit(10_000))
	assert.Equal(t, int32(20), clampLimit(20))
}
