package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpers_ParseLimitOffset(t *testing.T) {
	t.Parallel()

	ptr := func(v int64) *int64 {
		return &v
	}

	testTable := []struct {
		limit          *int64
		offset         *int64
		expectedErr    error
		name           string
		expectedLimit  int32
		expectedOffset int64
	}{
		{nil, nil, nil, "defaults", defaultLimit, 0},
		{ptr(0), nil, nil, "zero limit", defaultLimit, 0},
		{ptr(5000), ptr(20), nil, "clamped limit", maxLimit, 20},
		{ptr(-1), nil, errInvalidLimit, "negative limit", 0, 0},
		{nil, ptr(-1), errInvalidOffset, "negative offset", 0, 0},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			limit, offset, err := parseLimitOffset(testCase.limit, testCase.offset)
			if testCase.expectedErr != nil {
				assert.ErrorIs(t, err, testCase.expectedErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.expectedLimit, limit)
			assert.Equal(t, testCase.expectedOffset, offset)
		})
	}
}

func TestHelpers_Args(t *testing.T) {
	t.Parallel()

	t.Run("absent and null arguments", func(t *testing.T) {
		t.Parallel()

		args := map[string]any{"target": nil}

		target, err := stringArg(args, "target")
		require.NoError(t, err)
		assert.Nil(t, target)

		limit, err := intArg(args, "limit")
		require.NoError(t, err)
		assert.Nil(t, limit)
	})

	t.Run("variable numbers", func(t *testing.T) {
		t.Parallel()

		limit, err := intArg(map[string]any{"limit": json.Number("25")}, "limit")
		require.NoError(t, err)
		require.NotNil(t, limit)

		assert.Equal(t, int64(25), *limit)
	})

	t.Run("invalid time", func(t *testing.T) {
		t.Parallel()

		_, err := timeArg(map[string]any{"asOf": "yesterday"}, "asOf")

		assert.Error(t, err)
	})

	t.Run("currency symbol", func(t *testing.T) {
		t.Parallel()

		ccy, err := parseCurrencySymbol(" usd ")
		require.NoError(t, err)
		assert.Equal(t, "USD", ccy.String())

		_, err = parseCurrencySymbol("US")
		assert.ErrorIs(t, err, errInvalidCcy)
	})
}
