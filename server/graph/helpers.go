package graph

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/99designs/gqlgen/graphql"

	"github.com/sig-0/fcbrates/server/graph/model"
	"github.com/sig-0/fcbrates/storage/types"
)

const (
	defaultLimit = int32(100)
	maxLimit     = int32(500)
)

// defaultHistoryWindow is the history range used when no start is given
const defaultHistoryWindow = 30 * 24 * time.Hour

var (
	errInvalidLimit  = errors.New("invalid limit")
	errInvalidOffset = errors.New("invalid offset")
	errInvalidType   = errors.New("invalid type")
	errInvalidCcy    = errors.New("invalid currency (must be 3 letters A-Z)")
	errInvalidRange  = errors.New("invalid range (from must not be after to)")
)

// stringArg returns the named string argument, or nil if it was not given
func stringArg(args map[string]any, name string) (*string, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, nil
	}

	v, err := graphql.UnmarshalString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}

	return &v, nil
}

// intArg returns the named Int argument, or nil if it was not given
func intArg(args map[string]any, name string) (*int64, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, nil
	}

	v, err := graphql.UnmarshalInt64(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}

	return &v, nil
}

// timeArg returns the named Time argument, or nil if it was not given
func timeArg(args map[string]any, name string) (*model.Time, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, nil
	}

	v, err := model.UnmarshalTime(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s (must be RFC3339 UTC)", name)
	}

	return &v, nil
}

func parseAsOf(asOf *model.Time) time.Time {
	if asOf == nil {
		return time.Now().UTC()
	}

	return time.Time(*asOf).UTC()
}

func parseRange(from, to *model.Time) (time.Time, time.Time, error) {
	end := parseAsOf(to)
	start := end.Add(-defaultHistoryWindow)

	if from != nil {
		start = time.Time(*from).UTC()
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, errInvalidRange
	}

	return start, end, nil
}

func parseLimitOffset(limit, offset *int64) (int32, int64, error) {
	lim := defaultLimit

	if limit != nil {
		if *limit < 0 {
			return 0, 0, errInvalidLimit
		}

		lim = int32(min(*limit, int64(maxLimit))) //nolint:gosec // Fine to clamp
	}

	if lim == 0 {
		lim = defaultLimit
	}

	var off int64

	if offset != nil {
		if *offset < 0 {
			return 0, 0, errInvalidOffset
		}

		off = *offset
	}

	return lim, off, nil
}

func parseSourceAndType(source, rt *string) (*types.Source, *types.RateType, error) {
	var src *types.Source

	if source != nil {
		if v := strings.TrimSpace(*source); v != "" {
			s := types.Source(v)
			src = &s
		}
	}

	var outRT *types.RateType

	if rt != nil {
		t := types.RateType(strings.ToUpper(*rt))

		switch t {
		case types.RateTypeMID, types.RateTypeBUY, types.RateTypeSELL:
			outRT = &t
		default:
			return nil, nil, errInvalidType
		}
	}

	return src, outRT, nil
}

func parseCurrencySymbol(v string) (types.Currency, error) {
	s := strings.ToUpper(strings.TrimSpace(v))
	if len(s) != 3 {
		return "", errInvalidCcy
	}

	for i := 0; i < 3; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return "", errInvalidCcy
		}
	}

	return types.Currency(s), nil
}

func clampTotalToInt32(total int64) int32 {
	if total <= 0 {
		return 0
	}

	const maxTotal = int64(^uint32(0) >> 1)
	if total > maxTotal {
		return int32(maxTotal)
	}

	return int32(total)
}
