package model

import (
	"time"

	"github.com/99designs/gqlgen/graphql"
)

// Time is the Time scalar, always serialized in UTC
type Time time.Time

func MarshalTime(t Time) graphql.Marshaler {
	return graphql.MarshalTime(time.Time(t).UTC())
}

func UnmarshalTime(v any) (Time, error) {
	t, err := graphql.UnmarshalTime(v)

	return Time(t.UTC()), err
}
