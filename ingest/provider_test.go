package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegisteredProvider_RetryDelay(t *testing.T) {
	t.Parallel()

	rp := &registeredProvider{
		Provider: &mockProvider{
			interval: time.Minute,
		},
	}

	testTable := []struct {
		name     string
		failures int
		expected time.Duration
	}{
		{"first failure", 1, time.Second * 10},
		{"second failure", 2, time.Second * 20},
		{"third failure", 3, time.Second * 40},
		{"capped at interval", 4, time.Minute},
		{"stays capped", 30, time.Minute},
	}

	for _, testCase := range testTable {
		rp.failures = testCase.failures

		assert.Equal(t, testCase.expected, rp.retryDelay(time.Second*10), testCase.name)
	}
}

func TestRegisteredProvider_RetryDelayAboveInterval(t *testing.T) {
	t.Parallel()

	rp := &registeredProvider{
		Provider: &mockProvider{
			interval: time.Second,
		},
		failures: 1,
	}

	assert.Equal(t, time.Second, rp.retryDelay(time.Second*10))
}
