package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_ValidateConfig(t *testing.T) {
	t.Parallel()

	t.Run("invalid listen address", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.ListenAddress = "rando-address" // doesn't follow the format

		assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidListenAddress)
	})

	t.Run("invalid provider URL", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.FirstBank.URL = "ftp://example.com/rates"

		assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidProviderURL)
	})

	t.Run("invalid provider timeout", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.FirstBank.Timeout = 0

		assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidTimeout)
	})

	t.Run("invalid provider interval", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.FirstBank.Interval = -time.Minute

		assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidInterval)
	})

	t.Run("no provider config", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.FirstBank = nil

		assert.NoError(t, ValidateConfig(cfg))
	})

	t.Run("valid configuration", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, ValidateConfig(DefaultConfig()))
	})
}

func TestConfig_Read(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Read(filepath.Join(t.TempDir(), "missing.toml"))

		assert.Error(t, err)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.toml")

		content := `listen_address = "127.0.0.1:9000"

[first_bank]
url = "https://example.com/rates.html"
timeout = "5s"
interval = "1h"
`

		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := Read(path)
		require.NoError(t, err)

		assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddress)
		assert.Equal(t, DefaultCORSConfig(), cfg.CORSConfig)

		require.NotNil(t, cfg.FirstBank)
		assert.Equal(t, "https://example.com/rates.html", cfg.FirstBank.URL)
		assert.Equal(t, time.Second*5, cfg.FirstBank.Timeout)
		assert.Equal(t, time.Hour, cfg.FirstBank.Interval)

		assert.NoError(t, ValidateConfig(cfg))
	})
}
