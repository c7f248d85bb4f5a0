package config

import (
	"errors"
	"net/url"
	"os"
	"regexp"
	"time"

	"github.com/pelletier/go-toml"
)

const (
	DefaultListenAddress = "0.0.0.0:8545"

	DefaultFirstBankURL      = "https://ibank.firstbank.com.tw/NetBank/7/0201.html?sh=none"
	DefaultFirstBankTimeout  = time.Second * 30
	DefaultFirstBankInterval = time.Minute * 30
)

var (
	ErrInvalidListenAddress = errors.New("invalid listen address")
	ErrInvalidProviderURL   = errors.New("invalid provider URL")
	ErrInvalidTimeout       = errors.New("invalid provider timeout")
	ErrInvalidInterval      = errors.New("invalid provider interval")
)

var listenAddressRegex = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}:\d+$`)

// Config defines the base-level server configuration
type Config struct {
	// The associated CORS config, if any
	CORSConfig *CORS `toml:"cors_config"`

	// The First Bank rate table provider config
	FirstBank *FirstBank `toml:"first_bank"`

	// The address at which the server will be served.
	// Format should be: <IP>:<PORT>
	ListenAddress string `toml:"listen_address"`
}

// FirstBank is the First Bank rate table provider configuration
type FirstBank struct {
	// The URL of the published rate table
	URL string `toml:"url"`

	// The page fetch timeout
	Timeout time.Duration `toml:"timeout"`

	// How often the rates are ingested
	Interval time.Duration `toml:"interval"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		ListenAddress: DefaultListenAddress,
		CORSConfig:    DefaultCORSConfig(),
		FirstBank:     DefaultFirstBankConfig(),
	}
}

// DefaultFirstBankConfig returns the default First Bank provider configuration
func DefaultFirstBankConfig() *FirstBank {
	return &FirstBank{
		URL:      DefaultFirstBankURL,
		Timeout:  DefaultFirstBankTimeout,
		Interval: DefaultFirstBankInterval,
	}
}

// ValidateConfig validates the server configuration
func ValidateConfig(config *Config) error {
	// Validate the listen address
	if !listenAddressRegex.MatchString(config.ListenAddress) {
		return ErrInvalidListenAddress
	}

	if config.FirstBank == nil {
		return nil
	}

	// Validate the provider config
	u, err := url.Parse(config.FirstBank.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidProviderURL
	}

	if config.FirstBank.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if config.FirstBank.Interval <= 0 {
		return ErrInvalidInterval
	}

	return nil
}

// Read reads the configuration from the given path.
// Values missing from the file keep their defaults
func Read(path string) (*Config, error) {
	// Read the config file
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse it
	cfg := DefaultConfig()

	if err := toml.Unmarshal(content, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
