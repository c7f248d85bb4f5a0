package serve

import (
	"github.com/sig-0/fcbrates/ingest"
	"github.com/sig-0/fcbrates/provider/firstbank"
	"github.com/sig-0/fcbrates/server"
	"github.com/sig-0/fcbrates/server/config"
)

var (
	_ ingest.Provider  = (*firstbank.Provider)(nil)
	_ server.LiveRates = (*firstbank.Provider)(nil)
)

// newFirstBankProvider creates the First Bank rate table provider
// from the server configuration
func newFirstBankProvider(cfg *config.Config) *firstbank.Provider {
	fb := cfg.FirstBank
	if fb == nil {
		fb = config.DefaultFirstBankConfig()
	}

	return firstbank.NewProvider(fb.URL, fb.Timeout, fb.Interval)
}
