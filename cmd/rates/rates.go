package rates

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/fcbrates/cmd/env"
	"github.com/sig-0/fcbrates/provider/firstbank"
	"github.com/sig-0/fcbrates/server/config"
)

var errMissingCurrency = errors.New("missing currency code")

// ratesCfg wraps the rates configuration
type ratesCfg struct {
	out io.Writer

	url     string
	timeout time.Duration
	json    bool
}

// NewRatesCmd creates the rates subcommand
func NewRatesCmd() *ffcli.Command {
	cfg := &ratesCfg{
		out: os.Stdout,
	}

	fs := flag.NewFlagSet("rates", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "rates",
		ShortUsage: "rates [flags] <CODE>",
		LongHelp:   "Fetches the current First Bank rates, relative to the given currency",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *ratesCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.url,
		"url",
		config.DefaultFirstBankURL,
		"the URL of the published First Bank rate table",
	)

	fs.DurationVar(
		&c.timeout,
		"timeout",
		config.DefaultFirstBankTimeout,
		"the rate table fetch timeout",
	)

	fs.BoolVar(
		&c.json,
		"json",
		false,
		"print the rates as JSON",
	)
}

func (c *ratesCfg) exec(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errMissingCurrency
	}

	provider := firstbank.NewProvider(c.url, c.timeout, config.DefaultFirstBankInterval)

	entries, err := provider.GetRates(ctx, args[0])
	if err != nil {
		return fmt.Errorf("unable to get rates: %w", err)
	}

	if c.json {
		encoder := json.NewEncoder(c.out)
		encoder.SetIndent("", "  ")

		return encoder.Encode(entries)
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "CURRENCY\tRATE\tUPDATED AT")

	for _, e := range entries {
		_, _ = fmt.Fprintf(
			w,
			"%s\t%s\t%s\n",
			e.CurrencyCode,
			e.Rate.String(),
			e.UpdatedAt.Format(time.RFC3339),
		)
	}

	return w.Flush()
}
