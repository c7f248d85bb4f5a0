package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/fcbrates/cmd/rates"
	"github.com/sig-0/fcbrates/cmd/serve"
	"github.com/sig-0/fcbrates/cmd/sql"
)

func main() {
	fs := flag.NewFlagSet("fcbrates", flag.ExitOnError)

	cmd := &ffcli.Command{
		Name:       "fcbrates",
		ShortUsage: "fcbrates <subcommand> [flags] [<arg>...]",
		LongHelp:   "Ingests, stores and serves the First Bank of Taiwan exchange rates",
		FlagSet:    fs,
		Exec: func(_ context.Context, _ []string) error {
			return flag.ErrHelp
		},
		Subcommands: []*ffcli.Command{
			serve.NewServeCmd(),
			sql.NewSQLCmd(),
			rates.NewRatesCmd(),
		},
	}

	err := cmd.ParseAndRun(context.Background(), os.Args[1:])

	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
