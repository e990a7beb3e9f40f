package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/etnz/fundamentals"
	"github.com/etnz/fundamentals/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// DefaultSymbols are inspected at random when no symbol is given.
var DefaultSymbols = []string{"SPY", "QQQ", "EUNL", "NVDA", "AAPL", "MSFT", "AMZN", "GOOGL", "AVGO", "META", "NFLX", "ASML", "COST"}

// randomSymbol picks one of DefaultSymbols.
func randomSymbol() string { return DefaultSymbols[rand.IntN(len(DefaultSymbols))] }

// inspectCmd holds the flags for the 'inspect' subcommand.
type inspectCmd struct {
	json bool
}

func (*inspectCmd) Name() string     { return "inspect" }
func (*inspectCmd) Synopsis() string { return "display trailing statistics and growth of a symbol" }
func (*inspectCmd) Usage() string {
	return `fnd inspect [-json] [<symbol>]

  Fetches the quote summary, price history and financial statements of <symbol>
  and displays its trailing twelve months statistics and growth rates.

  Without <symbol>, one of the following is picked at random:
  ` + strings.Join(DefaultSymbols, ", ") + `
`
}

func (c *inspectCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "print the result as JSON")
}

func (c *inspectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: inspect takes at most one symbol")
		return subcommands.ExitUsageError
	}
	symbol := strings.ToUpper(f.Arg(0))
	if symbol == "" {
		symbol = randomSymbol()
		log.Info().Str("symbol", symbol).Msg("no symbol given, picked one at random")
	}

	result, err := fundamentals.NewProcessor(newClient()).Process(ctx, symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error inspecting %s: %v\n", symbol, explain(err))
		return subcommands.ExitFailure
	}

	if c.json {
		if err := printJSON(result); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.ResultMarkdown(result))
	return subcommands.ExitSuccess
}

// explain adds a hint to the errors a user can act upon.
func explain(err error) error {
	switch {
	case errors.Is(err, fundamentals.ErrUpstream):
		return fmt.Errorf("%w (is the symbol valid? retry later if Yahoo Finance is throttling)", err)
	case errors.Is(err, fundamentals.ErrDateOutOfRange):
		return fmt.Errorf("%w (price or exchange rate history too short)", err)
	case errors.Is(err, fundamentals.ErrMissingField):
		return fmt.Errorf("%w (incomplete financial statements)", err)
	}
	return err
}
