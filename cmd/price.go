package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/fundamentals"
	"github.com/etnz/fundamentals/date"
	"github.com/etnz/fundamentals/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// priceLookback is how many days before the requested date are fetched, to find
// the last trading day across weekends and holidays.
const priceLookback = 10

// priceCmd holds the flags for the 'price' subcommand.
type priceCmd struct {
	date string
	json bool
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "display the close of a symbol on a given date" }
func (*priceCmd) Usage() string {
	return `fnd price [-d <date>] [-json] <symbol>

  Displays the close of <symbol> on the last trading day on or before <date>.
  Currency pairs use Yahoo symbols, for instance EURUSD=X.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "date of the close (YYYY-MM-DD)")
	f.BoolVar(&c.json, "json", false, "print the result as JSON")
}

func (c *priceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: price takes exactly one symbol")
		return subcommands.ExitUsageError
	}
	symbol := strings.ToUpper(f.Arg(0))
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	client := newClient()
	summary, err := client.QuoteSummary(ctx, symbol, []string{fundamentals.ModulePrice})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching %s: %v\n", symbol, err)
		return subcommands.ExitFailure
	}
	prices, err := fundamentals.NewPriceCache(client).PricesFrom(ctx, symbol, on.Add(-priceLookback))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching %s prices: %v\n", symbol, explain(err))
		return subcommands.ExitFailure
	}
	price, ok, err := fundamentals.PriceOn(on, prices)
	if err == nil && !ok {
		err = fundamentals.ErrDateOutOfRange
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s close on %s: %v\n", symbol, on, explain(err))
		return subcommands.ExitFailure
	}

	currency := summary.PriceCurrency()
	if c.json {
		out := struct {
			Symbol   string          `json:"symbol"`
			Date     date.Date       `json:"date"`
			Close    decimal.Decimal `json:"close"`
			Currency string          `json:"currency,omitempty"`
		}{symbol, on, price, currency}
		if err := printJSON(out); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.PriceMarkdown(symbol, on, price, currency))
	return subcommands.ExitSuccess
}
