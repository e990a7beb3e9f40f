// Package cmd implements the fnd command line application.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&inspectCmd{}, "fundamentals")
	c.Register(&priceCmd{}, "fundamentals")
}

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	symbols := predict.Set(DefaultSymbols)
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"inspect": {
				Flags: map[string]complete.Predictor{"json": predict.Nothing},
				Args:  symbols,
			},
			"price": {
				Flags: map[string]complete.Predictor{"d": predict.Something, "json": predict.Nothing},
				Args:  symbols,
			},
		},
		Flags: map[string]complete.Predictor{
			"log-level":  predict.Set{"debug", "info", "warn", "error"},
			"yahoo-url":  predict.Something,
			"user-agent": predict.Something,
			"rate-limit": predict.Something,
			"timeout":    predict.Something,
		},
	}
}

// printMarkdown renders md for the terminal, or prints it raw if it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}

// printJSON prints v as indented JSON on stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
