package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/fundamentals/cmd"
	"github.com/google/subcommands"
)

func main() {
	// exits when invoked by the shell for completion.
	cmd.Completion().Complete("fnd")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	if err := cmd.Setup(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	os.Exit(int(commander.Execute(context.Background())))
}
