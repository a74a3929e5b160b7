// Command ldg manages a personal multi-account ledger.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/ledger/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// a missing .env is fine, environment variables are optional.
	_ = godotenv.Load()
	if err := cmd.ApplyEnv(flag.CommandLine); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	// answers shell completion requests, if any, and exits.
	cmd.Completion(flag.CommandLine).Complete("ldg")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	ctx := cmd.WithLogger(context.Background(), cmd.NewLogger(os.Stderr, *cmd.Verbose))
	os.Exit(int(commander.Execute(ctx)))
}
