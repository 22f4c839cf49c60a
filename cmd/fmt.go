package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "rewrites the stored assets in the current format"
}
func (*fmtCmd) Usage() string {
	return `qb fmt

  Reads the assets, validates them, and writes them back in the current
  format. Assets saved in an older format are migrated.

Usage Examples:
$ qb fmt
$ qb -store redis fmt
`
}

func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (*fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, closeStore, err := openStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load assets: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	if err := store.Rewrite(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save assets: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "✅ Successfully formatted %d assets.\n", len(store.Assets()))
	return subcommands.ExitSuccess
}
