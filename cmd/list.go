package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/qianbao/renderer"
	"github.com/google/subcommands"
)

type listCmd struct {
	ids    bool
	asJSON bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list assets with their total" }
func (*listCmd) Usage() string {
	return `qb list [-ids | -json]

  Lists every asset in the order they were added: icon, name, amount and id.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.ids, "ids", false, "Print only the ids, one per line")
	f.BoolVar(&c.asJSON, "json", false, "Print the list as JSON")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, closeStore, err := openStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading assets: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	book := renderer.NewBook(store.Snapshot())
	switch {
	case c.ids:
		for _, row := range book.Assets {
			fmt.Println(row.ID)
		}
	case c.asJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(book); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding assets: %v\n", err)
			return subcommands.ExitFailure
		}
	default:
		printMarkdown(renderer.RenderBook(book))
	}
	return subcommands.ExitSuccess
}

type totalCmd struct {
	banner bool
}

func (*totalCmd) Name() string     { return "total" }
func (*totalCmd) Synopsis() string { return "print the total of all assets" }
func (*totalCmd) Usage() string {
	return `qb total [-banner]

  Prints the sum of all asset amounts, e.g. ¥50,200.
`
}

func (c *totalCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.banner, "banner", false, "Print the total as a markdown banner")
}

func (c *totalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, closeStore, err := openStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading assets: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	if c.banner {
		printMarkdown(renderer.RenderTotal(renderer.NewBook(store.Snapshot())))
		return subcommands.ExitSuccess
	}
	fmt.Println(store.Total())
	return subcommands.ExitSuccess
}

type iconsCmd struct{}

func (*iconsCmd) Name() string     { return "icons" }
func (*iconsCmd) Synopsis() string { return "list the preset icons" }
func (*iconsCmd) Usage() string {
	return `qb icons

  Lists the preset icons accepted by the -icon flag of add and edit.
`
}

func (*iconsCmd) SetFlags(*flag.FlagSet) {}

func (*iconsCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	printMarkdown(renderer.RenderIcons(renderer.NewIcons()))
	return subcommands.ExitSuccess
}
