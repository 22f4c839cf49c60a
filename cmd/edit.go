package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/qianbao"
	"github.com/google/subcommands"
)

type editCmd struct {
	id     string
	name   string
	amount string
	icons  iconFlags
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit an existing asset" }
func (*editCmd) Usage() string {
	return `qb edit -id <id> [-name <name>] [-amount <amount>] [-icon <icon> | -icon-file <image> | -clear-icon]

  Edits the asset with this id, see qb list -ids. Values not given on the
  command line are kept. The asset keeps its place in the list.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the asset to edit (required)")
	f.StringVar(&c.name, "name", "", "New name")
	f.StringVar(&c.amount, "amount", "", "New amount")
	c.icons.set(f, true)
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}

	store, closeStore, err := openStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading assets: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	a, ok := store.Get(c.id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %v: %q\n", qianbao.ErrAssetNotFound, c.id)
		return subcommands.ExitFailure
	}

	form := qianbao.EditForm(a)
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			form.Name = c.name
		case "amount":
			form.Amount = c.amount
		}
	})
	if err := c.icons.apply(form); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	draft, err := form.Validate()
	if err != nil {
		if !printFieldErrors(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return subcommands.ExitUsageError
	}

	a, err = store.Update(ctx, c.id, draft)
	if errors.Is(err, qianbao.ErrAssetNotFound) {
		fmt.Fprintf(os.Stderr, "Error: %v: %q\n", err, c.id)
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving asset: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated %s %s %s (id %s), total %s\n", a.Icon, a.Name, a.Money(store.Currency()), a.ID, store.Total())
	return subcommands.ExitSuccess
}
