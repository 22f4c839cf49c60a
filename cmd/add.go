package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/etnz/qianbao"
	"github.com/google/subcommands"
)

// iconFlags are the icon selection flags shared by add and edit.
type iconFlags struct {
	icon     string
	iconFile string
	clear    bool
}

func (i *iconFlags) set(f *flag.FlagSet, withClear bool) {
	f.StringVar(&i.icon, "icon", "", "Preset icon, see qb icons")
	f.StringVar(&i.iconFile, "icon-file", "", "Image file to use as a custom icon")
	if withClear {
		f.BoolVar(&i.clear, "clear-icon", false, "Remove the custom icon and use the default one")
	}
}

// apply selects the requested icon in form. Without any flag the selection is kept.
func (i *iconFlags) apply(form *qianbao.Form) error {
	n := 0
	for _, set := range []bool{i.icon != "", i.iconFile != "", i.clear} {
		if set {
			n++
		}
	}
	if n > 1 {
		return errors.New("-icon, -icon-file and -clear-icon are exclusive")
	}
	switch {
	case i.icon != "":
		return form.SelectPreset(i.icon)
	case i.iconFile != "":
		f, err := os.Open(i.iconFile)
		if err != nil {
			return err
		}
		defer f.Close()
		return form.UploadCustom(f)
	case i.clear:
		form.ClearCustom()
	}
	return nil
}

// printFieldErrors reports validation errors the way the dialog shows them.
func printFieldErrors(err error) bool {
	var ferrs qianbao.FieldErrors
	if !errors.As(err, &ferrs) {
		return false
	}
	fields := make([]string, 0, len(ferrs))
	for f := range ferrs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(os.Stderr, "Error: -%s: %s\n", f, ferrs[f])
	}
	return true
}

type addCmd struct {
	name   string
	amount string
	icons  iconFlags
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a new asset" }
func (*addCmd) Usage() string {
	return `qb add -name <name> -amount <amount> [-icon <icon> | -icon-file <image>]

  Adds an asset at the end of the list. Name and amount are required, the
  amount must be a number. The icon defaults to the money bag.

Usage Examples:
$ qb add -name Cash -amount 100 -icon 💵
$ qb add -name Pet -amount 1 -icon-file cat.png
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the asset (required)")
	f.StringVar(&c.amount, "amount", "", "Amount of the asset (required)")
	c.icons.set(f, false)
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	form := qianbao.NewForm()
	form.Name, form.Amount = c.name, c.amount
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

	store, closeStore, err := openStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading assets: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	a, err := store.Add(ctx, draft)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving asset: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added %s %s %s (id %s), total %s\n", a.Icon, a.Name, a.Money(store.Currency()), a.ID, store.Total())
	return subcommands.ExitSuccess
}
