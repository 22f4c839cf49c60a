// Package cmd implements the qb command line application.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/qianbao"
	"github.com/etnz/qianbao/config"
	"github.com/etnz/qianbao/storage"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

// settings is the configuration every command reads, global flags included.
var settings *config.Config

// Init binds the global flags of f to c, the flags overriding the loaded values.
func Init(c *config.Config, f *flag.FlagSet) {
	settings = c
	f.StringVar(&c.Store, "store", c.Store, "Kind of slot assets are kept in: file, redis or memory")
	f.StringVar(&c.Dir, "dir", c.Dir, "Folder of the file slot")
	f.StringVar(&c.Key, "key", c.Key, "Key of the slot holding the assets")
	f.StringVar(&c.Currency, "currency", c.Currency, "Currency of the amounts (ISO 4217 code)")
	f.StringVar(&c.Redis.Addr, "redis-addr", c.Redis.Addr, "Address of the redis server of the redis slot")
	f.StringVar(&c.Log.Level, "log-level", c.Log.Level, "Log level: debug, info, warning or error")
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	for _, g := range groups {
		for _, cmd := range g.commands {
			c.Register(cmd, g.name)
		}
	}
}

type group struct {
	name     string
	commands []subcommands.Command
}

var groups = []group{
	{"assets", []subcommands.Command{&listCmd{}, &totalCmd{}, &addCmd{}, &editCmd{}, &iconsCmd{}}},
	{"sharing", []subcommands.Command{&shareCmd{}, &serveCmd{}}},
	{"maintenance", []subcommands.Command{&fmtCmd{}}},
	{"help", []subcommands.Command{&topicCmd{}, &AssistCmd{}}},
}

// Commands returns every qb subcommand, sorted by name.
func Commands() []subcommands.Command {
	var all []subcommands.Command
	for _, g := range groups {
		all = append(all, g.commands...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })
	return all
}

// openStore opens the configured slot and loads the assets from it.
// The returned function closes the slot.
func openStore(ctx context.Context) (*qianbao.Store, func(), error) {
	if settings == nil {
		return nil, nil, errors.New("configuration is not initialized")
	}
	if err := settings.Validate(); err != nil {
		return nil, nil, err
	}
	slot, err := storage.Open(settings.Storage())
	if err != nil {
		return nil, nil, err
	}
	closeSlot := func() {
		if err := slot.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot close the slot: %v\n", err)
		}
	}
	store := qianbao.NewStore(slot, settings.Key, settings.Currency)
	if err := store.Load(ctx); err != nil {
		closeSlot()
		return nil, nil, err
	}
	return store, closeSlot, nil
}

// printMarkdown prints md to stdout, styled for the terminal when possible.
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
