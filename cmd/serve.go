package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/qianbao/web"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the mobile web application" }
func (*serveCmd) Usage() string {
	return `qb serve [-addr <host:port>]

  Serves the web application: the total, the list of assets, the add and edit
  dialog and the share overlay. Stops gracefully on SIGINT or SIGTERM.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Address to listen on, the listen setting by default")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading assets: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	x, err := newExporter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading card fonts: %v\n", err)
		return subcommands.ExitFailure
	}
	s, err := web.New(web.Options{
		Store:    store,
		Exporter: x,
		NewCard:  settings.NewCard,
		Timeout:  settings.Card.Timeout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	addr := c.addr
	if addr == "" {
		addr = settings.Listen
	}
	fmt.Fprintf(os.Stderr, "Serving on http://%s\n", addr)
	if err := s.ListenAndServe(ctx, addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error serving: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
