package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/qianbao/card"
	"github.com/etnz/qianbao/renderer"
	"github.com/google/subcommands"
)

type shareCmd struct {
	output  string
	dataURI bool
}

func (*shareCmd) Name() string     { return "share" }
func (*shareCmd) Synopsis() string { return "draw the summary card of the total" }
func (*shareCmd) Usage() string {
	return `qb share [-o <file.png>] [-data-uri]

  Draws the golden card showing the total of all assets and saves it as a PNG
  image. With -data-uri the image is printed as a data URI instead.
`
}

func (c *shareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "card.png", "File the card is written to")
	f.BoolVar(&c.dataURI, "data-uri", false, "Print the card as a data URI instead of writing a file")
}

// newExporter returns the card exporter described by the settings.
func newExporter() (*card.Exporter, error) {
	fonts, err := settings.Fonts()
	if err != nil {
		return nil, err
	}
	return card.NewExporter(fonts, settings.Card.Scale)
}

func (c *shareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	ctx, cancel := context.WithTimeout(ctx, settings.Card.Timeout)
	defer cancel()
	k := settings.NewCard(store.Total())
	img, err := x.Export(ctx, k)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate the asset card: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.dataURI {
		fmt.Println(img.DataURI())
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, img.PNG, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing card %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderCard(renderer.NewCard(k, img, c.output)))
	return subcommands.ExitSuccess
}
