package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/lox/procseed/internal/catalog"
	"github.com/lox/procseed/prng"
)

// StreamsCmd lists the streams of a catalog.
type StreamsCmd struct {
	LogFlags     `embed:""`
	CatalogFlags `embed:""`
}

func (c *StreamsCmd) Run(env *Env) error {
	cat, err := c.load()
	if err != nil {
		return err
	}
	// Build catches constants shared between streams.
	_, reg, err := cat.Build(catalog.WithLogger(c.libraryLogger()))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tXOR\tDISTRIBUTION\tDESCRIPTION")
	for _, s := range cat.Streams {
		e, ok := reg.Lookup(s.Name)
		if !ok {
			return fmt.Errorf("stream %s: not registered", s.Name)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Name, prng.NewSeed(e.Xor), s.Distribution, s.Description)
	}
	return tw.Flush()
}
