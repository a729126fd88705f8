package main

import (
	"fmt"

	"github.com/lox/procseed/internal/randutil"
)

// SeedCmd prints the seed for a piece of text.
type SeedCmd struct {
	Text string `arg:"" help:"Text to hash, a decimal integer, or a 0x hex literal"`
}

func (c *SeedCmd) Run(env *Env) error {
	seed, err := randutil.Resolve(c.Text)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(env.Stdout, seed)
	return err
}

// SampleSeedCmd prints a fresh seed.
type SampleSeedCmd struct{}

func (c *SampleSeedCmd) Run(env *Env) error {
	seed, err := randutil.Entropy()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(env.Stdout, seed)
	return err
}
