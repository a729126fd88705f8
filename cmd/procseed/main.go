package main

import (
	"os"

	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Seed       SeedCmd          `cmd:"" help:"Print the seed derived from text, an integer or a hex literal"`
	SampleSeed SampleSeedCmd    `cmd:"sample-seed" help:"Print a fresh seed drawn from system entropy"`
	Streams    StreamsCmd       `cmd:"" help:"List the streams in a catalog"`
	Generate   GenerateCmd      `cmd:"" help:"Generate values from a catalog stream"`
	Check      CheckCmd         `cmd:"" help:"Run statistical checks on a catalog stream"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("procseed"),
		kong.Description("Deterministic seed/key/type keyed random values"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&Env{Stdout: os.Stdout})
	ctx.FatalIfErrorf(err)
}
