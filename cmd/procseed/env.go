package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"

	"github.com/lox/procseed/cmd/procseed/shared"
	"github.com/lox/procseed/internal/catalog"
	"github.com/lox/procseed/internal/randutil"
	"github.com/lox/procseed/prng"
)

// Env carries what commands share: where results go.
type Env struct {
	Stdout io.Writer
}

// LogFlags are embedded by commands that log.
type LogFlags struct {
	Debug    bool `kong:"help='Enable debug logging',env='PROCSEED_DEBUG'"`
	JSONLogs bool `kong:"name='json-logs',help='Emit structured JSON logs'"`
}

func (f LogFlags) logger() zerolog.Logger {
	if f.JSONLogs {
		return shared.SetupStructuredLogger(f.Debug)
	}
	return shared.SetupLogger(f.Debug)
}

// libraryLogger returns the charmbracelet logger handed to internal packages.
func (f LogFlags) libraryLogger() *log.Logger {
	return shared.SetupLibraryLogger(f.Debug)
}

// CatalogFlags select a stream catalog and the seed to read it with.
type CatalogFlags struct {
	Catalog string `kong:"help='Stream catalog file (.hcl or .toml); built-in catalog when empty',type='path',env='PROCSEED_CATALOG'"`
	Seed    string `kong:"help='Seed as text, integer or 0x hex; overrides the catalog seed',env='PROCSEED_SEED'"`
}

func (f CatalogFlags) load() (*catalog.Catalog, error) {
	if f.Catalog == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(f.Catalog)
}

// resolveSeed picks the flag seed, then the catalog seed, then entropy. The
// chosen seed is always logged so a run can be repeated.
func (f CatalogFlags) resolveSeed(c *catalog.Catalog, logger zerolog.Logger) (prng.Seed, error) {
	text := f.Seed
	source := "flag"
	if text == "" {
		text = c.Seed
		source = "catalog"
	}
	if text == "" {
		source = "entropy"
	}

	seed, err := randutil.Resolve(text)
	if err != nil {
		return prng.Seed{}, err
	}
	logger.Info().Str("seed", seed.String()).Str("source", source).Msg("Using seed")
	return seed, nil
}
