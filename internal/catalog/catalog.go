// Package catalog loads named stream declarations from HCL or TOML files.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"lukechampine.com/uint128"

	"github.com/lox/procseed/prng"
)

// ErrNotFound is returned when the catalog file does not exist.
var ErrNotFound = errors.New("catalog not found")

// Distribution names accepted in catalog files.
const (
	DistStandard    = "standard"
	DistUniform     = "uniform"
	DistNormal      = "normal"
	DistExponential = "exponential"
	DistPoisson     = "poisson"
	DistBernoulli   = "bernoulli"
	DistGamma       = "gamma"
)

var distributions = []string{
	DistStandard, DistUniform, DistNormal, DistExponential, DistPoisson, DistBernoulli, DistGamma,
}

// Catalog is the decoded contents of a catalog file.
type Catalog struct {
	Seed    string         `hcl:"seed,optional" toml:"seed"`
	Streams []StreamConfig `hcl:"stream,block" toml:"stream"`
}

// StreamConfig declares one stream. Only the parameters of the chosen
// distribution are read. Parameters are pointers so that an explicit zero is
// told apart from an omitted value.
type StreamConfig struct {
	Name         string   `hcl:"name,label" toml:"name"`
	Description  string   `hcl:"description,optional" toml:"description"`
	Xor          string   `hcl:"xor" toml:"xor"`
	Distribution string   `hcl:"distribution,optional" toml:"distribution"`
	Mu           *float64 `hcl:"mu,optional" toml:"mu"`
	Sigma        *float64 `hcl:"sigma,optional" toml:"sigma"`
	Min          *float64 `hcl:"min,optional" toml:"min"`
	Max          *float64 `hcl:"max,optional" toml:"max"`
	Rate         *float64 `hcl:"rate,optional" toml:"rate"`
	Lambda       *float64 `hcl:"lambda,optional" toml:"lambda"`
	P            *float64 `hcl:"p,optional" toml:"p"`
	Alpha        *float64 `hcl:"alpha,optional" toml:"alpha"`
	Beta         *float64 `hcl:"beta,optional" toml:"beta"`
}

// Parameter defaults for omitted attributes.
const (
	defaultMu     = 0
	defaultSigma  = 1
	defaultMin    = 0
	defaultMax    = 1
	defaultRate   = 1
	defaultLambda = 1
	defaultP      = 0.5
	defaultAlpha  = 1
	defaultBeta   = 1
)

func ptr(v float64) *float64 { return &v }

func param(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Default returns the catalog used when no file is given.
func Default() *Catalog {
	c := &Catalog{
		Streams: []StreamConfig{
			{
				Name:        "value",
				Description: "Uniform value in [0, 1)",
				Xor:         "0x6a09e667f3bcc908bb67ae8584caa73b",
			},
			{
				Name:         "height",
				Description:  "Terrain height",
				Xor:          "0xbf58476d1ce4e5b994d049bb133111eb",
				Distribution: DistNormal,
				Sigma:        ptr(1),
			},
			{
				Name:         "population",
				Description:  "Settlement population",
				Xor:          "0x2545f4914f6cdd1d5851f42d4c957f2d",
				Distribution: DistPoisson,
				Lambda:       ptr(120),
			},
		},
	}
	c.applyDefaults()
	return c
}

// Load reads a catalog from path. Files ending in .toml are decoded as TOML,
// everything else as HCL. The result has defaults applied and is validated.
func Load(path string) (*Catalog, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	var c Catalog
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, &c); err != nil {
			return nil, fmt.Errorf("failed to decode TOML: %w", err)
		}
	} else {
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
		}
		diags = gohcl.DecodeBody(file.Body, nil, &c)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
		}
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) applyDefaults() {
	for i := range c.Streams {
		s := &c.Streams[i]
		if s.Distribution == "" {
			s.Distribution = DistStandard
		}
		s.Distribution = strings.ToLower(s.Distribution)
		fill(&s.Mu, defaultMu)
		fill(&s.Sigma, defaultSigma)
		fill(&s.Min, defaultMin)
		fill(&s.Max, defaultMax)
		fill(&s.Rate, defaultRate)
		fill(&s.Lambda, defaultLambda)
		fill(&s.P, defaultP)
		fill(&s.Alpha, defaultAlpha)
		fill(&s.Beta, defaultBeta)
	}
}

func fill(p **float64, def float64) {
	if *p == nil {
		*p = ptr(def)
	}
}

// Validate checks the catalog for unknown distributions, malformed or zero
// constants, duplicate names and out-of-range parameters. Duplicate constants
// are caught by Build.
func (c *Catalog) Validate() error {
	if len(c.Streams) == 0 {
		return fmt.Errorf("at least one stream must be declared")
	}

	names := make(map[string]bool)
	for _, s := range c.Streams {
		if s.Name == "" {
			return fmt.Errorf("stream with empty name")
		}
		if names[s.Name] {
			return fmt.Errorf("stream %s: declared twice", s.Name)
		}
		names[s.Name] = true

		xor, err := s.XorValue()
		if err != nil {
			return fmt.Errorf("stream %s: %w", s.Name, err)
		}
		if xor.IsZero() {
			return fmt.Errorf("stream %s: xor must be non-zero", s.Name)
		}

		if !slices.Contains(distributions, s.Distribution) {
			return fmt.Errorf("stream %s: unknown distribution %s", s.Name, s.Distribution)
		}
		switch s.Distribution {
		case DistUniform:
			if s.MinValue() >= s.MaxValue() {
				return fmt.Errorf("stream %s: min must be less than max", s.Name)
			}
		case DistNormal:
			if s.SigmaValue() <= 0 {
				return fmt.Errorf("stream %s: sigma must be positive", s.Name)
			}
		case DistExponential:
			if s.RateValue() <= 0 {
				return fmt.Errorf("stream %s: rate must be positive", s.Name)
			}
		case DistPoisson:
			if s.LambdaValue() <= 0 {
				return fmt.Errorf("stream %s: lambda must be positive", s.Name)
			}
		case DistBernoulli:
			if p := s.PValue(); p < 0 || p > 1 {
				return fmt.Errorf("stream %s: p must be between 0 and 1", s.Name)
			}
		case DistGamma:
			if s.AlphaValue() <= 0 || s.BetaValue() <= 0 {
				return fmt.Errorf("stream %s: alpha and beta must be positive", s.Name)
			}
		}
	}
	return nil
}

// XorValue parses the stream constant.
func (s StreamConfig) XorValue() (uint128.Uint128, error) {
	seed, err := prng.ParseSeed(s.Xor)
	if err != nil {
		return uint128.Zero, fmt.Errorf("xor: %w", err)
	}
	return seed.Uint128(), nil
}

// Parameter accessors return the configured value or its default.
func (s StreamConfig) MuValue() float64     { return param(s.Mu, defaultMu) }
func (s StreamConfig) SigmaValue() float64  { return param(s.Sigma, defaultSigma) }
func (s StreamConfig) MinValue() float64    { return param(s.Min, defaultMin) }
func (s StreamConfig) MaxValue() float64    { return param(s.Max, defaultMax) }
func (s StreamConfig) RateValue() float64   { return param(s.Rate, defaultRate) }
func (s StreamConfig) LambdaValue() float64 { return param(s.Lambda, defaultLambda) }
func (s StreamConfig) PValue() float64      { return param(s.P, defaultP) }
func (s StreamConfig) AlphaValue() float64  { return param(s.Alpha, defaultAlpha) }
func (s StreamConfig) BetaValue() float64   { return param(s.Beta, defaultBeta) }

// DistributionValue builds the configured distribution.
func (s StreamConfig) DistributionValue() prng.Distribution[float64] {
	switch s.Distribution {
	case DistUniform:
		return prng.Uniform(s.MinValue(), s.MaxValue())
	case DistNormal:
		return prng.Normal(s.MuValue(), s.SigmaValue())
	case DistExponential:
		return prng.Exponential(s.RateValue())
	case DistPoisson:
		return prng.Poisson(s.LambdaValue())
	case DistBernoulli:
		return prng.Bernoulli(s.PValue())
	case DistGamma:
		return prng.Gamma(s.AlphaValue(), s.BetaValue())
	default:
		return prng.Standard[float64]()
	}
}

// Stream is a catalog stream keyed by integer index.
type Stream = prng.Stream[prng.Index, float64]

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	logger *log.Logger
}

// WithLogger sets the logger passed to the stream registry.
func WithLogger(logger *log.Logger) Option {
	return func(o *buildOptions) {
		o.logger = logger
	}
}

// Build registers every stream and returns them by name. Two streams sharing
// a constant fail with prng.ErrDuplicateXor.
func (c *Catalog) Build(opts ...Option) (map[string]Stream, *prng.Registry, error) {
	o := buildOptions{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}

	reg := prng.NewRegistry(prng.WithLogger(o.logger))
	streams := make(map[string]Stream, len(c.Streams))
	for _, s := range c.Streams {
		xor, err := s.XorValue()
		if err != nil {
			return nil, nil, fmt.Errorf("stream %s: %w", s.Name, err)
		}
		stream, err := prng.Register(reg, s.Name, prng.NewStream[prng.Index](xor, s.DistributionValue()))
		if err != nil {
			return nil, nil, err
		}
		streams[s.Name] = stream
	}
	return streams, reg, nil
}

// GetStreamByName returns a stream configuration by name.
func (c *Catalog) GetStreamByName(name string) *StreamConfig {
	for i := range c.Streams {
		if c.Streams[i].Name == name {
			return &c.Streams[i]
		}
	}
	return nil
}
