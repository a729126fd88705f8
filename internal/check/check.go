// Package check runs statistical regression checks over a derived stream:
// uniformity of the raw generator, independence between neighbouring keys
// and between sibling streams, and determinism of re-derivation.
package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"lukechampine.com/uint128"

	"github.com/lox/procseed/prng"
)

const (
	defaultKeys    = 256
	defaultSamples = 256
	defaultBins    = 64
	defaultWorkers = 4

	// Xored into the stream constant when no sibling constant is configured.
	siblingMaskHi = 0x9e3779b97f4a7c15
	siblingMaskLo = 0xf39cc0605cedc834
)

// Config describes one check run.
type Config struct {
	Stream prng.Stream[prng.Index, float64]
	Seed   prng.Seed

	// SiblingXor is the constant of the stream compared against for type
	// separation. Zero selects a constant derived from Stream's.
	SiblingXor uint128.Uint128

	// FirstKey is the first key checked; Keys consecutive keys follow.
	FirstKey uint64
	Keys     int
	Samples  int
	Bins     int
	Workers  int

	Clock  quartz.Clock
	Logger *log.Logger
}

func (c *Config) applyDefaults() {
	if c.Keys == 0 {
		c.Keys = defaultKeys
	}
	if c.Samples == 0 {
		c.Samples = defaultSamples
	}
	if c.Bins == 0 {
		c.Bins = defaultBins
	}
	if c.Workers == 0 {
		c.Workers = defaultWorkers
	}
	if c.SiblingXor.IsZero() {
		c.SiblingXor = c.Stream.Xor().Xor(uint128.New(siblingMaskLo, siblingMaskHi))
	}
	if c.Clock == nil {
		c.Clock = quartz.NewReal()
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
}

func (c *Config) validate() error {
	if c.Stream.Distribution() == nil {
		return errors.New("stream has no distribution")
	}
	if c.Keys < 2 {
		return fmt.Errorf("need at least 2 keys, got %d", c.Keys)
	}
	if c.Samples < 2 {
		return fmt.Errorf("need at least 2 samples per key, got %d", c.Samples)
	}
	if c.Bins < 2 {
		return fmt.Errorf("need at least 2 bins, got %d", c.Bins)
	}
	if c.Workers < 1 {
		return fmt.Errorf("need at least 1 worker, got %d", c.Workers)
	}
	return nil
}

// Report holds the outcome of a run.
type Report struct {
	Seed    prng.Seed
	Keys    int
	Samples int

	// Mean and StdDev summarise the value generated for each key.
	Mean   float64
	StdDev float64

	// ChiSquare and PValue measure uniformity of the raw generator output.
	ChiSquare float64
	PValue    float64

	// MaxKeyCorrelation is the largest absolute correlation between the raw
	// sequences of neighbouring keys.
	MaxKeyCorrelation  float64
	// MaxTypeCorrelation is the largest absolute correlation between a key's
	// sequence and the sibling stream's sequence for the same key.
	MaxTypeCorrelation float64

	// Mismatches counts keys whose value changed on re-derivation or
	// disagreed with the raw generator.
	Mismatches int

	Elapsed time.Duration
}

// CorrelationLimit is the largest correlation accepted for independent
// sequences of the report's length.
func (r *Report) CorrelationLimit() float64 {
	return 5 / math.Sqrt(float64(r.Samples))
}

// Passed reports whether every check passed, with alpha as the significance
// level of the uniformity test.
func (r *Report) Passed(alpha float64) bool {
	limit := r.CorrelationLimit()
	return r.Mismatches == 0 &&
		r.PValue >= alpha &&
		r.MaxKeyCorrelation < limit &&
		r.MaxTypeCorrelation < limit
}

type keyResult struct {
	value    float64
	raw      []float64
	sibling  []float64
	bins     []float64
	mismatch bool
}

// Run executes the checks described by cfg.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	start := cfg.Clock.Now()
	sibling := prng.NewStream[prng.Index](cfg.SiblingXor, cfg.Stream.Distribution())
	results := make([]keyResult, cfg.Keys)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range results {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = checkKey(cfg, sibling, prng.Index(cfg.FirstKey+uint64(i)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("check cancelled: %w", err)
	}

	report := summarise(cfg, results)
	report.Elapsed = cfg.Clock.Since(start)

	cfg.Logger.Debug("check complete",
		"seed", cfg.Seed.String(),
		"keys", report.Keys,
		"samples", report.Samples,
		"p_value", report.PValue,
		"elapsed", report.Elapsed,
	)
	return report, nil
}

func checkKey(cfg Config, sibling prng.Stream[prng.Index, float64], key prng.Index) keyResult {
	res := keyResult{
		value:   cfg.Stream.Generate(cfg.Seed, key),
		raw:     make([]float64, cfg.Samples),
		sibling: make([]float64, cfg.Samples),
		bins:    make([]float64, cfg.Bins),
	}

	again := cfg.Stream.Generate(cfg.Seed, key)
	fromRand := cfg.Stream.Distribution().Sample(cfg.Stream.Rand(cfg.Seed, key))
	res.mismatch = !sameFloat(res.value, again) || !sameFloat(res.value, fromRand)

	src := cfg.Stream.Source(cfg.Seed, key)
	sib := sibling.Source(cfg.Seed, key)
	for i := range res.raw {
		u := unit(src.Uint64())
		res.raw[i] = u
		res.sibling[i] = unit(sib.Uint64())
		res.bins[int(u*float64(cfg.Bins))]++
	}
	return res
}

func summarise(cfg Config, results []keyResult) *Report {
	report := &Report{
		Seed:    cfg.Seed,
		Keys:    cfg.Keys,
		Samples: cfg.Samples,
	}

	values := make([]float64, len(results))
	observed := make([]float64, cfg.Bins)
	for i, res := range results {
		values[i] = res.value
		for b, n := range res.bins {
			observed[b] += n
		}
		if res.mismatch {
			report.Mismatches++
		}
		if i > 0 {
			corr := math.Abs(stat.Correlation(results[i-1].raw, res.raw, nil))
			report.MaxKeyCorrelation = math.Max(report.MaxKeyCorrelation, corr)
		}
		corr := math.Abs(stat.Correlation(res.raw, res.sibling, nil))
		report.MaxTypeCorrelation = math.Max(report.MaxTypeCorrelation, corr)
	}

	report.Mean, report.StdDev = stat.MeanStdDev(values, nil)

	expected := make([]float64, cfg.Bins)
	perBin := float64(cfg.Keys*cfg.Samples) / float64(cfg.Bins)
	for i := range expected {
		expected[i] = perBin
	}
	report.ChiSquare = stat.ChiSquare(observed, expected)
	chi := distuv.ChiSquared{K: float64(cfg.Bins - 1)}
	report.PValue = chi.Survival(report.ChiSquare)

	return report
}

// unit maps the top 53 bits of x to [0, 1).
func unit(x uint64) float64 {
	return float64(x>>11) * 0x1p-53
}

func sameFloat(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}
