package check

import (
	"context"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"github.com/lox/procseed/prng"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Stream:  prng.NewStandardStream[prng.Index, float64](uint128.New(0x5851f42d4c957f2d, 0x14057b7ef767814f)),
		Seed:    prng.SeedFrom64(0x1234, 0x5678),
		Keys:    64,
		Samples: 256,
		Bins:    32,
		Workers: 3,
		Clock:   quartz.NewMock(t),
	}
}

func TestRunHealthyStream(t *testing.T) {
	report, err := Run(context.Background(), testConfig(t))
	require.NoError(t, err)

	assert.Equal(t, 64, report.Keys)
	assert.Equal(t, 256, report.Samples)
	assert.Zero(t, report.Mismatches)
	assert.InDelta(t, 48.7265625, report.ChiSquare, 1e-6)
	assert.Greater(t, report.PValue, 0.01)
	assert.Less(t, report.MaxKeyCorrelation, report.CorrelationLimit())
	assert.Less(t, report.MaxTypeCorrelation, report.CorrelationLimit())
	assert.InDelta(t, 0.5, report.Mean, 0.1)
	assert.Zero(t, report.Elapsed)
	assert.True(t, report.Passed(0.001))
}

func TestRunIsDeterministic(t *testing.T) {
	a, err := Run(context.Background(), testConfig(t))
	require.NoError(t, err)

	cfg := testConfig(t)
	cfg.Workers = 1
	b, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRunDetectsSharedConstant(t *testing.T) {
	cfg := testConfig(t)
	cfg.SiblingXor = cfg.Stream.Xor()

	report, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, report.MaxTypeCorrelation, 1e-9)
	assert.False(t, report.Passed(0.001))
}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "no distribution", modify: func(c *Config) { c.Stream = prng.Stream[prng.Index, float64]{} }},
		{name: "one key", modify: func(c *Config) { c.Keys = 1 }},
		{name: "one sample", modify: func(c *Config) { c.Samples = 1 }},
		{name: "negative workers", modify: func(c *Config) { c.Workers = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.modify(&cfg)
			_, err := Run(context.Background(), cfg)
			assert.Error(t, err)
		})
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, testConfig(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunDefaults(t *testing.T) {
	report, err := Run(context.Background(), Config{
		Stream: prng.NewStream[prng.Index](uint128.New(3, 5), prng.Normal(10, 2)),
		Seed:   prng.SeedFromString("defaults"),
		Clock:  quartz.NewMock(t),
	})
	require.NoError(t, err)
	assert.Equal(t, defaultKeys, report.Keys)
	assert.Equal(t, defaultSamples, report.Samples)
	assert.Zero(t, report.Mismatches)
	assert.InDelta(t, 10, report.Mean, 0.6)
}
