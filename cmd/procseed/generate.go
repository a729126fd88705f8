package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/lox/procseed/internal/catalog"
	"github.com/lox/procseed/internal/fileutil"
	"github.com/lox/procseed/prng"
)

// GenerateCmd prints values drawn from one stream for a range of keys.
type GenerateCmd struct {
	LogFlags     `embed:""`
	CatalogFlags `embed:""`

	Stream   string `kong:"required,help='Stream name'"`
	FirstKey uint64 `kong:"name='first-key',default='0',help='First key'"`
	Keys     int    `kong:"default='10',help='Number of consecutive keys'"`
	Count    int    `kong:"default='1',help='Values per key; the first equals the generated value'"`
	JSON     bool   `kong:"name='json',help='Emit one JSON object per key'"`
	Out      string `kong:"type='path',help='Write output to this file instead of stdout'"`
}

type generatedKey struct {
	Key    uint64    `json:"key"`
	Values []float64 `json:"values"`
}

func (c *GenerateCmd) Run(env *Env) error {
	logger := c.logger()

	if c.Keys < 1 || c.Count < 1 {
		return fmt.Errorf("keys and count must be positive")
	}

	cat, err := c.load()
	if err != nil {
		return err
	}
	streams, _, err := cat.Build(catalog.WithLogger(c.libraryLogger()))
	if err != nil {
		return err
	}
	stream, ok := streams[c.Stream]
	if !ok {
		return fmt.Errorf("unknown stream %q", c.Stream)
	}
	seed, err := c.resolveSeed(cat, logger)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i := 0; i < c.Keys; i++ {
		key := prng.Index(c.FirstKey + uint64(i))
		values := drawValues(stream, seed, key, c.Count)

		if c.JSON {
			if err := enc.Encode(generatedKey{Key: uint64(key), Values: values}); err != nil {
				return err
			}
			continue
		}
		buf.WriteString(strconv.FormatUint(uint64(key), 10))
		for _, v := range values {
			buf.WriteByte('\t')
			buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		buf.WriteByte('\n')
	}

	logger.Debug().
		Str("stream", c.Stream).
		Uint64("first_key", c.FirstKey).
		Int("keys", c.Keys).
		Int("count", c.Count).
		Msg("Generated values")

	if c.Out != "" {
		if err := fileutil.WriteFileAtomic(c.Out, buf.Bytes(), 0o644); err != nil {
			return err
		}
		logger.Info().Str("path", c.Out).Msg("Wrote values")
		return nil
	}
	_, err = env.Stdout.Write(buf.Bytes())
	return err
}

// drawValues samples count values from the raw generator for key. The first
// value is the one Generate returns.
func drawValues(stream catalog.Stream, seed prng.Seed, key prng.Index, count int) []float64 {
	r := stream.Rand(seed, key)
	dist := stream.Distribution()
	values := make([]float64, count)
	for i := range values {
		values[i] = dist.Sample(r)
	}
	return values
}
