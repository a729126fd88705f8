package prng

import (
	"encoding/json"
	rand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedFromStringEmpty(t *testing.T) {
	// BLAKE3("") = af1349b9f5f9a1a6a0404dea36dcc949...
	seed := SeedFromString("")
	assert.Equal(t, uint64(0xa6a1f9f5b94913af), seed.Lo())
	assert.Equal(t, uint64(0x49c9dc36ea4d40a0), seed.Hi())
}

func TestSeedFromStringDeterministic(t *testing.T) {
	assert.Equal(t, SeedFromString("world"), SeedFromString("world"))
	assert.NotEqual(t, SeedFromString("world"), SeedFromString("World"))
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Seed
		wantErr bool
	}{
		{name: "full width", input: "0x0123456789abcdeffedcba9876543210", want: SeedFrom64(0x0123456789abcdef, 0xfedcba9876543210)},
		{name: "short", input: "0x2a", want: SeedFrom64(0, 42)},
		{name: "upper case", input: "0XFF", want: SeedFrom64(0, 0xff)},
		{name: "seventeen digits", input: "0x10000000000000000", want: SeedFrom64(1, 0)},
		{name: "missing prefix", input: "2a", wantErr: true},
		{name: "empty digits", input: "0x", wantErr: true},
		{name: "too long", input: "0x" + "000000000000000000000000000000001", wantErr: true},
		{name: "not hex", input: "0xzz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeed(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSeed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeedTextRoundTrip(t *testing.T) {
	seed := SeedFromString("round trip")

	parsed, err := ParseSeed(seed.String())
	require.NoError(t, err)
	assert.Equal(t, seed, parsed)

	type doc struct {
		Seed Seed `json:"seed"`
	}
	data, err := json.Marshal(doc{Seed: seed})
	require.NoError(t, err)
	assert.JSONEq(t, `{"seed":"`+seed.String()+`"}`, string(data))

	var back doc
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, seed, back.Seed)
}

func TestSeedBytes(t *testing.T) {
	seed := SeedFrom64(0x0807060504030201, 0x100f0e0d0c0b0a09)
	b := seed.Bytes()
	assert.Equal(t, byte(0x09), b[0])
	assert.Equal(t, byte(0x01), b[8])
	assert.Equal(t, byte(0x08), b[15])
}

func TestSampleSeed(t *testing.T) {
	r := rand.New(NewMCG(SeedFromString("bootstrap").Uint128()))
	check := rand.New(NewMCG(SeedFromString("bootstrap").Uint128()))

	seed := SampleSeed(r)
	lo := check.Uint64()
	hi := check.Uint64()
	assert.Equal(t, SeedFrom64(hi, lo), seed)
	assert.NotEqual(t, seed, SampleSeed(r))
}

func TestSeedFromBytesInvertsBytes(t *testing.T) {
	seed := SeedFromString("bytes")
	assert.Equal(t, seed, SeedFromBytes(seed.Bytes()))
}
