package prng

import (
	"encoding/binary"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"strconv"
	"strings"

	"lukechampine.com/blake3"
	"lukechampine.com/uint128"
)

// ErrInvalidSeed is returned when seed text cannot be parsed.
var ErrInvalidSeed = errors.New("invalid seed")

// Seed is a 128-bit value identifying one reproducible universe of
// randomness. The zero value is a valid seed.
type Seed struct {
	v uint128.Uint128
}

// NewSeed wraps a raw 128-bit value.
func NewSeed(v uint128.Uint128) Seed {
	return Seed{v: v}
}

// SeedFrom64 builds a seed from its high and low halves.
func SeedFrom64(hi, lo uint64) Seed {
	return Seed{v: uint128.New(lo, hi)}
}

// SeedFromBytes reads 16 little-endian bytes as a seed. It is the inverse of
// Seed.Bytes.
func SeedFromBytes(b [16]byte) Seed {
	return Seed{v: uint128.FromBytes(b[:])}
}

// SeedFromString hashes s with BLAKE3 and reads the first 16 bytes of the
// digest as a little-endian 128-bit integer.
func SeedFromString(s string) Seed {
	sum := blake3.Sum256([]byte(s))
	return Seed{v: uint128.FromBytes(sum[:16])}
}

// SampleSeed draws a new seed from r, low half first.
func SampleSeed(r *rand.Rand) Seed {
	lo := r.Uint64()
	hi := r.Uint64()
	return SeedFrom64(hi, lo)
}

// ParseSeed parses the text form produced by String: "0x" followed by up to
// 32 hex digits.
func ParseSeed(s string) (Seed, error) {
	digits, ok := strings.CutPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	if !ok || digits == "" || len(digits) > 32 {
		return Seed{}, fmt.Errorf("%w: %q", ErrInvalidSeed, s)
	}

	var hi, lo uint64
	var err error
	if len(digits) > 16 {
		split := len(digits) - 16
		if hi, err = strconv.ParseUint(digits[:split], 16, 64); err != nil {
			return Seed{}, fmt.Errorf("%w: %q", ErrInvalidSeed, s)
		}
		digits = digits[split:]
	}
	if lo, err = strconv.ParseUint(digits, 16, 64); err != nil {
		return Seed{}, fmt.Errorf("%w: %q", ErrInvalidSeed, s)
	}
	return SeedFrom64(hi, lo), nil
}

// Uint128 returns the raw seed value.
func (s Seed) Uint128() uint128.Uint128 {
	return s.v
}

// Hi returns the upper 64 bits.
func (s Seed) Hi() uint64 { return s.v.Hi }

// Lo returns the lower 64 bits.
func (s Seed) Lo() uint64 { return s.v.Lo }

// Bytes returns the seed as 16 little-endian bytes.
func (s Seed) Bytes() [16]byte {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[:8], s.v.Lo)
	binary.LittleEndian.PutUint64(b[8:], s.v.Hi)
	return b
}

func (s Seed) String() string {
	return fmt.Sprintf("0x%016x%016x", s.v.Hi, s.v.Lo)
}

// MarshalText implements encoding.TextMarshaler.
func (s Seed) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Seed) UnmarshalText(text []byte) error {
	parsed, err := ParseSeed(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
