// Package randutil bootstraps prng seeds from the places seeds usually come
// from: flags, environment variables and system entropy.
package randutil

import (
	crand "crypto/rand"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/procseed/prng"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// Entropy draws a fresh seed from crypto/rand.
func Entropy() (prng.Seed, error) {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		return prng.Seed{}, fmt.Errorf("read random seed: %w", err)
	}
	return prng.SeedFromBytes(b), nil
}

// FromInt64 expands a 64-bit seed to 128 bits. The value and the value plus
// the golden ratio are each run through the splitmix64 finaliser, so nearby
// integers give unrelated seeds.
func FromInt64(seed int64) prng.Seed {
	u := uint64(seed)
	return prng.SeedFrom64(mix(u), mix(u+goldenRatio64))
}

// Resolve turns seed text into a seed. Hex literals ("0x...") are used as is,
// decimal integers go through FromInt64 and anything else is hashed. Empty
// text draws from Entropy.
func Resolve(text string) (prng.Seed, error) {
	text = strings.TrimSpace(text)
	switch {
	case text == "":
		return Entropy()
	case strings.HasPrefix(strings.ToLower(text), "0x"):
		return prng.ParseSeed(text)
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return FromInt64(n), nil
	}
	return prng.SeedFromString(text), nil
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
