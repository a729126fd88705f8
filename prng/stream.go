package prng

import (
	"fmt"
	rand "math/rand/v2"

	"lukechampine.com/uint128"
)

// Stream declares how values of T are generated for keys of type K: a
// constant separating T from every other value type generated for K, and the
// distribution T is sampled from.
//
// Declare one Stream per (key type, value type) pair, usually as a package
// variable. Two streams for the same key type must not share a constant, or
// their values will be correlated. A zero constant also collides with the
// bare seed for key 0. The zero Stream has no distribution and must not be
// used.
type Stream[K Key, T any] struct {
	xor  uint128.Uint128
	dist Distribution[T]
}

// NewStream declares a stream with the given constant and distribution. A
// nil distribution selects Standard[T]; NewStream panics if T has none.
func NewStream[K Key, T any](xor uint128.Uint128, dist Distribution[T]) Stream[K, T] {
	if dist == nil {
		std, ok := standardFor[T]()
		if !ok {
			var zero T
			panic(fmt.Sprintf("prng: nil distribution and no standard distribution for %T", zero))
		}
		dist = std
	}
	return Stream[K, T]{xor: xor, dist: dist}
}

// NewStandardStream declares a stream sampled from Standard[T].
func NewStandardStream[K Key, T Standardizable](xor uint128.Uint128) Stream[K, T] {
	return NewStream[K](xor, Standard[T]())
}

// Xor returns the stream's constant.
func (s Stream[K, T]) Xor() uint128.Uint128 { return s.xor }

// Distribution returns the distribution values are sampled from.
func (s Stream[K, T]) Distribution() Distribution[T] { return s.dist }

// State returns the generator state derived for seed and key.
func (s Stream[K, T]) State(seed Seed, key K) uint128.Uint128 {
	return Derive(seed, s.xor, key.Key())
}

// Source returns a generator positioned at the start of the stream for seed
// and key. The caller owns it.
func (s Stream[K, T]) Source(seed Seed, key K) *MCG {
	return NewMCG(s.State(seed, key))
}

// Rand is Source wrapped in a *rand.Rand. Sampling the stream's
// distribution once from it gives the same value as Generate.
func (s Stream[K, T]) Rand(seed Seed, key K) *rand.Rand {
	return rand.New(s.Source(seed, key))
}

// Generate returns the value of T for seed and key.
func (s Stream[K, T]) Generate(seed Seed, key K) T {
	return s.dist.Sample(s.Rand(seed, key))
}

// Generate returns the value of T for seed and key from stream.
func Generate[K Key, T any](seed Seed, stream Stream[K, T], key K) T {
	return stream.Generate(seed, key)
}

// Rand returns the raw generator for seed and key on stream.
func Rand[K Key, T any](seed Seed, stream Stream[K, T], key K) *rand.Rand {
	return stream.Rand(seed, key)
}
