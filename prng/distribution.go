package prng

import (
	"fmt"
	rand "math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
	"lukechampine.com/uint128"
)

// Distribution samples a value of T from a uniform bit source.
type Distribution[T any] interface {
	Sample(r *rand.Rand) T
}

// DistributionFunc adapts a function to the Distribution interface.
type DistributionFunc[T any] func(r *rand.Rand) T

func (f DistributionFunc[T]) Sample(r *rand.Rand) T { return f(r) }

// Standardizable lists the types with a standard distribution.
type Standardizable interface {
	bool | int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64 | uint128.Uint128 | Seed
}

// Standard returns the default distribution for T: floats are uniform in
// [0, 1), integers and seeds take uniformly random bits, bools are fair.
func Standard[T Standardizable]() Distribution[T] {
	return standard[T]{}
}

type standard[T any] struct{}

func (standard[T]) Sample(r *rand.Rand) T {
	var out T
	if !sampleStandard(&out, r) {
		panic(fmt.Sprintf("prng: no standard distribution for %T", out))
	}
	return out
}

// standardFor returns Standard[T] for types only known at run time to be
// Standardizable.
func standardFor[T any]() (Distribution[T], bool) {
	var zero T
	switch any(zero).(type) {
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, uint128.Uint128, Seed:
		return standard[T]{}, true
	}
	return nil, false
}

// sampleStandard fills *p. Types narrower than 64 bits take the low half of
// one output.
func sampleStandard(p any, r *rand.Rand) bool {
	switch p := p.(type) {
	case *float64:
		*p = unitFloat64(r)
	case *float32:
		*p = float32(low32(r)>>8) * 0x1p-24
	case *bool:
		*p = int32(low32(r)) < 0
	case *int:
		*p = int(r.Uint64())
	case *int8:
		*p = int8(low32(r))
	case *int16:
		*p = int16(low32(r))
	case *int32:
		*p = int32(low32(r))
	case *int64:
		*p = int64(r.Uint64())
	case *uint:
		*p = uint(r.Uint64())
	case *uint8:
		*p = uint8(low32(r))
	case *uint16:
		*p = uint16(low32(r))
	case *uint32:
		*p = low32(r)
	case *uint64:
		*p = r.Uint64()
	case *uint128.Uint128:
		*p = SampleSeed(r).v
	case *Seed:
		*p = SampleSeed(r)
	default:
		return false
	}
	return true
}

// low32 returns the low half of the next output. rand.Rand.Uint32 takes the
// high half.
func low32(r *rand.Rand) uint32 {
	return uint32(r.Uint64())
}

// unitFloat64 uses the top 53 bits of the next output.
func unitFloat64(r *rand.Rand) float64 {
	return float64(r.Uint64()>>11) * 0x1p-53
}

// Map derives a distribution over U by applying f to samples of d.
func Map[T, U any](d Distribution[T], f func(T) U) Distribution[U] {
	return DistributionFunc[U](func(r *rand.Rand) U {
		return f(d.Sample(r))
	})
}

// UniformInt samples integers in [lo, hi). It panics if hi <= lo.
func UniformInt(lo, hi int64) Distribution[int64] {
	if hi <= lo {
		panic(fmt.Sprintf("prng: empty integer range [%d, %d)", lo, hi))
	}
	return DistributionFunc[int64](func(r *rand.Rand) int64 {
		return lo + r.Int64N(hi-lo)
	})
}

// Uniform samples floats in [min, max).
func Uniform(min, max float64) Distribution[float64] {
	return DistributionFunc[float64](func(r *rand.Rand) float64 {
		d := distuv.Uniform{Min: min, Max: max, Src: r}
		return d.Rand()
	})
}

// Normal samples from a normal distribution.
func Normal(mu, sigma float64) Distribution[float64] {
	return DistributionFunc[float64](func(r *rand.Rand) float64 {
		d := distuv.Normal{Mu: mu, Sigma: sigma, Src: r}
		return d.Rand()
	})
}

// Exponential samples from an exponential distribution with the given rate.
func Exponential(rate float64) Distribution[float64] {
	return DistributionFunc[float64](func(r *rand.Rand) float64 {
		d := distuv.Exponential{Rate: rate, Src: r}
		return d.Rand()
	})
}

// Poisson samples event counts with mean lambda.
func Poisson(lambda float64) Distribution[float64] {
	return DistributionFunc[float64](func(r *rand.Rand) float64 {
		d := distuv.Poisson{Lambda: lambda, Src: r}
		return d.Rand()
	})
}

// Bernoulli returns 1 with probability p and 0 otherwise.
func Bernoulli(p float64) Distribution[float64] {
	return DistributionFunc[float64](func(r *rand.Rand) float64 {
		d := distuv.Bernoulli{P: p, Src: r}
		return d.Rand()
	})
}

// Gamma samples from a gamma distribution with shape alpha and rate beta.
func Gamma(alpha, beta float64) Distribution[float64] {
	return DistributionFunc[float64](func(r *rand.Rand) float64 {
		d := distuv.Gamma{Alpha: alpha, Beta: beta, Src: r}
		return d.Rand()
	})
}

// Choice picks one of items uniformly. It panics if items is empty.
func Choice[T any](items []T) Distribution[T] {
	if len(items) == 0 {
		panic("prng: Choice with no items")
	}
	items = append([]T(nil), items...)
	return DistributionFunc[T](func(r *rand.Rand) T {
		return items[r.IntN(len(items))]
	})
}

// Weighted picks one of items with probability proportional to its weight.
// It panics if the lengths differ or items is empty.
func Weighted[T any](items []T, weights []float64) Distribution[T] {
	if len(items) == 0 || len(items) != len(weights) {
		panic(fmt.Sprintf("prng: Weighted with %d items and %d weights", len(items), len(weights)))
	}
	items = append([]T(nil), items...)
	weights = append([]float64(nil), weights...)
	return DistributionFunc[T](func(r *rand.Rand) T {
		c := distuv.NewCategorical(weights, r)
		return items[int(c.Rand())]
	})
}
