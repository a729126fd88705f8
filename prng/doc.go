// Package prng derives deterministic pseudorandom values from a seed, a key
// and the type of value being produced.
//
// A Seed names one reproducible universe. A Key names an entity inside it. A
// Stream declares, once per (key type, value type) pair, the 128-bit constant
// that separates that value type from every other and the distribution used
// to sample it:
//
//	var heights = prng.NewStream[prng.Coord](
//		uint128.New(0xf39cc0605cedc834, 0x9e3779b97f4a7c15),
//		prng.Normal(0, 1),
//	)
//
//	seed := prng.SeedFromString("world-1")
//	h := heights.Generate(seed, prng.Coord{X: 3, Y: -7})
//
// The same seed, key and stream always produce the same value. Nothing is
// stored between calls, so values can be requested in any order.
//
// Streams that share a constant and a key type produce correlated values.
// Keeping constants distinct is the caller's job; a Registry can check it at
// startup.
package prng
