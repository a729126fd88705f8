package prng

import "lukechampine.com/uint128"

// Derive mixes a seed, a stream constant and a key into generator state:
//
//	seed ^ xor ^ (key << 64)
//
// The key lives in the upper 64 bits because NewMCG overwrites bit 0 of the
// state; any key bits placed low could be lost.
func Derive(seed Seed, xor uint128.Uint128, key uint64) uint128.Uint128 {
	return seed.v.Xor(xor).Xor(uint128.From64(key).Lsh(64))
}
