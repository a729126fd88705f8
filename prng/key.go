package prng

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Key identifies an entity within a seed. Key must be deterministic: the same
// entity always reports the same value. Distinct entities reporting the same
// value share their streams.
type Key interface {
	Key() uint64
}

// KeyFunc adapts a function to the Key interface.
type KeyFunc func() uint64

func (f KeyFunc) Key() uint64 { return f() }

// Global is the key with a single value. Streams keyed by Global yield one
// value per seed.
type Global struct{}

func (Global) Key() uint64 { return 0 }

// Index is a key that is its own value.
type Index uint64

func (i Index) Key() uint64 { return uint64(i) }

// Coord is a grid position. X occupies the upper 32 bits and Y the lower.
type Coord struct {
	X, Y int32
}

func (c Coord) Key() uint64 {
	return uint64(uint32(c.X))<<32 | uint64(uint32(c.Y))
}

// Name is a key derived from a string with xxhash64.
type Name string

func (n Name) Key() uint64 {
	return xxhash.Sum64String(string(n))
}

// UUID is a key derived from a UUID by folding its halves together.
type UUID uuid.UUID

func (u UUID) Key() uint64 {
	return binary.BigEndian.Uint64(u[:8]) ^ binary.BigEndian.Uint64(u[8:])
}
