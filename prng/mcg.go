package prng

import (
	"encoding/binary"
	"errors"
	"math/bits"

	"lukechampine.com/uint128"
)

// mcgMultiplier is the 128-bit multiplier of the PCG64 MCG generator.
var mcgMultiplier = uint128.New(0x4385df649fccf645, 0x2360ed051fc65da4)

var errMCGFormat = errors.New("prng: invalid MCG encoding")

// MCG is a permuted congruential generator with 128-bit multiplicative state
// and 64-bit XSL-RR output (PCG64 MCG). It implements math/rand/v2.Source.
//
// An MCG is not safe for concurrent use.
type MCG struct {
	state uint128.Uint128
}

// NewMCG returns a generator seeded with state. The lowest bit of the state
// is forced to 1, so seeds differing only in bit 0 produce the same stream.
func NewMCG(state uint128.Uint128) *MCG {
	m := &MCG{}
	m.Seed(state)
	return m
}

// Seed resets the generator to state, forcing the lowest bit to 1.
func (m *MCG) Seed(state uint128.Uint128) {
	m.state = state.Or64(1)
}

// Uint64 advances the state and returns 64 uniformly distributed bits.
func (m *MCG) Uint64() uint64 {
	m.state = m.state.MulWrap(mcgMultiplier)
	rot := int(m.state.Hi >> 58)
	return bits.RotateLeft64(m.state.Hi^m.state.Lo, -rot)
}

// Uint32 returns the low half of the next Uint64.
func (m *MCG) Uint32() uint32 {
	return uint32(m.Uint64())
}

// Advance moves the generator delta steps forward, as if Uint64 had been
// called delta times.
func (m *MCG) Advance(delta uint128.Uint128) {
	acc := uint128.From64(1)
	mult := mcgMultiplier
	for !delta.IsZero() {
		if delta.Lo&1 == 1 {
			acc = acc.MulWrap(mult)
		}
		mult = mult.MulWrap(mult)
		delta = delta.Rsh(1)
	}
	m.state = m.state.MulWrap(acc)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (m *MCG) MarshalBinary() ([]byte, error) {
	return m.AppendBinary(make([]byte, 0, 20))
}

// AppendBinary implements encoding.BinaryAppender.
func (m *MCG) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, "mcg:"...)
	b = binary.LittleEndian.AppendUint64(b, m.state.Lo)
	b = binary.LittleEndian.AppendUint64(b, m.state.Hi)
	return b, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (m *MCG) UnmarshalBinary(data []byte) error {
	if len(data) != 20 || string(data[:4]) != "mcg:" {
		return errMCGFormat
	}
	state := uint128.New(
		binary.LittleEndian.Uint64(data[4:12]),
		binary.LittleEndian.Uint64(data[12:20]),
	)
	if state.Lo&1 == 0 {
		return errMCGFormat
	}
	m.state = state
	return nil
}
