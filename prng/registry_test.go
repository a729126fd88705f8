package prng

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()

	height := NewStandardStream[Coord, float64](uint128.From64(10))
	_, err := Register(reg, "height", height)
	require.NoError(t, err)

	_, err = Register(reg, "moisture", NewStandardStream[Coord, float64](uint128.From64(10)))
	assert.ErrorIs(t, err, ErrDuplicateXor)

	_, err = Register(reg, "height", NewStandardStream[Coord, float64](uint128.From64(11)))
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = Register(reg, "nothing", NewStandardStream[Coord, float64](uint128.Zero))
	assert.ErrorIs(t, err, ErrZeroXor)
}

func TestRegistryAllowsSameXorForDifferentKeyTypes(t *testing.T) {
	reg := NewRegistry()
	xor := uint128.New(1, 2)

	_, err := Register(reg, "coord", NewStandardStream[Coord, float64](xor))
	require.NoError(t, err)
	_, err = Register(reg, "index", NewStandardStream[Index, float64](xor))
	require.NoError(t, err)
}

func TestRegistryEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	reg := NewRegistry(WithLogger(logger))

	MustRegister(reg, "b", NewStandardStream[Index, uint64](uint128.From64(2)))
	MustRegister(reg, "a", NewStandardStream[Index, uint64](uint128.From64(1)))

	entries := reg.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, "b", entries[1].Name)
	assert.Equal(t, reflect.TypeFor[Index](), entries[0].KeyType)

	e, ok := reg.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, uint128.From64(2), e.Xor)

	assert.Contains(t, buf.String(), "registered stream")
	assert.Panics(t, func() {
		MustRegister(reg, "c", NewStandardStream[Index, uint64](uint128.From64(1)))
	})
}
