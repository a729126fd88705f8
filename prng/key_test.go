package prng

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	id := uuid.MustParse("00000000-0000-00ff-0000-00000000ff00")

	tests := []struct {
		name string
		key  Key
		want uint64
	}{
		{name: "global", key: Global{}, want: 0},
		{name: "index", key: Index(42), want: 42},
		{name: "coord", key: Coord{X: 1, Y: -1}, want: 0x00000001ffffffff},
		{name: "negative coord", key: Coord{X: -2, Y: 3}, want: 0xfffffffe00000003},
		{name: "name", key: Name("castle"), want: xxhash.Sum64String("castle")},
		{name: "uuid", key: UUID(id), want: 0xff ^ 0xff00},
		{name: "func", key: KeyFunc(func() uint64 { return 7 }), want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.Key())
		})
	}
}

func TestCoordNeighboursDiffer(t *testing.T) {
	seen := make(map[uint64]Coord)
	for x := int32(-3); x <= 3; x++ {
		for y := int32(-3); y <= 3; y++ {
			c := Coord{X: x, Y: y}
			if prev, ok := seen[c.Key()]; ok {
				t.Fatalf("%v and %v share key %#x", c, prev, c.Key())
			}
			seen[c.Key()] = c
		}
	}
}
