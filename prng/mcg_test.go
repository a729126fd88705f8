package prng

import (
	"testing"

	"lukechampine.com/uint128"
)

func TestMCGKnownValues(t *testing.T) {
	tests := []struct {
		name  string
		state uint128.Uint128
		want  []uint64
	}{
		{
			name:  "rand_pcg seed 42",
			state: uint128.From64(42),
			want: []uint64{
				0x63b4a3a813ce700a, 0x382954200617ab24, 0xa7fd85ae3fe950ce,
				0xd715286aa2887737, 0x60c92fee2e59f32c, 0x84c4e96beff30017,
			},
		},
		{
			name:  "pcg default state",
			state: uint128.From64(0xcafef00dd15ea5e5),
			want:  []uint64{0x00e6b209b8eb1c47, 0xd68b0608d44e80d2, 0xbe57306aab7ba1a3, 0xf5e504357ae4c3cd},
		},
		{
			name:  "zero state",
			state: uint128.Zero,
			want:  []uint64{0xe160e53261800aab, 0x2a2911d587fc4ed5, 0xdfe75554bbd34d0d},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMCG(tt.state)
			for i, want := range tt.want {
				if got := m.Uint64(); got != want {
					t.Errorf("draw %d: got %#x, want %#x", i, got, want)
				}
			}
		})
	}
}

func TestMCGForcesLowBit(t *testing.T) {
	a := NewMCG(uint128.From64(2))
	b := NewMCG(uint128.From64(3))
	for i := 0; i < 8; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatalf("states differing only in bit 0 diverged at draw %d", i)
		}
	}
}

func TestMCGAdvance(t *testing.T) {
	stepped := NewMCG(uint128.From64(42))
	for i := 0; i < 1000; i++ {
		stepped.Uint64()
	}

	jumped := NewMCG(uint128.From64(42))
	jumped.Advance(uint128.From64(1000))

	if got, want := jumped.Uint64(), stepped.Uint64(); got != want {
		t.Fatalf("advance mismatch: got %#x, want %#x", got, want)
	}
	if got := jumped.state; got != stepped.state {
		t.Fatalf("state mismatch after advance")
	}
}

func TestMCGAdvanceMatchesKnownValue(t *testing.T) {
	m := NewMCG(uint128.From64(42))
	m.Advance(uint128.From64(1000))
	if got := m.Uint64(); got != 0xff3d7a0c55cf0e87 {
		t.Fatalf("got %#x", got)
	}
}

func TestMCGBinaryRoundTrip(t *testing.T) {
	m := NewMCG(uint128.New(0x1234, 0x5678))
	m.Uint64()
	m.Uint64()

	data, err := m.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var restored MCG
	if err := restored.UnmarshalBinary(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for i := 0; i < 4; i++ {
		if got, want := restored.Uint64(), m.Uint64(); got != want {
			t.Fatalf("draw %d: got %#x, want %#x", i, got, want)
		}
	}
}

func TestMCGUnmarshalRejectsGarbage(t *testing.T) {
	var m MCG
	for _, data := range [][]byte{
		nil,
		[]byte("pcg:0123456789abcdef"),
		append([]byte("mcg:"), make([]byte, 16)...), // even state
	} {
		if err := m.UnmarshalBinary(data); err == nil {
			t.Errorf("expected error for %q", data)
		}
	}
}
