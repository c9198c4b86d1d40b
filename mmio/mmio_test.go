package mmio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldInsertExtract(t *testing.T) {
	cases := []struct {
		name  string
		f     Field
		word  uint32
		v     uint32
		want  uint32
		check uint32
	}{
		{name: "low byte", f: Field{Pos: 0, Width: 8}, word: 0xFFFF_FF00, v: 0xAB, want: 0xFFFF_FFAB, check: 0xAB},
		{name: "baud inc", f: Field{Pos: 16, Width: 16}, word: 0x0000_270F, v: 767, want: 767<<16 | 0x270F, check: 767},
		{name: "overflow dropped", f: Field{Pos: 0, Width: 5}, word: 0, v: 0x3F, want: 0x1F, check: 0x1F},
		{name: "whole word", f: Field{Pos: 0, Width: 32}, word: 1, v: 0xDEADBEEF, want: 0xDEADBEEF, check: 0xDEADBEEF},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.f.Insert(tc.word, tc.v)
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.check, tc.f.Extract(got))
		})
	}
}

func TestRegBitHelpers(t *testing.T) {
	var r Reg
	SetBits(&r, 1<<13|1<<14)
	require.Equal(t, uint32(0x6000), r.Get())
	require.True(t, HasBits(&r, 1<<13))
	ClearBits(&r, 1<<13)
	require.False(t, HasBits(&r, 1<<13))
	require.True(t, Bit(14).IsSet(&r))

	Field{Pos: 16, Width: 16}.Set(&r, 0x1234)
	require.Equal(t, uint32(0x1234_4000), r.Get())
}

func TestHookedRegister(t *testing.T) {
	var written []uint32
	h := &Hooked{
		OnRead:  func() uint32 { return 7 },
		OnWrite: func(v uint32) { written = append(written, v) },
	}
	require.Equal(t, uint32(7), h.Get())
	h.Set(3)
	require.Equal(t, []uint32{3}, written)

	var empty Hooked
	require.Zero(t, empty.Get())
	empty.Set(1)
}
