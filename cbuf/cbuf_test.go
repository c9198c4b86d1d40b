package cbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newBuffer(n int) *Buffer {
	var b Buffer
	b.Init(make([]byte, n))
	return &b
}

func TestInitEmpty(t *testing.T) {
	b := newBuffer(4)
	require.True(t, b.IsEmpty())
	require.False(t, b.IsFull())
	require.Equal(t, 0, b.Len())
	require.Equal(t, 4, b.Free())
	_, ok := b.Read()
	require.False(t, ok)
}

func TestFIFOOrder(t *testing.T) {
	for _, capacity := range []int{1, 2, 3, 8, 256} {
		for n := 0; n <= capacity; n++ {
			b := newBuffer(capacity)
			for i := 0; i < n; i++ {
				require.True(t, b.Write(byte(i)))
				require.Equal(t, i+1, b.Len())
			}
			require.Equal(t, n == capacity, b.IsFull())
			require.Equal(t, n == 0, b.IsEmpty())
			for i := 0; i < n; i++ {
				c, ok := b.Read()
				require.True(t, ok)
				require.Equal(t, byte(i), c)
			}
			require.True(t, b.IsEmpty())
		}
	}
}

func TestFillDrainWrapsAround(t *testing.T) {
	b := newBuffer(5)
	// Offset the indices so the next fill wraps.
	b.WriteFrom([]byte{9, 9, 9})
	b.ReadInto(make([]byte, 3))

	for round := 0; round < 3; round++ {
		in := []byte{byte(round), 1, 2, 3, 4}
		require.Equal(t, 5, b.WriteFrom(in))
		require.True(t, b.IsFull())
		require.Equal(t, 0, b.Free())

		out := make([]byte, 8)
		require.Equal(t, 5, b.ReadInto(out))
		require.Equal(t, in, out[:5])
		require.True(t, b.IsEmpty())
		require.False(t, b.IsFull())
	}
}

func TestWriteWhenFullIsRejected(t *testing.T) {
	b := newBuffer(3)
	require.Equal(t, 3, b.WriteFrom([]byte("abc")))
	require.False(t, b.Write('d'))
	require.Equal(t, 0, b.WriteFrom([]byte("xyz")))

	c, ok := b.Read()
	require.True(t, ok)
	require.Equal(t, byte('a'), c, "oldest byte must survive a rejected write")

	out := make([]byte, 3)
	require.Equal(t, 2, b.ReadInto(out))
	require.Equal(t, "bc", string(out[:2]))
}

func TestReadWhenEmpty(t *testing.T) {
	b := newBuffer(2)
	b.Write('x')
	b.Read()
	c, ok := b.Read()
	require.False(t, ok)
	require.Zero(t, c)
	require.Equal(t, 0, b.ReadInto(make([]byte, 2)))
}

func TestInterleavedProducerConsumer(t *testing.T) {
	b := newBuffer(7)
	var want, got []byte
	next := byte(0)
	for step := 0; step < 200; step++ {
		for i := 0; i < step%4; i++ {
			if b.Write(next) {
				want = append(want, next)
				next++
			}
		}
		for i := 0; i < step%3; i++ {
			if c, ok := b.Read(); ok {
				got = append(got, c)
			}
		}
		require.True(t, b.Len() <= b.Cap())
	}
	for {
		c, ok := b.Read()
		if !ok {
			break
		}
		got = append(got, c)
	}
	require.Equal(t, want, got)
}

func TestZeroCapacity(t *testing.T) {
	var b Buffer
	b.Init(nil)
	require.True(t, b.IsFull())
	require.True(t, b.IsEmpty())
	require.False(t, b.Write(1))
}
