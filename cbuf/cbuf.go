// cbuf/cbuf.go

// Package cbuf implements a fixed-capacity byte ring used to decouple a
// producer from a consumer running at different rates.
//
// A Buffer has exactly one producer and one consumer. It does no locking:
// when the two run in contexts that can preempt each other (foreground code
// and an interrupt handler) the foreground side masks the interrupt for the
// duration of its access.
//
// Both indices stay within [0, capacity). Read == write means either empty
// or full; the full flag, set by the write that catches up with the read
// index and cleared by the next read, tells them apart. No slot is wasted and
// no occupancy counter is kept.
//
// Writing to a full buffer is rejected and the byte is dropped; reading an
// empty buffer returns ok == false. Callers that care check IsFull/IsEmpty
// first.
package cbuf

// Buffer is a byte ring bound to caller-supplied storage.
type Buffer struct {
	store []byte
	read  int
	write int
	full  bool
}

// Init binds the buffer to backing and resets both indices. The capacity is
// len(backing). Init does not allocate.
func (b *Buffer) Init(backing []byte) {
	b.store = backing
	b.read = 0
	b.write = 0
	b.full = false
}

// Cap returns the capacity in bytes.
func (b *Buffer) Cap() int { return len(b.store) }

// IsEmpty reports whether there is nothing to read.
func (b *Buffer) IsEmpty() bool { return !b.full && b.read == b.write }

// IsFull reports whether a write would be rejected.
func (b *Buffer) IsFull() bool { return b.full || len(b.store) == 0 }

// Len returns the number of pending bytes.
func (b *Buffer) Len() int {
	switch {
	case b.full:
		return len(b.store)
	case b.write >= b.read:
		return b.write - b.read
	default:
		return len(b.store) - b.read + b.write
	}
}

// Free returns the number of bytes that can be written before the buffer is
// full.
func (b *Buffer) Free() int { return len(b.store) - b.Len() }

// Write appends c. It returns false, leaving the buffer untouched, when the
// buffer is full.
func (b *Buffer) Write(c byte) bool {
	if b.IsFull() {
		return false
	}
	b.store[b.write] = c
	b.write = b.advance(b.write)
	if b.write == b.read {
		b.full = true
	}
	return true
}

// Read removes and returns the oldest byte. ok is false when the buffer is
// empty.
func (b *Buffer) Read() (c byte, ok bool) {
	if b.IsEmpty() {
		return 0, false
	}
	c = b.store[b.read]
	b.read = b.advance(b.read)
	b.full = false
	return c, true
}

// WriteFrom copies as many bytes of p as fit and returns how many were
// accepted.
func (b *Buffer) WriteFrom(p []byte) int {
	n := 0
	for n < len(p) && b.Write(p[n]) {
		n++
	}
	return n
}

// ReadInto moves up to len(p) pending bytes into p and returns how many
// were moved.
func (b *Buffer) ReadInto(p []byte) int {
	n := 0
	for n < len(p) {
		c, ok := b.Read()
		if !ok {
			break
		}
		p[n] = c
		n++
	}
	return n
}

func (b *Buffer) advance(i int) int {
	i++
	if i == len(b.store) {
		i = 0
	}
	return i
}
