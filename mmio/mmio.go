// mmio/mmio.go

// Package mmio provides typed access to 32-bit memory-mapped registers.
//
// Drivers never touch raw addresses. They hold a register block, a struct of
// Register32 values, and manipulate bits through the helpers below. Bit
// positions live next to each register block as documented Field constants.
// On the target the block is bound to fixed addresses (see At); on a host the
// same block is backed by plain storage or by a peripheral model.
package mmio

import "sync/atomic"

// Register32 is a single 32-bit hardware register.
type Register32 interface {
	Get() uint32
	Set(uint32)
}

// Reg is a register with no side effects on access: what is written is what
// is read back.
type Reg struct {
	v atomic.Uint32
}

// Get returns the stored value.
func (r *Reg) Get() uint32 { return r.v.Load() }

// Set stores v.
func (r *Reg) Set(v uint32) { r.v.Store(v) }

// Hooked is a register whose reads and writes are served by functions. It
// models registers where the read and write sides mean different things
// (a data register popping a FIFO, a level register reporting occupancy).
// A nil OnRead reads as zero; a nil OnWrite ignores writes.
type Hooked struct {
	OnRead  func() uint32
	OnWrite func(uint32)
}

// Get calls OnRead.
func (h *Hooked) Get() uint32 {
	if h.OnRead == nil {
		return 0
	}
	return h.OnRead()
}

// Set calls OnWrite.
func (h *Hooked) Set(v uint32) {
	if h.OnWrite != nil {
		h.OnWrite(v)
	}
}

// SetBits performs a read-modify-write setting the bits in mask.
func SetBits(r Register32, mask uint32) { r.Set(r.Get() | mask) }

// ClearBits performs a read-modify-write clearing the bits in mask.
func ClearBits(r Register32, mask uint32) { r.Set(r.Get() &^ mask) }

// HasBits reports whether all bits in mask are set.
func HasBits(r Register32, mask uint32) bool { return r.Get()&mask == mask }

// Field is a bit field inside a register: Width bits starting at Pos.
type Field struct {
	Pos   uint8
	Width uint8
}

// Bit returns a one-bit field at pos.
func Bit(pos uint8) Field { return Field{Pos: pos, Width: 1} }

// Mask returns the in-place mask of the field.
func (f Field) Mask() uint32 {
	if f.Width >= 32 {
		return ^uint32(0)
	}
	return ((1 << f.Width) - 1) << f.Pos
}

// Extract returns the field value held in word.
func (f Field) Extract(word uint32) uint32 { return (word & f.Mask()) >> f.Pos }

// Insert returns word with the field replaced by v. Bits of v that do not
// fit are dropped.
func (f Field) Insert(word, v uint32) uint32 {
	return word&^f.Mask() | (v<<f.Pos)&f.Mask()
}

// Get reads the field from r.
func (f Field) Get(r Register32) uint32 { return f.Extract(r.Get()) }

// Set writes v into the field of r, leaving the other bits untouched.
func (f Field) Set(r Register32, v uint32) { r.Set(f.Insert(r.Get(), v)) }

// IsSet reports whether any bit of the field is set in r.
func (f Field) IsSet(r Register32) bool { return r.Get()&f.Mask() != 0 }
