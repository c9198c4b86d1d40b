// hal/core.go

// Package hal is the exception and critical-section layer of the board
// support package.
//
// Everything that touches the processor status bits goes through Core, the
// single platform boundary. Porting to another CPU means providing another
// Core; nothing above this package changes.
package hal

// IF is the 2-bit interrupt mask state of the processor: bit 1 is the I bit
// (normal interrupts masked), bit 0 is the F bit (fast interrupts masked).
//
//	0: IRQ enabled,  FIQ enabled
//	1: IRQ enabled,  FIQ disabled
//	2: IRQ disabled, FIQ enabled
//	3: IRQ disabled, FIQ disabled
type IF uint32

const (
	FIQMasked IF = 1 << 0
	IRQMasked IF = 1 << 1

	AllMasked = IRQMasked | FIQMasked
)

// IRQ reports whether normal interrupts are masked.
func (s IF) IRQ() bool { return s&IRQMasked != 0 }

// FIQ reports whether fast interrupts are masked.
func (s IF) FIQ() bool { return s&FIQMasked != 0 }

// Core masks and unmasks interrupts at the processor level.
type Core interface {
	// InterruptMask returns the current I and F bits.
	InterruptMask() IF
	// SetInterruptMask replaces the I and F bits.
	SetInterruptMask(IF)
}
