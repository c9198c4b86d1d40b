// hal/exceptions.go

package hal

import (
	"fmt"

	"github.com/golang/glog"
)

// Exception identifies a CPU trap.
type Exception uint8

const (
	Undef Exception = iota
	SWI
	PrefetchAbort
	DataAbort
	IRQ
	FIQ

	// MaxException is the number of trap table entries.
	MaxException
)

var exceptionNames = [MaxException]string{"undef", "swi", "pabort", "dabort", "irq", "fiq"}

func (e Exception) String() string {
	if e < MaxException {
		return exceptionNames[e]
	}
	return fmt.Sprintf("exception(%d)", uint8(e))
}

// Handler is anything that can service a trap or an interrupt source.
type Handler interface {
	Handle()
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func()

// Handle implements Handler.
func (f HandlerFunc) Handle() { f() }

// Nop is the handler installed in empty table slots.
var Nop Handler = HandlerFunc(func() {})

// NormalServicer services the highest-priority pending normal interrupt.
type NormalServicer interface {
	ServiceNormalInterrupt()
}

// FastServicer services the highest-priority pending fast interrupt.
type FastServicer interface {
	ServiceFastInterrupt()
}

// Dispatcher is the entry point reached from the CPU vector table.
type Dispatcher interface {
	Dispatch(Exception)
}

// Exceptions owns the CPU trap table and the processor mask primitives.
type Exceptions struct {
	core     Core
	handlers [MaxException]Handler
	section  SingleLevel
}

// NewExceptions returns a trap table over core with every slot set to Nop.
func NewExceptions(core Core) *Exceptions {
	x := &Exceptions{core: core, section: SingleLevel{owner: "hal"}}
	for i := range x.handlers {
		x.handlers[i] = Nop
	}
	return x
}

// Init installs the non-nested IRQ trap, which hands control to the
// interrupt controller, and the FIQ trap when itc also services fast
// interrupts.
func (x *Exceptions) Init(itc NormalServicer) {
	x.handlers[IRQ] = HandlerFunc(itc.ServiceNormalInterrupt)
	if f, ok := itc.(FastServicer); ok {
		x.handlers[FIQ] = HandlerFunc(f.ServiceFastInterrupt)
	}
	glog.V(2).Info("exception table initialised")
}

// Core returns the processor boundary the table was built over.
func (x *Exceptions) Core() Core { return x.core }

// SetHandler replaces the handler of trap e. A nil handler installs Nop.
func (x *Exceptions) SetHandler(e Exception, h Handler) error {
	if e >= MaxException {
		return fmt.Errorf("set handler %v: %w", e, InvalidParameter)
	}
	if h == nil {
		h = Nop
	}
	x.handlers[e] = h
	return nil
}

// Handler returns the handler of trap e.
func (x *Exceptions) Handler(e Exception) (Handler, error) {
	if e >= MaxException {
		return nil, fmt.Errorf("get handler %v: %w", e, InvalidParameter)
	}
	return x.handlers[e], nil
}

// Dispatch runs the handler of trap e. It is the entry reached from the
// vector table; processor mode and mask bits are the caller's business.
func (x *Exceptions) Dispatch(e Exception) {
	if e >= MaxException {
		return
	}
	x.handlers[e].Handle()
}

// DisableInts masks IRQ and FIQ and returns the previous state. Exactly one
// RestoreInts must follow; calls do not nest.
func (x *Exceptions) DisableInts() IF {
	x.section.Acquire()
	s := x.core.InterruptMask()
	x.core.SetInterruptMask(s | AllMasked)
	return s & AllMasked
}

// RestoreInts reinstates the I and F bits saved by DisableInts.
func (x *Exceptions) RestoreInts(s IF) {
	x.section.Release()
	cur := x.core.InterruptMask()
	x.core.SetInterruptMask(cur&^AllMasked | s&AllMasked)
}

// EnableInts clears the I and F bits. Use it to unmask at start-up or to
// let a handler be preempted; it pairs with nothing.
func (x *Exceptions) EnableInts() {
	x.core.SetInterruptMask(x.core.InterruptMask() &^ AllMasked)
}

// DisableIRQ masks IRQ and returns the previous I bit (0 or 1).
func (x *Exceptions) DisableIRQ() uint32 {
	s := x.core.InterruptMask()
	x.core.SetInterruptMask(s | IRQMasked)
	return uint32(s&IRQMasked) >> 1
}

// RestoreIRQ reinstates the I bit saved by DisableIRQ.
func (x *Exceptions) RestoreIRQ(i uint32) {
	cur := x.core.InterruptMask()
	x.core.SetInterruptMask(cur&^IRQMasked | IF(i&1)<<1)
}

// DisableFIQ masks FIQ and returns the previous F bit (0 or 1).
func (x *Exceptions) DisableFIQ() uint32 {
	s := x.core.InterruptMask()
	x.core.SetInterruptMask(s | FIQMasked)
	return uint32(s & FIQMasked)
}

// RestoreFIQ reinstates the F bit saved by DisableFIQ.
func (x *Exceptions) RestoreFIQ(f uint32) {
	cur := x.core.InterruptMask()
	x.core.SetInterruptMask(cur&^FIQMasked | IF(f&1))
}

// Critical masks IRQ and FIQ and returns a guard restoring the previous
// state. Critical sections are single level: a nested Critical on the same
// table, or a second Release, is a caller error.
func (x *Exceptions) Critical() *Guard {
	s := x.DisableInts()
	return x.section.Wrap(func() { x.RestoreInts(s) })
}
