// itc/itc.go

// Package itc drives the MC1322x interrupt controller.
//
// The controller owns a handler table indexed by source. Normal interrupts
// are serviced through ServiceNormalInterrupt, reached from the IRQ trap:
// the hardware vector register names the highest-priority pending source
// and, while its handler runs, NIMASK is narrowed so that sources of equal
// or lower priority cannot be signalled. The previous NIMASK is put back
// when the handler returns. Fast interrupts are serviced
// unmasked through ServiceFastInterrupt.
//
// Invoking a source before its handler is set runs hal.Nop.
package itc

import (
	"fmt"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/jangala-dev/econotag-bsp/hal"
	"github.com/jangala-dev/econotag-bsp/mmio"
)

// Mask is a snapshot of the INTENABLE register taken by DisableInts.
type Mask uint32

// Controller is the interrupt controller. There is one per chip.
type Controller struct {
	regs     *Regs
	handlers [MaxSource]hal.Handler
	counts   [MaxSource]atomic.Uint32
	spurious atomic.Uint32
	section  *hal.SingleLevel
}

// New returns a controller over regs. Call Init before enabling sources.
func New(regs *Regs) *Controller {
	c := &Controller{regs: regs, section: hal.NewSingleLevel("itc")}
	for i := range c.handlers {
		c.handlers[i] = hal.Nop
	}
	return c
}

// Init clears the handler table, disables and unforces every source, routes
// them all as normal interrupts and enables both arbiters.
func (c *Controller) Init() {
	c.regs.IntEnable.Set(0)
	c.regs.IntFrc.Set(0)
	c.regs.IntType.Set(0)
	for i := range c.handlers {
		c.handlers[i] = hal.Nop
		c.counts[i].Store(0)
	}
	c.regs.NIMask.Set(NIMaskNone)
	c.regs.IntCntl.Set(0)
	glog.V(2).Info("itc: initialised")
}

func check(op string, src Source) error {
	if src >= MaxSource {
		return fmt.Errorf("itc %s %v: %w", op, src, hal.InvalidParameter)
	}
	return nil
}

// SetHandler replaces the handler of src. It takes effect the next time src
// fires. A nil handler installs hal.Nop.
func (c *Controller) SetHandler(src Source, h hal.Handler) error {
	if err := check("set handler", src); err != nil {
		return err
	}
	if h == nil {
		h = hal.Nop
	}
	c.handlers[src] = h
	return nil
}

// SetPriority routes src as a normal or fast interrupt. Changing the class
// of a source that is already latched has unspecified effect.
func (c *Controller) SetPriority(src Source, p Priority) error {
	if err := check("set priority", src); err != nil {
		return err
	}
	bit := uint32(1) << src
	t := c.regs.IntType.Get()
	if p == Fast {
		t |= bit
	} else {
		t &^= bit
	}
	c.regs.IntType.Set(t)
	return nil
}

// Priority returns the routing class of src.
func (c *Controller) Priority(src Source) Priority {
	if src < MaxSource && mmio.HasBits(c.regs.IntType, 1<<src) {
		return Fast
	}
	return Normal
}

// EnableInterrupt lets src reach the CPU.
func (c *Controller) EnableInterrupt(src Source) error {
	if err := check("enable", src); err != nil {
		return err
	}
	c.regs.IntEnNum.Set(uint32(src))
	return nil
}

// DisableInterrupt stops src from reaching the CPU. It is a single register
// write and is safe from interrupt context.
func (c *Controller) DisableInterrupt(src Source) error {
	if err := check("disable", src); err != nil {
		return err
	}
	c.regs.IntDisNum.Set(uint32(src))
	return nil
}

// Enabled reports whether src is enabled.
func (c *Controller) Enabled(src Source) bool {
	return src < MaxSource && mmio.HasBits(c.regs.IntEnable, 1<<src)
}

// ForceInterrupt raises src in software, as if the peripheral had asserted
// it. The source stays pending until UnforceInterrupt, so a handler serving
// a forced source normally unforces it.
func (c *Controller) ForceInterrupt(src Source) error {
	if err := check("force", src); err != nil {
		return err
	}
	c.regs.IntFrc.Set(c.regs.IntFrc.Get() | 1<<src)
	return nil
}

// UnforceInterrupt withdraws a forced interrupt.
func (c *Controller) UnforceInterrupt(src Source) error {
	if err := check("unforce", src); err != nil {
		return err
	}
	c.regs.IntFrc.Set(c.regs.IntFrc.Get() &^ (1 << src))
	return nil
}

// DisableInts disables every source and returns the previous enable mask.
// Exactly one RestoreInts must follow; calls do not nest.
func (c *Controller) DisableInts() Mask {
	c.section.Acquire()
	m := Mask(c.regs.IntEnable.Get())
	c.regs.IntEnable.Set(0)
	return m
}

// RestoreInts reinstates a mask returned by DisableInts.
func (c *Controller) RestoreInts(m Mask) {
	c.section.Release()
	c.regs.IntEnable.Set(uint32(m))
}

// Critical wraps DisableInts/RestoreInts in a guard. Like DisableInts it
// is single level.
func (c *Controller) Critical() *hal.Guard {
	m := c.DisableInts()
	return c.section.Wrap(func() { c.RestoreInts(m) })
}

// ServiceNormalInterrupt runs the handler of the highest-priority pending
// normal source. While it runs, sources of equal or lower priority are
// masked; on return NIMASK goes back to the level it had on entry, so a
// preempted handler keeps its own masking.
func (c *Controller) ServiceNormalInterrupt() {
	v := c.regs.NIVector.Get()
	if v >= uint32(MaxSource) {
		c.spurious.Add(1)
		glog.V(3).Infof("itc: spurious normal interrupt, vector %#x", v)
		return
	}
	src := Source(v)
	prev := c.regs.NIMask.Get()
	c.regs.NIMask.Set(uint32(src))
	c.counts[src].Add(1)
	c.handlers[src].Handle()
	c.regs.NIMask.Set(prev)
}

// ServiceFastInterrupt runs the handler of the highest-priority pending fast
// source. Fast handlers run with nothing masked at the controller and must
// be short.
func (c *Controller) ServiceFastInterrupt() {
	v := c.regs.FIVector.Get()
	if v >= uint32(MaxSource) {
		c.spurious.Add(1)
		return
	}
	c.counts[v].Add(1)
	c.handlers[v].Handle()
}

// Serviced returns how many times the handler of src has been dispatched
// since Init.
func (c *Controller) Serviced(src Source) uint32 {
	if src >= MaxSource {
		return 0
	}
	return c.counts[src].Load()
}

// Spurious returns how many service calls found no pending source.
func (c *Controller) Spurious() uint32 { return c.spurious.Load() }
