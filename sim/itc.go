// sim/itc.go

package sim

import (
	"math/bits"

	"github.com/jangala-dev/econotag-bsp/itc"
	"github.com/jangala-dev/econotag-bsp/mmio"
)

// ITC models the interrupt controller arbiter. A source is pending when its
// peripheral line or its force bit is set and it is enabled. Normal sources
// whose priority is at or below NIMASK are hidden from NIPEND and NIVECTOR.
type ITC struct {
	m *Machine

	intCntl   uint32
	niMask    uint32
	intEnable uint32
	intType   uint32
	intFrc    uint32

	regs itc.Regs
}

func newITC(m *Machine) *ITC {
	c := &ITC{m: m, niMask: itc.NIMaskNone}
	c.regs = itc.Regs{
		IntCntl:   c.reg(&c.intCntl),
		NIMask:    &mmio.Hooked{OnRead: func() uint32 { return c.niMask }, OnWrite: c.write(func(v uint32) { c.niMask = itc.NIMaskField.Extract(v) })},
		IntEnNum:  &mmio.Hooked{OnWrite: c.write(func(v uint32) { c.intEnable |= bit(v) })},
		IntDisNum: &mmio.Hooked{OnWrite: c.write(func(v uint32) { c.intEnable &^= bit(v) })},
		IntEnable: c.reg(&c.intEnable),
		IntType:   c.reg(&c.intType),
		NIVector:  &mmio.Hooked{OnRead: func() uint32 { return vector(c.normalPending()) }},
		FIVector:  &mmio.Hooked{OnRead: func() uint32 { return vector(c.fastPending()) }},
		IntSrc:    &mmio.Hooked{OnRead: c.raw},
		IntFrc:    c.reg(&c.intFrc),
		NIPend:    &mmio.Hooked{OnRead: c.normalPending},
		FIPend:    &mmio.Hooked{OnRead: c.fastPending},
	}
	return c
}

func bit(n uint32) uint32 {
	if n >= uint32(itc.MaxSource) {
		return 0
	}
	return 1 << n
}

// reg returns a plain read/write register stored at v.
func (c *ITC) reg(v *uint32) *mmio.Hooked {
	return &mmio.Hooked{
		OnRead:  func() uint32 { return *v },
		OnWrite: c.write(func(n uint32) { *v = n }),
	}
}

// write wraps a register update so interrupt lines are re-evaluated after
// it.
func (c *ITC) write(f func(uint32)) func(uint32) {
	return func(v uint32) {
		f(v)
		c.m.evaluate()
	}
}

// vector returns the highest set bit of pend, or itc.NoVector.
func vector(pend uint32) uint32 {
	if pend == 0 {
		return itc.NoVector
	}
	return uint32(31 - bits.LeadingZeros32(pend))
}

func (c *ITC) raw() uint32 {
	all := uint32(1)<<itc.MaxSource - 1
	return (c.m.peripheralLines() | c.intFrc) & all
}

func (c *ITC) normalPending() uint32 {
	if c.intCntl&itc.NIAD.Mask() != 0 {
		return 0
	}
	p := c.raw() & c.intEnable &^ c.intType
	if c.niMask != itc.NIMaskNone {
		p &^= uint32(1)<<(c.niMask+1) - 1
	}
	return p
}

func (c *ITC) fastPending() uint32 {
	if c.intCntl&itc.FIAD.Mask() != 0 {
		return 0
	}
	return c.raw() & c.intEnable & c.intType
}

func (c *ITC) lines() (fiq, irq bool) {
	return c.fastPending() != 0, c.normalPending() != 0
}

// Forced returns the force register.
func (c *ITC) Forced() uint32 { return c.intFrc }

// Mask returns the current NIMASK level.
func (c *ITC) Mask() uint32 { return c.niMask }
