// sim/cpu.go

package sim

import (
	"github.com/golang/glog"

	"github.com/jangala-dev/econotag-bsp/hal"
)

// CPU models the I and F bits of the ARM7 status register. It implements
// hal.Core.
type CPU struct {
	m     *Machine
	mask  hal.IF
	depth int

	irqs, fiqs uint64
}

// InterruptMask implements hal.Core.
func (c *CPU) InterruptMask() hal.IF { return c.mask }

// SetInterruptMask implements hal.Core. Unmasking delivers anything
// pending before it returns.
func (c *CPU) SetInterruptMask(s hal.IF) {
	c.mask = s & hal.AllMasked
	c.m.evaluate()
}

// Depth returns how many traps are currently being handled.
func (c *CPU) Depth() int { return c.depth }

// Delivered returns the number of IRQ and FIQ traps taken.
func (c *CPU) Delivered() (irq, fiq uint64) { return c.irqs, c.fiqs }

func (c *CPU) enter(e hal.Exception, mask hal.IF) {
	saved := c.mask
	c.mask = mask
	c.depth++
	if e == hal.FIQ {
		c.fiqs++
	} else {
		c.irqs++
	}
	if glog.V(3) {
		glog.Infof("sim: %v entry, depth %d", e, c.depth)
	}
	c.m.x.Dispatch(e)
	c.depth--
	c.mask = saved
}
