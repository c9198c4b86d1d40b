// sim/gpio.go

package sim

import (
	"github.com/jangala-dev/econotag-bsp/gpio"
	"github.com/jangala-dev/econotag-bsp/mmio"
)

// GPIO models the pad banks. Reading DATA returns the output latch for
// output pins and the externally driven level for input pins.
type GPIO struct {
	dir   [gpio.MaxPort]uint32
	latch [gpio.MaxPort]uint32
	input [gpio.MaxPort]uint32

	regs gpio.Regs
}

func newGPIO() *GPIO {
	g := &GPIO{}
	for i := range g.regs.FuncSel {
		g.regs.FuncSel[i] = &mmio.Reg{}
	}
	for p := range g.dir {
		dir, latch, input := &g.dir[p], &g.latch[p], &g.input[p]
		g.regs.PadDir[p] = &mmio.Hooked{
			OnRead:  func() uint32 { return *dir },
			OnWrite: func(v uint32) { *dir = v },
		}
		g.regs.Data[p] = &mmio.Hooked{
			OnRead:  func() uint32 { return *latch&*dir | *input&^*dir },
			OnWrite: func(v uint32) { *latch = v },
		}
		g.regs.DataSet[p] = &mmio.Hooked{OnWrite: func(v uint32) { *latch |= v }}
		g.regs.DataReset[p] = &mmio.Hooked{OnWrite: func(v uint32) { *latch &^= v }}
		g.regs.PadDirSet[p] = &mmio.Hooked{OnWrite: func(v uint32) { *dir |= v }}
		g.regs.PadDirReset[p] = &mmio.Hooked{OnWrite: func(v uint32) { *dir &^= v }}
	}
	return g
}

// Output reports whether pin is configured as an output.
func (g *GPIO) Output(pin gpio.Pin) bool {
	return pin < gpio.MaxPin && g.dir[pin.Port()]&pin.Mask() != 0
}

// Latch returns the output latch level of pin, whatever its direction.
func (g *GPIO) Latch(pin gpio.Pin) bool {
	return pin < gpio.MaxPin && g.latch[pin.Port()]&pin.Mask() != 0
}

// Drive sets the external level seen by pin when it is an input.
func (g *GPIO) Drive(pin gpio.Pin, high bool) {
	if pin >= gpio.MaxPin {
		return
	}
	if high {
		g.input[pin.Port()] |= pin.Mask()
	} else {
		g.input[pin.Port()] &^= pin.Mask()
	}
}
