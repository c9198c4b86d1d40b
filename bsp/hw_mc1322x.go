// bsp/hw_mc1322x.go

//go:build tinygo && mc1322x && arm7tdmi

package bsp

import (
	"runtime"

	"github.com/jangala-dev/econotag-bsp/board"
	"github.com/jangala-dev/econotag-bsp/gpio"
	"github.com/jangala-dev/econotag-bsp/hal"
	"github.com/jangala-dev/econotag-bsp/itc"
	"github.com/jangala-dev/econotag-bsp/uartx"
)

// Chip is the Hardware of a real MC1322x.
type Chip struct {
	itc   *itc.Regs
	gpio  *gpio.Regs
	uarts [uartx.MaxID]*uartx.Regs
}

// NewChip maps the register blocks at the addresses of info.
func NewChip(info board.Board) *Chip {
	c := &Chip{
		itc:  itc.RegsAt(uintptr(info.ITCBase)),
		gpio: gpio.RegsAt(uintptr(info.GPIOBase)),
	}
	for _, u := range info.UARTs {
		if id := uartx.ID(u.ID - 1); id < uartx.MaxID {
			c.uarts[id] = uartx.RegsAt(uintptr(u.Base))
		}
	}
	return c
}

func (c *Chip) Core() hal.Core                   { return hal.ARMCore{} }
func (c *Chip) ITCRegs() *itc.Regs               { return c.itc }
func (c *Chip) GPIORegs() *gpio.Regs             { return c.gpio }
func (c *Chip) UARTRegs(id uartx.ID) *uartx.Regs { return c.uarts[id] }
func (c *Chip) Yield()                           { runtime.Gosched() }

// Attach makes d the target of the IRQ and FIQ vectors.
func (c *Chip) Attach(d hal.Dispatcher) { dispatcher = d }

var dispatcher hal.Dispatcher

// The startup code's vector table branches here after saving context.

//export bsp_irq
func irqEntry() {
	if dispatcher != nil {
		dispatcher.Dispatch(hal.IRQ)
	}
}

//export bsp_fiq
func fiqEntry() {
	if dispatcher != nil {
		dispatcher.Dispatch(hal.FIQ)
	}
}
