// sim/machine.go

// Package sim is a host model of the MC1322x peripherals the board support
// package drives: the ARM7 interrupt mask bits, the interrupt controller
// arbiter, the GPIO banks and both UARTs with their FIFOs and wire.
//
// Register blocks handed out by a Machine are the same mmio.Register32
// structs the drivers use on the target, backed by the model instead of
// fixed addresses. Every register write re-evaluates the interrupt lines and,
// when the modelled CPU is not masking them, delivers IRQ and FIQ traps
// synchronously through the attached exception table. Time only advances
// in Tick, where each UART shifts one byte out to its wire and one byte in.
//
// A Machine is not safe for concurrent use: the goroutine playing the CPU
// owns it. Wire endpoints are the exception and may be used from any
// goroutine.
package sim

import (
	"github.com/golang/glog"

	"github.com/jangala-dev/econotag-bsp/gpio"
	"github.com/jangala-dev/econotag-bsp/hal"
	"github.com/jangala-dev/econotag-bsp/itc"
	"github.com/jangala-dev/econotag-bsp/uartx"
)

// MaxDeliveries bounds the traps delivered by one evaluation. Reaching it
// means a level-triggered source is never cleared by its handler.
const MaxDeliveries = 4096

// Machine is one simulated MC1322x.
type Machine struct {
	cpu   CPU
	itc   *ITC
	gpio  *GPIO
	uarts [uartx.MaxID]*UART

	x     hal.Dispatcher
	ticks uint64
	storm bool
}

// New returns a machine in its reset state: interrupts masked at the CPU,
// every source disabled, UARTs idle with nothing on their wires.
func New() *Machine {
	m := &Machine{}
	m.cpu = CPU{m: m, mask: hal.AllMasked}
	m.itc = newITC(m)
	m.gpio = newGPIO()
	m.uarts[uartx.UART1] = newUART(m, uartx.UART1, itc.UART1)
	m.uarts[uartx.UART2] = newUART(m, uartx.UART2, itc.UART2)
	return m
}

// Attach connects the trap table. Until then interrupts are never
// delivered.
func (m *Machine) Attach(x hal.Dispatcher) {
	m.x = x
	m.evaluate()
}

// Core returns the CPU mask boundary.
func (m *Machine) Core() hal.Core { return &m.cpu }

// CPU returns the modelled processor.
func (m *Machine) CPU() *CPU { return &m.cpu }

// ITCRegs returns the interrupt controller register block.
func (m *Machine) ITCRegs() *itc.Regs { return &m.itc.regs }

// GPIORegs returns the GPIO register block.
func (m *Machine) GPIORegs() *gpio.Regs { return &m.gpio.regs }

// UARTRegs returns the register block of id.
func (m *Machine) UARTRegs(id uartx.ID) *uartx.Regs {
	if id >= uartx.MaxID {
		return nil
	}
	return &m.uarts[id].regs
}

// ITC returns the interrupt controller model.
func (m *Machine) ITC() *ITC { return m.itc }

// GPIO returns the GPIO model.
func (m *Machine) GPIO() *GPIO { return m.gpio }

// UART returns the model of id.
func (m *Machine) UART(id uartx.ID) *UART {
	if id >= uartx.MaxID {
		return nil
	}
	return m.uarts[id]
}

// Yield advances time by one tick. Drivers call it from busy-wait loops.
func (m *Machine) Yield() { m.Tick() }

// Tick advances every UART by one character time and delivers whatever
// interrupts result.
func (m *Machine) Tick() {
	m.ticks++
	for _, u := range m.uarts {
		u.tick()
	}
	m.evaluate()
}

// Run ticks n times.
func (m *Machine) Run(n int) {
	for i := 0; i < n; i++ {
		m.Tick()
	}
}

// RunUntil ticks until cond holds or max ticks have elapsed, and reports
// whether cond held.
func (m *Machine) RunUntil(cond func() bool, max int) bool {
	for i := 0; i < max; i++ {
		if cond() {
			return true
		}
		m.Tick()
	}
	return cond()
}

// Ticks returns the number of ticks since New.
func (m *Machine) Ticks() uint64 { return m.ticks }

// Storm reports whether an evaluation ever hit MaxDeliveries.
func (m *Machine) Storm() bool { return m.storm }

// peripheralLines returns the raw interrupt request of every peripheral, one
// bit per source.
func (m *Machine) peripheralLines() uint32 {
	var lines uint32
	for _, u := range m.uarts {
		if u.irq() {
			lines |= 1 << u.src
		}
	}
	return lines
}

// evaluate delivers pending traps the CPU is not masking. FIQ wins over
// IRQ. Entry masks the taken class (FIQ entry masks both) and the previous
// mask is reinstated on return, so delivery nests only where a handler
// unmasks the CPU itself.
func (m *Machine) evaluate() {
	if m.x == nil {
		return
	}
	for n := 0; ; n++ {
		if n == MaxDeliveries {
			if !m.storm {
				glog.Warningf("sim: interrupt storm, %d deliveries without the line clearing", n)
			}
			m.storm = true
			return
		}
		fiq, irq := m.itc.lines()
		switch {
		case fiq && !m.cpu.mask.FIQ():
			m.cpu.enter(hal.FIQ, hal.AllMasked)
		case irq && !m.cpu.mask.IRQ():
			m.cpu.enter(hal.IRQ, m.cpu.mask|hal.IRQMasked)
		default:
			return
		}
	}
}
