// gpio/gpio.go

// Package gpio drives the MC1322x general purpose I/O banks.
//
// Pins are numbered 0..63. Pin n lives in port n/32 at bit n%32. Every call
// validates its port, pin and function arguments and returns
// hal.InvalidParameter when one is out of range, leaving the hardware
// untouched.
package gpio

import (
	"fmt"

	"github.com/jangala-dev/econotag-bsp/hal"
)

// Port is a 32-pin GPIO bank.
type Port uint8

const (
	Port0 Port = iota
	Port1

	MaxPort
)

// Pin is a GPIO pin number.
type Pin uint8

// MaxPin is the number of GPIO pins.
const MaxPin Pin = 64

// Port returns the bank holding p.
func (p Pin) Port() Port { return Port(p / 32) }

// Mask returns the bit of p inside its port registers.
func (p Pin) Mask() uint32 { return 1 << (p % 32) }

// Func selects what drives a pin.
type Func uint8

const (
	FuncNormal Func = iota
	FuncAlt1
	FuncAlt2
	FuncAlt3

	MaxFunc
)

// GPIO is the pin controller.
type GPIO struct {
	regs *Regs
}

// New returns a controller over regs.
func New(regs *Regs) *GPIO { return &GPIO{regs: regs} }

func checkPort(op string, port Port) error {
	if port >= MaxPort {
		return fmt.Errorf("gpio %s port %d: %w", op, port, hal.InvalidParameter)
	}
	return nil
}

func checkPin(op string, pin Pin) error {
	if pin >= MaxPin {
		return fmt.Errorf("gpio %s pin %d: %w", op, pin, hal.InvalidParameter)
	}
	return nil
}

// SetPortDirInput makes the pins of port selected by mask inputs.
func (g *GPIO) SetPortDirInput(port Port, mask uint32) error {
	if err := checkPort("dir input", port); err != nil {
		return err
	}
	g.regs.PadDirReset[port].Set(mask)
	return nil
}

// SetPortDirOutput makes the pins of port selected by mask outputs.
func (g *GPIO) SetPortDirOutput(port Port, mask uint32) error {
	if err := checkPort("dir output", port); err != nil {
		return err
	}
	g.regs.PadDirSet[port].Set(mask)
	return nil
}

// SetPinDirInput makes pin an input.
func (g *GPIO) SetPinDirInput(pin Pin) error {
	if err := checkPin("dir input", pin); err != nil {
		return err
	}
	return g.SetPortDirInput(pin.Port(), pin.Mask())
}

// SetPinDirOutput makes pin an output.
func (g *GPIO) SetPinDirOutput(pin Pin) error {
	if err := checkPin("dir output", pin); err != nil {
		return err
	}
	return g.SetPortDirOutput(pin.Port(), pin.Mask())
}

// SetPort drives the pins of port selected by mask high.
func (g *GPIO) SetPort(port Port, mask uint32) error {
	if err := checkPort("set", port); err != nil {
		return err
	}
	g.regs.DataSet[port].Set(mask)
	return nil
}

// ClearPort drives the pins of port selected by mask low.
func (g *GPIO) ClearPort(port Port, mask uint32) error {
	if err := checkPort("clear", port); err != nil {
		return err
	}
	g.regs.DataReset[port].Set(mask)
	return nil
}

// SetPin drives pin high.
func (g *GPIO) SetPin(pin Pin) error {
	if err := checkPin("set", pin); err != nil {
		return err
	}
	return g.SetPort(pin.Port(), pin.Mask())
}

// ClearPin drives pin low.
func (g *GPIO) ClearPin(pin Pin) error {
	if err := checkPin("clear", pin); err != nil {
		return err
	}
	return g.ClearPort(pin.Port(), pin.Mask())
}

// GetPort reads the pin levels of port.
func (g *GPIO) GetPort(port Port) (uint32, error) {
	if err := checkPort("get", port); err != nil {
		return 0, err
	}
	return g.regs.Data[port].Get(), nil
}

// GetPin reads the level of pin.
func (g *GPIO) GetPin(pin Pin) (bool, error) {
	if err := checkPin("get", pin); err != nil {
		return false, err
	}
	v, _ := g.GetPort(pin.Port())
	return v&pin.Mask() != 0, nil
}

// SetPortFunc assigns fn to every pin of port selected by mask.
func (g *GPIO) SetPortFunc(port Port, fn Func, mask uint32) error {
	if err := checkPort("set func", port); err != nil {
		return err
	}
	if fn >= MaxFunc {
		return fmt.Errorf("gpio set func %d: %w", fn, hal.InvalidParameter)
	}
	for bit := Pin(0); bit < 32; bit++ {
		if mask&(1<<bit) != 0 {
			g.setFunc(Pin(port)*32+bit, fn)
		}
	}
	return nil
}

// SetPinFunc assigns fn to pin.
func (g *GPIO) SetPinFunc(pin Pin, fn Func) error {
	if err := checkPin("set func", pin); err != nil {
		return err
	}
	if fn >= MaxFunc {
		return fmt.Errorf("gpio set func %d: %w", fn, hal.InvalidParameter)
	}
	g.setFunc(pin, fn)
	return nil
}

// PinFunc returns the function currently assigned to pin.
func (g *GPIO) PinFunc(pin Pin) (Func, error) {
	if err := checkPin("get func", pin); err != nil {
		return 0, err
	}
	w, f := funcField(pin)
	return Func(f.Get(g.regs.FuncSel[w])), nil
}

func (g *GPIO) setFunc(pin Pin, fn Func) {
	w, f := funcField(pin)
	f.Set(g.regs.FuncSel[w], uint32(fn))
}
