// bsp/bsp.go

// Package bsp brings an MC1322x board up: it builds the exception table,
// the interrupt controller, the GPIO controller and the UART driver over a
// Hardware and wires them together.
package bsp

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/jangala-dev/econotag-bsp/board"
	"github.com/jangala-dev/econotag-bsp/gpio"
	"github.com/jangala-dev/econotag-bsp/hal"
	"github.com/jangala-dev/econotag-bsp/itc"
	"github.com/jangala-dev/econotag-bsp/uartx"
)

// Hardware is the platform a board is brought up on: the real chip, or a
// sim.Machine on a host.
type Hardware interface {
	Core() hal.Core
	ITCRegs() *itc.Regs
	GPIORegs() *gpio.Regs
	UARTRegs(uartx.ID) *uartx.Regs
	// Attach routes CPU traps to d.
	Attach(d hal.Dispatcher)
	// Yield runs inside busy-wait loops.
	Yield()
}

// Board is a running board.
type Board struct {
	Info       board.Board
	HW         Hardware
	Exceptions *hal.Exceptions
	ITC        *itc.Controller
	GPIO       *gpio.GPIO
	UART       *uartx.Driver
}

// Boot brings info up on hw and leaves IRQ and FIQ enabled at the CPU.
// UARTs are left for the application to Init.
func Boot(hw Hardware, info board.Board) (*Board, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	ports, err := Ports(hw, info)
	if err != nil {
		return nil, err
	}

	x := hal.NewExceptions(hw.Core())
	x.DisableInts()

	c := itc.New(hw.ITCRegs())
	c.Init()
	x.Init(c)

	g := gpio.New(hw.GPIORegs())
	for _, led := range []gpio.Pin{gpio.Pin(info.LEDs.Red), gpio.Pin(info.LEDs.Green)} {
		if err := g.SetPinDirOutput(led); err != nil {
			return nil, fmt.Errorf("boot %s: led: %w", info.Name, err)
		}
		_ = g.ClearPin(led)
	}

	d := uartx.New(uartx.Config{
		ITC:       c,
		GPIO:      g,
		Ports:     ports,
		CoreClock: info.CoreClock,
		Yield:     hw.Yield,
	})

	hw.Attach(x)
	x.RestoreInts(0)
	glog.Infof("bsp: %s up, core clock %d Hz", info.Name, info.CoreClock)

	return &Board{Info: info, HW: hw, Exceptions: x, ITC: c, GPIO: g, UART: d}, nil
}

// Ports builds the UART port table of info over the register blocks of hw.
func Ports(hw Hardware, info board.Board) ([uartx.MaxID]*uartx.PortConfig, error) {
	var ports [uartx.MaxID]*uartx.PortConfig
	for _, u := range info.UARTs {
		id := uartx.ID(u.ID - 1)
		if u.ID < 1 || id >= uartx.MaxID {
			return ports, fmt.Errorf("board %s: uart %d: %w", info.Name, u.ID, hal.NoSuchDevice)
		}
		src, err := itc.ParseSource(u.Source)
		if err != nil {
			return ports, fmt.Errorf("board %s: uart %d: %w", info.Name, u.ID, err)
		}
		ports[id] = &uartx.PortConfig{
			Regs:   hw.UARTRegs(id),
			Source: src,
			Pins: uartx.Pins{
				TX:  gpio.Pin(u.Pins.TX),
				RX:  gpio.Pin(u.Pins.RX),
				CTS: gpio.Pin(u.Pins.CTS),
				RTS: gpio.Pin(u.Pins.RTS),
			},
			RxLevel: uint32(info.FIFO.RxLevel),
			TxLevel: uint32(info.FIFO.TxLevel),
		}
	}
	return ports, nil
}

// Console returns the id and rate of the console UART.
func (b *Board) Console() (uartx.ID, uint32) {
	return uartx.ID(b.Info.Console.UART - 1), b.Info.Console.Baud
}

// LED is one of the board LEDs.
type LED uint8

const (
	Red LED = iota
	Green
)

func (b *Board) ledPin(l LED) gpio.Pin {
	if l == Green {
		return gpio.Pin(b.Info.LEDs.Green)
	}
	return gpio.Pin(b.Info.LEDs.Red)
}

// SetLED switches l on or off.
func (b *Board) SetLED(l LED, on bool) {
	if on {
		_ = b.GPIO.SetPin(b.ledPin(l))
	} else {
		_ = b.GPIO.ClearPin(b.ledPin(l))
	}
}

// LEDOn reports whether l is lit.
func (b *Board) LEDOn(l LED) bool {
	on, _ := b.GPIO.GetPin(b.ledPin(l))
	return on
}
