// apps/ledkeys/ledkeys.go

// Package ledkeys is the LED/keyboard demo firmware: keys typed on the
// console UART control the board LEDs. 'g' acts on the green LED, 'r' on
// the red one, anything else is answered with an error line.
//
// In Blocking mode the main loop reads keys with ReceiveByte and toggles
// the LEDs directly. In Interrupt mode the main loop only blinks the LEDs;
// a receive callback toggles which of them blink.
package ledkeys

import (
	"context"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/jangala-dev/econotag-bsp/bsp"
	"github.com/jangala-dev/econotag-bsp/uartx"
)

// ErrorMessage is sent back for any key other than 'g' or 'r'.
const ErrorMessage = "Error: only the [g] and [r] keys are accepted\r\n"

// Mode selects which UART API the demo uses.
type Mode uint8

const (
	Interrupt Mode = iota
	Blocking
)

func (m Mode) String() string {
	if m == Blocking {
		return "blocking"
	}
	return "interrupt"
}

// App is one instance of the demo.
type App struct {
	b    *bsp.Board
	id   uartx.ID
	mode Mode

	// Written by the receive callback, read by the blink loop.
	blinkRed, blinkGreen atomic.Bool
	lit                  bool
}

// New returns the demo running on uart of b.
func New(b *bsp.Board, id uartx.ID, mode Mode) *App {
	a := &App{b: b, id: id, mode: mode}
	a.blinkRed.Store(true)
	a.blinkGreen.Store(true)
	return a
}

// Start configures the UART if needed and, in Interrupt mode, installs the
// receive callback.
func (a *App) Start(baud uint32) error {
	if !a.b.UART.Configured(a.id) {
		if err := a.b.UART.Init(a.id, baud, "ledkeys"); err != nil {
			return err
		}
	}
	a.b.SetLED(bsp.Red, false)
	a.b.SetLED(bsp.Green, false)
	if a.mode == Interrupt {
		return a.b.UART.SetReceiveCallback(a.id, a.onReceive)
	}
	return nil
}

// onReceive runs in interrupt context once per RX interrupt.
func (a *App) onReceive() {
	var c [1]byte
	for {
		n, err := a.b.UART.Receive(a.id, c[:])
		if err != nil || n == 0 {
			return
		}
		switch c[0] {
		case 'g':
			a.blinkGreen.Store(!a.blinkGreen.Load())
		case 'r':
			a.blinkRed.Store(!a.blinkRed.Load())
		default:
			_, _ = a.b.UART.Send(a.id, []byte(ErrorMessage))
		}
	}
}

// Blinking reports whether l takes part in the blink cycle.
func (a *App) Blinking(l bsp.LED) bool {
	if l == bsp.Green {
		return a.blinkGreen.Load()
	}
	return a.blinkRed.Load()
}

// Step advances the blink cycle by half a period: the first call lights
// every blinking LED, the next one turns both off.
func (a *App) Step() {
	a.lit = !a.lit
	if !a.lit {
		a.b.SetLED(bsp.Green, false)
		a.b.SetLED(bsp.Red, false)
		return
	}
	if a.blinkGreen.Load() {
		a.b.SetLED(bsp.Green, true)
	}
	if a.blinkRed.Load() {
		a.b.SetLED(bsp.Red, true)
	}
}

// ServeKey waits for one key and acts on it, toggling the LED directly.
func (a *App) ServeKey() error {
	c, err := a.b.UART.ReceiveByte(a.id)
	if err != nil {
		return err
	}
	switch c {
	case 'g':
		a.b.SetLED(bsp.Green, !a.b.LEDOn(bsp.Green))
	case 'r':
		a.b.SetLED(bsp.Red, !a.b.LEDOn(bsp.Red))
	default:
		for i := 0; i < len(ErrorMessage); i++ {
			if err := a.b.UART.SendByte(a.id, ErrorMessage[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Run drives the demo until ctx is done. pause is called between blink
// steps. In Blocking mode ctx is only checked between keys.
func (a *App) Run(ctx context.Context, pause func()) error {
	glog.Infof("ledkeys: running on %v in %v mode", a.id, a.mode)
	for ctx.Err() == nil {
		if a.mode == Blocking {
			if err := a.ServeKey(); err != nil {
				return err
			}
			continue
		}
		a.Step()
		pause()
	}
	return ctx.Err()
}
