// uartx/uartx.go

// Package uartx provides an interrupt-driven driver for the two MC1322x
// UARTs.
//
// Each port owns a software RX ring and a software TX ring sitting between
// the application and the 32-byte hardware FIFOs. The ISR moves bytes
// between rings and FIFOs; the foreground touches a ring only with the
// matching interrupt condition (MRxR or MTxR) masked, so each ring always
// has one producer and one consumer running at a time.
//
// Two APIs sit on top. SendByte and ReceiveByte are blocking byte-at-a-time
// calls that busy-wait on the hardware. Send and Receive are non-blocking
// buffered calls that return how many bytes were transferred; Port wraps
// them as an io.ReadWriter.
package uartx

import (
	"fmt"
	"runtime"

	"github.com/golang/glog"

	"github.com/jangala-dev/econotag-bsp/cbuf"
	"github.com/jangala-dev/econotag-bsp/gpio"
	"github.com/jangala-dev/econotag-bsp/hal"
	"github.com/jangala-dev/econotag-bsp/itc"
	"github.com/jangala-dev/econotag-bsp/mmio"
)

// ID names a UART.
type ID uint8

const (
	UART1 ID = iota
	UART2

	// MaxID is the number of UARTs.
	MaxID
)

func (id ID) String() string {
	if id < MaxID {
		return fmt.Sprintf("uart%d", id+1)
	}
	return fmt.Sprintf("uart(%d)", uint8(id))
}

// BufferSize is the capacity of each software ring.
const BufferSize = 256

// DefaultCoreClock is the MC1322x peripheral clock.
const DefaultCoreClock = 24000000

// Callback runs in interrupt context after the ISR has moved data. It must
// be short.
type Callback func()

// Pins are the pads routed to a UART.
type Pins struct {
	TX, RX, CTS, RTS gpio.Pin
}

// PortConfig describes where a UART lives and how its FIFOs trigger.
type PortConfig struct {
	Regs   *Regs
	Source itc.Source
	Pins   Pins

	// RxLevel and TxLevel are the FIFO trigger levels written at Init.
	// Zero means the package default of the same name.
	RxLevel, TxLevel uint32
}

// DefaultPorts returns the port table of the MC1322x for the given register
// blocks.
func DefaultPorts(uart1, uart2 *Regs) [MaxID]*PortConfig {
	return [MaxID]*PortConfig{
		{Regs: uart1, Source: itc.UART1, Pins: Pins{TX: 14, RX: 15, CTS: 16, RTS: 17}},
		{Regs: uart2, Source: itc.UART2, Pins: Pins{TX: 18, RX: 19, CTS: 20, RTS: 21}},
	}
}

// Config wires a Driver to the rest of the board.
type Config struct {
	ITC   *itc.Controller
	GPIO  *gpio.GPIO
	Ports [MaxID]*PortConfig // nil entries are absent ports

	// CoreClock is the peripheral clock in Hz. Zero means DefaultCoreClock.
	CoreClock uint32
	// Yield runs on every iteration of a busy-wait loop. Nil means
	// runtime.Gosched.
	Yield func()
}

type port struct {
	id         ID
	cfg        PortConfig
	name       string
	baud       uint32
	configured bool

	rxStore, txStore [BufferSize]byte
	rx, tx           cbuf.Buffer

	rxCallback, txCallback Callback

	stats Stats
}

// Driver owns every UART of the chip.
type Driver struct {
	itc   *itc.Controller
	gpio  *gpio.GPIO
	clock uint32
	yield func()
	ports [MaxID]*port
}

// New returns a driver. No hardware is touched until Init.
func New(cfg Config) *Driver {
	d := &Driver{itc: cfg.ITC, gpio: cfg.GPIO, clock: cfg.CoreClock, yield: cfg.Yield}
	if d.clock == 0 {
		d.clock = DefaultCoreClock
	}
	if d.yield == nil {
		d.yield = runtime.Gosched
	}
	for i, pc := range cfg.Ports {
		if pc != nil && pc.Regs != nil {
			p := &port{id: ID(i), cfg: *pc}
			if p.cfg.RxLevel == 0 {
				p.cfg.RxLevel = RxLevel
			}
			if p.cfg.TxLevel == 0 {
				p.cfg.TxLevel = TxLevel
			}
			d.ports[i] = p
		}
	}
	return d
}

// Init configures uart for baud and starts interrupt-driven reception.
// It fails with hal.NoSuchDevice for an unknown id and hal.InvalidArgument
// for an empty name, in both cases before touching any register.
func (d *Driver) Init(id ID, baud uint32, name string) error {
	if id >= MaxID || d.ports[id] == nil {
		return fmt.Errorf("uart init %v: %w", id, hal.NoSuchDevice)
	}
	if name == "" {
		return fmt.Errorf("uart init %v: empty name: %w", id, hal.InvalidArgument)
	}
	div, err := BaudDivisor(baud, d.clock)
	if err != nil {
		return fmt.Errorf("uart init %v: %w", id, err)
	}
	p := d.ports[id]
	r := p.cfg.Regs

	r.UCON.Set(UCONReset)
	r.UBR.Set(div.Word())
	mmio.SetBits(r.UCON, TxE.Mask()|RxE.Mask())

	if err := d.routePins(p.cfg.Pins); err != nil {
		return fmt.Errorf("uart init %v: %w", id, err)
	}

	p.rx.Init(p.rxStore[:])
	p.tx.Init(p.txStore[:])

	src := p.cfg.Source
	if err := d.itc.SetHandler(src, hal.HandlerFunc(func() { d.service(p) })); err != nil {
		return fmt.Errorf("uart init %v: %w", id, err)
	}
	if err := d.itc.SetPriority(src, itc.Normal); err != nil {
		return fmt.Errorf("uart init %v: %w", id, err)
	}
	if err := d.itc.EnableInterrupt(src); err != nil {
		return fmt.Errorf("uart init %v: %w", id, err)
	}

	r.URXCON.Set(p.cfg.RxLevel)
	r.UTXCON.Set(p.cfg.TxLevel)

	p.rxCallback, p.txCallback = nil, nil
	p.name, p.baud, p.configured = name, baud, true
	p.resetStats()

	mmio.ClearBits(r.UCON, MRxR.Mask())

	glog.V(1).Infof("uart: %v %q configured at %d baud (inc %d, mod %d)", id, name, baud, div.Inc, div.Mod)
	return nil
}

func (d *Driver) routePins(pins Pins) error {
	for _, pin := range []gpio.Pin{pins.TX, pins.RX, pins.CTS, pins.RTS} {
		if err := d.gpio.SetPinFunc(pin, gpio.FuncAlt1); err != nil {
			return err
		}
	}
	for _, pin := range []gpio.Pin{pins.TX, pins.CTS} {
		if err := d.gpio.SetPinDirOutput(pin); err != nil {
			return err
		}
	}
	for _, pin := range []gpio.Pin{pins.RX, pins.RTS} {
		if err := d.gpio.SetPinDirInput(pin); err != nil {
			return err
		}
	}
	return nil
}

// lookup returns the configured port for id.
func (d *Driver) lookup(op string, id ID) (*port, error) {
	if id >= MaxID || d.ports[id] == nil {
		return nil, fmt.Errorf("uart %s %v: %w", op, id, hal.NoSuchDevice)
	}
	p := d.ports[id]
	if !p.configured {
		return nil, fmt.Errorf("uart %s %v: not initialised: %w", op, id, hal.NoSuchDevice)
	}
	return p, nil
}

// Name returns the name given to Init, or "" for an unconfigured port.
func (d *Driver) Name(id ID) string {
	if id >= MaxID || d.ports[id] == nil {
		return ""
	}
	return d.ports[id].name
}

// Baud returns the rate passed to Init.
func (d *Driver) Baud(id ID) uint32 {
	if id >= MaxID || d.ports[id] == nil {
		return 0
	}
	return d.ports[id].baud
}

// Configured reports whether Init has succeeded for id.
func (d *Driver) Configured(id ID) bool {
	return id < MaxID && d.ports[id] != nil && d.ports[id].configured
}

// DebugRegs returns a copy of the registers of id. Reading USTAT clears its
// sticky error bits.
func (d *Driver) DebugRegs(id ID) (RegsSnapshot, error) {
	if id >= MaxID || d.ports[id] == nil {
		return RegsSnapshot{}, fmt.Errorf("uart regs %v: %w", id, hal.NoSuchDevice)
	}
	r := d.ports[id].cfg.Regs
	return RegsSnapshot{
		UCON:   r.UCON.Get(),
		USTAT:  r.USTAT.Get(),
		URXCON: r.URXCON.Get(),
		UTXCON: r.UTXCON.Get(),
		UCTS:   r.UCTS.Get(),
		UBR:    r.UBR.Get(),
	}, nil
}
