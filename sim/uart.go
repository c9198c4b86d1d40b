// sim/uart.go

package sim

import (
	"github.com/jangala-dev/econotag-bsp/itc"
	"github.com/jangala-dev/econotag-bsp/mmio"
	"github.com/jangala-dev/econotag-bsp/uartx"
)

// UART models one UART: its control registers, both 32-byte FIFOs and the
// line to a Wire. Each tick the transmitter shifts one byte out of the TX
// FIFO and the receiver takes one byte off the wire into the RX FIFO. A
// byte arriving at a full RX FIFO is lost and latches ROE.
type UART struct {
	m   *Machine
	id  uartx.ID
	src itc.Source

	ucon, ucts, ubr  uint32
	rxLevel, txLevel uint32
	sticky           uint32

	rxFIFO, txFIFO []byte

	wire *Wire
	peer *UART
	lost uint64

	regs uartx.Regs
}

func newUART(m *Machine, id uartx.ID, src itc.Source) *UART {
	u := &UART{
		m:       m,
		id:      id,
		src:     src,
		ucon:    uartx.UCONReset,
		rxLevel: uartx.RxLevel,
		txLevel: uartx.TxLevel,
		rxFIFO:  make([]byte, 0, uartx.FIFODepth),
		txFIFO:  make([]byte, 0, uartx.FIFODepth),
		wire:    newWire(),
	}
	u.regs = uartx.Regs{
		UCON:   &mmio.Hooked{OnRead: func() uint32 { return u.ucon }, OnWrite: u.write(func(v uint32) { u.ucon = v & 0xFFFF })},
		USTAT:  &mmio.Hooked{OnRead: u.readStatus},
		UDATA:  &mmio.Hooked{OnRead: u.readData, OnWrite: u.write(u.writeData)},
		URXCON: &mmio.Hooked{OnRead: func() uint32 { return uint32(len(u.rxFIFO)) }, OnWrite: u.write(func(v uint32) { u.rxLevel = uartx.Level.Extract(v) })},
		UTXCON: &mmio.Hooked{OnRead: u.txFree, OnWrite: u.write(func(v uint32) { u.txLevel = uartx.Level.Extract(v) })},
		UCTS:   &mmio.Hooked{OnRead: func() uint32 { return u.ucts }, OnWrite: func(v uint32) { u.ucts = v }},
		UBR:    &mmio.Hooked{OnRead: func() uint32 { return u.ubr }, OnWrite: func(v uint32) { u.ubr = v }},
	}
	return u
}

func (u *UART) write(f func(uint32)) func(uint32) {
	return func(v uint32) {
		f(v)
		u.m.evaluate()
	}
}

func (u *UART) on(f mmio.Field) bool { return f.Extract(u.ucon) != 0 }

func (u *UART) txFree() uint32 { return uint32(uartx.FIFODepth - len(u.txFIFO)) }

func (u *UART) rxReady() bool {
	return u.on(uartx.RxE) && uint32(len(u.rxFIFO)) >= u.rxLevel && len(u.rxFIFO) > 0
}

func (u *UART) txReady() bool {
	return u.on(uartx.TxE) && u.txFree() >= u.txLevel
}

// irq is the interrupt request line of the UART.
func (u *UART) irq() bool {
	return u.rxReady() && !u.on(uartx.MRxR) || u.txReady() && !u.on(uartx.MTxR)
}

func (u *UART) readStatus() uint32 {
	st := u.sticky
	u.sticky = 0
	if u.rxReady() {
		st |= uartx.RxRdy.Mask()
	}
	if u.txReady() {
		st |= uartx.TxRdy.Mask()
	}
	return st
}

func (u *UART) readData() uint32 {
	if len(u.rxFIFO) == 0 {
		u.sticky |= uartx.RUE.Mask()
		return 0
	}
	c := u.rxFIFO[0]
	u.rxFIFO = append(u.rxFIFO[:0], u.rxFIFO[1:]...)
	u.m.evaluate()
	return uint32(c)
}

func (u *UART) writeData(v uint32) {
	if len(u.txFIFO) == uartx.FIFODepth {
		u.sticky |= uartx.TOE.Mask()
		return
	}
	u.txFIFO = append(u.txFIFO, byte(v))
}

func (u *UART) tick() {
	if u.on(uartx.TxE) && len(u.txFIFO) > 0 {
		c := u.txFIFO[0]
		u.txFIFO = append(u.txFIFO[:0], u.txFIFO[1:]...)
		if u.peer != nil {
			u.peer.wire.feed(c)
		} else {
			u.wire.push(c)
		}
	}
	if !u.on(uartx.RxE) {
		return
	}
	c, ok := u.wire.pop()
	if !ok {
		return
	}
	if len(u.rxFIFO) == uartx.FIFODepth {
		u.sticky |= uartx.ROE.Mask()
		u.lost++
		return
	}
	u.rxFIFO = append(u.rxFIFO, c)
}

// Wire returns the line of the UART.
func (u *UART) Wire() *Wire { return u.wire }

// Lost returns the number of bytes dropped on a full RX FIFO.
func (u *UART) Lost() uint64 { return u.lost }

// RxFIFO returns the number of bytes in the RX FIFO.
func (u *UART) RxFIFO() int { return len(u.rxFIFO) }

// TxFIFO returns the number of bytes in the TX FIFO.
func (u *UART) TxFIFO() int { return len(u.txFIFO) }

// Levels returns the RX and TX trigger levels last written by the driver.
func (u *UART) Levels() (rx, tx uint32) { return u.rxLevel, u.txLevel }

// Connect cross-wires two UARTs, typically of two machines: what one
// transmits the other receives. Their own wires stop seeing output.
func Connect(a, b *UART) {
	a.peer, b.peer = b, a
}
