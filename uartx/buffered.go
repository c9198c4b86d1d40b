// uartx/buffered.go

package uartx

import (
	"fmt"

	"github.com/jangala-dev/econotag-bsp/hal"
	"github.com/jangala-dev/econotag-bsp/mmio"
)

// Send queues as much of buf as fits in the TX ring and returns the number
// of bytes queued. It never blocks; a short count means the ring is full.
// A nil buf fails with hal.InvalidArgument.
func (d *Driver) Send(id ID, buf []byte) (int, error) {
	p, err := d.lookup("send", id)
	if err != nil {
		return 0, err
	}
	if buf == nil {
		return 0, fmt.Errorf("uart send %v: nil buffer: %w", id, hal.InvalidArgument)
	}
	r := p.cfg.Regs
	mmio.SetBits(r.UCON, MTxR.Mask())
	n := p.tx.WriteFrom(buf)
	if !p.tx.IsEmpty() {
		mmio.ClearBits(r.UCON, MTxR.Mask())
	}
	return n, nil
}

// Receive copies up to len(buf) bytes already queued by the ISR and returns
// how many were copied. It never blocks. RX interrupts are unmasked on
// return, which also lifts backpressure once the ring has room.
// A nil buf fails with hal.InvalidArgument.
func (d *Driver) Receive(id ID, buf []byte) (int, error) {
	p, err := d.lookup("receive", id)
	if err != nil {
		return 0, err
	}
	if buf == nil {
		return 0, fmt.Errorf("uart receive %v: nil buffer: %w", id, hal.InvalidArgument)
	}
	r := p.cfg.Regs
	mmio.SetBits(r.UCON, MRxR.Mask())
	n := p.rx.ReadInto(buf)
	mmio.ClearBits(r.UCON, MRxR.Mask())
	return n, nil
}

// SetReceiveCallback installs fn to run after each RX interrupt. Nil
// removes it.
func (d *Driver) SetReceiveCallback(id ID, fn Callback) error {
	p, err := d.lookup("set receive callback", id)
	if err != nil {
		return err
	}
	r := p.cfg.Regs
	masked := MRxR.IsSet(r.UCON)
	mmio.SetBits(r.UCON, MRxR.Mask())
	p.rxCallback = fn
	if !masked {
		mmio.ClearBits(r.UCON, MRxR.Mask())
	}
	return nil
}

// SetSendCallback installs fn to run after each TX interrupt. Nil removes
// it.
func (d *Driver) SetSendCallback(id ID, fn Callback) error {
	p, err := d.lookup("set send callback", id)
	if err != nil {
		return err
	}
	r := p.cfg.Regs
	masked := MTxR.IsSet(r.UCON)
	mmio.SetBits(r.UCON, MTxR.Mask())
	p.txCallback = fn
	if !masked {
		mmio.ClearBits(r.UCON, MTxR.Mask())
	}
	return nil
}

// Buffered returns the number of bytes waiting in the RX ring.
func (d *Driver) Buffered(id ID) int {
	p, err := d.lookup("buffered", id)
	if err != nil {
		return 0
	}
	return p.rx.Len()
}

// TxPending returns the number of bytes waiting in the TX ring.
func (d *Driver) TxPending(id ID) int {
	p, err := d.lookup("tx pending", id)
	if err != nil {
		return 0
	}
	return p.tx.Len()
}

// TxFree returns the room left in the TX ring.
func (d *Driver) TxFree(id ID) int {
	p, err := d.lookup("tx free", id)
	if err != nil {
		return 0
	}
	return p.tx.Free()
}
