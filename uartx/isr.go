// uartx/isr.go

package uartx

import "github.com/jangala-dev/econotag-bsp/mmio"

// service is the interrupt handler of one port.
//
// RX: drain the FIFO into the RX ring until the ring is full or the FIFO is
// empty, run the callback, then mask RX while the ring stays full. Bytes
// arriving meanwhile pile up in the FIFO and overflow there.
//
// TX: fill the FIFO from the TX ring, run the callback, then mask TX once
// the ring is empty. Send unmasks it again.
func (d *Driver) service(p *port) {
	r := p.cfg.Regs
	st := r.USTAT.Get()
	ucon := r.UCON.Get()
	p.dbgISR(st)

	if RxRdy.Extract(st) != 0 && MRxR.Extract(ucon) == 0 {
		n := 0
		for !p.rx.IsFull() && Count.Get(r.URXCON) > 0 {
			p.rx.Write(byte(r.UDATA.Get()))
			n++
		}
		p.dbgRx(n)
		if p.rxCallback != nil {
			p.rxCallback()
		}
		if p.rx.IsFull() {
			mmio.SetBits(r.UCON, MRxR.Mask())
			p.dbgBackpressure()
		}
	}

	if TxRdy.Extract(st) != 0 && MTxR.Extract(ucon) == 0 {
		n := 0
		for !p.tx.IsEmpty() && Count.Get(r.UTXCON) > 0 {
			b, _ := p.tx.Read()
			r.UDATA.Set(uint32(b))
			n++
		}
		p.dbgTx(n)
		if p.txCallback != nil {
			p.txCallback()
		}
		if p.tx.IsEmpty() {
			mmio.SetBits(r.UCON, MTxR.Mask())
			p.dbgTxIdle()
		}
	}
}
