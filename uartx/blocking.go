// uartx/blocking.go

package uartx

import "github.com/jangala-dev/econotag-bsp/mmio"

// SendByte transmits c, busy-waiting until the hardware FIFO has room.
// Bytes still queued by Send are pushed out first so output order is
// preserved. TX interrupts are masked for the duration so the ISR cannot
// interleave writes to UDATA.
func (d *Driver) SendByte(id ID, c byte) error {
	p, err := d.lookup("send byte", id)
	if err != nil {
		return err
	}
	r := p.cfg.Regs
	masked := MTxR.IsSet(r.UCON)
	mmio.SetBits(r.UCON, MTxR.Mask())

	for !p.tx.IsEmpty() {
		d.waitTxSpace(r)
		b, _ := p.tx.Read()
		r.UDATA.Set(uint32(b))
	}
	d.waitTxSpace(r)
	r.UDATA.Set(uint32(c))
	p.dbgTx(1)

	if !masked {
		mmio.ClearBits(r.UCON, MTxR.Mask())
	}
	return nil
}

// ReceiveByte returns the next received byte. A byte already queued by the
// ISR is returned first; otherwise it busy-waits on the hardware FIFO with
// RX interrupts masked.
func (d *Driver) ReceiveByte(id ID) (byte, error) {
	p, err := d.lookup("receive byte", id)
	if err != nil {
		return 0, err
	}
	r := p.cfg.Regs
	mmio.SetBits(r.UCON, MRxR.Mask())
	defer mmio.ClearBits(r.UCON, MRxR.Mask())

	if b, ok := p.rx.Read(); ok {
		return b, nil
	}
	for Count.Get(r.URXCON) == 0 {
		d.yield()
	}
	return byte(r.UDATA.Get()), nil
}

func (d *Driver) waitTxSpace(r *Regs) {
	for Count.Get(r.UTXCON) == 0 {
		d.yield()
	}
}
