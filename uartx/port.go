// uartx/port.go

package uartx

import "io"

// Port adapts one UART to io.Reader and io.Writer on top of the buffered
// API. Blocking calls busy-wait through the driver's Yield hook.
type Port struct {
	d  *Driver
	id ID
}

var (
	_ io.ReadWriter = (*Port)(nil)
	_ io.ByteReader = (*Port)(nil)
	_ io.ByteWriter = (*Port)(nil)
)

// Port returns the io adapter of id. Calls fail until id is initialised.
func (d *Driver) Port(id ID) *Port { return &Port{d: d, id: id} }

// ID returns the UART behind p.
func (p *Port) ID() ID { return p.id }

// TryRead returns immediately with up to len(b) buffered bytes. Zero means
// nothing is available now.
func (p *Port) TryRead(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	n, _ := p.d.Receive(p.id, b)
	return n
}

// Read implements io.Reader. It waits until at least one byte is available
// and never returns io.EOF.
func (p *Port) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	for {
		n, err := p.d.Receive(p.id, b)
		if err != nil || n > 0 {
			return n, err
		}
		p.d.yield()
	}
}

// ReadByte waits for a single byte.
func (p *Port) ReadByte() (byte, error) {
	var b [1]byte
	_, err := p.Read(b[:])
	return b[0], err
}

// TryWrite queues up to len(b) bytes without waiting. Zero means the TX
// ring is full.
func (p *Port) TryWrite(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	n, _ := p.d.Send(p.id, b)
	return n
}

// Write implements io.Writer. It waits until every byte of b has been
// queued; it does not wait for the line to drain. Use Flush for that.
func (p *Port) Write(b []byte) (int, error) {
	sent := 0
	for sent < len(b) {
		n, err := p.d.Send(p.id, b[sent:])
		if err != nil {
			return sent, err
		}
		sent += n
		if sent < len(b) {
			p.d.yield()
		}
	}
	return sent, nil
}

// WriteByte queues c, waiting for room.
func (p *Port) WriteByte(c byte) error {
	_, err := p.Write([]byte{c})
	return err
}

// Writev writes the buffers in sequence. It stops on the first error and
// returns the bytes accepted so far.
func (p *Port) Writev(bufs ...[]byte) (int, error) {
	sent := 0
	for _, b := range bufs {
		n, err := p.Write(b)
		sent += n
		if err != nil {
			return sent, err
		}
	}
	return sent, nil
}

// Flush waits until the TX ring and the hardware FIFO are both empty.
func (p *Port) Flush() error {
	port, err := p.d.lookup("flush", p.id)
	if err != nil {
		return err
	}
	for !port.tx.IsEmpty() || Count.Get(port.cfg.Regs.UTXCON) < FIFODepth {
		p.d.yield()
	}
	return nil
}

// Buffered returns the number of bytes ready to read.
func (p *Port) Buffered() int { return p.d.Buffered(p.id) }
