// sim/wire.go

package sim

import (
	"io"
	"sync"
)

// Wire is the far side of a simulated UART line. Bytes written to it arrive
// at the UART receiver one per tick; bytes the UART transmits can be read
// from it. A Wire is safe for concurrent use, so a bridge goroutine can
// pump it while the CPU goroutine runs the machine.
type Wire struct {
	mu     sync.Mutex
	cond   *sync.Cond
	in     []byte // host -> UART RX
	out    []byte // UART TX -> host
	closed bool
}

func newWire() *Wire {
	w := &Wire{}
	w.cond = sync.NewCond(&w.mu)
	return w
}

var _ io.ReadWriteCloser = (*Wire)(nil)

// Write queues p for the receiver. It never blocks.
func (w *Wire) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return 0, io.ErrClosedPipe
	}
	w.in = append(w.in, p...)
	return len(p), nil
}

// Read waits for transmitted bytes and copies them into p. After Close it
// drains what is left and then returns io.EOF.
func (w *Wire) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for len(w.out) == 0 && !w.closed {
		w.cond.Wait()
	}
	if len(w.out) == 0 {
		return 0, io.EOF
	}
	n := copy(p, w.out)
	w.out = w.out[n:]
	return n, nil
}

// Close wakes blocked readers. Later writes fail.
func (w *Wire) Close() error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.cond.Broadcast()
	return nil
}

// Inject is Write without the error, for tests.
func (w *Wire) Inject(s string) { _, _ = w.Write([]byte(s)) }

// Drain returns and removes everything transmitted so far without
// waiting.
func (w *Wire) Drain() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.out
	w.out = nil
	return out
}

// Pending returns the number of bytes not yet taken by the receiver.
func (w *Wire) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.in)
}

func (w *Wire) pop() (byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.in) == 0 {
		return 0, false
	}
	c := w.in[0]
	w.in = w.in[1:]
	return c, true
}

func (w *Wire) push(c byte) {
	w.mu.Lock()
	w.out = append(w.out, c)
	w.mu.Unlock()
	w.cond.Broadcast()
}

// feed delivers c to the receiver side, as a peer's transmitter does.
func (w *Wire) feed(c byte) {
	w.mu.Lock()
	w.in = append(w.in, c)
	w.mu.Unlock()
}
