// cmd/econosim/selftest.go

package main

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"hash"
	"io"

	"github.com/spf13/cobra"

	"github.com/jangala-dev/econotag-bsp/bsp"
	"github.com/jangala-dev/econotag-bsp/sim"
	"github.com/jangala-dev/econotag-bsp/uartx"
)

var (
	selftestOpts = struct {
		count int
		baud  uint32
	}{}

	selftestCmd = &cobra.Command{
		Use:   "selftest",
		Short: "Cross-wire UART1 and UART2 and check transfers both ways",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, b, err := boot(boardName)
			if err != nil {
				return err
			}
			_, fail, err := selfTest(m, b, selftestOpts.count, selftestOpts.baud, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if fail > 0 {
				return fmt.Errorf("%d test(s) failed", fail)
			}
			return nil
		},
	}
)

func init() {
	selftestCmd.Flags().IntVarP(&selftestOpts.count, "count", "n", 4096, "bytes per integrity transfer")
	selftestCmd.Flags().Uint32Var(&selftestOpts.baud, "baud", 115200, "line rate of both ports")
}

func patternA(i int) byte { return byte((i*31 + 0x55) & 0xFF) }
func patternB(i int) byte { return byte((i*17 + 0xA6) & 0xFF) }

func patternHash(gen func(int) byte, n int) []byte {
	h := sha1.New()
	for i := 0; i < n; i++ {
		h.Write([]byte{gen(i)})
	}
	return h.Sum(nil)
}

// stream is one direction of a transfer, pushed through the buffered API.
type stream struct {
	from, to uartx.ID
	gen      func(int) byte
	n        int

	sent, recv int
	sum        hash.Hash
}

func newStream(from, to uartx.ID, gen func(int) byte, n int) *stream {
	return &stream{from: from, to: to, gen: gen, n: n, sum: sha1.New()}
}

func (s *stream) done() bool { return s.recv >= s.n }

// step queues what fits in the TX ring and collects what has arrived.
func (s *stream) step(d *uartx.Driver) error {
	var buf [64]byte
	if s.sent < s.n {
		k := s.n - s.sent
		if k > len(buf) {
			k = len(buf)
		}
		for j := 0; j < k; j++ {
			buf[j] = s.gen(s.sent + j)
		}
		n, err := d.Send(s.from, buf[:k])
		if err != nil {
			return err
		}
		s.sent += n
	}
	n, err := d.Receive(s.to, buf[:])
	if err != nil {
		return err
	}
	s.sum.Write(buf[:n])
	s.recv += n
	return nil
}

// pump runs the machine until every stream is complete or the tick budget
// is spent.
func pump(m *sim.Machine, d *uartx.Driver, budget int, streams ...*stream) error {
	for i := 0; i < budget; i++ {
		complete := true
		for _, s := range streams {
			if err := s.step(d); err != nil {
				return err
			}
			complete = complete && s.done()
		}
		if complete {
			return nil
		}
		m.Tick()
	}
	return fmt.Errorf("timeout after %d ticks", budget)
}

func (s *stream) check() string {
	if s.recv != s.n {
		return fmt.Sprintf("%v->%v got %d of %d bytes", s.from, s.to, s.recv, s.n)
	}
	if !bytes.Equal(s.sum.Sum(nil), patternHash(s.gen, s.n)) {
		return fmt.Sprintf("%v->%v hash mismatch", s.from, s.to)
	}
	return ""
}

// selfTest cross-wires the two UARTs of m and runs the transfer suite,
// printing a report to out.
func selfTest(m *sim.Machine, b *bsp.Board, count int, baud uint32, out io.Writer) (pass, fail int, err error) {
	d := b.UART
	sim.Connect(m.UART(uartx.UART1), m.UART(uartx.UART2))
	for id := uartx.UART1; id < uartx.MaxID; id++ {
		if err := d.Init(id, baud, "selftest-"+id.String()); err != nil {
			return 0, 0, err
		}
	}
	budget := 4*count + 1000

	run := func(name string, f func() string) {
		fmt.Fprintf(out, "\n[Test] %s\n", name)
		if msg := f(); msg == "" {
			fmt.Fprintln(out, "  PASS")
			pass++
		} else {
			fmt.Fprintln(out, "  FAIL:", msg)
			fail++
		}
	}
	transfer := func(streams ...*stream) string {
		if err := pump(m, d, budget, streams...); err != nil {
			return err.Error()
		}
		for _, s := range streams {
			if msg := s.check(); msg != "" {
				return msg
			}
		}
		return ""
	}

	run("uart1 -> uart2 short", func() string {
		return transfer(newStream(uartx.UART1, uartx.UART2, patternA, 16))
	})
	run("uart2 -> uart1 short", func() string {
		return transfer(newStream(uartx.UART2, uartx.UART1, patternB, 16))
	})
	run(fmt.Sprintf("uart1 -> uart2 integrity %d bytes", count), func() string {
		return transfer(newStream(uartx.UART1, uartx.UART2, patternA, count))
	})
	run(fmt.Sprintf("uart2 -> uart1 integrity %d bytes", count), func() string {
		return transfer(newStream(uartx.UART2, uartx.UART1, patternB, count))
	})
	run(fmt.Sprintf("full duplex %d bytes each way", count), func() string {
		return transfer(
			newStream(uartx.UART1, uartx.UART2, patternA, count),
			newStream(uartx.UART2, uartx.UART1, patternB, count),
		)
	})
	run("blocking SendByte/ReceiveByte", func() string {
		msg := []byte("level zero\r\n")
		for _, c := range msg {
			if err := d.SendByte(uartx.UART1, c); err != nil {
				return err.Error()
			}
		}
		for i, want := range msg {
			c, err := d.ReceiveByte(uartx.UART2)
			if err != nil {
				return err.Error()
			}
			if c != want {
				return fmt.Sprintf("byte %d: got %q, want %q", i, c, want)
			}
		}
		return ""
	})

	fmt.Fprintf(out, "\nSummary\n  passed = %d\n  failed = %d\n", pass, fail)
	if fail == 0 {
		fmt.Fprintln(out, "PASS")
	} else {
		fmt.Fprintln(out, "FAIL")
	}
	return pass, fail, nil
}
