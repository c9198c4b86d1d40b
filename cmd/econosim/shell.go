// cmd/econosim/shell.go

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/spf13/cobra"

	"github.com/jangala-dev/econotag-bsp/bsp"
	"github.com/jangala-dev/econotag-bsp/itc"
	"github.com/jangala-dev/econotag-bsp/sim"
	"github.com/jangala-dev/econotag-bsp/uartx"
)

var shellCmd = &cobra.Command{
	Use:   "shell [COMMAND ARGS...]",
	Short: "Poke the simulated board interactively",
	Long:  "Boot the board and open a shell over its UARTs, interrupt controller and LEDs. With arguments a single shell command is run.",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, b, err := boot(boardName)
		if err != nil {
			return err
		}
		sh := newShell(&session{m: m, b: b})
		if len(args) > 0 {
			return sh.Process(args...)
		}
		sh.Run()
		return nil
	},
}

// session is the board a shell operates on. Each command writes its
// report to w.
type session struct {
	m *sim.Machine
	b *bsp.Board
}

type shellFunc func(s *session, args []string, w io.Writer) error

type shellCmdDef struct {
	name, help string
	fn         shellFunc
}

var shellCmds = []shellCmdDef{
	{"init", "UART BAUD [NAME]: configure a UART", (*session).initUART},
	{"send", "UART TEXT...: queue text through the TX ring", (*session).send},
	{"recv", "UART [N]: take up to N bytes from the RX ring", (*session).recv},
	{"inject", "UART TEXT...: put text on the line towards the receiver", (*session).inject},
	{"wire", "UART: show and clear what the UART has transmitted", (*session).wire},
	{"tick", "[N]: advance N character times", (*session).tick},
	{"force", "SOURCE: force an interrupt source", (*session).force},
	{"unforce", "SOURCE: release a forced source", (*session).unforce},
	{"enable", "SOURCE: enable an interrupt source", (*session).enable},
	{"disable", "SOURCE: disable an interrupt source", (*session).disable},
	{"regs", "UART: dump UART registers", (*session).regs},
	{"stats", "UART: driver counters (uartxdebug builds)", (*session).stats},
	{"leds", "[red|green on|off]: show or set the LEDs", (*session).leds},
}

type ctxWriter struct{ c *ishell.Context }

func (w ctxWriter) Write(p []byte) (int, error) {
	w.c.Print(string(p))
	return len(p), nil
}

func newShell(s *session) *ishell.Shell {
	sh := ishell.New()
	sh.SetPrompt(s.b.Info.Name + " > ")
	for _, def := range shellCmds {
		fn := def.fn
		sh.AddCmd(&ishell.Cmd{
			Name: def.name,
			Help: def.help,
			Func: func(c *ishell.Context) {
				if err := fn(s, c.Args, ctxWriter{c}); err != nil {
					c.Err(err)
				}
			},
		})
	}
	return sh
}

// exec runs one shell command by name.
func (s *session) exec(w io.Writer, name string, args ...string) error {
	for _, def := range shellCmds {
		if def.name == name {
			return def.fn(s, args, w)
		}
	}
	return fmt.Errorf("unknown command %q", name)
}

func need(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

func (s *session) initUART(args []string, w io.Writer) error {
	if err := need(args, 2, "init UART BAUD [NAME]"); err != nil {
		return err
	}
	id, err := parseUART(args[0])
	if err != nil {
		return err
	}
	baud, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return err
	}
	name := "shell"
	if len(args) > 2 {
		name = args[2]
	}
	if err := s.b.UART.Init(id, uint32(baud), name); err != nil {
		return err
	}
	fmt.Fprintf(w, "%v: %s at %d baud\n", id, name, baud)
	return nil
}

func (s *session) send(args []string, w io.Writer) error {
	if err := need(args, 2, "send UART TEXT..."); err != nil {
		return err
	}
	id, err := parseUART(args[0])
	if err != nil {
		return err
	}
	text := strings.Join(args[1:], " ")
	n, err := s.b.UART.Send(id, []byte(text))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "queued %d of %d bytes\n", n, len(text))
	return nil
}

func (s *session) recv(args []string, w io.Writer) error {
	if err := need(args, 1, "recv UART [N]"); err != nil {
		return err
	}
	id, err := parseUART(args[0])
	if err != nil {
		return err
	}
	n := uartx.BufferSize
	if len(args) > 1 {
		if n, err = strconv.Atoi(args[1]); err != nil {
			return err
		}
	}
	buf := make([]byte, n)
	got, err := s.b.UART.Receive(id, buf)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%q\n", buf[:got])
	return nil
}

func (s *session) inject(args []string, w io.Writer) error {
	if err := need(args, 2, "inject UART TEXT..."); err != nil {
		return err
	}
	id, err := parseUART(args[0])
	if err != nil {
		return err
	}
	wire := s.m.UART(id).Wire()
	wire.Inject(strings.Join(args[1:], " "))
	fmt.Fprintf(w, "%d bytes pending on the line\n", wire.Pending())
	return nil
}

func (s *session) wire(args []string, w io.Writer) error {
	if err := need(args, 1, "wire UART"); err != nil {
		return err
	}
	id, err := parseUART(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%q\n", s.m.UART(id).Wire().Drain())
	return nil
}

func (s *session) tick(args []string, w io.Writer) error {
	n := 1
	if len(args) > 0 {
		var err error
		if n, err = strconv.Atoi(args[0]); err != nil {
			return err
		}
	}
	s.m.Run(n)
	fmt.Fprintf(w, "tick %d\n", s.m.Ticks())
	return nil
}

func (s *session) source(args []string, usage string) (itc.Source, error) {
	if err := need(args, 1, usage); err != nil {
		return 0, err
	}
	return itc.ParseSource(args[0])
}

func (s *session) force(args []string, w io.Writer) error {
	src, err := s.source(args, "force SOURCE")
	if err != nil {
		return err
	}
	if err := s.b.ITC.ForceInterrupt(src); err != nil {
		return err
	}
	fmt.Fprintf(w, "%v forced, serviced %d times\n", src, s.b.ITC.Serviced(src))
	return nil
}

func (s *session) unforce(args []string, w io.Writer) error {
	src, err := s.source(args, "unforce SOURCE")
	if err != nil {
		return err
	}
	if err := s.b.ITC.UnforceInterrupt(src); err != nil {
		return err
	}
	fmt.Fprintf(w, "%v released\n", src)
	return nil
}

func (s *session) enable(args []string, w io.Writer) error {
	src, err := s.source(args, "enable SOURCE")
	if err != nil {
		return err
	}
	if err := s.b.ITC.EnableInterrupt(src); err != nil {
		return err
	}
	fmt.Fprintf(w, "%v enabled\n", src)
	return nil
}

func (s *session) disable(args []string, w io.Writer) error {
	src, err := s.source(args, "disable SOURCE")
	if err != nil {
		return err
	}
	if err := s.b.ITC.DisableInterrupt(src); err != nil {
		return err
	}
	fmt.Fprintf(w, "%v disabled\n", src)
	return nil
}

func (s *session) regs(args []string, w io.Writer) error {
	if err := need(args, 1, "regs UART"); err != nil {
		return err
	}
	id, err := parseUART(args[0])
	if err != nil {
		return err
	}
	r, err := s.b.UART.DebugRegs(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "UCON=%#04x USTAT=%#02x URXCON=%d UTXCON=%d UCTS=%#x UBR=%#08x\n",
		r.UCON, r.USTAT, r.URXCON, r.UTXCON, r.UCTS, r.UBR)
	fmt.Fprintf(w, "rx ring %d, tx ring %d, rx fifo %d, tx fifo %d, lost %d\n",
		s.b.UART.Buffered(id), s.b.UART.TxPending(id),
		s.m.UART(id).RxFIFO(), s.m.UART(id).TxFIFO(), s.m.UART(id).Lost())
	return nil
}

func (s *session) stats(args []string, w io.Writer) error {
	if err := need(args, 1, "stats UART"); err != nil {
		return err
	}
	id, err := parseUART(args[0])
	if err != nil {
		return err
	}
	if !uartx.DebugEnabled {
		fmt.Fprintln(w, "counters need a build with -tags uartxdebug")
		return nil
	}
	st := s.b.UART.DebugStats(id)
	fmt.Fprintf(w, "ISR:    count=%d rx=%d tx=%d maxdrain=%d\n", st.ISRCount, st.RxBytes, st.TxBytes, st.RxMaxDrain)
	fmt.Fprintf(w, "Flow:   backpressure=%d txidle=%d rxhigh=%d\n", st.Backpressure, st.TxIdle, st.RxHighWater)
	fmt.Fprintf(w, "Errors: ROE=%d TOE=%d RUE=%d\n", st.ErrRxOverrun, st.ErrTxOverrun, st.ErrRxUnderrun)
	return nil
}

func (s *session) leds(args []string, w io.Writer) error {
	if len(args) >= 2 {
		led := bsp.Red
		switch args[0] {
		case "red":
		case "green":
			led = bsp.Green
		default:
			return fmt.Errorf("unknown led %q", args[0])
		}
		s.b.SetLED(led, args[1] == "on" || args[1] == "1")
	}
	fmt.Fprintf(w, "red=%v green=%v\n", s.b.LEDOn(bsp.Red), s.b.LEDOn(bsp.Green))
	return nil
}
