// cmd/econosim/run.go

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jangala-dev/econotag-bsp/apps/ledkeys"
	"github.com/jangala-dev/econotag-bsp/bridge"
	"github.com/jangala-dev/econotag-bsp/sim"
)

var (
	runOpts = struct {
		app    string
		mode   string
		tty    string
		mqtt   string
		ws     string
		origin string
		blink  time.Duration
		tick   time.Duration
	}{}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the demo firmware with its console bridged to the host",
		Long: "Boot the board, start the demo firmware on the console UART and connect the " +
			"far end of the console line to the terminal, an MQTT topic pair or a websocket.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd.Context())
		},
	}
)

func init() {
	addRunFlags(runCmd.Flags())
}

func addRunFlags(f *pflag.FlagSet) {
	f.StringVar(&runOpts.app, "app", "ledkeys", "firmware to run")
	f.StringVar(&runOpts.mode, "mode", "interrupt", "UART API used by the firmware: interrupt or blocking")
	f.StringVar(&runOpts.tty, "tty", "", "terminal device for the console (default: the controlling terminal)")
	f.StringVar(&runOpts.mqtt, "mqtt", "", "bridge the console over MQTT, e.g. mqtt://localhost:1883/econosim")
	f.StringVar(&runOpts.ws, "ws", "", "bridge the console over a websocket, e.g. ws://localhost:8080/console")
	f.StringVar(&runOpts.origin, "origin", "", "websocket origin")
	f.DurationVar(&runOpts.blink, "blink", 250*time.Millisecond, "half period of the LED blink")
	f.DurationVar(&runOpts.tick, "tick", time.Millisecond, "wall time per simulated character time")
}

func parseMode(s string) (ledkeys.Mode, error) {
	switch s {
	case "interrupt", "":
		return ledkeys.Interrupt, nil
	case "blocking":
		return ledkeys.Blocking, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

func openTransport() (bridge.Transport, error) {
	switch {
	case runOpts.mqtt != "":
		return bridge.DialMQTT(runOpts.mqtt)
	case runOpts.ws != "":
		return bridge.DialWebSocket(runOpts.ws, runOpts.origin)
	}
	t, err := bridge.OpenTTY(runOpts.tty)
	if err != nil {
		return nil, err
	}
	return breakOnCtrlC{t}, nil
}

// breakOnCtrlC ends the stream when the raw terminal delivers ^C.
type breakOnCtrlC struct {
	bridge.Transport
}

func (b breakOnCtrlC) Read(p []byte) (int, error) {
	n, err := b.Transport.Read(p)
	for i := 0; i < n; i++ {
		if p[i] == 0x03 {
			if i == 0 {
				return 0, io.EOF
			}
			return i, nil
		}
	}
	return n, err
}

// pacer returns the pause between blink steps: it runs the machine for d,
// one tick per character time.
func pacer(m *sim.Machine, d, tick time.Duration) func() {
	n := int(d / tick)
	if n < 1 {
		n = 1
	}
	return func() {
		for i := 0; i < n; i++ {
			m.Tick()
			time.Sleep(tick)
		}
	}
}

func runApp(ctx context.Context) error {
	if runOpts.app != "ledkeys" {
		return fmt.Errorf("unknown app %q", runOpts.app)
	}
	mode, err := parseMode(runOpts.mode)
	if err != nil {
		return err
	}
	m, b, err := boot(boardName)
	if err != nil {
		return err
	}
	id, baud := b.Console()
	a := ledkeys.New(b, id, mode)
	if err := a.Start(baud); err != nil {
		return err
	}

	t, err := openTransport()
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	wire := m.UART(id).Wire()
	go func() {
		if err := bridge.Pump(ctx, wire, t); err != nil {
			glog.Warningf("econosim: bridge: %v", err)
		}
		cancel()
		if mode == ledkeys.Blocking {
			// Wake the blocked key read so Run sees the cancellation.
			wire.Inject("\r")
		}
	}()

	glog.Infof("econosim: %s on %s, console %v at %d baud", runOpts.app, b.Info.Name, id, baud)
	err = a.Run(ctx, pacer(m, runOpts.blink, runOpts.tick))
	_ = wire.Close()
	if err == context.Canceled {
		return nil
	}
	return err
}
