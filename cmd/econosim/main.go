// cmd/econosim/main.go

// Command econosim boots the Econotag board support package on a simulated
// MC1322x and drives it from the host: it runs the demo firmware with its
// console bridged to a terminal, MQTT or a websocket, runs a UART loopback
// self-test, prints baud divisor tables and offers an interactive register
// shell.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/jangala-dev/econotag-bsp/board"
	"github.com/jangala-dev/econotag-bsp/bsp"
	"github.com/jangala-dev/econotag-bsp/sim"
	"github.com/jangala-dev/econotag-bsp/uartx"
)

var (
	boardName string

	rootCmd = &cobra.Command{
		Use:          "econosim",
		Short:        "Run the Econotag BSP on a simulated MC1322x",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// glog wants flag.Parse to have run; cobra already set the values.
			_ = flag.CommandLine.Parse(nil)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	rootCmd.PersistentFlags().StringVarP(&boardName, "board", "b", board.DefaultName, "board description to boot")
	rootCmd.AddCommand(runCmd, selftestCmd, baudCmd, shellCmd, boardCmd)
}

func main() {
	defer glog.Flush()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// boot brings the named board up on a fresh machine.
func boot(name string) (*sim.Machine, *bsp.Board, error) {
	info, err := board.All().Find(name)
	if err != nil {
		return nil, nil, err
	}
	m := sim.New()
	b, err := bsp.Boot(m, info)
	if err != nil {
		return nil, nil, err
	}
	return m, b, nil
}

// parseUART accepts "uart1", "UART2" or a bare port number.
func parseUART(s string) (uartx.ID, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(s), "uart"))
	if err != nil || n < 1 || n > int(uartx.MaxID) {
		return 0, fmt.Errorf("unknown uart %q", s)
	}
	return uartx.ID(n - 1), nil
}
