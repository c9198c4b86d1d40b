// cmd/econosim/baud.go

package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/jangala-dev/econotag-bsp/board"
	"github.com/jangala-dev/econotag-bsp/uartx"
)

var (
	baudClock uint32

	baudCmd = &cobra.Command{
		Use:   "baud [BAUD...]",
		Short: "Print UBR divisors and rate errors",
		Long:  "Print the UBR increment/modulus for each rate and the error of the generated rate. Without arguments the standard rates are listed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			bauds := uartx.StandardBauds
			if len(args) > 0 {
				bauds = make([]uint32, 0, len(args))
				for _, a := range args {
					v, err := strconv.ParseUint(a, 10, 32)
					if err != nil {
						return fmt.Errorf("bad baud %q: %w", a, err)
					}
					bauds = append(bauds, uint32(v))
				}
			}
			clock := baudClock
			if clock == 0 {
				info, err := board.All().Find(boardName)
				if err != nil {
					return err
				}
				clock = info.CoreClock
			}
			printBaudTable(cmd.OutOrStdout(), uartx.BaudTable(bauds, clock), clock)
			return nil
		},
	}
)

func init() {
	baudCmd.Flags().Uint32Var(&baudClock, "clock", 0, "peripheral clock in Hz (default: the board's core clock)")
}

// baudSummary describes the rate errors of the usable rows, in percent.
type baudSummary struct {
	Usable   int
	Mean     float64 // of absolute errors
	StdDev   float64
	Worst    float64
	WorstFor uint32
}

func summarize(rows []uartx.BaudRow) baudSummary {
	var errs []float64
	var bauds []uint32
	for _, r := range rows {
		if r.Err == nil {
			errs = append(errs, math.Abs(r.Error)*100)
			bauds = append(bauds, r.Baud)
		}
	}
	s := baudSummary{Usable: len(errs)}
	if len(errs) == 0 {
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(errs, nil)
	if math.IsNaN(s.StdDev) {
		s.StdDev = 0
	}
	i := floats.MaxIdx(errs)
	s.Worst, s.WorstFor = errs[i], bauds[i]
	return s
}

func printBaudTable(out io.Writer, rows []uartx.BaudRow, clock uint32) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "baud\tinc\tmod\tUBR\tactual\terror %%\t\n")
	for _, r := range rows {
		if r.Err != nil {
			fmt.Fprintf(w, "%d\t-\t-\t-\t-\tout of range\t\n", r.Baud)
			continue
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%#08x\t%.1f\t%+.3f\t\n",
			r.Baud, r.Divisor.Inc, r.Divisor.Mod, r.Divisor.Word(), r.Actual, r.Error*100)
	}
	w.Flush()

	s := summarize(rows)
	fmt.Fprintf(out, "\nclock %d Hz, %d of %d rates usable\n", clock, s.Usable, len(rows))
	if s.Usable > 0 {
		fmt.Fprintf(out, "|error| mean %.3f%%, stddev %.3f%%, worst %.3f%% at %d baud\n",
			s.Mean, s.StdDev, s.Worst, s.WorstFor)
	}
}
