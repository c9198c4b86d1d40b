// uartx/baud.go

package uartx

import (
	"fmt"

	"github.com/jangala-dev/econotag-bsp/hal"
)

// BaudMod is the fixed modulus of the fractional baud generator.
const BaudMod = 9999

// Divisor is the content of UBR. With x8 oversampling the line runs at
// clock/16 * Inc/Mod bits per second.
type Divisor struct {
	Inc uint32
	Mod uint32
}

// Word packs the divisor into a UBR value.
func (d Divisor) Word() uint32 {
	return UBRInc.Insert(UBRMod.Insert(0, d.Mod), d.Inc)
}

// BaudDivisor computes the UBR setting for baud at the given peripheral
// clock. Rates that do not fit the 16-bit increment are rejected.
func BaudDivisor(baud, clock uint32) (Divisor, error) {
	if baud == 0 || clock>>4 == 0 {
		return Divisor{}, fmt.Errorf("baud %d at %d Hz: %w", baud, clock, hal.InvalidArgument)
	}
	inc := uint64(baud) * BaudMod / uint64(clock>>4)
	if inc == 0 || inc > uint64(UBRInc.Mask()>>UBRInc.Pos) {
		return Divisor{}, fmt.Errorf("baud %d at %d Hz out of range: %w", baud, clock, hal.InvalidArgument)
	}
	return Divisor{Inc: uint32(inc), Mod: BaudMod}, nil
}

// ActualBaud returns the rate the generator produces for d.
func ActualBaud(d Divisor, clock uint32) float64 {
	if d.Mod == 0 {
		return 0
	}
	return float64(clock>>4) * float64(d.Inc) / float64(d.Mod)
}

// StandardBauds are the rates listed by the baud report.
var StandardBauds = []uint32{1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200, 230400, 460800, 921600}

// BaudRow is one line of a baud report. Err is set when the rate cannot
// be generated; the other fields are then zero.
type BaudRow struct {
	Baud    uint32
	Divisor Divisor
	Actual  float64
	Error   float64 // (Actual-Baud)/Baud
	Err     error
}

// BaudTable computes divisors and rate errors for bauds at clock.
func BaudTable(bauds []uint32, clock uint32) []BaudRow {
	rows := make([]BaudRow, 0, len(bauds))
	for _, b := range bauds {
		row := BaudRow{Baud: b}
		d, err := BaudDivisor(b, clock)
		if err != nil {
			row.Err = err
		} else {
			row.Divisor = d
			row.Actual = ActualBaud(d, clock)
			row.Error = (row.Actual - float64(b)) / float64(b)
		}
		rows = append(rows, row)
	}
	return rows
}
