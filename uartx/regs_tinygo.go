// uartx/regs_tinygo.go

//go:build tinygo && mc1322x

package uartx

import "github.com/jangala-dev/econotag-bsp/mmio"

// RegsAt returns the register block mapped at base.
func RegsAt(base uintptr) *Regs {
	return &Regs{
		UCON:   mmio.At(base + OffUCON),
		USTAT:  mmio.At(base + OffUSTAT),
		UDATA:  mmio.At(base + OffUDATA),
		URXCON: mmio.At(base + OffURXCON),
		UTXCON: mmio.At(base + OffUTXCON),
		UCTS:   mmio.At(base + OffUCTS),
		UBR:    mmio.At(base + OffUBR),
	}
}
