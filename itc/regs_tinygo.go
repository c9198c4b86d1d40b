// itc/regs_tinygo.go

//go:build tinygo && mc1322x

package itc

import "github.com/jangala-dev/econotag-bsp/mmio"

// RegsAt returns the register block mapped at base.
func RegsAt(base uintptr) *Regs {
	return &Regs{
		IntCntl:   mmio.At(base + OffIntCntl),
		NIMask:    mmio.At(base + OffNIMask),
		IntEnNum:  mmio.At(base + OffIntEnNum),
		IntDisNum: mmio.At(base + OffIntDisNum),
		IntEnable: mmio.At(base + OffIntEnable),
		IntType:   mmio.At(base + OffIntType),
		NIVector:  mmio.At(base + OffNIVector),
		FIVector:  mmio.At(base + OffFIVector),
		IntSrc:    mmio.At(base + OffIntSrc),
		IntFrc:    mmio.At(base + OffIntFrc),
		NIPend:    mmio.At(base + OffNIPend),
		FIPend:    mmio.At(base + OffFIPend),
	}
}
