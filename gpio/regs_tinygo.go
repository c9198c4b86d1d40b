// gpio/regs_tinygo.go

//go:build tinygo && mc1322x

package gpio

import "github.com/jangala-dev/econotag-bsp/mmio"

// RegsAt returns the register block mapped at base.
func RegsAt(base uintptr) *Regs {
	r := &Regs{}
	for p := uintptr(0); p < uintptr(MaxPort); p++ {
		r.PadDir[p] = mmio.At(base + OffPadDir0 + 4*p)
		r.Data[p] = mmio.At(base + OffData0 + 4*p)
		r.DataSet[p] = mmio.At(base + OffDataSet0 + 4*p)
		r.DataReset[p] = mmio.At(base + OffDataReset0 + 4*p)
		r.PadDirSet[p] = mmio.At(base + OffPadDirSet0 + 4*p)
		r.PadDirReset[p] = mmio.At(base + OffPadDirReset0 + 4*p)
	}
	for i := range r.FuncSel {
		r.FuncSel[i] = mmio.At(base + OffFuncSel0 + 4*uintptr(i))
	}
	return r
}
