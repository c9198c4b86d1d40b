// itc/regs.go

package itc

import "github.com/jangala-dev/econotag-bsp/mmio"

// Base is the address of the interrupt controller register block.
const Base = 0x80020000

// Register offsets from Base.
const (
	OffIntCntl   = 0x00
	OffNIMask    = 0x04
	OffIntEnNum  = 0x08
	OffIntDisNum = 0x0C
	OffIntEnable = 0x10
	OffIntType   = 0x14
	OffNIVector  = 0x28
	OffFIVector  = 0x2C
	OffIntSrc    = 0x30
	OffIntFrc    = 0x34
	OffNIPend    = 0x38
	OffFIPend    = 0x3C
)

// INTCNTL fields.
var (
	// FIAD disables the fast interrupt arbiter when set.
	FIAD = mmio.Bit(19)
	// NIAD disables the normal interrupt arbiter when set.
	NIAD = mmio.Bit(20)
)

const (
	// NIMaskNone written to NIMASK disables priority masking. Any other value
	// n masks normal sources whose priority is n or lower.
	NIMaskNone = 0x1F
	// NoVector is read from NIVECTOR and FIVECTOR when nothing is pending.
	NoVector = 0x1F
)

// NIMaskField is the 5-bit normal interrupt mask level.
var NIMaskField = mmio.Field{Pos: 0, Width: 5}

// Regs is the interrupt controller register block. The per-source registers
// (INTENABLE, INTTYPE, INTSRC, INTFRC, NIPEND, FIPEND) hold bit n for
// source n.
type Regs struct {
	IntCntl   mmio.Register32
	NIMask    mmio.Register32
	IntEnNum  mmio.Register32 // write source number to enable it
	IntDisNum mmio.Register32 // write source number to disable it
	IntEnable mmio.Register32
	IntType   mmio.Register32 // 1 = fast
	NIVector  mmio.Register32 // highest-priority pending normal source
	FIVector  mmio.Register32 // highest-priority pending fast source
	IntSrc    mmio.Register32
	IntFrc    mmio.Register32
	NIPend    mmio.Register32
	FIPend    mmio.Register32
}
