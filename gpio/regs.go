// gpio/regs.go

package gpio

import "github.com/jangala-dev/econotag-bsp/mmio"

// Base is the address of the GPIO register block.
const Base = 0x80000000

// Register offsets from Base. Registers ending in 0 cover pins 0..31, those
// ending in 1 cover pins 32..63.
const (
	OffPadDir0      = 0x00
	OffPadDir1      = 0x04
	OffData0        = 0x08
	OffData1        = 0x0C
	OffFuncSel0     = 0x18 // FUNC_SEL0..3 follow at 4-byte steps
	OffDataSet0     = 0x48
	OffDataSet1     = 0x4C
	OffDataReset0   = 0x50
	OffDataReset1   = 0x54
	OffPadDirSet0   = 0x58
	OffPadDirSet1   = 0x5C
	OffPadDirReset0 = 0x60
	OffPadDirReset1 = 0x64
)

const (
	// FuncBits is the width of a pin's function select field.
	FuncBits = 2
	// PinsPerFuncWord is the number of pins covered by one FUNC_SEL register.
	PinsPerFuncWord = 32 / FuncBits
)

// Regs is the GPIO register block. DataSet, DataReset, PadDirSet and
// PadDirReset are write-one-to-act: bits written as one set or clear the
// matching bit of Data or PadDir, zero bits are ignored.
type Regs struct {
	PadDir      [MaxPort]mmio.Register32 // 1 = output
	Data        [MaxPort]mmio.Register32
	FuncSel     [4]mmio.Register32
	DataSet     [MaxPort]mmio.Register32
	DataReset   [MaxPort]mmio.Register32
	PadDirSet   [MaxPort]mmio.Register32
	PadDirReset [MaxPort]mmio.Register32
}

// funcField returns the FUNC_SEL word index and field for pin.
func funcField(pin Pin) (int, mmio.Field) {
	return int(pin) / PinsPerFuncWord, mmio.Field{Pos: uint8(pin%PinsPerFuncWord) * FuncBits, Width: FuncBits}
}
