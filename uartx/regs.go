// uartx/regs.go

package uartx

import "github.com/jangala-dev/econotag-bsp/mmio"

// Base addresses of the two UART register blocks.
const (
	UART1Base = 0x80005000
	UART2Base = 0x8000B000
)

// Register offsets from a UART base.
const (
	OffUCON   = 0x00
	OffUSTAT  = 0x04
	OffUDATA  = 0x08
	OffURXCON = 0x0C
	OffUTXCON = 0x10
	OffUCTS   = 0x14
	OffUBR    = 0x18
)

// UCON fields.
var (
	TxE    = mmio.Bit(0)  // transmitter enable
	RxE    = mmio.Bit(1)  // receiver enable
	PEN    = mmio.Bit(2)  // parity enable
	EP     = mmio.Bit(3)  // even parity
	ST2    = mmio.Bit(4)  // two stop bits
	SB     = mmio.Bit(5)  // send break
	ConTx  = mmio.Bit(6)  // continuous TX test mode
	TxOENB = mmio.Bit(7)  // TX output enable, active low
	XTIM   = mmio.Bit(10) // x8 oversampling when clear
	FCp    = mmio.Bit(11) // flow control polarity
	FCe    = mmio.Bit(12) // flow control enable
	MTxR   = mmio.Bit(13) // TX ready interrupt masked
	MRxR   = mmio.Bit(14) // RX ready interrupt masked
	TST    = mmio.Bit(15) // loopback test mode
)

// UCONReset is the first value written by Init: both interrupt conditions
// masked, transmitter and receiver off.
const UCONReset = 0x6000

// USTAT fields. TOE, ROE and RUE are sticky and clear when USTAT is read.
var (
	SE    = mmio.Bit(0) // start bit error
	PE    = mmio.Bit(1) // parity error
	FE    = mmio.Bit(2) // frame error
	TOE   = mmio.Bit(3) // TX FIFO overrun
	ROE   = mmio.Bit(4) // RX FIFO overrun
	RUE   = mmio.Bit(5) // RX FIFO underrun
	RxRdy = mmio.Bit(6) // RX FIFO count >= RX level
	TxRdy = mmio.Bit(7) // TX FIFO free slots >= TX level
)

// FIFO control fields. Writing URXCON/UTXCON sets the trigger level; reading
// returns the RX byte count or the free TX slot count.
var (
	Level = mmio.Field{Pos: 0, Width: 5}
	Count = mmio.Field{Pos: 0, Width: 6}
)

// UBR fields.
var (
	UBRMod = mmio.Field{Pos: 0, Width: 16}
	UBRInc = mmio.Field{Pos: 16, Width: 16}
)

const (
	// FIFODepth is the size of each hardware FIFO.
	FIFODepth = 32
	// RxLevel raises RX ready as soon as one byte is queued.
	RxLevel = 1
	// TxLevel raises TX ready when the FIFO is nearly empty.
	TxLevel = 31
)

// Regs is a UART register block.
type Regs struct {
	UCON   mmio.Register32
	USTAT  mmio.Register32
	UDATA  mmio.Register32 // read pops the RX FIFO, write pushes the TX FIFO
	URXCON mmio.Register32
	UTXCON mmio.Register32
	UCTS   mmio.Register32
	UBR    mmio.Register32
}

// RegsSnapshot is a copy of the readable registers of a port, less UDATA.
type RegsSnapshot struct {
	UCON   uint32
	USTAT  uint32
	URXCON uint32
	UTXCON uint32
	UCTS   uint32
	UBR    uint32
}
