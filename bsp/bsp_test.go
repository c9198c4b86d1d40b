package bsp_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jangala-dev/econotag-bsp/board"
	"github.com/jangala-dev/econotag-bsp/bsp"
	"github.com/jangala-dev/econotag-bsp/hal"
	"github.com/jangala-dev/econotag-bsp/itc"
	"github.com/jangala-dev/econotag-bsp/sim"
	"github.com/jangala-dev/econotag-bsp/uartx"
)

var _ bsp.Hardware = (*sim.Machine)(nil)

func TestBoot(t *testing.T) {
	m := sim.New()
	b, err := bsp.Boot(m, board.Default())
	require.NoError(t, err)

	require.Equal(t, hal.IF(0), m.Core().InterruptMask(), "interrupts on after boot")
	require.True(t, m.GPIO().Output(44))
	require.True(t, m.GPIO().Output(45))

	id, baud := b.Console()
	require.Equal(t, uartx.UART1, id)
	require.NoError(t, b.UART.Init(id, baud, "console"))

	_, err = b.UART.Send(id, []byte("boot"))
	require.NoError(t, err)
	require.True(t, m.RunUntil(func() bool { return m.UART(id).TxFIFO() == 0 }, 100))
	require.Equal(t, "boot", string(m.UART(id).Wire().Drain()))
}

func TestBootAppliesFIFOLevels(t *testing.T) {
	m := sim.New()
	info := board.Default()
	info.FIFO.RxLevel = 8
	b, err := bsp.Boot(m, info)
	require.NoError(t, err)
	require.NoError(t, b.UART.Init(uartx.UART1, 115200, "console"))

	u := m.UART(uartx.UART1)
	rx, tx := u.Levels()
	require.Equal(t, uint32(8), rx)
	require.Equal(t, uint32(uartx.TxLevel), tx)

	u.Wire().Inject("1234567")
	m.Run(10)
	require.Equal(t, 7, u.RxFIFO(), "below the trigger level nothing is serviced")
	require.Equal(t, 0, b.UART.Buffered(uartx.UART1))

	u.Wire().Inject("8")
	m.Run(2)
	require.Equal(t, 8, b.UART.Buffered(uartx.UART1))
	require.Equal(t, 0, u.RxFIFO())
}

func TestLEDs(t *testing.T) {
	m := sim.New()
	b, err := bsp.Boot(m, board.Default())
	require.NoError(t, err)

	require.False(t, b.LEDOn(bsp.Red))
	b.SetLED(bsp.Red, true)
	require.True(t, b.LEDOn(bsp.Red))
	require.True(t, m.GPIO().Latch(44))
	require.False(t, b.LEDOn(bsp.Green))

	b.SetLED(bsp.Green, true)
	b.SetLED(bsp.Red, false)
	require.True(t, m.GPIO().Latch(45))
	require.False(t, m.GPIO().Latch(44))
}

func TestPorts(t *testing.T) {
	m := sim.New()
	info, err := board.All().Find("econotag-uart2")
	require.NoError(t, err)

	ports, err := bsp.Ports(m, info)
	require.NoError(t, err)
	require.Equal(t, itc.UART2, ports[uartx.UART2].Source)
	require.Equal(t, m.UARTRegs(uartx.UART2), ports[uartx.UART2].Regs)
	require.Equal(t, uartx.Pins{TX: 18, RX: 19, CTS: 20, RTS: 21}, ports[uartx.UART2].Pins)
	require.Equal(t, uint32(info.FIFO.RxLevel), ports[uartx.UART2].RxLevel)
	require.Equal(t, uint32(info.FIFO.TxLevel), ports[uartx.UART2].TxLevel)

	info.UARTs = []board.UART{{ID: 3, Source: "uart1"}}
	_, err = bsp.Ports(m, info)
	require.True(t, errors.Is(err, hal.NoSuchDevice))

	info.UARTs = []board.UART{{ID: 1, Source: "uart9"}}
	_, err = bsp.Ports(m, info)
	require.True(t, errors.Is(err, hal.InvalidParameter))
}

func TestBootRejectsInvalidBoard(t *testing.T) {
	info := board.Default()
	info.CoreClock = 0
	_, err := bsp.Boot(sim.New(), info)
	require.Error(t, err)
}
