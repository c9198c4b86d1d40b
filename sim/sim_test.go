package sim_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jangala-dev/econotag-bsp/hal"
	"github.com/jangala-dev/econotag-bsp/itc"
	"github.com/jangala-dev/econotag-bsp/sim"
	"github.com/jangala-dev/econotag-bsp/uartx"
)

// quiet enables both directions of id with the interrupt conditions masked,
// so the FIFOs can be driven from the test without an ISR.
func quiet(m *sim.Machine, id uartx.ID) *uartx.Regs {
	r := m.UARTRegs(id)
	r.UCON.Set(uartx.TxE.Mask() | uartx.RxE.Mask() | uartx.MTxR.Mask() | uartx.MRxR.Mask())
	return r
}

func TestWireCloseDrainsThenEOF(t *testing.T) {
	m := sim.New()
	r := quiet(m, uartx.UART1)
	w := m.UART(uartx.UART1).Wire()

	r.UDATA.Set('h')
	r.UDATA.Set('i')
	m.Run(2)
	require.NoError(t, w.Close())

	buf := make([]byte, 8)
	n, err := w.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "hi", string(buf[:n]))

	_, err = w.Read(buf)
	require.Equal(t, io.EOF, err)
	_, err = w.Write([]byte("x"))
	require.Equal(t, io.ErrClosedPipe, err)
}

func TestWireReadWaitsForTransmit(t *testing.T) {
	m := sim.New()
	r := quiet(m, uartx.UART1)
	w := m.UART(uartx.UART1).Wire()

	got := make(chan string)
	go func() {
		buf := make([]byte, 3)
		_, err := io.ReadFull(w, buf)
		if err != nil {
			got <- err.Error()
			return
		}
		got <- string(buf)
	}()

	for _, c := range []byte("abc") {
		r.UDATA.Set(uint32(c))
	}
	m.Run(3)
	require.Equal(t, "abc", <-got)
}

func TestRxOverrunLatchesROE(t *testing.T) {
	m := sim.New()
	r := quiet(m, uartx.UART1)
	u := m.UART(uartx.UART1)

	_, err := u.Wire().Write(make([]byte, uartx.FIFODepth+8))
	require.NoError(t, err)
	m.Run(uartx.FIFODepth + 8)
	require.Equal(t, uartx.FIFODepth, u.RxFIFO())
	require.Equal(t, uint64(8), u.Lost())
	require.Equal(t, 0, u.Wire().Pending())

	st := r.USTAT.Get()
	require.True(t, uartx.ROE.Extract(st) != 0)
	require.True(t, uartx.RxRdy.Extract(st) != 0)
	require.True(t, uartx.ROE.Extract(r.USTAT.Get()) == 0, "status read clears ROE")
}

func TestRxWithReceiverOff(t *testing.T) {
	m := sim.New()
	u := m.UART(uartx.UART1)
	u.Wire().Inject("abc")
	m.Run(5)
	require.Equal(t, 0, u.RxFIFO())
	require.Equal(t, 3, u.Wire().Pending(), "a disabled receiver leaves the line alone")
}

func TestStormIsBounded(t *testing.T) {
	m := sim.New()
	c := itc.New(m.ITCRegs())
	c.Init()
	x := hal.NewExceptions(m.Core())
	x.Init(c)
	m.Attach(x)
	x.EnableInts()

	// The Nop handler never unforces, so the line never drops.
	require.NoError(t, c.EnableInterrupt(itc.TMR))
	require.False(t, m.Storm())
	require.NoError(t, c.ForceInterrupt(itc.TMR))
	require.True(t, m.Storm())
	require.Equal(t, uint32(sim.MaxDeliveries), c.Serviced(itc.TMR))

	irq, fiq := m.CPU().Delivered()
	require.Equal(t, uint64(sim.MaxDeliveries), irq)
	require.Equal(t, uint64(0), fiq)
	require.Equal(t, hal.IF(0), m.Core().InterruptMask(), "each return restores the mask")
}

func TestNoDeliveryBeforeAttach(t *testing.T) {
	m := sim.New()
	c := itc.New(m.ITCRegs())
	c.Init()
	m.Core().SetInterruptMask(0)
	require.NoError(t, c.EnableInterrupt(itc.TMR))
	require.NoError(t, c.ForceInterrupt(itc.TMR))

	irq, _ := m.CPU().Delivered()
	require.Equal(t, uint64(0), irq)
	require.Equal(t, uint32(0), c.Serviced(itc.TMR))
}

func TestConnect(t *testing.T) {
	a, b := sim.New(), sim.New()
	ra := quiet(a, uartx.UART1)
	rb := quiet(b, uartx.UART2)
	sim.Connect(a.UART(uartx.UART1), b.UART(uartx.UART2))

	ra.UDATA.Set('x')
	a.Tick()
	require.Empty(t, a.UART(uartx.UART1).Wire().Drain(), "connected output bypasses the own wire")
	require.Equal(t, 1, b.UART(uartx.UART2).Wire().Pending())

	b.Tick()
	require.Equal(t, 1, b.UART(uartx.UART2).RxFIFO())
	require.Equal(t, uint32('x'), rb.UDATA.Get())

	rb.UDATA.Set('y')
	b.Tick()
	a.Tick()
	require.Equal(t, uint32('y'), ra.UDATA.Get())
}
