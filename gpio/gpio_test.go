package gpio_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jangala-dev/econotag-bsp/gpio"
	"github.com/jangala-dev/econotag-bsp/hal"
	"github.com/jangala-dev/econotag-bsp/sim"
)

func newGPIO() (*gpio.GPIO, *sim.Machine) {
	m := sim.New()
	return gpio.New(m.GPIORegs()), m
}

func TestPinMapping(t *testing.T) {
	for _, tc := range []struct {
		pin  gpio.Pin
		port gpio.Port
		mask uint32
	}{
		{0, gpio.Port0, 1},
		{14, gpio.Port0, 1 << 14},
		{31, gpio.Port0, 1 << 31},
		{32, gpio.Port1, 1},
		{44, gpio.Port1, 1 << 12},
		{63, gpio.Port1, 1 << 31},
	} {
		require.Equal(t, tc.port, tc.pin.Port(), "pin %d", tc.pin)
		require.Equal(t, tc.mask, tc.pin.Mask(), "pin %d", tc.pin)
	}
}

func TestSetClearGetPin(t *testing.T) {
	g, m := newGPIO()
	const led gpio.Pin = 44

	require.NoError(t, g.SetPinDirOutput(led))
	require.True(t, m.GPIO().Output(led))

	require.NoError(t, g.SetPin(led))
	on, err := g.GetPin(led)
	require.NoError(t, err)
	require.True(t, on)

	v, err := g.GetPort(gpio.Port1)
	require.NoError(t, err)
	require.Equal(t, uint32(1<<12), v)

	require.NoError(t, g.ClearPin(led))
	on, _ = g.GetPin(led)
	require.False(t, on)
}

func TestPortMasks(t *testing.T) {
	g, m := newGPIO()
	require.NoError(t, g.SetPortDirOutput(gpio.Port0, 0xF0))
	require.NoError(t, g.SetPort(gpio.Port0, 0x30))
	require.NoError(t, g.SetPort(gpio.Port0, 0xC0))
	require.NoError(t, g.ClearPort(gpio.Port0, 0x40))

	v, err := g.GetPort(gpio.Port0)
	require.NoError(t, err)
	require.Equal(t, uint32(0xB0), v)

	require.NoError(t, g.SetPortDirInput(gpio.Port0, 0x80))
	require.False(t, m.GPIO().Output(7))
	require.True(t, m.GPIO().Latch(7), "direction change keeps the latch")
	v, _ = g.GetPort(gpio.Port0)
	require.Equal(t, uint32(0x30), v, "input pins read the pad, not the latch")
}

func TestInputReadsPad(t *testing.T) {
	g, m := newGPIO()
	const button gpio.Pin = 27

	require.NoError(t, g.SetPinDirInput(button))
	on, _ := g.GetPin(button)
	require.False(t, on)

	m.GPIO().Drive(button, true)
	on, _ = g.GetPin(button)
	require.True(t, on)
}

func TestPinFunc(t *testing.T) {
	g, m := newGPIO()
	regs := m.GPIORegs()

	require.NoError(t, g.SetPinFunc(14, gpio.FuncAlt1))
	require.NoError(t, g.SetPinFunc(15, gpio.FuncAlt3))
	require.Equal(t, uint32(1<<28|3<<30), regs.FuncSel[0].Get())

	require.NoError(t, g.SetPinFunc(16, gpio.FuncAlt2))
	require.Equal(t, uint32(2), regs.FuncSel[1].Get())

	require.NoError(t, g.SetPinFunc(15, gpio.FuncNormal))
	fn, err := g.PinFunc(15)
	require.NoError(t, err)
	require.Equal(t, gpio.FuncNormal, fn)
	fn, _ = g.PinFunc(14)
	require.Equal(t, gpio.FuncAlt1, fn)
}

func TestPortFunc(t *testing.T) {
	g, m := newGPIO()
	regs := m.GPIORegs()

	require.NoError(t, g.SetPortFunc(gpio.Port1, gpio.FuncAlt1, 1<<0|1<<17))
	require.Equal(t, uint32(1), regs.FuncSel[2].Get())
	require.Equal(t, uint32(1<<2), regs.FuncSel[3].Get())

	fn, _ := g.PinFunc(49)
	require.Equal(t, gpio.FuncAlt1, fn)
}

func TestInvalidParameters(t *testing.T) {
	g, m := newGPIO()
	_, getPinErr := g.GetPin(gpio.MaxPin)
	_, getPortErr := g.GetPort(gpio.MaxPort)
	_, funcErr := g.PinFunc(gpio.MaxPin)

	for name, err := range map[string]error{
		"set pin":         g.SetPin(gpio.MaxPin),
		"clear pin":       g.ClearPin(64),
		"get pin":         getPinErr,
		"set port":        g.SetPort(gpio.MaxPort, 1),
		"clear port":      g.ClearPort(gpio.MaxPort, 1),
		"get port":        getPortErr,
		"pin dir in":      g.SetPinDirInput(100),
		"pin dir out":     g.SetPinDirOutput(100),
		"port dir in":     g.SetPortDirInput(gpio.MaxPort, 1),
		"port dir out":    g.SetPortDirOutput(gpio.MaxPort, 1),
		"pin func":        g.SetPinFunc(gpio.MaxPin, gpio.FuncAlt1),
		"pin func value":  g.SetPinFunc(3, gpio.MaxFunc),
		"port func":       g.SetPortFunc(gpio.MaxPort, gpio.FuncAlt1, 1),
		"port func value": g.SetPortFunc(gpio.Port0, gpio.MaxFunc, 1),
		"get func":        funcErr,
	} {
		require.Error(t, err, name)
		require.True(t, errors.Is(err, hal.InvalidParameter), name)
	}

	for _, r := range m.GPIORegs().FuncSel {
		require.Equal(t, uint32(0), r.Get(), "rejected calls leave the hardware untouched")
	}
}
