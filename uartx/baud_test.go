package uartx_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jangala-dev/econotag-bsp/hal"
	"github.com/jangala-dev/econotag-bsp/uartx"
)

func TestBaudDivisor(t *testing.T) {
	for _, tc := range []struct {
		baud uint32
		inc  uint32
	}{
		{9600, 63},
		{57600, 383},
		{115200, 767},
		{921600, 6143},
	} {
		d, err := uartx.BaudDivisor(tc.baud, uartx.DefaultCoreClock)
		require.NoError(t, err, "baud %d", tc.baud)
		require.Equal(t, tc.inc, d.Inc, "baud %d", tc.baud)
		require.Equal(t, uint32(uartx.BaudMod), d.Mod)
		require.Equal(t, tc.inc<<16|uartx.BaudMod, d.Word())

		actual := uartx.ActualBaud(d, uartx.DefaultCoreClock)
		require.True(t, math.Abs(actual-float64(tc.baud))/float64(tc.baud) < 0.02, "baud %d -> %.1f", tc.baud, actual)
	}
}

func TestBaudDivisorRange(t *testing.T) {
	for _, baud := range []uint32{0, 10000000} {
		_, err := uartx.BaudDivisor(baud, uartx.DefaultCoreClock)
		require.True(t, errors.Is(err, hal.InvalidArgument), "baud %d", baud)
	}
	_, err := uartx.BaudDivisor(9600, 8)
	require.True(t, errors.Is(err, hal.InvalidArgument))
	require.Zero(t, uartx.ActualBaud(uartx.Divisor{}, uartx.DefaultCoreClock))
}

func TestBaudTable(t *testing.T) {
	rows := uartx.BaudTable([]uint32{115200, 0, 9600}, uartx.DefaultCoreClock)
	require.Len(t, rows, 3)

	require.NoError(t, rows[0].Err)
	require.Equal(t, uint32(767), rows[0].Divisor.Inc)
	require.True(t, rows[0].Error < 0, "divisor rounds down")
	require.True(t, rows[0].Error > -0.01)

	require.True(t, errors.Is(rows[1].Err, hal.InvalidArgument))
	require.Zero(t, rows[1].Actual)

	require.NoError(t, rows[2].Err)
	require.Equal(t, uint32(9600), rows[2].Baud)
}
