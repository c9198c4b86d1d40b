package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jangala-dev/econotag-bsp/board"
	"github.com/jangala-dev/econotag-bsp/hal"
	"github.com/jangala-dev/econotag-bsp/uartx"
)

func TestParseUART(t *testing.T) {
	for in, want := range map[string]uartx.ID{"uart1": uartx.UART1, "UART2": uartx.UART2, "1": uartx.UART1} {
		id, err := parseUART(in)
		require.NoError(t, err, in)
		require.Equal(t, want, id, in)
	}
	for _, in := range []string{"", "uart0", "uart3", "com1"} {
		_, err := parseUART(in)
		require.Error(t, err, in)
	}
}

func TestSelfTest(t *testing.T) {
	m, b, err := boot(board.DefaultName)
	require.NoError(t, err)

	var out bytes.Buffer
	pass, fail, err := selfTest(m, b, 512, 115200, &out)
	require.NoError(t, err)
	require.Equal(t, 0, fail, out.String())
	require.Equal(t, 6, pass)
	require.True(t, strings.HasSuffix(out.String(), "PASS\n"))
	require.Zero(t, m.UART(uartx.UART1).Lost())
	require.Zero(t, m.UART(uartx.UART2).Lost())
}

func TestSelfTestRejectsBadBaud(t *testing.T) {
	m, b, err := boot(board.DefaultName)
	require.NoError(t, err)
	_, _, err = selfTest(m, b, 16, 0, &bytes.Buffer{})
	require.True(t, errors.Is(err, hal.InvalidArgument))
}

func TestSummarize(t *testing.T) {
	rows := uartx.BaudTable([]uint32{9600, 115200, 0}, uartx.DefaultCoreClock)
	s := summarize(rows)
	require.Equal(t, 2, s.Usable)
	require.True(t, s.Mean > 0)
	require.True(t, s.Worst >= s.Mean)
	require.True(t, s.WorstFor == 9600 || s.WorstFor == 115200)

	one := summarize(rows[1:2])
	require.Equal(t, 1, one.Usable)
	require.Zero(t, one.StdDev)
	require.Equal(t, uint32(115200), one.WorstFor)

	require.Zero(t, summarize(rows[2:]).Usable)
}

func TestPrintBaudTable(t *testing.T) {
	var out bytes.Buffer
	printBaudTable(&out, uartx.BaudTable([]uint32{115200, 10000000}, uartx.DefaultCoreClock), uartx.DefaultCoreClock)
	s := out.String()
	require.True(t, strings.Contains(s, "767"), s)
	require.True(t, strings.Contains(s, "out of range"), s)
	require.True(t, strings.Contains(s, "1 of 2 rates usable"), s)
}

func TestShellSession(t *testing.T) {
	m, b, err := boot(board.DefaultName)
	require.NoError(t, err)
	s := &session{m: m, b: b}

	run := func(name string, args ...string) string {
		t.Helper()
		var out bytes.Buffer
		require.NoError(t, s.exec(&out, name, args...))
		return out.String()
	}

	require.Equal(t, "uart1: shell at 115200 baud\n", run("init", "uart1", "115200"))
	require.Equal(t, "queued 8 of 8 bytes\n", run("send", "uart1", "hi", "there"))
	run("tick", "20")
	require.Equal(t, "\"hi there\"\n", run("wire", "uart1"))

	require.Equal(t, "2 bytes pending on the line\n", run("inject", "1", "ab"))
	run("tick", "5")
	require.Equal(t, "\"ab\"\n", run("recv", "uart1"))
	require.Equal(t, "\"\"\n", run("recv", "uart1", "4"))

	require.True(t, strings.HasPrefix(run("regs", "uart1"), "UCON="))
	require.Equal(t, "red=false green=true\n", run("leds", "green", "on"))

	require.Equal(t, "tmr forced, serviced 0 times\n", run("force", "tmr"))
	require.Equal(t, "tmr released\n", run("unforce", "tmr"))
	require.Equal(t, "spi enabled\n", run("enable", "spi"))
	require.Equal(t, "spi disabled\n", run("disable", "spi"))

	var out bytes.Buffer
	require.Error(t, s.exec(&out, "force", "nosuch"))
	require.Error(t, s.exec(&out, "send", "uart1"))
	require.Error(t, s.exec(&out, "frobnicate"))
	require.True(t, errors.Is(s.exec(&out, "recv", "uart2"), hal.NoSuchDevice))
}

func TestBoardCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"board", "econotag-uart2"})
	require.NoError(t, rootCmd.Execute())
	require.True(t, strings.Contains(out.String(), "name: econotag-uart2"), out.String())

	out.Reset()
	rootCmd.SetArgs([]string{"board", "nosuch"})
	require.Error(t, rootCmd.Execute())
}
