// itc/source.go

package itc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jangala-dev/econotag-bsp/hal"
)

// Source identifies an interrupt source. Its number is also its priority
// among normal interrupts: higher numbers win.
type Source uint8

const (
	ASM Source = iota
	UART1
	UART2
	CRM
	I2C
	TMR
	SPIF
	MACA
	SSI
	ADC
	SPI

	// MaxSource is the number of interrupt sources.
	MaxSource
)

var sourceNames = [MaxSource]string{"asm", "uart1", "uart2", "crm", "i2c", "tmr", "spif", "maca", "ssi", "adc", "spi"}

func (s Source) String() string {
	if s < MaxSource {
		return sourceNames[s]
	}
	return fmt.Sprintf("source(%d)", uint8(s))
}

// ParseSource accepts a source name ("uart1") or number ("1").
func ParseSource(v string) (Source, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for i, name := range sourceNames {
		if name == v {
			return Source(i), nil
		}
	}
	n, err := strconv.ParseUint(v, 0, 8)
	if err != nil || n >= uint64(MaxSource) {
		return 0, fmt.Errorf("parse source %q: %w", v, hal.InvalidParameter)
	}
	return Source(n), nil
}

// Priority is the routing class of a source.
type Priority uint8

const (
	Normal Priority = iota
	Fast
)

func (p Priority) String() string {
	if p == Fast {
		return "fast"
	}
	return "normal"
}
