// board/board.go

// Package board describes the boards the BSP can be brought up on. The
// descriptions live in an embedded YAML file.
package board

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/jangala-dev/econotag-bsp/uartx"
)

//go:embed boards.yaml
var rawBoards []byte

var boards Boards

// ErrNotFound is returned when no board matches a lookup.
var ErrNotFound = errors.New("board not found")

// DefaultName is the board used when none is named.
const DefaultName = "econotag"

type Boards []Board

type Board struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Chips       []string `yaml:"chips"`
	CoreClock   uint32   `yaml:"coreClock"`
	ITCBase     uint32   `yaml:"itcBase"`
	GPIOBase    uint32   `yaml:"gpioBase"`
	UARTs       []UART   `yaml:"uarts"`
	FIFO        FIFO     `yaml:"fifo"`
	BufferSize  int      `yaml:"bufferSize"`
	LEDs        LEDs     `yaml:"leds"`
	Console     Console  `yaml:"console"`
}

type UART struct {
	ID     int    `yaml:"id"`
	Base   uint32 `yaml:"base"`
	Source string `yaml:"source"`
	Pins   Pins   `yaml:"pins"`
}

type Pins struct {
	TX  uint8 `yaml:"tx"`
	RX  uint8 `yaml:"rx"`
	CTS uint8 `yaml:"cts"`
	RTS uint8 `yaml:"rts"`
}

type FIFO struct {
	Depth   int `yaml:"depth"`
	RxLevel int `yaml:"rxLevel"`
	TxLevel int `yaml:"txLevel"`
}

type LEDs struct {
	Red   uint8 `yaml:"red"`
	Green uint8 `yaml:"green"`
}

type Console struct {
	UART int    `yaml:"uart"`
	Baud uint32 `yaml:"baud"`
}

// All returns every known board.
func All() Boards {
	return boards
}

// Default returns the board named DefaultName.
func Default() Board {
	b, err := boards.Find(DefaultName)
	if err != nil {
		panic(err)
	}
	return b
}

// Names returns the board names in file order.
func (bs Boards) Names() []string {
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = b.Name
	}
	return names
}

func (bs Boards) Find(name string) (Board, error) {
	name = strings.ToLower(name)
	i := slices.IndexFunc(bs, func(b Board) bool { return b.Name == name })
	if i < 0 {
		return Board{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return bs[i], nil
}

func (bs Boards) FindByChip(chip string) (Board, error) {
	for _, b := range bs {
		if slices.Contains(b.Chips, strings.ToLower(chip)) {
			return b, nil
		}
	}
	return Board{}, fmt.Errorf("chip %q: %w", chip, ErrNotFound)
}

// UART returns the description of the UART with the given 1-based id.
func (b Board) UART(id int) (UART, bool) {
	i := slices.IndexFunc(b.UARTs, func(u UART) bool { return u.ID == id })
	if i < 0 {
		return UART{}, false
	}
	return b.UARTs[i], true
}

// Validate checks the description for values no MC1322x can have.
func (b Board) Validate() error {
	if b.Name == "" {
		return errors.New("board without a name")
	}
	if b.CoreClock == 0 {
		return fmt.Errorf("board %s: zero core clock", b.Name)
	}
	seen := make([]int, 0, len(b.UARTs))
	for _, u := range b.UARTs {
		if slices.Contains(seen, u.ID) {
			return fmt.Errorf("board %s: uart %d listed twice", b.Name, u.ID)
		}
		seen = append(seen, u.ID)
		for _, p := range []uint8{u.Pins.TX, u.Pins.RX, u.Pins.CTS, u.Pins.RTS} {
			if p >= 64 {
				return fmt.Errorf("board %s: uart %d pin %d out of range", b.Name, u.ID, p)
			}
		}
	}
	if b.FIFO.Depth != uartx.FIFODepth {
		return fmt.Errorf("board %s: fifo depth %d, the MC1322x has %d", b.Name, b.FIFO.Depth, uartx.FIFODepth)
	}
	if b.BufferSize != uartx.BufferSize {
		return fmt.Errorf("board %s: buffer size %d, the driver is built with %d", b.Name, b.BufferSize, uartx.BufferSize)
	}
	if b.FIFO.RxLevel < 1 || b.FIFO.RxLevel > b.FIFO.Depth || b.FIFO.TxLevel < 1 || b.FIFO.TxLevel > b.FIFO.Depth {
		return fmt.Errorf("board %s: fifo levels %d/%d outside depth %d", b.Name, b.FIFO.RxLevel, b.FIFO.TxLevel, b.FIFO.Depth)
	}
	if _, ok := b.UART(b.Console.UART); !ok {
		return fmt.Errorf("board %s: console on missing uart %d", b.Name, b.Console.UART)
	}
	return nil
}

// Parse decodes a board list in the embedded file's format.
func Parse(raw []byte) (Boards, error) {
	var t struct {
		Elements []Board `yaml:"boards"`
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	for _, b := range t.Elements {
		if err := b.Validate(); err != nil {
			return nil, err
		}
	}
	return t.Elements, nil
}

func init() {
	bs, err := Parse(rawBoards)
	if err != nil {
		panic(err)
	}
	boards = bs
}
