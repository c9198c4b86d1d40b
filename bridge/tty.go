// bridge/tty.go

package bridge

import (
	tty "github.com/mattn/go-tty"
)

// TTY puts a terminal in raw mode and uses it as the far end of the line.
type TTY struct {
	tty     *tty.TTY
	restore func() error
}

var _ Transport = (*TTY)(nil)

// OpenTTY opens the device at path, or the controlling terminal when path
// is empty.
func OpenTTY(path string) (*TTY, error) {
	var (
		t   *tty.TTY
		err error
	)
	if path == "" {
		t, err = tty.Open()
	} else {
		t, err = tty.OpenDevice(path)
	}
	if err != nil {
		return nil, err
	}
	restore, err := t.Raw()
	if err != nil {
		t.Close()
		return nil, err
	}
	return &TTY{tty: t, restore: restore}, nil
}

func (t *TTY) Read(p []byte) (int, error)  { return t.tty.Input().Read(p) }
func (t *TTY) Write(p []byte) (int, error) { return t.tty.Output().Write(p) }

// Close restores the terminal mode and closes it.
func (t *TTY) Close() error {
	err := t.restore()
	if cerr := t.tty.Close(); err == nil {
		err = cerr
	}
	return err
}
