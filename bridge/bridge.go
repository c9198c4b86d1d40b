// bridge/bridge.go

// Package bridge connects the far end of a simulated UART line to something
// a person or another program can talk to: the local terminal, an MQTT
// topic pair or a websocket.
package bridge

import (
	"context"
	"errors"
	"io"

	"github.com/golang/glog"
)

// Transport carries raw line bytes to and from the outside world.
type Transport interface {
	io.ReadWriteCloser
}

// Pump copies bytes in both directions between wire and t until ctx is
// done or one direction stops. A direction that reaches io.EOF stops
// cleanly. Pump closes t on return; the caller owns wire and should close
// it to release the wire reader.
func Pump(ctx context.Context, wire io.ReadWriter, t Transport) error {
	errc := make(chan error, 2)
	go func() { errc <- pipe("uart->transport", t, wire) }()
	go func() { errc <- pipe("transport->uart", wire, t) }()

	var err error
	select {
	case err = <-errc:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if cerr := t.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	glog.V(1).Infof("bridge: pump stopped: %v", err)
	return err
}

func pipe(dir string, dst io.Writer, src io.Reader) error {
	n, err := io.Copy(dst, src)
	glog.V(2).Infof("bridge: %s copied %d bytes", dir, n)
	if errors.Is(err, io.ErrClosedPipe) {
		return nil
	}
	return err
}
