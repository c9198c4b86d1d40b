// bridge/websocket.go

package bridge

import (
	"golang.org/x/net/websocket"
)

// WebSocket carries the line over a websocket. Each write becomes one
// binary message.
type WebSocket struct {
	conn    *websocket.Conn
	pending []byte
}

var _ Transport = (*WebSocket)(nil)

// NewWebSocket wraps an established connection.
func NewWebSocket(conn *websocket.Conn) *WebSocket {
	return &WebSocket{conn: conn}
}

// DialWebSocket connects to url, e.g. ws://localhost:8080/uart1.
func DialWebSocket(url, origin string) (*WebSocket, error) {
	if origin == "" {
		origin = "http://localhost/"
	}
	conn, err := websocket.Dial(url, "", origin)
	if err != nil {
		return nil, err
	}
	return NewWebSocket(conn), nil
}

// Read returns message bytes, carrying over what did not fit last time.
func (w *WebSocket) Read(p []byte) (int, error) {
	for len(w.pending) == 0 {
		var pkt []byte
		if err := websocket.Message.Receive(w.conn, &pkt); err != nil {
			return 0, err
		}
		w.pending = pkt
	}
	n := copy(p, w.pending)
	w.pending = w.pending[n:]
	return n, nil
}

// Write sends p as one message.
func (w *WebSocket) Write(p []byte) (int, error) {
	if err := websocket.Message.Send(w.conn, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close closes the connection.
func (w *WebSocket) Close() error { return w.conn.Close() }
