package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WriteTyped sends a strongly-typed response payload over the WebSocket.
func WriteTyped(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(v)
}

// WriteError sends a typed ErrorResponse over the WebSocket.
func WriteError(conn *websocket.Conn, errMsg string) error {
	return WriteTyped(conn, ErrorResponse{
		Event: EventError,
		Error: errMsg,
	})
}

// ReadJSON reads and decodes a message into the provided structure.
// It sets a read deadline.
func ReadJSON(conn *websocket.Conn, v interface{}) error {
	conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
	return conn.ReadJSON(v)
}

// ReadRaw reads one message's raw bytes with the standard deadline, so
// the caller can peek at the action before full decoding.
func ReadRaw(conn *websocket.Conn) ([]byte, error) {
	conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
	_, data, err := conn.ReadMessage()
	return data, err
}

// SafeConn serializes writes when the read loop and a push goroutine
// share one socket. gorilla/websocket allows only one concurrent writer.
type SafeConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewSafeConn wraps an upgraded connection.
func NewSafeConn(conn *websocket.Conn) *SafeConn {
	return &SafeConn{conn: conn}
}

// WriteTyped sends a payload under the write lock.
func (s *SafeConn) WriteTyped(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return WriteTyped(s.conn, v)
}

// WriteError sends a typed ErrorResponse under the write lock.
func (s *SafeConn) WriteError(errMsg string) error {
	return s.WriteTyped(ErrorResponse{Event: EventError, Error: errMsg})
}
