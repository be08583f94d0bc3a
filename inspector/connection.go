package inspector

import (
	"errors"
	"sync"
)

// ErrDisconnected is returned by LocalConnection.SendMessage after Disconnect.
var ErrDisconnected = errors.New("local connection is disconnected")

// RemoteConnection is the frontend side of a session. Connect takes
// ownership of it.
type RemoteConnection interface {
	// OnMessage delivers one outbound message to the frontend. It must not
	// call back into the LocalConnection of the same session.
	OnMessage(message string)
	// OnDisconnect is called exactly once, when the session is destroyed.
	OnDisconnect()
}

// LocalConnection is the handle a transport uses to deliver inbound
// messages to a session.
type LocalConnection interface {
	// SendMessage processes one inbound message to completion. Messages must
	// be delivered one at a time, in order.
	SendMessage(message string) error
	// Disconnect destroys the session. It is safe to call more than once.
	Disconnect()
}

// remoteHandle owns a RemoteConnection. Sends hold the read lock so that
// release waits for in-flight sends to finish before disconnecting.
type remoteHandle struct {
	mu   sync.RWMutex
	conn RemoteConnection
}

func newRemoteHandle(conn RemoteConnection) *remoteHandle {
	return &remoteHandle{conn: conn}
}

// send reports whether the message reached the connection.
func (h *remoteHandle) send(message string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.conn == nil {
		return false
	}
	h.conn.OnMessage(message)
	return true
}

// release disconnects the connection once; later calls report false.
func (h *remoteHandle) release() bool {
	h.mu.Lock()
	conn := h.conn
	h.conn = nil
	h.mu.Unlock()

	if conn == nil {
		return false
	}
	conn.OnDisconnect()
	return true
}
