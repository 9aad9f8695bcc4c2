// Package cubenet is a single-threaded epoll reactor serving TLS or
// plaintext TCP connections carrying length-prefixed messages.
package cubenet

import (
	"net"
)

// Operation is what a callback asks the reactor to do next.
type Operation int

const (
	// None keeps the connection.
	None Operation = iota
	// Close rejects the connection. It is closed at the next tick.
	Close
	// Shutdown stops the whole reactor.
	Shutdown
)

// Handler receives connection events. Every method runs on the reactor
// goroutine and must not block.
type Handler interface {
	// OnConnOpened fires once per connection, after the TLS handshake when
	// the server has a certificate and right after accept otherwise.
	OnConnOpened(fd int, peer net.Addr)

	// OnRecv fires for every chunk read from the connection, before framing.
	// data is only valid during the call.
	OnRecv(fd int, data []byte) Operation

	// OnConnClosed fires exactly once for every opened connection, whatever
	// closed it. fd may be reused by a new connection right after.
	OnConnClosed(fd int)
}

// MessageHandler is a Handler that also wants complete framed messages.
// The reactor reassembles them from the chunks it passes to OnRecv.
type MessageHandler interface {
	Handler

	// OnMessage fires for every complete payload, in stream order per fd.
	// The handler owns payload.
	OnMessage(fd int, payload []byte) Operation
}
