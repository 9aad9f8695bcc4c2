package session

import (
	"net"
	"sync"
	"time"

	"github.com/cuckooemm/cubenet/internal/buf"
	"github.com/cuckooemm/cubenet/internal/socket"
)

// memConn is the transport under the tls.Conn. Ciphertext from the socket is
// pushed into in by the session, and everything crypto/tls writes lands in
// out until the session flushes it to the socket.
//
// While blocking is set the handshake goroutine owns reads: an empty in parks
// the goroutine (signalled on parked) until the session refills in and sends
// on resume. The two sides never run at the same time, so in and out need no
// lock. Once the handshake is over reads on an empty buffer fail with
// socket.ErrWouldBlock, which crypto/tls treats as retryable.
type memConn struct {
	in, out  *buf.RingBuffer
	blocking bool

	parked chan struct{}
	resume chan struct{}
	closed chan struct{}
	once   sync.Once

	peer net.Addr
}

func newMemConn(peer net.Addr) *memConn {
	return &memConn{
		in:       buf.GetRingBuf(),
		out:      buf.GetRingBuf(),
		blocking: true,
		parked:   make(chan struct{}),
		resume:   make(chan struct{}),
		closed:   make(chan struct{}),
		peer:     peer,
	}
}

func (m *memConn) Read(p []byte) (int, error) {
	for m.in.IsEmpty() {
		if !m.blocking {
			return 0, socket.ErrWouldBlock
		}
		select {
		case m.parked <- struct{}{}:
		case <-m.closed:
			return 0, net.ErrClosed
		}
		select {
		case <-m.resume:
		case <-m.closed:
			return 0, net.ErrClosed
		}
	}
	return m.in.Read(p)
}

func (m *memConn) Write(p []byte) (int, error) {
	select {
	case <-m.closed:
		return 0, net.ErrClosed
	default:
	}
	return m.out.Write(p)
}

func (m *memConn) Close() error {
	m.once.Do(func() { close(m.closed) })
	return nil
}

// release returns the buffers to the pool. The handshake goroutine must be gone.
func (m *memConn) release() {
	buf.PutRingBuf(m.in)
	buf.PutRingBuf(m.out)
	m.in, m.out = nil, nil
}

func (m *memConn) LocalAddr() net.Addr                { return nil }
func (m *memConn) RemoteAddr() net.Addr               { return m.peer }
func (m *memConn) SetDeadline(t time.Time) error      { return nil }
func (m *memConn) SetReadDeadline(t time.Time) error  { return nil }
func (m *memConn) SetWriteDeadline(t time.Time) error { return nil }
