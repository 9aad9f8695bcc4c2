// Package session implements the per-connection TLS state machine driven by
// the reactor. A Session wraps a raw non-blocking transport and either
// passes bytes through (plaintext) or runs crypto/tls over it. No method
// ever blocks on the network: when progress needs more socket I/O the call
// returns ErrWouldBlock and the caller retries on the next readiness event,
// whichever direction it was.
package session

import (
	"crypto/tls"
	"io"
	"net"

	"github.com/pkg/errors"

	"github.com/cuckooemm/cubenet/internal/socket"
)

type State int32

const (
	Plaintext State = iota
	Handshaking
	Established
	Closing
	Closed
)

func (s State) String() string {
	switch s {
	case Plaintext:
		return "plaintext"
	case Handshaking:
		return "handshaking"
	case Established:
		return "established"
	case Closing:
		return "closing"
	case Closed:
		return "closed"
	}
	return "unknown"
}

var (
	// ErrWouldBlock covers EAGAIN as well as TLS want-read/want-write.
	ErrWouldBlock = socket.ErrWouldBlock
	ErrClosed     = errors.New("session closed")
)

const (
	// maxRecordPayload bounds the plaintext encrypted per Write call.
	maxRecordPayload = 16 << 10
	scratchSize      = 32 << 10
)

// IsRetryable reports whether err only means "try again when ready".
func IsRetryable(err error) bool {
	return errors.Is(err, ErrWouldBlock)
}

type Session struct {
	state State
	raw   io.ReadWriter
	err   error

	conn    *tls.Conn
	mem     *memConn
	scratch []byte

	started  bool // handshake goroutine spawned
	finished bool // handshake goroutine exited
	done     chan error

	// plaintext length whose ciphertext is still in mem.out
	pendingPlain int
	released     bool
}

// NewPlain returns a pass-through session over raw.
func NewPlain(raw io.ReadWriter) *Session {
	return &Session{state: Plaintext, raw: raw}
}

// NewServer returns a server-side TLS session over raw. The handshake starts
// on the first Handshake call. config is shared and must not be mutated.
func NewServer(raw io.ReadWriter, config *tls.Config, peer net.Addr) *Session {
	s := &Session{
		state:   Handshaking,
		raw:     raw,
		mem:     newMemConn(peer),
		scratch: make([]byte, scratchSize),
		done:    make(chan error, 1),
	}
	s.conn = tls.Server(s.mem, config)
	return s
}

func (s *Session) State() State { return s.state }

// Err is the error that moved the session to Closed, if any.
func (s *Session) Err() error { return s.err }

// ConnectionState reports the negotiated TLS parameters. ok is false for
// plaintext sessions and before the handshake completes.
func (s *Session) ConnectionState() (cs tls.ConnectionState, ok bool) {
	if s.conn == nil || s.state != Established {
		return cs, false
	}
	return s.conn.ConnectionState(), true
}

// WantWrite reports buffered ciphertext that still has to reach the socket.
func (s *Session) WantWrite() bool {
	return s.mem != nil && s.mem.out != nil && !s.mem.out.IsEmpty()
}

// Handshake advances the TLS handshake as far as the socket allows. It
// returns nil once the session is established, ErrWouldBlock when it needs
// another readiness event, and any other error when the session is dead.
func (s *Session) Handshake() error {
	switch s.state {
	case Plaintext, Established:
		return nil
	case Handshaking:
	default:
		return ErrClosed
	}
	if !s.started {
		s.started = true
		go s.serve()
		if err := s.await(); err != ErrWouldBlock {
			return s.finish(err)
		}
	}
	for {
		if err := s.Flush(); err != nil && err != ErrWouldBlock {
			return err
		}
		n, err := s.raw.Read(s.scratch)
		switch {
		case err == ErrWouldBlock:
			return ErrWouldBlock
		case err == io.EOF:
			return s.fail(errors.Wrap(io.ErrUnexpectedEOF, "tls handshake"))
		case err != nil:
			return s.fail(errors.Wrap(err, "tls handshake"))
		}
		_, _ = s.mem.in.Write(s.scratch[:n])
		s.mem.resume <- struct{}{}
		if err = s.await(); err != ErrWouldBlock {
			return s.finish(err)
		}
	}
}

func (s *Session) serve() {
	s.done <- s.conn.Handshake()
}

// await returns once the handshake goroutine either parked for more input
// or exited.
func (s *Session) await() error {
	select {
	case <-s.mem.parked:
		return ErrWouldBlock
	case err := <-s.done:
		s.finished = true
		if err == nil {
			return nil
		}
		return errors.Wrap(err, "tls handshake")
	}
}

func (s *Session) finish(err error) error {
	if err != nil {
		return s.fail(err)
	}
	s.state = Established
	s.mem.blocking = false
	if err = s.Flush(); err != nil && err != ErrWouldBlock {
		return err
	}
	return nil
}

func (s *Session) fail(err error) error {
	if s.err == nil {
		s.err = err
	}
	s.state = Closed
	return err
}

// Read returns decrypted (or raw) bytes. It reads from the socket until a
// byte of application data is available, the socket would block, the peer
// closed (io.EOF) or the session failed.
func (s *Session) Read(p []byte) (int, error) {
	switch s.state {
	case Plaintext:
		n, err := s.raw.Read(p)
		switch {
		case err == nil:
			return n, nil
		case err == ErrWouldBlock:
			return 0, err
		case err == io.EOF:
			s.state = Closed
			return 0, io.EOF
		}
		return 0, s.fail(err)
	case Established:
	default:
		return 0, ErrClosed
	}
	for {
		n, err := s.conn.Read(p)
		if n > 0 {
			return n, nil
		}
		switch {
		case err == nil:
			return 0, ErrWouldBlock
		case IsRetryable(err):
		case err == io.EOF:
			s.state = Closed
			return 0, io.EOF
		default:
			return 0, s.fail(errors.Wrap(err, "tls read"))
		}

		m, err := s.raw.Read(s.scratch)
		switch {
		case err == nil:
			_, _ = s.mem.in.Write(s.scratch[:m])
		case err == ErrWouldBlock:
			return 0, ErrWouldBlock
		case err == io.EOF:
			s.state = Closed
			return 0, io.EOF
		default:
			return 0, s.fail(err)
		}
	}
}

// Write sends p and returns how much of it was accepted. A short count
// comes with ErrWouldBlock.
//
// In TLS mode one record worth of p is encrypted per call, and its length
// is only reported once all of its ciphertext reached the socket. Until then
// the call returns (0, ErrWouldBlock) and must be retried with the same
// unflushed bytes.
func (s *Session) Write(p []byte) (int, error) {
	switch s.state {
	case Plaintext:
		n, err := s.raw.Write(p)
		switch {
		case err == ErrWouldBlock:
			return 0, err
		case err != nil:
			return 0, s.fail(err)
		case n < len(p):
			return n, ErrWouldBlock
		}
		return n, nil
	case Established:
	default:
		return 0, ErrClosed
	}
	if s.pendingPlain == 0 {
		if len(p) > maxRecordPayload {
			p = p[:maxRecordPayload]
		}
		if _, err := s.conn.Write(p); err != nil {
			return 0, s.fail(errors.Wrap(err, "tls write"))
		}
		s.pendingPlain = len(p)
	}
	if err := s.Flush(); err != nil {
		return 0, err
	}
	n := s.pendingPlain
	s.pendingPlain = 0
	return n, nil
}

// Flush pushes buffered ciphertext to the socket.
func (s *Session) Flush() error {
	if s.mem == nil || s.mem.out == nil {
		return nil
	}
	for !s.mem.out.IsEmpty() {
		head, _ := s.mem.out.LazyReadAll()
		n, err := s.raw.Write(head)
		s.mem.out.Shift(n)
		switch {
		case err == ErrWouldBlock:
			return err
		case err != nil:
			return s.fail(errors.Wrap(err, "tls flush"))
		case n < len(head):
			return ErrWouldBlock
		}
	}
	return nil
}

// Close releases the session. An established TLS session gets one
// best-effort attempt at sending close_notify. Calling Close again is a no-op.
func (s *Session) Close() {
	if s.released {
		return
	}
	s.released = true
	if s.conn != nil {
		if s.state == Established {
			s.state = Closing
			if err := s.conn.CloseWrite(); err == nil {
				_ = s.Flush()
			}
		}
		_ = s.mem.Close()
		if s.started && !s.finished {
			<-s.done
			s.finished = true
		}
		s.mem.release()
	}
	s.state = Closed
}
