package cubenet

import (
	"crypto/tls"
	"net"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cuckooemm/cubenet/codec"
	"github.com/cuckooemm/cubenet/internal/netpoll"
	"github.com/cuckooemm/cubenet/internal/pending"
	"github.com/cuckooemm/cubenet/internal/socket"
)

// Server runs one reactor goroutine serving a listening port.
//
// Send, SendMessage, RequestClose and IsRunning may be called from any
// goroutine, including from inside callbacks. Start, Stop, SetHandler and Addr
// must not be called from a callback; return Shutdown instead.
type Server struct {
	opt    Options
	logger *zap.Logger

	mu      sync.Mutex // serializes Start, Stop and SetHandler
	handler Handler
	ln      *socket.Listener
	done    chan struct{} // closed when the reactor goroutine exits

	running atomic.Bool
	poller  atomic.Pointer[netpoll.Poller]

	outbound *pending.Writes[*pendingWrite]
	closes   *pending.FdSet
}

func NewServer(handler Handler, opt Options) *Server {
	opt = opt.withDefaults()
	return &Server{
		opt:      opt,
		logger:   opt.Logger,
		handler:  handler,
		outbound: pending.NewWrites[*pendingWrite](),
		closes:   pending.NewFdSet(),
	}
}

// SetHandler replaces the callback receiver. It fails with ErrServerRunning
// while the reactor runs.
func (s *Server) SetHandler(handler Handler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active() {
		return ErrServerRunning
	}
	s.handler = handler
	return nil
}

// Start listens on port and spawns the reactor. With both keyFile and
// certFile empty connections are plaintext, otherwise every connection
// completes a TLS handshake before OnConnOpened. On error nothing is left
// running and no descriptor stays open.
func (s *Server) Start(port int, keyFile, certFile string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active() {
		return ErrServerRunning
	}
	s.release()
	if s.handler == nil {
		return ErrNoHandler
	}

	var tlsConfig *tls.Config
	if keyFile != "" || certFile != "" {
		pair, err := tls.LoadX509KeyPair(certFile, keyFile)
		if err != nil {
			return errors.Wrap(err, "load key pair")
		}
		tlsConfig = &tls.Config{
			Certificates: []tls.Certificate{pair},
			MinVersion:   tls.VersionTLS12,
		}
	}

	ln, err := socket.Listen(port, s.opt.ReusePort)
	if err != nil {
		return err
	}
	pr, err := netpoll.CreatePoller(s.opt.BatchSize)
	if err != nil {
		_ = ln.Close()
		return err
	}
	if err = pr.AddRead(ln.Fd()); err != nil {
		_ = pr.Close()
		_ = ln.Close()
		return errors.Wrap(err, "register listener")
	}

	s.outbound.Reset()
	_ = s.closes.Take()
	el := newEventLoop(s, pr, ln.Fd(), tlsConfig)
	s.ln = ln
	s.poller.Store(pr)
	s.done = make(chan struct{})
	s.running.Store(true)

	done := s.done
	go func() {
		defer close(done)
		el.run()
	}()
	s.logger.Info("server started",
		zap.Stringer("addr", ln.Addr()),
		zap.Bool("tls", tlsConfig != nil),
		zap.Bool("obfuscate", s.opt.Obfuscate))
	return nil
}

// Stop shuts the reactor down. Every open connection is closed and reported
// through OnConnClosed before Stop returns. Stopping a server that is not
// running returns ErrServerClosed.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		return ErrServerClosed
	}
	s.running.Store(false)
	s.wake()
	<-s.done
	s.release()
	s.logger.Info("server stopped")
	return nil
}

// active reports a reactor goroutine that has not exited yet.
func (s *Server) active() bool {
	if s.done == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// release closes what an exited reactor left behind. Caller holds mu.
func (s *Server) release() {
	if s.done == nil {
		return
	}
	if pr := s.poller.Swap(nil); pr != nil {
		if err := pr.Close(); err != nil {
			s.logger.Warn("close poller", zap.Error(err))
		}
	}
	if err := s.ln.Close(); err != nil {
		s.logger.Warn("close listener", zap.Error(err))
	}
	s.ln = nil
	s.done = nil
	s.outbound.Reset()
	_ = s.closes.Take()
}

func (s *Server) IsRunning() bool {
	return s.running.Load()
}

// Addr is the bound listener address, nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Send queues data for fd. The bytes are copied, so the caller may reuse
// data right away. Writes to the same fd reach the socket in call order and
// never fail with would-block: the reactor keeps whatever the socket does
// not take. With closeAfter the connection is closed once data is flushed.
func (s *Server) Send(fd int, data []byte, closeAfter bool) error {
	if !s.running.Load() {
		return ErrServerClosed
	}
	w := &pendingWrite{data: append([]byte(nil), data...), closeAfter: closeAfter}
	if s.outbound.Add(fd, w) {
		s.wake()
	}
	return nil
}

// SendMessage frames payload and queues it like Send.
func (s *Server) SendMessage(fd int, payload []byte, closeAfter bool) error {
	if len(payload) == 0 {
		return codec.ErrZeroLength
	}
	if !s.running.Load() {
		return ErrServerClosed
	}
	w := &pendingWrite{data: codec.Encode(payload, s.opt.Obfuscate), closeAfter: closeAfter}
	if s.outbound.Add(fd, w) {
		s.wake()
	}
	return nil
}

// RequestClose closes fd at the start of the next reactor tick. Repeated
// requests for the same fd collapse into one close.
func (s *Server) RequestClose(fd int) error {
	if !s.running.Load() {
		return ErrServerClosed
	}
	if s.closes.Add(fd) {
		s.wake()
	}
	return nil
}

func (s *Server) wake() {
	if pr := s.poller.Load(); pr != nil {
		if err := pr.Wake(); err != nil && err != netpoll.ErrPollerClosed {
			s.logger.Warn("wake reactor", zap.Error(err))
		}
	}
}
