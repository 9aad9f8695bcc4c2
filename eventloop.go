package cubenet

import (
	"crypto/tls"
	"io"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/cuckooemm/cubenet/codec"
	"github.com/cuckooemm/cubenet/internal/netpoll"
	"github.com/cuckooemm/cubenet/internal/session"
	"github.com/cuckooemm/cubenet/internal/socket"
)

type eventLoop struct {
	srv       *Server
	handler   Handler
	msgs      MessageHandler // nil unless handler wants framed messages
	poller    *netpoll.Poller
	lnFd      int
	tlsConfig *tls.Config
	timeout   int              // epoll wait in milliseconds
	buffer    []byte           // read buffer
	conns     map[int]*conn    // fd -> conn
	dirty     map[int]struct{} // connections with queued writes
	framer    *codec.Framer
	logger    *zap.Logger
}

func newEventLoop(srv *Server, pr *netpoll.Poller, lnFd int, tlsConfig *tls.Config) *eventLoop {
	el := &eventLoop{
		srv:       srv,
		handler:   srv.handler,
		poller:    pr,
		lnFd:      lnFd,
		tlsConfig: tlsConfig,
		timeout:   int(srv.opt.WaitTimeout / time.Millisecond),
		buffer:    make([]byte, srv.opt.ReadBufferSize),
		conns:     make(map[int]*conn),
		dirty:     make(map[int]struct{}),
		framer:    codec.NewFramer(srv.opt.MaxMessageSize, srv.opt.Obfuscate),
		logger:    srv.logger,
	}
	if el.timeout <= 0 {
		el.timeout = 1
	}
	el.msgs, _ = srv.handler.(MessageHandler)
	return el
}

func (el *eventLoop) run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for el.srv.running.Load() {
		el.applyCloses()
		el.drainOutbound()
		if _, err := el.poller.Wait(el.timeout, el.handleEvent); err != nil {
			el.logger.Error("event-loop exits", zap.Error(err))
			el.srv.running.Store(false)
		}
	}
	for _, c := range el.conns {
		el.loopCloseConn(c)
	}
}

func (el *eventLoop) handleEvent(fd int, ev uint32) {
	if fd == el.lnFd {
		el.loopAccept()
		return
	}
	c, ok := el.conns[fd]
	if !ok || c.closing {
		return
	}
	if ev&netpoll.ErrEvents != 0 || ev&(netpoll.InEvents|netpoll.OutEvents) == 0 {
		el.logger.Debug("connection hangup", zap.Int("fd", fd), zap.Uint32("events", ev))
		el.requestClose(c)
		return
	}
	if c.sess.State() == session.Handshaking {
		el.loopHandshake(c)
		return
	}
	if ev&netpoll.OutEvents != 0 {
		c.writable = true
		el.dirty[fd] = struct{}{}
	}
	if ev&netpoll.InEvents != 0 {
		el.loopRead(c)
	}
}

func (el *eventLoop) loopAccept() {
	for {
		fd, sa, err := socket.Accept(el.lnFd)
		if err != nil {
			if err != socket.ErrWouldBlock {
				el.logger.Warn("accept failed", zap.Error(err))
			}
			return
		}
		if ka := el.srv.opt.TcpKeepAlive; ka > 0 {
			if err = socket.SetKeepAlive(fd, int(ka/time.Second)); err != nil {
				el.logger.Debug("set keepalive", zap.Int("fd", fd), zap.Error(err))
			}
		}
		if err = el.poller.AddRead(fd); err != nil {
			el.logger.Warn("register connection", zap.Int("fd", fd), zap.Error(err))
			_ = unix.Close(fd)
			continue
		}
		c := newConn(fd, socket.SockaddrToTCPAddr(sa), el.tlsConfig)
		el.conns[fd] = c
		if c.sess.State() == session.Plaintext {
			el.loopOpen(c)
		} else {
			el.loopHandshake(c)
		}
	}
}

func (el *eventLoop) loopOpen(c *conn) {
	c.opened = true
	el.handler.OnConnOpened(c.fd, c.peer)
}

func (el *eventLoop) loopHandshake(c *conn) {
	err := c.sess.Handshake()
	switch {
	case err == nil:
		if cs, ok := c.sess.ConnectionState(); ok {
			el.logger.Debug("tls established", zap.Int("fd", c.fd),
				zap.Stringer("peer", c.peer), zap.String("cipher", tls.CipherSuiteName(cs.CipherSuite)))
		}
		el.loopOpen(c)
		if c.closing {
			return
		}
		if c.queue.Length() > 0 {
			el.loopWrite(c)
		} else {
			el.updateInterest(c)
		}
		// the handshake may have buffered application data already
		if !c.closing {
			el.loopRead(c)
		}
	case session.IsRetryable(err):
		el.updateInterest(c)
	default:
		el.logger.Debug("tls handshake failed", zap.Int("fd", c.fd),
			zap.Stringer("peer", c.peer), zap.Error(err))
		el.requestClose(c)
	}
}

func (el *eventLoop) loopRead(c *conn) {
	for {
		n, err := c.sess.Read(el.buffer)
		if n > 0 {
			if !el.dispatch(c, el.buffer[:n]) {
				return
			}
			continue
		}
		switch {
		case err == nil:
		case session.IsRetryable(err):
			return
		case err == io.EOF:
			el.requestClose(c)
			return
		default:
			el.logger.Debug("read failed", zap.Int("fd", c.fd), zap.Error(err))
			el.requestClose(c)
			return
		}
	}
}

// dispatch hands one received chunk to the handler and, for a
// MessageHandler, every message it completes. It reports whether reading
// from c should go on.
func (el *eventLoop) dispatch(c *conn, data []byte) bool {
	if !el.apply(c, el.handler.OnRecv(c.fd, data)) {
		return false
	}
	if el.msgs == nil {
		return true
	}
	if err := el.framer.Feed(c.fd, data); err != nil {
		el.logger.Info("dropping connection", zap.Int("fd", c.fd),
			zap.Stringer("peer", c.peer), zap.Error(err))
		el.requestClose(c)
		return false
	}
	for el.framer.Len() > 0 {
		m, _ := el.framer.Pop()
		mc, ok := el.conns[m.Fd]
		if !ok || mc.closing || !el.srv.running.Load() {
			continue
		}
		el.apply(mc, el.msgs.OnMessage(m.Fd, m.Payload))
	}
	return !c.closing && el.srv.running.Load()
}

func (el *eventLoop) apply(c *conn, op Operation) bool {
	switch op {
	case Close:
		el.requestClose(c)
		return false
	case Shutdown:
		el.srv.running.Store(false)
		return false
	}
	return true
}

// drainOutbound moves staged writes onto their connections and flushes
// every connection that can take data.
func (el *eventLoop) drainOutbound() {
	for fd, writes := range el.srv.outbound.Take() {
		c, ok := el.conns[fd]
		if !ok || c.closing {
			continue
		}
		for _, w := range writes {
			c.queue.Add(w)
		}
		el.dirty[fd] = struct{}{}
	}
	for fd := range el.dirty {
		c, ok := el.conns[fd]
		if !ok {
			delete(el.dirty, fd)
			continue
		}
		if !c.opened || c.closing || !c.writable {
			continue
		}
		el.loopWrite(c)
	}
}

func (el *eventLoop) loopWrite(c *conn) {
	closeNow, err := c.flush()
	if err != nil {
		el.logger.Debug("write failed", zap.Int("fd", c.fd), zap.Error(err))
	}
	if closeNow {
		delete(el.dirty, c.fd)
		el.requestClose(c)
		return
	}
	if c.queue.Length() == 0 {
		delete(el.dirty, c.fd)
	}
	el.updateInterest(c)
}

// updateInterest keeps the EPOLLOUT subscription in line with needOut.
func (el *eventLoop) updateInterest(c *conn) {
	want := c.needOut()
	if want == c.wantOut {
		return
	}
	var err error
	if want {
		err = el.poller.ModReadWrite(c.fd)
	} else {
		err = el.poller.ModRead(c.fd)
	}
	if err != nil {
		el.logger.Warn("update interest", zap.Int("fd", c.fd), zap.Error(err))
		el.requestClose(c)
		return
	}
	c.wantOut = want
}

// requestClose marks c and queues it for the next tick. The poller is woken
// so a close queued while draining does not wait for the epoll timeout.
func (el *eventLoop) requestClose(c *conn) {
	if c.closing {
		return
	}
	c.closing = true
	if el.srv.closes.Add(c.fd) {
		_ = el.poller.Wake()
	}
}

func (el *eventLoop) applyCloses() {
	for _, fd := range el.srv.closes.Take() {
		if c, ok := el.conns[fd]; ok {
			el.loopCloseConn(c)
		}
	}
}

func (el *eventLoop) loopCloseConn(c *conn) {
	if err := el.poller.Delete(c.fd); err != nil {
		el.logger.Debug("delete fd from poller", zap.Int("fd", c.fd), zap.Error(err))
	}
	delete(el.conns, c.fd)
	delete(el.dirty, c.fd)
	c.sess.Close()
	c.discard()
	el.framer.Remove(c.fd)
	el.srv.outbound.Discard(c.fd)
	if c.opened {
		el.handler.OnConnClosed(c.fd)
	}
	if err := unix.Close(c.fd); err != nil {
		el.logger.Warn("close fd", zap.Int("fd", c.fd), zap.Error(err))
	}
}
