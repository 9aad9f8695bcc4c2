package cubenet

import (
	"crypto/tls"
	"net"

	"github.com/eapache/queue"

	"github.com/cuckooemm/cubenet/internal/session"
	"github.com/cuckooemm/cubenet/internal/socket"
)

// pendingWrite is one Send call. off is how much of data already reached
// the session.
type pendingWrite struct {
	data       []byte
	off        int
	closeAfter bool
}

type conn struct {
	fd       int
	peer     net.Addr
	sess     *session.Session
	queue    *queue.Queue // *pendingWrite, oldest first
	opened   bool         // OnConnOpened fired
	closing  bool         // close queued, ignore further events
	writable bool         // false from a would-block write until EPOLLOUT
	wantOut  bool         // EPOLLOUT subscribed
}

func newConn(fd int, peer net.Addr, tlsConfig *tls.Config) *conn {
	c := &conn{
		fd:       fd,
		peer:     peer,
		queue:    queue.New(),
		writable: true,
	}
	if tlsConfig != nil {
		c.sess = session.NewServer(socket.Raw(fd), tlsConfig, peer)
	} else {
		c.sess = session.NewPlain(socket.Raw(fd))
	}
	return c
}

func (c *conn) discard() {
	for c.queue.Length() > 0 {
		c.queue.Remove()
	}
}

// needOut reports whether the reactor has to hear about writability.
func (c *conn) needOut() bool {
	return c.sess.WantWrite() || (!c.writable && c.queue.Length() > 0)
}

// flush writes queued data until the queue is empty or the session would
// block. It returns closeNow when the connection has to be closed: after a
// write flagged closeAfter, or on a fatal write error, which is returned as
// well. Bytes reach the session strictly in queue order and a write is only
// popped once all of it was accepted.
func (c *conn) flush() (closeNow bool, err error) {
	for c.queue.Length() > 0 {
		w := c.queue.Peek().(*pendingWrite)
		for w.off < len(w.data) {
			n, err := c.sess.Write(w.data[w.off:])
			w.off += n
			if err == nil {
				continue
			}
			if session.IsRetryable(err) {
				c.writable = false
				return false, nil
			}
			c.discard()
			return true, err
		}
		c.queue.Remove()
		if w.closeAfter {
			return true, nil
		}
	}
	if err = c.sess.Flush(); err != nil && !session.IsRetryable(err) {
		return true, err
	}
	return false, nil
}
