package socket

import (
	"net"
	"os"
	"strconv"
	"sync"

	"github.com/libp2p/go-reuseport"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Listener is a TCP listener whose duplicated descriptor is driven by epoll
// instead of the Go runtime poller.
type Listener struct {
	f    *os.File
	fd   int
	ln   net.Listener
	once sync.Once
}

// Listen binds every interface on port. Port 0 picks an ephemeral port.
func Listen(port int, reusePort bool) (*Listener, error) {
	var (
		ln   Listener
		addr = ":" + strconv.Itoa(port)
		err  error
	)
	if reusePort {
		ln.ln, err = reuseport.Listen("tcp", addr)
	} else {
		ln.ln, err = net.Listen("tcp", addr)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "listen on %s", addr)
	}
	if err = ln.initFd(); err != nil {
		return nil, err
	}
	return &ln, nil
}

func (ln *Listener) initFd() error {
	tl, ok := ln.ln.(*net.TCPListener)
	if !ok {
		ln.Close()
		return errors.Errorf("unexpected listener type %T", ln.ln)
	}
	var err error
	if ln.f, err = tl.File(); err != nil {
		ln.Close()
		return errors.Wrap(err, "dup listener fd")
	}
	ln.fd = int(ln.f.Fd())
	if err = SetNonblock(ln.fd); err != nil {
		ln.Close()
		return err
	}
	return nil
}

// Fd is the non-blocking descriptor to register with epoll.
func (ln *Listener) Fd() int {
	return ln.fd
}

func (ln *Listener) Addr() net.Addr {
	return ln.ln.Addr()
}

// Close releases both the duplicated descriptor and the original listener.
// Only the first call has an effect.
func (ln *Listener) Close() (err error) {
	ln.once.Do(func() {
		if ln.f != nil {
			if e := ln.f.Close(); e != nil {
				err = errors.Wrap(e, "close listener fd")
			}
		}
		if ln.ln != nil {
			if e := ln.ln.Close(); e != nil && err == nil {
				err = errors.Wrap(e, "close listener")
			}
		}
	})
	return
}

// SetNonblock switches fd to non-blocking mode.
func SetNonblock(fd int) error {
	return errors.Wrapf(unix.SetNonblock(fd, true), "set nonblock on fd %d", fd)
}
