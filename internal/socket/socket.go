package socket

import (
	"io"
	"net"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ErrWouldBlock is returned instead of blocking when a descriptor has
// nothing to read, no room to write, or no pending connection. It satisfies
// net.Error as a temporary timeout so crypto/tls retries it.
var ErrWouldBlock error = wouldBlockError{}

type wouldBlockError struct{}

func (wouldBlockError) Error() string   { return "operation would block" }
func (wouldBlockError) Timeout() bool   { return true }
func (wouldBlockError) Temporary() bool { return true }

// Accept takes one pending connection from the non-blocking listener lfd and
// puts it into non-blocking mode.
func Accept(lfd int) (int, unix.Sockaddr, error) {
	for {
		fd, sa, err := unix.Accept(lfd)
		switch err {
		case nil:
		case unix.EINTR:
			continue
		case unix.EAGAIN:
			return -1, nil, ErrWouldBlock
		default:
			return -1, nil, errors.Wrap(err, "accept")
		}
		unix.CloseOnExec(fd)
		if err = SetNonblock(fd); err != nil {
			_ = unix.Close(fd)
			return -1, nil, err
		}
		return fd, sa, nil
	}
}

// Read reads from fd. A closed peer is reported as io.EOF.
func Read(fd int, p []byte) (int, error) {
	for {
		n, err := unix.Read(fd, p)
		switch {
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN:
			return 0, ErrWouldBlock
		case err != nil:
			return 0, errors.Wrapf(err, "read fd %d", fd)
		case n == 0 && len(p) > 0:
			return 0, io.EOF
		}
		return n, nil
	}
}

// Write writes to fd and may return a short count without an error.
func Write(fd int, p []byte) (int, error) {
	for {
		n, err := unix.Write(fd, p)
		switch {
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN:
			return 0, ErrWouldBlock
		case err != nil:
			return 0, errors.Wrapf(err, "write fd %d", fd)
		}
		return n, nil
	}
}

// Raw exposes a descriptor as an io.ReadWriter with the semantics of Read
// and Write above.
type Raw int

func (fd Raw) Read(p []byte) (int, error)  { return Read(int(fd), p) }
func (fd Raw) Write(p []byte) (int, error) { return Write(int(fd), p) }

// SetKeepAlive sets the keepalive for the connection.
func SetKeepAlive(fd, secs int) error {
	var err error
	if err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_KEEPALIVE, 1); err != nil {
		return err
	}
	if err = unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_KEEPINTVL, secs); err != nil {
		return err
	}
	return unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_KEEPIDLE, secs)
}

// SockaddrToTCPAddr converts the peer address returned by Accept.
func SockaddrToTCPAddr(sa unix.Sockaddr) net.Addr {
	switch sa := sa.(type) {
	case *unix.SockaddrInet4:
		ip := make(net.IP, net.IPv4len)
		copy(ip, sa.Addr[:])
		return &net.TCPAddr{IP: ip, Port: sa.Port}
	case *unix.SockaddrInet6:
		ip := make(net.IP, net.IPv6len)
		copy(ip, sa.Addr[:])
		var zone string
		if sa.ZoneId != 0 {
			if ifi, err := net.InterfaceByIndex(int(sa.ZoneId)); err == nil {
				zone = ifi.Name
			}
		}
		return &net.TCPAddr{IP: ip, Port: sa.Port, Zone: zone}
	case *unix.SockaddrUnix:
		return &net.UnixAddr{Name: sa.Name, Net: "unix"}
	}
	return nil
}
