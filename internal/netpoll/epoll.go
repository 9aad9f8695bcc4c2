package netpoll

import (
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const (
	readEvents      = unix.EPOLLPRI | unix.EPOLLIN
	writeEvents     = unix.EPOLLOUT
	readWriteEvents = readEvents | writeEvents

	// InEvents reports a readable descriptor.
	InEvents = unix.EPOLLIN | unix.EPOLLPRI | unix.EPOLLRDHUP
	// OutEvents reports a writable descriptor.
	OutEvents = unix.EPOLLOUT
	// ErrEvents reports an error or hangup on the descriptor.
	ErrEvents = unix.EPOLLERR | unix.EPOLLHUP
)

var ErrPollerClosed = errors.New("poller is closed")

// Poller wraps an epoll descriptor and an eventfd used to interrupt Wait
// from other goroutines.
type Poller struct {
	efd    int    // epoll fd
	wfd    int    // wake fd
	wfdBuf []byte // wfd buffer to read the counter
	events []unix.EpollEvent

	mu     sync.RWMutex // guards closed against concurrent Wake
	closed bool
}

// CreatePoller instantiates a poller whose Wait returns at most batch events.
func CreatePoller(batch int) (*Poller, error) {
	var (
		pr  = new(Poller)
		err error
	)
	if batch <= 0 {
		batch = 128
	}
	if pr.efd, err = unix.EpollCreate1(unix.EPOLL_CLOEXEC); err != nil {
		return nil, errors.Wrap(err, "epoll_create1")
	}
	if pr.wfd, err = unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK); err != nil {
		_ = unix.Close(pr.efd)
		return nil, errors.Wrap(err, "eventfd")
	}
	pr.wfdBuf = make([]byte, 8)
	pr.events = make([]unix.EpollEvent, batch)
	if err = pr.AddRead(pr.wfd); err != nil {
		_ = unix.Close(pr.wfd)
		_ = unix.Close(pr.efd)
		return nil, errors.Wrap(err, "register eventfd")
	}
	return pr, nil
}

// Wait blocks for at most timeoutMs and calls fn for every ready descriptor.
// Wakeups are consumed here and never reach fn. It returns the number of
// descriptors passed to fn.
func (p *Poller) Wait(timeoutMs int, fn func(fd int, ev uint32)) (int, error) {
	n, err := unix.EpollWait(p.efd, p.events, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, errors.Wrap(err, "epoll_wait")
	}
	var handled int
	for i := 0; i < n; i++ {
		fd := int(p.events[i].Fd)
		if fd == p.wfd {
			_, _ = unix.Read(p.wfd, p.wfdBuf)
			continue
		}
		fn(fd, p.events[i].Events)
		handled++
	}
	return handled, nil
}

// Make the endianness of bytes compatible with more linux OSs under different processor-architectures,
// according to http://man7.org/linux/man-pages/man2/eventfd.2.html.
var (
	u uint64 = 1
	b        = (*(*[8]byte)(unsafe.Pointer(&u)))[:]
)

// Wake interrupts a pending Wait. Safe to call from any goroutine, and a
// no-op once the poller is closed.
func (p *Poller) Wake() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPollerClosed
	}
	if _, err := unix.Write(p.wfd, b); err != nil && err != unix.EAGAIN {
		return errors.Wrap(err, "eventfd write")
	}
	return nil
}

func (p *Poller) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPollerClosed
	}
	p.closed = true
	if err := unix.Close(p.wfd); err != nil {
		_ = unix.Close(p.efd)
		return err
	}
	return unix.Close(p.efd)
}

// AddRead registers the given file-descriptor with readable event to the poller.
func (p *Poller) AddRead(fd int) error {
	return unix.EpollCtl(p.efd, unix.EPOLL_CTL_ADD, fd, &unix.EpollEvent{Fd: int32(fd), Events: readEvents})
}

// ModReadWrite subscribes fd to both readable and writable events.
func (p *Poller) ModReadWrite(fd int) error {
	return unix.EpollCtl(p.efd, unix.EPOLL_CTL_MOD, fd, &unix.EpollEvent{Fd: int32(fd), Events: readWriteEvents})
}

// ModRead drops the writable subscription of fd.
func (p *Poller) ModRead(fd int) error {
	return unix.EpollCtl(p.efd, unix.EPOLL_CTL_MOD, fd, &unix.EpollEvent{Fd: int32(fd), Events: readEvents})
}

func (p *Poller) Delete(fd int) error {
	return unix.EpollCtl(p.efd, unix.EPOLL_CTL_DEL, fd, nil)
}
