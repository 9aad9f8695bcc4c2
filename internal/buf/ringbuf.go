package buf

import (
	"sync"

	"github.com/pkg/errors"
)

const (
	bitSize       = 32 << (^uint(0) >> 63)
	maxIntHeadBit = 1 << (bitSize - 2)

	// DefaultSize is the initial capacity of pooled ring buffers.
	DefaultSize = 0x1000 // 4096
	// pooled buffers that grew beyond this are left to the GC
	maxPooledSize = 1 << 20
)

var ErrIsEmpty = errors.New("ring-buffer is empty")

var ringPool = sync.Pool{
	New: func() interface{} {
		return NewRingBuf(DefaultSize)
	},
}

// GetRingBuf takes an empty ring buffer from the pool.
func GetRingBuf() *RingBuffer {
	return ringPool.Get().(*RingBuffer)
}

// PutRingBuf resets r and hands it back to the pool.
func PutRingBuf(r *RingBuffer) {
	if r == nil {
		return
	}
	r.Reset()
	if r.size > maxPooledSize {
		return
	}
	ringPool.Put(r)
}

// RingBuffer is a growable byte ring. It is not safe for concurrent use.
type RingBuffer struct {
	buf     []byte
	size    int
	mask    int
	r       int // next position to read
	w       int // next position to write
	isEmpty bool
}

func NewRingBuf(size int) *RingBuffer {
	size = ceilToPowerOfTwo(size)
	return &RingBuffer{
		buf:     make([]byte, size),
		size:    size,
		mask:    size - 1,
		isEmpty: true,
	}
}

// LazyRead returns up to n buffered bytes without moving the read pointer.
// The data may wrap, in which case it is split across head and tail.
func (r *RingBuffer) LazyRead(n int) (head []byte, tail []byte) {
	if r.isEmpty || n <= 0 {
		return
	}
	if r.w > r.r {
		m := r.w - r.r
		if m > n {
			m = n
		}
		head = r.buf[r.r : r.r+m]
		return
	}
	m := r.size - r.r + r.w
	if m > n {
		m = n
	}
	if r.r+m <= r.size {
		head = r.buf[r.r : r.r+m]
	} else {
		c1 := r.size - r.r
		head = r.buf[r.r:r.size]
		tail = r.buf[0 : m-c1]
	}
	return
}

// LazyReadAll returns every buffered byte without moving the read pointer.
func (r *RingBuffer) LazyReadAll() (head []byte, tail []byte) {
	if r.isEmpty {
		return
	}
	if r.w > r.r {
		head = r.buf[r.r:r.w]
		return
	}
	head = r.buf[r.r:r.size]
	if r.w != 0 {
		tail = r.buf[0:r.w]
	}
	return
}

// Shift discards n bytes from the front.
func (r *RingBuffer) Shift(n int) {
	if n <= 0 {
		return
	}
	if n < r.Length() {
		r.r = (r.r + n) & r.mask
		if r.r == r.w {
			r.isEmpty = true
		}
	} else {
		r.Reset()
	}
}

func (r *RingBuffer) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.isEmpty {
		return 0, ErrIsEmpty
	}
	if r.w > r.r {
		n = r.w - r.r
		if n > len(p) {
			n = len(p)
		}
		copy(p, r.buf[r.r:r.r+n])
		r.r = r.r + n
		if r.r == r.w {
			r.isEmpty = true
		}
		return
	}

	n = r.size - r.r + r.w
	if n > len(p) {
		n = len(p)
	}
	if r.r+n <= r.size {
		copy(p, r.buf[r.r:r.r+n])
	} else {
		c1 := r.size - r.r
		copy(p, r.buf[r.r:r.size])
		copy(p[c1:], r.buf[0:n-c1])
	}
	r.r = (r.r + n) & r.mask
	if r.r == r.w {
		r.isEmpty = true
	}
	return n, err
}

// Write appends p, growing the ring when it does not fit.
func (r *RingBuffer) Write(p []byte) (n int, err error) {
	n = len(p)
	if n == 0 {
		return 0, nil
	}
	free := r.Free()
	if n > free {
		r.malloc(n - free)
	}

	if r.w >= r.r {
		c1 := r.size - r.w
		if c1 >= n {
			copy(r.buf[r.w:], p)
			r.w += n
		} else {
			copy(r.buf[r.w:], p[:c1])
			copy(r.buf[0:], p[c1:])
			r.w = n - c1
		}
	} else {
		copy(r.buf[r.w:], p)
		r.w += n
	}
	if r.w == r.size {
		r.w = 0
	}
	r.isEmpty = false
	return n, err
}

// Free reports the bytes that can be written without growing.
func (r *RingBuffer) Free() int {
	if r.r == r.w {
		if r.isEmpty {
			return r.size
		}
		return 0
	}
	if r.w < r.r {
		return r.r - r.w
	}
	return r.size - r.w + r.r
}

func (r *RingBuffer) Reset() {
	r.r = 0
	r.w = 0
	r.isEmpty = true
}

// Cap is the current capacity.
func (r *RingBuffer) Cap() int {
	return r.size
}

// Length is the number of buffered bytes.
func (r *RingBuffer) Length() int {
	if r.r == r.w {
		if r.isEmpty {
			return 0
		}
		return r.size
	}
	if r.w > r.r {
		return r.w - r.r
	}
	return r.size - r.r + r.w
}

func (r *RingBuffer) IsEmpty() bool {
	return r.isEmpty
}

// malloc grows the ring by at least n bytes and linearizes its content.
func (r *RingBuffer) malloc(n int) {
	newCap := ceilToPowerOfTwo(r.size + n)
	newBuf := make([]byte, newCap)
	oldLen := r.Length()
	_, _ = r.Read(newBuf)
	r.r = 0
	r.w = oldLen
	r.size = newCap
	r.mask = newCap - 1
	r.buf = newBuf
	r.isEmpty = oldLen == 0
}

func ceilToPowerOfTwo(n int) int {
	if n&maxIntHeadBit != 0 && n > maxIntHeadBit {
		panic("argument is too large")
	}
	if n <= 2 {
		return 2
	}
	n--
	n = fillBits(n)
	n++
	return n
}

func fillBits(n int) int {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n
}
