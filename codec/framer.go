// Package codec implements the wire format: a 4-byte big-endian length
// followed by that many payload bytes, optionally XOR-obfuscated with a key
// derived from the length.
package codec

import (
	"encoding/binary"

	"github.com/eapache/queue"
	"github.com/pkg/errors"

	"github.com/cuckooemm/cubenet/internal/buf"
)

// Message is a complete payload extracted from fd's byte stream.
type Message struct {
	Fd      int
	Payload []byte
}

// Framer turns per-descriptor byte streams into complete messages. Bytes
// that do not form a whole frame yet are kept per fd until more arrive.
// Extracted messages wait in one FIFO; messages of the same fd keep their
// stream order. A Framer is not safe for concurrent use.
type Framer struct {
	max        int
	obfuscated bool
	states     map[int]*buf.RingBuffer
	ready      *queue.Queue
}

// NewFramer returns a framer rejecting payloads larger than maxSize
// (DefaultMaxSize when maxSize <= 0).
func NewFramer(maxSize int, obfuscated bool) *Framer {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Framer{
		max:        maxSize,
		obfuscated: obfuscated,
		states:     make(map[int]*buf.RingBuffer),
		ready:      queue.New(),
	}
}

// Feed appends p to fd's stream and moves every complete frame to the ready
// queue. A zero or oversized declared length fails the stream: fd's
// buffered bytes and its not yet popped messages are dropped.
func (f *Framer) Feed(fd int, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	rb, ok := f.states[fd]
	if !ok {
		rb = buf.GetRingBuf()
		f.states[fd] = rb
	}
	_, _ = rb.Write(p)

	var hdr [HeaderSize]byte
	for rb.Length() >= HeaderSize {
		head, tail := rb.LazyRead(HeaderSize)
		copy(hdr[copy(hdr[:], head):], tail)
		n := binary.BigEndian.Uint32(hdr[:])
		if err := checkLength(n, f.max); err != nil {
			f.Remove(fd)
			return errors.WithMessagef(err, "fd %d", fd)
		}
		if rb.Length() < HeaderSize+int(n) {
			break
		}
		rb.Shift(HeaderSize)
		payload := make([]byte, n)
		_, _ = rb.Read(payload)
		if f.obfuscated {
			Obfuscate(payload)
		}
		f.ready.Add(Message{Fd: fd, Payload: payload})
	}
	if rb.IsEmpty() {
		delete(f.states, fd)
		buf.PutRingBuf(rb)
	}
	return nil
}

// Pop removes and returns the oldest ready message.
func (f *Framer) Pop() (Message, bool) {
	if f.ready.Length() == 0 {
		return Message{}, false
	}
	return f.ready.Remove().(Message), true
}

// PeekSize is the payload size of the next ready message, 0 when none is
// ready. Payloads are never empty.
func (f *Framer) PeekSize() int {
	if f.ready.Length() == 0 {
		return 0
	}
	return len(f.ready.Peek().(Message).Payload)
}

// Len is the number of ready messages.
func (f *Framer) Len() int {
	return f.ready.Length()
}

// Buffered is the number of bytes held for fd that do not form a frame yet.
func (f *Framer) Buffered(fd int) int {
	if rb, ok := f.states[fd]; ok {
		return rb.Length()
	}
	return 0
}

// Remove drops fd's buffered bytes and ready messages. Removing an unknown
// fd is a no-op.
func (f *Framer) Remove(fd int) {
	if rb, ok := f.states[fd]; ok {
		delete(f.states, fd)
		buf.PutRingBuf(rb)
	}
	n := f.ready.Length()
	for i := 0; i < n; i++ {
		m := f.ready.Remove().(Message)
		if m.Fd != fd {
			f.ready.Add(m)
		}
	}
}
