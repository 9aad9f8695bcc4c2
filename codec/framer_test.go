package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func stream(payloads ...[]byte) []byte {
	var out []byte
	for _, p := range payloads {
		out = AppendFrame(out, p, false)
	}
	return out
}

func drain(f *Framer) (fds []int, payloads [][]byte) {
	for {
		m, ok := f.Pop()
		if !ok {
			return
		}
		fds = append(fds, m.Fd)
		payloads = append(payloads, m.Payload)
	}
}

func testPayloads() [][]byte {
	rnd := rand.New(rand.NewSource(42))
	var out [][]byte
	for i := 0; i < 50; i++ {
		p := make([]byte, 1+rnd.Intn(3000))
		rnd.Read(p)
		out = append(out, p)
	}
	out = append(out, []byte("hello"), bytes.Repeat([]byte{0xff}, 9000))
	return out
}

func TestFramerRoundTrip(t *testing.T) {
	payloads := testPayloads()
	wire := stream(payloads...)

	Convey("Feeding an encoded stream yields the original payloads", t, func() {
		for _, chunk := range []int{1, 2, 3, 4, 5, 7, 64, 4096, len(wire)} {
			chunk := chunk
			Convey(fmt.Sprintf("in chunks of %d bytes", chunk), func() {
				f := NewFramer(0, false)
				for off := 0; off < len(wire); off += chunk {
					end := off + chunk
					if end > len(wire) {
						end = len(wire)
					}
					So(f.Feed(3, wire[off:end]), ShouldBeNil)
				}
				fds, got := drain(f)
				So(len(got), ShouldEqual, len(payloads))
				for i := range payloads {
					if !bytes.Equal(got[i], payloads[i]) {
						t.Fatalf("payload %d differs", i)
					}
					So(fds[i], ShouldEqual, 3)
				}
				So(f.Buffered(3), ShouldEqual, 0)
			})
		}

		Convey("in random chunk sizes", func() {
			rnd := rand.New(rand.NewSource(7))
			f := NewFramer(0, false)
			for off := 0; off < len(wire); {
				end := off + 1 + rnd.Intn(700)
				if end > len(wire) {
					end = len(wire)
				}
				So(f.Feed(9, wire[off:end]), ShouldBeNil)
				off = end
			}
			_, got := drain(f)
			So(len(got), ShouldEqual, len(payloads))
			for i := range payloads {
				if !bytes.Equal(got[i], payloads[i]) {
					t.Fatalf("payload %d differs", i)
				}
			}
		})
	})
}

func TestFramerSplitMessage(t *testing.T) {
	Convey("A message split mid-payload is surfaced once complete", t, func() {
		f := NewFramer(0, false)
		So(f.Feed(5, []byte{0, 0, 0, 5, 'h', 'e'}), ShouldBeNil)
		So(f.Len(), ShouldEqual, 0)
		So(f.PeekSize(), ShouldEqual, 0)
		So(f.Buffered(5), ShouldEqual, 6)

		So(f.Feed(5, []byte("llo")), ShouldBeNil)
		So(f.Len(), ShouldEqual, 1)
		So(f.PeekSize(), ShouldEqual, 5)
		m, ok := f.Pop()
		So(ok, ShouldBeTrue)
		So(m.Fd, ShouldEqual, 5)
		So(string(m.Payload), ShouldEqual, "hello")
		_, ok = f.Pop()
		So(ok, ShouldBeFalse)
	})

	Convey("A remainder after a complete message is kept", t, func() {
		f := NewFramer(0, false)
		wire := stream([]byte("one"), []byte("two"))
		So(f.Feed(1, wire[:len(wire)-1]), ShouldBeNil)
		So(f.Len(), ShouldEqual, 1)
		So(f.Buffered(1), ShouldEqual, HeaderSize+2)
		So(f.Feed(1, wire[len(wire)-1:]), ShouldBeNil)
		_, got := drain(f)
		So(got, ShouldResemble, [][]byte{[]byte("one"), []byte("two")})
	})
}

func TestFramerInterleavedFds(t *testing.T) {
	Convey("Streams of different fds do not mix", t, func() {
		f := NewFramer(0, false)
		a := stream([]byte("a1"), []byte("a2"))
		b := stream([]byte("b1"))
		So(f.Feed(1, a[:3]), ShouldBeNil)
		So(f.Feed(2, b[:5]), ShouldBeNil)
		So(f.Feed(1, a[3:]), ShouldBeNil)
		So(f.Feed(2, b[5:]), ShouldBeNil)
		fds, got := drain(f)
		So(fds, ShouldResemble, []int{1, 1, 2})
		So(got, ShouldResemble, [][]byte{[]byte("a1"), []byte("a2"), []byte("b1")})
	})
}

func TestFramerRejects(t *testing.T) {
	Convey("Given a framer limited to 1024 bytes", t, func() {
		f := NewFramer(1024, false)

		Convey("A zero length is fatal, not an empty message", func() {
			err := f.Feed(4, []byte{0, 0, 0, 0, 'x'})
			So(errors.Is(err, ErrZeroLength), ShouldBeTrue)
			So(f.Len(), ShouldEqual, 0)
			So(f.Buffered(4), ShouldEqual, 0)
		})

		Convey("An oversized length is fatal before any payload arrives", func() {
			var hdr [HeaderSize]byte
			binary.BigEndian.PutUint32(hdr[:], 0xfffffff0)
			err := f.Feed(4, hdr[:])
			So(errors.Is(err, ErrTooLarge), ShouldBeTrue)
			So(f.Buffered(4), ShouldEqual, 0)
		})

		Convey("A bad header drops messages already extracted for that fd", func() {
			good := stream([]byte("ok"))
			So(f.Feed(7, good), ShouldBeNil)
			err := f.Feed(4, append(stream([]byte("x")), 0, 0, 0, 0))
			So(errors.Is(err, ErrZeroLength), ShouldBeTrue)
			fds, _ := drain(f)
			So(fds, ShouldResemble, []int{7})
		})

		Convey("The limit itself is accepted", func() {
			So(f.Feed(4, stream(make([]byte, 1024))), ShouldBeNil)
			So(f.PeekSize(), ShouldEqual, 1024)
		})
	})
}

func TestFramerRemove(t *testing.T) {
	Convey("Remove drops state and ready messages of one fd", t, func() {
		f := NewFramer(0, false)
		So(f.Feed(1, stream([]byte("a"), []byte("b"))), ShouldBeNil)
		So(f.Feed(2, stream([]byte("c"))), ShouldBeNil)
		So(f.Feed(1, []byte{0, 0}), ShouldBeNil)
		f.Remove(1)
		So(f.Buffered(1), ShouldEqual, 0)
		fds, _ := drain(f)
		So(fds, ShouldResemble, []int{2})

		Convey("and is idempotent", func() {
			So(func() { f.Remove(1) }, ShouldNotPanic)
			So(func() { f.Remove(99) }, ShouldNotPanic)
			So(f.Len(), ShouldEqual, 0)
		})
	})
}

func TestObfuscation(t *testing.T) {
	Convey("Obfuscation is its own inverse and leaves the header alone", t, func() {
		payload := []byte(`{"cmd":"login","user":"cube"}`)
		frame := Encode(payload, true)
		So(binary.BigEndian.Uint32(frame), ShouldEqual, uint32(len(payload)))
		So(bytes.Equal(frame[HeaderSize:], payload), ShouldBeFalse)

		f := NewFramer(0, true)
		So(f.Feed(1, frame), ShouldBeNil)
		m, ok := f.Pop()
		So(ok, ShouldBeTrue)
		So(string(m.Payload), ShouldEqual, string(payload))

		got, err := ReadFrame(bytes.NewReader(frame), DefaultMaxSize, true)
		So(err, ShouldBeNil)
		So(string(got), ShouldEqual, string(payload))
	})

	Convey("Keys follow the length-derived offset and size", t, func() {
		for _, n := range []int{1, 5, 254, 255, 256, 1211, 1212, 5000} {
			key := keyFor(n)
			So(len(key), ShouldEqual, n%(MaxKey-1)+1)
			for i := range key {
				if key[i] != keyPool[(n+i)%KeyPoolSize] {
					t.Fatalf("key byte %d for length %d", i, n)
				}
			}
		}
		p := []byte{0, 0, 0}
		Obfuscate(p)
		So(p, ShouldResemble, []byte{keyPool[3], keyPool[4], keyPool[5]})
	})
}

func TestReadFrame(t *testing.T) {
	Convey("ReadFrame applies the same length checks", t, func() {
		_, err := ReadFrame(bytes.NewReader([]byte{0, 0, 0, 0}), 16, false)
		So(errors.Is(err, ErrZeroLength), ShouldBeTrue)
		_, err = ReadFrame(bytes.NewReader(stream(make([]byte, 17))), 16, false)
		So(errors.Is(err, ErrTooLarge), ShouldBeTrue)
		got, err := ReadFrame(bytes.NewReader(stream([]byte("abc"))), 16, false)
		So(err, ShouldBeNil)
		So(string(got), ShouldEqual, "abc")
	})
}
