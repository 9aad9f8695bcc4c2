package buf

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRingBuffer(t *testing.T) {
	Convey("Given a small ring buffer", t, func() {
		r := NewRingBuf(8)
		So(r.Cap(), ShouldEqual, 8)
		So(r.IsEmpty(), ShouldBeTrue)

		Convey("Reading from it when empty fails", func() {
			_, err := r.Read(make([]byte, 4))
			So(err, ShouldEqual, ErrIsEmpty)
		})

		Convey("Data wrapping around the end is returned in order", func() {
			_, _ = r.Write([]byte("abcdef"))
			r.Shift(4)
			_, _ = r.Write([]byte("ghij"))
			So(r.Length(), ShouldEqual, 6)

			head, tail := r.LazyReadAll()
			So(string(head)+string(tail), ShouldEqual, "efghij")
			So(len(tail), ShouldBeGreaterThan, 0)

			head, tail = r.LazyRead(3)
			So(string(head)+string(tail), ShouldEqual, "efg")

			out := make([]byte, 6)
			n, err := r.Read(out)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 6)
			So(string(out), ShouldEqual, "efghij")
			So(r.IsEmpty(), ShouldBeTrue)
		})

		Convey("Writing past capacity grows the ring and keeps content", func() {
			_, _ = r.Write([]byte("0123456"))
			r.Shift(5)
			payload := bytes.Repeat([]byte("x"), 100)
			_, _ = r.Write(payload)
			So(r.Cap(), ShouldBeGreaterThanOrEqualTo, 102)
			So(r.Length(), ShouldEqual, 102)

			out := make([]byte, 102)
			_, _ = r.Read(out)
			So(string(out[:2]), ShouldEqual, "56")
			So(bytes.Equal(out[2:], payload), ShouldBeTrue)
		})

		Convey("Filling it exactly keeps the full length", func() {
			_, _ = r.Write([]byte("12345678"))
			So(r.Free(), ShouldEqual, 0)
			So(r.Length(), ShouldEqual, 8)
			r.Shift(8)
			So(r.IsEmpty(), ShouldBeTrue)
		})
	})

	Convey("Pooled buffers come back empty", t, func() {
		r := GetRingBuf()
		_, _ = r.Write([]byte("stale"))
		PutRingBuf(r)
		r = GetRingBuf()
		So(r.Length(), ShouldEqual, 0)
		PutRingBuf(r)
	})
}
