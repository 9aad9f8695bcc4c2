package pending

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFdSet(t *testing.T) {
	Convey("Given an empty close set", t, func() {
		s := NewFdSet()
		So(s.Take(), ShouldBeNil)

		Convey("Duplicates are dropped and order is kept", func() {
			So(s.Add(7), ShouldBeTrue)
			So(s.Add(3), ShouldBeTrue)
			So(s.Add(7), ShouldBeFalse)
			So(s.Len(), ShouldEqual, 2)
			So(s.Take(), ShouldResemble, []int{7, 3})
			So(s.Len(), ShouldEqual, 0)

			Convey("A taken fd can be queued again", func() {
				So(s.Add(7), ShouldBeTrue)
				So(s.Take(), ShouldResemble, []int{7})
			})
		})
	})
}

func TestWrites(t *testing.T) {
	Convey("Given a staging area", t, func() {
		w := NewWrites[string]()

		Convey("Only the first add asks for a wakeup", func() {
			So(w.Add(1, "a"), ShouldBeTrue)
			So(w.Add(1, "b"), ShouldBeFalse)
			So(w.Add(2, "c"), ShouldBeFalse)
			staged := w.Take()
			So(staged[1], ShouldResemble, []string{"a", "b"})
			So(staged[2], ShouldResemble, []string{"c"})
			So(w.Take(), ShouldBeNil)
			So(w.Add(1, "d"), ShouldBeTrue)
		})

		Convey("Discard drops one descriptor only", func() {
			w.Add(1, "a")
			w.Add(2, "b")
			w.Discard(1)
			w.Discard(9)
			staged := w.Take()
			So(staged, ShouldNotContainKey, 1)
			So(staged[2], ShouldResemble, []string{"b"})
		})

		Convey("Concurrent producers keep their own order", func() {
			const producers, each = 8, 500
			var wg sync.WaitGroup
			for p := 0; p < producers; p++ {
				wg.Add(1)
				go func(p int) {
					defer wg.Done()
					for i := 0; i < each; i++ {
						w.Add(p, string(rune('a'+i%26)))
					}
				}(p)
			}
			wg.Wait()
			staged := w.Take()
			So(len(staged), ShouldEqual, producers)
			for p := 0; p < producers; p++ {
				So(len(staged[p]), ShouldEqual, each)
				for i, s := range staged[p] {
					if s != string(rune('a'+i%26)) {
						t.Fatalf("producer %d item %d out of order", p, i)
					}
				}
			}
		})
	})
}
