// Package pending holds the only reactor state mutated from other
// goroutines: close requests and writes waiting to be picked up by the loop.
// Both are swapped out whole by the loop once per tick.
package pending

import (
	"sync"
)

// FdSet is an insertion-ordered set of descriptors queued for close.
type FdSet struct {
	mu  sync.Mutex
	fds []int
	set map[int]struct{}
}

func NewFdSet() *FdSet {
	return &FdSet{set: make(map[int]struct{})}
}

// Add queues fd and reports whether it was not queued already.
func (s *FdSet) Add(fd int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.set[fd]; ok {
		return false
	}
	s.set[fd] = struct{}{}
	s.fds = append(s.fds, fd)
	return true
}

// Take empties the set and returns its members in insertion order.
func (s *FdSet) Take() []int {
	s.mu.Lock()
	fds := s.fds
	if len(fds) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.fds = nil
	s.set = make(map[int]struct{}, len(fds))
	s.mu.Unlock()
	return fds
}

func (s *FdSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fds)
}

// Writes stages outbound items per descriptor, keeping submission order.
type Writes[T any] struct {
	mu    sync.Mutex
	byFd  map[int][]T
	count int
}

func NewWrites[T any]() *Writes[T] {
	return &Writes[T]{byFd: make(map[int][]T)}
}

// Add appends item to fd's staged list. The result is true when the staging
// area was empty before, which is when the loop needs a wakeup.
func (w *Writes[T]) Add(fd int, item T) (first bool) {
	w.mu.Lock()
	w.byFd[fd] = append(w.byFd[fd], item)
	w.count++
	first = w.count == 1
	w.mu.Unlock()
	return
}

// Take swaps out everything staged so far.
func (w *Writes[T]) Take() map[int][]T {
	w.mu.Lock()
	if w.count == 0 {
		w.mu.Unlock()
		return nil
	}
	staged := w.byFd
	w.byFd = make(map[int][]T, len(staged))
	w.count = 0
	w.mu.Unlock()
	return staged
}

// Discard drops whatever is staged for fd.
func (w *Writes[T]) Discard(fd int) {
	w.mu.Lock()
	if items, ok := w.byFd[fd]; ok {
		w.count -= len(items)
		delete(w.byFd, fd)
	}
	w.mu.Unlock()
}

// Reset drops everything.
func (w *Writes[T]) Reset() {
	w.mu.Lock()
	w.byFd = make(map[int][]T)
	w.count = 0
	w.mu.Unlock()
}
