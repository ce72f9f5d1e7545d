package task

import "sync"

// Slot is a mutex-guarded container for data produced by a background task
// and read by the render loop. The zero value is empty and ready to use.
type Slot[T any] struct {
	mu  sync.Mutex
	val T
	set bool
}

// Store replaces the slot contents.
func (s *Slot[T]) Store(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.val = v
	s.set = true
}

// Load returns the slot contents and whether anything has been stored
// since the last Clear.
func (s *Slot[T]) Load() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.val, s.set
}

// Clear empties the slot.
func (s *Slot[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.val = zero
	s.set = false
}
