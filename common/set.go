package common

import "sync"

// Set is an unordered set safe for concurrent use.
type Set[T comparable] struct {
	m  map[T]struct{}
	mu sync.Mutex
}

func NewSet[T comparable](initial ...T) *Set[T] {
	s := &Set[T]{m: make(map[T]struct{}, len(initial))}
	for _, v := range initial {
		s.m[v] = struct{}{}
	}
	return s
}

// Add adds v, returning false if it was already in the set.
func (s *Set[T]) Add(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.m[v]; ok {
		return false
	}
	s.m[v] = struct{}{}
	return true
}

// Remove removes v, returning true if it was in the set.
func (s *Set[T]) Remove(v T) (exists bool) {
	s.mu.Lock()
	_, exists = s.m[v]
	delete(s.m, v)
	s.mu.Unlock()
	return exists
}

// Pop removes and returns an arbitrary value.
// ok is false if the set is empty.
func (s *Set[T]) Pop() (v T, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for v = range s.m {
		delete(s.m, v)
		return v, true
	}
	return v, false
}

func (s *Set[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
