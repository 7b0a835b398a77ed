package boundedstack

import "iter"

// BoundedStack is a fixed-capacity LIFO stored base-up in an array.
// top is -1 when empty and Cap()-1 when full; slots 0..top are occupied.
type BoundedStack[T any] struct {
	items []T
	top   int
}

// New creates an empty stack holding at most capacity elements.
// A capacity below 1 is raised to 1.
func New[T any](capacity int) *BoundedStack[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &BoundedStack[T]{items: make([]T, capacity), top: -1}
}

func (s *BoundedStack[T]) IsEmpty() bool { return s.top == -1 }

func (s *BoundedStack[T]) IsFull() bool { return s.top == len(s.items)-1 }

// Top returns the index of the top element, -1 when the stack is empty.
func (s *BoundedStack[T]) Top() int { return s.top }

// Len reports the stack depth.
func (s *BoundedStack[T]) Len() int { return s.top + 1 }

// Cap returns the fixed capacity.
func (s *BoundedStack[T]) Cap() int { return len(s.items) }

func (s *BoundedStack[T]) FreeSlots() uint64 { return uint64(len(s.items) - s.Len()) }

func (s *BoundedStack[T]) UsedSlots() uint64 { return uint64(s.Len()) }

// Push places v on top. It reports false without touching the stack when full.
func (s *BoundedStack[T]) Push(v T) bool {
	if s.IsFull() {
		return false
	}
	s.top++
	s.items[s.top] = v
	return true
}

// Pop removes and returns the top element. It reports false when empty.
func (s *BoundedStack[T]) Pop() (T, bool) {
	var zero T
	if s.IsEmpty() {
		return zero, false
	}
	v := s.items[s.top]
	s.items[s.top] = zero
	s.top--
	return v, true
}

// Peek returns the top element without removing it.
func (s *BoundedStack[T]) Peek() (T, bool) {
	return s.PeekAt(s.top)
}

// PeekAt returns the element at position i counted from the base.
func (s *BoundedStack[T]) PeekAt(i int) (T, bool) {
	var zero T
	if i < 0 || i > s.top {
		return zero, false
	}
	return s.items[i], true
}

// Set replaces the element at base position i and returns the old value.
func (s *BoundedStack[T]) Set(i int, v T) (T, bool) {
	var zero T
	if i < 0 || i > s.top {
		return zero, false
	}
	old := s.items[i]
	s.items[i] = v
	return old, true
}

// All yields (base index, element) pairs from the top down to the base.
func (s *BoundedStack[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := s.top; i >= 0; i-- {
			if !yield(i, s.items[i]) {
				return
			}
		}
	}
}

// Snapshot copies the stack from top to base.
func (s *BoundedStack[T]) Snapshot() []T {
	out := make([]T, 0, s.Len())
	for _, v := range s.All() {
		out = append(out, v)
	}
	return out
}

// Items copies the stack from base to top, i.e. in push order.
func (s *BoundedStack[T]) Items() []T {
	out := make([]T, s.Len())
	copy(out, s.items[:s.top+1])
	return out
}
