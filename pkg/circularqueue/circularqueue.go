package circularqueue

import "iter"

// CircularQueue is a fixed-capacity FIFO ring buffer.
//
// front is the slot read by the next Dequeue, back the slot written by the
// next Enqueue. back always equals (front + count) % len(buf).
type CircularQueue[T any] struct {
	buf   []T
	front int
	back  int
	count int
}

// New creates an empty queue holding at most capacity elements.
// A capacity below 1 is raised to 1.
func New[T any](capacity int) *CircularQueue[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &CircularQueue[T]{buf: make([]T, capacity)}
}

// index maps logical position n (0 = front) to a slot in buf.
//
//	[_, f, _, _] front = 1, cap = 4
//	[_, f, y, _] n = 1, y = (1 + 1) % 4 = 2
//	[y, f, _, _] n = 3, y = (1 + 3) % 4 = 0
func (q *CircularQueue[T]) index(n int) int {
	return (q.front + n) % len(q.buf)
}

func (q *CircularQueue[T]) IsEmpty() bool { return q.count == 0 }

func (q *CircularQueue[T]) IsFull() bool { return q.count == len(q.buf) }

// Len returns the number of queued elements.
func (q *CircularQueue[T]) Len() int { return q.count }

// Cap returns the fixed capacity.
func (q *CircularQueue[T]) Cap() int { return len(q.buf) }

// Front and Back expose the raw ring indices.
func (q *CircularQueue[T]) Front() int { return q.front }

func (q *CircularQueue[T]) Back() int { return q.back }

// FreeSlots returns how many more elements can be enqueued.
func (q *CircularQueue[T]) FreeSlots() uint64 { return uint64(len(q.buf) - q.count) }

// UsedSlots returns how many elements are queued.
func (q *CircularQueue[T]) UsedSlots() uint64 { return uint64(q.count) }

// Enqueue writes v at the back. It reports false without touching the
// queue when it is full.
func (q *CircularQueue[T]) Enqueue(v T) bool {
	if q.IsFull() {
		return false
	}
	q.buf[q.back] = v
	q.back = (q.back + 1) % len(q.buf)
	q.count++
	return true
}

// Dequeue removes the front element. It reports false when the queue is empty.
func (q *CircularQueue[T]) Dequeue() (T, bool) {
	var zero T
	if q.IsEmpty() {
		return zero, false
	}
	v := q.buf[q.front]
	q.buf[q.front] = zero
	q.front = (q.front + 1) % len(q.buf)
	q.count--
	return v, true
}

// PeekFront returns the element Dequeue would return.
func (q *CircularQueue[T]) PeekFront() (T, bool) {
	return q.PeekAt(0)
}

// PeekAt returns logical element i, 0 being the front.
func (q *CircularQueue[T]) PeekAt(i int) (T, bool) {
	var zero T
	if i < 0 || i >= q.count {
		return zero, false
	}
	return q.buf[q.index(i)], true
}

// Set replaces logical element i in place and returns the old value.
// Occupancy does not change.
func (q *CircularQueue[T]) Set(i int, v T) (T, bool) {
	var zero T
	if i < 0 || i >= q.count {
		return zero, false
	}
	idx := q.index(i)
	old := q.buf[idx]
	q.buf[idx] = v
	return old, true
}

// All yields (position, element) pairs from front to back. The sequence
// reads the live buffer, so it must not be held across mutations.
func (q *CircularQueue[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < q.count; i++ {
			if !yield(i, q.buf[q.index(i)]) {
				return
			}
		}
	}
}

// Snapshot copies the queued elements in front-to-back order.
func (q *CircularQueue[T]) Snapshot() []T {
	out := make([]T, 0, q.count)
	for _, v := range q.All() {
		out = append(out, v)
	}
	return out
}

// Clear empties the queue and rewinds the ring to slot 0.
func (q *CircularQueue[T]) Clear() {
	clear(q.buf)
	q.front = 0
	q.back = 0
	q.count = 0
}
