package queue

// Bounded is the part every fixed-capacity container in this module shares.
type Bounded interface {
	// IsEmpty reports whether no element is stored.
	IsEmpty() bool

	// IsFull reports whether the container holds Cap() elements.
	IsFull() bool

	// FreeSlots returns how many more elements fit before the container is full.
	FreeSlots() uint64

	// UsedSlots returns how many elements are currently stored.
	UsedSlots() uint64
}

// FIFO is a *type constraint* for bounded first-in-first-out containers.
// We never store a FIFO in a runtime interface value; it only pins the
// method set at compile time.
type FIFO[T any] interface {
	Bounded

	// Enqueue appends v at the back. It returns false and leaves the queue
	// untouched when the queue is full.
	Enqueue(v T) bool

	// Dequeue removes and returns the front element.
	// If the queue is empty it returns a zero T and false.
	Dequeue() (T, bool)

	// PeekAt returns the element i positions behind the front.
	PeekAt(i int) (T, bool)

	// Set overwrites logical position i and returns the previous value.
	Set(i int, v T) (T, bool)
}

// LIFO is the stack counterpart of FIFO.
type LIFO[T any] interface {
	Bounded

	// Push places v on top. It returns false and leaves the stack untouched when full.
	Push(v T) bool

	// Pop removes and returns the top element, or a zero T and false when empty.
	Pop() (T, bool)

	// PeekAt returns the element at position i counted from the base.
	PeekAt(i int) (T, bool)

	// Set overwrites position i (counted from the base) and returns the previous value.
	Set(i int, v T) (T, bool)

	// Top returns the index of the top element, -1 when empty.
	Top() int
}
