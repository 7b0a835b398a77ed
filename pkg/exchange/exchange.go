// Package exchange moves pieces between a FIFO queue and a LIFO stack
// without changing how many elements either one holds.
package exchange

import "github.com/i5heu/TetrisStack/internal/queue"

// DefaultBatch is the number of positions SwapBatch exchanges in the game.
const DefaultBatch = 3

// SwapFrontTop exchanges the queue front with the stack top.
// Both containers must be non-empty; otherwise nothing changes and it
// reports false. Applying it twice restores the original values.
func SwapFrontTop[T any, Q queue.FIFO[T], S queue.LIFO[T]](q Q, s S) bool {
	if q.IsEmpty() || s.IsEmpty() {
		return false
	}
	front, _ := q.PeekAt(0)
	top := s.Top()
	old, _ := s.Set(top, front)
	q.Set(0, old)
	return true
}

// SwapBatch exchanges the first k queue positions with the bottom k stack
// positions: stack base pairs with queue front, stack index k-1 with queue
// position k-1. The queue must hold at least k elements and the stack at
// least k; otherwise nothing changes and it reports false.
func SwapBatch[T any, Q queue.FIFO[T], S queue.LIFO[T]](q Q, s S, k int) bool {
	if k < 1 || q.UsedSlots() < uint64(k) || s.Top() < k-1 {
		return false
	}
	for i := 0; i < k; i++ {
		qv, _ := q.PeekAt(i)
		sv, _ := s.Set(i, qv)
		q.Set(i, sv)
	}
	return true
}
