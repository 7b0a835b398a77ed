package game

import "errors"

// Every failed action returns one of these, possibly wrapped. None of them
// leaves the queue or stack modified.
var (
	ErrQueueFull            = errors.New("queue is full")
	ErrQueueEmpty           = errors.New("queue is empty")
	ErrStackFull            = errors.New("stack is full")
	ErrStackEmpty           = errors.New("stack is empty")
	ErrInsufficientElements = errors.New("not enough pieces to exchange")
	ErrInvalidAction        = errors.New("invalid action")
)
