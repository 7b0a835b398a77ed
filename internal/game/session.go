package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/i5heu/TetrisStack/internal/config"
	"github.com/i5heu/TetrisStack/pkg/boundedstack"
	"github.com/i5heu/TetrisStack/pkg/circularqueue"
	"github.com/i5heu/TetrisStack/pkg/exchange"
	"github.com/i5heu/TetrisStack/pkg/piece"
)

// Options configures a Session. Zero capacities fall back to the defaults.
type Options struct {
	Mode          string
	QueueCapacity int
	StackCapacity int
	BatchSize     int
	Source        piece.Source
	Logger        *zap.Logger
}

// Outcome describes what a successful action did.
type Outcome struct {
	Action Action
	// Piece is the piece played, reserved, taken from the reserve or inserted.
	Piece piece.Piece
	// Refill is the piece enqueued afterwards; only meaningful when Refilled.
	Refill   piece.Piece
	Refilled bool
	// Swapped counts the exchanged positions of a swap action.
	Swapped int
}

// Session owns the future-piece queue and the reserve stack of one game.
// It is not safe for concurrent use.
type Session struct {
	mode   string
	batch  int
	queue  *circularqueue.CircularQueue[piece.Piece]
	stack  *boundedstack.BoundedStack[piece.Piece]
	source piece.Source
	log    *zap.Logger
}

// New creates a session and fills the queue to capacity from opts.Source.
func New(opts Options) *Session {
	def := config.DefaultConfig()
	if opts.Mode == "" {
		opts.Mode = def.Mode
	}
	if opts.QueueCapacity < 1 {
		opts.QueueCapacity = def.QueueCapacity
	}
	if opts.StackCapacity < 1 {
		opts.StackCapacity = def.StackCapacity
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = def.BatchSize
	}
	if opts.Source == nil {
		opts.Source = piece.NewRandomSource(def.Alphabet, 0)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &Session{
		mode:   opts.Mode,
		batch:  opts.BatchSize,
		queue:  circularqueue.New[piece.Piece](opts.QueueCapacity),
		stack:  boundedstack.New[piece.Piece](opts.StackCapacity),
		source: opts.Source,
		log:    opts.Logger.With(zap.String("mode", opts.Mode)),
	}
	for !s.queue.IsFull() {
		s.queue.Enqueue(s.source.Next())
	}
	s.log.Debug("session started",
		zap.Int("queue_capacity", opts.QueueCapacity),
		zap.Int("stack_capacity", opts.StackCapacity),
		zap.Int("batch_size", opts.BatchSize))
	return s
}

// NewFromConfig builds a session with a random piece source seeded from cfg.
func NewFromConfig(cfg *config.Config, logger *zap.Logger) *Session {
	return New(Options{
		Mode:          cfg.Mode,
		QueueCapacity: cfg.QueueCapacity,
		StackCapacity: cfg.StackCapacity,
		BatchSize:     cfg.BatchSize,
		Source:        piece.NewRandomSource(cfg.Alphabet, cfg.Seed),
		Logger:        logger,
	})
}

func (s *Session) Mode() string { return s.mode }

func (s *Session) BatchSize() int { return s.batch }

// Queue returns the pending pieces from front to back.
func (s *Session) Queue() []piece.Piece { return s.queue.Snapshot() }

// Stack returns the reserved pieces from top to base.
func (s *Session) Stack() []piece.Piece { return s.stack.Snapshot() }

func (s *Session) QueueCapacity() int { return s.queue.Cap() }

func (s *Session) StackCapacity() int { return s.stack.Cap() }

// Do runs a if the session's mode offers it.
func (s *Session) Do(a Action) (Outcome, error) {
	if a == ActionExit || !Offers(s.mode, a) {
		return s.reject(a, fmt.Errorf("%w: %s not available in %s mode", ErrInvalidAction, a, s.mode))
	}
	switch a {
	case ActionPlay:
		return s.Play()
	case ActionInsert:
		return s.Insert()
	case ActionReserve:
		return s.Reserve()
	case ActionUseReserved:
		return s.UseReserved()
	case ActionSwapOne:
		return s.SwapOne()
	case ActionSwapBatch:
		return s.SwapBatch()
	}
	return s.reject(a, ErrInvalidAction)
}

// Play removes the front piece. In reserve and strategic mode the queue is
// topped up right away.
func (s *Session) Play() (Outcome, error) {
	p, ok := s.queue.Dequeue()
	if !ok {
		return s.reject(ActionPlay, ErrQueueEmpty)
	}
	out := Outcome{Action: ActionPlay, Piece: p}
	if refills(s.mode) {
		s.refill(&out)
	}
	return s.accept(out), nil
}

// Insert enqueues a freshly generated piece. No id is consumed when the
// queue is full.
func (s *Session) Insert() (Outcome, error) {
	if s.queue.IsFull() {
		return s.reject(ActionInsert, ErrQueueFull)
	}
	p := s.source.Next()
	s.queue.Enqueue(p)
	return s.accept(Outcome{Action: ActionInsert, Piece: p}), nil
}

// Reserve moves the front piece onto the stack and refills the queue.
// Nothing moves when the stack is already full.
func (s *Session) Reserve() (Outcome, error) {
	if s.queue.IsEmpty() {
		return s.reject(ActionReserve, ErrQueueEmpty)
	}
	if s.stack.IsFull() {
		return s.reject(ActionReserve, ErrStackFull)
	}
	p, _ := s.queue.Dequeue()
	s.stack.Push(p)
	out := Outcome{Action: ActionReserve, Piece: p}
	if refills(s.mode) {
		s.refill(&out)
	}
	return s.accept(out), nil
}

// UseReserved plays the piece on top of the stack.
func (s *Session) UseReserved() (Outcome, error) {
	p, ok := s.stack.Pop()
	if !ok {
		return s.reject(ActionUseReserved, ErrStackEmpty)
	}
	return s.accept(Outcome{Action: ActionUseReserved, Piece: p}), nil
}

// SwapOne exchanges the queue front with the stack top.
func (s *Session) SwapOne() (Outcome, error) {
	if !exchange.SwapFrontTop[piece.Piece](s.queue, s.stack) {
		return s.reject(ActionSwapOne, fmt.Errorf("%w: need one piece in queue and stack, have %d and %d",
			ErrInsufficientElements, s.queue.Len(), s.stack.Len()))
	}
	return s.accept(Outcome{Action: ActionSwapOne, Swapped: 1}), nil
}

// SwapBatch exchanges the first BatchSize queue pieces with the bottom
// BatchSize stack pieces.
func (s *Session) SwapBatch() (Outcome, error) {
	if !exchange.SwapBatch[piece.Piece](s.queue, s.stack, s.batch) {
		return s.reject(ActionSwapBatch, fmt.Errorf("%w: need %d pieces in queue and stack, have %d and %d",
			ErrInsufficientElements, s.batch, s.queue.Len(), s.stack.Len()))
	}
	return s.accept(Outcome{Action: ActionSwapBatch, Swapped: s.batch}), nil
}

// CheckInvariants verifies the ring and stack index bookkeeping.
func (s *Session) CheckInvariants() error {
	q := s.queue
	if q.Len() < 0 || q.Len() > q.Cap() {
		return fmt.Errorf("queue count %d outside [0,%d]", q.Len(), q.Cap())
	}
	if q.Front() < 0 || q.Front() >= q.Cap() {
		return fmt.Errorf("queue front %d outside [0,%d)", q.Front(), q.Cap())
	}
	if want := (q.Front() + q.Len()) % q.Cap(); q.Back() != want {
		return fmt.Errorf("queue back %d, expected %d", q.Back(), want)
	}
	if top := s.stack.Top(); top < -1 || top > s.stack.Cap()-1 {
		return fmt.Errorf("stack top %d outside [-1,%d]", top, s.stack.Cap()-1)
	}
	return nil
}

func (s *Session) refill(out *Outcome) {
	p := s.source.Next()
	if s.queue.Enqueue(p) {
		out.Refill = p
		out.Refilled = true
	}
}

func (s *Session) accept(out Outcome) Outcome {
	fields := []zap.Field{
		zap.Stringer("action", out.Action),
		zap.Int("queue_len", s.queue.Len()),
		zap.Int("stack_len", s.stack.Len()),
	}
	if out.Swapped == 0 {
		fields = append(fields, zap.Stringer("piece", out.Piece))
	}
	if out.Refilled {
		fields = append(fields, zap.Stringer("refill", out.Refill))
	}
	s.log.Debug("action applied", fields...)
	return out
}

func (s *Session) reject(a Action, err error) (Outcome, error) {
	s.log.Info("action rejected",
		zap.Stringer("action", a),
		zap.Int("queue_len", s.queue.Len()),
		zap.Int("stack_len", s.stack.Len()),
		zap.Error(err))
	return Outcome{Action: a}, err
}
