package testbench

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/i5heu/TetrisStack/internal/game"
	"github.com/i5heu/TetrisStack/pkg/piece"
)

// Config describes one simulation batch: how many independent sessions to
// play, how many actions each, and how many run at once.
type Config struct {
	Mode              string
	QueueCapacity     int
	StackCapacity     int
	BatchSize         int
	Alphabet          string
	Sessions          int
	ActionsPerSession int
	Workers           int
	Seed              uint64
}

// ActionStats counts how often an action went through or was refused.
type ActionStats struct {
	Applied  int64 `json:"applied"`
	Rejected int64 `json:"rejected"`
}

// Stats aggregates every session of a run.
type Stats struct {
	Mode      string                 `json:"mode"`
	Sessions  int                    `json:"sessions"`
	Actions   int64                  `json:"actions"`
	PerAction map[string]ActionStats `json:"per_action"`
	Elapsed   time.Duration          `json:"elapsed"`
}

func (s *Stats) merge(o Stats) {
	s.Sessions += o.Sessions
	s.Actions += o.Actions
	if s.PerAction == nil {
		s.PerAction = make(map[string]ActionStats)
	}
	for k, v := range o.PerAction {
		cur := s.PerAction[k]
		cur.Applied += v.Applied
		cur.Rejected += v.Rejected
		s.PerAction[k] = cur
	}
}

// RandomChooser picks uniformly among the non-exit actions of a mode.
type RandomChooser struct {
	actions []game.Action
	rng     *rand.Rand
}

func NewRandomChooser(mode string, seed uint64) *RandomChooser {
	var actions []game.Action
	for _, e := range game.Menu(mode) {
		if e.Action != game.ActionExit {
			actions = append(actions, e.Action)
		}
	}
	return &RandomChooser{actions: actions, rng: rand.New(rand.NewPCG(seed, ^seed))}
}

// ChooseAction implements game.ActionChooser.
func (c *RandomChooser) ChooseAction() (game.Action, error) {
	if len(c.actions) == 0 {
		return game.ActionExit, nil
	}
	return c.actions[c.rng.IntN(len(c.actions))], nil
}

// RunSession plays actions drawn from chooser against a fresh session until
// the chooser exits or limit actions were taken. After every action it
// checks the index invariants, that a refused action changed nothing, and
// that a successful one kept the piece count consistent.
func RunSession(cfg Config, seed uint64, chooser game.ActionChooser, limit int) (Stats, error) {
	s := game.New(game.Options{
		Mode:          cfg.Mode,
		QueueCapacity: cfg.QueueCapacity,
		StackCapacity: cfg.StackCapacity,
		BatchSize:     cfg.BatchSize,
		Source:        piece.NewRandomSource(cfg.Alphabet, seed),
	})
	st := Stats{Mode: s.Mode(), Sessions: 1, PerAction: make(map[string]ActionStats)}

	for i := 0; i < limit; i++ {
		a, err := chooser.ChooseAction()
		if err != nil {
			return st, err
		}
		if a == game.ActionExit {
			break
		}

		q, stk := s.Queue(), s.Stack()
		out, err := s.Do(a)
		st.Actions++
		cur := st.PerAction[a.String()]
		if err != nil {
			cur.Rejected++
			if !slices.Equal(q, s.Queue()) || !slices.Equal(stk, s.Stack()) {
				return st, fmt.Errorf("action %d (%s) was refused but changed state: %w", i, a, err)
			}
		} else {
			cur.Applied++
			if err := checkConservation(a, out, q, stk, s); err != nil {
				return st, fmt.Errorf("action %d (%s): %w", i, a, err)
			}
		}
		st.PerAction[a.String()] = cur

		if err := s.CheckInvariants(); err != nil {
			return st, fmt.Errorf("action %d (%s): %w", i, a, err)
		}
	}
	return st, nil
}

// checkConservation verifies how many pieces each container gained or lost.
func checkConservation(a game.Action, out game.Outcome, q, stk []piece.Piece, s *game.Session) error {
	dq := len(s.Queue()) - len(q)
	ds := len(s.Stack()) - len(stk)
	refill := 0
	if out.Refilled {
		refill = 1
	}

	var wantQ, wantS int
	switch a {
	case game.ActionPlay:
		wantQ = -1 + refill
	case game.ActionInsert:
		wantQ = 1
	case game.ActionReserve:
		wantQ, wantS = -1+refill, 1
	case game.ActionUseReserved:
		wantS = -1
	}
	if dq != wantQ || ds != wantS {
		return fmt.Errorf("queue changed by %d (want %d), stack by %d (want %d)", dq, wantQ, ds, wantS)
	}
	return nil
}

// RunMany plays cfg.Sessions random sessions on up to cfg.Workers
// goroutines. Each session owns its own containers. progress, if set, is
// called once per finished session. The first failing session cancels the
// rest.
func RunMany(ctx context.Context, cfg Config, progress func()) (Stats, error) {
	start := time.Now()
	total := Stats{Mode: cfg.Mode, PerAction: make(map[string]ActionStats)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for i := 0; i < cfg.Sessions; i++ {
		seed := cfg.Seed + uint64(i) + 1
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			st, err := RunSession(cfg, seed, NewRandomChooser(cfg.Mode, seed), cfg.ActionsPerSession)
			if err != nil {
				return fmt.Errorf("session seed %d: %w", seed, err)
			}
			mu.Lock()
			total.merge(st)
			mu.Unlock()
			if progress != nil {
				progress()
			}
			return nil
		})
	}
	err := g.Wait()
	total.Elapsed = time.Since(start)
	return total, err
}
