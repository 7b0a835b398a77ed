package game

import "github.com/i5heu/TetrisStack/internal/config"

// Action is something the player can ask the session to do.
type Action int

const (
	ActionExit Action = iota
	ActionPlay
	ActionInsert
	ActionReserve
	ActionUseReserved
	ActionSwapOne
	ActionSwapBatch
	ActionInvalid
)

func (a Action) String() string {
	switch a {
	case ActionExit:
		return "exit"
	case ActionPlay:
		return "play"
	case ActionInsert:
		return "insert"
	case ActionReserve:
		return "reserve"
	case ActionUseReserved:
		return "use_reserved"
	case ActionSwapOne:
		return "swap_one"
	case ActionSwapBatch:
		return "swap_batch"
	default:
		return "invalid"
	}
}

// MenuEntry binds a menu code to an action.
type MenuEntry struct {
	Code   int
	Action Action
}

// Menu lists the actions a mode offers, in the order they are displayed.
// Exit (code 0) always comes last. Unknown modes get an exit-only menu.
func Menu(mode string) []MenuEntry {
	var entries []MenuEntry
	switch mode {
	case config.ModeQueue:
		entries = []MenuEntry{{1, ActionPlay}, {2, ActionInsert}}
	case config.ModeReserve:
		entries = []MenuEntry{{1, ActionPlay}, {2, ActionReserve}, {3, ActionUseReserved}}
	case config.ModeStrategic:
		entries = []MenuEntry{
			{1, ActionPlay},
			{2, ActionReserve},
			{3, ActionUseReserved},
			{4, ActionSwapOne},
			{5, ActionSwapBatch},
		}
	}
	return append(entries, MenuEntry{0, ActionExit})
}

// ActionForCode resolves a menu code typed by the player.
func ActionForCode(mode string, code int) Action {
	for _, e := range Menu(mode) {
		if e.Code == code {
			return e.Action
		}
	}
	return ActionInvalid
}

// Offers reports whether mode has a as a menu entry.
func Offers(mode string, a Action) bool {
	for _, e := range Menu(mode) {
		if e.Action == a {
			return true
		}
	}
	return false
}

// refills reports whether taking a piece off the queue is followed by an
// immediate enqueue of a fresh one.
func refills(mode string) bool {
	return mode == config.ModeReserve || mode == config.ModeStrategic
}
