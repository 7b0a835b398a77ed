package game

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ActionChooser asks the player for the next action.
type ActionChooser interface {
	ChooseAction() (Action, error)
}

// LineChooser reads one menu code per line.
type LineChooser struct {
	mode    string
	scanner *bufio.Scanner
}

// NewLineChooser reads menu codes for mode from r.
func NewLineChooser(mode string, r io.Reader) *LineChooser {
	return &LineChooser{mode: mode, scanner: bufio.NewScanner(r)}
}

// ChooseAction returns ActionInvalid for anything that is not a menu code of
// the mode and ActionExit once the input is exhausted.
func (c *LineChooser) ChooseAction() (Action, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return ActionExit, fmt.Errorf("read action: %w", err)
		}
		return ActionExit, nil
	}
	code, err := strconv.Atoi(strings.TrimSpace(c.scanner.Text()))
	if err != nil {
		return ActionInvalid, nil
	}
	return ActionForCode(c.mode, code), nil
}

// ScriptedChooser replays a fixed list of actions, then exits.
type ScriptedChooser struct {
	actions []Action
}

func NewScriptedChooser(actions ...Action) *ScriptedChooser {
	return &ScriptedChooser{actions: actions}
}

func (c *ScriptedChooser) ChooseAction() (Action, error) {
	if len(c.actions) == 0 {
		return ActionExit, nil
	}
	a := c.actions[0]
	c.actions = c.actions[1:]
	return a, nil
}
