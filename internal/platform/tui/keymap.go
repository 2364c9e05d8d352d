package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/core"
)

// KeyMapper translates Bubble Tea key messages to frontend actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action during a run.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "p", "esc":
		return core.ActionPause, false
	case "enter":
		return core.ActionConfirm, false
	case "b":
		return core.ActionBack, false
	case "n":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// PerkChoice returns the zero-based option for keys 1..n.
func (km *KeyMapper) PerkChoice(msg tea.KeyMsg, n int) (int, bool) {
	s := msg.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	i := int(s[0] - '1')
	return i, i < n
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}

// Terminals report key presses but not releases, so a pressed key counts
// as held for a short window. Key repeat keeps refreshing it.
const defaultHold = 250 * time.Millisecond

// aimDistance is how far ahead of the player the aim point sits.
const aimDistance = 10.0

type intent int

const (
	intentForward intent = iota
	intentBackward
	intentLeft
	intentRight
	intentSprint
	intentFire
	intentReload
	intentAimUp
	intentAimDown
	intentAimLeft
	intentAimRight
	intentCount
)

// moveKeys: lower case walks, upper case (shift) sprints.
var moveKeys = map[string]intent{
	"w": intentForward, "W": intentForward,
	"s": intentBackward, "S": intentBackward,
	"a": intentLeft, "A": intentLeft,
	"d": intentRight, "D": intentRight,
}

// aimKeys aim and fire, twin-stick style.
var aimKeys = map[string]intent{
	"up":    intentAimUp,
	"down":  intentAimDown,
	"left":  intentAimLeft,
	"right": intentAimRight,
}

// InputLatch turns discrete key presses into the held-intent core.Input
// the simulation reads every tick.
type InputLatch struct {
	hold   time.Duration
	until  [intentCount]time.Duration
	facing core.Vec2
}

// NewInputLatch creates a latch facing forward. A non-positive hold uses
// the default window.
func NewInputLatch(hold time.Duration) *InputLatch {
	if hold <= 0 {
		hold = defaultHold
	}
	return &InputLatch{hold: hold, facing: core.V2(0, -1)}
}

// Press records a key at now. It reports whether the key is a run control.
func (l *InputLatch) Press(key string, now time.Duration) bool {
	if in, ok := moveKeys[key]; ok {
		l.set(in, now)
		if key != "w" && key != "a" && key != "s" && key != "d" {
			l.set(intentSprint, now)
		}
		return true
	}
	if in, ok := aimKeys[key]; ok {
		l.set(in, now)
		l.set(intentFire, now)
		return true
	}
	switch key {
	case " ":
		l.set(intentFire, now)
		return true
	case "r":
		l.set(intentReload, now)
		return true
	}
	return false
}

func (l *InputLatch) set(in intent, now time.Duration) {
	l.until[in] = now + l.hold
}

func (l *InputLatch) held(in intent, now time.Duration) bool {
	return now < l.until[in]
}

// Reset releases every key.
func (l *InputLatch) Reset() {
	l.until = [intentCount]time.Duration{}
}

// Facing is the current aim direction.
func (l *InputLatch) Facing() core.Vec2 { return l.facing }

// Input builds the intent for a tick at now. The aim point follows held
// arrow keys, or the walking direction when no arrow is held.
func (l *InputLatch) Input(now time.Duration, player core.Vec2) core.Input {
	in := core.Input{
		Forward:  l.held(intentForward, now),
		Backward: l.held(intentBackward, now),
		Left:     l.held(intentLeft, now),
		Right:    l.held(intentRight, now),
		Sprint:   l.held(intentSprint, now),
		Fire:     l.held(intentFire, now),
		Reload:   l.held(intentReload, now),
	}

	var aim core.Vec2
	if l.held(intentAimUp, now) {
		aim.Z--
	}
	if l.held(intentAimDown, now) {
		aim.Z++
	}
	if l.held(intentAimLeft, now) {
		aim.X--
	}
	if l.held(intentAimRight, now) {
		aim.X++
	}
	switch {
	case aim.LenSq() > 0:
		l.facing = aim.Normalize()
	case in.MoveDir().LenSq() > 0:
		l.facing = in.MoveDir()
	}

	in.Aim = player.Add(l.facing.Scale(aimDistance))
	return in
}
