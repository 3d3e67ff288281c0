package core

import "strings"

// Action is a semantic input, independent of the key or device that produced it.
type Action uint8

const (
	ActionNone    Action = iota
	ActionJump           // Jump button went down
	ActionRelease        // Jump button went up, real or synthesized by the frontend
	ActionConfirm        // Enter
	ActionBack           // Esc, B
	ActionRestart        // R, after game over
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P toggles
	actionCount
)

var actionNames = [actionCount]string{
	"None", "Jump", "Release", "Confirm", "Back", "Restart", "Quit", "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "Unknown"
}

// InputFrame is the set of actions collected between two simulation steps.
// The zero value is empty and ready to use.
type InputFrame struct {
	bits uint16
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.bits |= 1 << a
}

// Has reports whether the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.bits&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear resets the frame for reuse.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// String lists the triggered actions, e.g. "Jump+Pause".
func (f InputFrame) String() string {
	if f.Empty() {
		return "None"
	}
	var names []string
	for a := ActionJump; a < actionCount; a++ {
		if f.Has(a) {
			names = append(names, a.String())
		}
	}
	return strings.Join(names, "+")
}
