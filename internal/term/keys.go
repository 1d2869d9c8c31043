package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"dinorun/internal/player"
)

// Action is what a key press asks the front end to do.
type Action int

const (
	ActionNone Action = iota
	ActionJump
	ActionConfirm
	ActionQuit
)

// Keys turns terminal key events into a held jump signal. Terminals only
// report presses (and auto-repeats), so a press counts as held for a short
// window after it arrives.
type Keys struct {
	hold     time.Duration
	lastJump time.Time
}

func NewKeys(hold time.Duration) *Keys {
	return &Keys{hold: hold}
}

// Handle records a key event and classifies it.
func (k *Keys) Handle(ev *tcell.EventKey, now time.Time) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyEnter:
		return ActionConfirm
	case tcell.KeyUp:
		k.lastJump = now
		return ActionJump
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ', 'w', 'k':
			k.lastJump = now
			return ActionJump
		case 'q':
			return ActionQuit
		}
	}
	return ActionNone
}

// Input samples the jump signal at now.
func (k *Keys) Input(now time.Time) player.Input {
	held := !k.lastJump.IsZero() && now.Sub(k.lastJump) < k.hold
	return player.Input{Jump: held}
}

// Reset releases every key.
func (k *Keys) Reset() {
	k.lastJump = time.Time{}
}
