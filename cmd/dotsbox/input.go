// =============================================================================
// input.go - Keyboard as a Virtual Joystick
// =============================================================================
//
// The session reads a two-axis stick and a push button through the
// joystick package. In a terminal there is no stick, so keyStick turns key
// presses into the readings a real stick would give:
//
//	Arrow keys, WASD    one full deflection, then back to centre
//	Space, Enter        one press followed by a release
//	q, Esc, Ctrl-C      quit
//
// Key events arrive on the tcell event goroutine; the session samples the
// stick from its own goroutine. A mutex guards the queued input.
//
// =============================================================================

package main

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/thomaslorincz/arduino-dots-and-boxes/joystick"
)

const (
	// deflection is how far a key press pushes the virtual stick. It is
	// well outside any sensible deadzone.
	deflection = 400

	// maxQueuedMoves bounds how many moves can be typed ahead.
	maxQueuedMoves = 16
)

type move struct{ dx, dy int }

// keyStick implements joystick.Sampler and joystick.RestReporter.
type keyStick struct {
	mu sync.Mutex

	moves    []move
	centring bool // the previous Axes reading was a deflection

	clicks  int
	holding bool // Pressed last reported true
}

func newKeyStick() *keyStick {
	return &keyStick{}
}

// Rest reports the neutral reading, so calibration never sees a key
// that happens to be queued.
func (k *keyStick) Rest() (int, int) {
	return joystick.NeutralReading, joystick.NeutralReading
}

// Axes returns one queued move as a full deflection. The reading after a
// deflection is always centred, which re-arms the controller for the
// next move.
func (k *keyStick) Axes() (int, int) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.centring || len(k.moves) == 0 {
		k.centring = false
		return k.Rest()
	}
	m := k.moves[0]
	k.moves = k.moves[1:]
	k.centring = true
	return joystick.NeutralReading + m.dx*deflection, joystick.NeutralReading + m.dy*deflection
}

// Pressed reports a queued click as held for exactly one sample.
func (k *keyStick) Pressed() bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.holding {
		k.holding = false
		return false
	}
	if k.clicks > 0 {
		k.clicks--
		k.holding = true
		return true
	}
	return false
}

func (k *keyStick) push(dx, dy int) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if len(k.moves) < maxQueuedMoves {
		k.moves = append(k.moves, move{dx, dy})
	}
}

func (k *keyStick) click() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.clicks < maxQueuedMoves {
		k.clicks++
	}
}

// =============================================================================
// Key Handling
// =============================================================================

// handleKey applies one key event to the stick. It reports false when the
// key asks to quit.
func (k *keyStick) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		k.push(0, -1)
	case tcell.KeyDown:
		k.push(0, 1)
	case tcell.KeyLeft:
		k.push(-1, 0)
	case tcell.KeyRight:
		k.push(1, 0)
	case tcell.KeyEnter:
		k.click()
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			k.push(0, -1)
		case 's', 'S':
			k.push(0, 1)
		case 'a', 'A':
			k.push(-1, 0)
		case 'd', 'D':
			k.push(1, 0)
		case ' ':
			k.click()
		case 'q', 'Q':
			return false
		}
	}
	return true
}

// GO CONCEPT: Type Switches
// -------------------------
// tcell delivers every event as the tcell.Event interface. A type switch
// picks out the concrete kinds we care about; "ev := ev.(type)" rebinds
// ev with the concrete type inside each case.

// pumpEvents feeds terminal events to the stick and the display until the
// screen is finalised or the player quits. quit is called at most once.
func pumpEvents(screen tcell.Screen, stick *keyStick, display *screenDisplay, quit func()) {
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			if !stick.handleKey(ev) {
				quit()
				return
			}
		case *tcell.EventResize:
			display.Resize()
		}
	}
}
