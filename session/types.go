package session

import (
	"fmt"

	"github.com/thomaslorincz/arduino-dots-and-boxes/board"
)

// Phase is the top-level state of a session.
type Phase int

const (
	// PhaseSetup negotiates a new game with the peer.
	PhaseSetup Phase = iota
	// PhasePlaying alternates turns until the peer reports the game over.
	PhasePlaying
	// PhaseGameOver shows the result and waits for a click.
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhasePlaying:
		return "Playing"
	case PhaseGameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Role is who controls the seat that is to move.
type Role int

const (
	Player1 Role = iota + 1
	Player2
	Computer
)

func (r Role) String() string {
	switch r {
	case Player1:
		return "Player1"
	case Player2:
		return "Player2"
	case Computer:
		return "Computer"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// RequestPhase tracks a human player's two-click edge selection.
type RequestPhase int

const (
	AwaitingStart RequestPhase = iota
	AwaitingEnd
)

func (p RequestPhase) String() string {
	if p == AwaitingEnd {
		return "AwaitingEnd"
	}
	return "AwaitingStart"
}

// TurnState says whose move it is and how far their selection has got.
// PendingStart is only meaningful while Phase is AwaitingEnd.
type TurnState struct {
	Seat         int // 1 or 2
	Active       Role
	Phase        RequestPhase
	PendingStart board.Vertex
}

// ScoreState holds the boxes closed by each seat.
type ScoreState struct {
	Player1 int
	Player2 int
}

// Of returns the score of seat.
func (s ScoreState) Of(seat int) int {
	if seat == 2 {
		return s.Player2
	}
	return s.Player1
}

func (s *ScoreState) add(seat, n int) {
	if seat == 2 {
		s.Player2 += n
	} else {
		s.Player1 += n
	}
}

// CursorState is the human players' selection cursor. LastDrawn is where
// the cursor dot currently is on the display.
type CursorState struct {
	Position    board.Vertex
	LastDrawn   board.Vertex
	NeedsRedraw bool
}

// Colour is a fill colour understood by a Display.
type Colour int

const (
	White Colour = iota
	Black
	Green
	Blue
	Red
)

func (c Colour) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	case Red:
		return "Red"
	default:
		return fmt.Sprintf("Colour(%d)", int(c))
	}
}

// SeatColour is the colour boxes closed by seat are filled with.
func SeatColour(seat int) Colour {
	if seat == 2 {
		return Red
	}
	return Blue
}

// Result summarises a finished game.
type Result struct {
	Scores       ScoreState
	ComputerSeat int // 0 when both seats are human
}

// Winner returns the seat with the higher score, or 0 for a tie.
func (r Result) Winner() int {
	switch {
	case r.Scores.Player1 > r.Scores.Player2:
		return 1
	case r.Scores.Player2 > r.Scores.Player1:
		return 2
	default:
		return 0
	}
}

// Headline is the line announcing the outcome.
func (r Result) Headline() string {
	w := r.Winner()
	switch {
	case w == 0:
		return "TIE"
	case w == r.ComputerSeat:
		return "COMPUTER WINS"
	default:
		return fmt.Sprintf("PLAYER %d WINS", w)
	}
}

// Status line texts.
const (
	StatusInvalid   = "INVALID. TRY AGAIN."
	StatusComputer  = "COMPUTER'S TURN"
	StatusPlayAgain = "CLICK TO PLAY AGAIN"
)

func statusFrom(seat int) string {
	return fmt.Sprintf("PLAYER %d: FROM?", seat)
}

func statusTo(seat int) string {
	return fmt.Sprintf("PLAYER %d: TO?", seat)
}
