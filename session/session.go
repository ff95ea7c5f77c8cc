// Package session runs one dots-and-boxes client: it negotiates a game with
// the peer, alternates turns between human players and the computer, and
// shows the result.
//
// # Phases
//
// A session moves Setup -> Playing -> GameOver -> Setup. Any request that
// times out or is answered out of range sets a reset flag; the next Step
// then starts Setup again from scratch, whatever phase the session was in.
//
// # Scheduling
//
// Step performs one bounded unit of work: a full setup pass, a whole
// computer move, or a single poll of the input controller during a human
// turn or at the game-over screen. Run calls Step until its context ends or
// the transport fails.
//
// # Collaborators
//
// The session never touches a terminal, a socket or a stick directly. It
// draws through Display, talks to the peer through Protocol and reads the
// player through Input.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/thomaslorincz/arduino-dots-and-boxes/board"
	"github.com/thomaslorincz/arduino-dots-and-boxes/clock"
	"github.com/thomaslorincz/arduino-dots-and-boxes/dotsprotocol"
	"github.com/thomaslorincz/arduino-dots-and-boxes/joystick"
)

// Display receives draw commands. The session never reads it back.
type Display interface {
	// Clear fills the whole surface with the background colour and blanks
	// the status line.
	Clear()
	FillRect(r board.Rect, c Colour)
	SetStatus(text string)
	ShowGameOver(r Result)
	// Flush makes everything drawn so far visible.
	Flush()
}

// Protocol is the requesting side of the wire protocol. It is satisfied by
// *dotsprotocol.Client.
type Protocol interface {
	RequestInRange(id byte, lo, hi int) (int, error)
	RequestEdge(e board.Edge) error
	Acknowledge() error
}

// Input is the player's stick. It is satisfied by *joystick.Controller.
type Input interface {
	Calibrate()
	Rearm()
	Poll() joystick.Event
}

// Timing defaults.
const (
	// DefaultNoticeDelay is how long a rejected edge's notice stays up.
	DefaultNoticeDelay = 2 * time.Second

	// DefaultGameOverDelay is the pause between the last move and the
	// game-over screen.
	DefaultGameOverDelay = time.Second

	// DefaultIdleInterval is how long Run sleeps after a poll that produced
	// nothing.
	DefaultIdleInterval = 10 * time.Millisecond
)

// Local rejections of a human edge. They are logged, never returned.
var (
	ErrInvalidEdge   = errors.New("edge does not join adjacent vertices")
	ErrDuplicateEdge = errors.New("edge already drawn")
)

// errReset unwinds a step after a failed request has set the reset flag.
var errReset = errors.New("session reset requested")

// Session holds all state for one client. It is not safe for concurrent
// use.
type Session struct {
	display Display
	proto   Protocol
	input   Input
	clock   clock.Clock
	surface board.Surface
	logger  *log.Logger

	noticeDelay   time.Duration
	gameOverDelay time.Duration
	idleInterval  time.Duration

	phase          Phase
	resetRequested bool
	idle           bool

	gameType     int
	computerSeat int
	dims         board.Dimensions
	layout       board.Layout

	turn       TurnState
	scores     ScoreState
	cursor     CursorState
	lastStatus string
}

// New creates a session in PhaseSetup drawing on board.ReferenceSurface.
func New(display Display, proto Protocol, input Input, clk clock.Clock) *Session {
	return &Session{
		display:       display,
		proto:         proto,
		input:         input,
		clock:         clk,
		surface:       board.ReferenceSurface,
		logger:        log.New(io.Discard, "", 0),
		noticeDelay:   DefaultNoticeDelay,
		gameOverDelay: DefaultGameOverDelay,
		idleInterval:  DefaultIdleInterval,
		phase:         PhaseSetup,
	}
}

// SetLogger sets where the session reports resets and rejected edges.
func (s *Session) SetLogger(logger *log.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// SetSurface sets the drawing surface layouts are computed for. It takes
// effect at the next setup.
func (s *Session) SetSurface(surface board.Surface) {
	s.surface = surface
}

// SetNoticeDelay sets how long a rejected edge's notice is shown.
func (s *Session) SetNoticeDelay(d time.Duration) { s.noticeDelay = d }

// SetGameOverDelay sets the pause before the game-over screen.
func (s *Session) SetGameOverDelay(d time.Duration) { s.gameOverDelay = d }

// SetIdleInterval sets how long Run sleeps between idle polls.
func (s *Session) SetIdleInterval(d time.Duration) { s.idleInterval = d }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// ResetRequested reports whether the next Step will restart setup.
func (s *Session) ResetRequested() bool { return s.resetRequested }

// Turn returns whose move it is.
func (s *Session) Turn() TurnState { return s.turn }

// Scores returns the current scores.
func (s *Session) Scores() ScoreState { return s.scores }

// Cursor returns the cursor state.
func (s *Session) Cursor() CursorState { return s.cursor }

// Dimensions returns the board negotiated by the last setup.
func (s *Session) Dimensions() board.Dimensions { return s.dims }

// Layout returns the layout derived by the last setup.
func (s *Session) Layout() board.Layout { return s.layout }

// ComputerSeat returns the seat the computer plays, or 0.
func (s *Session) ComputerSeat() int { return s.computerSeat }

// Run steps the session until ctx is done or a transport error occurs.
// Timeouts never end Run; they restart setup.
func (s *Session) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := s.Step(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if s.idle {
			s.clock.Sleep(s.idleInterval)
		}
	}
}

// Step performs one scheduling iteration. It returns an error only when
// the context is done or the transport has failed.
func (s *Session) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.idle = false
	if s.resetRequested {
		s.resetRequested = false
		s.phase = PhaseSetup
	}

	var err error
	switch s.phase {
	case PhaseSetup:
		err = s.setup()
	case PhasePlaying:
		if s.turn.Active == Computer {
			err = s.computerTurn()
		} else {
			err = s.humanTurn()
		}
	case PhaseGameOver:
		err = s.awaitRestart()
	}

	if errors.Is(err, errReset) {
		s.display.Flush()
		return nil
	}
	return err
}

// setup negotiates a new game and resets all per-game state.
func (s *Session) setup() error {
	s.display.Clear()
	s.lastStatus = ""

	gameType, err := s.request(dotsprotocol.IDGameType, dotsprotocol.GameVsComputer, dotsprotocol.GameVsHuman)
	if err != nil {
		return err
	}
	cols, err := s.request(dotsprotocol.IDColumns, 1, s.surface.MaxColumns)
	if err != nil {
		return err
	}
	rows, err := s.request(dotsprotocol.IDRows, 1, s.surface.MaxRows)
	if err != nil {
		return err
	}

	dims := board.Dimensions{Columns: cols, Rows: rows}
	layout, err := board.NewLayout(dims, s.surface)
	if err != nil {
		return fmt.Errorf("board %dx%d: %w", cols, rows, err)
	}
	s.gameType, s.dims, s.layout = gameType, dims, layout

	for c := 0; c <= cols; c++ {
		for r := 0; r <= rows; r++ {
			s.display.FillRect(layout.DotRect(board.Vertex{Col: c, Row: r}), Black)
		}
	}
	s.display.Flush()

	computerSeat := 0
	if gameType == dotsprotocol.GameVsComputer {
		computerSeat, err = s.request(dotsprotocol.IDComputerSeat, 1, 2)
		if err != nil {
			return err
		}
	}
	s.computerSeat = computerSeat

	s.scores = ScoreState{}
	s.cursor = CursorState{NeedsRedraw: true}
	s.turn = TurnState{Phase: AwaitingStart}
	s.setSeat(1)

	s.input.Calibrate()
	s.input.Rearm()

	s.phase = PhasePlaying
	s.logger.Printf("new game: %dx%d, computer seat %d", cols, rows, computerSeat)
	s.setStatus(s.fromStatus())
	s.display.Flush()
	return nil
}

// awaitRestart polls for the click that dismisses the game-over screen.
func (s *Session) awaitRestart() error {
	if !s.input.Poll().Click {
		s.idle = true
		return nil
	}
	if err := s.proto.Acknowledge(); err != nil {
		return fmt.Errorf("acknowledge game over: %w", err)
	}
	s.resetRequested = true
	s.phase = PhaseSetup
	return nil
}

// request asks the peer for one value. A timeout or out-of-range answer
// sets the reset flag and returns errReset; anything else is fatal.
func (s *Session) request(id byte, lo, hi int) (int, error) {
	n, err := s.proto.RequestInRange(id, lo, hi)
	if err == nil {
		return n, nil
	}
	if errors.Is(err, dotsprotocol.ErrTimeout) || dotsprotocol.IsOutOfRange(err) {
		s.logger.Printf("request %c failed, restarting setup: %v", id, err)
		s.resetRequested = true
		return 0, errReset
	}
	return 0, fmt.Errorf("request %c: %w", id, err)
}

// setSeat hands the move to seat.
func (s *Session) setSeat(seat int) {
	s.turn.Seat = seat
	switch {
	case seat == s.computerSeat:
		s.turn.Active = Computer
	case seat == 2:
		s.turn.Active = Player2
	default:
		s.turn.Active = Player1
	}
}

func (s *Session) fromStatus() string {
	if s.turn.Active == Computer {
		return StatusComputer
	}
	return statusFrom(s.turn.Seat)
}

// setStatus updates the status line unless it already shows text.
func (s *Session) setStatus(text string) {
	if text == s.lastStatus {
		return
	}
	s.lastStatus = text
	s.display.SetStatus(text)
}
