package session

import (
	"fmt"

	"github.com/thomaslorincz/arduino-dots-and-boxes/board"
	"github.com/thomaslorincz/arduino-dots-and-boxes/dotsprotocol"
)

// computerTurn reads the computer's edge from the peer and plays it. The
// peer is authoritative for its own moves, so the edge is not validated.
func (s *Session) computerTurn() error {
	bounds := [4]int{s.dims.Columns, s.dims.Rows, s.dims.Columns, s.dims.Rows}
	var coords [4]int
	for i, hi := range bounds {
		n, err := s.request(dotsprotocol.IDComputerEdge, 0, hi)
		if err != nil {
			return err
		}
		coords[i] = n
	}

	edge := board.Edge{
		A: board.Vertex{Col: coords[0], Row: coords[1]},
		B: board.Vertex{Col: coords[2], Row: coords[3]},
	}
	s.logger.Printf("computer plays %v", edge)
	return s.processDrawing(edge)
}

// humanTurn applies one input poll to the cursor and the selection.
func (s *Session) humanTurn() error {
	ev := s.input.Poll()

	if ev.Moved() {
		s.cursor.Position = s.dims.Step(s.cursor.Position, ev.DX, ev.DY)
		s.cursor.NeedsRedraw = true
	}
	if s.cursor.NeedsRedraw {
		s.drawCursor()
	}

	if !ev.Click {
		s.idle = !ev.Moved()
		return nil
	}

	pos := s.cursor.Position
	if s.turn.Phase == AwaitingStart {
		s.turn.PendingStart = pos
		s.turn.Phase = AwaitingEnd
		s.setStatus(statusTo(s.turn.Seat))
		s.display.Flush()
		return nil
	}

	edge := board.Edge{A: s.turn.PendingStart, B: pos}
	s.turn.Phase = AwaitingStart
	if !edge.Valid() {
		s.rejectEdge(edge, ErrInvalidEdge)
		return nil
	}

	if err := s.proto.RequestEdge(edge); err != nil {
		return fmt.Errorf("submit %v: %w", edge, err)
	}
	exists, err := s.request(dotsprotocol.IDLineExists, 0, 1)
	if err != nil {
		return err
	}
	if exists == 1 {
		s.rejectEdge(edge, ErrDuplicateEdge)
		return nil
	}

	return s.processDrawing(edge)
}

// drawCursor moves the cursor dot from where it was last drawn to the
// cursor position.
func (s *Session) drawCursor() {
	s.display.FillRect(s.layout.DotRect(s.cursor.LastDrawn), Black)
	s.display.FillRect(s.layout.DotRect(s.cursor.Position), Green)
	s.cursor.LastDrawn = s.cursor.Position
	s.cursor.NeedsRedraw = false
	s.display.Flush()
}

// rejectEdge shows a notice for a while and restarts the selection. It
// sends nothing to the peer.
func (s *Session) rejectEdge(edge board.Edge, reason error) {
	s.logger.Printf("player %d: %v rejected: %v", s.turn.Seat, edge, reason)
	s.turn.Phase = AwaitingStart
	s.setStatus(StatusInvalid)
	s.display.Flush()
	s.clock.Sleep(s.noticeDelay)
	s.setStatus(s.fromStatus())
	s.display.Flush()
}

// processDrawing draws an accepted edge, collects the boxes it closed and
// hands the move on, or ends the game.
func (s *Session) processDrawing(edge board.Edge) error {
	s.display.FillRect(s.layout.EdgeRect(edge), Black)
	s.display.Flush()

	closed, err := s.request(dotsprotocol.IDClosedBoxes, 0, 2)
	if err != nil {
		return err
	}

	seat := s.turn.Seat
	if closed > 0 {
		s.scores.add(seat, closed)
	}

	colour := SeatColour(seat)
	for i := 0; i < closed; i++ {
		col, err := s.request(dotsprotocol.IDBoxCoordinate, 0, s.dims.Columns-1)
		if err != nil {
			return err
		}
		row, err := s.request(dotsprotocol.IDBoxCoordinate, 0, s.dims.Rows-1)
		if err != nil {
			return err
		}
		s.display.FillRect(s.layout.CellRect(col, row), colour)
	}
	s.display.Flush()

	over, err := s.request(dotsprotocol.IDGameOver, 0, 1)
	if err != nil {
		return err
	}
	if over == 1 {
		s.clock.Sleep(s.gameOverDelay)
		result := Result{Scores: s.scores, ComputerSeat: s.computerSeat}
		s.logger.Printf("game over: %s (%d-%d)", result.Headline(), s.scores.Player1, s.scores.Player2)
		s.display.ShowGameOver(result)
		s.display.Flush()
		s.phase = PhaseGameOver
		return nil
	}

	if closed == 0 {
		s.setSeat(3 - seat)
	}
	s.turn.Phase = AwaitingStart
	s.setStatus(s.fromStatus())
	s.display.Flush()
	return nil
}
