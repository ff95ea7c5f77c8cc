package session

import (
	"testing"

	"github.com/thomaslorincz/arduino-dots-and-boxes/board"
	"github.com/thomaslorincz/arduino-dots-and-boxes/clock"
	"github.com/thomaslorincz/arduino-dots-and-boxes/dotsprotocol"
	"github.com/thomaslorincz/arduino-dots-and-boxes/joystick"
)

type fill struct {
	Rect   board.Rect
	Colour Colour
}

type fakeDisplay struct {
	clears   int
	flushes  int
	fills    []fill
	statuses []string
	gameOver []Result
}

func (d *fakeDisplay) Clear()                          { d.clears++ }
func (d *fakeDisplay) FillRect(r board.Rect, c Colour) { d.fills = append(d.fills, fill{r, c}) }
func (d *fakeDisplay) SetStatus(text string)           { d.statuses = append(d.statuses, text) }
func (d *fakeDisplay) ShowGameOver(r Result)           { d.gameOver = append(d.gameOver, r) }
func (d *fakeDisplay) Flush()                          { d.flushes++ }

func (d *fakeDisplay) status() string {
	if len(d.statuses) == 0 {
		return ""
	}
	return d.statuses[len(d.statuses)-1]
}

func (d *fakeDisplay) hasFill(r board.Rect, c Colour) bool {
	for _, f := range d.fills {
		if f.Rect == r && f.Colour == c {
			return true
		}
	}
	return false
}

// answer is one scripted reply. A nil err with a value outside the
// requested range is turned into an out-of-range error, as the real client
// does.
type answer struct {
	id    byte
	value int
	err   error
}

type request struct {
	id     byte
	lo, hi int
}

// fakeProtocol replays answers in order and records everything sent. Once
// the answers run out every request times out.
type fakeProtocol struct {
	t        *testing.T
	answers  []answer
	requests []request
	edges    []board.Edge
	acks     int
	sendErr  error
}

func (p *fakeProtocol) queue(id byte, values ...int) {
	for _, v := range values {
		p.answers = append(p.answers, answer{id: id, value: v})
	}
}

func (p *fakeProtocol) RequestInRange(id byte, lo, hi int) (int, error) {
	p.requests = append(p.requests, request{id, lo, hi})
	if len(p.answers) == 0 {
		return 0, dotsprotocol.ErrTimeout
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	if a.err != nil {
		return 0, a.err
	}
	if a.id != id {
		p.t.Errorf("requested %c, script answers %c", id, a.id)
		return 0, dotsprotocol.ErrTimeout
	}
	if a.value < lo || a.value > hi {
		return 0, &dotsprotocol.ParseError{Kind: dotsprotocol.ErrKindOutOfRange, ID: id, Value: a.value, Min: lo, Max: hi}
	}
	return a.value, nil
}

func (p *fakeProtocol) RequestEdge(e board.Edge) error {
	if p.sendErr != nil {
		return p.sendErr
	}
	p.edges = append(p.edges, e)
	return nil
}

func (p *fakeProtocol) Acknowledge() error {
	if p.sendErr != nil {
		return p.sendErr
	}
	p.acks++
	return nil
}

// fakeInput replays events; an empty queue yields idle polls.
type fakeInput struct {
	events       []joystick.Event
	polls        int
	calibrations int
	rearms       int
	onPoll       func(n int)
}

func (in *fakeInput) Calibrate() { in.calibrations++ }
func (in *fakeInput) Rearm()     { in.rearms++ }

func (in *fakeInput) Poll() joystick.Event {
	in.polls++
	if in.onPoll != nil {
		in.onPoll(in.polls)
	}
	if len(in.events) == 0 {
		return joystick.Event{}
	}
	ev := in.events[0]
	in.events = in.events[1:]
	return ev
}

func (in *fakeInput) push(events ...joystick.Event) {
	in.events = append(in.events, events...)
}

var (
	click = joystick.Event{Click: true}
	right = joystick.Event{DX: 1}
	left  = joystick.Event{DX: -1}
	down  = joystick.Event{DY: 1}
	up    = joystick.Event{DY: -1}
)

type harness struct {
	s     *Session
	disp  *fakeDisplay
	proto *fakeProtocol
	input *fakeInput
	clock *clock.Manual
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		disp:  &fakeDisplay{},
		proto: &fakeProtocol{t: t},
		input: &fakeInput{},
		clock: clock.NewManual(0),
	}
	h.s = New(h.disp, h.proto, h.input, h.clock)
	return h
}

// step runs n iterations and fails the test on any error.
func (h *harness) step(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := h.s.Step(t.Context()); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
}

// setupHuman queues a human-vs-human game on a cols x rows board and runs
// setup.
func (h *harness) setupHuman(t *testing.T, cols, rows int) {
	t.Helper()
	h.proto.queue(dotsprotocol.IDGameType, dotsprotocol.GameVsHuman)
	h.proto.queue(dotsprotocol.IDColumns, cols)
	h.proto.queue(dotsprotocol.IDRows, rows)
	h.step(t, 1)
	if h.s.Phase() != PhasePlaying {
		t.Fatalf("phase after setup = %v, want Playing", h.s.Phase())
	}
}

// selectEdge feeds the clicks and moves that pick from, then to, starting
// with the cursor on from.
func selectEdge(in *fakeInput, moves ...joystick.Event) int {
	in.push(click)
	in.push(moves...)
	in.push(click)
	return len(moves) + 2
}
