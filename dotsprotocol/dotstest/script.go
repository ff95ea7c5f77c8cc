// Package dotstest provides a scripted transport for testing code built on
// dotsprotocol without real sockets or real delays.
package dotstest

import (
	"time"

	"github.com/thomaslorincz/arduino-dots-and-boxes/clock"
)

// Step is one scripted delivery: Data becomes readable after Delay has
// passed on the script's clock.
type Step struct {
	Delay time.Duration
	Data  string
}

// Lines returns steps delivering each line immediately, newline-terminated.
func Lines(lines ...string) []Step {
	steps := make([]Step, len(lines))
	for i, l := range lines {
		steps[i] = Step{Data: l + "\n"}
	}
	return steps
}

// After returns a step delivering line, newline-terminated, after d.
func After(d time.Duration, line string) Step {
	return Step{Delay: d, Data: line + "\n"}
}

// Script is a dotsprotocol.Source that replays steps against a manual
// clock. Waiting for data advances the clock instead of sleeping. Once the
// script runs dry it reports Err if set, otherwise it behaves like a silent
// line.
type Script struct {
	Clock *clock.Manual
	Err   error

	steps   []Step
	pending []byte
}

// NewScript creates a script on clk.
func NewScript(clk *clock.Manual, steps ...Step) *Script {
	return &Script{Clock: clk, steps: steps}
}

// Push appends more steps.
func (s *Script) Push(steps ...Step) {
	s.steps = append(s.steps, steps...)
}

// PushLines appends immediate lines.
func (s *Script) PushLines(lines ...string) {
	s.Push(Lines(lines...)...)
}

// Remaining reports how many undelivered bytes and steps are left.
func (s *Script) Remaining() int {
	n := len(s.pending)
	for _, st := range s.steps {
		n += len(st.Data)
	}
	return n
}

// Poll implements dotsprotocol.Source.
func (s *Script) Poll(wait time.Duration) (byte, bool, error) {
	for len(s.pending) == 0 {
		if len(s.steps) == 0 {
			if s.Err != nil {
				return 0, false, s.Err
			}
			s.Clock.Advance(wait)
			return 0, false, nil
		}

		next := &s.steps[0]
		if next.Delay > 0 {
			if next.Delay > wait {
				next.Delay -= wait
				s.Clock.Advance(wait)
				return 0, false, nil
			}
			s.Clock.Advance(next.Delay)
			next.Delay = 0
		}
		s.pending = []byte(next.Data)
		s.steps = s.steps[1:]
	}

	b := s.pending[0]
	s.pending = s.pending[1:]
	return b, true, nil
}
