// Package joystick turns raw two-axis stick readings and a push button
// into discrete cursor steps and clicks.
//
// A deflected stick produces exactly one step per gesture: the controller
// disarms when it emits a step and re-arms only once the stick is back
// inside the deadzone on both axes. The button is sampled at a fixed rate
// and reports a click when a press is followed by a release.
package joystick

import (
	"time"

	"github.com/thomaslorincz/arduino-dots-and-boxes/clock"
)

// Defaults for a 10-bit analog stick.
const (
	// DefaultDeadzone is the largest axis offset from centre treated as
	// neutral.
	DefaultDeadzone = 64

	// DefaultButtonSampleDelay is the minimum time between button samples.
	DefaultButtonSampleDelay = 200 * time.Millisecond

	// NeutralReading is the centre of a 10-bit axis, used until Calibrate
	// is called.
	NeutralReading = 512
)

// Sampler reads the stick hardware.
type Sampler interface {
	// Axes returns the raw horizontal and vertical readings.
	Axes() (x, y int)

	// Pressed reports whether the button is currently held down.
	Pressed() bool
}

// RestReporter is implemented by samplers that know their own rest
// position, such as a keyboard-driven virtual stick. Calibrate uses it
// instead of taking a reading.
type RestReporter interface {
	Rest() (x, y int)
}

// Event is the result of one poll. DX and DY are -1, 0 or +1; a positive
// DY moves down.
type Event struct {
	DX, DY int
	Click  bool
}

// Moved reports whether the event carries a step on either axis.
func (e Event) Moved() bool {
	return e.DX != 0 || e.DY != 0
}

// Controller converts samples into events. It is not safe for concurrent
// use; the session polls it from a single goroutine.
type Controller struct {
	sampler     Sampler
	clock       clock.Clock
	deadzone    int
	sampleDelay uint32

	centreX, centreY int
	armed            bool

	prevPressed bool
	prevSample  uint32
}

// New creates a controller reading from s, armed and centred on
// NeutralReading.
func New(s Sampler, clk clock.Clock) *Controller {
	return &Controller{
		sampler:     s,
		clock:       clk,
		deadzone:    DefaultDeadzone,
		sampleDelay: clock.Millis(DefaultButtonSampleDelay),
		centreX:     NeutralReading,
		centreY:     NeutralReading,
		armed:       true,
		prevSample:  clk.Millis(),
	}
}

// SetDeadzone sets the neutral band around the centre reading.
func (c *Controller) SetDeadzone(n int) {
	if n >= 0 {
		c.deadzone = n
	}
}

// SetButtonSampleDelay sets the minimum time between button samples.
func (c *Controller) SetButtonSampleDelay(d time.Duration) {
	if d >= 0 {
		c.sampleDelay = clock.Millis(d)
	}
}

// Calibrate records the current stick position as centre. The stick must
// be at rest when this is called.
func (c *Controller) Calibrate() {
	if r, ok := c.sampler.(RestReporter); ok {
		c.centreX, c.centreY = r.Rest()
		return
	}
	c.centreX, c.centreY = c.sampler.Axes()
}

// Rearm forgets any gesture in progress: the stick is armed again, the
// button history is cleared and the sampling clock restarts.
func (c *Controller) Rearm() {
	c.armed = true
	c.prevPressed = false
	c.prevSample = c.clock.Millis()
}

// Poll samples the stick and the button once.
func (c *Controller) Poll() Event {
	var ev Event

	x, y := c.sampler.Axes()
	dx, dy := x-c.centreX, y-c.centreY

	if c.armed {
		if abs(dx) > c.deadzone {
			ev.DX = sign(dx)
		}
		if abs(dy) > c.deadzone {
			ev.DY = sign(dy)
		}
		if ev.Moved() {
			c.armed = false
		}
	}
	if abs(dx) <= c.deadzone && abs(dy) <= c.deadzone {
		c.armed = true
	}

	now := c.clock.Millis()
	if clock.Since(&c.prevSample, now) > c.sampleDelay {
		c.prevSample = now
		pressed := c.sampler.Pressed()
		ev.Click = c.prevPressed && !pressed
		c.prevPressed = pressed
	}

	return ev
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	return 1
}
