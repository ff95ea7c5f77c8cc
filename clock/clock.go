// Package clock provides the millisecond time source shared by the protocol
// reader, the joystick controller and the game session.
//
// Time is modelled as a free-running uint32 millisecond counter that may wrap
// or jump backwards. Code that measures intervals must go through Since,
// which treats an inverted reading as a new reference point instead of
// producing a huge or negative interval.
package clock

import (
	"sync"
	"time"
)

// Clock is a monotonically increasing millisecond counter with a way to
// pause the calling task.
type Clock interface {
	// Millis returns the current counter value.
	Millis() uint32

	// Sleep blocks the caller for d.
	Sleep(d time.Duration)
}

// Since returns the milliseconds elapsed between *ref and now. If now is
// smaller than *ref the counter wrapped (or was rolled back); *ref is reset
// to now and zero is returned.
func Since(ref *uint32, now uint32) uint32 {
	if now < *ref {
		*ref = now
		return 0
	}
	return now - *ref
}

// Millis converts a duration to whole milliseconds, saturating at the
// largest counter value.
func Millis(d time.Duration) uint32 {
	ms := d.Milliseconds()
	if ms <= 0 {
		return 0
	}
	if ms > int64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(ms)
}

type systemClock struct {
	epoch time.Time
}

// System returns a Clock backed by the runtime's monotonic clock. The
// counter starts at zero when System is called and wraps after about 49.7
// days.
func System() Clock {
	return &systemClock{epoch: time.Now()}
}

func (c *systemClock) Millis() uint32 {
	return uint32(time.Since(c.epoch).Milliseconds())
}

func (c *systemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Manual is a Clock that only moves when told to. Sleep advances it
// instead of blocking, so code under test runs without real delays.
type Manual struct {
	mu sync.Mutex
	ms uint32
}

// NewManual returns a Manual clock reading start.
func NewManual(start uint32) *Manual {
	return &Manual{ms: start}
}

func (m *Manual) Millis() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ms
}

// Sleep advances the clock by d.
func (m *Manual) Sleep(d time.Duration) {
	m.Advance(d)
}

// Advance moves the clock forward by d. The counter wraps like a real one.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ms += uint32(d.Milliseconds())
}

// Set forces the counter to ms, which may be behind the current value.
func (m *Manual) Set(ms uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ms = ms
}
