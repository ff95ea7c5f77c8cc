package dotsprotocol

import (
	"time"

	"github.com/thomaslorincz/arduino-dots-and-boxes/clock"
)

// LineReader reads terminator-delimited lines from a Source with a bounded
// wait.
type LineReader struct {
	src          Source
	clock        clock.Clock
	pollInterval time.Duration
}

// NewLineReader creates a reader that measures timeouts with clk.
func NewLineReader(src Source, clk clock.Clock) *LineReader {
	return &LineReader{
		src:          src,
		clock:        clk,
		pollInterval: DefaultPollInterval,
	}
}

// SetPollInterval sets how long each Poll on the source may block.
func (r *LineReader) SetPollInterval(d time.Duration) {
	if d > 0 {
		r.pollInterval = d
	}
}

// ReadLine returns the bytes up to the next \r, \n or NUL, or the first
// maxLength-1 bytes if no terminator comes first. The terminator is
// consumed and not returned; a line cut at the length limit is returned as
// is and the rest of it will start the next line.
//
// If neither happens within timeout, ReadLine returns ErrTimeout and drops
// the partial line. Transport failures are returned as *ConnectionError.
func (r *LineReader) ReadLine(maxLength int, timeout time.Duration) ([]byte, error) {
	limit := maxLength - 1
	if limit < 1 {
		limit = 1
	}
	budget := clock.Millis(timeout)
	start := r.clock.Millis()

	line := make([]byte, 0, limit)
	for len(line) < limit {
		elapsed := clock.Since(&start, r.clock.Millis())
		if elapsed > budget {
			return nil, ErrTimeout
		}

		wait := r.pollInterval
		if remaining := time.Duration(budget-elapsed) * time.Millisecond; remaining < wait {
			wait = remaining
		}
		if wait <= 0 {
			wait = time.Millisecond
		}

		b, ok, err := r.src.Poll(wait)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		if b == '\r' || b == '\n' || b == 0 {
			return line, nil
		}
		line = append(line, b)
	}

	return line, nil
}
