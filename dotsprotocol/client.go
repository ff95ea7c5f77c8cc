package dotsprotocol

import (
	"errors"
	"io"
	"log"
	"math"
	"time"

	"github.com/thomaslorincz/arduino-dots-and-boxes/board"
	"github.com/thomaslorincz/arduino-dots-and-boxes/clock"
)

// Client is the requesting half of the protocol.
//
// Every answer is requested by identifier. The client waits for a line
// carrying that identifier, discarding anything else, and reports the
// outcome back to the peer with an A (received) or T (gave up) line.
type Client struct {
	reader  *LineReader
	out     io.Writer
	clock   clock.Clock
	timeout time.Duration
	logger  *log.Logger
}

// NewClient creates a client reading answers from src and writing
// requests to out.
func NewClient(src Source, out io.Writer, clk clock.Clock) *Client {
	return &Client{
		reader:  NewLineReader(src, clk),
		out:     out,
		clock:   clk,
		timeout: DefaultTimeout,
		logger:  log.New(io.Discard, "", 0),
	}
}

// SetTimeout sets the window a single request may take.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

// SetPollInterval sets how long each transport poll may block.
func (c *Client) SetPollInterval(d time.Duration) {
	c.reader.SetPollInterval(d)
}

// SetLogger sets where discarded lines and failures are reported.
func (c *Client) SetLogger(logger *log.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// RequestNumber waits for an answer identified by id and returns its value.
func (c *Client) RequestNumber(id byte) (int, error) {
	return c.RequestInRange(id, math.MinInt, math.MaxInt)
}

// RequestInRange waits for an answer identified by id whose value lies in
// [lo, hi].
//
// The wait is one window measured from the call, not per line. Lines that
// do not parse or that carry another identifier are dropped. When the
// window closes, a T line is sent and ErrTimeout returned. A matching
// answer outside [lo, hi] is also reported with a T line and returned as an
// out-of-range *ParseError. A good answer is acknowledged with an A line.
func (c *Client) RequestInRange(id byte, lo, hi int) (int, error) {
	budget := clock.Millis(c.timeout)
	start := c.clock.Millis()

	for {
		elapsed := clock.Since(&start, c.clock.Millis())
		if elapsed > budget {
			return 0, c.fail(id, ErrTimeout)
		}

		remaining := time.Duration(budget-elapsed) * time.Millisecond
		line, err := c.reader.ReadLine(MaxLineLength, remaining)
		if err != nil {
			if errors.Is(err, ErrTimeout) {
				return 0, c.fail(id, ErrTimeout)
			}
			return 0, err
		}

		answer, err := ParseAnswer(string(line))
		if err != nil {
			if len(line) > 0 {
				c.logger.Printf("waiting for %c: discarding %v", id, err)
			}
			continue
		}
		if answer.ID != id {
			c.logger.Printf("waiting for %c: discarding %q", id, line)
			continue
		}

		if answer.Value < lo || answer.Value > hi {
			return 0, c.fail(id, newOutOfRangeError(id, answer.Value, lo, hi))
		}

		if err := c.send(NewAckRequest()); err != nil {
			return 0, err
		}
		return answer.Value, nil
	}
}

// RequestEdge submits an edge chosen by a human player.
func (c *Client) RequestEdge(e board.Edge) error {
	return c.send(NewEdgeRequest(e))
}

// Acknowledge sends a bare A line, used to confirm the player has seen the
// end of a game.
func (c *Client) Acknowledge() error {
	return c.send(NewAckRequest())
}

// fail reports a failed request to the peer and returns cause, unless the
// report itself could not be written.
func (c *Client) fail(id byte, cause error) error {
	c.logger.Printf("request %c failed: %v", id, cause)
	if err := c.send(NewTimeoutRequest()); err != nil {
		return err
	}
	return cause
}

// writeDeadliner is implemented by outputs that can bound a blocked write,
// such as net.Conn.
type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

// send writes one request line. On outputs that support it the write is
// bounded by the request window, so a peer that stops reading cannot stall
// the client.
func (c *Client) send(r Request) error {
	if wd, ok := c.out.(writeDeadliner); ok {
		if err := wd.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
			return NewConnectionError("failed to send "+r.Format(), err)
		}
	}
	if _, err := io.WriteString(c.out, r.FormatLine()); err != nil {
		return NewConnectionError("failed to send "+r.Format(), err)
	}
	return nil
}
