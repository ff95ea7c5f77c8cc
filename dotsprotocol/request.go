package dotsprotocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/thomaslorincz/arduino-dots-and-boxes/board"
)

// RequestType represents the type of line the client sends.
type RequestType int

const (
	// ReqAck acknowledges an answer.
	ReqAck RequestType = iota
	// ReqTimeout reports that an answer did not arrive.
	ReqTimeout
	// ReqEdge submits a human player's edge.
	ReqEdge
)

// Request is one outbound line. Use the constructor functions
// (NewAckRequest, NewTimeoutRequest, NewEdgeRequest) to create instances.
type Request struct {
	Type RequestType
	Edge board.Edge // For ReqEdge
}

// NewAckRequest creates an acknowledgement.
func NewAckRequest() Request {
	return Request{Type: ReqAck}
}

// NewTimeoutRequest creates a timeout report.
func NewTimeoutRequest() Request {
	return Request{Type: ReqTimeout}
}

// NewEdgeRequest creates an edge submission.
func NewEdgeRequest(e board.Edge) Request {
	return Request{Type: ReqEdge, Edge: e}
}

// Format returns the request as it appears on the wire, without terminator.
func (r Request) Format() string {
	switch r.Type {
	case ReqAck:
		return string(AckMarker)
	case ReqTimeout:
		return string(TimeoutMarker)
	case ReqEdge:
		return fmt.Sprintf("%c %d %d %d %d", EdgePrefix,
			r.Edge.A.Col, r.Edge.A.Row, r.Edge.B.Col, r.Edge.B.Row)
	default:
		return ""
	}
}

// FormatLine returns the request with a trailing newline.
func (r Request) FormatLine() string {
	return r.Format() + "\n"
}

// ParseRequest parses a client line. It is the peer-side counterpart of
// Format and accepts the same surrounding whitespace ParseAnswer does.
func ParseRequest(line string) (Request, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || len(fields[0]) != 1 {
		return Request{}, newMalformedError(line)
	}

	switch fields[0][0] {
	case AckMarker:
		if len(fields) != 1 {
			return Request{}, newMalformedError(line)
		}
		return NewAckRequest(), nil
	case TimeoutMarker:
		if len(fields) != 1 {
			return Request{}, newMalformedError(line)
		}
		return NewTimeoutRequest(), nil
	case EdgePrefix:
		if len(fields) != 5 {
			return Request{}, newMalformedError(line)
		}
		var coords [4]int
		for i, f := range fields[1:] {
			n, err := strconv.Atoi(f)
			if err != nil {
				return Request{}, newMalformedError(line)
			}
			coords[i] = n
		}
		return NewEdgeRequest(board.Edge{
			A: board.Vertex{Col: coords[0], Row: coords[1]},
			B: board.Vertex{Col: coords[2], Row: coords[3]},
		}), nil
	default:
		return Request{}, newMalformedError(line)
	}
}
