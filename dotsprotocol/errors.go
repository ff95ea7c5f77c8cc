package dotsprotocol

import (
	"errors"
	"fmt"
)

// Sentinel errors for the protocol.
var (
	// ErrTimeout indicates no matching answer arrived within the window.
	ErrTimeout = errors.New("request timed out")

	// ErrSocketNotFound indicates no peer socket was found.
	ErrSocketNotFound = errors.New("no peer socket found")

	// ErrUnsupportedScheme indicates a transport address Dial cannot handle.
	ErrUnsupportedScheme = errors.New("unsupported transport scheme")
)

// ParseError represents an answer line that could not be used.
type ParseError struct {
	Kind  ParseErrorKind
	Line  string // The offending line
	ID    byte   // Identifier, when the line parsed far enough to have one
	Value int    // Parsed value, for ErrKindOutOfRange
	Min   int
	Max   int
}

// ParseErrorKind categorizes parsing errors.
type ParseErrorKind int

const (
	// ErrKindMalformed indicates a line that is not "<id> <int>".
	ErrKindMalformed ParseErrorKind = iota
	// ErrKindOutOfRange indicates a well-formed answer whose value lies
	// outside the range the request allows.
	ErrKindOutOfRange
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrKindMalformed:
		return fmt.Sprintf("malformed line %q", e.Line)
	case ErrKindOutOfRange:
		return fmt.Sprintf("answer %c=%d outside [%d, %d]", e.ID, e.Value, e.Min, e.Max)
	default:
		return fmt.Sprintf("parse error: %q", e.Line)
	}
}

func newMalformedError(line string) error {
	return &ParseError{Kind: ErrKindMalformed, Line: line}
}

func newOutOfRangeError(id byte, value, lo, hi int) error {
	return &ParseError{Kind: ErrKindOutOfRange, ID: id, Value: value, Min: lo, Max: hi}
}

// IsOutOfRange reports whether err is an out-of-range answer.
func IsOutOfRange(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == ErrKindOutOfRange
}

// ConnectionError represents a transport failure.
type ConnectionError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("connection failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("connection failed: %s", e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// NewConnectionError creates a new connection error.
func NewConnectionError(message string, cause error) error {
	return &ConnectionError{Message: message, Cause: cause}
}

// IsConnectionError reports whether err is (or wraps) a ConnectionError.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}
