package dotsprotocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Answer is one "<id> <int>" line from the peer.
type Answer struct {
	ID    byte
	Value int
}

// NewAnswer creates an answer with the given identifier and value.
func NewAnswer(id byte, value int) Answer {
	return Answer{ID: id, Value: value}
}

// Format returns the answer as it appears on the wire, without terminator.
func (a Answer) Format() string {
	return fmt.Sprintf("%c %d", a.ID, a.Value)
}

// FormatLine returns the answer with a trailing newline.
func (a Answer) FormatLine() string {
	return a.Format() + "\n"
}

// ParseAnswer parses a line of the form "<id> <int>": a single non-space
// identifier character, whitespace, and a signed decimal integer. Surrounding
// whitespace is ignored; anything else is malformed.
func ParseAnswer(line string) (Answer, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 || len(fields[0]) != 1 {
		return Answer{}, newMalformedError(line)
	}

	value, err := strconv.Atoi(fields[1])
	if err != nil {
		return Answer{}, newMalformedError(line)
	}

	return Answer{ID: fields[0][0], Value: value}, nil
}
