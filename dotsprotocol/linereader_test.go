package dotsprotocol

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/thomaslorincz/arduino-dots-and-boxes/clock"
	"github.com/thomaslorincz/arduino-dots-and-boxes/dotsprotocol/dotstest"
)

func TestReadLineTerminators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"newline", "C 3\n", []string{"C 3"}},
		{"carriage return", "C 3\r", []string{"C 3"}},
		{"crlf yields an empty second line", "C 3\r\nR 4\n", []string{"C 3", "", "R 4"}},
		{"nul byte", "G 1\x00O 0\n", []string{"G 1", "O 0"}},
		{"empty line", "\n", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk := clock.NewManual(0)
			r := NewLineReader(dotstest.NewScript(clk, dotstest.Step{Data: tt.input}), clk)
			for i, want := range tt.want {
				got, err := r.ReadLine(MaxLineLength, time.Second)
				if err != nil {
					t.Fatalf("line %d: unexpected error %v", i, err)
				}
				if string(got) != want {
					t.Errorf("line %d = %q, want %q", i, got, want)
				}
			}
		})
	}
}

func TestReadLineTruncatesAtCapacity(t *testing.T) {
	clk := clock.NewManual(0)
	long := strings.Repeat("x", 40)
	r := NewLineReader(dotstest.NewScript(clk, dotstest.Lines(long)...), clk)

	first, err := r.ReadLine(MaxLineLength, time.Second)
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if len(first) != MaxLineLength-1 {
		t.Errorf("len(first) = %d, want %d", len(first), MaxLineLength-1)
	}

	rest, err := r.ReadLine(MaxLineLength, time.Second)
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if want := strings.Repeat("x", 40-(MaxLineLength-1)); string(rest) != want {
		t.Errorf("rest = %q, want %q", rest, want)
	}
}

func TestReadLineTimeout(t *testing.T) {
	clk := clock.NewManual(1000)
	r := NewLineReader(dotstest.NewScript(clk), clk)

	line, err := r.ReadLine(MaxLineLength, 3*time.Second)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if line != nil {
		t.Errorf("line = %q, want nil", line)
	}
	if elapsed := clk.Millis() - 1000; elapsed < 3000 || elapsed > 3100 {
		t.Errorf("gave up after %d ms, want about 3000", elapsed)
	}
}

func TestReadLineTimeoutDropsPartialLine(t *testing.T) {
	clk := clock.NewManual(0)
	script := dotstest.NewScript(clk, dotstest.Step{Data: "C 3"})
	r := NewLineReader(script, clk)

	if _, err := r.ReadLine(MaxLineLength, 500*time.Millisecond); !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestReadLineArrivesBeforeDeadline(t *testing.T) {
	clk := clock.NewManual(0)
	script := dotstest.NewScript(clk, dotstest.After(2900*time.Millisecond, "N 1"))
	r := NewLineReader(script, clk)

	got, err := r.ReadLine(MaxLineLength, 3*time.Second)
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if string(got) != "N 1" {
		t.Errorf("got %q, want %q", got, "N 1")
	}
}

func TestReadLineSurvivesClockWrap(t *testing.T) {
	clk := clock.NewManual(^uint32(0) - 5)
	script := dotstest.NewScript(clk, dotstest.After(50*time.Millisecond, "O 0"))
	r := NewLineReader(script, clk)

	got, err := r.ReadLine(MaxLineLength, time.Second)
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if string(got) != "O 0" {
		t.Errorf("got %q, want %q", got, "O 0")
	}
}

func TestReadLineTransportError(t *testing.T) {
	clk := clock.NewManual(0)
	script := dotstest.NewScript(clk)
	script.Err = NewConnectionError("transport closed", io.EOF)
	r := NewLineReader(script, clk)

	_, err := r.ReadLine(MaxLineLength, time.Second)
	if !IsConnectionError(err) {
		t.Fatalf("err = %v, want ConnectionError", err)
	}
	if !errors.Is(err, io.EOF) {
		t.Errorf("err = %v, want it to wrap io.EOF", err)
	}
}
