// =============================================================================
// repl.go - Operator Read-Eval-Print Loop
// =============================================================================
//
// Each line the operator types is either a dot-command handled here or an
// answer that translateToProtocol expands into protocol lines for the
// client. Client traffic is printed from the listener's goroutines while
// the loop waits for input, so all output goes through one locked writer.
//
// =============================================================================

package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// lineSource supplies operator input. *LineEditor is the real one.
type lineSource interface {
	GetLine(prompt string) (string, error)
}

// lockedWriter serialises writes from several goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// prompt shows whether a client is attached.
func prompt(connected bool) string {
	if connected {
		return "[client] > "
	}
	return "[waiting] > "
}

// runREPL reads operator lines until .quit or end of input.
func runREPL(input lineSource, peer *peerListener, out io.Writer) {
	for {
		line, err := input.GetLine(prompt(peer.connected()))
		if err != nil {
			// EOF (Ctrl-D or end of piped input) ends the session quietly.
			fmt.Fprintln(out)
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if !runDotCommand(line, peer, out) {
				return
			}
			continue
		}

		lines, err := translateToProtocol(line)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		if err := peer.send(lines); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		for _, l := range lines {
			fmt.Fprintf(out, "-> %s\n", l)
		}
	}
}

// runDotCommand handles one dot-command and reports whether the loop
// should continue.
func runDotCommand(line string, peer *peerListener, out io.Writer) bool {
	command, topic, _ := strings.Cut(line, " ")
	switch strings.ToLower(command) {
	case ".quit", ".exit":
		return false
	case ".help":
		printHelp(out, strings.TrimSpace(topic))
	case ".status":
		state := "no client connected"
		if peer.connected() {
			state = "client connected"
		}
		fmt.Fprintf(out, "Listening on %s (%s)\n", peer.clientAddress(), state)
	default:
		fmt.Fprintf(out, "Error: Unknown command '%s'. Type .help for a list.\n", command)
	}
	return true
}
