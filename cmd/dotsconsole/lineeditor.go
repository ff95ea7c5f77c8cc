// =============================================================================
// lineeditor.go - Line Editor with Dual-Mode Operation
// =============================================================================
//
// The console reads operator input in one of two ways:
//
//   - Interactive mode: ergochat/readline provides line editing with Emacs
//     keybindings, persistent history and Ctrl-R history search.
//   - Non-interactive mode: when stdin is a pipe or the terminal is dumb,
//     a bufio.Scanner reads plain lines and the prompt is printed by hand.
//     This is how scripted sessions ("dotsconsole < moves.txt") run.
//
// History is stored at ~/.dotsconsole_history with a 500-entry limit.
//
// =============================================================================

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"golang.org/x/term"
)

const (
	// historyFileName is the history file, relative to the home directory.
	historyFileName = ".dotsconsole_history"

	// historySize is the maximum number of remembered lines.
	historySize = 500
)

// LineEditor reads operator lines from the terminal or from piped input.
type LineEditor struct {
	interactive bool

	// rl is the readline instance (interactive mode only).
	rl *readline.Instance

	// scanner reads stdin line by line (non-interactive mode only).
	scanner *bufio.Scanner
}

// GO CONCEPT: Constructor Fallbacks
// ---------------------------------
// NewLineEditor never fails. If readline cannot start, it prints a
// warning and returns a non-interactive editor instead, so the console
// still works with plain line input.

// NewLineEditor creates an editor for os.Stdin, choosing the mode from
// whether stdin is a terminal.
func NewLineEditor() *LineEditor {
	isInteractive := term.IsTerminal(int(os.Stdin.Fd())) &&
		os.Getenv("TERM") != "dumb"

	if !isInteractive {
		return &LineEditor{
			interactive: false,
			scanner:     bufio.NewScanner(os.Stdin),
		}
	}

	rl, err := readline.NewFromConfig(&readline.Config{
		HistoryFile:            historyPath(),
		HistoryLimit:           historySize,
		DisableAutoSaveHistory: true,
		Prompt:                 "",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: readline init failed (%v), using basic input\n", err)
		return &LineEditor{
			interactive: false,
			scanner:     bufio.NewScanner(os.Stdin),
		}
	}

	return &LineEditor{
		interactive: true,
		rl:          rl,
	}
}

// GetLine shows prompt and returns the next line without its newline.
// It returns io.EOF on Ctrl-D, on Ctrl-C in interactive mode, and at the
// end of piped input.
func (le *LineEditor) GetLine(prompt string) (string, error) {
	if le.interactive {
		return le.getInteractiveLine(prompt)
	}
	return le.getNonInteractiveLine(prompt)
}

func (le *LineEditor) getInteractiveLine(prompt string) (string, error) {
	le.rl.SetPrompt(prompt)
	line, err := le.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return "", io.EOF
		}
		return "", err
	}

	// Blank lines are not worth remembering.
	if trimmed := strings.TrimSpace(line); trimmed != "" {
		le.rl.SaveToHistory(trimmed)
	}
	return line, nil
}

func (le *LineEditor) getNonInteractiveLine(prompt string) (string, error) {
	fmt.Print(prompt)
	if !le.scanner.Scan() {
		if err := le.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return le.scanner.Text(), nil
}

// Close releases the terminal. It is safe to call more than once.
func (le *LineEditor) Close() {
	if le.rl != nil {
		le.rl.Close()
		le.rl = nil
	}
}

// IsInteractive reports whether readline is in use.
func (le *LineEditor) IsInteractive() bool {
	return le.interactive
}

// historyPath is the absolute history file path.
func historyPath() string {
	return filepath.Join(homeDir(), historyFileName)
}

// homeDir returns the user's home directory, or "" if it is unknown; the
// history file then lands in the working directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
