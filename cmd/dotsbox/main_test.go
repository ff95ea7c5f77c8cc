package main

import (
	"bufio"
	"bytes"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/thomaslorincz/arduino-dots-and-boxes/config"
	"github.com/thomaslorincz/arduino-dots-and-boxes/dotsprotocol"
	"github.com/thomaslorincz/arduino-dots-and-boxes/session"
)

// =============================================================================
// Version Tests
// =============================================================================

func TestFullTitle(t *testing.T) {
	if got, want := fullTitle(), "Dots and Boxes v"+version; got != want {
		t.Errorf("fullTitle() = %q, want %q", got, want)
	}
}

// =============================================================================
// Argument Parsing Tests
// =============================================================================

// withArgs replaces os.Args for the duration of the test.
func withArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	t.Cleanup(func() { os.Args = old })
	os.Args = append([]string{"dotsbox"}, args...)
}

func TestParseArgumentsDefaults(t *testing.T) {
	withArgs(t)
	args := parseArguments()

	if args != (arguments{}) {
		t.Errorf("parseArguments() = %+v, want zero value", args)
	}
}

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want arguments
	}{
		{"address", []string{"--address", "tcp://board:4000"}, arguments{address: "tcp://board:4000"}},
		{"short address", []string{"-a", "/tmp/x.sock"}, arguments{address: "/tmp/x.sock"}},
		{"log", []string{"--log", "/tmp/dotsbox.log"}, arguments{logFile: "/tmp/dotsbox.log"}},
		{"help", []string{"--help"}, arguments{showHelp: true}},
		{"short help", []string{"-h"}, arguments{showHelp: true}},
		{"version", []string{"-v"}, arguments{showVersion: true}},
		{"combined", []string{"--log", "l", "-a", "a", "--version"}, arguments{address: "a", logFile: "l", showVersion: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.argv...)
			if got := parseArguments(); got != tt.want {
				t.Errorf("parseArguments() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestArgumentsApply(t *testing.T) {
	cfg := &config.Config{Address: "from-env", LogFile: "env.log"}

	arguments{}.apply(cfg)
	if cfg.Address != "from-env" || cfg.LogFile != "env.log" {
		t.Errorf("empty arguments changed config: %+v", cfg)
	}

	arguments{address: "tcp://x:1", logFile: "cli.log"}.apply(cfg)
	if cfg.Address != "tcp://x:1" || cfg.LogFile != "cli.log" {
		t.Errorf("arguments did not override config: %+v", cfg)
	}
}

// =============================================================================
// Logging Tests
// =============================================================================

func TestOpenLogDiscardsByDefault(t *testing.T) {
	w, closeLog, err := openLog("")
	if err != nil {
		t.Fatalf("openLog: %v", err)
	}
	defer closeLog()
	if w != io.Discard {
		t.Errorf("writer = %T, want io.Discard", w)
	}
}

func TestOpenLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dotsbox.log")
	if err := os.WriteFile(path, []byte("earlier\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, closeLog, err := openLog(path)
	if err != nil {
		t.Fatalf("openLog: %v", err)
	}
	log.New(w, "[session] ", 0).Print("new game")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "earlier\n[session] new game\n" {
		t.Errorf("log contents = %q", got)
	}
}

func TestOpenLogBadPath(t *testing.T) {
	if _, _, err := openLog(filepath.Join(t.TempDir(), "missing", "x.log")); err == nil {
		t.Error("openLog into a missing directory succeeded")
	}
}

// =============================================================================
// Wiring Tests
// =============================================================================

// TestNewSessionOverPipe runs game setup through the fully wired session
// against a peer on the other end of an in-memory connection.
func TestNewSessionOverPipe(t *testing.T) {
	client, peer := net.Pipe()
	defer client.Close()
	defer peer.Close()

	// A stalled exchange fails the test instead of hanging it.
	watchdog := time.AfterFunc(5*time.Second, func() {
		client.Close()
		peer.Close()
	})
	defer watchdog.Stop()

	cfg := config.FromEnv()
	cfg.Timeout = 2 * time.Second
	cfg.PollInterval = time.Millisecond

	d, screen := newTestDisplay(t)
	var logBuf bytes.Buffer
	src := dotsprotocol.NewStreamSource(client)
	defer src.Close()
	sess := newSession(cfg, d, newKeyStick(), src, client, &logBuf)

	peerErr := make(chan error, 1)
	go func() {
		r := bufio.NewReader(peer)
		for _, line := range []string{"G 1", "C 2", "R 2"} {
			if _, err := io.WriteString(peer, line+"\n"); err != nil {
				peerErr <- err
				return
			}
			reply, err := r.ReadString('\n')
			if err != nil {
				peerErr <- err
				return
			}
			if reply != "A\n" {
				peerErr <- io.ErrUnexpectedEOF
				return
			}
		}
		peerErr <- nil
	}()

	if err := sess.Step(t.Context()); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if err := <-peerErr; err != nil {
		t.Fatalf("peer: %v", err)
	}

	if sess.Phase() != session.PhasePlaying {
		t.Errorf("phase = %v, want Playing", sess.Phase())
	}
	if got := rowText(screen, 36); got != "PLAYER 1: FROM?" {
		t.Errorf("status row = %q", got)
	}
	if !strings.Contains(logBuf.String(), "[session] ") {
		t.Errorf("session log not written: %q", logBuf.String())
	}
}
