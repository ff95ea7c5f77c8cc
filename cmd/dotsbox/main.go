// =============================================================================
// main.go - Dots and Boxes Terminal Client
// =============================================================================
//
// dotsbox is the player-facing half of the game. It draws the board in the
// terminal, lets players pick edges with the keyboard, and relays every
// move to the peer that keeps the authoritative game state. The peer is
// reached over any byte stream: a Unix socket opened by dotsconsole, TCP,
// a WebSocket, or a serial port to the board.
//
// Usage:
//
//	dotsbox                                Connect to the newest dotsconsole
//	dotsbox --address tcp://board:4000     Connect over TCP
//	dotsbox --address serial:///dev/ttyACM0
//	dotsbox --log /tmp/dotsbox.log         Write the protocol log to a file
//	dotsbox --help                         Show help
//
// Settings not given on the command line come from the environment or a
// .env file (see the config package).
//
// =============================================================================

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/thomaslorincz/arduino-dots-and-boxes/board"
	"github.com/thomaslorincz/arduino-dots-and-boxes/clock"
	"github.com/thomaslorincz/arduino-dots-and-boxes/config"
	"github.com/thomaslorincz/arduino-dots-and-boxes/dotsprotocol"
	"github.com/thomaslorincz/arduino-dots-and-boxes/joystick"
	"github.com/thomaslorincz/arduino-dots-and-boxes/session"
)

// =============================================================================
// Version Information
// =============================================================================

const (
	version   = "0.3.0"
	appName   = "Dots and Boxes"
	copyright = "Copyright (c) 2026"
)

// fullTitle returns the application name with version.
func fullTitle() string {
	return fmt.Sprintf("%s v%s", appName, version)
}

// =============================================================================
// Command-Line Arguments
// =============================================================================

// arguments holds the parsed command-line arguments. Empty strings mean
// "not given"; the config value is used instead.
type arguments struct {
	// address is the transport address of the peer.
	address string

	// logFile receives the protocol and session log.
	logFile string

	showHelp    bool
	showVersion bool
}

// parseArguments parses os.Args. There are only a handful of flags, so it
// is written by hand.
func parseArguments() arguments {
	var args arguments
	remaining := os.Args[1:]

	for len(remaining) > 0 {
		arg := remaining[0]
		remaining = remaining[1:]

		switch arg {
		case "--address", "-a":
			if len(remaining) == 0 {
				printError(arg + " requires an address argument")
				os.Exit(1)
			}
			args.address = remaining[0]
			remaining = remaining[1:]

		case "--log":
			if len(remaining) == 0 {
				printError("--log requires a path argument")
				os.Exit(1)
			}
			args.logFile = remaining[0]
			remaining = remaining[1:]

		case "--help", "-h":
			args.showHelp = true

		case "--version", "-v":
			args.showVersion = true

		default:
			printError(fmt.Sprintf("Unknown argument: %s", arg))
			printUsage()
			os.Exit(1)
		}
	}

	return args
}

// apply overrides cfg with the arguments that were given.
func (a arguments) apply(cfg *config.Config) {
	if a.address != "" {
		cfg.Address = a.address
	}
	if a.logFile != "" {
		cfg.LogFile = a.logFile
	}
}

// =============================================================================
// Help and Usage
// =============================================================================

func printUsage() {
	fmt.Print(`USAGE: dotsbox [options]

OPTIONS:
  --address, -a <addr>  Peer address (default: newest dotsconsole socket)
  --log <path>          Append the protocol log to a file
  --help, -h            Show this help
  --version, -v         Show version

ADDRESSES:
  /tmp/dotsbox-123.sock           Unix socket
  tcp://host:4000, host:4000      TCP
  ws://host/play                  WebSocket
  serial:///dev/ttyACM0?baud=9600 Serial port

KEYS:
  Arrows, WASD    Move the cursor (it wraps at the edges)
  Space, Enter    Select a dot
  q, Esc          Quit

ENVIRONMENT:
  DOTSBOX_ADDRESS, DOTSBOX_TIMEOUT_MS, DOTSBOX_POLL_MS, DOTSBOX_DEADZONE,
  DOTSBOX_BUTTON_SAMPLE_MS, DOTSBOX_LOG_FILE, DOTSBOX_BAUD
  Values may also be placed in a .env file in the working directory.
`)
}

func printVersion() {
	fmt.Println(fullTitle())
	fmt.Println(copyright)
}

// printError prints an error message to stderr.
func printError(message string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}

// =============================================================================
// Logging
// =============================================================================

// GO CONCEPT: io.Writer
// ---------------------
// log.New accepts any io.Writer. While tcell owns the terminal nothing may
// be printed to stdout, so without a log file the loggers write to
// io.Discard, a writer that accepts and drops everything.

// openLog returns the writer the loggers should use and a function that
// closes it.
func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// =============================================================================
// Signal Handling
// =============================================================================

// setupSignalHandler calls cleanup on SIGINT or SIGTERM. In raw terminal
// mode Ctrl-C arrives as a key, so this mostly catches kill(1).
func setupSignalHandler(cleanup func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		cleanup()
	}()
}

// =============================================================================
// Main
// =============================================================================

func main() {
	args := parseArguments()

	if args.showHelp {
		printUsage()
		return
	}
	if args.showVersion {
		printVersion()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		printError(fmt.Sprintf("Failed to read configuration: %v", err))
		os.Exit(1)
	}
	args.apply(cfg)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		printError("dotsbox must be run in a terminal")
		os.Exit(1)
	}

	logOut, closeLog, err := openLog(cfg.LogFile)
	if err != nil {
		printError(fmt.Sprintf("Failed to open log file: %v", err))
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg, logOut); err != nil {
		closeLog()
		printError(err.Error())
		os.Exit(1)
	}
}

// run connects to the peer and plays until the player quits or the
// connection fails. Quitting is not an error.
func run(cfg *config.Config, logOut io.Writer) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandler(cancel)

	dialCtx, cancelDial := context.WithTimeout(ctx, dotsprotocol.ConnectionTimeout)
	conn, err := dotsprotocol.Dial(dialCtx, cfg.TransportAddress())
	cancelDial()
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	display := newScreenDisplay(screen, board.ReferenceSurface)
	stick := newKeyStick()
	go pumpEvents(screen, stick, display, cancel)

	// Closing the connection wakes a request that is waiting for the peer.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	src := dotsprotocol.NewStreamSource(conn)
	defer src.Close()

	sess := newSession(cfg, display, stick, src, conn, logOut)
	return sess.Run(ctx)
}

// newSession wires the protocol client, the stick controller and the
// display into a game session. Answers are read from src and requests are
// written to out.
func newSession(cfg *config.Config, display session.Display, stick joystick.Sampler, src dotsprotocol.Source, out io.Writer, logOut io.Writer) *session.Session {
	clk := clock.System()

	client := dotsprotocol.NewClient(src, out, clk)
	client.SetTimeout(cfg.Timeout)
	client.SetPollInterval(cfg.PollInterval)
	client.SetLogger(log.New(logOut, "[dotsprotocol] ", log.LstdFlags|log.Lmicroseconds))

	controller := joystick.New(stick, clk)
	controller.SetDeadzone(cfg.Deadzone)
	controller.SetButtonSampleDelay(cfg.ButtonSampleDelay)

	sess := session.New(display, client, controller, clk)
	sess.SetLogger(log.New(logOut, "[session] ", log.LstdFlags|log.Lmicroseconds))
	sess.SetIdleInterval(cfg.PollInterval)
	return sess
}
