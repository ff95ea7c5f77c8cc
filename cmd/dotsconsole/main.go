// =============================================================================
// main.go - Dots and Boxes Operator Console
// =============================================================================
//
// dotsconsole stands in for the peer that owns the game state. It listens
// for a dotsbox client and lets an operator answer the client's requests
// by hand, which makes it the tool for trying out boards, replaying a
// bug report or driving the client from a script.
//
// Usage:
//
//	dotsconsole                        Listen on /tmp/dotsbox-<pid>.sock
//	dotsconsole --listen :4000         Listen on TCP port 4000
//	dotsconsole < moves.txt            Answer from a file
//	dotsconsole --help                 Show help
//
// Then start dotsbox in another terminal; without --address it connects
// to the newest console socket.
//
// =============================================================================

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thomaslorincz/arduino-dots-and-boxes/config"
)

// =============================================================================
// Version Information
// =============================================================================

const (
	version   = "0.3.0"
	appName   = "Dots and Boxes Console"
	copyright = "Copyright (c) 2026"
)

// fullTitle returns the application name with version.
func fullTitle() string {
	return fmt.Sprintf("%s v%s", appName, version)
}

// welcomeBanner returns the banner displayed when the REPL starts.
func welcomeBanner() string {
	return fmt.Sprintf(`%s
%s

Type '.help' for available commands.
Type '.quit' to exit.
`, fullTitle(), copyright)
}

// =============================================================================
// Command-Line Arguments
// =============================================================================

// arguments holds the parsed command-line arguments.
type arguments struct {
	// listen overrides DOTSBOX_LISTEN. Empty means "use the config".
	listen string

	showHelp    bool
	showVersion bool
}

// parseArguments parses os.Args.
func parseArguments() arguments {
	var args arguments
	remaining := os.Args[1:]

	for len(remaining) > 0 {
		arg := remaining[0]
		remaining = remaining[1:]

		switch arg {
		case "--listen", "-l":
			if len(remaining) == 0 {
				printError(arg + " requires an address argument")
				os.Exit(1)
			}
			args.listen = remaining[0]
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

// =============================================================================
// Help and Usage
// =============================================================================

func printUsage() {
	fmt.Print(`USAGE: dotsconsole [options]

OPTIONS:
  --listen, -l <addr>  Listen address (default: /tmp/dotsbox-<pid>.sock)
  --help, -h           Show this help
  --version, -v        Show version

ADDRESSES:
  /path/to/x.sock, unix:///path   Unix socket
  :4000, tcp://0.0.0.0:4000       TCP

EXAMPLES:
  dotsconsole                     Listen locally, then run dotsbox
  dotsconsole --listen :4000      Accept dotsbox --address localhost:4000
  dotsconsole < game.txt          Answer from a script of commands
`)
}

func printVersion() {
	fmt.Println(fullTitle())
}

// printError prints an error message to stderr.
func printError(message string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}

// =============================================================================
// Signal Handling
// =============================================================================

// setupSignalHandler runs cleanup and exits on SIGINT or SIGTERM. In
// interactive mode readline turns Ctrl-C into end of input first.
func setupSignalHandler(cleanup func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println()
		cleanup()
		os.Exit(0)
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
	if args.listen != "" {
		cfg.Listen = args.listen
	}

	out := &lockedWriter{w: os.Stdout}
	peer, err := listen(cfg.Listen, out)
	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}

	editor := NewLineEditor()
	cleanup := func() {
		editor.Close()
		peer.close()
	}
	setupSignalHandler(cleanup)

	fmt.Fprint(out, welcomeBanner())
	fmt.Fprintf(out, "Listening on %s\n\n", peer.clientAddress())

	runREPL(editor, peer, out)
	cleanup()
}
