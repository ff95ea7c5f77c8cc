// =============================================================================
// help.go - Console Help
// =============================================================================
//
// .help prints an overview; .help <topic> prints the entry for one command.
// Topics are case-insensitive and may be written with or without the
// leading dot.
//
// =============================================================================

package main

import (
	"fmt"
	"io"
	"strings"
)

// printHelp writes the overview, or the entry for topic, to out.
func printHelp(out io.Writer, topic string) {
	if topic == "" {
		printHelpOverview(out)
		return
	}

	key := strings.TrimPrefix(strings.ToLower(topic), ".")
	if text, ok := dotCommandHelp[key]; ok {
		fmt.Fprintln(out, text)
		return
	}
	if text, ok := answerHelp[key]; ok {
		fmt.Fprintln(out, text)
		return
	}
	fmt.Fprintf(out, "Error: No help for '%s'. Type .help to see available commands.\n", topic)
}

func printHelpOverview(out io.Writer) {
	fmt.Fprint(out, `Console Commands:
  .help [cmd]       Show help (or help for a specific command)
  .status           Show the listen address and client state
  .quit             Exit the console

Answers:
  setup <c> <r> [human|computer [seat]]
                    Start a game (G, C, R and F lines)
  type human|computer
                    Game type (G)
  cols <n>          Box columns (C)
  rows <n>          Box rows (R)
  seat 1|2          Seat the computer plays (F)
  move <c0> <r0> <c1> <r1>
                    Computer edge (four E lines)
  exists yes|no     Whether the submitted edge was already drawn (L)
  closed <n>        Boxes closed by the last edge (N)
  box <col> <row>   One closed box (two B lines)
  over yes|no       Whether the game has ended (O)
  <id> <n>          Any raw answer line, sent as typed

Client lines are shown as they arrive:
  <- A              The last answer was accepted
  <- T              An answer was late or out of range; the client restarts setup
  <- R c0 r0 c1 r1  A player submitted an edge
`)
}

// dotCommandHelp holds the entries for the console's own commands.
var dotCommandHelp = map[string]string{
	"help": `  .help [cmd]
    Without an argument, list every command. With an argument, show
    the entry for that command.
    Examples:
      .help
      .help setup`,
	"status": `  .status
    Show where the console is listening and whether a client is
    connected. Start dotsbox without --address to connect to the
    newest console on this machine.`,
	"quit": `  .quit
    Close the client connection, remove the socket and exit.
    Ctrl-D does the same.`,
}

// answerHelp holds the entries for answer shorthand.
var answerHelp = map[string]string{
	"setup": `  setup <cols> <rows> [human|computer [seat]]
    Answer the client's setup requests in one go. The game type
    defaults to human; a computer game defaults to the computer
    playing seat 2.
    Examples:
      setup 3 3               G 1, C 3, R 3
      setup 4 2 computer 1    G 0, C 4, R 2, F 1`,
	"type": `  type human|computer
    Answer G. human sends 1, computer sends 0.`,
	"cols": `  cols <n>
    Answer C with the number of box columns.
    Example:
      cols 3`,
	"rows": `  rows <n>
    Answer R with the number of box rows.
    Example:
      rows 3`,
	"seat": `  seat 1|2
    Answer F with the seat the computer plays.`,
	"move": `  move <c0> <r0> <c1> <r1>
    Answer the four E requests of a computer move with the two
    endpoints of the edge.
    Example:
      move 0 0 1 0`,
	"exists": `  exists yes|no
    Answer L after the client submits an edge: yes if that edge was
    already drawn, in which case the player tries again.`,
	"closed": `  closed <n>
    Answer N with the number of boxes (0 to 2) the last edge closed.
    Follow with one box command per closed box.`,
	"box": `  box <col> <row>
    Answer the two B requests for one closed box.
    Example:
      box 0 1`,
	"over": `  over yes|no
    Answer O: yes ends the game and shows the result.`,
}
