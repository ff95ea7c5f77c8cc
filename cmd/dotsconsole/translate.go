// =============================================================================
// translate.go - Operator Shorthand to Protocol Lines
// =============================================================================
//
// The operator answers the client's requests by typing. Raw protocol lines
// ("C 3") always work, but most answers come in fixed groups, so the
// console accepts shorthand that expands into one or more lines:
//
//	setup 3 3 computer 2   →  G 0, C 3, R 3, F 2
//	move 0 0 1 0           →  E 0, E 0, E 1, E 0
//	box 1 2                →  B 1, B 2
//	over yes               →  O 1
//
// Translation only checks shape (argument count, integers). Range checks
// belong to the client, which answers an out-of-range value with T.
//
// =============================================================================

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/thomaslorincz/arduino-dots-and-boxes/dotsprotocol"
)

// translateToProtocol converts one operator line into the protocol lines to
// send. Dot-commands are handled by the REPL and never reach here.
func translateToProtocol(line string) ([]string, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, nil
	}

	// A raw "<id> <int>" line passes through untouched apart from spacing.
	// Single-letter keywords never collide with a keyword below.
	if a, err := dotsprotocol.ParseAnswer(trimmed); err == nil {
		return []string{a.Format()}, nil
	}

	fields := strings.Fields(trimmed)
	keyword := strings.ToLower(fields[0])
	args := fields[1:]

	switch keyword {
	case "type":
		return single(dotsprotocol.IDGameType, args, "type human|computer", parseGameType)
	case "cols", "columns":
		return single(dotsprotocol.IDColumns, args, "cols <n>", strconv.Atoi)
	case "rows":
		return single(dotsprotocol.IDRows, args, "rows <n>", strconv.Atoi)
	case "seat", "first":
		return single(dotsprotocol.IDComputerSeat, args, "seat 1|2", strconv.Atoi)
	case "exists", "line":
		return single(dotsprotocol.IDLineExists, args, "exists yes|no", parseFlag)
	case "closed":
		return single(dotsprotocol.IDClosedBoxes, args, "closed <n>", strconv.Atoi)
	case "over":
		return single(dotsprotocol.IDGameOver, args, "over yes|no", parseFlag)
	case "move":
		return repeated(dotsprotocol.IDComputerEdge, args, 4, "move <c0> <r0> <c1> <r1>")
	case "box":
		return repeated(dotsprotocol.IDBoxCoordinate, args, 2, "box <col> <row>")
	case "setup":
		return translateSetup(args)
	default:
		return nil, fmt.Errorf("unknown command %q (type .help for a list)", fields[0])
	}
}

// single builds one answer from exactly one argument.
func single(id byte, args []string, usage string, parse func(string) (int, error)) ([]string, error) {
	if len(args) != 1 {
		return nil, usageError(usage)
	}
	n, err := parse(args[0])
	if err != nil {
		return nil, usageError(usage)
	}
	return []string{dotsprotocol.NewAnswer(id, n).Format()}, nil
}

// repeated builds one answer with the same id per integer argument.
func repeated(id byte, args []string, count int, usage string) ([]string, error) {
	if len(args) != count {
		return nil, usageError(usage)
	}
	lines := make([]string, 0, count)
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, usageError(usage)
		}
		lines = append(lines, dotsprotocol.NewAnswer(id, n).Format())
	}
	return lines, nil
}

// translateSetup expands "setup <cols> <rows> [human|computer [seat]]".
// The game type defaults to human; a computer game defaults to seat 2.
func translateSetup(args []string) ([]string, error) {
	const usage = "setup <cols> <rows> [human|computer [seat]]"
	if len(args) < 2 || len(args) > 4 {
		return nil, usageError(usage)
	}

	cols, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, usageError(usage)
	}
	rows, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, usageError(usage)
	}

	gameType := dotsprotocol.GameVsHuman
	if len(args) >= 3 {
		if gameType, err = parseGameType(args[2]); err != nil {
			return nil, usageError(usage)
		}
	}
	if gameType == dotsprotocol.GameVsHuman && len(args) == 4 {
		return nil, usageError(usage)
	}

	lines := []string{
		dotsprotocol.NewAnswer(dotsprotocol.IDGameType, gameType).Format(),
		dotsprotocol.NewAnswer(dotsprotocol.IDColumns, cols).Format(),
		dotsprotocol.NewAnswer(dotsprotocol.IDRows, rows).Format(),
	}
	if gameType == dotsprotocol.GameVsComputer {
		seat := 2
		if len(args) == 4 {
			if seat, err = strconv.Atoi(args[3]); err != nil {
				return nil, usageError(usage)
			}
		}
		lines = append(lines, dotsprotocol.NewAnswer(dotsprotocol.IDComputerSeat, seat).Format())
	}
	return lines, nil
}

func parseGameType(s string) (int, error) {
	switch strings.ToLower(s) {
	case "human", "h", "1":
		return dotsprotocol.GameVsHuman, nil
	case "computer", "cpu", "c", "0":
		return dotsprotocol.GameVsComputer, nil
	default:
		return 0, fmt.Errorf("invalid game type %q", s)
	}
}

func parseFlag(s string) (int, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "true", "1":
		return 1, nil
	case "no", "n", "false", "0":
		return 0, nil
	default:
		return 0, fmt.Errorf("invalid flag %q", s)
	}
}

func usageError(usage string) error {
	return fmt.Errorf("usage: %s", usage)
}
