// Package dotsprotocol provides a Go implementation of the line-oriented
// text protocol spoken between a dots-and-boxes client and the remote peer
// that owns the game logic.
//
// # Protocol Overview
//
// The protocol is a strictly sequential question/answer exchange over any
// byte stream (serial line, TCP, Unix socket, WebSocket). The peer pushes
// one numbered answer per line and the client acknowledges each one:
//
//	Peer answer:       <id> <int>\n      e.g. "C 3", "N 1", "O 0"
//	Client ack:        A\n
//	Client timeout:    T\n
//	Client edge:       R <c0> <r0> <c1> <r1>\n
//
// Lines may end in \r, \n or both; a NUL byte also ends a line. Lines longer
// than MaxLineLength-1 bytes are truncated rather than rejected.
//
// # Basic Usage
//
// Dial a transport and wrap it in a client:
//
//	conn, err := dotsprotocol.Dial(ctx, "tcp://localhost:4000")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	client := dotsprotocol.NewClient(dotsprotocol.NewStreamSource(conn), conn, clock.System())
//
//	cols, err := client.RequestInRange(dotsprotocol.IDColumns, 1, board.MaxColumns)
//	if errors.Is(err, dotsprotocol.ErrTimeout) {
//	    // start over
//	}
//
// # Resynchronisation
//
// While waiting for an answer the client silently drops lines that do not
// parse and lines carrying a different identifier, so a stray or late line
// from the peer never derails the exchange. The whole wait is bounded by a
// single window (DefaultTimeout) measured from the start of the request.
//
// # Thread Safety
//
// A Client is meant to be driven by a single goroutine; it keeps no more
// than one request outstanding.
package dotsprotocol
