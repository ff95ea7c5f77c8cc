// =============================================================================
// listener.go - Accepting the Game Client
// =============================================================================
//
// The console plays the part of the peer that owns the game state. It
// listens on a socket, accepts one dotsbox client at a time, prints every
// line the client sends, and forwards the operator's answers to it.
//
// By default the socket is /tmp/dotsbox-<pid>.sock, which is where dotsbox
// looks when it is started without an address. A newer client replaces an
// older one.
//
// =============================================================================

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"

	"github.com/thomaslorincz/arduino-dots-and-boxes/dotsprotocol"
)

// errNoClient is returned by send when no client is connected.
var errNoClient = errors.New("no client connected")

// resolveListenAddress turns a configured address into a network and an
// address for net.Listen. Empty means the per-process Unix socket.
func resolveListenAddress(address string) (network, addr string) {
	switch {
	case address == "":
		return "unix", dotsprotocol.CurrentSocketPath()
	case strings.HasPrefix(address, "unix://"):
		return "unix", strings.TrimPrefix(address, "unix://")
	case strings.HasPrefix(address, "tcp://"):
		return "tcp", strings.TrimPrefix(address, "tcp://")
	case strings.HasPrefix(address, "/"), strings.HasPrefix(address, "."):
		return "unix", address
	default:
		return "tcp", address
	}
}

// peerListener accepts clients and relays lines to and from the current one.
type peerListener struct {
	listener net.Listener
	network  string
	address  string
	out      io.Writer

	mu   sync.Mutex
	conn net.Conn

	wg sync.WaitGroup
}

// listen starts accepting clients on address. Client traffic and
// connection notices are written to out.
func listen(address string, out io.Writer) (*peerListener, error) {
	network, addr := resolveListenAddress(address)
	if network == "unix" {
		// A socket file left by a crashed console would make Listen fail.
		os.Remove(addr)
	}

	l, err := net.Listen(network, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s %s: %w", network, addr, err)
	}

	p := &peerListener{
		listener: l,
		network:  network,
		address:  l.Addr().String(),
		out:      out,
	}
	p.wg.Add(1)
	go p.acceptLoop()
	return p, nil
}

// clientAddress is where clients should connect, in a form dotsbox accepts.
func (p *peerListener) clientAddress() string {
	if p.network == "unix" {
		return p.address
	}
	return "tcp://" + p.address
}

func (p *peerListener) acceptLoop() {
	defer p.wg.Done()

	for {
		conn, err := p.listener.Accept()
		if err != nil {
			return
		}

		p.mu.Lock()
		if p.conn != nil {
			p.conn.Close()
		}
		p.conn = conn
		p.mu.Unlock()

		fmt.Fprintln(p.out, "*** Client connected")
		p.wg.Add(1)
		go p.handleConnection(conn)
	}
}

// handleConnection prints each line the client sends until it hangs up.
func (p *peerListener) handleConnection(conn net.Conn) {
	defer p.wg.Done()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fmt.Fprintln(p.out, describeRequest(line))
	}

	p.mu.Lock()
	current := p.conn == conn
	if current {
		p.conn = nil
	}
	p.mu.Unlock()

	conn.Close()
	if current {
		fmt.Fprintln(p.out, "*** Client disconnected")
	}
}

// connected reports whether a client is attached.
func (p *peerListener) connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn != nil
}

// send writes each line, newline-terminated, to the current client.
func (p *peerListener) send(lines []string) error {
	p.mu.Lock()
	conn := p.conn
	p.mu.Unlock()

	if conn == nil {
		return errNoClient
	}
	for _, line := range lines {
		if _, err := io.WriteString(conn, line+"\n"); err != nil {
			return fmt.Errorf("failed to send %q: %w", line, err)
		}
	}
	return nil
}

// close stops accepting, drops the client and removes the socket file.
func (p *peerListener) close() {
	p.listener.Close()

	p.mu.Lock()
	if p.conn != nil {
		p.conn.Close()
	}
	p.mu.Unlock()

	p.wg.Wait()
	if p.network == "unix" {
		os.Remove(p.address)
	}
}

// describeRequest renders one client line for the operator.
func describeRequest(line string) string {
	req, err := dotsprotocol.ParseRequest(line)
	if err != nil {
		return fmt.Sprintf("<- %s  (unrecognised)", line)
	}

	switch req.Type {
	case dotsprotocol.ReqAck:
		return "<- A  (acknowledged)"
	case dotsprotocol.ReqTimeout:
		return "<- T  (timeout or bad answer; client restarts setup)"
	case dotsprotocol.ReqEdge:
		return fmt.Sprintf("<- %s  (edge %v)", req.Format(), req.Edge)
	default:
		return "<- " + line
	}
}
