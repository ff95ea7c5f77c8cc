package dotsprotocol

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.bug.st/serial"
)

// DefaultBaudRate is used for serial transports without a baud parameter.
const DefaultBaudRate = 9600

// Dial opens the byte stream named by address:
//
//	""                              most recent local console socket
//	/tmp/dotsbox-123.sock           Unix socket (bare path)
//	unix:///tmp/dotsbox-123.sock    Unix socket
//	tcp://host:4000, host:4000      TCP
//	ws://host/play, wss://...       WebSocket, one text frame per write
//	serial:///dev/ttyACM0?baud=9600 serial port
func Dial(ctx context.Context, address string) (io.ReadWriteCloser, error) {
	if address == "" {
		path := DiscoverSocket()
		if path == "" {
			return nil, ErrSocketNotFound
		}
		return dialNet(ctx, "unix", path)
	}

	if !strings.Contains(address, "://") {
		if strings.HasPrefix(address, "/") || strings.HasPrefix(address, ".") {
			return dialNet(ctx, "unix", address)
		}
		return dialNet(ctx, "tcp", address)
	}

	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("invalid transport address %q: %w", address, err)
	}

	switch u.Scheme {
	case "tcp":
		return dialNet(ctx, "tcp", u.Host)
	case "unix":
		return dialNet(ctx, "unix", u.Path)
	case "ws", "wss":
		return dialWebSocket(ctx, address)
	case "serial":
		return openSerial(u)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

func dialNet(ctx context.Context, network, address string) (io.ReadWriteCloser, error) {
	dialCtx, cancel := context.WithTimeout(ctx, ConnectionTimeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(dialCtx, network, address)
	if err != nil {
		return nil, NewConnectionError("failed to connect to "+address, err)
	}
	return conn, nil
}

func openSerial(u *url.URL) (io.ReadWriteCloser, error) {
	baud := DefaultBaudRate
	if s := u.Query().Get("baud"); s != "" {
		b, err := strconv.Atoi(s)
		if err != nil || b <= 0 {
			return nil, fmt.Errorf("invalid baud rate %q", s)
		}
		baud = b
	}

	port, err := serial.Open(u.Path, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, NewConnectionError("failed to open "+u.Path, err)
	}
	return port, nil
}

func dialWebSocket(ctx context.Context, address string) (io.ReadWriteCloser, error) {
	dialCtx, cancel := context.WithTimeout(ctx, ConnectionTimeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, address, nil)
	if err != nil {
		return nil, NewConnectionError("failed to connect to "+address, err)
	}
	return &wsConn{conn: conn}, nil
}

// wsConn presents a WebSocket as a byte stream. Frame boundaries carry no
// meaning; the line reader finds the terminators.
type wsConn struct {
	conn *websocket.Conn
	r    io.Reader
}

func (w *wsConn) Read(p []byte) (int, error) {
	for {
		if w.r == nil {
			_, r, err := w.conn.NextReader()
			if err != nil {
				return 0, err
			}
			w.r = r
		}

		n, err := w.r.Read(p)
		if err == io.EOF {
			w.r = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (w *wsConn) Write(p []byte) (int, error) {
	if err := w.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// SetWriteDeadline bounds the next frame write.
func (w *wsConn) SetWriteDeadline(t time.Time) error {
	return w.conn.SetWriteDeadline(t)
}

func (w *wsConn) Close() error {
	return w.conn.Close()
}
