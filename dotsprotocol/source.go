package dotsprotocol

import (
	"io"
	"sync"
	"time"
)

// Source is the polling primitive the line reader is built on.
type Source interface {
	// Poll waits up to wait for the next byte. ok is false when nothing
	// arrived in time. A non-nil error means no more bytes will ever arrive.
	Poll(wait time.Duration) (b byte, ok bool, err error)
}

// streamBufferSize is how many received bytes may queue up before the pump
// goroutine blocks on the transport.
const streamBufferSize = 256

// StreamSource adapts an io.Reader (a socket, serial port or pipe) to
// Source. A background goroutine reads from the stream and hands bytes over
// through a channel, so Poll never blocks longer than asked.
type StreamSource struct {
	bytes chan byte
	done  chan struct{}
	err   error // valid once done is closed

	stop     chan struct{}
	stopOnce sync.Once
}

// NewStreamSource starts pumping r. The pump stops when r returns an error,
// typically when the underlying connection is closed, or when Close is
// called.
func NewStreamSource(r io.Reader) *StreamSource {
	s := &StreamSource{
		bytes: make(chan byte, streamBufferSize),
		done:  make(chan struct{}),
		stop:  make(chan struct{}),
	}
	go s.pump(r)
	return s
}

func (s *StreamSource) pump(r io.Reader) {
	defer close(s.done)

	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			select {
			case s.bytes <- b:
			case <-s.stop:
				s.err = io.ErrClosedPipe
				return
			}
		}
		if err != nil {
			s.err = err
			return
		}
	}
}

// Close stops handing bytes over. It does not close the underlying reader;
// a pump blocked in Read exits once the owner closes that. Close is safe to
// call more than once.
func (s *StreamSource) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

// Poll implements Source. Bytes that were received before the stream ended
// are still delivered before the error is reported.
func (s *StreamSource) Poll(wait time.Duration) (byte, bool, error) {
	select {
	case b := <-s.bytes:
		return b, true, nil
	default:
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case b := <-s.bytes:
		return b, true, nil
	case <-s.done:
		select {
		case b := <-s.bytes:
			return b, true, nil
		default:
		}
		return 0, false, NewConnectionError("transport closed", s.err)
	case <-timer.C:
		return 0, false, nil
	}
}
