package dotsprotocol

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// Answer identifiers sent by the peer.
const (
	// IDGameType is the game type: GameVsComputer or GameVsHuman.
	IDGameType byte = 'G'
	// IDColumns is the number of box columns.
	IDColumns byte = 'C'
	// IDRows is the number of box rows.
	IDRows byte = 'R'
	// IDComputerSeat is the seat (1 or 2) the computer plays.
	IDComputerSeat byte = 'F'
	// IDComputerEdge carries one of the four coordinates of a computer move.
	IDComputerEdge byte = 'E'
	// IDLineExists is 1 when the requested edge was already drawn.
	IDLineExists byte = 'L'
	// IDClosedBoxes is the number of boxes closed by the last edge.
	IDClosedBoxes byte = 'N'
	// IDBoxCoordinate carries one of the two coordinates of a closed box.
	IDBoxCoordinate byte = 'B'
	// IDGameOver is 1 when no edges remain.
	IDGameOver byte = 'O'
)

// Game types carried by IDGameType.
const (
	GameVsComputer = 0
	GameVsHuman    = 1
)

// Protocol constants.
const (
	// AckMarker is sent after every successfully received answer.
	AckMarker byte = 'A'

	// TimeoutMarker is sent when an answer did not arrive in time.
	TimeoutMarker byte = 'T'

	// EdgePrefix starts an edge submission line.
	EdgePrefix byte = 'R'

	// MaxLineLength is the size of the line buffer including the terminator:
	// at most MaxLineLength-1 bytes are returned per line.
	MaxLineLength = 32

	// DefaultTimeout bounds a whole request, from the first read to the
	// matching answer.
	DefaultTimeout = 3000 * time.Millisecond

	// DefaultPollInterval is how long the reader waits on the transport
	// before re-checking its deadline.
	DefaultPollInterval = 10 * time.Millisecond

	// ConnectionTimeout is the timeout for establishing connections.
	ConnectionTimeout = 5 * time.Second

	// SocketPathPrefix is the prefix for operator console socket paths.
	SocketPathPrefix = "/tmp/dotsbox-"

	// SocketPathSuffix is the suffix for operator console socket paths.
	SocketPathSuffix = ".sock"
)

// SocketPath returns the socket path for a given process ID.
func SocketPath(pid int) string {
	return fmt.Sprintf("%s%d%s", SocketPathPrefix, pid, SocketPathSuffix)
}

// CurrentSocketPath returns the socket path for the current process.
func CurrentSocketPath() string {
	return SocketPath(os.Getpid())
}

// DiscoverSockets lists the console sockets in /tmp, newest first.
func DiscoverSockets() ([]string, error) {
	return discoverSocketsIn("/tmp")
}

func discoverSocketsIn(dir string) ([]string, error) {
	pattern := filepath.Join(dir, filepath.Base(SocketPathPrefix)+"*"+SocketPathSuffix)
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("listing console sockets: %w", err)
	}

	modTimes := make(map[string]time.Time, len(paths))
	found := paths[:0]
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue // gone since the glob, or unreadable
		}
		modTimes[p] = info.ModTime()
		found = append(found, p)
	}

	slices.SortFunc(found, func(a, b string) int {
		return modTimes[b].Compare(modTimes[a])
	})
	return found, nil
}

// DiscoverSocket returns the newest console socket, or "" when there is
// none.
func DiscoverSocket() string {
	if paths, err := DiscoverSockets(); err == nil && len(paths) > 0 {
		return paths[0]
	}
	return ""
}
