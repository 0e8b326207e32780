package emitter

import (
	"io"
	"os"
	"sync"

	"github.com/routelab/logroute/config"
	"github.com/routelab/logroute/core"
)

// Per-stream locks shared by every console emitter targeting the same
// stream, so concurrent writers never interleave partial lines.
var (
	stdoutMu sync.Mutex
	stderrMu sync.Mutex
)

// ConsoleEmitter writes rendered lines synchronously to a stream on the
// calling goroutine. A single rendered line is atomic with respect to
// other console emitters on the same stream.
type ConsoleEmitter struct {
	writer io.Writer
	mu     *sync.Mutex
	stats  *Stats
}

// NewConsoleEmitter creates an emitter for the given standard stream.
func NewConsoleEmitter(stream config.StreamType) *ConsoleEmitter {
	if stream == config.StreamStderr {
		return &ConsoleEmitter{writer: os.Stderr, mu: &stderrMu, stats: NewStats()}
	}
	return &ConsoleEmitter{writer: os.Stdout, mu: &stdoutMu, stats: NewStats()}
}

// NewWriterEmitter creates a console-style emitter around an arbitrary
// writer with its own lock. Useful for capturing output in tests.
func NewWriterEmitter(w io.Writer) *ConsoleEmitter {
	return &ConsoleEmitter{writer: w, mu: &sync.Mutex{}, stats: NewStats()}
}

// Write delivers one line under the stream lock. Write failures are
// counted, never surfaced.
func (e *ConsoleEmitter) Write(sev core.Level, line []byte) error {
	e.mu.Lock()
	_, err := e.writer.Write(line)
	e.mu.Unlock()

	if err != nil {
		e.stats.IncrementWriteErrors()
		return nil
	}
	e.stats.IncrementProcessed()
	return nil
}

// Stats returns a snapshot of the current statistics
func (e *ConsoleEmitter) Stats() Snapshot {
	return e.stats.GetSnapshot()
}

// Close is a no-op: the emitter does not own the stream.
func (e *ConsoleEmitter) Close() error {
	return nil
}
