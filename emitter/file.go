package emitter

import (
	"fmt"
	"os"
	"sync"

	"github.com/routelab/logroute/config"
	"github.com/routelab/logroute/core"
)

// defaultBufferSize is the bounded queue capacity when none is configured.
const defaultBufferSize = 1000

// FileEmitter appends rendered lines to a file. Producers only pay the
// cost of enqueueing onto a bounded queue; a single background worker
// performs the blocking writes, so lines from all producers appear in
// the file in enqueue order (global FIFO for this emitter).
type FileEmitter struct {
	path      string
	file      *os.File
	queue     chan []byte
	wg        sync.WaitGroup
	closed    chan struct{}
	closeOnce sync.Once
	closeErr  error
	policy    map[core.Level]OverflowPolicy
	stats     *Stats
}

// FileConfig holds configuration for a file emitter
type FileConfig struct {
	// Path is the destination file, opened once in append mode
	Path string
	// BufferSize is the queue capacity (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-severity full-queue behavior
	// (default: DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
}

// NewFileEmitter opens the destination file and starts the background
// worker. The file is never rotated or truncated by this emitter, and
// parent directories are not created.
func NewFileEmitter(cfg FileConfig) (*FileEmitter, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = DefaultLevelPolicy()
	}

	file, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", cfg.Path, err)
	}

	e := &FileEmitter{
		path:   cfg.Path,
		file:   file,
		queue:  make(chan []byte, cfg.BufferSize),
		closed: make(chan struct{}),
		policy: cfg.OverflowPolicy,
		stats:  NewStats(),
	}

	e.wg.Add(1)
	go e.process()

	return e, nil
}

// Write enqueues one line for the background worker. The line is copied,
// so the caller may reuse its buffer immediately. The producer never
// blocks on disk I/O; under a full queue the per-severity overflow
// policy decides between dropping and waiting for space.
func (e *FileEmitter) Write(sev core.Level, line []byte) error {
	select {
	case <-e.closed:
		e.stats.IncrementDropped(sev)
		return nil
	default:
	}

	owned := make([]byte, len(line))
	copy(owned, line)

	policy, ok := e.policy[sev]
	if !ok {
		policy = DropNewest
	}

	switch policy {
	case Block:
		select {
		case e.queue <- owned:
		default:
			// Queue full: wait for the worker to make room.
			e.stats.IncrementBlocked()
			select {
			case e.queue <- owned:
			case <-e.closed:
				e.stats.IncrementDropped(sev)
			}
		}

	case DropOldest:
		select {
		case e.queue <- owned:
		default:
			// Queue full - evict the oldest line
			select {
			case <-e.queue:
				e.stats.IncrementDropped(sev)
			default:
			}
			select {
			case e.queue <- owned:
			default:
				// Still full, drop this one
				e.stats.IncrementDropped(sev)
			}
		}

	case DropNewest:
		fallthrough
	default:
		select {
		case e.queue <- owned:
		default:
			e.stats.IncrementDropped(sev)
		}
	}

	return nil
}

// write performs the blocking file write on the worker goroutine.
// Disk failures are counted, never propagated.
func (e *FileEmitter) write(line []byte) {
	if _, err := e.file.Write(line); err != nil {
		e.stats.IncrementWriteErrors()
		return
	}
	e.stats.IncrementProcessed()
}

// process is the single consumer of the queue
func (e *FileEmitter) process() {
	defer e.wg.Done()

	for {
		select {
		case line := <-e.queue:
			e.write(line)
		case <-e.closed:
			// Drain every line enqueued before shutdown.
			for {
				select {
				case line := <-e.queue:
					e.write(line)
				default:
					return
				}
			}
		}
	}
}

// Stats returns a snapshot of the current statistics
func (e *FileEmitter) Stats() Snapshot {
	return e.stats.GetSnapshot()
}

// Path returns the destination file path
func (e *FileEmitter) Path() string {
	return e.path
}

// Close stops the worker after it has drained and durably written every
// previously enqueued line, then syncs and closes the file. Idempotent.
func (e *FileEmitter) Close() error {
	e.closeOnce.Do(func() {
		close(e.closed)
		e.wg.Wait()

		if err := e.file.Sync(); err != nil {
			e.closeErr = err
		}
		if err := e.file.Close(); err != nil && e.closeErr == nil {
			e.closeErr = err
		}
	})
	return e.closeErr
}

// NewFromSpec builds an emitter from its configuration spec.
func NewFromSpec(spec config.EmitterSpec) (Emitter, error) {
	switch spec.Type {
	case config.EmitterConsole:
		return NewConsoleEmitter(spec.Config.Stream), nil
	case config.EmitterFile:
		return NewFileEmitter(FileConfig{
			Path:           spec.Config.Path,
			BufferSize:     spec.Config.BufferSize,
			OverflowPolicy: PolicyFromConfig(spec.Config.Overflow),
		})
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownEmitter, spec.Type)
	}
}
