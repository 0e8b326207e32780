package emitter

import (
	"sync/atomic"

	"github.com/routelab/logroute/config"
	"github.com/routelab/logroute/core"
)

// Emitter delivers rendered lines to a destination. Implementations
// must not retain line after Write returns unless they copy it, and
// must never surface runtime delivery failures to the producer.
type Emitter interface {
	// Write delivers one rendered line. The severity drives overflow
	// policy and drop accounting only; the line is already rendered.
	Write(sev core.Level, line []byte) error

	// Close releases the destination. For buffered emitters it drains
	// every previously enqueued line before returning.
	Close() error
}

// OverflowPolicy defines how to handle a full delivery queue
type OverflowPolicy int

const (
	// DropNewest drops the incoming line when the queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest evicts the oldest queued line to make room
	DropOldest
	// Block blocks the producer until space is available
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// DefaultLevelPolicy returns the default per-severity overflow policies:
// drop routine traffic when the queue is full, block for errors.
func DefaultLevelPolicy() map[core.Level]OverflowPolicy {
	return map[core.Level]OverflowPolicy{
		core.TraceLevel: DropNewest,
		core.DebugLevel: DropNewest,
		core.InfoLevel:  DropNewest,
		core.WarnLevel:  DropNewest,
		core.ErrorLevel: Block,
	}
}

// PolicyFromConfig maps a configured overflow name onto per-severity
// policies. The empty name selects DefaultLevelPolicy.
func PolicyFromConfig(name config.Overflow) map[core.Level]OverflowPolicy {
	var p OverflowPolicy
	switch name {
	case config.OverflowBlock:
		p = Block
	case config.OverflowDropOldest:
		p = DropOldest
	case config.OverflowDropNewest:
		p = DropNewest
	default:
		return DefaultLevelPolicy()
	}

	all := make(map[core.Level]OverflowPolicy, 5)
	for _, lvl := range []core.Level{core.TraceLevel, core.DebugLevel, core.InfoLevel, core.WarnLevel, core.ErrorLevel} {
		all[lvl] = p
	}
	return all
}

// Stats tracks emitter delivery statistics
type Stats struct {
	// Separate atomic counters per severity
	DroppedTrace uint64
	DroppedDebug uint64
	DroppedInfo  uint64
	DroppedWarn  uint64
	DroppedError uint64
	// BlockedTotal counts times a producer had to wait for queue space
	BlockedTotal uint64
	// ProcessedTotal counts lines written to the destination
	ProcessedTotal uint64
	// WriteErrors counts failed destination writes
	WriteErrors uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementDropped atomically increments the dropped counter for a severity
func (s *Stats) IncrementDropped(sev core.Level) {
	switch sev {
	case core.TraceLevel:
		atomic.AddUint64(&s.DroppedTrace, 1)
	case core.DebugLevel:
		atomic.AddUint64(&s.DroppedDebug, 1)
	case core.InfoLevel:
		atomic.AddUint64(&s.DroppedInfo, 1)
	case core.WarnLevel:
		atomic.AddUint64(&s.DroppedWarn, 1)
	case core.ErrorLevel:
		atomic.AddUint64(&s.DroppedError, 1)
	default:
		atomic.AddUint64(&s.DroppedTrace, 1)
	}
}

// IncrementBlocked atomically increments the blocked counter
func (s *Stats) IncrementBlocked() {
	atomic.AddUint64(&s.BlockedTotal, 1)
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	atomic.AddUint64(&s.ProcessedTotal, 1)
}

// IncrementWriteErrors atomically increments the write error counter
func (s *Stats) IncrementWriteErrors() {
	atomic.AddUint64(&s.WriteErrors, 1)
}

// GetDropped returns the dropped count for a severity
func (s *Stats) GetDropped(sev core.Level) uint64 {
	switch sev {
	case core.TraceLevel:
		return atomic.LoadUint64(&s.DroppedTrace)
	case core.DebugLevel:
		return atomic.LoadUint64(&s.DroppedDebug)
	case core.InfoLevel:
		return atomic.LoadUint64(&s.DroppedInfo)
	case core.WarnLevel:
		return atomic.LoadUint64(&s.DroppedWarn)
	case core.ErrorLevel:
		return atomic.LoadUint64(&s.DroppedError)
	default:
		return 0
	}
}

// GetTotalDropped returns the total dropped across all severities
func (s *Stats) GetTotalDropped() uint64 {
	return atomic.LoadUint64(&s.DroppedTrace) +
		atomic.LoadUint64(&s.DroppedDebug) +
		atomic.LoadUint64(&s.DroppedInfo) +
		atomic.LoadUint64(&s.DroppedWarn) +
		atomic.LoadUint64(&s.DroppedError)
}

// Snapshot is a point-in-time copy of emitter statistics
type Snapshot struct {
	Dropped        map[core.Level]uint64
	BlockedTotal   uint64
	ProcessedTotal uint64
	WriteErrors    uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		Dropped: map[core.Level]uint64{
			core.TraceLevel: s.GetDropped(core.TraceLevel),
			core.DebugLevel: s.GetDropped(core.DebugLevel),
			core.InfoLevel:  s.GetDropped(core.InfoLevel),
			core.WarnLevel:  s.GetDropped(core.WarnLevel),
			core.ErrorLevel: s.GetDropped(core.ErrorLevel),
		},
		BlockedTotal:   atomic.LoadUint64(&s.BlockedTotal),
		ProcessedTotal: atomic.LoadUint64(&s.ProcessedTotal),
		WriteErrors:    atomic.LoadUint64(&s.WriteErrors),
	}
}
