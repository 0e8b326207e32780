package formatter

import (
	"bytes"
	"io"
	"sync"

	"github.com/routelab/logroute/core"
)

// Formatter renders one event into a single line of text. The returned
// line carries no trailing control characters other than one newline.
// Rendering never fails for well-formed events.
type Formatter interface {
	// Format renders an event into bytes owned by the caller
	Format(event *core.Event) ([]byte, error)
}

// WriterFormatter is an optional interface that formatters can implement
// to write directly to a writer without intermediate byte slice allocation.
type WriterFormatter interface {
	// FormatTo renders an event and writes it directly to the writer
	FormatTo(event *core.Event, w io.Writer) error
}

// uncategorized is the placeholder written when an event has no category.
const uncategorized = "-"

// ANSI SGR sequences used for severity styling.
const (
	ansiReset  = "\x1b[0m"
	ansiFaint  = "\x1b[2m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// severityColor returns the SGR prefix for a severity, or "" for the
// default color.
func severityColor(sev core.Level) string {
	switch sev {
	case core.ErrorLevel:
		return ansiRed
	case core.WarnLevel:
		return ansiYellow
	case core.DebugLevel:
		return ansiBlue
	case core.TraceLevel:
		return ansiFaint
	default:
		return ""
	}
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
