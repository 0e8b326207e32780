package formatter

import (
	"bytes"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/routelab/logroute/core"
)

// PlainFormatter renders events as human-readable text. The field order
// is stable: timestamp, severity, pid(tid), function@file:line,
// [category], message.
type PlainFormatter struct {
	// Colored wraps the severity token in ANSI styling keyed by
	// severity. Callers must leave this off for non-terminal
	// destinations.
	Colored bool
	// TimestampFormat specifies the time format (empty for RFC3339)
	TimestampFormat string
}

// NewPlainFormatter creates a new plain text formatter
func NewPlainFormatter(colored bool) *PlainFormatter {
	return &PlainFormatter{
		Colored:         colored,
		TimestampFormat: time.RFC3339,
	}
}

// Format renders an event as a single text line
func (f *PlainFormatter) Format(event *core.Event) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(event, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo renders an event and writes it directly to the writer
func (f *PlainFormatter) FormatTo(event *core.Event, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(event, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

func (f *PlainFormatter) formatToBuffer(event *core.Event, buf *bytes.Buffer) {
	tsFormat := f.TimestampFormat
	if tsFormat == "" {
		tsFormat = time.RFC3339
	}

	// Timestamp - use AppendFormat to avoid string allocation
	buf.Write(event.Time.AppendFormat(buf.AvailableBuffer(), tsFormat))

	// Severity, styled when colored
	sev := event.Level.Severity()
	buf.WriteByte(' ')
	if f.Colored {
		if c := severityColor(sev); c != "" {
			buf.WriteString(c)
			buf.WriteString(sev.String())
			buf.WriteString(ansiReset)
		} else {
			buf.WriteString(sev.String())
		}
	} else {
		buf.WriteString(sev.String())
	}

	// pid(tid)
	buf.WriteByte(' ')
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), event.PID, 10))
	buf.WriteByte('(')
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), event.TID, 10))
	buf.WriteByte(')')

	// function@file:line
	buf.WriteByte(' ')
	buf.WriteString(event.Function)
	buf.WriteByte('@')
	buf.WriteString(basename(event.File))
	buf.WriteByte(':')
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(event.Line), 10))

	// [category]
	buf.WriteString(" [")
	if event.Category != "" {
		buf.WriteString(event.Category)
	} else {
		buf.WriteString(uncategorized)
	}
	buf.WriteString("] ")

	buf.WriteString(event.Message)
	buf.WriteByte('\n')
}

// basename strips the path from a file name, degrading to the original
// value when a basename cannot be computed.
func basename(file string) string {
	if file == "" {
		return file
	}
	if b := filepath.Base(file); b != "." && b != string(filepath.Separator) {
		return b
	}
	return file
}
