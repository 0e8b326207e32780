package formatter

import (
	"bytes"
	"io"
	"strconv"
	"time"

	"github.com/routelab/logroute/core"
)

// FieldNames maps the fixed JSON field set onto the key names expected
// by downstream consumers. Zero-value fields use the defaults.
type FieldNames struct {
	Time     string
	Level    string
	Category string
	PID      string
	TID      string
	Function string
	File     string
	Line     string
	Message  string
}

// DefaultFieldNames returns the documented default key set.
func DefaultFieldNames() FieldNames {
	return FieldNames{
		Time:     "time",
		Level:    "level",
		Category: "category",
		PID:      "pid",
		TID:      "tid",
		Function: "function",
		File:     "file",
		Line:     "line",
		Message:  "message",
	}
}

// fill replaces zero-value names with their defaults.
func (n FieldNames) fill() FieldNames {
	d := DefaultFieldNames()
	if n.Time == "" {
		n.Time = d.Time
	}
	if n.Level == "" {
		n.Level = d.Level
	}
	if n.Category == "" {
		n.Category = d.Category
	}
	if n.PID == "" {
		n.PID = d.PID
	}
	if n.TID == "" {
		n.TID = d.TID
	}
	if n.Function == "" {
		n.Function = d.Function
	}
	if n.File == "" {
		n.File = d.File
	}
	if n.Line == "" {
		n.Line = d.Line
	}
	if n.Message == "" {
		n.Message = d.Message
	}
	return n
}

// JSONFormatter renders events as one self-contained JSON object per
// line. When Colored is set, the whole line is wrapped in severity
// styling for console echo; configuration forces Colored off for file
// destinations so file bytes never carry ANSI sequences.
type JSONFormatter struct {
	names           FieldNames
	colored         bool
	timestampFormat string
}

// JSONConfig holds JSON formatter configuration
type JSONConfig struct {
	// FieldNames overrides the default key names (zero values keep defaults)
	FieldNames FieldNames
	// Colored styles the console echo of the object
	Colored bool
	// TimestampFormat specifies the time format (empty for RFC3339Nano)
	TimestampFormat string
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(cfg JSONConfig) *JSONFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339Nano
	}
	return &JSONFormatter{
		names:           cfg.FieldNames.fill(),
		colored:         cfg.Colored,
		timestampFormat: cfg.TimestampFormat,
	}
}

// Format renders an event as a line-delimited JSON object
func (f *JSONFormatter) Format(event *core.Event) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(event, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo renders an event as JSON and writes it directly to the writer
func (f *JSONFormatter) FormatTo(event *core.Event, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(event, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// formatToBuffer builds JSON manually into the buffer without allocations
func (f *JSONFormatter) formatToBuffer(event *core.Event, buf *bytes.Buffer) {
	sev := event.Level.Severity()

	var styled bool
	if f.colored {
		if c := severityColor(sev); c != "" {
			buf.WriteString(c)
			styled = true
		}
	}

	buf.WriteByte('{')

	buf.WriteByte('"')
	appendJSONString(buf, f.names.Time)
	buf.WriteString(`":"`)
	buf.Write(event.Time.AppendFormat(buf.AvailableBuffer(), f.timestampFormat))
	buf.WriteByte('"')

	buf.WriteString(`,"`)
	appendJSONString(buf, f.names.Level)
	buf.WriteString(`":"`)
	buf.WriteString(sev.String())
	buf.WriteByte('"')

	buf.WriteString(`,"`)
	appendJSONString(buf, f.names.Category)
	buf.WriteString(`":"`)
	appendJSONString(buf, event.Category)
	buf.WriteByte('"')

	buf.WriteString(`,"`)
	appendJSONString(buf, f.names.PID)
	buf.WriteString(`":`)
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), event.PID, 10))

	buf.WriteString(`,"`)
	appendJSONString(buf, f.names.TID)
	buf.WriteString(`":`)
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), event.TID, 10))

	buf.WriteString(`,"`)
	appendJSONString(buf, f.names.Function)
	buf.WriteString(`":"`)
	appendJSONString(buf, event.Function)
	buf.WriteByte('"')

	buf.WriteString(`,"`)
	appendJSONString(buf, f.names.File)
	buf.WriteString(`":"`)
	appendJSONString(buf, basename(event.File))
	buf.WriteByte('"')

	buf.WriteString(`,"`)
	appendJSONString(buf, f.names.Line)
	buf.WriteString(`":`)
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(event.Line), 10))

	buf.WriteString(`,"`)
	appendJSONString(buf, f.names.Message)
	buf.WriteString(`":"`)
	appendJSONString(buf, event.Message)
	buf.WriteString(`"}`)

	if styled {
		buf.WriteString(ansiReset)
	}
	buf.WriteByte('\n')
}

// appendJSONString writes a JSON-escaped string (without surrounding quotes) to the buffer
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		// Flush unescaped prefix
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	// Flush remaining
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}
