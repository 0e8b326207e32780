package core

import (
	"errors"
	"fmt"
	"strings"
)

// Level represents the severity rank used for filtering.
// Levels are totally ordered: Trace < Debug < Info < Warn < Error.
type Level int8

const (
	// TraceLevel for very detailed tracing output
	TraceLevel Level = iota
	// DebugLevel for detailed debugging information
	DebugLevel
	// InfoLevel for general informational messages (default)
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
)

// ErrUnknownLevel indicates an unrecognized severity level string.
var ErrUnknownLevel = errors.New("unknown log level")

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a wire-format string to a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return TraceLevel, nil
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// MarshalText implements encoding.TextMarshaler using wire names.
func (l Level) MarshalText() ([]byte, error) {
	switch l {
	case TraceLevel:
		return []byte("trace"), nil
	case DebugLevel:
		return []byte("debug"), nil
	case InfoLevel:
		return []byte("info"), nil
	case WarnLevel:
		return []byte("warn"), nil
	case ErrorLevel:
		return []byte("error"), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int8(l))
}

// UnmarshalText implements encoding.TextUnmarshaler so levels decode
// directly from configuration documents.
func (l *Level) UnmarshalText(text []byte) error {
	lvl, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = lvl
	return nil
}

// WireLevel is the wider severity carried by callers at the emit boundary.
// It includes Invalid plus the Fatal and Mandatory aliases that do not
// exist as filter ranks.
type WireLevel uint8

const (
	WireInvalid WireLevel = iota
	WireVerbose
	WireDebug
	WireInfo
	WireWarn
	WireError
	WireFatal
	WireMandatory
)

// NormalizeWireLevel converts a raw byte from the wire into a WireLevel,
// mapping out-of-range values to WireInvalid.
func NormalizeWireLevel(v uint8) WireLevel {
	if v > uint8(WireMandatory) {
		return WireInvalid
	}
	return WireLevel(v)
}

// Severity maps a wire-level onto its filter rank. The alias mapping is
// fixed: Fatal filters as Error, Mandatory as Info, Invalid and Verbose
// as Trace.
func (w WireLevel) Severity() Level {
	switch w {
	case WireVerbose:
		return TraceLevel
	case WireDebug:
		return DebugLevel
	case WireInfo:
		return InfoLevel
	case WireWarn:
		return WarnLevel
	case WireError:
		return ErrorLevel
	case WireFatal:
		return ErrorLevel
	case WireMandatory:
		return InfoLevel
	default:
		return TraceLevel
	}
}
