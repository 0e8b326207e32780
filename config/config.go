package config

import (
	"errors"
	"fmt"

	"github.com/routelab/logroute/core"
)

// FormatterType selects the output rendering for a handler.
type FormatterType string

const (
	// FormatterPlain renders a single human-readable line per event.
	FormatterPlain FormatterType = "plain"
	// FormatterJSON renders one line-delimited JSON object per event.
	FormatterJSON FormatterType = "json"
)

// StreamType selects the console stream for a console emitter.
type StreamType string

const (
	StreamStdout StreamType = "stdout"
	StreamStderr StreamType = "stderr"
)

// EmitterType selects the destination kind for a handler.
type EmitterType string

const (
	EmitterConsole EmitterType = "console"
	EmitterFile    EmitterType = "file"
)

// Overflow names the policy applied when a file emitter's queue is full.
type Overflow string

const (
	// OverflowDefault applies the built-in per-severity policy.
	OverflowDefault Overflow = ""
	// OverflowBlock blocks the producer until space is available.
	OverflowBlock Overflow = "block"
	// OverflowDropNewest drops the incoming line.
	OverflowDropNewest Overflow = "drop_newest"
	// OverflowDropOldest evicts the oldest queued line to make room.
	OverflowDropOldest Overflow = "drop_oldest"
)

var (
	// ErrNoMatchers indicates a handler with an empty matcher list.
	ErrNoMatchers = errors.New("handler has no matchers")
	// ErrUnknownFormatter indicates an unsupported formatter type.
	ErrUnknownFormatter = errors.New("unknown formatter type")
	// ErrUnknownEmitter indicates an unsupported emitter type.
	ErrUnknownEmitter = errors.New("unknown emitter type")
	// ErrUnknownStream indicates an unsupported console stream.
	ErrUnknownStream = errors.New("unknown console stream")
	// ErrUnknownOverflow indicates an unsupported overflow policy name.
	ErrUnknownOverflow = errors.New("unknown overflow policy")
	// ErrMissingPath indicates a file emitter without a path.
	ErrMissingPath = errors.New("file emitter requires a path")
)

// Matcher is a single routing rule: events at or above Level whose
// category equals Category (or any category when Category is nil) are
// accepted.
type Matcher struct {
	Level    core.Level `yaml:"level" json:"level"`
	Category *string    `yaml:"category,omitempty" json:"category,omitempty"`
}

// FormatterSpec configures a handler's output rendering.
type FormatterSpec struct {
	Type    FormatterType `yaml:"type" json:"type"`
	Colored *bool         `yaml:"colored,omitempty" json:"colored,omitempty"`
}

// IsColored reports whether colored output was requested (default false).
func (f FormatterSpec) IsColored() bool {
	return f.Colored != nil && *f.Colored
}

// EmitterConfig holds the per-kind emitter settings. Stream applies to
// console emitters; Path, BufferSize, and Overflow to file emitters.
type EmitterConfig struct {
	Stream     StreamType `yaml:"stream,omitempty" json:"stream,omitempty"`
	Path       string     `yaml:"path,omitempty" json:"path,omitempty"`
	BufferSize int        `yaml:"buffer_size,omitempty" json:"buffer_size,omitempty"`
	Overflow   Overflow   `yaml:"overflow,omitempty" json:"overflow,omitempty"`
}

// EmitterSpec configures a handler's destination.
type EmitterSpec struct {
	Type   EmitterType   `yaml:"type" json:"type"`
	Config EmitterConfig `yaml:"config" json:"config"`
}

// HandlerSpec is the unit of routing: a matcher list, a formatter, and
// an emitter.
type HandlerSpec struct {
	Matchers  []Matcher     `yaml:"matchers" json:"matchers"`
	Formatter FormatterSpec `yaml:"formatter" json:"formatter"`
	Emitter   EmitterSpec   `yaml:"emitter" json:"emitter"`
}

// Validate checks a single handler spec. Handler-scoped problems do not
// abort the whole configuration; the router skips offending handlers.
func (h HandlerSpec) Validate() error {
	if len(h.Matchers) == 0 {
		return ErrNoMatchers
	}

	switch h.Formatter.Type {
	case FormatterPlain, FormatterJSON:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormatter, h.Formatter.Type)
	}

	switch h.Emitter.Type {
	case EmitterConsole:
		switch h.Emitter.Config.Stream {
		case StreamStdout, StreamStderr, "":
		default:
			return fmt.Errorf("%w: %q", ErrUnknownStream, h.Emitter.Config.Stream)
		}
	case EmitterFile:
		if h.Emitter.Config.Path == "" {
			return ErrMissingPath
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEmitter, h.Emitter.Type)
	}

	switch h.Emitter.Config.Overflow {
	case OverflowDefault, OverflowBlock, OverflowDropNewest, OverflowDropOldest:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOverflow, h.Emitter.Config.Overflow)
	}

	return nil
}

// Config is the root of a routing configuration document.
type Config struct {
	Level    *core.Level   `yaml:"level,omitempty" json:"level,omitempty"`
	Handlers []HandlerSpec `yaml:"handlers,omitempty" json:"handlers,omitempty"`
}

// DefaultLevel returns the configured default level, or Info when absent.
func (c *Config) DefaultLevel() core.Level {
	if c != nil && c.Level != nil {
		return *c.Level
	}
	return core.InfoLevel
}

// Validate checks every handler and reports the first problem found.
// Intended for ahead-of-time validation (e.g. by tooling); the router
// itself recovers from individual handler problems.
func (c *Config) Validate() error {
	for i, h := range c.Handlers {
		if err := h.Validate(); err != nil {
			return fmt.Errorf("handler %d: %w", i, err)
		}
	}
	return nil
}

// DefaultHandler returns the handler synthesized when a configuration
// has no handlers: a colored plain formatter writing to stdout with a
// single uncategorized matcher at the given level.
func DefaultHandler(level core.Level) HandlerSpec {
	colored := true
	return HandlerSpec{
		Matchers: []Matcher{{Level: level}},
		Formatter: FormatterSpec{
			Type:    FormatterPlain,
			Colored: &colored,
		},
		Emitter: EmitterSpec{
			Type:   EmitterConsole,
			Config: EmitterConfig{Stream: StreamStdout},
		},
	}
}
