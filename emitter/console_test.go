package emitter

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/routelab/logroute/core"
)

func TestConsoleEmitterWrites(t *testing.T) {
	var buf bytes.Buffer
	e := NewWriterEmitter(&buf)

	e.Write(core.InfoLevel, []byte("hello\n"))
	e.Write(core.ErrorLevel, []byte("world\n"))

	if got := buf.String(); got != "hello\nworld\n" {
		t.Errorf("unexpected output: %q", got)
	}
	if e.Stats().ProcessedTotal != 2 {
		t.Errorf("expected 2 processed, got %d", e.Stats().ProcessedTotal)
	}
}

func TestConsoleEmitterLineAtomicity(t *testing.T) {
	var buf bytes.Buffer
	e := NewWriterEmitter(&buf)

	const writers = 16
	const perWriter = 200

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			line := []byte(strings.Repeat(string(rune('a'+id)), 64) + "\n")
			for i := 0; i < perWriter; i++ {
				e.Write(core.InfoLevel, line)
			}
		}(w)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != writers*perWriter {
		t.Fatalf("expected %d lines, got %d", writers*perWriter, len(lines))
	}
	for i, line := range lines {
		if len(line) != 64 {
			t.Fatalf("line %d has length %d, partial lines interleaved", i, len(line))
		}
		for j := 1; j < len(line); j++ {
			if line[j] != line[0] {
				t.Fatalf("line %d mixes writers: %q", i, line)
			}
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errTestWrite
}

var errTestWrite = &writeErr{}

type writeErr struct{}

func (*writeErr) Error() string { return "write failed" }

func TestConsoleEmitterSwallowsWriteErrors(t *testing.T) {
	e := NewWriterEmitter(failingWriter{})

	if err := e.Write(core.ErrorLevel, []byte("x\n")); err != nil {
		t.Errorf("write errors must not surface to producers, got %v", err)
	}
	if e.Stats().WriteErrors != 1 {
		t.Errorf("expected 1 write error counted, got %d", e.Stats().WriteErrors)
	}
}

func TestConsoleEmitterCloseNoop(t *testing.T) {
	var buf bytes.Buffer
	e := NewWriterEmitter(&buf)

	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	// Still usable after Close: the stream is not owned.
	e.Write(core.InfoLevel, []byte("after\n"))
	if !strings.Contains(buf.String(), "after") {
		t.Error("expected writes to keep working after Close")
	}
}
