package emitter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/routelab/logroute/core"
)

func TestFileEmitterFIFO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fifo.log")

	e, err := NewFileEmitter(FileConfig{
		Path:           path,
		BufferSize:     2048,
		OverflowPolicy: PolicyFromConfig("block"),
	})
	if err != nil {
		t.Fatal(err)
	}

	const n = 500
	for i := 0; i < n; i++ {
		e.Write(core.InfoLevel, []byte(fmt.Sprintf("line %04d\n", i)))
	}

	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != n {
		t.Fatalf("expected %d lines, got %d", n, len(lines))
	}
	for i, line := range lines {
		want := fmt.Sprintf("line %04d", i)
		if line != want {
			t.Fatalf("line %d out of order: got %q, want %q", i, line, want)
		}
	}
}

func TestFileEmitterGlobalFIFOAcrossProducers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multi.log")

	e, err := NewFileEmitter(FileConfig{
		Path:           path,
		BufferSize:     4096,
		OverflowPolicy: PolicyFromConfig("block"),
	})
	if err != nil {
		t.Fatal(err)
	}

	// A shared sequence makes enqueue order observable across producers.
	var mu sync.Mutex
	seq := 0

	var wg sync.WaitGroup
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				mu.Lock()
				line := fmt.Sprintf("%06d\n", seq)
				seq++
				e.Write(core.InfoLevel, []byte(line))
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 800 {
		t.Fatalf("expected 800 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if line != fmt.Sprintf("%06d", i) {
			t.Fatalf("enqueue order not preserved at line %d: %q", i, line)
		}
	}
}

func TestFileEmitterDropAccounting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drop.log")

	e, err := NewFileEmitter(FileConfig{
		Path:           path,
		BufferSize:     1,
		OverflowPolicy: PolicyFromConfig("drop_newest"),
	})
	if err != nil {
		t.Fatal(err)
	}

	const n = 2000
	for i := 0; i < n; i++ {
		e.Write(core.DebugLevel, []byte("spam\n"))
	}

	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	stats := e.Stats()
	if stats.ProcessedTotal+stats.Dropped[core.DebugLevel] != n {
		t.Errorf("processed (%d) + dropped (%d) != %d",
			stats.ProcessedTotal, stats.Dropped[core.DebugLevel], n)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	written := strings.Count(string(data), "spam\n")
	if uint64(written) != stats.ProcessedTotal {
		t.Errorf("file has %d lines, stats say %d", written, stats.ProcessedTotal)
	}
}

func TestFileEmitterDropOldest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oldest.log")

	e, err := NewFileEmitter(FileConfig{
		Path:           path,
		BufferSize:     1,
		OverflowPolicy: PolicyFromConfig("drop_oldest"),
	})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2000; i++ {
		e.Write(core.WarnLevel, []byte("w\n"))
	}

	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	stats := e.Stats()
	total := stats.ProcessedTotal + stats.Dropped[core.WarnLevel]
	if total != 2000 {
		t.Errorf("processed (%d) + dropped (%d) != 2000",
			stats.ProcessedTotal, stats.Dropped[core.WarnLevel])
	}
}

func TestFileEmitterDrainOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drain.log")

	e, err := NewFileEmitter(FileConfig{
		Path:           path,
		BufferSize:     1000,
		OverflowPolicy: PolicyFromConfig("block"),
	})
	if err != nil {
		t.Fatal(err)
	}

	const n = 1000
	for i := 0; i < n; i++ {
		e.Write(core.InfoLevel, []byte("queued\n"))
	}

	// Close must not return before every enqueued line is on disk.
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "queued\n"); got != n {
		t.Errorf("expected %d drained lines, got %d", n, got)
	}
}

func TestFileEmitterCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "close.log")

	e, err := NewFileEmitter(FileConfig{Path: path})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := e.Close(); err != nil {
			t.Errorf("close %d failed: %v", i, err)
		}
	}
}

func TestFileEmitterWriteAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "late.log")

	e, err := NewFileEmitter(FileConfig{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	// Must not panic or block; the line is counted as dropped.
	e.Write(core.InfoLevel, []byte("late\n"))
	if got := e.Stats().Dropped[core.InfoLevel]; got != 1 {
		t.Errorf("expected 1 dropped line after close, got %d", got)
	}
}

func TestFileEmitterOpenError(t *testing.T) {
	_, err := NewFileEmitter(FileConfig{Path: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	if err == nil {
		t.Fatal("expected open error for missing parent directory")
	}
}

func TestFileEmitterBoundedEnqueueCost(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fast.log")

	e, err := NewFileEmitter(FileConfig{
		Path:           path,
		BufferSize:     64,
		OverflowPolicy: PolicyFromConfig("drop_newest"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	// With a drop policy the producer pays enqueue cost only, so a
	// large burst must return quickly regardless of disk latency.
	line := []byte(strings.Repeat("x", 256) + "\n")
	start := time.Now()
	for i := 0; i < 50000; i++ {
		e.Write(core.InfoLevel, line)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("producer path too slow: %v for 50000 writes", elapsed)
	}
}
