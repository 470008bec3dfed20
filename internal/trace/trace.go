// Package trace records per-tick statistics as zstd-compressed JSON lines.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"chunk-ca/internal/world"

	"github.com/klauspost/compress/zstd"
)

// Writer appends one JSON object per tick. It is safe for concurrent use.
type Writer struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
	n   int
}

// Create truncates path and returns a Writer on it.
func Create(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open trace %s: %w", path, err)
	}
	tw, err := NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	tw.f = f
	return tw, nil
}

// NewWriter compresses into dst. Closing the Writer does not close dst.
func NewWriter(dst io.Writer) (*Writer, error) {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	return &Writer{enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}, nil
}

// Write records one tick.
func (w *Writer) Write(st world.TickStats) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return fmt.Errorf("trace: write after close")
	}
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	w.n++
	return nil
}

// Len returns the number of ticks written.
func (w *Writer) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.n
}

// Close flushes the stream and closes the file opened by Create.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return nil
	}
	err := w.w.Flush()
	if cerr := w.enc.Close(); err == nil {
		err = cerr
	}
	if w.f != nil {
		if cerr := w.f.Close(); err == nil {
			err = cerr
		}
		w.f = nil
	}
	w.w = nil
	w.enc = nil
	return err
}

// ReadAll decodes every tick from a stream produced by Writer.
func ReadAll(r io.Reader) ([]world.TickStats, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	defer dec.Close()

	var out []world.TickStats
	sc := bufio.NewScanner(dec)
	for sc.Scan() {
		var st world.TickStats
		if err := json.Unmarshal(sc.Bytes(), &st); err != nil {
			return out, fmt.Errorf("trace line %d: %w", len(out)+1, err)
		}
		out = append(out, st)
	}
	if err := sc.Err(); err != nil {
		return out, err
	}
	return out, nil
}

// ReadFile decodes the trace stored at path.
func ReadFile(path string) ([]world.TickStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace %s: %w", path, err)
	}
	defer f.Close()
	return ReadAll(f)
}
