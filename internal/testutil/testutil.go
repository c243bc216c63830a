// Package testutil provides shared test utilities and fixtures.
package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// SeekBuffer is an in-memory io.WriteSeeker. Writing past the end grows the
// buffer; writing before it overwrites in place. It is safe for concurrent
// use so tests can observe writes made from finalizers.
type SeekBuffer struct {
	mu   sync.Mutex
	data []byte
	pos  int64

	// Limit, when positive, makes writes fail with ErrSinkFull once the
	// buffer would grow beyond Limit bytes.
	Limit int
}

// ErrSinkFull is returned by a SeekBuffer whose Limit was reached.
var ErrSinkFull = errors.New("testutil: sink full")

// Write implements io.Writer.
func (b *SeekBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	end := b.pos + int64(len(p))
	if b.Limit > 0 && end > int64(b.Limit) {
		return 0, ErrSinkFull
	}
	if end > int64(len(b.data)) {
		b.data = append(b.data, make([]byte, end-int64(len(b.data)))...)
	}
	copy(b.data[b.pos:], p)
	b.pos = end
	return len(p), nil
}

// Seek implements io.Seeker.
func (b *SeekBuffer) Seek(offset int64, whence int) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = b.pos + offset
	case io.SeekEnd:
		pos = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if pos < 0 {
		return 0, fmt.Errorf("negative position %d", pos)
	}
	b.pos = pos
	return pos, nil
}

// Bytes returns a copy of the buffer contents.
func (b *SeekBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.data)
}
