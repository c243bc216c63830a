package testutil

import (
	"io"
	"testing"
)

func TestSeekBuffer(t *testing.T) {
	var b SeekBuffer

	_, err := b.Write([]byte("hello world"))
	AssertNoError(t, err)

	pos, err := b.Seek(6, io.SeekStart)
	AssertNoError(t, err)
	if pos != 6 {
		t.Errorf("Seek = %d, want 6", pos)
	}
	_, err = b.Write([]byte("gophers"))
	AssertNoError(t, err)

	if got := string(b.Bytes()); got != "hello gophers" {
		t.Errorf("Bytes() = %q, want %q", got, "hello gophers")
	}

	pos, err = b.Seek(-3, io.SeekEnd)
	AssertNoError(t, err)
	if pos != 10 {
		t.Errorf("Seek(-3, end) = %d, want 10", pos)
	}
	pos, err = b.Seek(1, io.SeekCurrent)
	AssertNoError(t, err)
	if pos != 11 {
		t.Errorf("Seek(1, current) = %d, want 11", pos)
	}

	_, err = b.Seek(-20, io.SeekCurrent)
	AssertError(t, err)
	_, err = b.Seek(0, 42)
	AssertError(t, err)
}

func TestSeekBuffer_Limit(t *testing.T) {
	b := SeekBuffer{Limit: 4}
	_, err := b.Write([]byte("abcd"))
	AssertNoError(t, err)

	if _, err := b.Write([]byte("e")); err != ErrSinkFull {
		t.Errorf("Write past limit = %v, want ErrSinkFull", err)
	}

	// Overwriting within the limit is still allowed.
	_, err = b.Seek(0, io.SeekStart)
	AssertNoError(t, err)
	_, err = b.Write([]byte("AB"))
	AssertNoError(t, err)
	if got := string(b.Bytes()); got != "ABcd" {
		t.Errorf("Bytes() = %q, want ABcd", got)
	}
}
