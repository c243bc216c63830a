package xyz

import (
	"io"
	"iter"
	"time"

	"github.com/banshee-data/xyzb/internal/monitoring"
)

// Reader yields the records of an XYZB stream in the order they were
// written. It reads nothing past the declared record count.
type Reader struct {
	src    io.Reader
	format Format
	total  uint64
	read   uint64
	buf    []byte

	start time.Time
	done  bool
}

// NewReader reads and validates the stream header from src.
//
// A foreign or corrupt stream fails with ErrInvalidMagic, ErrUnknownFormat
// or ErrUnfinalized; a source too short to hold a header fails with
// io.ErrUnexpectedEOF.
func NewReader(src io.Reader) (*Reader, error) {
	var hdr [HeaderSize]byte

	if err := readFull(src, hdr[:len(Magic)]); err != nil {
		return nil, err
	}
	if string(hdr[:len(Magic)]) != Magic {
		return nil, ErrInvalidMagic
	}

	if err := readFull(src, hdr[len(Magic):countOffset]); err != nil {
		return nil, err
	}
	format, err := ParseFormat(hdr[len(Magic)])
	if err != nil {
		return nil, err
	}

	if err := readFull(src, hdr[countOffset:]); err != nil {
		return nil, err
	}
	total := byteOrder.Uint64(hdr[countOffset:])
	if total == UnfinalizedCount {
		return nil, ErrUnfinalized
	}

	return &Reader{
		src:    src,
		format: format,
		total:  total,
		buf:    make([]byte, format.RecordSize()),
	}, nil
}

// Format returns the record format of the stream.
func (r *Reader) Format() Format {
	return r.format
}

// Len returns the record count declared in the header.
func (r *Reader) Len() uint64 {
	return r.total
}

// Remaining returns how many records have not been read yet.
func (r *Reader) Remaining() uint64 {
	return r.total - r.read
}

// Next returns the next record, or io.EOF once all declared records have
// been read. A truncated record yields io.ErrUnexpectedEOF; the Reader is
// unusable after any error other than io.EOF.
func (r *Reader) Next() (Record, error) {
	if r.read >= r.total {
		r.logStats()
		return Record{}, io.EOF
	}
	if r.read == 0 {
		r.start = clock.Now()
	}

	if err := readFull(r.src, r.buf); err != nil {
		return Record{}, err
	}
	rec := decodeRecord(r.buf, r.format)
	r.read++
	return rec, nil
}

// All returns an iterator over the remaining records. Iteration stops
// after the last record or after yielding the first error.
func (r *Reader) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := r.Next()
			if err == io.EOF {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

func (r *Reader) logStats() {
	if r.done || r.read == 0 {
		return
	}
	r.done = true
	elapsed := clock.Since(r.start)
	monitoring.Debugf("Read %d records in %v (%v/record)",
		r.read, elapsed, elapsed/time.Duration(r.read))
}
