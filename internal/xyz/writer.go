package xyz

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/banshee-data/xyzb/internal/monitoring"
	"github.com/banshee-data/xyzb/internal/timeutil"
)

// clock times writes and reads for the debug statistics.
var clock timeutil.Clock = timeutil.RealClock{}

// Writer streams records into a seekable sink. The header is emitted with
// the first record and its count is patched by Finish. Every record is
// written to the sink as soon as it is encoded; wrap the sink in a buffer
// if that is too many small writes.
//
// Callers should defer Close; a Writer that is garbage collected while
// still open is finished by a finalizer, which panics if that fails.
type Writer struct {
	sink    io.WriteSeeker
	format  Format
	scratch []byte

	count         uint64
	base          int64 // sink offset of the header
	headerWritten bool
	finished      bool

	start time.Time
}

// NewWriter returns a Writer that writes records of format f to sink.
// The Writer owns sink until Finish or Close returns.
func NewWriter(sink io.WriteSeeker, f Format) *Writer {
	w := &Writer{
		sink:    sink,
		format:  f,
		scratch: make([]byte, 0, coordSize+metaSize),
	}
	runtime.SetFinalizer(w, (*Writer).finalize)
	return w
}

// Format returns the record format of the stream.
func (w *Writer) Format() Format {
	return w.format
}

// Count returns the number of records written so far.
func (w *Writer) Count() uint64 {
	return w.count
}

// WriteRecord appends r to the stream, emitting the header first if this is
// the first record. The record is validated before anything is written, so
// a rejected record leaves the stream untouched. A failed sink write is
// returned as is and the record is not counted.
func (w *Writer) WriteRecord(r Record) error {
	if w.finished {
		return ErrWriterFinished
	}

	buf, err := r.AppendBinary(w.scratch[:0], w.format)
	if err != nil {
		return err
	}

	if !w.headerWritten {
		if err := w.writeHeader(); err != nil {
			return err
		}
	}

	if _, err := w.sink.Write(buf); err != nil {
		return err
	}
	w.count++
	return nil
}

func (w *Writer) writeHeader() error {
	if _, err := ParseFormat(byte(w.format)); err != nil {
		return err
	}
	base, err := w.sink.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	var hdr [HeaderSize]byte
	copy(hdr[:], Magic)
	hdr[len(Magic)] = byte(w.format)
	byteOrder.PutUint64(hdr[countOffset:], UnfinalizedCount)
	if _, err := w.sink.Write(hdr[:]); err != nil {
		return err
	}

	w.base = base
	w.headerWritten = true
	w.start = clock.Now()
	return nil
}

// Finish patches the record count into the header and hands the sink back
// to the caller, positioned after the last record. It may only be called
// once; later calls return ErrWriterFinished.
//
// If no record was written the header is emitted here, so an empty stream
// is a header with a count of zero. A Writer created with an invalid format
// fails with ErrUnknownFormat and leaves the sink untouched.
func (w *Writer) Finish() (io.WriteSeeker, error) {
	if w.finished {
		return nil, ErrWriterFinished
	}
	w.finished = true
	runtime.SetFinalizer(w, nil)

	if !w.headerWritten {
		if err := w.writeHeader(); err != nil {
			return nil, err
		}
	}
	if _, err := w.sink.Seek(w.base+int64(countOffset), io.SeekStart); err != nil {
		return nil, err
	}
	var count [8]byte
	byteOrder.PutUint64(count[:], w.count)
	if _, err := w.sink.Write(count[:]); err != nil {
		return nil, err
	}

	end := w.base + int64(HeaderSize) + int64(w.count)*int64(w.format.RecordSize())
	if _, err := w.sink.Seek(end, io.SeekStart); err != nil {
		return nil, err
	}

	if w.count > 0 {
		elapsed := clock.Since(w.start)
		monitoring.Debugf("Wrote %d records in %v (%v/record)",
			w.count, elapsed, elapsed/time.Duration(w.count))
	}
	return w.sink, nil
}

// Close finishes the writer if Finish has not been called yet. It does not
// close the sink. Calling Close after Finish is a no-op.
func (w *Writer) Close() error {
	if w.finished {
		return nil
	}
	_, err := w.Finish()
	return err
}

func (w *Writer) finalize() {
	if err := w.Close(); err != nil {
		panic(fmt.Sprintf("xyz: failed to finish writer on release: %v", err))
	}
}
