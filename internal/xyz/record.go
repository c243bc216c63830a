package xyz

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// byteOrder is fixed so streams are portable between hosts. Little-endian
// matches the native order of the x86 and ARM machines the format
// originated on.
var byteOrder = binary.LittleEndian

// Record is a single observed laser point.
type Record struct {
	X, Y, Z float64

	// Meta is required by FormatXYZMeta and ignored by FormatXYZ.
	Meta *Meta
}

// Meta holds the per-return attributes of a point.
type Meta struct {
	Classification  uint8
	NumberOfReturns uint8
	ReturnNumber    uint8 // 1-based by convention
}

// AppendBinary appends the encoding of r in format f to buf.
func (r Record) AppendBinary(buf []byte, f Format) ([]byte, error) {
	switch f {
	case FormatXYZ:
	case FormatXYZMeta:
		if r.Meta == nil {
			return buf, ErrMetaRequired
		}
	default:
		return buf, ErrUnknownFormat
	}

	buf = byteOrder.AppendUint64(buf, math.Float64bits(r.X))
	buf = byteOrder.AppendUint64(buf, math.Float64bits(r.Y))
	buf = byteOrder.AppendUint64(buf, math.Float64bits(r.Z))
	if f.HasMeta() {
		buf = append(buf, r.Meta.Classification, r.Meta.NumberOfReturns, r.Meta.ReturnNumber)
	}
	return buf, nil
}

// decodeRecord decodes one record of format f from buf, which must hold at
// least f.RecordSize() bytes.
func decodeRecord(buf []byte, f Format) Record {
	r := Record{
		X: math.Float64frombits(byteOrder.Uint64(buf[0:8])),
		Y: math.Float64frombits(byteOrder.Uint64(buf[8:16])),
		Z: math.Float64frombits(byteOrder.Uint64(buf[16:24])),
	}
	if f.HasMeta() {
		r.Meta = &Meta{
			Classification:  buf[24],
			NumberOfReturns: buf[25],
			ReturnNumber:    buf[26],
		}
	}
	return r
}

// ReadRecord reads exactly one record of format f from src. A stream that
// ends before the record is complete yields io.ErrUnexpectedEOF, even when
// no byte of the record was available.
func ReadRecord(src io.Reader, f Format) (Record, error) {
	var buf [coordSize + metaSize]byte
	n := f.RecordSize()
	if n == 0 {
		return Record{}, ErrUnknownFormat
	}
	if err := readFull(src, buf[:n]); err != nil {
		return Record{}, err
	}
	return decodeRecord(buf[:n], f), nil
}

// WriteRecord writes the encoding of r in format f to dst.
func WriteRecord(dst io.Writer, r Record, f Format) error {
	var scratch [coordSize + metaSize]byte
	buf, err := r.AppendBinary(scratch[:0], f)
	if err != nil {
		return err
	}
	_, err = dst.Write(buf)
	return err
}

// readFull is io.ReadFull, except that running out of input at the start
// is also unexpected: callers only read when the header promised more.
func readFull(src io.Reader, buf []byte) error {
	_, err := io.ReadFull(src, buf)
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
