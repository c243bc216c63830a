package xyz

import (
	"errors"
	"fmt"
)

// Error classes. Every error produced by this package (other than I/O
// errors from the underlying stream, which are returned untouched) matches
// exactly one of these with errors.Is.
var (
	ErrInvalidData  = errors.New("xyz: invalid data")
	ErrInvalidInput = errors.New("xyz: invalid input")
	ErrInvalidState = errors.New("xyz: invalid state")
)

var (
	// ErrInvalidMagic is returned when a stream does not start with Magic.
	ErrInvalidMagic = fmt.Errorf("%w: invalid magic number", ErrInvalidData)

	// ErrUnknownFormat is returned for a format tag other than 1 or 2.
	ErrUnknownFormat = fmt.Errorf("%w: unknown format", ErrInvalidData)

	// ErrUnfinalized is returned when the header still carries the
	// placeholder count, i.e. the writer was never finished.
	ErrUnfinalized = fmt.Errorf("%w: record count was never finalized", ErrInvalidData)

	// ErrMetaRequired is returned when a record without metadata is written
	// to a FormatXYZMeta stream.
	ErrMetaRequired = fmt.Errorf("%w: metadata required for %s format", ErrInvalidInput, FormatXYZMeta)

	// ErrWriterFinished is returned by any Writer call after Finish.
	ErrWriterFinished = fmt.Errorf("%w: writer has already been finished", ErrInvalidState)
)
