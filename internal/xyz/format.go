package xyz

import (
	"fmt"
	"math"
)

// Magic identifies an XYZB stream.
const Magic = "XYZB"

const (
	// HeaderSize is the size of the stream header in bytes.
	HeaderSize = len(Magic) + 1 + 8

	// countOffset is the offset of the record count within the header.
	countOffset = len(Magic) + 1

	// UnfinalizedCount is the placeholder count written until the writer
	// is finished. It never appears in a complete stream.
	UnfinalizedCount uint64 = math.MaxUint64

	coordSize = 3 * 8
	metaSize  = 3
)

// Format selects the record layout of a whole stream.
type Format uint8

const (
	// FormatXYZ records carry coordinates only.
	FormatXYZ Format = 1
	// FormatXYZMeta records carry coordinates followed by a Meta block.
	FormatXYZMeta Format = 2
)

// ParseFormat maps a persisted tag byte to a Format.
func ParseFormat(b byte) (Format, error) {
	switch Format(b) {
	case FormatXYZ:
		return FormatXYZ, nil
	case FormatXYZMeta:
		return FormatXYZMeta, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownFormat, b)
	}
}

// HasMeta reports whether records of this format carry a Meta block.
func (f Format) HasMeta() bool {
	return f == FormatXYZMeta
}

// RecordSize returns the encoded size of one record, or 0 for an invalid
// format.
func (f Format) RecordSize() int {
	switch f {
	case FormatXYZ:
		return coordSize
	case FormatXYZMeta:
		return coordSize + metaSize
	default:
		return 0
	}
}

func (f Format) String() string {
	switch f {
	case FormatXYZ:
		return "xyz"
	case FormatXYZMeta:
		return "xyz+meta"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// FormatFromString is the inverse of Format.String, used by the CLI tools.
func FormatFromString(s string) (Format, error) {
	switch s {
	case "xyz":
		return FormatXYZ, nil
	case "xyz+meta", "meta":
		return FormatXYZMeta, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}
