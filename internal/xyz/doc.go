// Package xyz reads and writes XYZB point-cloud streams.
//
// An XYZB stream is a 13-byte header followed by fixed-size records:
//
//	offset  size  field
//	0       4     magic "XYZB"
//	4       1     format tag (1 = XYZ, 2 = XYZ + metadata)
//	5       8     record count (uint64)
//	13      N*S   records, S = 24 (XYZ) or 27 (XYZ + metadata)
//
// Each record holds x, y, z as float64 and, in the metadata format, three
// bytes: classification, number of returns and return number. All
// multi-byte values are little-endian.
//
// The count is written as all ones while a Writer is open and patched with
// the real value when the Writer is finished, so the sink must be seekable.
// A Reader never reads past the declared count.
package xyz
