package xyz

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ExportASC writes the remaining records of r to w as a CloudCompare
// compatible ASC file: one "X Y Z" line per record, followed by
// "Classification NumberOfReturns ReturnNumber" for streams with metadata.
// It returns the number of points written.
func ExportASC(r *Reader, w io.Writer) (uint64, error) {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# Exported points\n")
	if r.Format().HasMeta() {
		fmt.Fprintf(bw, "# Format: X Y Z Classification NumberOfReturns ReturnNumber\n")
	} else {
		fmt.Fprintf(bw, "# Format: X Y Z\n")
	}

	var n uint64
	for rec, err := range r.All() {
		if err != nil {
			return n, err
		}
		fmt.Fprintf(bw, "%.6f %.6f %.6f", rec.X, rec.Y, rec.Z)
		if rec.Meta != nil {
			fmt.Fprintf(bw, " %d %d %d", rec.Meta.Classification, rec.Meta.NumberOfReturns, rec.Meta.ReturnNumber)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}

// ImportASC parses ASC lines from src and writes them to w. Blank lines and
// lines starting with '#' are skipped. Each point line has three columns,
// or six when it carries metadata; a Writer in FormatXYZMeta rejects
// three-column lines with ErrMetaRequired.
func ImportASC(src io.Reader, w *Writer) (uint64, error) {
	sc := bufio.NewScanner(src)
	var n uint64
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rec, err := parseASCLine(line)
		if err != nil {
			return n, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := w.WriteRecord(rec); err != nil {
			return n, fmt.Errorf("line %d: %w", lineNo, err)
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return n, err
	}
	return n, nil
}

func parseASCLine(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 && len(fields) != 6 {
		return Record{}, fmt.Errorf("%w: expected 3 or 6 columns, got %d", ErrInvalidData, len(fields))
	}

	var coords [3]float64
	for i := range coords {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Record{}, fmt.Errorf("%w: column %d: %v", ErrInvalidData, i+1, err)
		}
		coords[i] = v
	}
	rec := Record{X: coords[0], Y: coords[1], Z: coords[2]}
	if len(fields) == 3 {
		return rec, nil
	}

	var meta [3]uint8
	for i := range meta {
		v, err := strconv.ParseUint(fields[3+i], 10, 8)
		if err != nil {
			return Record{}, fmt.Errorf("%w: column %d: %v", ErrInvalidData, 4+i, err)
		}
		meta[i] = uint8(v)
	}
	rec.Meta = &Meta{
		Classification:  meta[0],
		NumberOfReturns: meta[1],
		ReturnNumber:    meta[2],
	}
	return rec, nil
}
