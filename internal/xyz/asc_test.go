package xyz

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/xyzb/internal/testutil"
)

func TestASC_RoundTrip(t *testing.T) {
	for _, f := range []Format{FormatXYZ, FormatXYZMeta} {
		t.Run(f.String(), func(t *testing.T) {
			records := makeRecords(20, f)
			data := writeStream(t, f, records)

			r, err := NewReader(bytes.NewReader(data))
			require.NoError(t, err)
			var asc bytes.Buffer
			n, err := ExportASC(r, &asc)
			require.NoError(t, err)
			assert.Equal(t, uint64(20), n)
			assert.True(t, strings.HasPrefix(asc.String(), "# Exported points\n"))

			sink := &testutil.SeekBuffer{}
			w := NewWriter(sink, f)
			n, err = ImportASC(&asc, w)
			require.NoError(t, err)
			assert.Equal(t, uint64(20), n)
			_, err = w.Finish()
			require.NoError(t, err)

			assert.Equal(t, records, readAll(t, sink.Bytes()))
		})
	}
}

func TestImportASC_Lines(t *testing.T) {
	input := `# header
1.5 2.5 3.5 2 1 1

   -1 -2 -3 6 3 2
`
	sink := &testutil.SeekBuffer{}
	w := NewWriter(sink, FormatXYZMeta)
	n, err := ImportASC(strings.NewReader(input), w)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)
	_, err = w.Finish()
	require.NoError(t, err)

	got := readAll(t, sink.Bytes())
	assert.Equal(t, []Record{
		{X: 1.5, Y: 2.5, Z: 3.5, Meta: &Meta{Classification: 2, NumberOfReturns: 1, ReturnNumber: 1}},
		{X: -1, Y: -2, Z: -3, Meta: &Meta{Classification: 6, NumberOfReturns: 3, ReturnNumber: 2}},
	}, got)
}

func TestImportASC_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		f     Format
		want  error
	}{
		{"too few columns", "1 2\n", FormatXYZ, ErrInvalidData},
		{"bad float", "1 two 3\n", FormatXYZ, ErrInvalidData},
		{"meta overflow", "1 2 3 256 1 1\n", FormatXYZMeta, ErrInvalidData},
		{"missing meta", "1 2 3\n", FormatXYZMeta, ErrMetaRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter(&testutil.SeekBuffer{}, tt.f)
			defer w.Close()
			_, err := ImportASC(strings.NewReader(tt.input), w)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}
