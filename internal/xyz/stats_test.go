package xyz

import (
	"bytes"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/xyzb/internal/monitoring"
	"github.com/banshee-data/xyzb/internal/testutil"
	"github.com/banshee-data/xyzb/internal/timeutil"
)

func TestStats_DebugLogging(t *testing.T) {
	mock := timeutil.NewMockClock(time.Unix(0, 0))
	origClock := clock
	clock = mock
	defer func() { clock = origClock }()

	origLog := monitoring.Logf
	defer func() { monitoring.Logf = origLog }()
	monitoring.SetDebug(true)
	defer monitoring.SetDebug(false)

	var lines []string
	monitoring.SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})

	sink := &testutil.SeekBuffer{}
	w := NewWriter(sink, FormatXYZ)
	for i := 0; i < 4; i++ {
		require.NoError(t, w.WriteRecord(Record{X: float64(i)}))
		mock.Advance(time.Second)
	}
	_, err := w.Finish()
	require.NoError(t, err)

	r, err := NewReader(bytes.NewReader(sink.Bytes()))
	require.NoError(t, err)
	for {
		_, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		mock.Advance(500 * time.Millisecond)
	}
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)

	assert.Equal(t, []string{
		"[debug] Wrote 4 records in 4s (1s/record)",
		"[debug] Read 4 records in 2s (500ms/record)",
	}, lines)
}

func TestStats_SilentByDefault(t *testing.T) {
	origLog := monitoring.Logf
	defer func() { monitoring.Logf = origLog }()

	called := false
	monitoring.SetLogger(func(string, ...interface{}) { called = true })

	data := writeStream(t, FormatXYZ, makeRecords(3, FormatXYZ))
	assert.Len(t, readAll(t, data), 3)
	assert.False(t, called, "statistics are only logged in debug mode")
}
