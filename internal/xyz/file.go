package xyz

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/banshee-data/xyzb/internal/monitoring"
	"github.com/google/uuid"
)

// FileExtension is the conventional extension for XYZB files.
const FileExtension = ".xyzb"

// fileBufferSize is the write buffer used between a FileWriter and its file.
const fileBufferSize = 64 * 1024

// bufferedFile buffers writes to a file and flushes before every seek, so
// the Writer can patch the header in place.
type bufferedFile struct {
	*bufio.Writer
	file *os.File
}

func (b *bufferedFile) Seek(offset int64, whence int) (int64, error) {
	if err := b.Flush(); err != nil {
		return 0, err
	}
	return b.file.Seek(offset, whence)
}

// FileWriter writes an XYZB file. Records go to a temporary file next to
// the destination, which replaces the destination only when Close succeeds.
type FileWriter struct {
	*Writer

	file     *os.File
	buffered *bufferedFile
	path     string
	tmpPath  string
	closed   bool
}

// Create starts a new XYZB file at path with records of format f.
func Create(path string, f Format) (*FileWriter, error) {
	if f.RecordSize() == 0 {
		return nil, fmt.Errorf("create %s: %w: %d", path, ErrUnknownFormat, uint8(f))
	}

	tmpPath := filepath.Join(filepath.Dir(path),
		fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	file, err := os.Create(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	monitoring.Debugf("Writing records to %s", path)

	sink := &bufferedFile{Writer: bufio.NewWriterSize(file, fileBufferSize), file: file}
	w := NewWriter(sink, f)
	runtime.SetFinalizer(w, nil)

	fw := &FileWriter{
		Writer:   w,
		file:     file,
		buffered: sink,
		path:     path,
		tmpPath:  tmpPath,
	}
	runtime.SetFinalizer(fw, (*FileWriter).finalize)
	return fw, nil
}

// Path returns the destination path of the file.
func (fw *FileWriter) Path() string {
	return fw.path
}

// Close finishes the stream, closes the file and moves it into place.
// On failure the temporary file is removed and path is left untouched.
// Calling Close more than once is a no-op.
func (fw *FileWriter) Close() error {
	if fw.closed {
		return nil
	}
	fw.closed = true
	runtime.SetFinalizer(fw, nil)

	err := fw.Writer.Close()
	if err == nil {
		err = fw.buffered.Flush()
	}
	if err == nil {
		err = fw.file.Sync()
	}
	if cerr := fw.file.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(fw.tmpPath, fw.path)
	}
	if err != nil {
		if rerr := os.Remove(fw.tmpPath); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
			monitoring.Logf("xyz: failed to remove %s: %v", fw.tmpPath, rerr)
		}
		return fmt.Errorf("failed to finish %s: %w", fw.path, err)
	}
	return nil
}

// Abort discards the file: the temporary file is removed and path is left
// untouched. The writer cannot be used afterwards.
func (fw *FileWriter) Abort() error {
	if fw.closed {
		return nil
	}
	fw.closed = true
	fw.Writer.finished = true
	runtime.SetFinalizer(fw, nil)

	err := fw.file.Close()
	if rerr := os.Remove(fw.tmpPath); err == nil {
		err = rerr
	}
	return err
}

func (fw *FileWriter) finalize() {
	if err := fw.Close(); err != nil {
		panic(fmt.Sprintf("xyz: failed to finish %s on release: %v", fw.path, err))
	}
}

// FileReader reads an XYZB file through a buffered reader.
type FileReader struct {
	*Reader

	file *os.File
}

// Open opens the XYZB file at path and validates its header.
func Open(path string) (*FileReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	monitoring.Debugf("Reading records from %s", path)

	r, err := NewReader(bufio.NewReader(file))
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	return &FileReader{Reader: r, file: file}, nil
}

// Close closes the underlying file.
func (fr *FileReader) Close() error {
	return fr.file.Close()
}
