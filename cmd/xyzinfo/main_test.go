package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/xyzb/internal/xyz"
)

func writeSample(t *testing.T, path string, n int) {
	t.Helper()
	w, err := xyz.Create(path, xyz.FormatXYZMeta)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := xyz.NewSyntheticGenerator(5).Generate(w.Writer, n); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestDescribe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.xyzb")
	writeSample(t, path, 300)

	var out bytes.Buffer
	plotDir := filepath.Join(dir, "plots")
	if err := describe(&out, path, false, 100, plotDir); err != nil {
		t.Fatalf("describe: %v", err)
	}

	for _, want := range []string{"format:  xyz+meta", "records: 300", "classification:", "  z: min"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	for _, name := range []string{"scan_xy.png", "scan_z_hist.png"} {
		if _, err := os.Stat(filepath.Join(plotDir, name)); err != nil {
			t.Errorf("plot %s not written: %v", name, err)
		}
	}
}

func TestDescribe_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.xyzb")
	writeSample(t, path, 3)

	var out bytes.Buffer
	if err := describe(&out, path, true, 0, ""); err != nil {
		t.Fatalf("describe: %v", err)
	}
	if strings.Contains(out.String(), "mean") {
		t.Errorf("header-only output contains statistics:\n%s", out.String())
	}
}

func TestDescribe_NotXYZB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello world, not a point cloud"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := describe(&bytes.Buffer{}, path, false, 0, ""); err == nil {
		t.Fatal("expected error for a foreign file")
	}
}
