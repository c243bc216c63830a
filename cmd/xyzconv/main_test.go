package main

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/xyzb/internal/xyz"
)

func TestConvertRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.xyzb")
	asc := filepath.Join(dir, "mid.asc")
	dst := filepath.Join(dir, "out.xyzb")

	records := []xyz.Record{
		{X: 1.25, Y: -2.5, Z: 3, Meta: &xyz.Meta{Classification: 2, NumberOfReturns: 1, ReturnNumber: 1}},
		{X: 100, Y: 200, Z: 12.125, Meta: &xyz.Meta{Classification: 5, NumberOfReturns: 3, ReturnNumber: 2}},
	}
	w, err := xyz.Create(src, xyz.FormatXYZMeta)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, r := range records {
		if err := w.WriteRecord(r); err != nil {
			t.Fatalf("WriteRecord: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if n, err := toASC(src, asc); err != nil || n != 2 {
		t.Fatalf("toASC = %d, %v; want 2, nil", n, err)
	}
	if n, err := toXYZB(asc, dst, xyz.FormatXYZMeta); err != nil || n != 2 {
		t.Fatalf("toXYZB = %d, %v; want 2, nil", n, err)
	}

	fr, err := xyz.Open(dst)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer fr.Close()

	var got []xyz.Record
	for rec, err := range fr.All() {
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		got = append(got, rec)
	}
	if diff := cmp.Diff(records, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestToXYZB_MetaRequired(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.xyzb")
	asc := filepath.Join(dir, "bare.asc")
	dst := filepath.Join(dir, "out.xyzb")

	w, err := xyz.Create(src, xyz.FormatXYZ)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := w.WriteRecord(xyz.Record{X: 1, Y: 2, Z: 3}); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := toASC(src, asc); err != nil {
		t.Fatalf("toASC: %v", err)
	}

	if _, err := toXYZB(asc, dst, xyz.FormatXYZMeta); err == nil {
		t.Fatal("expected error converting bare points to xyz+meta")
	}
	if _, err := xyz.Open(dst); err == nil {
		t.Error("aborted conversion must not leave an output file")
	}
}
