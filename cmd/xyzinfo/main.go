// Command xyzinfo prints the header and summary statistics of .xyzb files
// and optionally renders plots of their contents.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/banshee-data/xyzb/internal/monitoring"
	"github.com/banshee-data/xyzb/internal/version"
	"github.com/banshee-data/xyzb/internal/xyz"
	"github.com/banshee-data/xyzb/internal/xyz/summary"
)

func main() {
	plotDir := flag.String("plots", "", "directory to write <name>_xy.png and <name>_z_hist.png into, one pair per input")
	sampleSize := flag.Int("sample", summary.DefaultSampleSize, "points kept for medians and plots")
	headerOnly := flag.Bool("header", false, "print the header only")
	verbose := flag.Bool("v", false, "enable debug logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] file.xyzb...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	monitoring.SetDebug(*verbose)
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	failed := false
	for _, path := range flag.Args() {
		if err := describe(os.Stdout, path, *headerOnly, *sampleSize, *plotDir); err != nil {
			log.Printf("%s: %v", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func describe(out io.Writer, path string, headerOnly bool, sampleSize int, plotDir string) error {
	fr, err := xyz.Open(path)
	if err != nil {
		return err
	}
	defer fr.Close()

	fmt.Fprintf(out, "%s\n", path)
	fmt.Fprintf(out, "  format:  %s\n", fr.Format())
	fmt.Fprintf(out, "  records: %d\n", fr.Len())
	if headerOnly {
		return nil
	}

	s, err := summary.Compute(fr.Reader, summary.Options{SampleSize: sampleSize})
	if err != nil {
		return err
	}
	printSummary(out, s)

	if plotDir == "" || s.Count == 0 {
		return nil
	}
	if err := os.MkdirAll(plotDir, 0755); err != nil {
		return fmt.Errorf("failed to create plot dir: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := s.PlotXY(filepath.Join(plotDir, base+"_xy.png")); err != nil {
		return err
	}
	return s.PlotZHistogram(filepath.Join(plotDir, base+"_z_hist.png"), 0)
}

func printSummary(out io.Writer, s *summary.Summary) {
	for _, a := range []struct {
		name string
		axis summary.Axis
	}{{"x", s.X}, {"y", s.Y}, {"z", s.Z}} {
		fmt.Fprintf(out, "  %s: min %.3f max %.3f mean %.3f std %.3f median %.3f\n",
			a.name, a.axis.Min, a.axis.Max, a.axis.Mean, a.axis.StdDev, a.axis.Median)
	}
	if len(s.Classification) == 0 {
		return
	}
	fmt.Fprintf(out, "  classification:\n")
	for _, c := range s.Classes() {
		n := s.Classification[c]
		fmt.Fprintf(out, "    %3d: %d (%.1f%%)\n", c, n, 100*float64(n)/float64(s.Count))
	}
	fmt.Fprintf(out, "  number of returns:\n")
	for r := 0; r <= 255; r++ {
		if n, ok := s.Returns[uint8(r)]; ok {
			fmt.Fprintf(out, "    %3d: %d\n", r, n)
		}
	}
}
