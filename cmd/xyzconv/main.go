// Command xyzconv converts between .xyzb files and CloudCompare ASC text.
//
//	xyzconv -to asc in.xyzb out.asc
//	xyzconv -to xyzb -format xyz+meta in.asc out.xyzb
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/xyzb/internal/monitoring"
	"github.com/banshee-data/xyzb/internal/version"
	"github.com/banshee-data/xyzb/internal/xyz"
)

func main() {
	to := flag.String("to", "asc", "target: asc or xyzb")
	format := flag.String("format", "xyz+meta", "record format when writing xyzb: xyz or xyz+meta")
	verbose := flag.Bool("v", false, "enable debug logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	monitoring.SetDebug(*verbose)
	if flag.NArg() != 2 {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] input output\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	in, out := flag.Arg(0), flag.Arg(1)

	var (
		n   uint64
		err error
	)
	switch *to {
	case "asc":
		n, err = toASC(in, out)
	case "xyzb":
		var f xyz.Format
		if f, err = xyz.FormatFromString(*format); err == nil {
			n, err = toXYZB(in, out, f)
		}
	default:
		err = fmt.Errorf("unknown target %q", *to)
	}
	if err != nil {
		log.Fatalf("Conversion failed: %v", err)
	}
	log.Printf("Converted %d points to %s", n, out)
}

func toASC(in, out string) (uint64, error) {
	fr, err := xyz.Open(in)
	if err != nil {
		return 0, err
	}
	defer fr.Close()

	f, err := os.Create(out)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", out, err)
	}
	n, err := xyz.ExportASC(fr.Reader, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func toXYZB(in, out string, format xyz.Format) (uint64, error) {
	src, err := os.Open(in)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", in, err)
	}
	defer src.Close()

	w, err := xyz.Create(out, format)
	if err != nil {
		return 0, err
	}
	n, err := xyz.ImportASC(bufio.NewReader(src), w.Writer)
	if err != nil {
		w.Abort()
		return n, err
	}
	return n, w.Close()
}
