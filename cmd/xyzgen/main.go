// Command xyzgen generates synthetic .xyzb point clouds for testing.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/banshee-data/xyzb/internal/config"
	"github.com/banshee-data/xyzb/internal/monitoring"
	"github.com/banshee-data/xyzb/internal/version"
	"github.com/banshee-data/xyzb/internal/xyz"
)

func main() {
	output := flag.String("o", "sample"+xyz.FileExtension, "output path")
	configPath := flag.String("config", "", "optional generator config (.json)")
	points := flag.Int("n", -1, "number of points (overrides config)")
	seed := flag.Int64("seed", 0, "random seed (overrides config when non-zero)")
	format := flag.String("format", "", "record format: xyz or xyz+meta (overrides config)")
	verbose := flag.Bool("v", false, "enable debug logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	monitoring.SetDebug(*verbose)

	cfg := &config.GeneratorConfig{}
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadGeneratorConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *points >= 0 {
		cfg.Points = points
	}
	if *seed != 0 {
		cfg.Seed = seed
	}
	if *format != "" {
		cfg.Format = format
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	gen := xyz.NewSyntheticGenerator(cfg.GetSeed())
	cfg.Apply(gen)

	w, err := xyz.Create(*output, cfg.GetFormat())
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	if err := gen.Generate(w.Writer, cfg.GetPoints()); err != nil {
		w.Abort()
		log.Fatalf("Failed to generate points: %v", err)
	}
	if err := w.Close(); err != nil {
		log.Fatalf("Failed to finish output: %v", err)
	}
	log.Printf("✓ Created: %s (%d %s points)", *output, w.Count(), cfg.GetFormat())
}
