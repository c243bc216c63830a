// Package config loads the JSON settings used by the command-line tools.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/xyzb/internal/xyz"
)

// GeneratorConfig holds the settings for synthetic point-cloud generation.
// Every field is optional; omitted fields keep the generator defaults, so
// partial configs are safe.
type GeneratorConfig struct {
	Points *int    `json:"points,omitempty"`
	Seed   *int64  `json:"seed,omitempty"`
	Format *string `json:"format,omitempty"` // "xyz" or "xyz+meta"

	// Scene params
	AreaRadius     *float64 `json:"area_radius,omitempty"`
	BuildingCount  *int     `json:"building_count,omitempty"`
	TreeCount      *int     `json:"tree_count,omitempty"`
	GroundNoise    *float64 `json:"ground_noise,omitempty"`
	BuildingShare  *float64 `json:"building_share,omitempty"`
	TreeShare      *float64 `json:"tree_share,omitempty"`
	OutlierPerMill *int     `json:"outlier_per_mill,omitempty"`
}

// maxConfigSize caps config files at 1MB.
const maxConfigSize = 1 * 1024 * 1024

// LoadGeneratorConfig loads a GeneratorConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadGeneratorConfig(path string) (*GeneratorConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxConfigSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxConfigSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &GeneratorConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *GeneratorConfig) Validate() error {
	if c.Points != nil && *c.Points < 0 {
		return fmt.Errorf("points must be non-negative, got %d", *c.Points)
	}
	if c.Format != nil {
		if _, err := xyz.FormatFromString(*c.Format); err != nil {
			return fmt.Errorf("invalid format: %w", err)
		}
	}
	if c.AreaRadius != nil && *c.AreaRadius <= 0 {
		return fmt.Errorf("area_radius must be positive, got %f", *c.AreaRadius)
	}
	if c.BuildingCount != nil && *c.BuildingCount < 0 {
		return fmt.Errorf("building_count must be non-negative, got %d", *c.BuildingCount)
	}
	if c.TreeCount != nil && *c.TreeCount < 0 {
		return fmt.Errorf("tree_count must be non-negative, got %d", *c.TreeCount)
	}
	if c.GroundNoise != nil && *c.GroundNoise < 0 {
		return fmt.Errorf("ground_noise must be non-negative, got %f", *c.GroundNoise)
	}

	buildingShare := c.getFloat(c.BuildingShare, 0)
	treeShare := c.getFloat(c.TreeShare, 0)
	if buildingShare < 0 || treeShare < 0 || buildingShare+treeShare > 1 {
		return fmt.Errorf("building_share and tree_share must be non-negative and sum to at most 1, got %f and %f",
			buildingShare, treeShare)
	}

	if c.OutlierPerMill != nil && (*c.OutlierPerMill < 0 || *c.OutlierPerMill > 1000) {
		return fmt.Errorf("outlier_per_mill must be between 0 and 1000, got %d", *c.OutlierPerMill)
	}
	return nil
}

func (c *GeneratorConfig) getFloat(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// GetPoints returns the points value or the default.
func (c *GeneratorConfig) GetPoints() int {
	if c.Points == nil {
		return 100000
	}
	return *c.Points
}

// GetSeed returns the seed value or the default.
func (c *GeneratorConfig) GetSeed() int64 {
	if c.Seed == nil {
		return 1
	}
	return *c.Seed
}

// GetFormat returns the record format or the default (xyz+meta).
func (c *GeneratorConfig) GetFormat() xyz.Format {
	if c.Format == nil {
		return xyz.FormatXYZMeta
	}
	f, err := xyz.FormatFromString(*c.Format)
	if err != nil {
		return xyz.FormatXYZMeta // default on parse error
	}
	return f
}

// Apply copies the scene params that are set onto g.
func (c *GeneratorConfig) Apply(g *xyz.SyntheticGenerator) {
	if c.AreaRadius != nil {
		g.AreaRadius = *c.AreaRadius
	}
	if c.BuildingCount != nil {
		g.BuildingCount = *c.BuildingCount
	}
	if c.TreeCount != nil {
		g.TreeCount = *c.TreeCount
	}
	if c.GroundNoise != nil {
		g.GroundNoise = *c.GroundNoise
	}
	if c.BuildingShare != nil {
		g.BuildingShare = *c.BuildingShare
	}
	if c.TreeShare != nil {
		g.TreeShare = *c.TreeShare
	}
	if c.OutlierPerMill != nil {
		g.OutlierPerMill = *c.OutlierPerMill
	}
}
