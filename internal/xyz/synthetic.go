package xyz

import (
	"math"
	"math/rand"
)

// ASPRS LAS classification codes used by the synthetic generator.
const (
	ClassGround          uint8 = 2
	ClassHighVegetation  uint8 = 5
	ClassBuilding        uint8 = 6
	ClassLowPointOutlier uint8 = 7
)

// SyntheticGenerator generates a synthetic airborne scan: a noisy ground
// disc with box-shaped buildings and spherical tree crowns.
type SyntheticGenerator struct {
	// Configuration
	AreaRadius     float64 // metres, radius of the scanned disc
	BuildingCount  int
	TreeCount      int
	GroundNoise    float64 // metres, stddev of ground height
	BuildingShare  float64 // fraction of points on buildings
	TreeShare      float64 // fraction of points in tree crowns
	OutlierPerMill int     // low outliers per thousand points

	rng       *rand.Rand
	buildings []syntheticBuilding
	trees     []syntheticTree
}

type syntheticBuilding struct {
	cx, cy, halfX, halfY, height float64
}

type syntheticTree struct {
	cx, cy, crownZ, radius float64
}

// NewSyntheticGenerator creates a generator with default settings. The
// same seed always produces the same points.
func NewSyntheticGenerator(seed int64) *SyntheticGenerator {
	return &SyntheticGenerator{
		AreaRadius:     100.0,
		BuildingCount:  8,
		TreeCount:      40,
		GroundNoise:    0.05,
		BuildingShare:  0.25,
		TreeShare:      0.15,
		OutlierPerMill: 1,
		rng:            rand.New(rand.NewSource(seed)),
	}
}

func (g *SyntheticGenerator) layout() {
	if g.buildings != nil || g.trees != nil {
		return
	}
	g.buildings = make([]syntheticBuilding, g.BuildingCount)
	for i := range g.buildings {
		x, y := g.pointInDisc(g.AreaRadius * 0.8)
		g.buildings[i] = syntheticBuilding{
			cx:     x,
			cy:     y,
			halfX:  4 + g.rng.Float64()*8,
			halfY:  4 + g.rng.Float64()*8,
			height: 3 + g.rng.Float64()*15,
		}
	}
	g.trees = make([]syntheticTree, g.TreeCount)
	for i := range g.trees {
		x, y := g.pointInDisc(g.AreaRadius * 0.9)
		radius := 1.5 + g.rng.Float64()*3
		g.trees[i] = syntheticTree{
			cx:     x,
			cy:     y,
			crownZ: radius + 2 + g.rng.Float64()*6,
			radius: radius,
		}
	}
}

// Next generates one point with metadata.
func (g *SyntheticGenerator) Next() Record {
	g.layout()

	if g.OutlierPerMill > 0 && g.rng.Intn(1000) < g.OutlierPerMill {
		x, y := g.pointInDisc(g.AreaRadius)
		return g.record(x, y, -5-g.rng.Float64()*20, ClassLowPointOutlier, 1, 1)
	}

	u := g.rng.Float64()
	switch {
	case u < g.BuildingShare && len(g.buildings) > 0:
		return g.buildingPoint()
	case u < g.BuildingShare+g.TreeShare && len(g.trees) > 0:
		return g.treePoint()
	default:
		x, y := g.pointInDisc(g.AreaRadius)
		return g.record(x, y, g.rng.NormFloat64()*g.GroundNoise, ClassGround, 1, 1)
	}
}

func (g *SyntheticGenerator) buildingPoint() Record {
	b := g.buildings[g.rng.Intn(len(g.buildings))]
	x := b.cx + (g.rng.Float64()*2-1)*b.halfX
	y := b.cy + (g.rng.Float64()*2-1)*b.halfY
	return g.record(x, y, b.height+g.rng.NormFloat64()*0.02, ClassBuilding, 1, 1)
}

// treePoint returns a return from inside a crown. Canopy pulses split into
// up to three returns; deeper returns sit lower in the crown.
func (g *SyntheticGenerator) treePoint() Record {
	t := g.trees[g.rng.Intn(len(g.trees))]
	returns := uint8(1 + g.rng.Intn(3))
	ret := uint8(1 + g.rng.Intn(int(returns)))

	dx, dy := g.pointInDisc(t.radius)
	depth := float64(ret-1) / float64(returns)
	h := math.Sqrt(math.Max(0, t.radius*t.radius-dx*dx-dy*dy))
	z := t.crownZ + h*(1-2*depth)
	return g.record(t.cx+dx, t.cy+dy, z, ClassHighVegetation, returns, ret)
}

func (g *SyntheticGenerator) pointInDisc(radius float64) (float64, float64) {
	r := radius * math.Sqrt(g.rng.Float64())
	theta := g.rng.Float64() * 2 * math.Pi
	return r * math.Cos(theta), r * math.Sin(theta)
}

func (g *SyntheticGenerator) record(x, y, z float64, class, returns, ret uint8) Record {
	return Record{
		X: x,
		Y: y,
		Z: z,
		Meta: &Meta{
			Classification:  class,
			NumberOfReturns: returns,
			ReturnNumber:    ret,
		},
	}
}

// Generate writes n synthetic points to w.
func (g *SyntheticGenerator) Generate(w *Writer, n int) error {
	for i := 0; i < n; i++ {
		if err := w.WriteRecord(g.Next()); err != nil {
			return err
		}
	}
	return nil
}
