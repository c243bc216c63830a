package summary

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/xyzb/internal/xyz"
)

// classColors maps ASPRS classification codes to plot colours. Codes not
// listed are drawn grey.
var classColors = map[uint8]color.Color{
	xyz.ClassGround:          color.RGBA{R: 150, G: 110, B: 60, A: 255},
	xyz.ClassHighVegetation:  color.RGBA{R: 40, G: 150, B: 50, A: 255},
	xyz.ClassBuilding:        color.RGBA{R: 200, G: 50, B: 50, A: 255},
	xyz.ClassLowPointOutlier: color.RGBA{R: 120, G: 0, B: 160, A: 255},
}

var defaultColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// PlotXY saves a top-down scatter plot of the sample to path. Points are
// coloured by classification when the stream carries metadata. The image
// format follows the file extension (png, svg, pdf, ...).
func (s *Summary) PlotXY(path string) error {
	if len(s.Sample) == 0 {
		return fmt.Errorf("no points to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("XY (%d of %d points)", len(s.Sample), s.Count)
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	groups := make(map[uint8]plotter.XYs)
	var bare plotter.XYs
	for _, r := range s.Sample {
		if r.Meta == nil {
			bare = append(bare, plotter.XY{X: r.X, Y: r.Y})
			continue
		}
		c := r.Meta.Classification
		groups[c] = append(groups[c], plotter.XY{X: r.X, Y: r.Y})
	}

	if len(bare) > 0 {
		if err := addScatter(p, bare, defaultColor, ""); err != nil {
			return err
		}
	}
	for _, c := range s.Classes() {
		pts, ok := groups[c]
		if !ok {
			continue
		}
		col, ok := classColors[c]
		if !ok {
			col = defaultColor
		}
		if err := addScatter(p, pts, col, fmt.Sprintf("class %d", c)); err != nil {
			return err
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(10*vg.Inch, 10*vg.Inch, path); err != nil {
		return fmt.Errorf("save xy plot: %w", err)
	}
	return nil
}

func addScatter(p *plot.Plot, pts plotter.XYs, col color.Color, label string) error {
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Color = col
	sc.GlyphStyle.Radius = vg.Points(0.6)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc)
	if label != "" {
		p.Legend.Add(label, sc)
	}
	return nil
}

// PlotZHistogram saves a histogram of sampled heights to path.
func (s *Summary) PlotZHistogram(path string, bins int) error {
	if len(s.Sample) == 0 {
		return fmt.Errorf("no points to plot")
	}
	if bins <= 0 {
		bins = 50
	}

	vals := make(plotter.Values, len(s.Sample))
	for i, r := range s.Sample {
		vals[i] = r.Z
	}

	p := plot.New()
	p.Title.Text = "Height distribution"
	p.X.Label.Text = "Z (m)"
	p.Y.Label.Text = "Points"

	h, err := plotter.NewHist(vals, bins)
	if err != nil {
		return err
	}
	h.FillColor = color.RGBA{R: 70, G: 110, B: 180, A: 255}
	p.Add(h)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save z histogram: %w", err)
	}
	return nil
}
