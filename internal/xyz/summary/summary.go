// Package summary computes descriptive statistics over XYZB streams and
// renders them as plots.
package summary

import (
	"io"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/xyzb/internal/xyz"
)

// chunkSize is the number of values folded into the running moments at a
// time.
const chunkSize = 4096

// DefaultSampleSize is the reservoir size used when Options.SampleSize is 0.
const DefaultSampleSize = 50000

// Axis describes the distribution of one coordinate.
type Axis struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64 // sample standard deviation

	// Median is computed from the reservoir sample and is exact only when
	// the whole stream fits in the sample.
	Median float64
}

// Summary describes a whole stream.
type Summary struct {
	Format  xyz.Format
	Count   uint64
	X, Y, Z Axis

	// Classification and Returns count records by classification code and
	// by number of returns. Both are empty for FormatXYZ streams.
	Classification map[uint8]uint64
	Returns        map[uint8]uint64

	// Sample is a uniform random sample of the records, used for plots.
	Sample []xyz.Record
}

// Options tunes Compute.
type Options struct {
	SampleSize int
	Seed       int64
}

// moments accumulates min, max, mean and the sum of squared deviations
// over chunks of values.
type moments struct {
	n        float64
	mean, m2 float64
	min, max float64
}

func (m *moments) add(chunk []float64) {
	if len(chunk) == 0 {
		return
	}
	nb := float64(len(chunk))
	mean, variance := stat.MeanVariance(chunk, nil)
	m2b := 0.0
	if len(chunk) > 1 {
		m2b = variance * (nb - 1)
	}

	lo, hi := floats.Min(chunk), floats.Max(chunk)
	if m.n == 0 {
		m.min, m.max = lo, hi
	} else {
		m.min = math.Min(m.min, lo)
		m.max = math.Max(m.max, hi)
	}

	n := m.n + nb
	delta := mean - m.mean
	m.mean += delta * nb / n
	m.m2 += m2b + delta*delta*m.n*nb/n
	m.n = n
}

func (m *moments) axis() Axis {
	a := Axis{Min: m.min, Max: m.max, Mean: m.mean}
	if m.n > 1 {
		a.StdDev = math.Sqrt(m.m2 / (m.n - 1))
	}
	return a
}

// Compute reads the remaining records of r and summarises them. Memory use
// is bounded by the chunk and sample sizes, not by the stream length.
func Compute(r *xyz.Reader, opts Options) (*Summary, error) {
	sampleSize := opts.SampleSize
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	s := &Summary{
		Format:         r.Format(),
		Classification: make(map[uint8]uint64),
		Returns:        make(map[uint8]uint64),
		Sample:         make([]xyz.Record, 0, min(uint64(sampleSize), r.Remaining())),
	}

	var mx, my, mz moments
	xs := make([]float64, 0, chunkSize)
	ys := make([]float64, 0, chunkSize)
	zs := make([]float64, 0, chunkSize)
	flush := func() {
		mx.add(xs)
		my.add(ys)
		mz.add(zs)
		xs, ys, zs = xs[:0], ys[:0], zs[:0]
	}

	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		xs = append(xs, rec.X)
		ys = append(ys, rec.Y)
		zs = append(zs, rec.Z)
		if len(xs) == chunkSize {
			flush()
		}

		if rec.Meta != nil {
			s.Classification[rec.Meta.Classification]++
			s.Returns[rec.Meta.NumberOfReturns]++
		}

		// Reservoir sampling (Algorithm R).
		if len(s.Sample) < sampleSize {
			s.Sample = append(s.Sample, rec)
		} else if j := rng.Int63n(int64(s.Count + 1)); j < int64(sampleSize) {
			s.Sample[j] = rec
		}
		s.Count++
	}
	flush()

	s.X, s.Y, s.Z = mx.axis(), my.axis(), mz.axis()
	if len(s.Sample) > 0 {
		s.X.Median = sampleMedian(s.Sample, func(r xyz.Record) float64 { return r.X })
		s.Y.Median = sampleMedian(s.Sample, func(r xyz.Record) float64 { return r.Y })
		s.Z.Median = sampleMedian(s.Sample, func(r xyz.Record) float64 { return r.Z })
	}
	return s, nil
}

func sampleMedian(sample []xyz.Record, value func(xyz.Record) float64) float64 {
	vals := make([]float64, len(sample))
	for i, r := range sample {
		vals[i] = value(r)
	}
	sort.Float64s(vals)
	return stat.Quantile(0.5, stat.Empirical, vals, nil)
}

// Classes returns the classification codes present, in ascending order.
func (s *Summary) Classes() []uint8 {
	classes := make([]uint8, 0, len(s.Classification))
	for c := range s.Classification {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	return classes
}
