// Package report summarizes an ingested simulation log for the CLI.
package report

import (
	"io"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/printsim/internal/ingest"
)

// Stats describes a sample.
type Stats struct {
	Count  int     `yaml:"count"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"stddev"`
	Median float64 `yaml:"median"`
}

// Report is the summary printed by `printsim info`.
type Report struct {
	Source      string  `yaml:"source,omitempty"`
	Frames      int     `yaml:"frames"`
	Actors      int     `yaml:"actors"`
	Polylines   int     `yaml:"polylines"`
	ModelHeight float64 `yaml:"model_height"`
	GradientTop float64 `yaml:"gradient_top"`

	HeadHeight        Stats `yaml:"head_height"`
	PolylinesPerFrame Stats `yaml:"polylines_per_frame"`
	SegmentLength     Stats `yaml:"segment_length"`

	// Per-frame series for charts
	FrameHeights   []float64 `yaml:"-"`
	FramePolylines []float64 `yaml:"-"`
}

// Summarize builds a report from an ingestion result.
func Summarize(source string, res *ingest.Result) *Report {
	r := &Report{
		Source:      source,
		Frames:      res.FrameCount,
		Actors:      res.Actors(),
		Polylines:   res.Paths.Polylines(),
		ModelHeight: res.ModelHeight,
		GradientTop: res.Calibration.Max,
	}

	var heights []float64
	r.FrameHeights = make([]float64, res.FrameCount)
	for _, track := range res.Tracks {
		for i, k := range track.Keyframes() {
			heights = append(heights, k.Y)
			// Keyframe i+1 is the pose after frame i.
			if f := i - 1; f >= 0 && f < res.FrameCount {
				r.FrameHeights[f] = max(r.FrameHeights[f], k.Y)
			}
		}
	}
	r.HeadHeight = describe(heights)

	var lengths []float64
	r.FramePolylines = make([]float64, res.FrameCount)
	for f := 0; f < res.FrameCount; f++ {
		g := res.Paths.At(f + 1)
		r.FramePolylines[f] = float64(g.Len())
		for _, pl := range g.Polylines() {
			for i := 1; i < len(pl.Points); i++ {
				lengths = append(lengths, float64(pl.Points[i].Distance(pl.Points[i-1])))
			}
		}
	}
	r.PolylinesPerFrame = describe(r.FramePolylines)
	r.SegmentLength = describe(lengths)

	return r
}

// WriteYAML writes the report as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

func describe(xs []float64) Stats {
	if len(xs) == 0 {
		return Stats{}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	s := Stats{
		Count:  len(sorted),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}
