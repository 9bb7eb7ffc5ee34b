package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteHTML renders per-frame charts of print head height and printed
// polylines as a standalone HTML page.
func (r *Report) WriteHTML(w io.Writer) error {
	x := make([]string, r.Frames)
	for i := range x {
		x[i] = strconv.Itoa(i)
	}

	heights := make([]opts.LineData, len(r.FrameHeights))
	for i, h := range r.FrameHeights {
		heights[i] = opts.LineData{Value: h}
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "printsim", Width: "100%", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Print head height", Subtitle: r.subtitle()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "frame", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "height"}),
	)
	line.SetXAxis(x).AddSeries("max head height", heights)

	printed := make([]opts.BarData, len(r.FramePolylines))
	for i, n := range r.FramePolylines {
		printed[i] = opts.BarData{Value: n}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "320px"}),
		charts.WithTitleOpts(opts.Title{Title: "Polylines printed per frame"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).AddSeries("polylines", printed)

	page := components.NewPage()
	page.PageTitle = "printsim report"
	page.AddCharts(line, bar)
	return page.Render(w)
}

func (r *Report) subtitle() string {
	s := fmt.Sprintf("frames=%d actors=%d polylines=%d", r.Frames, r.Actors, r.Polylines)
	if r.Source != "" {
		s = r.Source + "  " + s
	}
	return s
}
