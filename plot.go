package macrots

import (
	"io"
	"math"
	"os"

	"github.com/econforge/macrots/period"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LinePeriodSeries generates an echart multi-line chart for values aligned on
// a period range. Each series in y must have one value per period of rng;
// missing values render as gaps.
func LinePeriodSeries(title string, seriesName []string, rng period.Range, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	labels := make([]string, 0, rng.Len())
	for _, p := range rng.Periods() {
		labels = append(labels, p.String())
	}

	lineData := make([][]opts.LineData, len(y))
	for i := range y {
		lineData[i] = make([]opts.LineData, 0, len(y[i]))
		for j := range y[i] {
			if math.IsNaN(y[i][j]) {
				lineData[i] = append(lineData[i], opts.LineData{Value: nil})
				continue
			}
			lineData[i] = append(lineData[i], opts.LineData{Value: y[i][j]})
		}
	}

	line = line.SetXAxis(labels)
	for i, name := range seriesName {
		line = line.AddSeries(name, lineData[i])
	}

	return line
}

// Plot renders the assembled array to an html file, one line per included
// name using its first alternative column.
func (r *Result) Plot(path string) error {
	cols := make([][]float64, 0, len(r.Names))
	names := make([]string, 0, len(r.Names))
	for j, name := range r.Requested {
		if !r.Included[j] {
			continue
		}
		col, err := r.Column(j)
		if err != nil {
			return err
		}
		cols = append(cols, col)
		names = append(names, name)
	}

	page := components.NewPage()
	page.AddCharts(
		LinePeriodSeries("Assembled Series", names, r.Range, cols),
	)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	return page.Render(io.MultiWriter(file))
}
