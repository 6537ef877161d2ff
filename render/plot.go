package render

import (
	"io"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/open-bus-tools/israel-bus-locator/analysis"
)

const plotTimeLayout = "2006-01-02 15:04:05"

// WritePlot renders the per-ride distance series as a single line chart
// with one labeled series per ride. The x-axis is the union of all
// observed times; rides without a sample at a given time show a gap.
func WritePlot(w io.Writer, series []analysis.Series) error {
	labels, index := unionTimeLabels(series)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Distance from Reference Point",
			Width:     "1200px",
			Height:    "800px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Distance from Reference Point Over Time - All Rides",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Recorded Time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Distance from Reference Point"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
	)

	line.SetXAxis(labels)
	for _, s := range series {
		// echarts renders "-" as a missing point.
		data := make([]opts.LineData, len(labels))
		for i := range data {
			data[i] = opts.LineData{Value: "-"}
		}
		for i, ts := range s.Times {
			data[index[ts.Format(plotTimeLayout)]] = opts.LineData{Value: s.Distances[i]}
		}
		line.AddSeries("Ride "+s.RideID, data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: true}))
	}
	return line.Render(w)
}

// unionTimeLabels collects every timestamp appearing in any series, sorted
// ascending, and returns the formatted labels plus a label -> position
// index.
func unionTimeLabels(series []analysis.Series) ([]string, map[string]int) {
	seen := map[string]time.Time{}
	for _, s := range series {
		for _, ts := range s.Times {
			seen[ts.Format(plotTimeLayout)] = ts
		}
	}
	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		return seen[labels[i]].Before(seen[labels[j]])
	})
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	return labels, index
}
