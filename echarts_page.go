package main

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pivolan/survey_dashboard/domain/models"
)

// RenderChartsPage renders every chart spec of the snapshot into one
// scrollable go-echarts page.
func RenderChartsPage(w io.Writer, title string, specs []models.ChartSpec) error {
	page := components.NewPage()
	page.PageTitle = title
	page.SetLayout(components.PageFlexLayout)

	for _, spec := range specs {
		switch spec.Kind {
		case models.ChartHistogram:
			page.AddCharts(histogramChart(spec))
		case models.ChartBar:
			page.AddCharts(barChart(spec))
		case models.ChartHeatmap:
			page.AddCharts(heatmapChart(spec))
		}
	}

	return page.Render(w)
}

// histogramChart draws the bin counts as bars with a smoothed density
// curve on top, the dashboard equivalent of histplot(kde=True).
func histogramChart(spec models.ChartSpec) components.Charter {
	labels := make([]string, 0, len(spec.Bins))
	barData := make([]opts.BarData, 0, len(spec.Bins))
	lineData := make([]opts.LineData, 0, len(spec.Bins))

	total := 0
	width := 0.0
	if len(spec.Bins) > 0 {
		width = spec.Bins[0].RangeEnd - spec.Bins[0].RangeStart
	}
	for _, bin := range spec.Bins {
		total += bin.Count
	}

	for _, bin := range spec.Bins {
		labels = append(labels, fmt.Sprintf("%.1f-%.1f", bin.RangeStart, bin.RangeEnd))
		barData = append(barData, opts.BarData{Value: bin.Count})
		lineData = append(lineData, opts.LineData{Value: density(bin.Count, total, width)})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    spec.Title,
			Subtitle: fmt.Sprintf("mean %.2f", spec.Mean),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).AddSeries("responses", barData)

	line := charts.NewLine()
	line.SetXAxis(labels).AddSeries("density", lineData,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	bar.Overlap(line)
	return bar
}

func barChart(spec models.ChartSpec) components.Charter {
	labels := make([]string, 0, len(spec.Categories))
	data := make([]opts.BarData, 0, len(spec.Categories))
	for _, c := range spec.Categories {
		labels = append(labels, truncateLabel(c.Value))
		data = append(data, opts.BarData{Value: c.Count})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).AddSeries("responses", data)
	return bar
}

func heatmapChart(spec models.ChartSpec) components.Charter {
	xLabels := make([]interface{}, 0, len(spec.XLabels))
	for _, x := range spec.XLabels {
		xLabels = append(xLabels, truncateLabel(x))
	}
	yLabels := make([]interface{}, 0, len(spec.YLabels))
	for _, y := range spec.YLabels {
		yLabels = append(yLabels, truncateLabel(y))
	}

	maxCount := 0
	data := make([]opts.HeatMapData, 0, len(spec.XLabels)*len(spec.YLabels))
	for y := range spec.YLabels {
		for x := range spec.XLabels {
			count := spec.Cells[y][x]
			if count > maxCount {
				maxCount = count
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{x, y, count}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: xLabels}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: yLabels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxCount),
		}),
	)
	hm.AddSeries("count", data)
	return hm
}

func density(count, total int, binWidth float64) float64 {
	if total == 0 || binWidth == 0 {
		return 0
	}
	return float64(count) / (float64(total) * binWidth)
}
