package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pivolan/survey_dashboard/domain/models"
)

type DispatchOptions struct {
	HistogramBins         int
	MaxBarCategories      int
	HeatmapCardinalityCap int
}

func DefaultDispatchOptions() DispatchOptions {
	return DispatchOptions{
		HistogramBins:         10,
		MaxBarCategories:      20,
		HeatmapCardinalityCap: 15,
	}
}

// DispatchCharts routes every profiled column to a chart spec: numerical
// columns get a histogram, categorical columns a frequency bar chart, and
// every unordered pair of categorical columns a co-occurrence heatmap.
// Pure function, rendering happens elsewhere.
func DispatchCharts(table models.Table, profiles []models.ColumnProfile, opts DispatchOptions) []models.ChartSpec {
	var specs []models.ChartSpec

	for _, p := range profiles {
		idx := table.ColumnIndex(p.Name)
		if idx < 0 {
			continue
		}
		switch p.Kind {
		case models.KindNumerical:
			if spec, ok := histogramSpec(p.Name, table.Column(idx), opts.HistogramBins); ok {
				specs = append(specs, spec)
			}
		case models.KindCategorical:
			if spec, ok := barSpec(p.Name, table.Column(idx), opts.MaxBarCategories); ok {
				specs = append(specs, spec)
			}
		}
	}

	// Unordered categorical pairs, each emitted once.
	categorical := make([]models.ColumnProfile, 0, len(profiles))
	for _, p := range profiles {
		if p.Kind == models.KindCategorical {
			categorical = append(categorical, p)
		}
	}
	for i := 0; i < len(categorical); i++ {
		for j := i + 1; j < len(categorical); j++ {
			a, b := categorical[i], categorical[j]
			if a.DistinctCount > opts.HeatmapCardinalityCap || b.DistinctCount > opts.HeatmapCardinalityCap {
				continue
			}
			if spec, ok := heatmapSpec(table, a.Name, b.Name); ok {
				specs = append(specs, spec)
			}
		}
	}

	return specs
}

func histogramSpec(name string, values []string, binCount int) (models.ChartSpec, bool) {
	numbers := numericValues(values)
	if len(numbers) == 0 {
		return models.ChartSpec{}, false
	}
	if binCount <= 0 {
		binCount = 10
	}

	min, max := numbers[0], numbers[0]
	sum := 0.0
	for _, n := range numbers {
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
		sum += n
	}

	spec := models.ChartSpec{
		Kind:    models.ChartHistogram,
		Title:   chartTitle(name),
		Columns: []string{name},
		Mean:    sum / float64(len(numbers)),
	}

	if min == max {
		spec.Bins = []models.HistogramData{{RangeStart: min, RangeEnd: max, Count: len(numbers)}}
		return spec, true
	}

	width := (max - min) / float64(binCount)
	bins := make([]models.HistogramData, binCount)
	for i := range bins {
		bins[i].RangeStart = min + float64(i)*width
		bins[i].RangeEnd = min + float64(i+1)*width
	}
	for _, n := range numbers {
		i := int((n - min) / width)
		if i >= binCount { // max value lands in the last bin
			i = binCount - 1
		}
		bins[i].Count++
	}
	spec.Bins = bins
	return spec, true
}

func barSpec(name string, values []string, maxCategories int) (models.ChartSpec, bool) {
	counts := frequencyCounts(values)
	if len(counts) == 0 {
		return models.ChartSpec{}, false
	}

	if maxCategories > 0 && len(counts) > maxCategories {
		var other int64
		for _, c := range counts[maxCategories:] {
			other += c.Count
		}
		counts = append(counts[:maxCategories:maxCategories], models.ValueCount{Value: "Other", Count: other})
	}

	return models.ChartSpec{
		Kind:       models.ChartBar,
		Title:      chartTitle(name),
		Columns:    []string{name},
		Categories: counts,
	}, true
}

func heatmapSpec(table models.Table, colA, colB string) (models.ChartSpec, bool) {
	ia, ib := table.ColumnIndex(colA), table.ColumnIndex(colB)
	if ia < 0 || ib < 0 {
		return models.ChartSpec{}, false
	}
	valuesA, valuesB := table.Column(ia), table.Column(ib)

	yLabels := distinctInOrder(valuesA)
	xLabels := distinctInOrder(valuesB)
	if len(yLabels) == 0 || len(xLabels) == 0 {
		return models.ChartSpec{}, false
	}

	yIndex := labelIndex(yLabels)
	xIndex := labelIndex(xLabels)
	cells := make([][]int, len(yLabels))
	for i := range cells {
		cells[i] = make([]int, len(xLabels))
	}
	for row := range valuesA {
		a, b := strings.TrimSpace(valuesA[row]), strings.TrimSpace(valuesB[row])
		if isMissingValue(a) || isMissingValue(b) {
			continue
		}
		cells[yIndex[a]][xIndex[b]]++
	}

	return models.ChartSpec{
		Kind:    models.ChartHeatmap,
		Title:   fmt.Sprintf("%s vs %s", chartTitle(colA), chartTitle(colB)),
		Columns: []string{colA, colB},
		XLabels: xLabels,
		YLabels: yLabels,
		Cells:   cells,
	}, true
}

// frequencyCounts counts non-missing values, ordered by descending count
// with ties kept in first-seen order.
func frequencyCounts(values []string) []models.ValueCount {
	counts := map[string]int64{}
	var order []string
	total := int64(0)
	for _, v := range values {
		v = strings.TrimSpace(v)
		if isMissingValue(v) {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
		total++
	}

	result := make([]models.ValueCount, 0, len(order))
	for _, v := range order {
		percent := 0.0
		if total > 0 {
			percent = float64(counts[v]) / float64(total) * 100
		}
		result = append(result, models.ValueCount{Value: v, Count: counts[v], Percent: percent})
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Count > result[j].Count })
	return result
}

func distinctInOrder(values []string) []string {
	seen := map[string]struct{}{}
	var order []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if isMissingValue(v) {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			order = append(order, v)
		}
	}
	return order
}

func labelIndex(labels []string) map[string]int {
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	return index
}

func numericValues(values []string) []float64 {
	numbers := make([]float64, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if isMissingValue(v) {
			continue
		}
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			numbers = append(numbers, n)
		}
	}
	return numbers
}

// chartTitle makes a column name readable again and keeps long survey
// questions from blowing up the layout.
func chartTitle(name string) string {
	title := strings.ReplaceAll(name, "_", " ")
	if len(title) > 80 {
		title = title[:77] + "..."
	}
	return title
}
