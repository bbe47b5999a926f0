package main

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pivolan/survey_dashboard/domain/models"
)

func surveyTable(rows int) models.Table {
	table := models.Table{Columns: []string{"rating", "line", "mood", "comment"}}
	lines := []string{"12", "45", "45", "7"}
	moods := []string{"happy", "neutral", "sad"}
	for i := 0; i < rows; i++ {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%.1f", float64(i%37)/3), // numerical
			lines[i%len(lines)],                  // categorical
			moods[i%len(moods)],                  // categorical
			fmt.Sprintf("free text %d", i),       // ignored, all unique
		})
	}
	return table
}

func TestDispatchChartsKinds(t *testing.T) {
	table := surveyTable(60)
	profiles := ClassifyTable(table, DefaultClassifyOptions())
	specs := DispatchCharts(table, profiles, DefaultDispatchOptions())

	kinds := map[models.ChartKind]int{}
	for _, s := range specs {
		kinds[s.Kind]++
	}
	assert.Equal(t, 1, kinds[models.ChartHistogram], "one numerical column")
	assert.Equal(t, 2, kinds[models.ChartBar], "two categorical columns")
	assert.Equal(t, 1, kinds[models.ChartHeatmap], "one categorical pair")
}

func TestDispatchPairCount(t *testing.T) {
	// N categorical columns must give exactly N*(N-1)/2 heatmaps.
	const n = 4
	table := models.Table{}
	for c := 0; c < n; c++ {
		table.Columns = append(table.Columns, fmt.Sprintf("question_%d", c))
	}
	answers := []string{"yes", "no", "maybe"}
	for i := 0; i < 30; i++ {
		row := make([]string, n)
		for c := 0; c < n; c++ {
			row[c] = answers[(i+c)%len(answers)]
		}
		table.Rows = append(table.Rows, row)
	}

	profiles := ClassifyTable(table, DefaultClassifyOptions())
	specs := DispatchCharts(table, profiles, DefaultDispatchOptions())

	pairs := map[string]int{}
	heatmaps := 0
	for _, s := range specs {
		if s.Kind == models.ChartHeatmap {
			heatmaps++
			pairs[s.Columns[0]+"|"+s.Columns[1]]++
		}
	}
	assert.Equal(t, n*(n-1)/2, heatmaps)
	for pair, count := range pairs {
		assert.Equal(t, 1, count, "pair %s emitted more than once", pair)
	}
}

func TestDispatchSkipsHighCardinalityHeatmaps(t *testing.T) {
	table := models.Table{Columns: []string{"many", "few"}}
	for i := 0; i < 60; i++ {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("value_%d", i%30), // 30 distinct, over the cap
			fmt.Sprintf("v%d", i%3),
		})
	}

	profiles := ClassifyTable(table, DefaultClassifyOptions())
	specs := DispatchCharts(table, profiles, DefaultDispatchOptions())
	for _, s := range specs {
		assert.NotEqual(t, models.ChartHeatmap, s.Kind)
	}
}

func TestBarSpecTopCategoriesWithOther(t *testing.T) {
	// 25 distinct values, cap at 20: expect 20 + "Other".
	var values []string
	for i := 0; i < 25; i++ {
		// value_0 appears most often, then value_1, etc.
		for j := 0; j <= 25-i; j++ {
			values = append(values, fmt.Sprintf("value_%d", i))
		}
	}

	spec, ok := barSpec("stop_name", values, 20)
	assert.True(t, ok)
	assert.Len(t, spec.Categories, 21)
	assert.Equal(t, "value_0", spec.Categories[0].Value)
	assert.Equal(t, "Other", spec.Categories[20].Value)

	for i := 1; i < 20; i++ {
		assert.GreaterOrEqual(t, spec.Categories[i-1].Count, spec.Categories[i].Count)
	}
}

func TestBarSpecOrderAndTies(t *testing.T) {
	values := []string{"bus", "tram", "bus", "metro", "tram", "bus", "walk"}
	spec, ok := barSpec("transport", values, 20)
	assert.True(t, ok)

	got := make([]string, 0, len(spec.Categories))
	for _, c := range spec.Categories {
		got = append(got, c.Value)
	}
	// tram before metro and walk by count, metro before walk by first seen
	assert.Equal(t, []string{"bus", "tram", "metro", "walk"}, got)
	assert.Equal(t, int64(3), spec.Categories[0].Count)
}

func TestHistogramSpecBins(t *testing.T) {
	var values []string
	for i := 0; i < 100; i++ {
		values = append(values, fmt.Sprintf("%d", i))
	}
	values = append(values, "", "n/a") // missing must not count

	spec, ok := histogramSpec("duration", values, 10)
	assert.True(t, ok)
	assert.Len(t, spec.Bins, 10)

	total := 0
	for _, b := range spec.Bins {
		total += b.Count
	}
	assert.Equal(t, 100, total)
	assert.InDelta(t, 49.5, spec.Mean, 0.001)
	assert.InDelta(t, 0.0, spec.Bins[0].RangeStart, 0.001)
	assert.InDelta(t, 99.0, spec.Bins[9].RangeEnd, 0.001)
}

func TestHistogramSpecSingleValue(t *testing.T) {
	spec, ok := histogramSpec("constant", []string{"5", "5", "5"}, 10)
	assert.True(t, ok)
	assert.Len(t, spec.Bins, 1)
	assert.Equal(t, 3, spec.Bins[0].Count)
}

func TestHeatmapSpecCells(t *testing.T) {
	table := models.Table{
		Columns: []string{"mood", "line"},
		Rows: [][]string{
			{"happy", "12"},
			{"happy", "12"},
			{"sad", "12"},
			{"happy", "45"},
			{"", "45"}, // missing, skipped
		},
	}
	spec, ok := heatmapSpec(table, "mood", "line")
	assert.True(t, ok)
	assert.Equal(t, []string{"happy", "sad"}, spec.YLabels)
	assert.Equal(t, []string{"12", "45"}, spec.XLabels)
	assert.Equal(t, 2, spec.Cells[0][0]) // happy/12
	assert.Equal(t, 1, spec.Cells[1][0]) // sad/12
	assert.Equal(t, 1, spec.Cells[0][1]) // happy/45
	assert.Equal(t, 0, spec.Cells[1][1]) // sad/45
}

func TestDispatchIsIdempotent(t *testing.T) {
	table := surveyTable(60)
	profiles1 := ClassifyTable(table, DefaultClassifyOptions())
	profiles2 := ClassifyTable(table, DefaultClassifyOptions())
	assert.True(t, reflect.DeepEqual(profiles1, profiles2))

	specs1 := DispatchCharts(table, profiles1, DefaultDispatchOptions())
	specs2 := DispatchCharts(table, profiles2, DefaultDispatchOptions())
	assert.True(t, reflect.DeepEqual(specs1, specs2))

	summary1 := Summarize(table, profiles1)
	summary2 := Summarize(table, profiles2)
	assert.True(t, reflect.DeepEqual(summary1, summary2))
}
