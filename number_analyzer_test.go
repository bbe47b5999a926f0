package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractNumbers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []float64
	}{
		{"Space separated", "1 2 3", []float64{1, 2, 3}},
		{"Comma separated", "1,2,3", []float64{1, 2, 3}},
		{"Newline separated", "1\n2\n3", []float64{1, 2, 3}},
		{"Decimals and negatives", "-1.5 2.25 -3", []float64{-1.5, 2.25, -3}},
		{"Mixed with text", "rated 4 out of 5", []float64{4, 5}},
		{"No numbers", "no digits here", []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractNumbers(tt.text))
		})
	}
}

func TestAnalyzeNumbers(t *testing.T) {
	stats := AnalyzeNumbers([]float64{1, 2, 4})
	if stats == nil {
		t.Fatal("AnalyzeNumbers returned nil")
	}

	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 2.33, stats.Average)
	assert.Equal(t, 1.53, stats.StdDev)
	assert.Equal(t, 2.0, stats.Median)
	assert.Equal(t, 1.0, stats.Min)
	assert.Equal(t, 4.0, stats.Max)
}

func TestAnalyzeNumbersQuantiles(t *testing.T) {
	numbers := make([]float64, 101)
	for i := range numbers {
		numbers[i] = float64(i)
	}
	stats := AnalyzeNumbers(numbers)

	assert.Equal(t, 25.0, stats.Quantiles[0.25])
	assert.Equal(t, 75.0, stats.Quantiles[0.75])
	assert.Equal(t, 50.0, stats.IQR)
	assert.Empty(t, stats.Outliers)
}

func TestAnalyzeNumbersOutliers(t *testing.T) {
	numbers := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100}
	stats := AnalyzeNumbers(numbers)
	assert.Contains(t, stats.Outliers, 100.0)
}

func TestAnalyzeNumbersEdgeCases(t *testing.T) {
	assert.Nil(t, AnalyzeNumbers(nil))
	assert.Nil(t, AnalyzeNumbers([]float64{}))

	single := AnalyzeNumbers([]float64{7})
	assert.Equal(t, 1, single.Count)
	assert.Equal(t, 7.0, single.Average)
	assert.Equal(t, 0.0, single.StdDev)
}

func TestFormatStats(t *testing.T) {
	assert.Equal(t, "No numbers found in the message", FormatStats(nil))

	out := FormatStats(AnalyzeNumbers([]float64{1, 2, 4}))
	assert.True(t, strings.Contains(out, "Count: 3"))
	assert.True(t, strings.Contains(out, "Mean: 2.33"))
	assert.True(t, strings.Contains(out, "Median: 2.00"))
}
