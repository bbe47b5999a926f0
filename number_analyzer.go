// number_analyzer.go
package main

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

type NumberStats struct {
	Count     int
	Average   float64
	StdDev    float64
	Median    float64
	Min       float64
	Max       float64
	Quantiles map[float64]float64
	IQR       float64
	Outliers  []float64
}

var numberPattern = regexp.MustCompile(`-?\d*\.?\d+`)

// ExtractNumbers pulls numbers out of free text, accepting spaces, commas
// and newlines as separators.
func ExtractNumbers(text string) []float64 {
	text = strings.ReplaceAll(text, ",", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	matches := numberPattern.FindAllString(text, -1)
	numbers := make([]float64, 0, len(matches))
	for _, match := range matches {
		if num, err := strconv.ParseFloat(match, 64); err == nil {
			numbers = append(numbers, num)
		}
	}
	return numbers
}

// calculateQuantile interpolates the p-quantile over a sorted slice.
func calculateQuantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}

	pos := p * float64(len(sorted)-1)
	floor := math.Floor(pos)
	ceil := math.Ceil(pos)

	if floor == ceil {
		return sorted[int(pos)]
	}

	lower := sorted[int(floor)]
	upper := sorted[int(ceil)]
	fraction := pos - floor

	return lower + fraction*(upper-lower)
}

// findOutliers flags values outside 1.5*IQR from the quartiles.
func findOutliers(numbers []float64, q1, q3, iqr float64) []float64 {
	outliers := make([]float64, 0)
	lowerBound := q1 - 1.5*iqr
	upperBound := q3 + 1.5*iqr

	for _, num := range numbers {
		if num < lowerBound || num > upperBound {
			outliers = append(outliers, num)
		}
	}
	return outliers
}

// AnalyzeNumbers computes descriptive statistics for a slice of numbers.
// Returns nil when there is nothing to analyze.
func AnalyzeNumbers(numbers []float64) *NumberStats {
	if len(numbers) == 0 {
		return nil
	}

	sorted := make([]float64, len(numbers))
	copy(sorted, numbers)
	sort.Float64s(sorted)

	sum := 0.0
	for _, num := range numbers {
		sum += num
	}
	avg := sum / float64(len(numbers))

	variance := 0.0
	for _, num := range numbers {
		variance += (num - avg) * (num - avg)
	}
	stddev := 0.0
	if len(numbers) > 1 {
		// sample standard deviation, same as pandas describe()
		stddev = math.Sqrt(variance / float64(len(numbers)-1))
	}

	var median float64
	if len(sorted)%2 == 0 {
		median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	} else {
		median = sorted[len(sorted)/2]
	}

	quantiles := make(map[float64]float64)
	quantileList := []float64{0.01, 0.025, 0.1, 0.25, 0.75, 0.9, 0.975, 0.99}
	for _, p := range quantileList {
		quantiles[p] = roundToTwo(calculateQuantile(sorted, p))
	}

	iqr := quantiles[0.75] - quantiles[0.25]
	outliers := findOutliers(numbers, quantiles[0.25], quantiles[0.75], iqr)

	return &NumberStats{
		Count:     len(numbers),
		Average:   roundToTwo(avg),
		StdDev:    roundToTwo(stddev),
		Median:    roundToTwo(median),
		Min:       roundToTwo(sorted[0]),
		Max:       roundToTwo(sorted[len(sorted)-1]),
		Quantiles: quantiles,
		IQR:       roundToTwo(iqr),
		Outliers:  outliers,
	}
}

// FormatStats renders stats as a plain-text report for the bot.
func FormatStats(stats *NumberStats) string {
	if stats == nil {
		return "No numbers found in the message"
	}

	outlierStr := ""
	if len(stats.Outliers) > 0 {
		outlierStr = fmt.Sprintf("\nOutliers: %.2f", stats.Outliers)
	}

	return fmt.Sprintf(`Number statistics:

Count: %d
Mean: %.2f
Std dev: %.2f
Median: %.2f
Min: %.2f
Max: %.2f

Quantiles:
1st percentile: %.2f
10th percentile: %.2f
25th percentile (Q1): %.2f
75th percentile (Q3): %.2f
90th percentile: %.2f
99th percentile: %.2f

Interquartile range (IQR): %.2f%s`,
		stats.Count,
		stats.Average,
		stats.StdDev,
		stats.Median,
		stats.Min,
		stats.Max,
		stats.Quantiles[0.01],
		stats.Quantiles[0.1],
		stats.Quantiles[0.25],
		stats.Quantiles[0.75],
		stats.Quantiles[0.9],
		stats.Quantiles[0.99],
		stats.IQR,
		outlierStr)
}

func roundToTwo(num float64) float64 {
	return math.Round(num*100) / 100
}
