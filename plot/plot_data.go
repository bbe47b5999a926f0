package plot

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pivolan/survey_dashboard/domain/models"
)

// categoryData feeds a frequency bar chart: one labeled bar per category.
type categoryData struct {
	categories []models.ValueCount
	nameGraph  string
}

func newCategoryData(categories []models.ValueCount, nameGraph string) categoryData {
	return categoryData{categories: categories, nameGraph: nameGraph}
}

func (d categoryData) GetNameGraph() string {
	return d.nameGraph
}

func (d categoryData) getYValues() []float64 {
	values := make([]float64, 0, len(d.categories))
	for _, c := range d.categories {
		values = append(values, float64(c.Count))
	}
	return values
}

func (d categoryData) generateBarValues() []chart.Value {
	var bars []chart.Value
	for _, c := range d.categories {
		label := c.Value
		if len(label) > 50 {
			label = label[:47] + "..."
		}
		bars = append(bars, chart.Value{
			Value: float64(c.Count),
			Label: label,
			Style: chart.Style{
				FillColor: drawing.ColorPurple.WithAlpha(100),
			},
		})
	}
	return bars
}

// histogramData feeds a distribution bar chart: one bar per value range.
type histogramData struct {
	bins      []models.HistogramData
	nameGraph string
}

func newHistogramData(bins []models.HistogramData, nameGraph string) histogramData {
	return histogramData{bins: bins, nameGraph: nameGraph}
}

func (d histogramData) GetNameGraph() string {
	return d.nameGraph
}

func (d histogramData) getYValues() []float64 {
	values := make([]float64, 0, len(d.bins))
	for _, b := range d.bins {
		values = append(values, float64(b.Count))
	}
	return values
}

func (d histogramData) generateBarValues() []chart.Value {
	var bars []chart.Value
	for _, b := range d.bins {
		bars = append(bars, chart.Value{
			Value: float64(b.Count),
			Label: fmt.Sprintf("%.f-%.f", b.RangeStart, b.RangeEnd),
			Style: chart.Style{
				FillColor: drawing.ColorBlue.WithAlpha(100),
			},
		})
	}
	return bars
}

func (d categoryData) calculateChartDimensions(minBarWidth float64) (width, height int) {
	return chartDimensions(len(d.categories), minBarWidth)
}

func (d histogramData) calculateChartDimensions(minBarWidth float64) (width, height int) {
	return chartDimensions(len(d.bins), minBarWidth)
}

// chartDimensions sizes the canvas by bar count so few wide bars and many
// narrow bars both stay readable.
func chartDimensions(barCount int, minBarWidth float64) (width, height int) {
	if barCount <= 0 || minBarWidth <= 0 {
		return 0, 0
	}
	x := 1.1
	if barCount < 2 {
		x = 10.0
	} else if barCount < 10 {
		x = 3.0
	}

	const (
		paddingY     = 100
		spacingRatio = 0.2
		aspectRatio  = 9.0 / 16.0
	)

	barSpacing := minBarWidth * spacingRatio
	totalWidth := (minBarWidth+barSpacing)*float64(barCount) + paddingY
	width = int(totalWidth*x) + paddingY
	height = int(float64(width) * aspectRatio)
	return width, height
}

func findMaxValue(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	max := y[0]
	for _, v := range y {
		if v > max {
			max = v
		}
	}
	return max
}

// calculateGridStep picks a round grid step for the Y axis.
func calculateGridStep(maxValue float64) float64 {
	if maxValue <= 0 {
		return 0
	}
	if maxValue < 1e-10 {
		return 1e-10
	}

	magnitude := math.Pow(10, math.Floor(math.Log10(maxValue)))
	normalized := maxValue / magnitude

	var step float64
	switch {
	case normalized <= 1:
		step = 0.2
	case normalized <= 2:
		step = 0.5
	case normalized <= 5:
		step = 1.0
	default:
		step = 2.0
	}

	finalStep := step * magnitude
	if finalStep >= 1000 {
		return math.Round(finalStep/100) * 100
	}
	if finalStep >= 100 {
		return math.Round(finalStep/10) * 10
	}
	return finalStep
}

func customizePaddingXBottom(values []chart.Value) int {
	count := 0
	for _, v := range values {
		if len(v.Label) > count {
			count = len(v.Label)
		}
	}
	return count * 8
}
