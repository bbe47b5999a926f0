package plot

import "github.com/wcharczuk/go-chart/v2"

type dataForGraph interface {
	GetNameGraph() string
	getYValues() []float64
	generateBarValues() []chart.Value
	calculateChartDimensions(minBarWidth float64) (width, height int)
}
