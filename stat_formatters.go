package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pivolan/survey_dashboard/domain/models"
)

// GenerateSummaryTable renders the numeric summaries as one ASCII table,
// one row per numerical column.
func GenerateSummaryTable(report SummaryReport) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Column", "Count", "Mean", "StdDev", "Min", "Q1", "Median", "Q3", "Max", "IQR"})

	for _, c := range report.NumericColumns() {
		if c.Numeric == nil {
			t.AppendRow(table.Row{c.Profile.Name, "insufficient data", "", "", "", "", "", "", "", ""})
			continue
		}
		s := c.Numeric
		t.AppendRow(table.Row{
			c.Profile.Name, s.Count, s.Average, s.StdDev, s.Min,
			s.Quantiles[0.25], s.Median, s.Quantiles[0.75], s.Max, s.IQR,
		})
	}

	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateFrequencyTables renders one ASCII table per categorical column,
// rows ordered by descending count.
func GenerateFrequencyTables(report SummaryReport) []string {
	var tables []string
	for _, c := range report.CategoricalColumns() {
		if c.InsufficientData {
			tables = append(tables, fmt.Sprintf("%s: insufficient data", c.Profile.Name))
			continue
		}

		t := table.NewWriter()
		t.SetTitle(c.Profile.Name)
		t.AppendHeader(table.Row{"Value", "Count", "Percent"})
		for _, vc := range c.Frequencies {
			t.AppendRow(table.Row{truncateLabel(vc.Value), vc.Count, fmt.Sprintf("%.1f%%", vc.Percent)})
		}
		t.SetStyle(table.StyleDefault)
		tables = append(tables, t.Render())
	}
	return tables
}

// GenerateCrosstabTable renders a heatmap spec as a contingency table.
func GenerateCrosstabTable(spec models.ChartSpec) string {
	if spec.Kind != models.ChartHeatmap {
		return ""
	}

	t := table.NewWriter()
	t.SetTitle(spec.Title)
	header := table.Row{""}
	for _, x := range spec.XLabels {
		header = append(header, truncateLabel(x))
	}
	t.AppendHeader(header)
	for y, label := range spec.YLabels {
		row := table.Row{truncateLabel(label)}
		for x := range spec.XLabels {
			row = append(row, spec.Cells[y][x])
		}
		t.AppendRow(row)
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateOverview is the short header block above the tables.
func GenerateOverview(report SummaryReport) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "Total responses: %d\n", report.TotalRows)
	if avg, ok := report.AverageRating(); ok {
		fmt.Fprintf(b, "Average rating: %.2f\n", avg)
	}
	fmt.Fprintf(b, "Questions analyzed: %d\n", len(report.Columns))
	return b.String()
}

// truncateLabel keeps long free-text answers from destroying table layout.
func truncateLabel(label string) string {
	if len(label) > 50 {
		return label[:47] + "..."
	}
	return label
}
