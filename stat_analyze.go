package main

import (
	"github.com/pivolan/survey_dashboard/domain/models"
)

// ColumnSummary holds the descriptive statistics of one column. Numeric is
// nil for categorical columns, Frequencies is nil for numerical ones.
// InsufficientData marks columns with zero usable values for their class,
// which is a state to display, not an error.
type ColumnSummary struct {
	Profile          models.ColumnProfile
	Numeric          *NumberStats
	Frequencies      []models.ValueCount
	InsufficientData bool
}

type SummaryReport struct {
	TotalRows int
	Columns   []ColumnSummary
}

// Summarize computes per-column statistics for every charted column.
// Missing values never enter any statistic; a column whose values are all
// missing reports InsufficientData instead of zeros.
func Summarize(table models.Table, profiles []models.ColumnProfile) SummaryReport {
	report := SummaryReport{TotalRows: table.RowCount()}

	for _, p := range profiles {
		if p.Kind == models.KindIgnored {
			continue
		}
		idx := table.ColumnIndex(p.Name)
		if idx < 0 {
			continue
		}
		summary := ColumnSummary{Profile: p}

		switch p.Kind {
		case models.KindNumerical:
			summary.Numeric = AnalyzeNumbers(numericValues(table.Column(idx)))
			summary.InsufficientData = summary.Numeric == nil
		case models.KindCategorical:
			summary.Frequencies = frequencyCounts(table.Column(idx))
			summary.InsufficientData = len(summary.Frequencies) == 0
		}

		report.Columns = append(report.Columns, summary)
	}

	return report
}

// NumericColumns returns the numeric summaries in table order.
func (r SummaryReport) NumericColumns() []ColumnSummary {
	var out []ColumnSummary
	for _, c := range r.Columns {
		if c.Profile.Kind == models.KindNumerical {
			out = append(out, c)
		}
	}
	return out
}

// CategoricalColumns returns the frequency summaries in table order.
func (r SummaryReport) CategoricalColumns() []ColumnSummary {
	var out []ColumnSummary
	for _, c := range r.Columns {
		if c.Profile.Kind == models.KindCategorical {
			out = append(out, c)
		}
	}
	return out
}

// AverageRating is the mean of the means of all numerical columns, the
// headline number of the dashboard. Second return is false when there are
// no usable numerical columns.
func (r SummaryReport) AverageRating() (float64, bool) {
	sum := 0.0
	n := 0
	for _, c := range r.NumericColumns() {
		if c.Numeric == nil {
			continue
		}
		sum += c.Numeric.Average
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
