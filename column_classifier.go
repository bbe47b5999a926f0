package main

import (
	"strconv"
	"strings"

	"github.com/pivolan/go_utils"
	"github.com/pivolan/survey_dashboard/domain/models"
)

type ClassifyOptions struct {
	// Numeric columns with this many or fewer distinct values are treated
	// as categorical, so a 1-5 satisfaction scale gets a bar chart instead
	// of a histogram.
	NumericDistinctThreshold int
}

func DefaultClassifyOptions() ClassifyOptions {
	return ClassifyOptions{NumericDistinctThreshold: 10}
}

// ClassifyTable profiles every column of the table. It never fails:
// columns that cannot be charted degrade to KindIgnored.
func ClassifyTable(table models.Table, opts ClassifyOptions) []models.ColumnProfile {
	profiles := make([]models.ColumnProfile, 0, table.ColumnCount())
	for i, name := range table.Columns {
		profiles = append(profiles, classifyColumn(name, table.Column(i), table.ColumnCount(), opts))
	}
	return profiles
}

func classifyColumn(name string, values []string, columnCount int, opts ClassifyOptions) models.ColumnProfile {
	nonMissing := make([]string, 0, len(values))
	missing := 0
	for _, v := range values {
		if isMissingValue(v) {
			missing++
			continue
		}
		nonMissing = append(nonMissing, strings.TrimSpace(v))
	}

	distinct := map[string]struct{}{}
	for _, v := range nonMissing {
		distinct[v] = struct{}{}
	}

	profile := models.ColumnProfile{
		Name:          name,
		Kind:          models.KindIgnored,
		DistinctCount: len(distinct),
		MissingCount:  missing,
	}

	if len(nonMissing) == 0 {
		return profile
	}
	// Timestamps and contact fields stay in the raw table but never chart.
	if isExcludedColumn(name) || isDateData(nonMissing) {
		return profile
	}
	// A constant column has nothing to show.
	if len(distinct) == 1 {
		return profile
	}

	if allNumeric(nonMissing) {
		if len(distinct) > opts.NumericDistinctThreshold {
			profile.Kind = models.KindNumerical
		} else {
			profile.Kind = models.KindCategorical
		}
		return profile
	}

	// Every value unique over more than one row smells like an identifier
	// or free text, unless it is the only column we have.
	if len(distinct) == len(values) && len(values) > 1 && columnCount > 1 {
		return profile
	}

	profile.Kind = models.KindCategorical
	return profile
}

func isMissingValue(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	return go_utils.InArray(strings.ToLower(v), []string{"null", "na", "n/a"})
}

func allNumeric(values []string) bool {
	for _, v := range values {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
	}
	return true
}

// isExcludedColumn matches cleaned header names that identify a response
// rather than answer a question.
func isExcludedColumn(name string) bool {
	name = strings.ToLower(name)
	if go_utils.InArray(name, []string{"timestamp", "email", "email_address", "id", "slug"}) {
		return true
	}
	return strings.HasPrefix(name, "timestamp") || strings.Contains(name, "email")
}
