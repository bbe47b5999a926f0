package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/pivolan/survey_dashboard/domain/models"
)

// ErrEmptyData means the source answered but carried zero rows or columns.
var ErrEmptyData = errors.New("no data available")

// ParseTable reads a CSV byte stream into a Table. The first row is treated
// as a header unless it looks like data, in which case column_N names are
// generated and the row is kept as data.
func ParseTable(data []byte) (models.Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // survey exports are often ragged
	reader.LazyQuotes = true

	firstRow, err := reader.Read()
	if err == io.EOF {
		return models.Table{}, ErrEmptyData
	}
	if err != nil {
		return models.Table{}, fmt.Errorf("parse csv header: %w", err)
	}

	analysis := AnalyzeHeaders(firstRow)
	if analysis == nil {
		return models.Table{}, ErrEmptyData
	}

	table := models.Table{Columns: analysis.Headers}
	if analysis.FirstRowIsData {
		table.Rows = append(table.Rows, padRow(analysis.FirstDataRow, len(table.Columns)))
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Table{}, fmt.Errorf("parse csv: %w", err)
		}
		table.Rows = append(table.Rows, padRow(record, len(table.Columns)))
	}

	if table.RowCount() == 0 || table.ColumnCount() == 0 {
		return models.Table{}, ErrEmptyData
	}
	return table, nil
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row[:width]
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
