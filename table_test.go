package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTable(t *testing.T) {
	data := []byte("Timestamp,Satisfaction,Comment\n2024-01-01 10:00:00,5,great\n2024-01-01 10:05:00,3,ok\n")

	table, err := ParseTable(data)
	assert.NoError(t, err)
	assert.Equal(t, []string{"timestamp", "satisfaction", "comment"}, table.Columns)
	assert.Equal(t, 2, table.RowCount())
	assert.Equal(t, []string{"5", "3"}, table.Column(1))
}

func TestParseTableHeaderlessFirstRowKept(t *testing.T) {
	data := []byte("5,12\n3,45\n4,12\n")

	table, err := ParseTable(data)
	assert.NoError(t, err)
	assert.Equal(t, []string{"column_1", "column_2"}, table.Columns)
	assert.Equal(t, 3, table.RowCount())
	assert.Equal(t, "5", table.Rows[0][0])
}

func TestParseTableRaggedRowsPadded(t *testing.T) {
	data := []byte("name,age,city\nalice,30\nbob,25,berlin,extra\n")

	table, err := ParseTable(data)
	assert.NoError(t, err)
	assert.Equal(t, 2, table.RowCount())
	for _, row := range table.Rows {
		assert.Len(t, row, 3)
	}
	assert.Equal(t, "", table.Rows[0][2])
	assert.Equal(t, "berlin", table.Rows[1][2])
}

func TestParseTableEmpty(t *testing.T) {
	_, err := ParseTable(nil)
	assert.ErrorIs(t, err, ErrEmptyData)

	_, err = ParseTable([]byte("name,age\n"))
	assert.ErrorIs(t, err, ErrEmptyData)
}

func TestTableColumnIndex(t *testing.T) {
	data := []byte("a,b\n1,2\n")
	table, err := ParseTable(data)
	assert.NoError(t, err)
	assert.Equal(t, 1, table.ColumnIndex("b"))
	assert.Equal(t, -1, table.ColumnIndex("missing"))
}
