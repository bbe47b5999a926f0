package models

type ColumnKind string

const (
	KindNumerical   ColumnKind = "numerical"
	KindCategorical ColumnKind = "categorical"
	KindIgnored     ColumnKind = "ignored"
)

// Table is one fetched CSV snapshot: cleaned header names plus raw string
// cells, rows aligned by position. Cells keep whatever the source sent,
// including empty strings for missing answers.
type Table struct {
	Columns []string
	Rows    [][]string
}

func (t Table) RowCount() int {
	return len(t.Rows)
}

func (t Table) ColumnCount() int {
	return len(t.Columns)
}

// Column returns the raw values of column i in row order.
func (t Table) Column(i int) []string {
	values := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if i < len(row) {
			values = append(values, row[i])
		} else {
			values = append(values, "")
		}
	}
	return values
}

func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// ColumnProfile is the per-column classification result, recomputed from
// scratch on every refresh.
type ColumnProfile struct {
	Name          string
	Kind          ColumnKind
	DistinctCount int
	MissingCount  int
}

type ChartKind string

const (
	ChartHistogram ChartKind = "histogram"
	ChartBar       ChartKind = "bar"
	ChartHeatmap   ChartKind = "heatmap"
)

type HistogramData struct {
	RangeStart float64
	RangeEnd   float64
	Count      int
}

type ValueCount struct {
	Value   string
	Count   int64
	Percent float64
}

// ChartSpec is a renderer-agnostic chart description. Exactly one of the
// data fields is populated depending on Kind.
type ChartSpec struct {
	Kind    ChartKind
	Title   string
	Columns []string

	// histogram
	Bins []HistogramData
	Mean float64

	// bar
	Categories []ValueCount

	// heatmap, Cells[y][x] is the co-occurrence count of
	// YLabels[y] and XLabels[x]
	XLabels []string
	YLabels []string
	Cells   [][]int
}
