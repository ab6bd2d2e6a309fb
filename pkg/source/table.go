// Package source loads chart data into a [Table].
//
// A table is column oriented and already in position space: the x column is
// a float64 for numeric axes or Unix seconds for time axes, and every y
// column is a float64 with NaN for missing values. Charts plot tables
// through [Row].
//
// Loaders exist for JSON and CSV files, Excel workbooks (excelize), MongoDB
// collections and Prometheus range queries. [Open] picks one from a [Spec].
package source

import (
	"context"
	"encoding/json"
	"math"
	"slices"
	"sort"
)

// Table is loaded chart data.
type Table struct {
	// Time reports whether X holds Unix seconds.
	Time    bool     `json:"time"`
	X       Floats   `json:"x"`
	Columns []Column `json:"columns"`
}

// Column is one y series of a table.
type Column struct {
	Name   string `json:"name"`
	Values Floats `json:"values"`
}

// Floats is a float64 slice that encodes NaN and infinities as JSON null.
type Floats []float64

func (f Floats) MarshalJSON() ([]byte, error) {
	out := make([]*float64, len(f))
	for i, v := range f {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[i] = &v
		}
	}
	return json.Marshal(out)
}

func (f *Floats) UnmarshalJSON(data []byte) error {
	var in []*float64
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*f = make(Floats, len(in))
	for i, v := range in {
		(*f)[i] = math.NaN()
		if v != nil {
			(*f)[i] = *v
		}
	}
	return nil
}

// Row is one datum: an x position and the value of every column.
type Row struct {
	X float64
	Y []float64
}

// Loader reads a table.
type Loader interface {
	// Kind names the backend, such as "json" or "prometheus".
	Kind() string
	// Describe returns a stable description used as the cache key.
	Describe() string
	Load(ctx context.Context) (*Table, error)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.X) }

// Column returns the index of the named column.
func (t *Table) Column(name string) (int, bool) {
	i := slices.IndexFunc(t.Columns, func(c Column) bool { return c.Name == name })
	return i, i >= 0
}

// Rows returns the table row by row. Short columns are padded with NaN.
func (t *Table) Rows() []Row {
	rows := make([]Row, len(t.X))
	for i, x := range t.X {
		ys := make([]float64, len(t.Columns))
		for j, c := range t.Columns {
			ys[j] = math.NaN()
			if i < len(c.Values) {
				ys[j] = c.Values[i]
			}
		}
		rows[i] = Row{X: x, Y: ys}
	}
	return rows
}

// SortByX orders rows by ascending x, keeping columns aligned. Rows with a
// NaN x sort last.
func (t *Table) SortByX() {
	idx := make([]int, len(t.X))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		xa, xb := t.X[idx[a]], t.X[idx[b]]
		if math.IsNaN(xb) {
			return !math.IsNaN(xa)
		}
		return xa < xb
	})
	t.X = permute(t.X, idx)
	for i := range t.Columns {
		t.Columns[i].Values = permute(t.Columns[i].Values, idx)
	}
}

func permute(vs []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = math.NaN()
		if j < len(vs) {
			out[i] = vs[j]
		}
	}
	return out
}

// columns builds empty columns for names.
func columns(names []string) []Column {
	out := make([]Column, len(names))
	for i, n := range names {
		out[i] = Column{Name: n}
	}
	return out
}
