package source

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/matzehuels/chartistry/pkg/cache"
	"github.com/matzehuels/chartistry/pkg/errors"
)

// JSONFile reads an array of objects:
//
//	[{"t": "2024-03-01", "cpu": 0.4}, ...]
//
// x values may be numbers or timestamp strings.
type JSONFile struct {
	Path       string
	X          string
	Y          []string
	TimeLayout string
}

func (f *JSONFile) Kind() string { return KindJSON }

func (f *JSONFile) Describe() string { return describeFile(f.Path, f.X, f.Y) }

func (f *JSONFile) Load(ctx context.Context) (*Table, error) {
	raw, err := readFile(f.Path)
	if err != nil {
		return nil, err
	}
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "decode %s", f.Path)
	}

	b := newBuilder(f.Y, f.TimeLayout)
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ys := make([]any, len(f.Y))
		for j, name := range f.Y {
			ys[j] = rec[name]
		}
		if err := b.addAny(rec[f.X], ys); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "%s record %d", f.Path, i)
		}
	}
	return b.table(), nil
}

// CSVFile reads a comma-separated file whose first row names the columns.
type CSVFile struct {
	Path       string
	X          string
	Y          []string
	TimeLayout string
}

func (f *CSVFile) Kind() string { return KindCSV }

func (f *CSVFile) Describe() string { return describeFile(f.Path, f.X, f.Y) }

func (f *CSVFile) Load(ctx context.Context) (*Table, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fileError(f.Path, err)
	}
	defer fh.Close()

	r := csv.NewReader(fh)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "decode %s", f.Path)
	}
	return fromRecords(ctx, f.Path, records, f.X, f.Y, f.TimeLayout)
}

// fromRecords builds a table from a header row followed by string cells.
func fromRecords(ctx context.Context, name string, records [][]string, x string, y []string, layout string) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSource, "%s is empty", name)
	}
	header := records[0]
	find := func(col string) (int, error) {
		i := slices.IndexFunc(header, func(h string) bool { return strings.TrimSpace(h) == col })
		if i < 0 {
			return 0, errors.New(errors.ErrCodeInvalidSource, "%s has no column %q", name, col)
		}
		return i, nil
	}
	xi, err := find(x)
	if err != nil {
		return nil, err
	}
	yi := make([]int, len(y))
	for j, col := range y {
		if yi[j], err = find(col); err != nil {
			return nil, err
		}
	}

	b := newBuilder(y, layout)
	for n, rec := range records[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(rec) == 0 || xi >= len(rec) || strings.TrimSpace(rec[xi]) == "" {
			continue
		}
		ys := make([]string, len(y))
		for j, i := range yi {
			if i < len(rec) {
				ys[j] = rec[i]
			}
		}
		if err := b.addStrings(rec[xi], ys); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "%s row %d", name, n+2)
		}
	}
	return b.table(), nil
}

// builder accumulates rows, tracking whether x values are timestamps.
type builder struct {
	t       *Table
	layout  string
	numbers int
	times   int
}

func newBuilder(y []string, layout string) *builder {
	return &builder{t: &Table{Columns: columns(y)}, layout: layout}
}

func (b *builder) addStrings(x string, ys []string) error {
	xv, isTime, ok := parseX(x, b.layout)
	if !ok {
		return fmt.Errorf("cannot parse x value %q", x)
	}
	b.count(isTime)
	b.t.X = append(b.t.X, xv)
	for j, s := range ys {
		b.t.Columns[j].Values = append(b.t.Columns[j].Values, parseY(s))
	}
	return nil
}

func (b *builder) addAny(x any, ys []any) error {
	var xv float64
	switch v := x.(type) {
	case string:
		var isTime, ok bool
		if xv, isTime, ok = parseX(v, b.layout); !ok {
			return fmt.Errorf("cannot parse x value %q", v)
		}
		b.count(isTime)
	default:
		var ok bool
		if xv, ok = number(v); !ok {
			return fmt.Errorf("unsupported x value %v", x)
		}
		b.count(false)
	}
	b.t.X = append(b.t.X, xv)
	for j, y := range ys {
		v, ok := number(y)
		if s, isString := y.(string); isString {
			v, ok = parseY(s), true
		}
		if !ok {
			v = math.NaN()
		}
		b.t.Columns[j].Values = append(b.t.Columns[j].Values, v)
	}
	return nil
}

func (b *builder) count(isTime bool) {
	if isTime {
		b.times++
	} else {
		b.numbers++
	}
}

// table returns the built table. x is a time axis when every x value was a
// timestamp.
func (b *builder) table() *Table {
	b.t.Time = b.times > 0 && b.numbers == 0
	b.t.SortByX()
	return b.t
}

func readFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fileError(path, err)
	}
	return raw, nil
}

func fileError(path string, err error) error {
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeNotFound, err, "data file %s", path)
	}
	return errors.Wrap(errors.ErrCodeInvalidSource, err, "read %s", path)
}

// describeFile keys a file by its content so edits invalidate the cache.
func describeFile(path, x string, y []string) string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return path
	}
	return fmt.Sprintf("%s|%s|%s|%s", cache.Hash(raw), path, x, strings.Join(y, ","))
}
