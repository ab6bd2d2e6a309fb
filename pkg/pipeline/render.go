package pipeline

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/chartistry/pkg/errors"
	"github.com/matzehuels/chartistry/pkg/layout"
	"github.com/matzehuels/chartistry/pkg/scene"
	"github.com/matzehuels/chartistry/pkg/series"
	"github.com/matzehuels/chartistry/pkg/source"
	"github.com/matzehuels/chartistry/pkg/ticks"
)

// Document is the FormatJSON artifact.
type Document struct {
	Name     string          `json:"name"`
	Title    string          `json:"title,omitempty"`
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	Layout   layout.Snapshot `json:"layout"`
	Lines    []series.Entry  `json:"lines"`
	Rows     int             `json:"rows"`
	DataHash string          `json:"data_hash"`
}

// Render serialises m in every format.
func Render(m *Mounted, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data, err = renderSVG(m)
		case FormatJSON:
			data, err = renderDocument(m)
		case FormatDOT:
			data = []byte(m.Runtime.Graph().ToDOT())
		case FormatXLSX:
			data, err = renderWorkbook(m.Table)
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderSVG(m *Mounted) ([]byte, error) {
	var buf bytes.Buffer
	opts := []scene.SVGOption{
		scene.WithBackground("#ffffff"),
		scene.WithFontFamily(m.Definition.Font.Family()),
	}
	if m.Definition.Title != "" {
		opts = append(opts, scene.WithTitle(m.Definition.Title))
	}
	if err := m.Chart.WriteSVG(&buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewDocument describes the current state of m.
func NewDocument(m *Mounted) Document {
	snap, _ := m.Chart.Layout()
	w, h, _ := m.Chart.Size()
	return Document{
		Name:     m.Definition.Name,
		Title:    m.Definition.Title,
		Width:    w,
		Height:   h,
		Layout:   snap,
		Lines:    m.Chart.Entries(),
		Rows:     m.Table.Len(),
		DataHash: m.DataHash,
	}
}

func renderDocument(m *Mounted) ([]byte, error) {
	return json.MarshalIndent(NewDocument(m), "", "  ")
}

const workbookSheet = "Data"

// renderWorkbook writes t with a header row. Time axes are written as
// timestamps and missing values as empty cells.
func renderWorkbook(t *source.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", workbookSheet); err != nil {
		return nil, err
	}

	header := []any{"x"}
	for _, c := range t.Columns {
		header = append(header, c.Name)
	}
	if err := f.SetSheetRow(workbookSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range t.Rows() {
		cells := make([]any, 0, len(row.Y)+1)
		if t.Time {
			cells = append(cells, ticks.FromPosition[time.Time](row.X))
		} else {
			cells = append(cells, row.X)
		}
		for _, y := range row.Y {
			if math.IsNaN(y) || math.IsInf(y, 0) {
				cells = append(cells, nil)
				continue
			}
			cells = append(cells, y)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(workbookSheet, cell, &cells); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
