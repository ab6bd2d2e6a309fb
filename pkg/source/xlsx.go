package source

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/chartistry/pkg/errors"
)

// Workbook reads one sheet of an Excel workbook whose first row names the
// columns.
type Workbook struct {
	Path string
	// Sheet is the sheet name; empty takes the first sheet.
	Sheet      string
	X          string
	Y          []string
	TimeLayout string
}

func (w *Workbook) Kind() string { return KindXLSX }

func (w *Workbook) Describe() string { return describeFile(w.Path, w.Sheet+"!"+w.X, w.Y) }

func (w *Workbook) Load(ctx context.Context) (*Table, error) {
	f, err := excelize.OpenFile(w.Path)
	if err != nil {
		return nil, fileError(w.Path, err)
	}
	defer f.Close()

	sheet := w.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidSource, "%s has no sheets", w.Path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "read sheet %q of %s", sheet, w.Path)
	}
	return fromRecords(ctx, w.Path+"!"+sheet, rows, w.X, w.Y, w.TimeLayout)
}
