package sheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gyeh/ripsgen/internal/model"
)

// Workbook wraps an excelize file for reading raw row values.
type Workbook struct {
	path string
	file *excelize.File
}

// Open opens an .xlsx workbook.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{path: path, file: f}, nil
}

// Rows returns every row of the named sheet (the first sheet when name is
// empty) as raw, unformatted cell values. Date cells come back as serial
// numbers.
func (w *Workbook) Rows(name string) ([][]string, error) {
	if name == "" {
		name = w.file.GetSheetName(0)
		if name == "" {
			return nil, fmt.Errorf("workbook %s has no sheets", w.path)
		}
	}
	rows, err := w.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	return rows, nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// RawRow is one data row addressed by normalized column name.
type RawRow struct {
	Number int // 1-based spreadsheet row
	cells  []string
	cols   Columns
}

// NewRawRow builds a row from cells laid out according to cols.
func NewRawRow(number int, cols Columns, cells []string) RawRow {
	return RawRow{Number: number, cells: cells, cols: cols}
}

// Get returns the trimmed cell for col, or "" when the column is absent or
// the row is short.
func (r RawRow) Get(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

// Visits is the content of a visit spreadsheet.
type Visits struct {
	Variant model.Variant
	Columns Columns
	Rows    []RawRow
}

// ReadVisits loads the visit spreadsheet at path. The first row is the
// header; fully blank rows are skipped.
func ReadVisits(path, sheetName string) (*Visits, error) {
	wb, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	rows, err := wb.Rows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &SchemaError{Missing: RequiredVisitColumns}
	}

	cols, err := ValidateHeader(rows[0])
	if err != nil {
		return nil, err
	}

	v := &Visits{Variant: DetectVariant(cols), Columns: cols}
	for i, cells := range rows[1:] {
		if blank(cells) {
			continue
		}
		v.Rows = append(v.Rows, NewRawRow(i+2, cols, cells))
	}
	return v, nil
}

// ReferenceRow is one municipality row of the reference workbook.
type ReferenceRow struct {
	Number           int
	DepartmentCode   string
	DepartmentName   string
	MunicipalityCode string
	MunicipalityName string
}

// ReadReference loads the municipality reference workbook. Columns are
// positional (department code, department, municipality code, municipality)
// and the first row is a header.
func ReadReference(path, sheetName string) ([]ReferenceRow, error) {
	wb, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	rows, err := wb.Rows(sheetName)
	if err != nil {
		return nil, err
	}

	var out []ReferenceRow
	for i, cells := range rows {
		if i == 0 || blank(cells) {
			continue
		}
		if len(cells) < 4 {
			return nil, fmt.Errorf("reference row %d: expected 4 columns, got %d", i+1, len(cells))
		}
		out = append(out, ReferenceRow{
			Number:           i + 1,
			DepartmentCode:   strings.TrimSpace(cells[0]),
			DepartmentName:   strings.TrimSpace(cells[1]),
			MunicipalityCode: strings.TrimSpace(cells[2]),
			MunicipalityName: strings.TrimSpace(cells[3]),
		})
	}
	return out, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
