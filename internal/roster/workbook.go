package roster

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// templateSheetName is the sheet the roster template ships with. Imports
// prefer it and fall back to the first sheet of the workbook.
const templateSheetName = "Plantilla Estudiantes"

// CellKind tags the loosely typed value a spreadsheet cell can hold.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is the tagged value read from one worksheet cell. Numeric cells keep
// their raw value so Excel date serials survive the boundary.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// TextCell builds a text cell; whitespace-only input collapses to empty.
func TextCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: s}
}

// NumberCell builds a numeric cell.
func NumberCell(n float64) Cell {
	return Cell{Kind: CellNumber, Number: n}
}

// String renders the cell for string-typed columns.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return strings.TrimSpace(c.Text)
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// IsEmpty reports whether the cell holds no usable value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// Worksheet is the read surface the importer consumes. The excelize-backed
// implementation satisfies it in production; tests use in-memory sheets.
type Worksheet interface {
	Cell(column string, row int) Cell
	HighestRow() int
}

// ExcelWorksheet adapts an excelize workbook to the Worksheet interface.
type ExcelWorksheet struct {
	file       *excelize.File
	sheet      string
	highestRow int
}

// OpenWorkbook reads an xlsx stream and selects the roster sheet.
func OpenWorkbook(r io.Reader) (*ExcelWorksheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}

	sheet := templateSheetName
	if idx, idxErr := f.GetSheetIndex(sheet); idxErr != nil || idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			_ = f.Close()
			return nil, errors.New("excel file has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}

	return &ExcelWorksheet{file: f, sheet: sheet, highestRow: len(rows)}, nil
}

// OpenWorkbookFile reads an xlsx file from disk.
func OpenWorkbookFile(path string) (*ExcelWorksheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}

	sheet := templateSheetName
	if idx, idxErr := f.GetSheetIndex(sheet); idxErr != nil || idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			_ = f.Close()
			return nil, errors.New("excel file has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}

	return &ExcelWorksheet{file: f, sheet: sheet, highestRow: len(rows)}, nil
}

func (w *ExcelWorksheet) Cell(column string, row int) Cell {
	axis, err := excelize.JoinCellName(column, row)
	if err != nil {
		return Cell{}
	}

	// Raw values keep date serials numeric instead of pre-formatted strings.
	value, err := w.file.GetCellValue(w.sheet, axis, excelize.Options{RawCellValue: true})
	if err != nil {
		return Cell{}
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Cell{}
	}
	if number, parseErr := strconv.ParseFloat(trimmed, 64); parseErr == nil {
		return Cell{Kind: CellNumber, Number: number, Text: trimmed}
	}
	return Cell{Kind: CellText, Text: value}
}

func (w *ExcelWorksheet) HighestRow() int {
	return w.highestRow
}

// Close releases the underlying workbook.
func (w *ExcelWorksheet) Close() error {
	return w.file.Close()
}
