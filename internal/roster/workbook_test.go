package roster

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExcelWorksheetCellTyping(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	_ = f.SetCellValue(sheet, "A1", "hola")
	_ = f.SetCellValue(sheet, "B1", 38356)
	_ = f.SetCellValue(sheet, "C1", "  spaced  ")

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("failed to serialize workbook: %v", err)
	}
	_ = f.Close()

	ws, err := OpenWorkbook(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer func() { _ = ws.Close() }()

	if cell := ws.Cell("A", 1); cell.Kind != CellText || cell.String() != "hola" {
		t.Errorf("unexpected text cell: %+v", cell)
	}
	if cell := ws.Cell("B", 1); cell.Kind != CellNumber || cell.Number != 38356 {
		t.Errorf("numeric cells must stay numeric: %+v", cell)
	}
	if cell := ws.Cell("C", 1); cell.String() != "spaced" {
		t.Errorf("String() should trim, got %q", cell.String())
	}
	if cell := ws.Cell("D", 1); !cell.IsEmpty() {
		t.Errorf("missing cells read as empty, got %+v", cell)
	}
	if ws.HighestRow() != 1 {
		t.Errorf("unexpected highest row %d", ws.HighestRow())
	}
}

func TestCellConstructors(t *testing.T) {
	if !TextCell("   ").IsEmpty() {
		t.Errorf("whitespace-only text should collapse to empty")
	}
	if c := TextCell("x"); c.Kind != CellText || c.String() != "x" {
		t.Errorf("unexpected text cell: %+v", c)
	}
	if c := NumberCell(2.5); c.Kind != CellNumber || c.String() != "2.5" {
		t.Errorf("unexpected number cell: %+v", c)
	}
}
