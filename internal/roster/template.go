package roster

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// TemplateFileName is the suggested download name for the roster template.
const TemplateFileName = "Plantilla_Estudiantes.xlsx"

var templateInstructions = []string{
	"1. Complete CURSO y PARALELO en las celdas amarillas arriba",
	"2. Llene los datos de estudiantes desde la fila 13",
	"3. Cada email debe ser único en el sistema",
	"4. NO modifique los encabezados de las columnas",
	"5. Guarde el archivo y súbalo al sistema",
}

var templateHeaders = []string{"NOMBRES", "APELLIDOS", "EMAIL", "FECHA NACIMIENTO", "GÉNERO"}

var templateExamples = [][]string{
	{"Juan Carlos", "Pérez González", "juan.perez@email.com", "2010-03-15", "M"},
	{"María Elena", "García López", "maria.garcia@email.com", "2011-07-02", "F"},
	{"Carlos Alberto", "Rodríguez Martínez", "carlos.rodriguez@email.com", "2010-11-28", "M"},
}

// BuildTemplate produces the fixed-layout roster workbook: placeholder cells
// B2/E2, instructions, column headers in row 12 and example rows from 13.
func BuildTemplate() (*excelize.File, error) {
	f := excelize.NewFile()

	if _, err := f.NewSheet(templateSheetName); err != nil {
		return nil, fmt.Errorf("failed to create template sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	sheet := templateSheetName

	if err := f.SetColWidth(sheet, "A", "E", 28); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1E40AF"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build title style: %w", err)
	}
	_ = f.SetCellValue(sheet, "A1", "PLANTILLA PARA IMPORTAR ESTUDIANTES")
	if err := f.MergeCell(sheet, "A1", "E1"); err != nil {
		return nil, fmt.Errorf("failed to merge title: %w", err)
	}
	_ = f.SetCellStyle(sheet, "A1", "E1", titleStyle)
	_ = f.SetRowHeight(sheet, 1, 35)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FEF3C7"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "left", Style: 1, Color: "000000"},
			{Type: "right", Style: 1, Color: "000000"},
			{Type: "top", Style: 1, Color: "000000"},
			{Type: "bottom", Style: 1, Color: "000000"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build header style: %w", err)
	}
	_ = f.SetCellValue(sheet, "A2", "CURSO:")
	_ = f.SetCellValue(sheet, "B2", "[Escriba aquí: 1ro, 2do, 3ro, 4to, 5to, 6to]")
	_ = f.SetCellValue(sheet, "D2", "PARALELO:")
	_ = f.SetCellValue(sheet, "E2", "[Escriba aquí: A, B, C, D]")
	_ = f.SetCellStyle(sheet, "A2", "E2", headerStyle)

	_ = f.SetCellValue(sheet, "A4", "INSTRUCCIONES IMPORTANTES:")
	if err := f.MergeCell(sheet, "A4", "E4"); err != nil {
		return nil, fmt.Errorf("failed to merge instructions title: %w", err)
	}
	for i, instruction := range templateInstructions {
		row := 5 + i
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), instruction)
		if err := f.MergeCell(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row)); err != nil {
			return nil, fmt.Errorf("failed to merge instruction row: %w", err)
		}
	}

	columnHeaderStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F2937"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build column header style: %w", err)
	}
	for i, header := range templateHeaders {
		axis, axisErr := excelize.CoordinatesToCellName(i+1, 12)
		if axisErr != nil {
			return nil, fmt.Errorf("failed to place column header: %w", axisErr)
		}
		_ = f.SetCellValue(sheet, axis, header)
	}
	_ = f.SetCellStyle(sheet, "A12", "E12", columnHeaderStyle)

	for r, example := range templateExamples {
		for c, value := range example {
			axis, axisErr := excelize.CoordinatesToCellName(c+1, 13+r)
			if axisErr != nil {
				return nil, fmt.Errorf("failed to place example cell: %w", axisErr)
			}
			_ = f.SetCellValue(sheet, axis, value)
		}
	}

	_ = f.SetCellValue(sheet, "A17", "NOTA: Los datos anteriores son ejemplos. Elimine estas filas antes de importar.")
	if err := f.MergeCell(sheet, "A17", "E17"); err != nil {
		return nil, fmt.Errorf("failed to merge note row: %w", err)
	}

	return f, nil
}

// WriteTemplate streams the roster template workbook.
func WriteTemplate(w io.Writer) error {
	f, err := BuildTemplate()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	return nil
}
