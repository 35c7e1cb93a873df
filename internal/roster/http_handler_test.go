package roster

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecopuntos/ecoroster/internal/domain"

	"github.com/xuri/excelize/v2"
)

// buildRosterFile produces a minimal filled-in roster workbook.
func buildRosterFile(t *testing.T, course, parallel string, students [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetList()[0]
	if err := f.SetCellValue(sheet, "B2", course); err != nil {
		t.Fatalf("failed to set course cell: %v", err)
	}
	if err := f.SetCellValue(sheet, "E2", parallel); err != nil {
		t.Fatalf("failed to set parallel cell: %v", err)
	}
	for i, student := range students {
		row := dataStartRow + i
		for c, value := range student {
			axis, err := excelize.CoordinatesToCellName(c+1, row)
			if err != nil {
				t.Fatalf("failed to compute axis: %v", err)
			}
			if err := f.SetCellValue(sheet, axis, value); err != nil {
				t.Fatalf("failed to set student cell: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("failed to serialize workbook: %v", err)
	}
	return buf.Bytes()
}

func multipartUpload(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("archivo", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/roster/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestImportHandler(t *testing.T) {
	store := newStubStore()
	store.addSection("1RO", "A")
	handler := NewImportHandler(newTestService(store))

	content := buildRosterFile(t, "1ro", "A", [][]string{
		{"Ana", "Lopez Diaz", "ana@x.com", "2010-03-15", "F"},
		{"Bob", "Cruz", "not-an-email"},
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, multipartUpload(t, "roster.xlsx", content))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			Inserted         int        `json:"insertados"`
			Updated          int        `json:"actualizados"`
			Skipped          int        `json:"omitidos"`
			ErrorCount       int        `json:"errores_count"`
			AffectedStudents int        `json:"estudiantes_afectados"`
			Errors           []RowError `json:"errores"`
			Section          *struct {
				CourseName *string `json:"curso_nombre"`
			} `json:"curso_info"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !resp.Success {
		t.Fatalf("expected success envelope: %s", rec.Body.String())
	}
	if resp.Data.Inserted != 1 || resp.Data.ErrorCount != 1 || resp.Data.AffectedStudents != 1 {
		t.Fatalf("unexpected counters: %+v", resp.Data)
	}
	if len(resp.Data.Errors) != 1 || resp.Data.Errors[0].Row != 14 {
		t.Fatalf("unexpected errors: %+v", resp.Data.Errors)
	}
	if resp.Data.Section == nil || resp.Data.Section.CourseName == nil || *resp.Data.Section.CourseName != "1ro" {
		t.Fatalf("expected section info in response: %s", rec.Body.String())
	}
	if !strings.Contains(resp.Message, "1 nuevos insertados") {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestImportHandlerRejectsXLS(t *testing.T) {
	store := newStubStore()
	handler := NewImportHandler(newTestService(store))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, multipartUpload(t, "roster.xls", []byte("old binary format")))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Formato no soportado (.xls)") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestImportHandlerRequiresFile(t *testing.T) {
	store := newStubStore()
	handler := NewImportHandler(newTestService(store))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	_ = writer.WriteField("otro", "campo")
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/roster/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "El archivo es obligatorio.") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestImportHandlerMethodNotAllowed(t *testing.T) {
	handler := NewImportHandler(newTestService(newStubStore()))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/roster/import", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestImportHandlerCorruptWorkbook(t *testing.T) {
	store := newStubStore()
	store.addSection("1RO", "A")
	handler := NewImportHandler(newTestService(store))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, multipartUpload(t, "roster.xlsx", []byte("this is not a zip archive")))

	if rec.Code != http.StatusOK {
		t.Fatalf("open failures are reported inside the outcome, got %d", rec.Code)
	}
	var resp struct {
		Data struct {
			Errors []RowError `json:"errores"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data.Errors) != 1 || resp.Data.Errors[0].Row != 0 {
		t.Fatalf("expected a single row-0 error, got %+v", resp.Data.Errors)
	}
	if !strings.HasPrefix(resp.Data.Errors[0].Message, "Error al leer el archivo:") {
		t.Fatalf("unexpected message: %q", resp.Data.Errors[0].Message)
	}
}

func TestTemplateHandler(t *testing.T) {
	handler := NewTemplateHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/roster/template", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, TemplateFileName) {
		t.Fatalf("unexpected content disposition: %q", got)
	}

	ws, err := OpenWorkbook(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("template download is not a readable workbook: %v", err)
	}
	defer func() { _ = ws.Close() }()
	if !strings.Contains(ws.Cell(courseColumn, headerRow).String(), placeholderMarker) {
		t.Fatalf("downloaded template should carry the course placeholder")
	}
}

func TestHistoryHandler(t *testing.T) {
	store := newStubStore()
	section := store.addSection("1RO", "A")
	history := &stubHistory{store: store}
	if err := history.Record(context.Background(), domain.ImportHistoryEntry{SectionID: section.ID, Inserted: 3}); err != nil {
		t.Fatalf("failed to seed history: %v", err)
	}
	handler := NewHistoryHandler(history)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/roster/history?limit=10", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			Inserted int `json:"insertados"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || len(resp.Data) != 1 || resp.Data[0].Inserted != 3 {
		t.Fatalf("unexpected history payload: %s", rec.Body.String())
	}
}
