package roster

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestTemplateRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTemplate(&buf); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	ws, err := OpenWorkbook(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("failed to reopen template: %v", err)
	}
	defer func() { _ = ws.Close() }()

	if ws.sheet != templateSheetName {
		t.Fatalf("expected sheet %q, got %q", templateSheetName, ws.sheet)
	}

	course := ws.Cell(courseColumn, headerRow).String()
	if !strings.Contains(course, placeholderMarker) {
		t.Fatalf("B2 should hold the course placeholder, got %q", course)
	}
	parallel := ws.Cell(parallelColumn, headerRow).String()
	if !strings.Contains(parallel, placeholderMarker) {
		t.Fatalf("E2 should hold the parallel placeholder, got %q", parallel)
	}

	for i, want := range templateHeaders {
		column := string(rune('A' + i))
		if got := ws.Cell(column, 12).String(); got != want {
			t.Errorf("header %s12 = %q, want %q", column, got, want)
		}
	}

	// Example rows start where the importer starts reading.
	if got := ws.Cell(namesColumn, dataStartRow).String(); got != templateExamples[0][0] {
		t.Errorf("first example row mismatch: %q", got)
	}
	if ws.HighestRow() < 17 {
		t.Errorf("template should reach the note row, highest is %d", ws.HighestRow())
	}
}

func TestImportTemplateWithPlaceholdersIsRejected(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTemplate(&buf); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	store := newStubStore()
	store.addSection("1RO", "A")
	service := newTestService(store)

	outcome := service.ImportReader(context.Background(), bytes.NewReader(buf.Bytes()))

	if len(outcome.Errors) != 1 || outcome.Errors[0].Row != headerRow {
		t.Fatalf("untouched template must fail header resolution: %+v", outcome.Errors)
	}
	if outcome.Inserted != 0 || outcome.Updated != 0 || outcome.Skipped != 0 {
		t.Fatalf("no example rows may be imported: %+v", outcome)
	}
}
