package outputs

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "export.json")
}

// TestJSONArrayWriter_Empty verifies zero writes finalize to a valid empty
// array.
func TestJSONArrayWriter_Empty(t *testing.T) {
	path := tempPath(t)
	w, err := NewJSONArrayWriter(path)
	if err != nil {
		t.Fatalf("NewJSONArrayWriter error: %v", err)
	}
	if err := w.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("empty export = %q; want []", data)
	}
}

// TestJSONArrayWriter_TrailingCommaReplaced verifies the incremental comma is
// corrected at finalize so the file parses as a JSON array.
func TestJSONArrayWriter_TrailingCommaReplaced(t *testing.T) {
	path := tempPath(t)
	w, err := NewJSONArrayWriter(path)
	if err != nil {
		t.Fatalf("NewJSONArrayWriter error: %v", err)
	}
	for _, v := range []map[string]string{{"id": "a"}, {"id": "b"}, {"id": "c"}} {
		if err := w.Write(v); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	if err := w.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var decoded []map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v\ncontent: %s", err, data)
	}
	if len(decoded) != 3 || decoded[2]["id"] != "c" {
		t.Errorf("decoded = %v; want 3 records ending with c", decoded)
	}
}

// TestJSONArrayWriter_WriteAfterFinalize verifies the writer rejects late
// writes with an ExportError.
func TestJSONArrayWriter_WriteAfterFinalize(t *testing.T) {
	w, err := NewJSONArrayWriter(tempPath(t))
	if err != nil {
		t.Fatalf("NewJSONArrayWriter error: %v", err)
	}
	if err := w.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	err = w.Write(map[string]string{"id": "late"})
	var exportErr *ExportError
	if !errors.As(err, &exportErr) {
		t.Fatalf("Write after finalize = %v; want *ExportError", err)
	}
}

// TestJSONArrayWriter_DoubleFinalize verifies finalize is idempotent.
func TestJSONArrayWriter_DoubleFinalize(t *testing.T) {
	path := tempPath(t)
	w, err := NewJSONArrayWriter(path)
	if err != nil {
		t.Fatalf("NewJSONArrayWriter error: %v", err)
	}
	if err := w.Finalize(); err != nil {
		t.Fatalf("first Finalize error: %v", err)
	}
	if err := w.Finalize(); err != nil {
		t.Fatalf("second Finalize error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "[]" {
		t.Errorf("export after double finalize = %q; want []", data)
	}
}

// TestNewJSONArrayWriter_BadPath verifies creation failures surface as
// ExportError.
func TestNewJSONArrayWriter_BadPath(t *testing.T) {
	_, err := NewJSONArrayWriter(filepath.Join(t.TempDir(), "missing", "export.json"))
	var exportErr *ExportError
	if !errors.As(err, &exportErr) {
		t.Fatalf("error = %v; want *ExportError", err)
	}
	if exportErr.Unwrap() == nil {
		t.Error("ExportError should wrap the underlying I/O error")
	}
}
