// Package outputs serialises canonical findings into the supported export
// formats: an ASFF-style security-finding file, an OCSF-style open-schema
// file, and a semicolon-delimited compliance CSV. Writers append findings
// incrementally and are finalized once at the end of the scan; a failed write
// is fatal to the export step because a half-written artifact must never be
// reported as complete.
package outputs

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ExportError reports an I/O failure on an output destination. It is fatal:
// the process must exit non-zero rather than claim a completed export.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export to %s failed: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// JSONArrayWriter streams values into an array-wrapped JSON file without
// buffering the whole result set. Each Write appends one marshalled value
// followed by a comma; Finalize replaces the trailing comma with the closing
// bracket so the file is syntactically valid on close. Writing zero values
// and finalizing produces "[]".
type JSONArrayWriter struct {
	path      string
	f         *os.File
	wrote     bool
	finalized bool
}

// NewJSONArrayWriter creates (or truncates) the file at path and writes the
// opening bracket.
func NewJSONArrayWriter(path string) (*JSONArrayWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &ExportError{Path: path, Err: err}
	}
	if _, err := f.WriteString("["); err != nil {
		f.Close()
		return nil, &ExportError{Path: path, Err: err}
	}
	return &JSONArrayWriter{path: path, f: f}, nil
}

// Write appends one value to the array.
func (w *JSONArrayWriter) Write(v any) error {
	if w.finalized {
		return &ExportError{Path: w.path, Err: fmt.Errorf("write after finalize")}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return &ExportError{Path: w.path, Err: err}
	}
	if _, err := w.f.Write(append(data, ',')); err != nil {
		return &ExportError{Path: w.path, Err: err}
	}
	w.wrote = true
	return nil
}

// Finalize corrects the trailing separator left by incremental writes and
// closes the file. When at least one value was written the last byte is the
// item comma; it is truncated away before the closing bracket is appended.
func (w *JSONArrayWriter) Finalize() error {
	if w.finalized {
		return nil
	}
	w.finalized = true

	if w.wrote {
		end, err := w.f.Seek(-1, io.SeekEnd)
		if err != nil {
			w.f.Close()
			return &ExportError{Path: w.path, Err: err}
		}
		if err := w.f.Truncate(end); err != nil {
			w.f.Close()
			return &ExportError{Path: w.path, Err: err}
		}
	}
	if _, err := w.f.WriteString("]"); err != nil {
		w.f.Close()
		return &ExportError{Path: w.path, Err: err}
	}
	if err := w.f.Close(); err != nil {
		return &ExportError{Path: w.path, Err: err}
	}
	return nil
}
