// internal/output/json.go
package output

import (
	"encoding/json"
	"os"
)

// JSONWriter writes one batch as an indented JSON array.
type JSONWriter struct {
	filename string
	file     *os.File
}

// NewJSONWriter creates a JSON writer for the given file.
func NewJSONWriter(filename string) (*JSONWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	return &JSONWriter{filename: filename, file: file}, nil
}

// Write encodes the batch. v is a slice of records.
func (w *JSONWriter) Write(v interface{}) error {
	encoder := json.NewEncoder(w.file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// Close closes the underlying file.
func (w *JSONWriter) Close() error {
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		return err
	}
	return nil
}
