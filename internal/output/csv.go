// internal/output/csv.go
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// CSVWriter writes one batch in CSV format, optionally transcoded to a
// non-UTF-8 encoding for spreadsheet tools that expect one.
type CSVWriter struct {
	filename string
	file     *os.File
	encoder  io.Closer
	writer   *csv.Writer
}

// NewCSVWriter creates a CSV writer for the given file. An empty or "utf-8"
// encoding writes plain UTF-8; any other name is resolved through the IANA
// index.
func NewCSVWriter(filename, encoding string) (*CSVWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	var out io.Writer = file
	var encoder io.Closer
	if encoding != "" && !strings.EqualFold(encoding, "utf-8") {
		enc, err := ianaindex.IANA.Encoding(encoding)
		if err != nil || enc == nil {
			file.Close()
			return nil, fmt.Errorf("unknown output encoding %q", encoding)
		}
		tw := transform.NewWriter(file, enc.NewEncoder())
		out = tw
		encoder = tw
	}

	return &CSVWriter{
		filename: filename,
		file:     file,
		encoder:  encoder,
		writer:   csv.NewWriter(out),
	}, nil
}

// Write writes the header followed by all rows.
func (w *CSVWriter) Write(header []string, rows [][]string) error {
	if err := w.writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := w.writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	w.writer.Flush()
	return w.writer.Error()
}

// Close flushes and closes the underlying file.
func (w *CSVWriter) Close() error {
	if w.writer != nil {
		w.writer.Flush()
		w.writer = nil
	}
	if w.encoder != nil {
		w.encoder.Close()
		w.encoder = nil
	}
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		return err
	}
	return nil
}
