// internal/output/excel.go
package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelWriter writes one batch as a single-sheet workbook with a bold,
// frozen header row.
type ExcelWriter struct {
	filename string
	file     *excelize.File
}

// NewExcelWriter creates an Excel writer for the given file.
func NewExcelWriter(filename string) *ExcelWriter {
	return &ExcelWriter{
		filename: filename,
		file:     excelize.NewFile(),
	}
}

// Write fills the named sheet with the header and rows.
func (w *ExcelWriter) Write(sheet string, header []string, rows [][]string) error {
	index, err := w.file.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}
	w.file.SetActiveSheet(index)
	if err := w.file.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headerCells := make([]interface{}, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := w.file.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	boldStyle, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = w.file.SetCellStyle(sheet, "A1", endCell, boldStyle)
	}
	if err := w.file.SetPanes(sheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := w.file.SetSheetRow(sheet, axis, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return nil
}

// Close saves the workbook and releases it.
func (w *ExcelWriter) Close() error {
	if w.file == nil {
		return nil
	}
	if err := w.file.SaveAs(w.filename); err != nil {
		w.file.Close()
		w.file = nil
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	err := w.file.Close()
	w.file = nil
	return err
}
