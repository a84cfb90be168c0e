package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXWriter implements SheetWriter by writing a local Excel workbook.
type XLSXWriter struct {
	path string
}

// NewXLSXWriter creates a writer that saves the workbook at path.
func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{path: path}
}

// Write builds a single-sheet workbook with the valuation history.
func (w *XLSXWriter) Write(_ context.Context, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Valuations"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, rowHeaders); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, sheet, i+2, rowValues(r)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("locating row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}
