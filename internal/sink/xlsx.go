package sink

import (
	"context"
	"fmt"

	"codeberg.org/mutker/zbxreport/internal/report"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

func init() {
	Register(&XLSXFormat{})
}

// XLSXFormat writes an Excel workbook with a single sheet.
type XLSXFormat struct{}

func (*XLSXFormat) Name() string        { return "xlsx" }
func (*XLSXFormat) Extension() string   { return ".xlsx" }
func (f *XLSXFormat) Sink() report.Sink { return &xlsxSink{ext: f.Extension()} }

type xlsxSink struct {
	ext string
}

func (s *xlsxSink) Extension() string { return s.ext }

func (s *xlsxSink) Write(_ context.Context, path string, rows []report.Row) error {
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(sheetName, "A1", toCells(report.Header)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, toCells(row.Values())); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

func toCells(values []string) *[]interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}

	return &cells
}
