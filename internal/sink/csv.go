package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"codeberg.org/mutker/zbxreport/internal/report"
)

func init() {
	Register(&CSVFormat{})
}

// CSVFormat writes comma separated values with a header line.
type CSVFormat struct{}

func (*CSVFormat) Name() string        { return "csv" }
func (*CSVFormat) Extension() string   { return ".csv" }
func (f *CSVFormat) Sink() report.Sink { return &csvSink{ext: f.Extension()} }

type csvSink struct {
	ext string
}

func (s *csvSink) Extension() string { return s.ext }

func (s *csvSink) Write(_ context.Context, path string, rows []report.Row) error {
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	w := csv.NewWriter(file)
	if err := w.Write(report.Header); err != nil {
		file.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		if err := w.Write(row.Values()); err != nil {
			file.Close()
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush: %w", err)
	}

	return file.Close()
}
