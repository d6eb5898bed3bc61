package sink

import (
	"context"
	"fmt"

	"codeberg.org/mutker/zbxreport/internal/report"
	"github.com/parquet-go/parquet-go"
)

func init() {
	Register(&ParquetFormat{})
}

// ParquetFormat writes a single row group of string columns.
type ParquetFormat struct{}

func (*ParquetFormat) Name() string        { return "parquet" }
func (*ParquetFormat) Extension() string   { return ".parquet" }
func (f *ParquetFormat) Sink() report.Sink { return &parquetSink{ext: f.Extension()} }

// parquetRow mirrors report.Header; column names must stay in sync with it.
type parquetRow struct {
	Host        string `parquet:"Host"`
	CPUUsage    string `parquet:"CPU - Usage (%)"`
	CPUWarn     string `parquet:"CPU - Macro WARN (%)"`
	CPUCrit     string `parquet:"CPU - Macro CRIT (%)"`
	MemoryUsage string `parquet:"Memory - Usage (%)"`
	MemoryWarn  string `parquet:"Memory - Macro WARN (%)"`
	MemoryMax   string `parquet:"Memory - Macro MAX (%)"`
}

type parquetSink struct {
	ext string
}

func (s *parquetSink) Extension() string { return s.ext }

func (s *parquetSink) Write(_ context.Context, path string, rows []report.Row) error {
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	records := make([]parquetRow, len(rows))
	for i, r := range rows {
		records[i] = parquetRow(r)
	}

	if err := parquet.WriteFile(path, records); err != nil {
		return fmt.Errorf("failed to write parquet file: %w", err)
	}

	return nil
}
