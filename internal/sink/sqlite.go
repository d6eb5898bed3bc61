package sink

import (
	"context"
	"database/sql"

	"codeberg.org/mutker/zbxreport/internal/errors"
	"codeberg.org/mutker/zbxreport/internal/logger"
	"codeberg.org/mutker/zbxreport/internal/report"

	_ "github.com/mattn/go-sqlite3"
)

func init() {
	Register(&SQLiteFormat{})
}

// SQLiteFormat writes the report into a report_rows table, keeping the row
// order in the position column.
type SQLiteFormat struct{}

func (*SQLiteFormat) Name() string        { return "sqlite" }
func (*SQLiteFormat) Extension() string   { return ".db" }
func (f *SQLiteFormat) Sink() report.Sink { return &sqliteSink{ext: f.Extension(), log: logger.Default()} }

type sqliteSink struct {
	ext string
	log logger.Logger
}

func (s *sqliteSink) Extension() string { return s.ext }

func (s *sqliteSink) Write(ctx context.Context, path string, rows []report.Row) (err error) {
	errFactory := errors.New()

	if err := ensureDir(path); err != nil {
		return errFactory.Wrap(ErrStorageInit, err).WithData(path)
	}

	db, err := sql.Open("sqlite3", path+"?_journal=DELETE")
	if err != nil {
		return errFactory.Wrap(ErrStorageInit, err).WithData(path)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = errFactory.Wrap(ErrStorageClose, cerr)
		}
	}()

	if err := resetSchema(db, s.log); err != nil {
		return err
	}

	return s.insert(ctx, db, rows)
}

func (s *sqliteSink) insert(ctx context.Context, db *sql.DB, rows []report.Row) error {
	errFactory := errors.New()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertRowSQL)
	if err != nil {
		if err := tx.Rollback(); err != nil {
			s.log.Error().Err(err).Msg("Failed to roll back transaction")
		}
		return errFactory.Wrap(ErrTransactionFailed, err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			i,
			row.Host,
			row.CPUUsage,
			row.CPUWarn,
			row.CPUCrit,
			row.MemoryUsage,
			row.MemoryWarn,
			row.MemoryMax,
		); err != nil {
			if err := tx.Rollback(); err != nil {
				s.log.Error().Err(err).Msg("Failed to roll back transaction")
			}
			return errFactory.Wrap(ErrTransactionFailed, err).WithData(row.Host)
		}
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	s.log.Debug().Int("rows", len(rows)).Msg("Report rows stored")

	return nil
}
