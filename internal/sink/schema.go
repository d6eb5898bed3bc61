package sink

import (
	"database/sql"

	"codeberg.org/mutker/zbxreport/internal/errors"
	"codeberg.org/mutker/zbxreport/internal/logger"
)

const (
	SchemaVersion = 1

	ErrSchemaInitFailed  = errors.ErrorCode("sink_schema_init_failed")
	ErrSchemaResetFailed = errors.ErrorCode("sink_schema_reset_failed")
	ErrTransactionFailed = errors.ErrorCode("sink_transaction_failed")
	ErrStorageInit       = errors.ErrorCode("sink_storage_init_failed")
	ErrStorageClose      = errors.ErrorCode("sink_storage_close_failed")

	createTablesSQL = `
	   CREATE TABLE IF NOT EXISTS schema_versions (
	       version     INTEGER PRIMARY KEY,
	       applied_at  TEXT NOT NULL
	   );
	   CREATE TABLE IF NOT EXISTS report_rows (
	       position     INTEGER PRIMARY KEY,
	       host         TEXT NOT NULL,
	       cpu_usage    TEXT NOT NULL,
	       cpu_warn     TEXT NOT NULL,
	       cpu_crit     TEXT NOT NULL,
	       memory_usage TEXT NOT NULL,
	       memory_warn  TEXT NOT NULL,
	       memory_max   TEXT NOT NULL
	   );`

	insertRowSQL = `
    INSERT INTO report_rows (
        position, host,
        cpu_usage, cpu_warn, cpu_crit,
        memory_usage, memory_warn, memory_max
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
)

// resetSchema drops whatever a previous run left in the file and creates the
// current schema. Each report file holds exactly one report.
func resetSchema(db *sql.DB, log logger.Logger) error {
	if err := dropTables(db, log); err != nil {
		return err
	}

	return initSchema(db, log)
}

func initSchema(db *sql.DB, log logger.Logger) error {
	errFactory := errors.New()

	tx, err := db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}

	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				log.Debug().Err(err).Msg("Failed to rollback transaction")
			}
		}
	}()

	if _, err := tx.Exec(createTablesSQL); err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err).WithData(struct {
			Phase string
		}{
			Phase: "create_tables",
		})
	}

	if _, err := tx.Exec(`
        INSERT INTO schema_versions (version, applied_at)
        VALUES (?, datetime('now'))
    `, SchemaVersion); err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err).WithData(struct {
			Phase string
		}{
			Phase: "record_version",
		})
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}
	committed = true

	log.Debug().
		Int("version", SchemaVersion).
		Msg("Schema initialized")

	return nil
}

func dropTables(db *sql.DB, log logger.Logger) error {
	errFactory := errors.New()

	tx, err := db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrSchemaResetFailed, err)
	}

	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				log.Debug().Err(err).Msg("Failed to rollback drop tables")
			}
		}
	}()

	tables := []string{"report_rows", "schema_versions"}
	for _, table := range tables {
		if _, err := tx.Exec("DROP TABLE IF EXISTS " + table); err != nil {
			return errFactory.Wrap(ErrSchemaResetFailed, err).WithData(struct {
				Phase string
				Table string
			}{
				Phase: "drop_table",
				Table: table,
			})
		}
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrSchemaResetFailed, err)
	}
	committed = true

	return nil
}
