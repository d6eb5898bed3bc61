package report

import "codeberg.org/mutker/zbxreport/internal/errors"

const (
	ErrLookup     = errors.ErrLookup
	ErrNoEntities = errors.ErrNoEntities
	ErrNoData     = errors.ErrNoData
	ErrWrite      = errors.ErrWrite
	ErrAborted    = errors.ErrOperationAbort
)

// IsEmpty reports whether err is one of the informational outcomes where the
// run ends cleanly without writing a file.
func IsEmpty(err error) bool {
	return errors.HasCode(err, ErrNoEntities) || errors.HasCode(err, ErrNoData)
}
