package report

import (
	"context"

	"codeberg.org/mutker/zbxreport/internal/macro"
	"codeberg.org/mutker/zbxreport/internal/metrics"
)

// Entity is a monitored host and the templates linked to it, in link order.
type Entity struct {
	ID          string
	Name        string
	TemplateIDs []string
}

// EntityDirectory lists the hosts of a host group.
type EntityDirectory interface {
	Entities(ctx context.Context, groupID string) ([]Entity, error)
}

// MacroSource returns the raw macros of one scope.
type MacroSource interface {
	Macros(ctx context.Context, scope macro.Scope) ([]macro.Record, error)
}

// Source bundles everything the generator reads from the monitoring server.
type Source interface {
	EntityDirectory
	MacroSource
	metrics.Source
}

// Sink persists a finished report.
type Sink interface {
	// Extension is the file suffix the sink writes, including the dot
	Extension() string
	Write(ctx context.Context, path string, rows []Row) error
}
