// Package report assembles the per-host threshold report from the scopes and
// items of a monitoring server.
package report

import (
	"context"

	"codeberg.org/mutker/zbxreport/internal/errors"
	"codeberg.org/mutker/zbxreport/internal/logger"
	"codeberg.org/mutker/zbxreport/internal/macro"
	"codeberg.org/mutker/zbxreport/internal/metrics"
)

// Request names the host group to report on and where to write the result.
type Request struct {
	GroupID string
	Output  string
}

// Result describes a written report.
type Result struct {
	Path string
	Rows int
}

type Generator struct {
	source Source
	sink   Sink
	log    logger.Logger
}

func NewGenerator(source Source, sink Sink, log logger.Logger) *Generator {
	if log == nil {
		log = logger.Default()
	}

	return &Generator{
		source: source,
		sink:   sink,
		log:    log,
	}
}

// Generate builds one row per host of the group, in the order the directory
// lists them, and hands the rows to the sink. Any lookup failure aborts the
// whole run; no partial report is written.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	errFactory := errors.New()

	entities, err := g.source.Entities(ctx, req.GroupID)
	if err != nil {
		return nil, lookupError(err, "list_hosts", req.GroupID)
	}

	if len(entities) == 0 {
		return nil, errFactory.WithData(ErrNoEntities, req.GroupID)
	}

	g.log.Info().
		Str("group_id", req.GroupID).
		Int("hosts", len(entities)).
		Msg("Collecting host data")

	globalRecords, err := g.source.Macros(ctx, macro.Global())
	if err != nil {
		return nil, lookupError(err, "global_macros", "")
	}
	globalMacros := macro.Normalize(globalRecords)

	rows := make([]Row, 0, len(entities))
	for _, entity := range entities {
		if err := ctx.Err(); err != nil {
			return nil, errFactory.Wrap(ErrAborted, err)
		}

		row, err := g.buildRow(ctx, entity, globalMacros)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, errFactory.WithData(ErrNoData, req.GroupID)
	}

	path := NormalizeFilename(req.Output, g.sink.Extension())
	if err := g.sink.Write(ctx, path, rows); err != nil {
		return nil, errFactory.Wrap(ErrWrite, err).WithData(path)
	}

	g.log.Info().
		Str("path", path).
		Int("rows", len(rows)).
		Msg("Report written")

	return &Result{Path: path, Rows: len(rows)}, nil
}

func (g *Generator) buildRow(ctx context.Context, entity Entity, globalMacros macro.Map) (Row, error) {
	hostRecords, err := g.source.Macros(ctx, macro.Host(entity.ID))
	if err != nil {
		return Row{}, lookupError(err, "host_macros", entity.ID)
	}

	templateMacros, err := g.templateMacros(ctx, entity)
	if err != nil {
		return Row{}, err
	}

	effective := macro.Resolve(globalMacros, templateMacros, macro.Normalize(hostRecords))

	cpuUsage, err := metrics.LatestValue(ctx, g.source, entity.ID, metrics.CPUUtilKey)
	if err != nil {
		return Row{}, lookupError(err, "cpu_usage", entity.ID)
	}

	memoryUsage, err := metrics.LatestValue(ctx, g.source, entity.ID, metrics.MemoryUsedKey)
	if err != nil {
		return Row{}, lookupError(err, "memory_usage", entity.ID)
	}

	g.log.Debug().
		Str("host_id", entity.ID).
		Str("host", entity.Name).
		Int("templates", len(entity.TemplateIDs)).
		Int("effective_macros", len(effective)).
		Str("cpu_usage", cpuUsage).
		Str("memory_usage", memoryUsage).
		Msg("Host resolved")

	return BuildRow(entity, effective, cpuUsage, memoryUsage), nil
}

func (g *Generator) templateMacros(ctx context.Context, entity Entity) (macro.Map, error) {
	templates := make([]macro.Map, 0, len(entity.TemplateIDs))
	for _, id := range entity.TemplateIDs {
		records, err := g.source.Macros(ctx, macro.Template(id))
		if err != nil {
			return nil, lookupError(err, "template_macros", id)
		}
		templates = append(templates, macro.Normalize(records))
	}

	return macro.Collapse(templates), nil
}

func lookupError(err error, phase, id string) error {
	return errors.New().Wrap(ErrLookup, err).WithData(struct {
		Phase string
		ID    string
	}{
		Phase: phase,
		ID:    id,
	})
}
