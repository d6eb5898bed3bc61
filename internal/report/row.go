package report

import "codeberg.org/mutker/zbxreport/internal/macro"

// Header is the column layout of every report. Downstream consumers rely on
// the exact names and order.
var Header = []string{
	"Host",
	"CPU - Usage (%)",
	"CPU - Macro WARN (%)",
	"CPU - Macro CRIT (%)",
	"Memory - Usage (%)",
	"Memory - Macro WARN (%)",
	"Memory - Macro MAX (%)",
}

// Row is one host's line in the report.
type Row struct {
	Host        string
	CPUUsage    string
	CPUWarn     string
	CPUCrit     string
	MemoryUsage string
	MemoryWarn  string
	MemoryMax   string
}

// Values returns the row's cells in Header order.
func (r Row) Values() []string {
	return []string{
		r.Host,
		r.CPUUsage,
		r.CPUWarn,
		r.CPUCrit,
		r.MemoryUsage,
		r.MemoryWarn,
		r.MemoryMax,
	}
}

// BuildRow projects an entity's effective macros and current usage values onto
// a report row.
func BuildRow(entity Entity, effective macro.Map, cpuUsage, memoryUsage string) Row {
	return Row{
		Host:        entity.Name,
		CPUUsage:    cpuUsage,
		CPUWarn:     effective.Get(macro.CPUUtilWarn),
		CPUCrit:     effective.Get(macro.CPUUtilCrit),
		MemoryUsage: memoryUsage,
		MemoryWarn:  effective.Get(macro.MemoryUtilWarn),
		MemoryMax:   effective.Get(macro.MemoryUtilMax),
	}
}
