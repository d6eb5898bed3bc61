// Package macro resolves user macros across the global, template and host
// scopes of a monitoring configuration.
package macro

import "strings"

// NotAvailable is reported wherever a value is missing.
const NotAvailable = "N/A"

// Threshold macros read into every report row
const (
	CPUUtilWarn    = "{$CPU.UTIL.WARN}"
	CPUUtilCrit    = "{$CPU.UTIL.CRIT}"
	MemoryUtilWarn = "{$MEMORY.UTIL.WARN}"
	MemoryUtilMax  = "{$MEMORY.UTIL.MAX}"
)

// Record is a raw macro as returned by a macro source. A nil Value means the
// source returned no value (secret macros, for instance).
type Record struct {
	Name  string
	Value *string
}

// Map holds macro values keyed by canonical name.
type Map map[string]string

// Get returns the value for name, or NotAvailable.
func (m Map) Get(name string) string {
	if v, ok := m[Canonical(name)]; ok {
		return v
	}

	return NotAvailable
}

// Canonical returns the identifier used to compare macro names.
func Canonical(name string) string {
	return strings.ToUpper(name)
}

// ScopeKind identifies where a macro is defined.
type ScopeKind string

const (
	ScopeGlobal   ScopeKind = "global"
	ScopeTemplate ScopeKind = "template"
	ScopeHost     ScopeKind = "host"
)

// Scope selects the macros of one configuration level. Template and host
// scopes only ever cover directly assigned, non-inherited macros.
type Scope struct {
	Kind ScopeKind
	ID   string
}

func Global() Scope {
	return Scope{Kind: ScopeGlobal}
}

func Template(id string) Scope {
	return Scope{Kind: ScopeTemplate, ID: id}
}

func Host(id string) Scope {
	return Scope{Kind: ScopeHost, ID: id}
}

func (s Scope) String() string {
	if s.Kind == ScopeGlobal {
		return string(s.Kind)
	}

	return string(s.Kind) + ":" + s.ID
}
