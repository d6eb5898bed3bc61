// Package sink writes finished reports to disk in one of several tabular
// formats.
package sink

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codeberg.org/mutker/zbxreport/internal/errors"
	"codeberg.org/mutker/zbxreport/internal/report"
)

const (
	DefaultFormat = "xlsx"

	defaultDirPerm = 0o755
)

// Format creates sinks for one file format.
type Format interface {
	Name() string
	Extension() string
	Sink() report.Sink
}

var registry = make(map[string]Format)

// Register adds a format to the registry.
func Register(f Format) {
	registry[strings.ToLower(f.Name())] = f
}

// Get returns a format by name.
func Get(name string) (Format, bool) {
	f, ok := registry[strings.ToLower(name)]
	return f, ok
}

// New returns a sink for the named format.
func New(name string) (report.Sink, error) {
	if name == "" {
		name = DefaultFormat
	}

	f, ok := Get(name)
	if !ok {
		return nil, errors.New().WithData(errors.ErrUnknownFormat, struct {
			Format    string
			Supported []string
		}{
			Format:    name,
			Supported: Names(),
		})
	}

	return f.Sink(), nil
}

// Names lists the registered formats in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}

	return os.MkdirAll(dir, defaultDirPerm)
}
