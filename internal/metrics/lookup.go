package metrics

import (
	"context"

	"codeberg.org/mutker/zbxreport/internal/macro"
)

// Item keys searched on every host
const (
	CPUUtilKey    = "system.cpu.util"
	MemoryUsedKey = "vm.memory.size[pused]"
)

// Series is one item matching a key search, with its latest value.
type Series struct {
	Key       string
	LastValue *string
}

// Source searches the items of a host by key pattern.
type Source interface {
	Series(ctx context.Context, entityID, keyPattern string) ([]Series, error)
}

// LatestValue returns the latest value of the first series matching
// keyPattern on the entity, or macro.NotAvailable when nothing matched.
//
// A pattern can match several items (per-core discovery, for one). The first
// one is taken in the order the source returned it.
func LatestValue(ctx context.Context, src Source, entityID, keyPattern string) (string, error) {
	series, err := src.Series(ctx, entityID, keyPattern)
	if err != nil {
		return "", err
	}

	if len(series) == 0 || series[0].LastValue == nil {
		return macro.NotAvailable, nil
	}

	return *series[0].LastValue, nil
}
