package zabbix

import (
	"context"

	"codeberg.org/mutker/zbxreport/internal/macro"
	"codeberg.org/mutker/zbxreport/internal/metrics"
	"codeberg.org/mutker/zbxreport/internal/report"
)

var _ report.Source = (*Session)(nil)

type host struct {
	HostID          string `json:"hostid"`
	Name            string `json:"name"`
	ParentTemplates []struct {
		TemplateID string `json:"templateid"`
		Name       string `json:"name"`
	} `json:"parentTemplates"`
}

type userMacro struct {
	Macro string  `json:"macro"`
	Value *string `json:"value"`
}

type item struct {
	Key       string  `json:"key_"`
	LastValue *string `json:"lastvalue"`
}

// Entities lists the hosts of a group with their linked templates, in the
// order the server returns them.
func (s *Session) Entities(ctx context.Context, groupID string) ([]report.Entity, error) {
	var hosts []host
	err := s.client.call(ctx, s.token, "host.get", map[string]any{
		"output":                []string{"hostid", "name"},
		"groupids":              groupID,
		"selectParentTemplates": []string{"templateid", "name"},
	}, &hosts)
	if err != nil {
		return nil, err
	}

	entities := make([]report.Entity, 0, len(hosts))
	for _, h := range hosts {
		templateIDs := make([]string, 0, len(h.ParentTemplates))
		for _, tpl := range h.ParentTemplates {
			templateIDs = append(templateIDs, tpl.TemplateID)
		}
		entities = append(entities, report.Entity{
			ID:          h.HostID,
			Name:        h.Name,
			TemplateIDs: templateIDs,
		})
	}

	return entities, nil
}

// Macros returns the user macros of a scope. Template and host scopes only
// include macros defined directly on that object.
func (s *Session) Macros(ctx context.Context, scope macro.Scope) ([]macro.Record, error) {
	params := map[string]any{
		"output": []string{"macro", "value"},
	}
	if scope.Kind == macro.ScopeGlobal {
		params["globalmacro"] = true
	} else {
		params["hostids"] = scope.ID
		params["inherited"] = false
	}

	var macros []userMacro
	if err := s.client.call(ctx, s.token, "usermacro.get", params, &macros); err != nil {
		return nil, err
	}

	records := make([]macro.Record, 0, len(macros))
	for _, m := range macros {
		records = append(records, macro.Record{Name: m.Macro, Value: m.Value})
	}

	return records, nil
}

// Series searches the host's items by key.
func (s *Session) Series(ctx context.Context, entityID, keyPattern string) ([]metrics.Series, error) {
	var items []item
	err := s.client.call(ctx, s.token, "item.get", map[string]any{
		"output":  []string{"key_", "lastvalue"},
		"hostids": entityID,
		"search":  map[string]string{"key_": keyPattern},
	}, &items)
	if err != nil {
		return nil, err
	}

	series := make([]metrics.Series, 0, len(items))
	for _, it := range items {
		series = append(series, metrics.Series{Key: it.Key, LastValue: it.LastValue})
	}

	return series, nil
}
