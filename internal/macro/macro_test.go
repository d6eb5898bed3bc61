package macro_test

import (
	"testing"

	"codeberg.org/mutker/zbxreport/internal/macro"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestNormalize(t *testing.T) {
	got := macro.Normalize([]macro.Record{
		{Name: "{$cpu.util.warn}", Value: ptr("70")},
		{Name: "{$SECRET}"},
		{Name: "{$CPU.UTIL.WARN}", Value: ptr("75")},
	})

	want := macro.Map{
		"{$CPU.UTIL.WARN}": "75",
		"{$SECRET}":        macro.NotAvailable,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Empty(t, macro.Normalize(nil))
}

func TestCollapseFirstTemplateWins(t *testing.T) {
	t1 := macro.Map{"{$M}": "t1", "{$ONLY.T1}": "a"}
	t2 := macro.Map{"{$M}": "t2", "{$ONLY.T2}": "b"}

	got := macro.Collapse([]macro.Map{t1, t2})
	want := macro.Map{"{$M}": "t1", "{$ONLY.T1}": "a", "{$ONLY.T2}": "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Collapse() mismatch (-want +got):\n%s", diff)
	}

	reversed := macro.Collapse([]macro.Map{t2, t1})
	assert.Equal(t, "t2", reversed["{$M}"])
}

func TestCollapseNoTemplates(t *testing.T) {
	got := macro.Collapse(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestResolveOverridePriority(t *testing.T) {
	global := macro.Map{"{$M}": "global", "{$G}": "g", "{$GT}": "global"}
	template := macro.Map{"{$M}": "template", "{$GT}": "template", "{$T}": "t"}
	host := macro.Map{"{$M}": "host", "{$H}": "h"}

	got := macro.Resolve(global, template, host)
	want := macro.Map{
		"{$M}":  "host",
		"{$G}":  "g",
		"{$GT}": "template",
		"{$T}":  "t",
		"{$H}":  "h",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveDoesNotMutateInputs(t *testing.T) {
	global := macro.Map{"{$M}": "global"}
	host := macro.Map{"{$M}": "host"}

	got := macro.Resolve(global, nil, host)
	got["{$NEW}"] = "x"

	assert.Equal(t, macro.Map{"{$M}": "global"}, global)
	assert.Equal(t, macro.Map{"{$M}": "host"}, host)
}

func TestMapGet(t *testing.T) {
	m := macro.Map{macro.CPUUtilWarn: "80"}

	assert.Equal(t, "80", m.Get("{$cpu.util.warn}"))
	assert.Equal(t, macro.NotAvailable, m.Get(macro.CPUUtilCrit))
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "global", macro.Global().String())
	assert.Equal(t, "template:10001", macro.Template("10001").String())
	assert.Equal(t, "host:42", macro.Host("42").String())
}
