package macro

// Normalize canonicalizes one scope's raw records. Missing values become
// NotAvailable and a repeated name keeps its last value.
func Normalize(records []Record) Map {
	m := make(Map, len(records))
	for _, r := range records {
		value := NotAvailable
		if r.Value != nil {
			value = *r.Value
		}
		m[Canonical(r.Name)] = value
	}

	return m
}
