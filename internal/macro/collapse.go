package macro

// Collapse merges the macro maps of an entity's linked templates, given in
// link order. The first template defining a name wins.
func Collapse(templates []Map) Map {
	collapsed := make(Map)
	for _, tpl := range templates {
		for name, value := range tpl {
			if _, ok := collapsed[name]; ok {
				continue
			}
			collapsed[name] = value
		}
	}

	return collapsed
}
