package macro

// Resolve layers the three scopes into the effective macros of one entity:
// host over template over global. Inputs are left untouched.
func Resolve(global, template, host Map) Map {
	effective := make(Map, len(global)+len(template)+len(host))
	for _, layer := range []Map{global, template, host} {
		for name, value := range layer {
			effective[name] = value
		}
	}

	return effective
}
