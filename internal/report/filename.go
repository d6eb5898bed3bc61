package report

import "strings"

// NormalizeFilename appends ext to name unless name already ends with it,
// compared case-insensitively. The original casing is kept.
func NormalizeFilename(name, ext string) string {
	if ext == "" || strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext)) {
		return name
	}

	return name + ext
}
