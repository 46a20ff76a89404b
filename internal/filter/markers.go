package filter

import "strings"

// IsConditional reports whether a source line contains any of the markers.
func IsConditional(line string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(line, m) {
			return true
		}
	}

	return false
}

func isSystemPath(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}
