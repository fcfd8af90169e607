package matching

import (
	"regexp"
	"strings"
)

// Trailing ", <country>" suffixes dropped from destinations before comparison.
var countrySuffix = regexp.MustCompile(`,\s*(india|usa|uk|united states|united kingdom|canada|australia|japan|china)$`)

// NormalizeDestination lower-cases a destination and strips known trailing
// country names, so "Goa, India" and "GOA" compare equal.
func NormalizeDestination(destination string) string {
	if destination == "" {
		return ""
	}
	d := strings.TrimSpace(strings.ToLower(destination))
	for {
		stripped := strings.TrimSpace(countrySuffix.ReplaceAllString(d, ""))
		if stripped == d {
			return d
		}
		d = stripped
	}
}
