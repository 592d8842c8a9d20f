// Package envutil resolves CLI flag defaults from the environment, so
// flags show their effective default in --help output.
package envutil

import "strings"

// String returns the trimmed value of key, or def when the variable is
// unset or blank.
func String(getenv func(string) string, key string, def string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return def
}

// Bool reads a boolean toggle. Unset, blank, or unrecognized values fall
// back to def.
func Bool(getenv func(string) string, key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(getenv(key))) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
