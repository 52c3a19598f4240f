// internal/classify/resolver.go

// Package classify merges the parsed sources into one record set and
// computes both inventory classifications per SKU.
package classify

import "strings"

// Resolve looks code up in m, tolerating the two-character suffix some
// source systems append to SKU codes. Resolution order: exact match, then
// suffix stripped, then suffix appended; first hit wins. A miss returns the
// zero value and false; callers treat absence as a soft default, never an
// error.
func Resolve[V any](m map[string]V, code, suffix string) (V, bool) {
	if v, ok := m[code]; ok {
		return v, true
	}
	if stripped := strings.TrimSuffix(code, suffix); stripped != code {
		if v, ok := m[stripped]; ok {
			return v, true
		}
	}
	if v, ok := m[code+suffix]; ok {
		return v, true
	}
	var zero V
	return zero, false
}
