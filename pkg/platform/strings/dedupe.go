// Package strings provides string slice utilities shared across packages.
package strings

import "strings"

// DedupeAndTrim trims whitespace, drops empties and duplicates, and preserves
// first-appearance order. Used for operator-supplied lists such as broker
// addresses.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
