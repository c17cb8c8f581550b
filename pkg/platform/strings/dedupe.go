// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  Awa Diop ", "Moussa Sarr", "Awa Diop", ""})
//	// Returns: []string{"Awa Diop", "Moussa Sarr"}
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
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// SplitTokens splits a comma-joined multi-select value into its tokens.
// Empty input yields an empty, non-nil slice.
func SplitTokens(value string) []string {
	if value == "" {
		return []string{}
	}
	return DedupeAndTrim(strings.Split(value, ","))
}

// JoinTokens is the inverse of SplitTokens.
func JoinTokens(tokens []string) string {
	return strings.Join(tokens, ",")
}

// ContainsFold reports whether substr is within s, ignoring case.
// An empty substr always matches.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
