package forms

import (
	"maps"
	"slices"

	pstrings "cdp/pkg/platform/strings"
)

// Answers maps field name to value. Multi-select values are comma-joined tokens.
type Answers map[string]string

// Clone returns an independent copy.
func (a Answers) Clone() Answers {
	return maps.Clone(a)
}

// Tokens splits a multi-select value.
func (a Answers) Tokens(field string) []string {
	return pstrings.SplitTokens(a[field])
}

// HasToken reports whether the multi-select field contains token.
func (a Answers) HasToken(field, token string) bool {
	return slices.Contains(a.Tokens(field), token)
}

// FieldErrors maps field name to a human-readable message.
type FieldErrors map[string]string

func (e FieldErrors) Clone() FieldErrors {
	return maps.Clone(e)
}
