package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{name: "empty slice", input: []string{}, expected: []string{}},
		{name: "single element", input: []string{"Awa"}, expected: []string{"Awa"}},
		{
			name:     "trims and drops blanks",
			input:    []string{"  Awa ", "", "   ", "Moussa"},
			expected: []string{"Awa", "Moussa"},
		},
		{
			name:     "preserves first occurrence order",
			input:    []string{"Moussa", "Awa", "Moussa", " Awa"},
			expected: []string{"Moussa", "Awa"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestSplitJoinTokens(t *testing.T) {
	assert.Equal(t, []string{}, SplitTokens(""))
	assert.Equal(t, []string{"salaries", "clients"}, SplitTokens("salaries,clients"))
	assert.Equal(t, []string{"salaries", "clients"}, SplitTokens("salaries, clients,,salaries"))
	assert.Equal(t, "salaries,clients", JoinTokens([]string{"salaries", "clients"}))
	assert.Equal(t, "", JoinTokens(nil))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Sonatel SA", "sonatel"))
	assert.True(t, ContainsFold("DEM-1700000000000", "dem-17"))
	assert.True(t, ContainsFold("anything", ""))
	assert.False(t, ContainsFold("Orange", "free"))
}
