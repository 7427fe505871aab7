package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Rice", "rice"},
		{"with spaces", "Sugar Cane", "sugar-cane"},
		{"parentheses", "Pearl Millet (Bajra)", "pearl-millet-bajra"},
		{"leading and trailing spaces", "  Wheat  ", "wheat"},
		{"multiple separators", "Red -- Gram", "red-gram"},
		{"punctuation", "Farmer's Choice!", "farmer-s-choice"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}
