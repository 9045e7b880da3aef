package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  cat  ", "cat"},
		{"collapses runs", "big   red\tdog", "big red dog"},
		{"lowercases", "The Cat", "the cat"},
		{"strips punctuation", "It's... (almost) done - right?", "it's almost done right?"},
		{"strips full blocklist", ".,/#!$%^&*;:{}=-_`~()", ""},
		{"empty", "", ""},
		{"only whitespace", "   \t\n ", ""},
		{"punctuation between words collapses", "well - known", "well known"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"  The quick, brown fox!  ",
		"already normalized",
		"punct-u_ation;every{where}",
		"",
		"MIXED   Case\tAnd\nLines",
	}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %q", input)
	}
}
