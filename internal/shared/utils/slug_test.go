package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain title", input: "Go Talk", want: "go-talk"},
		{name: "diacritics folded", input: "Café Culture", want: "cafe-culture"},
		{name: "punctuation stripped", input: "What's up, world?", want: "whats-up-world"},
		{name: "repeated separators collapse", input: "a  --  b", want: "a-b"},
		{name: "leading and trailing junk trimmed", input: "  !!hello!!  ", want: "hello"},
		{name: "already a slug", input: "already-a-slug", want: "already-a-slug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}
