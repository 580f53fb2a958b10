package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"José Çelik", "JOSE CELIK"},
		{"  maría lópez  ", "MARIA LOPEZ"},
		{"O'Brien", "O'BRIEN"},
		{"MÜLLER", "MULLER"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FoldName(tt.in), "input %q", tt.in)
	}
}

func TestNameMatches(t *testing.T) {
	tests := []struct {
		name      string
		applicant string
		haystack  string
		want      bool
	}{
		{"exact", "Anna Eriksson", "Surname: ERIKSSON Given: ANNA", true},
		{"middle name ignored", "Carlos Eduardo Silva", "CARLOS SILVA", true},
		{"diacritics folded", "José Pereira", "JOSE PEREIRA", true},
		{"missing surname", "Anna Eriksson", "ANNA SMITH", false},
		{"empty applicant", "", "ANNA ERIKSSON", false},
		{"empty haystack", "Anna Eriksson", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nameMatches(tt.applicant, tt.haystack))
		})
	}
}
