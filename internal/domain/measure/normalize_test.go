package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Tomate", "tomate"},
		{"strips accents", "plátano", "platano"},
		{"strips tilde accents", "limón", "limon"},
		{"removes parenthetical", "Tomate (maduro)", "tomate"},
		{"removes punctuation", "aceite de oliva, virgen!", "aceite de oliva virgen"},
		{"singularizes simple plural", "tomates", "tomate"},
		{"singularizes after accent strip", "limónes", "limone"},
		{"keeps digits", "leche 2", "leche 2"},
		{"empty input", "", ""},
		{"emoji dropped", "🍅 tomate", "tomate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

func TestNormalizeNameIsIdempotent(t *testing.T) {
	inputs := []string{
		"Tomate (maduro)", "plátanos", "Queso Curado", "huevos", "café",
		"aceite de oliva virgen extra", "PIMIENTOS ROJOS", "ñora",
	}
	for _, in := range inputs {
		once := NormalizeName(in)
		assert.Equal(t, once, NormalizeName(once), "normalize(normalize(%q))", in)
	}
}

func TestSameItem(t *testing.T) {
	tests := []struct {
		a, b  string
		match bool
	}{
		{"tomate", "tomate", true},
		{"tomate", "tomate pera", true},
		{"tomate pera", "tomate", true},
		{"tomate", "cebolla", false},
		// Accepted looseness: short names conflate via substring.
		{"te", "aceite", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.match, SameItem(tt.a, tt.b), "SameItem(%q, %q)", tt.a, tt.b)
		assert.Equal(t, SameItem(tt.a, tt.b), SameItem(tt.b, tt.a), "symmetry for (%q, %q)", tt.a, tt.b)
	}
}
