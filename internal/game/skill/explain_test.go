package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatExplain(t *testing.T) {
	tests := []struct {
		name     string
		template string
		x        int
		want     string
	}{
		{"blank", "  ", 12, "12"},
		{"placeholder", "+{0}% ATK", 12, "+12% ATK"},
		{"placeholder wins over x", "x{0}", 3, "x3"},
		{"lower x", "ATK +x%", 12, "ATK +12%"},
		{"upper X", "HP +X", 7, "HP +7"},
		{"no marker", "Power", 12, "Power (12)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatExplain(tt.template, tt.x))
		})
	}
}

func TestParseCooldown(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 10},
		{"-", 10},
		{" 8 ", 8},
		{"2.5", 2.5},
		{"abc", 10},
		{"NaN", 10},
		{"Inf", 10},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseCooldown(tt.in, 10), 1e-9)
		})
	}
}
