package render

import (
	"strings"
	"testing"
)

func TestLookupPalette(t *testing.T) {
	for _, name := range PaletteNames() {
		if _, err := LookupPalette(strings.ToUpper(name)); err != nil {
			t.Errorf("LookupPalette(%q): %v", name, err)
		}
	}

	tests := []struct {
		name string
		want string
	}{
		{"papr", `did you mean "paper"`},
		{"clasic", `did you mean "classic"`},
		{"neon", "have classic, paper, terminal"},
	}
	for _, tt := range tests {
		_, err := LookupPalette(tt.name)
		if err == nil {
			t.Errorf("LookupPalette(%q): expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("LookupPalette(%q) = %v, want mention of %s", tt.name, err, tt.want)
		}
	}
}
