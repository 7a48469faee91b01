package asset

import (
	"image/color"
	"testing"
)

func TestCatalog_Lookup(t *testing.T) {
	c := Catalog{"Earth": "earth", "Blank": ""}

	tests := []struct {
		name     string
		body     string
		expected Handle
	}{
		{"assigned", "Earth", "earth"},
		{"missing_falls_back", "Pluto", Default},
		{"empty_falls_back", "Blank", Default},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Lookup(tt.body); got != tt.expected {
				t.Errorf("Lookup(%q) = %q, expected %q", tt.body, got, tt.expected)
			}
		})
	}
}

func TestCatalog_RingLookup(t *testing.T) {
	c := DefaultCatalog()
	if got := c.RingLookup("Saturn"); got != "saturn_ring" {
		t.Errorf("expected saturn_ring, got %q", got)
	}
	if got := c.RingLookup("Earth"); got != Ring {
		t.Errorf("expected fallback ring handle, got %q", got)
	}
}

func TestDefaultCatalog_CoveredByDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	for name, h := range DefaultCatalog() {
		if !p.Has(h) {
			t.Errorf("catalog entry %q uses handle %q with no palette colour", name, h)
		}
	}
}

func TestNewPalette(t *testing.T) {
	t.Run("parses_hex", func(t *testing.T) {
		p, err := NewPalette(map[string]string{"earth": "#2e86ab"})
		if err != nil {
			t.Fatalf("NewPalette() failed: %v", err)
		}
		got := p.RGBA("earth")
		want := color.RGBA{R: 0x2e, G: 0x86, B: 0xab, A: 255}
		if got != want {
			t.Errorf("RGBA(earth) = %v, want %v", got, want)
		}
	})

	t.Run("rejects_bad_hex", func(t *testing.T) {
		if _, err := NewPalette(map[string]string{"earth": "blue-ish"}); err == nil {
			t.Fatal("expected error for malformed colour")
		}
	})

	t.Run("unknown_handle_uses_default_colour", func(t *testing.T) {
		p, err := NewPalette(map[string]string{string(Default): "#102030"})
		if err != nil {
			t.Fatalf("NewPalette() failed: %v", err)
		}
		want := color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}
		if got := p.RGBA("nope"); got != want {
			t.Errorf("RGBA(nope) = %v, want %v", got, want)
		}
	})

	t.Run("nil_palette_is_white", func(t *testing.T) {
		var p *Palette
		want := color.RGBA{R: 255, G: 255, B: 255, A: 255}
		if got := p.RGBA("earth"); got != want {
			t.Errorf("RGBA on nil palette = %v, want %v", got, want)
		}
	})
}
