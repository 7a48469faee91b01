// Package asset supplies material handles and their colours. Scene
// composition treats handles as opaque; only renderers resolve them.
package asset

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Handle identifies a material. Its meaning belongs to the renderer.
type Handle string

// Default is used for any body without an explicit material.
const Default Handle = "default"

// Ring is the fallback material for rings.
const Ring Handle = "ring"

// Catalog maps body names to material handles.
type Catalog map[string]Handle

// Lookup returns the handle for a body, or Default when none is assigned.
func (c Catalog) Lookup(name string) Handle {
	if h, ok := c[name]; ok && h != "" {
		return h
	}
	return Default
}

// RingLookup returns the handle for a body's ring. A ring is keyed as
// "<body>.ring" and falls back to Ring.
func (c Catalog) RingLookup(body string) Handle {
	if h, ok := c[RingKey(body)]; ok && h != "" {
		return h
	}
	return Ring
}

// RingKey is the catalog key for a body's ring.
func RingKey(body string) string {
	return body + ".ring"
}

// DefaultCatalog assigns one handle per body of the built-in system.
func DefaultCatalog() Catalog {
	c := Catalog{}
	for _, name := range []string{
		"Sun", "Mercury", "Venus", "Earth", "Moon", "Mars", "Phobos", "Deimos",
		"Jupiter", "Saturn", "Uranus", "Neptune",
	} {
		c[name] = Handle(strings.ToLower(name))
	}
	c[RingKey("Saturn")] = "saturn_ring"
	c[RingKey("Uranus")] = "uranus_ring"
	return c
}

// Palette resolves handles to colours.
type Palette struct {
	colors   map[Handle]colorful.Color
	fallback colorful.Color
}

// NewPalette parses a handle → hex colour table ("#rrggbb" or "#rgb").
func NewPalette(hex map[string]string) (*Palette, error) {
	p := &Palette{
		colors:   make(map[Handle]colorful.Color, len(hex)),
		fallback: colorful.Color{R: 1, G: 1, B: 1},
	}
	for name, value := range hex {
		c, err := colorful.Hex(value)
		if err != nil {
			return nil, fmt.Errorf("palette entry %q: %w", name, err)
		}
		p.colors[Handle(name)] = c
	}
	if c, ok := p.colors[Default]; ok {
		p.fallback = c
	}
	return p, nil
}

// MustPalette is NewPalette for built-in tables.
func MustPalette(hex map[string]string) *Palette {
	p, err := NewPalette(hex)
	if err != nil {
		panic(err)
	}
	return p
}

// DefaultPaletteHex is the built-in colour table, keyed by handle.
func DefaultPaletteHex() map[string]string {
	return map[string]string{
		string(Default): "#ffffff",
		string(Ring):    "#c8b88a",
		"sun":           "#fdb813",
		"mercury":       "#b5b5b5",
		"venus":         "#e8cda2",
		"earth":         "#2e86ab",
		"moon":          "#d0d0d0",
		"mars":          "#c1440e",
		"phobos":        "#8c7b6b",
		"deimos":        "#a39382",
		"jupiter":       "#c88b3a",
		"saturn":        "#e4d191",
		"saturn_ring":   "#cfc08a",
		"uranus":        "#7de8e8",
		"uranus_ring":   "#9fd3d3",
		"neptune":       "#3f54ba",
	}
}

// DefaultPalette returns the parsed built-in colour table.
func DefaultPalette() *Palette {
	return MustPalette(DefaultPaletteHex())
}

// Color returns the colour for a handle, falling back to Default's colour.
func (p *Palette) Color(h Handle) colorful.Color {
	if p == nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	if c, ok := p.colors[h]; ok {
		return c
	}
	return p.fallback
}

// RGBA returns the handle's colour as an opaque color.RGBA.
func (p *Palette) RGBA(h Handle) color.RGBA {
	r, g, b := p.Color(h).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Has reports whether the palette defines a colour for the handle.
func (p *Palette) Has(h Handle) bool {
	if p == nil {
		return false
	}
	_, ok := p.colors[h]
	return ok
}
