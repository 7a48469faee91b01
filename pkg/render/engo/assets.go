// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/opd-ai/go-orrery/pkg/asset"
	"github.com/opd-ai/go-orrery/pkg/scene"
)

// hudFontURL is the virtual file name the embedded HUD font is loaded under.
const hudFontURL = "orrery/gomono.ttf"

// AssetManager turns material handles into engo colours and drawables
type AssetManager struct {
	palette    *asset.Palette
	background color.Color
	colors     map[asset.Handle]color.Color
}

// NewAssetManager creates an asset manager over a palette. background is
// a hex colour; an unparsable value falls back to the default grey.
func NewAssetManager(palette *asset.Palette, background string) *AssetManager {
	if palette == nil {
		palette = asset.DefaultPalette()
	}
	bg := color.Color(color.RGBA{0xcc, 0xcc, 0xcc, 0xff})
	if c, err := colorful.Hex(background); err == nil {
		r, g, b := c.RGB255()
		bg = color.RGBA{r, g, b, 0xff}
	}
	return &AssetManager{
		palette:    palette,
		background: bg,
		colors:     make(map[asset.Handle]color.Color),
	}
}

// Color returns the colour for a material handle
func (am *AssetManager) Color(h asset.Handle) color.Color {
	if c, ok := am.colors[h]; ok {
		return c
	}
	c := am.palette.RGBA(h)
	am.colors[h] = c
	return c
}

// Background returns the clear colour
func (am *AssetManager) Background() color.Color {
	return am.background
}

// Drawable returns the shape used for a node. Spheres are filled discs;
// a ring is a circle outline whose border spans the ring's width.
func (am *AssetManager) Drawable(node *scene.Node, pixelsPerUnit float32) common.Drawable {
	if node.Kind == scene.KindRing && node.Mesh != nil {
		if g, ok := node.Mesh.Geometry.(*scene.RingGeometry); ok {
			return common.Circle{
				BorderWidth: float32(g.OuterRadius-g.InnerRadius) * pixelsPerUnit,
				BorderColor: am.Color(node.Mesh.Material),
			}
		}
	}
	return common.Circle{}
}

// LoadHUDFont loads the embedded monospace font into engo's file store and
// returns it ready for text drawables. It needs a running engo window.
func (am *AssetManager) LoadHUDFont(size float64) (*common.Font, error) {
	if err := engo.Files.LoadReaderData(hudFontURL, bytes.NewReader(gomono.TTF)); err != nil {
		return nil, fmt.Errorf("failed to load HUD font: %w", err)
	}
	font := &common.Font{
		URL:  hudFontURL,
		FG:   color.Black,
		Size: size,
	}
	if err := font.CreatePreloaded(); err != nil {
		return nil, fmt.Errorf("failed to prepare HUD font: %w", err)
	}
	return font, nil
}
