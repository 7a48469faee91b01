package render

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orrery/pkg/asset"
	"github.com/opd-ai/go-orrery/pkg/physics"
	"github.com/opd-ai/go-orrery/pkg/scene"
)

// Screen is the part of tcell.Screen the terminal renderer draws on.
type Screen interface {
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
	Show()
}

// cellAspect compensates for terminal cells being about twice as tall as wide.
const cellAspect = 2.0

const ringSamples = 48

// TerminalRenderer draws a top-down view of the scene: X runs along
// columns and Z along rows.
type TerminalRenderer struct {
	screen  Screen
	palette *asset.Palette

	width     int
	height    int
	scale     float64 // world units per column
	centerPos physics.Vector3

	showAxes bool
	axesSize float64

	status   string
	occupied map[[2]int]bool
}

// NewTerminalRenderer creates a renderer on screen. scale is the number of
// world units covered by one terminal column.
func NewTerminalRenderer(screen Screen, palette *asset.Palette, scale float64) *TerminalRenderer {
	if scale <= 0 {
		scale = 1
	}
	if palette == nil {
		palette = asset.DefaultPalette()
	}
	width, height := screen.Size()
	return &TerminalRenderer{
		screen:   screen,
		palette:  palette,
		width:    width,
		height:   height,
		scale:    scale,
		occupied: make(map[[2]int]bool),
	}
}

// SetCenter sets the world position shown in the middle of the screen.
func (r *TerminalRenderer) SetCenter(pos physics.Vector3) {
	r.centerPos = pos
}

// SetAxes enables the X and Z axis guides through the origin.
func (r *TerminalRenderer) SetAxes(show bool, size float64) {
	r.showAxes = show
	r.axesSize = size
}

// Annotate implements Annotator.
func (r *TerminalRenderer) Annotate(frame uint64, elapsed float64) {
	r.status = fmt.Sprintf(" frame %d  t=%.2fs ", frame, elapsed)
}

// worldToScreen converts world coordinates to a terminal cell.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector3) (int, int) {
	col := (pos.X-r.centerPos.X)/r.scale + float64(r.width)/2
	row := (pos.Z-r.centerPos.Z)/(r.scale*cellAspect) + float64(r.height)/2
	return int(math.Floor(col)), int(math.Floor(row))
}

func (r *TerminalRenderer) inBounds(x, y int) bool {
	return x >= 0 && x < r.width && y >= 0 && y < r.height
}

func (r *TerminalRenderer) put(x, y int, ch rune, style tcell.Style, overwrite bool) {
	if !r.inBounds(x, y) {
		return
	}
	key := [2]int{x, y}
	if !overwrite && r.occupied[key] {
		return
	}
	r.occupied[key] = true
	r.screen.SetContent(x, y, ch, nil, style)
}

func (r *TerminalRenderer) style(h asset.Handle) tcell.Style {
	c := r.palette.RGBA(h)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// Clear implements Renderer. The screen size is re-read so the view
// follows terminal resizes.
func (r *TerminalRenderer) Clear() {
	r.width, r.height = r.screen.Size()
	r.screen.Clear()
	clear(r.occupied)
	if r.showAxes {
		r.drawAxes()
	}
}

func (r *TerminalRenderer) drawAxes() {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	steps := int(r.axesSize / r.scale)
	for i := -steps; i <= steps; i++ {
		x, y := r.worldToScreen(physics.Vector3{X: float64(i) * r.scale})
		r.put(x, y, '-', style, true)
	}
	for i := -steps; i <= steps; i++ {
		x, y := r.worldToScreen(physics.Vector3{Z: float64(i) * r.scale * cellAspect})
		r.put(x, y, '|', style, true)
	}
	x, y := r.worldToScreen(physics.Vector3{})
	r.put(x, y, '+', style, true)
	// axes never block bodies
	clear(r.occupied)
}

// RenderNode implements Renderer.
func (r *TerminalRenderer) RenderNode(node *scene.Node, world physics.Vector3) {
	if node == nil || node.Mesh == nil {
		return
	}
	style := r.style(node.Mesh.Material)

	switch node.Kind {
	case scene.KindStar:
		r.drawDisc(world, node.Transform.Scale*node.Mesh.Geometry.Extent(), '*', style)
	case scene.KindBody:
		r.drawDisc(world, node.Transform.Scale*node.Mesh.Geometry.Extent(), bodyGlyph(node), style)
	case scene.KindRing:
		r.drawRing(node, world, style)
	}
}

func bodyGlyph(node *scene.Node) rune {
	for _, ch := range node.Name {
		if node.Parent() != nil && node.Parent().Kind == scene.KindBody {
			return unicode.ToLower(ch)
		}
		return unicode.ToUpper(ch)
	}
	return 'o'
}

func (r *TerminalRenderer) drawDisc(center physics.Vector3, radius float64, ch rune, style tcell.Style) {
	cx, cy := r.worldToScreen(center)
	cols := int(radius / r.scale)
	rows := int(radius / (r.scale * cellAspect))
	if cols == 0 || rows == 0 {
		r.put(cx, cy, ch, style, true)
		return
	}
	for dy := -rows; dy <= rows; dy++ {
		for dx := -cols; dx <= cols; dx++ {
			nx := float64(dx) / float64(cols)
			ny := float64(dy) / float64(rows)
			if nx*nx+ny*ny <= 1 {
				r.put(cx+dx, cy+dy, ch, style, true)
			}
		}
	}
}

// drawRing traces the outer edge of the ring as seen from above. The tilt
// about X foreshortens the ring along Z.
func (r *TerminalRenderer) drawRing(node *scene.Node, world physics.Vector3, style tcell.Style) {
	outer := node.Mesh.Geometry.Extent() * node.Transform.Scale
	squash := math.Abs(math.Cos(node.Transform.Rotation.X))
	for i := 0; i < ringSamples; i++ {
		a := 2 * math.Pi * float64(i) / ringSamples
		p := world.Add(physics.Vector3{
			X: math.Cos(a) * outer,
			Z: math.Sin(a) * outer * squash,
		})
		x, y := r.worldToScreen(p)
		r.put(x, y, '.', style, false)
	}
}

// Present implements Renderer.
func (r *TerminalRenderer) Present() {
	if r.status != "" {
		style := tcell.StyleDefault.Reverse(true)
		for i, ch := range strings.TrimRight(r.status, "\n") {
			r.put(i, 0, ch, style, true)
		}
	}
	r.screen.Show()
}
