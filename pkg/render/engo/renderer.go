// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orrery/pkg/physics"
	"github.com/opd-ai/go-orrery/pkg/scene"
)

// entitySink is the part of common.RenderSystem the renderer feeds.
type entitySink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// nodeEntity keeps the components of one scene node alive between frames.
// The render system holds pointers to them, so updates apply in place.
type nodeEntity struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
	seen   bool
}

// EngoRenderer implements render.Renderer by mirroring scene nodes as ecs
// entities.
type EngoRenderer struct {
	sink   entitySink
	assets *AssetManager
	camera *CameraSystem
	hud    *HUDSystem

	entities map[string]*nodeEntity
	order    []string

	axes     []*nodeEntity
	axesSize float64
}

// NewEngoRenderer creates a renderer that adds its entities to sink
func NewEngoRenderer(sink entitySink, assets *AssetManager, camera *CameraSystem) *EngoRenderer {
	return &EngoRenderer{
		sink:     sink,
		assets:   assets,
		camera:   camera,
		entities: make(map[string]*nodeEntity),
	}
}

// SetHUD routes frame annotations to a HUD
func (r *EngoRenderer) SetHUD(hud *HUDSystem) {
	r.hud = hud
}

// Annotate implements render.Annotator
func (r *EngoRenderer) Annotate(frame uint64, elapsed float64) {
	if r.hud != nil {
		r.hud.SetFrame(frame, elapsed)
	}
}

// ShowAxes draws X and Z guide lines through the origin, size world units long
func (r *EngoRenderer) ShowAxes(size float64) {
	if size <= 0 || r.axes != nil {
		return
	}
	r.axesSize = size
	for _, c := range []color.Color{
		color.RGBA{0xff, 0x00, 0x00, 0xff},
		color.RGBA{0x00, 0x00, 0xff, 0xff},
	} {
		e := &nodeEntity{basic: ecs.NewBasic()}
		e.render = common.RenderComponent{
			Drawable: common.Rectangle{},
			Color:    c,
			Scale:    engo.Point{X: 1, Y: 1},
		}
		r.sink.Add(&e.basic, &e.render, &e.space)
		r.axes = append(r.axes, e)
	}
}

func (r *EngoRenderer) placeAxes() {
	if len(r.axes) != 2 {
		return
	}
	origin := r.camera.WorldToScreen(physics.Vector3{})
	length := float32(r.axesSize) * r.camera.PixelsPerUnit()
	deg := float32(r.camera.Angle() * 180 / math.Pi)

	// X axis, then Z axis; both start at the origin
	r.axes[0].space = common.SpaceComponent{Position: origin, Width: length, Height: 1, Rotation: deg}
	r.axes[1].space = common.SpaceComponent{Position: origin, Width: 1, Height: length, Rotation: deg}
}

// Clear implements render.Renderer
func (r *EngoRenderer) Clear() {
	for _, e := range r.entities {
		e.seen = false
	}
	r.placeAxes()
}

// RenderNode implements render.Renderer
func (r *EngoRenderer) RenderNode(node *scene.Node, world physics.Vector3) {
	if node == nil || node.Mesh == nil {
		return
	}
	e := r.getOrCreateEntity(node)
	e.seen = true
	r.updateComponents(e, node, world)
}

// Present implements render.Renderer. Entities whose node was not drawn
// this frame are removed.
func (r *EngoRenderer) Present() {
	r.cleanupInactiveEntities()
}

// Entities returns the number of node entities currently mirrored
func (r *EngoRenderer) Entities() int {
	return len(r.entities)
}

func (r *EngoRenderer) getOrCreateEntity(node *scene.Node) *nodeEntity {
	if e, exists := r.entities[node.Path]; exists {
		return e
	}

	e := &nodeEntity{basic: ecs.NewBasic()}
	e.render = common.RenderComponent{
		Drawable: r.assets.Drawable(node, r.camera.PixelsPerUnit()),
		Color:    r.assets.Color(node.Mesh.Material),
		Scale:    engo.Point{X: 1, Y: 1},
	}
	if node.Kind == scene.KindRing {
		e.render.Color = color.Transparent
	}

	r.entities[node.Path] = e
	r.order = append(r.order, node.Path)
	r.sink.Add(&e.basic, &e.render, &e.space)
	return e
}

// updateComponents sizes and places a node's entity for this frame
func (r *EngoRenderer) updateComponents(e *nodeEntity, node *scene.Node, world physics.Vector3) {
	ppu := r.camera.PixelsPerUnit()
	radius := float32(node.Transform.Scale*node.Mesh.Geometry.Extent()) * ppu

	width, height := 2*radius, 2*radius
	if node.Kind == scene.KindRing {
		// seen from above the tilted ring is an ellipse
		height *= float32(math.Abs(math.Cos(node.Transform.Rotation.X)))
		e.render.Drawable = r.assets.Drawable(node, ppu)
	}

	// engo turns a space component about its top-left corner, so the corner
	// is placed where the rotated box keeps its centre on the node
	angle := r.camera.Angle()
	sin, cos := math.Sincos(angle)
	halfW, halfH := float64(width/2), float64(height/2)
	center := r.camera.WorldToScreen(world)
	e.space.Position = engo.Point{
		X: center.X - float32(halfW*cos-halfH*sin),
		Y: center.Y - float32(halfW*sin+halfH*cos),
	}
	e.space.Width = width
	e.space.Height = height
	e.space.Rotation = float32(angle * 180 / math.Pi)
}

// cleanupInactiveEntities removes entities that were not drawn this frame
func (r *EngoRenderer) cleanupInactiveEntities() {
	kept := r.order[:0]
	for _, path := range r.order {
		e := r.entities[path]
		if e.seen {
			kept = append(kept, path)
			continue
		}
		r.sink.Remove(e.basic)
		delete(r.entities, path)
	}
	r.order = kept
}
