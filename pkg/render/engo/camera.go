// pkg/render/engo/camera.go
package engo

import (
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// CameraSystem owns the top-down view of the orbital plane: how far it is
// zoomed and how far it has turned about the vertical axis. The view stays
// centred on the system origin.
type CameraSystem struct {
	// Camera properties
	zoom          float32
	minZoom       float32
	maxZoom       float32
	pixelsPerUnit float64

	// Passive orbit; angular velocity eases toward orbitSpeed by damping
	// every frame.
	orbitSpeed      float64
	damping         float64
	angularVelocity float64
	angle           float64

	width  float32
	height float32
}

// NewCameraSystem creates a camera for the given view settings
func NewCameraSystem(view config.ViewConfig, width, height float32) *CameraSystem {
	ppu := view.PixelsPerUnit
	if ppu <= 0 {
		ppu = 1
	}
	return &CameraSystem{
		zoom:          1.0,
		minZoom:       0.1,
		maxZoom:       10.0,
		pixelsPerUnit: ppu,
		orbitSpeed:    view.CameraOrbitSpeed,
		damping:       view.Camera.Damping,
		width:         width,
		height:        height,
	}
}

// Add satisfies the ecs.System interface
func (cs *CameraSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {
}

// Update advances the passive orbit and picks up window resizes.
func (cs *CameraSystem) Update(dt float32) {
	if w, h := engo.GameWidth(), engo.GameHeight(); w > 0 && h > 0 {
		cs.SetViewport(w, h)
	}
	if engo.Input != nil {
		cs.handleZoomInput()
	}
	cs.step(dt)
}

func (cs *CameraSystem) step(dt float32) {
	cs.updateOrbit(dt)
}

// handleZoomInput processes mouse wheel zoom
func (cs *CameraSystem) handleZoomInput() {
	scrollY := engo.Input.Mouse.ScrollY
	if scrollY != 0 {
		cs.SetZoom(cs.zoom * float32(1.0+scrollY*0.1))
	}
}

func (cs *CameraSystem) updateOrbit(dt float32) {
	if cs.damping > 0 {
		cs.angularVelocity += (cs.orbitSpeed - cs.angularVelocity) * cs.damping
	} else {
		cs.angularVelocity = cs.orbitSpeed
	}
	cs.angle += cs.angularVelocity * float64(dt)
}

// Turn kicks the orbit by a change of angular velocity in radians per
// second. Damping eases it back to the passive speed.
func (cs *CameraSystem) Turn(impulse float64) {
	cs.angularVelocity += impulse
}

// Reset restores zoom and the initial view angle
func (cs *CameraSystem) Reset() {
	cs.zoom = 1
	cs.angle = 0
	cs.angularVelocity = 0
}

// SetViewport sets the screen size in pixels
func (cs *CameraSystem) SetViewport(width, height float32) {
	cs.width = width
	cs.height = height
}

// SetZoom sets the camera zoom level
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}

// clampZoom ensures zoom is within valid bounds
func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// Angle returns how far the view has turned, in radians
func (cs *CameraSystem) Angle() float64 {
	return cs.angle
}

// PixelsPerUnit returns the current world-to-screen scale
func (cs *CameraSystem) PixelsPerUnit() float32 {
	return float32(cs.pixelsPerUnit) * cs.zoom
}

// WorldToScreen projects a world position onto the screen. X maps to the
// horizontal axis and Z to the vertical one.
func (cs *CameraSystem) WorldToScreen(world physics.Vector3) engo.Point {
	sin, cos := math.Sincos(cs.angle)
	rx := world.X*cos - world.Z*sin
	rz := world.X*sin + world.Z*cos

	scale := float64(cs.PixelsPerUnit())
	return engo.Point{
		X: float32(rx*scale) + cs.width/2,
		Y: float32(rz*scale) + cs.height/2,
	}
}

// ScreenToWorld inverts WorldToScreen on the orbital plane
func (cs *CameraSystem) ScreenToWorld(p engo.Point) physics.Vector3 {
	scale := float64(cs.PixelsPerUnit())
	rx := float64(p.X-cs.width/2) / scale
	rz := float64(p.Y-cs.height/2) / scale

	sin, cos := math.Sincos(cs.angle)
	return physics.Vector3{
		X: rx*cos + rz*sin,
		Z: -rx*sin + rz*cos,
	}
}
