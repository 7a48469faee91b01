// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
)

// Button names registered by SetupInputBindings.
const (
	buttonZoomIn     = "zoomIn"
	buttonZoomOut    = "zoomOut"
	buttonOrbitLeft  = "orbitLeft"
	buttonOrbitRight = "orbitRight"
	buttonResetView  = "resetView"
)

// turnImpulse is the angular velocity, in radians per second, one key
// press adds to the camera orbit.
const turnImpulse = 0.5

// InputSystem maps keys to orbit controls: zoom, turning the view and
// resetting it.
type InputSystem struct {
	camera *CameraSystem
}

// NewInputSystem creates an input system driving camera
func NewInputSystem(camera *CameraSystem) *InputSystem {
	return &InputSystem{camera: camera}
}

// Add satisfies the ecs.System interface
func (is *InputSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {
}

// Update processes key presses
func (is *InputSystem) Update(dt float32) {
	if engo.Input == nil {
		return
	}
	if engo.Input.Button(buttonZoomIn).Down() {
		is.zoom(1)
	}
	if engo.Input.Button(buttonZoomOut).Down() {
		is.zoom(-1)
	}
	if engo.Input.Button(buttonOrbitLeft).JustPressed() {
		is.turn(-1)
	}
	if engo.Input.Button(buttonOrbitRight).JustPressed() {
		is.turn(1)
	}
	if engo.Input.Button(buttonResetView).JustPressed() {
		is.camera.Reset()
	}
}

// zoom scales the view by 2% per frame in the given direction
func (is *InputSystem) zoom(direction float32) {
	is.camera.SetZoom(is.camera.GetZoom() * (1 + 0.02*direction))
}

func (is *InputSystem) turn(direction float64) {
	is.camera.Turn(direction * turnImpulse)
}

// SetupInputBindings registers the camera keys
func SetupInputBindings() {
	engo.Input.RegisterButton(buttonZoomIn, engo.KeyEquals, engo.KeyArrowUp)
	engo.Input.RegisterButton(buttonZoomOut, engo.KeyDash, engo.KeyArrowDown)
	engo.Input.RegisterButton(buttonOrbitLeft, engo.KeyArrowLeft, engo.KeyA)
	engo.Input.RegisterButton(buttonOrbitRight, engo.KeyArrowRight, engo.KeyD)
	engo.Input.RegisterButton(buttonResetView, engo.KeyR)
}
