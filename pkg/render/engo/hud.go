// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
)

// HUDSystem shows the title, the frame counter and the animation time
type HUDSystem struct {
	title   string
	frame   uint64
	elapsed float64

	font   *common.Font
	sink   entitySink
	text   *nodeEntity
	margin float32
}

// NewHUDSystem creates a HUD. It draws nothing until SetFont is called.
func NewHUDSystem(title string) *HUDSystem {
	return &HUDSystem{
		title:  title,
		margin: 10,
	}
}

// Add satisfies the ecs.System interface
func (hud *HUDSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {
}

// SetFont enables text output into sink
func (hud *HUDSystem) SetFont(font *common.Font, sink entitySink) {
	hud.font = font
	hud.sink = sink
}

// SetFrame records the latest frame number and animation time
func (hud *HUDSystem) SetFrame(frame uint64, elapsed float64) {
	hud.frame = frame
	hud.elapsed = elapsed
}

// Text returns the status line
func (hud *HUDSystem) Text() string {
	return fmt.Sprintf("%s  frame %d  t=%.2fs", hud.title, hud.frame, hud.elapsed)
}

// Update refreshes the status text entity
func (hud *HUDSystem) Update(dt float32) {
	if hud.font == nil || hud.sink == nil {
		return
	}
	if hud.text == nil {
		hud.text = &nodeEntity{basic: ecs.NewBasic()}
		hud.text.render = common.RenderComponent{
			Color: color.White,
			Scale: engo.Point{X: 1, Y: 1},
		}
		hud.text.space = common.SpaceComponent{
			Position: engo.Point{X: hud.margin, Y: hud.margin},
		}
		hud.text.render.Drawable = common.Text{Font: hud.font, Text: hud.Text()}
		hud.sink.Add(&hud.text.basic, &hud.text.render, &hud.text.space)
		return
	}
	hud.text.render.Drawable = common.Text{Font: hud.font, Text: hud.Text()}
}
