// pkg/render/engo/scene.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/driver"
	"github.com/opd-ai/go-orrery/pkg/event"
	"github.com/opd-ai/go-orrery/pkg/logging"
	"github.com/opd-ai/go-orrery/pkg/scene"
)

// OrreryScene shows a scene.System in an engo window
type OrreryScene struct {
	cfg       *config.Config
	system    *scene.System
	logger    *logging.Logger
	eventBus  *event.Bus
	maxFrames uint64

	world *ecs.World

	// Rendering components
	assets   *AssetManager
	renderer *EngoRenderer
	camera   *CameraSystem
	input    *InputSystem
	hud      *HUDSystem
	orbit    *OrbitSystem
}

// NewOrreryScene creates a scene. maxFrames of zero runs until the window
// closes.
func NewOrreryScene(cfg *config.Config, system *scene.System, logger *logging.Logger, eventBus *event.Bus, maxFrames uint64) *OrreryScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &OrreryScene{
		cfg:       cfg,
		system:    system,
		logger:    logger.With("component", "engo"),
		eventBus:  eventBus,
		maxFrames: maxFrames,
		world:     &ecs.World{},
	}
}

// Type returns the scene type (required by Engo)
func (s *OrreryScene) Type() string {
	return "OrreryScene"
}

// Preload is called before the scene starts (required by Engo)
func (s *OrreryScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (s *OrreryScene) Setup(u engo.Updater) {
	ctx := context.Background()
	if w, ok := u.(*ecs.World); ok {
		s.world = w
	}

	palette, err := s.cfg.ColorPalette()
	if err != nil {
		s.logger.Warn(ctx, "Palette rejected, using defaults", "error", err.Error())
		palette = nil
	}
	s.assets = NewAssetManager(palette, s.cfg.View.Background)
	common.SetBackground(s.assets.Background())

	renderSystem := &common.RenderSystem{}
	s.world.AddSystem(renderSystem)

	s.camera = NewCameraSystem(s.cfg.View, engo.GameWidth(), engo.GameHeight())
	s.hud = NewHUDSystem(s.cfg.Title)
	s.renderer = NewEngoRenderer(renderSystem, s.assets, s.camera)
	s.renderer.SetHUD(s.hud)
	if s.cfg.View.ShowAxes {
		s.renderer.ShowAxes(s.cfg.View.AxesSize)
	}

	if font, err := s.assets.LoadHUDFont(14); err != nil {
		s.logger.Warn(ctx, "HUD disabled", "error", err.Error())
	} else {
		s.hud.SetFont(font, renderSystem)
	}

	SetupInputBindings()
	s.input = NewInputSystem(s.camera)

	d := driver.New(s.system, s.renderer, driver.NewSystemClock(),
		driver.Options{MaxFrames: s.maxFrames}, s.logger, s.eventBus)
	s.orbit = NewOrbitSystem(d)

	s.world.AddSystem(s.input)
	s.world.AddSystem(s.orbit)
	s.world.AddSystem(s.camera)
	s.world.AddSystem(s.hud)

	s.logger.Info(ctx, "Scene ready", "nodes", s.system.Root().Count()-1)
}

// Exit is called when the scene is exiting (required by Engo)
func (s *OrreryScene) Exit() {
	if s.orbit != nil {
		s.orbit.stop()
	}
}

// OrbitSystem advances and draws the orrery once per engo frame
type OrbitSystem struct {
	driver  *driver.Driver
	started bool
	stopped bool
}

// NewOrbitSystem creates the system that ticks d
func NewOrbitSystem(d *driver.Driver) *OrbitSystem {
	return &OrbitSystem{driver: d}
}

// Add satisfies the ecs.System interface
func (o *OrbitSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (o *OrbitSystem) Remove(basic ecs.BasicEntity) {}

// Update draws one frame and closes the window at the frame limit
func (o *OrbitSystem) Update(dt float32) {
	if o.tick(context.Background()) {
		engo.Exit()
	}
}

// tick runs one frame and reports whether the frame limit was reached.
func (o *OrbitSystem) tick(ctx context.Context) bool {
	if o.stopped {
		return true
	}
	if !o.started {
		o.driver.Start(ctx)
		o.started = true
	}

	// desynchronized nodes are already logged and published by the system
	_ = o.driver.Tick(ctx)

	if limit := o.driver.MaxFrames(); limit > 0 && o.driver.Frames() >= limit {
		o.stop()
		return true
	}
	return false
}

func (o *OrbitSystem) stop() {
	if o.started && !o.stopped {
		o.driver.Stop(context.Background())
	}
	o.stopped = true
}

// Run opens a window and shows the system until it is closed
func Run(cfg *config.Config, system *scene.System, logger *logging.Logger, eventBus *event.Bus, maxFrames uint64) {
	opts := engo.RunOptions{
		Title:          cfg.Title,
		Width:          cfg.Window.Width,
		Height:         cfg.Window.Height,
		Fullscreen:     cfg.Window.Fullscreen,
		StandardInputs: true,
	}
	engo.Run(opts, NewOrreryScene(cfg, system, logger, eventBus, maxFrames))
}
