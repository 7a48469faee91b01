// Package driver runs the frame loop: read the clock, advance the system,
// draw the scene.
package driver

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/opd-ai/go-orrery/pkg/event"
	"github.com/opd-ai/go-orrery/pkg/logging"
	"github.com/opd-ai/go-orrery/pkg/render"
	"github.com/opd-ai/go-orrery/pkg/scene"
)

// Clock reports the seconds elapsed since the animation started.
type Clock interface {
	Elapsed() float64
}

// SystemClock measures wall-clock time from its creation.
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts a wall clock.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Elapsed implements Clock.
func (c *SystemClock) Elapsed() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock only moves when told to.
type ManualClock struct {
	mu      sync.Mutex
	elapsed float64
}

// Elapsed implements Clock.
func (c *ManualClock) Elapsed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// Set moves the clock to an absolute time.
func (c *ManualClock) Set(elapsed float64) {
	c.mu.Lock()
	c.elapsed = elapsed
	c.mu.Unlock()
}

// Advance moves the clock forward by d seconds.
func (c *ManualClock) Advance(d float64) {
	c.mu.Lock()
	c.elapsed += d
	c.mu.Unlock()
}

// Options configures a Driver.
type Options struct {
	// FrameRate caps frames per second in Run. Zero or less means unpaced.
	FrameRate float64
	// MaxFrames stops Run after this many frames. Zero runs until the
	// context is cancelled.
	MaxFrames uint64
}

// Driver ties a System to a Renderer.
type Driver struct {
	system   *scene.System
	renderer render.Renderer
	clock    Clock
	limiter  *rate.Limiter
	opts     Options
	logger   *logging.Logger
	bus      *event.Bus

	frames uint64
}

// New creates a driver. A nil clock uses the wall clock and a nil logger
// discards output.
func New(system *scene.System, renderer render.Renderer, clock Clock, opts Options, logger *logging.Logger, bus *event.Bus) *Driver {
	if clock == nil {
		clock = NewSystemClock()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	limit := rate.Inf
	if opts.FrameRate > 0 {
		limit = rate.Limit(opts.FrameRate)
	}
	return &Driver{
		system:   system,
		renderer: renderer,
		clock:    clock,
		limiter:  rate.NewLimiter(limit, 1),
		opts:     opts,
		logger:   logger.With("component", "driver"),
		bus:      bus,
	}
}

// Frames returns the number of frames drawn so far.
func (d *Driver) Frames() uint64 {
	return d.frames
}

// System returns the driven system.
func (d *Driver) System() *scene.System {
	return d.system
}

// RenderFrame advances the system to elapsed and draws it. The frame is
// always drawn; a returned error only reports desynchronized nodes.
func (d *Driver) RenderFrame(ctx context.Context, elapsed float64) error {
	err := d.system.Advance(ctx, elapsed)

	if a, ok := d.renderer.(render.Annotator); ok {
		a.Annotate(d.system.Frame(), d.system.Elapsed())
	}
	render.Draw(d.renderer, d.system.Root())
	d.frames++

	return err
}

// Tick draws one frame at the clock's current time. Hosts with their own
// frame loop call it instead of Run.
func (d *Driver) Tick(ctx context.Context) error {
	return d.RenderFrame(ctx, d.clock.Elapsed())
}

// Start announces that frames are about to be driven.
func (d *Driver) Start(ctx context.Context) {
	d.logger.Info(ctx, "Driver started", "frame_rate", d.opts.FrameRate, "max_frames", d.opts.MaxFrames)
	d.bus.Publish(event.NewDriverEvent(event.DriverStarted, d, d.frames, d.system.Elapsed()))
}

// Stop announces that no more frames will be driven.
func (d *Driver) Stop(ctx context.Context) {
	d.logger.Info(ctx, "Driver stopped", "frames", d.frames, "elapsed", d.system.Elapsed())
	d.bus.Publish(event.NewDriverEvent(event.DriverStopped, d, d.frames, d.system.Elapsed()))
}

// MaxFrames returns the configured frame limit; zero means none.
func (d *Driver) MaxFrames() uint64 {
	return d.opts.MaxFrames
}

// Run drives frames until ctx is done or MaxFrames is reached.
func (d *Driver) Run(ctx context.Context) error {
	d.Start(ctx)
	defer d.Stop(ctx)

	for {
		if d.opts.MaxFrames > 0 && d.frames >= d.opts.MaxFrames {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
		if err := d.limiter.Wait(ctx); err != nil {
			// cancellation or a deadline that falls before the next frame
			d.logger.Debug(ctx, "Frame wait ended", "reason", err.Error())
			return nil
		}
		if err := d.Tick(ctx); err != nil {
			d.logger.Debug(ctx, "Frame completed with desynchronized nodes", "frame", d.system.Frame())
		}
	}
}
