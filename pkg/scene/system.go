package scene

import (
	"context"
	"math"

	"github.com/opd-ai/go-orrery/pkg/asset"
	"github.com/opd-ai/go-orrery/pkg/celestial"
	"github.com/opd-ai/go-orrery/pkg/event"
	"github.com/opd-ai/go-orrery/pkg/logging"
)

// System owns one animated scene: its descriptor table, the composed
// hierarchy and the animation clock. Independent systems share nothing but
// the UnitSphere geometry.
//
// A System is not safe for concurrent use; drive it from one goroutine.
type System struct {
	descriptor celestial.SystemDescriptor
	root       *Node
	pairs      []Pair
	engine     *Engine

	elapsed float64
	frame   uint64

	logger *logging.Logger
	bus    *event.Bus
}

// NewSystem composes desc into a new scene. desc is copied, so the caller
// may reuse it. A nil logger discards output and a nil bus drops events.
func NewSystem(desc celestial.SystemDescriptor, materials asset.Catalog, opts Options, logger *logging.Logger, bus *event.Bus) (*System, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	s := &System{
		descriptor: desc.Clone(),
		engine:     NewEngine(opts),
		logger:     logger.With("component", "scene"),
		bus:        bus,
	}

	root, pairs, err := Compose(&s.descriptor, materials)
	if err != nil {
		return nil, logging.WrapError(err, "compose system %q", desc.Name)
	}
	if err := CheckPairs(root, pairs); err != nil {
		return nil, logging.WrapError(err, "compose system %q", desc.Name)
	}
	s.root = root
	s.pairs = pairs

	bus.Publish(event.NewSystemEvent(s, desc.Name, s.descriptor.Count(), root.Count()-1))
	return s, nil
}

// Root returns the system root node.
func (s *System) Root() *Node {
	return s.root
}

// Pairs returns the animated nodes in update order.
func (s *System) Pairs() []Pair {
	return s.pairs
}

// Descriptor returns a copy of the table the system was composed from.
// Nodes keep pointers into the system's own table, which never changes.
func (s *System) Descriptor() celestial.SystemDescriptor {
	return s.descriptor.Clone()
}

// Elapsed returns the animation time of the last frame, in seconds.
func (s *System) Elapsed() float64 {
	return s.elapsed
}

// Frame returns the number of frames advanced so far.
func (s *System) Frame() uint64 {
	return s.frame
}

// Find returns the node with the given path, e.g. "Earth/Moon" or "Saturn.ring".
func (s *System) Find(path string) *Node {
	return s.root.Find(path)
}

// Advance moves the animation to elapsed seconds since start. Elapsed time
// must not go backwards; if it does, the frame runs with a zero delta.
//
// Nodes that fail to update are logged, published as NodeDesynchronized and
// skipped. The returned error lists them; the frame is still complete.
func (s *System) Advance(ctx context.Context, elapsed float64) error {
	delta := elapsed - s.elapsed
	switch {
	case math.IsNaN(elapsed) || math.IsInf(elapsed, 0):
		s.logger.Warn(ctx, "ignoring non-finite elapsed time", "elapsed", elapsed, "frame", s.frame)
		delta = 0
	case delta < 0:
		s.logger.Warn(ctx, "elapsed time went backwards",
			"elapsed", elapsed,
			"previous", s.elapsed,
			"frame", s.frame,
		)
		delta = 0
	default:
		s.elapsed = elapsed
	}

	return s.step(ctx, delta)
}

// Step advances the animation by delta seconds.
func (s *System) Step(ctx context.Context, delta float64) error {
	if delta < 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		s.logger.Warn(ctx, "ignoring invalid frame delta", "delta", delta, "frame", s.frame)
		delta = 0
	}
	s.elapsed += delta
	return s.step(ctx, delta)
}

func (s *System) step(ctx context.Context, delta float64) error {
	s.frame++
	err := s.engine.Update(s.pairs, delta)
	for _, desync := range DesynchronizationErrors(err) {
		s.logger.Warn(ctx, "skipping node out of sync with its descriptor",
			"node", desync.Path,
			"reason", desync.Reason,
			"frame", s.frame,
		)
		s.bus.Publish(event.NewNodeEvent(s, desync.Path, s.frame, desync.Reason))
	}
	return err
}
