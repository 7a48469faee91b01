package scene

import (
	"errors"
	"math"

	"github.com/opd-ai/go-orrery/pkg/physics"
)

// BaseAngularUnit is one degree in radians.
const BaseAngularUnit = math.Pi / 180

// Default spin scales. A node's angle advances by
// BaseAngularUnit * delta * speed * scale each frame.
const (
	BodySpinScale = 25.0
	StarSpinScale = 15.0
	RingSpinScale = 25.0
)

// Options tunes the update engine.
type Options struct {
	BodySpinScale float64
	StarSpinScale float64
	RingSpinScale float64
}

// DefaultOptions returns the standard spin scales.
func DefaultOptions() Options {
	return Options{
		BodySpinScale: BodySpinScale,
		StarSpinScale: StarSpinScale,
		RingSpinScale: RingSpinScale,
	}
}

// Engine advances node transforms.
type Engine struct {
	opts Options
}

// NewEngine creates an engine with the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Options returns the engine's spin scales.
func (e *Engine) Options() Options {
	return e.opts
}

// Update advances every pair by delta seconds.
//
// Bodies and satellites use a single angle for both spin and orbital phase:
// Rotation.Y grows with time and the position is recomputed on the circle
// of radius Distance at that angle. The star only spins. Rings only spin
// about their local Z axis and keep their place at the owner's origin.
//
// A pair that cannot be matched to its descriptor is skipped and reported;
// the remaining pairs are still updated. The returned error joins one
// *DesynchronizationError per skipped pair.
func (e *Engine) Update(pairs []Pair, delta float64) error {
	var errs []error
	for _, p := range pairs {
		if err := e.updatePair(p, delta); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *Engine) updatePair(p Pair, delta float64) error {
	if err := checkPair(p); err != nil {
		return err
	}

	node, d := p.Node, p.Descriptor
	switch node.Kind {
	case KindStar:
		node.Transform.Rotation.Y += BaseAngularUnit * delta * d.Speed * e.opts.StarSpinScale
	case KindBody:
		node.Transform.Rotation.Y += BaseAngularUnit * delta * d.Speed * e.opts.BodySpinScale
		orbit := physics.OnOrbit(node.Transform.Rotation.Y, d.Distance)
		node.Transform.Position.X = orbit.X
		node.Transform.Position.Z = orbit.Z
	case KindRing:
		node.Transform.Rotation.Z += BaseAngularUnit * delta * d.Speed * e.opts.RingSpinScale
	default:
		return &DesynchronizationError{Path: node.Path, Reason: "node kind " + node.Kind.String() + " is not animated"}
	}
	return nil
}

func checkPair(p Pair) error {
	switch {
	case p.Node == nil:
		name := "<unknown>"
		if p.Descriptor != nil {
			name = p.Descriptor.Name
		}
		return &DesynchronizationError{Path: name, Reason: "descriptor has no node"}
	case p.Descriptor == nil:
		return &DesynchronizationError{Path: p.Node.Path, Reason: "node has no descriptor"}
	case p.Node.Descriptor != p.Descriptor:
		return &DesynchronizationError{Path: p.Node.Path, Reason: "pair descriptor differs from the node's own"}
	case p.Node.Kind != KindRing && p.Node.Name != p.Descriptor.Name:
		return &DesynchronizationError{Path: p.Node.Path, Reason: "descriptor " + p.Descriptor.Name + " renamed since composition"}
	}
	return nil
}
