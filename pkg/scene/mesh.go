package scene

import (
	"fmt"

	"github.com/opd-ai/go-orrery/pkg/asset"
	"github.com/opd-ai/go-orrery/pkg/celestial"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// Geometry is an immutable shape shared between meshes.
type Geometry interface {
	// Extent is the geometry's outer radius before node scaling.
	Extent() float64
}

// SphereGeometry is a tessellated sphere.
type SphereGeometry struct {
	Radius         float64
	WidthSegments  int
	HeightSegments int
}

// Extent implements Geometry.
func (g *SphereGeometry) Extent() float64 { return g.Radius }

// RingGeometry is a flat annulus in the node's local XY plane.
type RingGeometry struct {
	InnerRadius   float64
	OuterRadius   float64
	ThetaSegments int
}

// Extent implements Geometry.
func (g *RingGeometry) Extent() float64 { return g.OuterRadius }

// UnitSphere is shared by every body node. Bodies are sized through
// Transform.Scale; the geometry itself is never modified.
var UnitSphere Geometry = &SphereGeometry{Radius: 1, WidthSegments: 32, HeightSegments: 32}

// RingTiltDegrees is the fixed tilt of every ring about its local X axis.
const RingTiltDegrees = 113

// RingTilt is RingTiltDegrees in radians.
var RingTilt = physics.Radians(RingTiltDegrees)

const ringSegments = 64

// Mesh binds geometry to a material handle.
type Mesh struct {
	Geometry Geometry
	Material asset.Handle
	// DoubleSided asks the renderer to draw back faces too.
	DoubleSided bool
}

// NewBodyNode creates a body node: the unit sphere scaled to the
// descriptor's radius, placed at its orbital distance along +X.
func NewBodyNode(d *celestial.BodyDescriptor, material asset.Handle) (*Node, error) {
	return newSphereNode(d, material, KindBody)
}

// NewStarNode creates the central star node. It uses the same sphere
// placement as a body but is animated by spin alone.
func NewStarNode(d *celestial.BodyDescriptor, material asset.Handle) (*Node, error) {
	return newSphereNode(d, material, KindStar)
}

func newSphereNode(d *celestial.BodyDescriptor, material asset.Handle, kind Kind) (*Node, error) {
	if d == nil {
		return nil, &celestial.ConfigurationError{Reason: "missing body descriptor"}
	}
	if d.Radius <= 0 {
		return nil, &celestial.ConfigurationError{
			Path:   d.Name,
			Reason: fmt.Sprintf("radius %g must be positive", d.Radius),
		}
	}

	return &Node{
		Name: d.Name,
		Kind: kind,
		Transform: Transform{
			Position: physics.Vector3{X: d.Distance},
			Scale:    d.Radius,
		},
		Mesh: &Mesh{
			Geometry: UnitSphere,
			Material: material,
		},
		Descriptor: d,
	}, nil
}

// NewRingNode creates the ring for owner. The ring is tilted once here;
// updates only spin it in its own plane.
func NewRingNode(owner *celestial.BodyDescriptor, material asset.Handle) (*Node, error) {
	if owner == nil || owner.Ring == nil {
		return nil, &celestial.ConfigurationError{Reason: "ring requested for a body without a ring spec"}
	}
	if err := owner.Ring.Validate(owner.Name); err != nil {
		return nil, err
	}

	return &Node{
		Name: "ring",
		Kind: KindRing,
		Transform: Transform{
			Rotation: physics.Vector3{X: RingTilt},
			Scale:    1,
		},
		Mesh: &Mesh{
			Geometry: &RingGeometry{
				InnerRadius:   owner.Ring.InnerRadius,
				OuterRadius:   owner.Ring.OuterRadius,
				ThetaSegments: ringSegments,
			},
			Material:    material,
			DoubleSided: true,
		},
		Descriptor: owner,
	}, nil
}
