// Package celestial holds the declarative description of a star system:
// one descriptor per body, with optional satellites and rings.
//
// Descriptors carry geometry and motion parameters only. Materials are
// assigned separately by body name, see package asset.
package celestial

import (
	"math"
	"strings"
)

// PathSeparator joins a satellite's name to its parent's in a body path.
const PathSeparator = "/"

// RingSuffix marks the path of a ring under its owner's path.
const RingSuffix = ".ring"

// RingSpec describes a flat annulus around a body.
type RingSpec struct {
	InnerRadius float64 `json:"innerRadius"`
	OuterRadius float64 `json:"outerRadius"`
}

// BodyDescriptor describes one body's size, orbit and spin.
type BodyDescriptor struct {
	Name string `json:"name"`
	// Radius is the uniform scale applied to the unit sphere.
	Radius float64 `json:"radius"`
	// Distance is the orbital radius around the parent's origin.
	Distance float64 `json:"distance"`
	// Speed is a unitless angular speed multiplier. Negative values spin
	// and orbit the other way.
	Speed      float64          `json:"speed"`
	Satellites []BodyDescriptor `json:"satellites,omitempty"`
	Ring       *RingSpec        `json:"ring,omitempty"`
}

// SystemDescriptor is the full table: a central star plus the bodies orbiting it.
type SystemDescriptor struct {
	Name   string           `json:"name"`
	Star   BodyDescriptor   `json:"star"`
	Bodies []BodyDescriptor `json:"bodies"`
}

// Validate checks the ring dimensions.
func (r *RingSpec) Validate(path string) error {
	if !isFinite(r.InnerRadius) || !isFinite(r.OuterRadius) {
		return configErrorf(path, "ring radii must be finite")
	}
	if r.InnerRadius < 0 {
		return configErrorf(path, "ring inner radius %g is negative", r.InnerRadius)
	}
	if r.InnerRadius >= r.OuterRadius {
		return configErrorf(path, "ring inner radius %g must be less than outer radius %g",
			r.InnerRadius, r.OuterRadius)
	}
	return nil
}

// Validate checks the descriptor and its satellites. Satellites may not
// carry satellites of their own.
func (d *BodyDescriptor) Validate() error {
	return d.validate("", 0)
}

func (d *BodyDescriptor) validate(parentPath string, depth int) error {
	path := joinPath(parentPath, d.Name)
	if d.Name == "" {
		return configErrorf(path, "body name is empty")
	}
	if strings.Contains(d.Name, PathSeparator) {
		return configErrorf(path, "body name %q must not contain %q", d.Name, PathSeparator)
	}
	if strings.HasSuffix(d.Name, RingSuffix) {
		return configErrorf(path, "body name %q must not end in %q", d.Name, RingSuffix)
	}
	if !isFinite(d.Radius) || !isFinite(d.Distance) || !isFinite(d.Speed) {
		return configErrorf(path, "radius, distance and speed must be finite")
	}
	if d.Radius <= 0 {
		return configErrorf(path, "radius %g must be positive", d.Radius)
	}
	if d.Distance < 0 {
		return configErrorf(path, "distance %g is negative", d.Distance)
	}
	if d.Ring != nil {
		if err := d.Ring.Validate(path); err != nil {
			return err
		}
	}
	if len(d.Satellites) == 0 {
		return nil
	}
	if depth > 0 {
		return configErrorf(path, "satellites may only be nested one level deep")
	}
	if err := checkUniqueNames(path, d.Satellites); err != nil {
		return err
	}
	for i := range d.Satellites {
		if err := d.Satellites[i].validate(path, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the whole table. The star shares the top-level sibling
// list with the bodies, so names must be unique across both.
func (s *SystemDescriptor) Validate() error {
	if err := s.Star.validate("", 0); err != nil {
		return err
	}
	if len(s.Star.Satellites) > 0 {
		return configErrorf(s.Star.Name, "the central star cannot have satellites")
	}
	if s.Star.Distance != 0 {
		return configErrorf(s.Star.Name, "the central star must sit at distance 0, got %g", s.Star.Distance)
	}

	siblings := make([]BodyDescriptor, 0, len(s.Bodies)+1)
	siblings = append(siblings, s.Star)
	siblings = append(siblings, s.Bodies...)
	if err := checkUniqueNames("", siblings); err != nil {
		return err
	}

	for i := range s.Bodies {
		if err := s.Bodies[i].validate("", 0); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of bodies in the table, including the star and
// every satellite.
func (s *SystemDescriptor) Count() int {
	count := 1
	for _, body := range s.Bodies {
		count += 1 + len(body.Satellites)
	}
	return count
}

// Clone returns a deep copy so callers can keep editing their table after
// handing it to a scene.
func (s SystemDescriptor) Clone() SystemDescriptor {
	out := s
	out.Star = s.Star.clone()
	out.Bodies = make([]BodyDescriptor, len(s.Bodies))
	for i := range s.Bodies {
		out.Bodies[i] = s.Bodies[i].clone()
	}
	return out
}

func (d BodyDescriptor) clone() BodyDescriptor {
	out := d
	if d.Ring != nil {
		ring := *d.Ring
		out.Ring = &ring
	}
	if d.Satellites != nil {
		out.Satellites = make([]BodyDescriptor, len(d.Satellites))
		for i := range d.Satellites {
			out.Satellites[i] = d.Satellites[i].clone()
		}
	}
	return out
}

func checkUniqueNames(parentPath string, siblings []BodyDescriptor) error {
	seen := make(map[string]struct{}, len(siblings))
	for _, sibling := range siblings {
		if _, dup := seen[sibling.Name]; dup {
			return configErrorf(joinPath(parentPath, sibling.Name), "duplicate body name")
		}
		seen[sibling.Name] = struct{}{}
	}
	return nil
}

// JoinPath builds the slash-separated name chain used in error messages
// and node lookups.
func JoinPath(parent, name string) string {
	return joinPath(parent, name)
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + PathSeparator + name
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
