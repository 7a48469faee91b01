package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/opd-ai/go-orrery/pkg/asset"
	"github.com/opd-ai/go-orrery/pkg/celestial"
)

func TestNewBodyNode_PlacementAndScale(t *testing.T) {
	tests := []struct {
		name       string
		descriptor celestial.BodyDescriptor
	}{
		{"earth_like", celestial.BodyDescriptor{Name: "Earth", Radius: 1, Distance: 20, Speed: 3}},
		{"tiny_moon", celestial.BodyDescriptor{Name: "Phobos", Radius: 0.1, Distance: 1.5, Speed: 8}},
		{"no_orbit", celestial.BodyDescriptor{Name: "Core", Radius: 2.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.descriptor
			node, err := NewBodyNode(&d, "earth")
			if err != nil {
				t.Fatalf("NewBodyNode() failed: %v", err)
			}

			if node.Kind != KindBody {
				t.Errorf("expected kind body, got %s", node.Kind)
			}
			if node.Transform.Scale != d.Radius {
				t.Errorf("expected scale %v, got %v", d.Radius, node.Transform.Scale)
			}
			pos := node.Transform.Position
			if pos.X != d.Distance || pos.Y != 0 || pos.Z != 0 {
				t.Errorf("expected initial position (%v, 0, 0), got %v", d.Distance, pos)
			}
			if node.Transform.Rotation != (Transform{}).Rotation {
				t.Errorf("expected zero rotation, got %v", node.Transform.Rotation)
			}
			if node.Descriptor != &d {
				t.Error("node does not point back at its descriptor")
			}
			if node.Mesh.Material != "earth" {
				t.Errorf("expected material earth, got %q", node.Mesh.Material)
			}
		})
	}
}

func TestNewBodyNode_SharesUnitSphere(t *testing.T) {
	a := celestial.BodyDescriptor{Name: "A", Radius: 1, Distance: 5}
	b := celestial.BodyDescriptor{Name: "B", Radius: 3, Distance: 9}

	nodeA, err := NewBodyNode(&a, asset.Default)
	if err != nil {
		t.Fatal(err)
	}
	nodeB, err := NewStarNode(&b, asset.Default)
	if err != nil {
		t.Fatal(err)
	}

	if nodeA.Mesh.Geometry != UnitSphere || nodeB.Mesh.Geometry != UnitSphere {
		t.Fatal("body meshes must reference the shared unit sphere")
	}
	sphere := UnitSphere.(*SphereGeometry)
	if sphere.Radius != 1 || sphere.WidthSegments != 32 || sphere.HeightSegments != 32 {
		t.Errorf("unit sphere was modified: %+v", sphere)
	}
	if nodeB.Kind != KindStar {
		t.Errorf("expected star kind, got %s", nodeB.Kind)
	}
}

func TestNewBodyNode_RejectsNonPositiveRadius(t *testing.T) {
	for _, radius := range []float64{0, -1} {
		d := celestial.BodyDescriptor{Name: "Bad", Radius: radius, Distance: 4}
		_, err := NewBodyNode(&d, asset.Default)
		if !errors.Is(err, celestial.ErrConfiguration) {
			t.Errorf("radius %v: expected ErrConfiguration, got %v", radius, err)
		}
	}
	if _, err := NewBodyNode(nil, asset.Default); !errors.Is(err, celestial.ErrConfiguration) {
		t.Errorf("nil descriptor: expected ErrConfiguration, got %v", err)
	}
}

func TestNewRingNode(t *testing.T) {
	owner := celestial.BodyDescriptor{
		Name: "Saturn", Radius: 2.4, Distance: 42, Speed: 1,
		Ring: &celestial.RingSpec{InnerRadius: 3, OuterRadius: 5.2},
	}

	ring, err := NewRingNode(&owner, "saturn_ring")
	if err != nil {
		t.Fatalf("NewRingNode() failed: %v", err)
	}

	if ring.Kind != KindRing {
		t.Errorf("expected ring kind, got %s", ring.Kind)
	}
	if !ring.Mesh.DoubleSided {
		t.Error("ring material must be double sided")
	}
	if want := 113 * math.Pi / 180; math.Abs(ring.Transform.Rotation.X-want) > 1e-12 {
		t.Errorf("expected tilt %v, got %v", want, ring.Transform.Rotation.X)
	}
	if ring.Transform.Position != (Transform{}).Position {
		t.Errorf("ring must sit at its owner's origin, got %v", ring.Transform.Position)
	}
	geom, ok := ring.Mesh.Geometry.(*RingGeometry)
	if !ok {
		t.Fatalf("expected *RingGeometry, got %T", ring.Mesh.Geometry)
	}
	if geom.InnerRadius != 3 || geom.OuterRadius != 5.2 {
		t.Errorf("unexpected ring radii %+v", geom)
	}
	if geom.Extent() != 5.2 {
		t.Errorf("expected extent 5.2, got %v", geom.Extent())
	}
}

func TestNewRingNode_RejectsInvalidRing(t *testing.T) {
	tests := []struct {
		name  string
		owner *celestial.BodyDescriptor
	}{
		{"nil_owner", nil},
		{"no_ring", &celestial.BodyDescriptor{Name: "Earth", Radius: 1}},
		{"inverted", &celestial.BodyDescriptor{Name: "Saturn", Radius: 1, Ring: &celestial.RingSpec{InnerRadius: 5, OuterRadius: 3}}},
		{"equal", &celestial.BodyDescriptor{Name: "Saturn", Radius: 1, Ring: &celestial.RingSpec{InnerRadius: 4, OuterRadius: 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRingNode(tt.owner, asset.Ring); !errors.Is(err, celestial.ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}
