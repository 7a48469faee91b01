package scene

import (
	"errors"
	"testing"

	"github.com/opd-ai/go-orrery/pkg/asset"
	"github.com/opd-ai/go-orrery/pkg/celestial"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

func TestCompose_DefaultSystemHierarchy(t *testing.T) {
	sys := celestial.DefaultSystem()
	root, pairs, err := Compose(&sys, asset.DefaultCatalog())
	if err != nil {
		t.Fatalf("Compose() failed: %v", err)
	}

	if root.Kind != KindRoot || root.Parent() != nil {
		t.Fatalf("unexpected root %+v", root)
	}

	// star + 8 bodies at the top level
	if got := len(root.Children()); got != 9 {
		t.Fatalf("expected 9 root children, got %d", got)
	}
	if root.Children()[0].Name != "Sun" || root.Children()[0].Kind != KindStar {
		t.Errorf("expected the star first, got %s (%s)", root.Children()[0].Name, root.Children()[0].Kind)
	}

	// 12 bodies + 2 rings
	if len(pairs) != 14 {
		t.Errorf("expected 14 pairs, got %d", len(pairs))
	}
	if err := CheckPairs(root, pairs); err != nil {
		t.Errorf("CheckPairs() = %v", err)
	}

	moon := root.Find("Earth/Moon")
	if moon == nil {
		t.Fatal("Earth/Moon not found")
	}
	if moon.Parent().Name != "Earth" {
		t.Errorf("moon should orbit Earth, parent is %s", moon.Parent().Name)
	}
	if moon.Mesh.Material != "moon" {
		t.Errorf("expected moon material, got %q", moon.Mesh.Material)
	}

	ring := root.Find("Saturn.ring")
	if ring == nil {
		t.Fatal("Saturn.ring not found")
	}
	if ring.Parent().Name != "Saturn" || len(ring.Children()) != 0 {
		t.Error("ring must be a leaf under its body")
	}
	if ring.Mesh.Material != "saturn_ring" {
		t.Errorf("expected saturn_ring material, got %q", ring.Mesh.Material)
	}

	mercury := root.Find("Mercury")
	if mercury == nil || len(mercury.Children()) != 0 {
		t.Error("a body without satellites or ring must be a childless node")
	}
}

func TestCompose_PairOrderFollowsDescriptors(t *testing.T) {
	sys := celestial.DefaultSystem()
	_, pairs, err := Compose(&sys, nil)
	if err != nil {
		t.Fatalf("Compose() failed: %v", err)
	}

	want := []string{
		"Sun", "Mercury", "Venus", "Earth", "Earth/Moon",
		"Mars", "Mars/Phobos", "Mars/Deimos", "Jupiter",
		"Saturn", "Saturn.ring", "Uranus", "Uranus.ring", "Neptune",
	}
	if len(pairs) != len(want) {
		t.Fatalf("expected %d pairs, got %d", len(want), len(pairs))
	}
	for i, p := range pairs {
		if p.Node.Path != want[i] {
			t.Errorf("pair %d: expected %s, got %s", i, want[i], p.Node.Path)
		}
		if p.Node.Descriptor != p.Descriptor {
			t.Errorf("pair %d: node and pair disagree on descriptor", i)
		}
	}
}

func TestCompose_SatelliteOrderMatchesChildren(t *testing.T) {
	sys := celestial.DefaultSystem()
	root, _, err := Compose(&sys, nil)
	if err != nil {
		t.Fatal(err)
	}

	mars := root.Find("Mars")
	descriptors := mars.Descriptor.Satellites
	children := mars.Children()
	if len(children) != len(descriptors) {
		t.Fatalf("expected %d children, got %d", len(descriptors), len(children))
	}
	for i := range descriptors {
		if children[i].Descriptor != &descriptors[i] {
			t.Errorf("child %d does not reference satellite descriptor %d", i, i)
		}
	}
}

func TestCompose_SatelliteRing(t *testing.T) {
	sys := celestial.DefaultSystem()
	sys.Bodies[2].Satellites[0].Ring = &celestial.RingSpec{InnerRadius: 0.5, OuterRadius: 1}

	root, pairs, err := Compose(&sys, asset.DefaultCatalog())
	if err != nil {
		t.Fatalf("Compose() failed: %v", err)
	}
	if len(pairs) != 15 {
		t.Errorf("expected 15 pairs, got %d", len(pairs))
	}
	if err := CheckPairs(root, pairs); err != nil {
		t.Errorf("CheckPairs() = %v", err)
	}

	ring := root.Find("Earth/Moon.ring")
	if ring == nil {
		t.Fatal("Earth/Moon.ring not found")
	}
	if ring.Kind != KindRing || ring.Parent().Path != "Earth/Moon" {
		t.Errorf("ring should be a leaf under the Moon, got %s under %s", ring.Kind, ring.Parent().Path)
	}
	if ring.Mesh.Material != asset.Ring {
		t.Errorf("expected the fallback ring material, got %q", ring.Mesh.Material)
	}

	// the satellite's ring follows the satellite in update order
	for i, p := range pairs {
		if p.Node == ring {
			if pairs[i-1].Node.Path != "Earth/Moon" {
				t.Errorf("expected the ring right after its satellite, got %s", pairs[i-1].Node.Path)
			}
		}
	}
}

func TestCompose_MissingMaterialsUseDefault(t *testing.T) {
	sys := celestial.DefaultSystem()
	root, _, err := Compose(&sys, asset.Catalog{})
	if err != nil {
		t.Fatal(err)
	}
	if got := root.Find("Earth").Mesh.Material; got != asset.Default {
		t.Errorf("expected default material, got %q", got)
	}
	if got := root.Find("Saturn.ring").Mesh.Material; got != asset.Ring {
		t.Errorf("expected ring fallback material, got %q", got)
	}
}

func TestCompose_RejectsInvalidTableBeforeBuilding(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*celestial.SystemDescriptor)
	}{
		{"zero_radius", func(s *celestial.SystemDescriptor) { s.Bodies[3].Radius = 0 }},
		{"inverted_ring", func(s *celestial.SystemDescriptor) {
			s.Bodies[5].Ring = &celestial.RingSpec{InnerRadius: 6, OuterRadius: 2}
		}},
		{"duplicate_name", func(s *celestial.SystemDescriptor) { s.Bodies[1].Name = "Mercury" }},
		{"bad_satellite", func(s *celestial.SystemDescriptor) { s.Bodies[2].Satellites[0].Radius = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := celestial.DefaultSystem()
			tt.mutate(&sys)

			root, pairs, err := Compose(&sys, nil)
			if !errors.Is(err, celestial.ErrConfiguration) {
				t.Fatalf("expected ErrConfiguration, got %v", err)
			}
			if root != nil || pairs != nil {
				t.Error("no nodes may be returned on a configuration error")
			}
		})
	}
}

func TestCompose_LoneStar(t *testing.T) {
	sys := celestial.SystemDescriptor{Name: "Lonely", Star: celestial.BodyDescriptor{Name: "Star", Radius: 1, Speed: 1}}
	root, pairs, err := Compose(&sys, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 1 || root.Count() != 2 {
		t.Errorf("expected one pair and two nodes, got %d pairs and %d nodes", len(pairs), root.Count())
	}
}

func TestNode_AddRules(t *testing.T) {
	root := NewRoot("test")
	body := &Node{Name: "Body", Kind: KindBody}
	ring := &Node{Name: "ring", Kind: KindRing}

	if err := root.Add(ring); err == nil {
		t.Error("a ring must not attach directly to the root")
	}
	if err := root.Add(body); err != nil {
		t.Fatalf("Add(body) failed: %v", err)
	}
	if err := root.Add(body); err == nil {
		t.Error("a node must not be attached twice")
	}
	if err := body.Add(ring); err != nil {
		t.Fatalf("Add(ring) failed: %v", err)
	}
	if err := ring.Add(&Node{Name: "x", Kind: KindBody}); err == nil {
		t.Error("a ring must stay a leaf")
	}
	if err := body.Add(nil); err == nil {
		t.Error("nil child must be rejected")
	}
	if ring.Path != "Body.ring" {
		t.Errorf("expected ring path Body.ring, got %s", ring.Path)
	}
}

func TestNode_WalkComposesTranslations(t *testing.T) {
	root := NewRoot("test")
	parent := &Node{Name: "P", Kind: KindBody, Transform: Transform{Position: physics.Vector3{X: 10, Z: 5}}}
	child := &Node{Name: "C", Kind: KindBody, Transform: Transform{Position: physics.Vector3{X: 1, Z: -2}}}
	if err := root.Add(parent); err != nil {
		t.Fatal(err)
	}
	if err := parent.Add(child); err != nil {
		t.Fatal(err)
	}

	worlds := map[string]physics.Vector3{}
	root.Walk(func(n *Node, world physics.Vector3) { worlds[n.Path] = world })

	if got := worlds["P/C"]; got != (physics.Vector3{X: 11, Z: 3}) {
		t.Errorf("expected child world (11,0,3), got %v", got)
	}
	if got := child.WorldPosition(); got != worlds["P/C"] {
		t.Errorf("WorldPosition() = %v, Walk gave %v", got, worlds["P/C"])
	}

	var fromChild []string
	parent.Walk(func(n *Node, world physics.Vector3) {
		fromChild = append(fromChild, n.Path)
		if n == child && world != (physics.Vector3{X: 11, Z: 3}) {
			t.Errorf("subtree walk lost the ancestor offset: %v", world)
		}
	})
	if len(fromChild) != 2 {
		t.Errorf("expected subtree walk over 2 nodes, got %v", fromChild)
	}
}

func TestCheckPairs_DetectsMismatch(t *testing.T) {
	sys := celestial.DefaultSystem()
	root, pairs, err := Compose(&sys, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := CheckPairs(root, pairs[:len(pairs)-1]); err == nil {
		t.Error("expected missing pair to be reported")
	}

	dup := append(append([]Pair{}, pairs...), pairs[0])
	if err := CheckPairs(root, dup); err == nil {
		t.Error("expected duplicate pair to be reported")
	}

	stray := append(append([]Pair{}, pairs...), Pair{Node: &Node{Name: "Stray", Kind: KindBody}})
	if err := CheckPairs(root, stray); err == nil {
		t.Error("expected stray node to be reported")
	}
}
