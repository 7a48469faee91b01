package scene

import (
	"fmt"

	"github.com/opd-ai/go-orrery/pkg/asset"
	"github.com/opd-ai/go-orrery/pkg/celestial"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// Pair links an animated node to the descriptor driving it.
type Pair struct {
	Node       *Node
	Descriptor *celestial.BodyDescriptor
}

// Compose validates sys and builds its node hierarchy. Nodes keep pointers
// into sys, so the caller must not modify it afterwards.
//
// The returned pairs follow descriptor order: the star, then each body
// followed by its satellites and finally its ring. A satellite's ring
// follows the satellite.
func Compose(sys *celestial.SystemDescriptor, materials asset.Catalog) (*Node, []Pair, error) {
	if err := sys.Validate(); err != nil {
		return nil, nil, err
	}

	root := NewRoot(sys.Name)
	pairs := make([]Pair, 0, sys.Count()+ringCount(sys))

	star, err := NewStarNode(&sys.Star, materials.Lookup(sys.Star.Name))
	if err != nil {
		return nil, nil, err
	}
	if err := root.Add(star); err != nil {
		return nil, nil, err
	}
	pairs = append(pairs, Pair{Node: star, Descriptor: &sys.Star})
	if pairs, err = attachRing(star, &sys.Star, materials, pairs); err != nil {
		return nil, nil, err
	}

	for i := range sys.Bodies {
		body := &sys.Bodies[i]
		node, err := NewBodyNode(body, materials.Lookup(body.Name))
		if err != nil {
			return nil, nil, err
		}
		if err := root.Add(node); err != nil {
			return nil, nil, err
		}
		pairs = append(pairs, Pair{Node: node, Descriptor: body})

		for j := range body.Satellites {
			satellite := &body.Satellites[j]
			child, err := NewBodyNode(satellite, materials.Lookup(satellite.Name))
			if err != nil {
				return nil, nil, err
			}
			if err := node.Add(child); err != nil {
				return nil, nil, err
			}
			pairs = append(pairs, Pair{Node: child, Descriptor: satellite})
			if pairs, err = attachRing(child, satellite, materials, pairs); err != nil {
				return nil, nil, err
			}
		}

		if pairs, err = attachRing(node, body, materials, pairs); err != nil {
			return nil, nil, err
		}
	}

	return root, pairs, nil
}

func attachRing(owner *Node, d *celestial.BodyDescriptor, materials asset.Catalog, pairs []Pair) ([]Pair, error) {
	if d.Ring == nil {
		return pairs, nil
	}
	ring, err := NewRingNode(d, materials.RingLookup(d.Name))
	if err != nil {
		return nil, err
	}
	if err := owner.Add(ring); err != nil {
		return nil, err
	}
	return append(pairs, Pair{Node: ring, Descriptor: d}), nil
}

func ringCount(sys *celestial.SystemDescriptor) int {
	count := 0
	if sys.Star.Ring != nil {
		count++
	}
	for _, body := range sys.Bodies {
		if body.Ring != nil {
			count++
		}
		for _, satellite := range body.Satellites {
			if satellite.Ring != nil {
				count++
			}
		}
	}
	return count
}

// CheckPairs verifies that every non-root node under root appears exactly
// once in pairs and that no pair refers to a node outside the tree.
func CheckPairs(root *Node, pairs []Pair) error {
	inTree := make(map[*Node]bool)
	root.Walk(func(node *Node, _ physics.Vector3) {
		if node != root {
			inTree[node] = false
		}
	})

	for _, p := range pairs {
		if p.Node == nil {
			return fmt.Errorf("pair without node for descriptor %q", descriptorName(p.Descriptor))
		}
		seen, ok := inTree[p.Node]
		if !ok {
			return fmt.Errorf("pair node %q is not part of the scene", p.Node.Path)
		}
		if seen {
			return fmt.Errorf("node %q appears in more than one pair", p.Node.Path)
		}
		inTree[p.Node] = true
	}

	for node, seen := range inTree {
		if !seen {
			return fmt.Errorf("node %q has no pair", node.Path)
		}
	}
	return nil
}

func descriptorName(d *celestial.BodyDescriptor) string {
	if d == nil {
		return "<nil>"
	}
	return d.Name
}
