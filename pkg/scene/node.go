// Package scene turns a celestial.SystemDescriptor into a node hierarchy
// and animates it over time.
//
// The hierarchy is root → star, root → body → satellite and body → ring.
// A node's position is relative to its parent's origin. Only the update
// engine mutates positions and rotations after composition.
package scene

import (
	"fmt"

	"github.com/opd-ai/go-orrery/pkg/asset"
	"github.com/opd-ai/go-orrery/pkg/celestial"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// Kind selects a node's update rule.
type Kind int

const (
	KindRoot Kind = iota
	KindStar
	KindBody
	KindRing
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindStar:
		return "star"
	case KindBody:
		return "body"
	case KindRing:
		return "ring"
	default:
		return "unknown"
	}
}

// Transform is a node's placement relative to its parent. Rotation holds
// Euler angles in radians and is never wrapped.
type Transform struct {
	Position physics.Vector3
	Rotation physics.Vector3
	Scale    float64
}

// Node is one element of the scene hierarchy.
type Node struct {
	Name      string
	Path      string
	Kind      Kind
	Transform Transform
	Mesh      *Mesh

	// Descriptor is the body this node was built from. Ring nodes point at
	// their owning body.
	Descriptor *celestial.BodyDescriptor

	parent   *Node
	children []*Node
}

// NewRoot creates an empty system root.
func NewRoot(name string) *Node {
	return &Node{
		Name:      name,
		Kind:      KindRoot,
		Transform: Transform{Scale: 1},
	}
}

// Parent returns the owning node, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child nodes in insertion order. Callers must not
// modify the returned slice.
func (n *Node) Children() []*Node {
	return n.children
}

// Add attaches child under n and derives its path.
func (n *Node) Add(child *Node) error {
	if child == nil {
		return fmt.Errorf("cannot attach nil node to %q", n.Name)
	}
	if child.parent != nil {
		return fmt.Errorf("node %q already belongs to %q", child.Name, child.parent.Name)
	}
	if n.Kind == KindRing {
		return fmt.Errorf("ring %q cannot have children", n.Path)
	}
	if child.Kind == KindRing && n.Kind != KindBody && n.Kind != KindStar {
		return fmt.Errorf("ring %q must be attached to a body, not %s", child.Name, n.Kind)
	}

	switch {
	case child.Kind == KindRing:
		child.Path = asset.RingKey(n.Path)
	case n.Kind == KindRoot:
		child.Path = child.Name
	default:
		child.Path = celestial.JoinPath(n.Path, child.Name)
	}

	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// WorldPosition returns the node's position in system space. Parent
// positions are composed by translation only.
func (n *Node) WorldPosition() physics.Vector3 {
	var world physics.Vector3
	for node := n; node != nil; node = node.parent {
		world = world.Add(node.Transform.Position)
	}
	return world
}

// Walk visits n and its descendants depth-first in insertion order, passing
// each node's world position.
func (n *Node) Walk(fn func(node *Node, world physics.Vector3)) {
	var origin physics.Vector3
	if n.parent != nil {
		origin = n.parent.WorldPosition()
	}
	n.walk(origin, fn)
}

func (n *Node) walk(origin physics.Vector3, fn func(*Node, physics.Vector3)) {
	world := origin.Add(n.Transform.Position)
	fn(n, world)
	for _, child := range n.children {
		child.walk(world, fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, physics.Vector3) { count++ })
	return count
}

// Find returns the descendant with the given path, or nil.
func (n *Node) Find(path string) *Node {
	var found *Node
	n.Walk(func(node *Node, _ physics.Vector3) {
		if found == nil && node.Path == path && node != n {
			found = node
		}
	})
	return found
}
