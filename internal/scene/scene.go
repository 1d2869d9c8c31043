// Package scene is the contract between the simulation and whatever draws it.
// The simulation writes transforms and visibility into nodes; a renderer reads
// them back once per frame.
package scene

import "dinorun/internal/geom"

// Node is the drawable representation of one simulated object.
type Node struct {
	// Model names the catalog entry the node was loaded from.
	Model string
	// Bounds is the model-space bounding box.
	Bounds geom.AABB

	geom.Transform
	Visible bool

	// Clock is the animation time in seconds, advanced by the owner.
	Clock float64
}

// NewNode returns a visible node at the origin.
func NewNode(model string, bounds geom.AABB) *Node {
	return &Node{
		Model:     model,
		Bounds:    bounds,
		Transform: geom.Identity(),
		Visible:   true,
	}
}

// WorldBounds returns the model bounds carried through the node transform.
func (n *Node) WorldBounds() geom.AABB {
	return n.Bounds.Transform(n.Matrix())
}

// Advance moves the animation clock forward.
func (n *Node) Advance(dt float64) {
	if dt > 0 {
		n.Clock += dt
	}
}

// Scene holds nodes in insertion order.
type Scene struct {
	nodes []*Node
}

func New() *Scene {
	return &Scene{}
}

func (s *Scene) Add(n *Node) {
	s.nodes = append(s.nodes, n)
}

// Nodes returns the scene contents. Callers must not modify the slice.
func (s *Scene) Nodes() []*Node {
	return s.nodes
}

func (s *Scene) Len() int {
	return len(s.nodes)
}
