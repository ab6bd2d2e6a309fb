// Package scene holds the renderer-neutral output of a chart: a tree of
// nodes, each carrying the rectangle it occupies and the drawing operations
// inside it.
//
// Layout produces a scene; a sink serialises it. [WriteSVG] is the sink
// shipped with the module.
package scene

import (
	"iter"

	"github.com/matzehuels/chartistry/pkg/geom"
)

// Node is one component's slot in the scene.
type Node struct {
	Class    string
	Bounds   geom.Bounds
	Debug    bool
	Ops      []Op
	Children []*Node
}

// New returns an empty node.
func New(class string, bounds geom.Bounds) *Node {
	return &Node{Class: class, Bounds: bounds}
}

// Add appends drawing operations and returns n.
func (n *Node) Add(ops ...Op) *Node {
	n.Ops = append(n.Ops, ops...)
	return n
}

// Append adds children, skipping nil ones, and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// WithDebug sets the debug flag and returns n.
func (n *Node) WithDebug(debug bool) *Node {
	n.Debug = debug
	return n
}

// All walks the tree depth first, parents before children.
func (n *Node) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(yield)
	}
}

func (n *Node) walk(yield func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !yield(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.walk(yield) {
			return false
		}
	}
	return true
}

// Find returns the first node with the given class, or nil.
func (n *Node) Find(class string) *Node {
	for c := range n.All() {
		if c.Class == class {
			return c
		}
	}
	return nil
}

// FindAll returns every node with the given class.
func (n *Node) FindAll(class string) []*Node {
	var out []*Node
	for c := range n.All() {
		if c.Class == class {
			out = append(out, c)
		}
	}
	return out
}
