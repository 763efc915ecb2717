package geometry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// NodeID is a stable handle to a shape stored in a Graph.
// Handles are never reused, so a stale handle can only ever refer to a removed node.
type NodeID int

// NoNode is the parent of a root node
const NoNode NodeID = -1

var (
	// ErrUnknownNode is returned for handles that were never issued or were removed
	ErrUnknownNode = errors.New("unknown shape node")
	// ErrCycle is returned when a bind would make a node its own ancestor
	ErrCycle = errors.New("binding would create a cycle")
)

// Order selects how Flatten sorts the pre-order listing
type Order int

const (
	OrderNone       Order = iota // keep pre-order
	OrderAscending               // lowest priority first
	OrderDescending              // highest priority first
)

type node struct {
	shape    Shape
	label    string
	priority uint32
	parent   NodeID
	children []NodeID
	removed  bool
}

// Graph is an arena of shapes linked into a forest. Each node has at most one
// parent and an ordered list of children. The graph is built during scene
// construction and must not be mutated while a render is in progress.
type Graph struct {
	nodes []node
}

// NewGraph creates an empty shape graph
func NewGraph() *Graph {
	return &Graph{}
}

// Add stores a shape as a new root node and returns its handle
func (g *Graph) Add(shape Shape, label string, priority uint32) NodeID {
	g.nodes = append(g.nodes, node{
		shape:    shape,
		label:    label,
		priority: priority,
		parent:   NoNode,
	})
	return NodeID(len(g.nodes) - 1)
}

func (g *Graph) get(id NodeID) (*node, error) {
	if id < 0 || int(id) >= len(g.nodes) || g.nodes[id].removed {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return &g.nodes[id], nil
}

// Bind makes child the last child of parent, detaching it from any previous parent
func (g *Graph) Bind(parent, child NodeID) error {
	if _, err := g.get(parent); err != nil {
		return err
	}
	c, err := g.get(child)
	if err != nil {
		return err
	}

	for anc := parent; anc != NoNode; anc = g.nodes[anc].parent {
		if anc == child {
			return fmt.Errorf("%w: %d under %d", ErrCycle, child, parent)
		}
	}

	g.detach(child)
	c.parent = parent
	g.nodes[parent].children = append(g.nodes[parent].children, child)
	return nil
}

// Unbind detaches a node from its parent, turning it into a root
func (g *Graph) Unbind(child NodeID) error {
	if _, err := g.get(child); err != nil {
		return err
	}
	g.detach(child)
	return nil
}

func (g *Graph) detach(child NodeID) {
	parent := g.nodes[child].parent
	if parent == NoNode {
		return
	}
	p := &g.nodes[parent]
	p.children = slices.DeleteFunc(p.children, func(id NodeID) bool { return id == child })
	g.nodes[child].parent = NoNode
}

// Remove detaches a node and drops it from the arena. Its children become roots.
func (g *Graph) Remove(id NodeID) error {
	n, err := g.get(id)
	if err != nil {
		return err
	}
	g.detach(id)
	for _, child := range n.children {
		g.nodes[child].parent = NoNode
	}
	n.children = nil
	n.shape = nil
	n.removed = true
	return nil
}

// RemoveChildrenWithLabel detaches every direct child of parent carrying label
// and returns how many were detached. Detached children become roots.
func (g *Graph) RemoveChildrenWithLabel(parent NodeID, label string) (int, error) {
	p, err := g.get(parent)
	if err != nil {
		return 0, err
	}
	var kept []NodeID
	removed := 0
	for _, child := range p.children {
		if g.nodes[child].label == label {
			g.nodes[child].parent = NoNode
			removed++
			continue
		}
		kept = append(kept, child)
	}
	p.children = kept
	return removed, nil
}

// Shape returns the shape stored at id
func (g *Graph) Shape(id NodeID) (Shape, error) {
	n, err := g.get(id)
	if err != nil {
		return nil, err
	}
	return n.shape, nil
}

// Label returns the label of id, or "" for an unknown handle
func (g *Graph) Label(id NodeID) string {
	if n, err := g.get(id); err == nil {
		return n.label
	}
	return ""
}

// SetLabel renames a node
func (g *Graph) SetLabel(id NodeID, label string) error {
	n, err := g.get(id)
	if err != nil {
		return err
	}
	n.label = label
	return nil
}

// Priority returns the priority of id, or 0 for an unknown handle
func (g *Graph) Priority(id NodeID) uint32 {
	if n, err := g.get(id); err == nil {
		return n.priority
	}
	return 0
}

// SetPriority changes the sort key used by Flatten
func (g *Graph) SetPriority(id NodeID, priority uint32) error {
	n, err := g.get(id)
	if err != nil {
		return err
	}
	n.priority = priority
	return nil
}

// Parent returns the parent of id; ok is false for roots and unknown handles
func (g *Graph) Parent(id NodeID) (NodeID, bool) {
	n, err := g.get(id)
	if err != nil || n.parent == NoNode {
		return NoNode, false
	}
	return n.parent, true
}

// Children returns a copy of the child handles of id in insertion order
func (g *Graph) Children(id NodeID) []NodeID {
	n, err := g.get(id)
	if err != nil {
		return nil
	}
	return slices.Clone(n.children)
}

// Roots returns every live parentless node in insertion order
func (g *Graph) Roots() []NodeID {
	var roots []NodeID
	for i := range g.nodes {
		if !g.nodes[i].removed && g.nodes[i].parent == NoNode {
			roots = append(roots, NodeID(i))
		}
	}
	return roots
}

// Len returns the number of live nodes
func (g *Graph) Len() int {
	count := 0
	for i := range g.nodes {
		if !g.nodes[i].removed {
			count++
		}
	}
	return count
}

// Flatten lists the subtree rooted at root in pre-order (node, then each child
// in insertion order) and then sorts it by priority according to order.
// The sort is stable, so equal priorities keep their pre-order positions.
func (g *Graph) Flatten(root NodeID, order Order) ([]Shape, error) {
	if _, err := g.get(root); err != nil {
		return nil, err
	}
	ids := g.preOrder(root, nil)
	return g.sortedShapes(ids, order), nil
}

// FlattenAll flattens every root in insertion order into a single list
func (g *Graph) FlattenAll(order Order) []Shape {
	var ids []NodeID
	for _, root := range g.Roots() {
		ids = g.preOrder(root, ids)
	}
	return g.sortedShapes(ids, order)
}

func (g *Graph) preOrder(id NodeID, out []NodeID) []NodeID {
	out = append(out, id)
	for _, child := range g.nodes[id].children {
		out = g.preOrder(child, out)
	}
	return out
}

func (g *Graph) sortedShapes(ids []NodeID, order Order) []Shape {
	switch order {
	case OrderAscending:
		slices.SortStableFunc(ids, func(a, b NodeID) int {
			return cmp.Compare(g.nodes[a].priority, g.nodes[b].priority)
		})
	case OrderDescending:
		slices.SortStableFunc(ids, func(a, b NodeID) int {
			return cmp.Compare(g.nodes[b].priority, g.nodes[a].priority)
		})
	}

	shapes := make([]Shape, 0, len(ids))
	for _, id := range ids {
		shapes = append(shapes, g.nodes[id].shape)
	}
	return shapes
}
