package geometry

import (
	"fmt"
	"strings"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// HitPolicy selects how a scene resolves which shape a ray hits
type HitPolicy int

const (
	// PolicyNearest scans the flattened list and keeps the closest hit
	PolicyNearest HitPolicy = iota
	// PolicyFirstHit returns the first shape in list order that reports any hit,
	// even when a later shape is closer. Used for manual depth ordering.
	PolicyFirstHit
	// PolicyTreeOrder walks the live graph, each node before its children,
	// and returns the first hit without comparing distances.
	PolicyTreeOrder
)

var policyNames = map[HitPolicy]string{
	PolicyNearest:   "nearest",
	PolicyFirstHit:  "first",
	PolicyTreeOrder: "tree",
}

func (p HitPolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("HitPolicy(%d)", int(p))
}

// ParseHitPolicy converts a policy name ("nearest", "first", "tree") into a HitPolicy
func ParseHitPolicy(name string) (HitPolicy, error) {
	for policy, policyName := range policyNames {
		if strings.EqualFold(name, policyName) {
			return policy, nil
		}
	}
	return 0, fmt.Errorf("unknown hit policy %q (want nearest, first or tree)", name)
}

// NearestHit is a flattened shape list that reports the closest intersection
type NearestHit []Shape

// Hit implements World
func (l NearestHit) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range l {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// FirstHit is a flattened shape list that reports the first shape hit in list order
type FirstHit []Shape

// Hit implements World
func (l FirstHit) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	for _, shape := range l {
		if hit, isHit := shape.Hit(ray, tMin, tMax); isHit {
			return hit, true
		}
	}
	return nil, false
}

// TreeHit evaluates the live graph recursively from each root. Roots are read
// on every query, so removed nodes are never visited.
type TreeHit struct {
	graph *Graph
}

// NewTreeHit creates a tree-order world over graph
func NewTreeHit(graph *Graph) *TreeHit {
	return &TreeHit{graph: graph}
}

// Hit implements World
func (th *TreeHit) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	for i := range th.graph.nodes {
		n := &th.graph.nodes[i]
		if n.removed || n.parent != NoNode {
			continue
		}
		if hit, isHit := th.hitNode(NodeID(i), ray, tMin, tMax); isHit {
			return hit, true
		}
	}
	return nil, false
}

func (th *TreeHit) hitNode(id NodeID, ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	n := &th.graph.nodes[id]
	if n.removed {
		return nil, false
	}
	if hit, isHit := n.shape.Hit(ray, tMin, tMax); isHit {
		return hit, true
	}
	for _, child := range n.children {
		if hit, isHit := th.hitNode(child, ray, tMin, tMax); isHit {
			return hit, true
		}
	}
	return nil, false
}

// NewWorld builds the intersection strategy for policy over graph.
// order only affects the flattened-list policies.
func NewWorld(graph *Graph, policy HitPolicy, order Order) (World, error) {
	switch policy {
	case PolicyNearest:
		return NearestHit(graph.FlattenAll(order)), nil
	case PolicyFirstHit:
		return FirstHit(graph.FlattenAll(order)), nil
	case PolicyTreeOrder:
		return NewTreeHit(graph), nil
	default:
		return nil, fmt.Errorf("unsupported hit policy %v", policy)
	}
}
