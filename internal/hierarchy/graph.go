// Package hierarchy holds the is-a concept graph and its descendant closure
// query. Edges run child to parent; descendant queries walk the reverse
// index. The source hierarchy is not assumed to be acyclic, so traversal
// carries a visited set.
package hierarchy

import (
	"github.com/neurobagel/vocab-handling/internal/athena"
	"github.com/neurobagel/vocab-handling/internal/observability"
)

type Graph struct {
	parents  map[int64]map[int64]bool // child -> parent set
	children map[int64]map[int64]bool // parent -> child set
	edges    int
}

func NewGraph() *Graph {
	return &Graph{
		parents:  make(map[int64]map[int64]bool),
		children: make(map[int64]map[int64]bool),
	}
}

// Build constructs the graph from retained is-a relationships. Duplicate
// rows collapse to a single edge.
func Build(relationships []athena.Relationship) *Graph {
	g := NewGraph()
	for _, rel := range relationships {
		g.AddEdge(rel.ChildID, rel.ParentID)
	}
	g.publishSize()
	return g
}

func (g *Graph) AddEdge(child, parent int64) {
	if g.parents[child] == nil {
		g.parents[child] = make(map[int64]bool)
	}
	if g.parents[child][parent] {
		return
	}
	g.parents[child][parent] = true

	if g.children[parent] == nil {
		g.children[parent] = make(map[int64]bool)
	}
	g.children[parent][child] = true
	g.edges++
}

// Descendants returns every concept whose is-a chain leads to one of the
// given roots, the roots themselves included. Breadth-first over the
// parent->child index; the result set doubles as the visited set, so cyclic
// edge sets terminate and each reachable edge is followed once.
func (g *Graph) Descendants(roots []int64) map[int64]bool {
	visited := make(map[int64]bool, len(roots))
	queue := make([]int64, 0, len(roots))
	for _, root := range roots {
		if !visited[root] {
			visited[root] = true
			queue = append(queue, root)
		}
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for child := range g.children[node] {
			if !visited[child] {
				visited[child] = true
				queue = append(queue, child)
			}
		}
	}

	return visited
}

func (g *Graph) NodeCount() int {
	nodes := make(map[int64]bool, len(g.parents)+len(g.children))
	for child := range g.parents {
		nodes[child] = true
	}
	for parent := range g.children {
		nodes[parent] = true
	}
	return len(nodes)
}

func (g *Graph) EdgeCount() int {
	return g.edges
}

// Edges returns the edge list in unspecified order, for persistence.
func (g *Graph) Edges() []athena.Relationship {
	edges := make([]athena.Relationship, 0, g.edges)
	for child, parentSet := range g.parents {
		for parent := range parentSet {
			edges = append(edges, athena.Relationship{ChildID: child, ParentID: parent})
		}
	}
	return edges
}

func (g *Graph) publishSize() {
	observability.GraphNodes.Set(float64(g.NodeCount()))
	observability.GraphEdges.Set(float64(g.edges))
}
