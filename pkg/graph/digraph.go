package graph

import (
	"fmt"
)

type edge struct {
	from, to ID
}

// Digraph is a directed graph stored as adjacency lists.
// Adjacency lists keep the insertion order of the edges, which makes traversals reproducible.
// Multi-edges are not allowed: adding the same edge twice is a no-op.
type Digraph struct {
	adjacency map[ID][]ID
	edges     map[edge]struct{}
}

func NewDigraph() *Digraph {
	return &Digraph{
		adjacency: make(map[ID][]ID),
		edges:     make(map[edge]struct{}),
	}
}

// AddVertex adds the vertex to the graph. It's a no-op if the vertex is already present.
func (g *Digraph) AddVertex(ID ID) {
	if _, exists := g.adjacency[ID]; !exists {
		g.adjacency[ID] = nil
	}
}

// HasVertex returns whether the vertex was added to the graph.
func (g *Digraph) HasVertex(ID ID) bool {
	_, exists := g.adjacency[ID]
	return exists
}

// AddEdge adds the directed edge from --> to. Both vertices must have been added before,
// otherwise [ErrInvalidVertex] is returned.
func (g *Digraph) AddEdge(from, to ID) error {
	if !g.HasVertex(from) {
		return fmt.Errorf("failed to add edge %d -> %d: source %w", from, to, ErrInvalidVertex)
	}

	if !g.HasVertex(to) {
		return fmt.Errorf("failed to add edge %d -> %d: target %w", from, to, ErrInvalidVertex)
	}

	e := edge{from: from, to: to}
	if _, exists := g.edges[e]; exists {
		return nil
	}

	g.edges[e] = struct{}{}
	g.adjacency[from] = append(g.adjacency[from], to)
	return nil
}

// HasEdge returns whether the directed edge from --> to exists.
func (g *Digraph) HasEdge(from, to ID) bool {
	_, exists := g.edges[edge{from: from, to: to}]
	return exists
}

// Adjacent returns the successors of the vertex, in insertion order.
// It returns nil if the vertex has no outgoing edges or is not in the graph.
// The returned slice must not be modified.
func (g *Digraph) Adjacent(ID ID) []ID {
	return g.adjacency[ID]
}

// OutDegree returns the number of successors of the vertex.
func (g *Digraph) OutDegree(ID ID) int {
	return len(g.adjacency[ID])
}

// VertexCount returns the number of distinct vertices.
func (g *Digraph) VertexCount() int {
	return len(g.adjacency)
}

// EdgeCount returns the number of distinct directed edges.
func (g *Digraph) EdgeCount() int {
	return len(g.edges)
}
