// Package domain contains the core domain models for lattice embedding: graphs,
// topologies, embedding tables and the cache keys that name them on disk.
package domain

import (
	"iter"
	"slices"
)

// Edge is an undirected pair of node indices stored with U < V.
type Edge struct {
	U int
	V int
}

// NewEdge returns the canonical form of the edge between u and v.
func NewEdge(u, v int) Edge {
	if u > v {
		u, v = v, u
	}
	return Edge{U: u, V: v}
}

// Graph is an undirected simple graph over integer-labeled nodes.
type Graph struct {
	adj   map[int]map[int]struct{}
	nodes []int
	edges int
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		adj: make(map[int]map[int]struct{}),
	}
}

// AddNode adds a node. Adding an existing node is a no-op.
func (g *Graph) AddNode(n int) {
	if _, exists := g.adj[n]; exists {
		return
	}
	g.adj[n] = make(map[int]struct{})
	i, _ := slices.BinarySearch(g.nodes, n)
	g.nodes = slices.Insert(g.nodes, i, n)
}

// AddEdge adds an undirected edge, creating missing endpoints.
// Self loops are ignored. It reports whether the edge was new.
func (g *Graph) AddEdge(u, v int) bool {
	if u == v {
		return false
	}
	g.AddNode(u)
	g.AddNode(v)
	if _, exists := g.adj[u][v]; exists {
		return false
	}
	g.adj[u][v] = struct{}{}
	g.adj[v][u] = struct{}{}
	g.edges++
	return true
}

// HasNode reports whether n is a node of the graph.
func (g *Graph) HasNode(n int) bool {
	_, ok := g.adj[n]
	return ok
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v int) bool {
	_, ok := g.adj[u][v]
	return ok
}

// Nodes returns the nodes in ascending order.
func (g *Graph) Nodes() []int {
	return slices.Clone(g.nodes)
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int {
	return g.edges
}

// Degree returns the number of neighbors of n.
func (g *Graph) Degree(n int) int {
	return len(g.adj[n])
}

// Neighbors returns the neighbors of n in ascending order.
func (g *Graph) Neighbors(n int) []int {
	out := make([]int, 0, len(g.adj[n]))
	for m := range g.adj[n] {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}

// Edges returns an iterator over the edges ordered by (U, V).
func (g *Graph) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for _, u := range g.nodes {
			for _, v := range g.Neighbors(u) {
				if v < u {
					continue
				}
				if !yield(Edge{U: u, V: v}) {
					return
				}
			}
		}
	}
}

// Subgraph returns the subgraph induced by the nodes accepted by keep.
func (g *Graph) Subgraph(keep func(int) bool) *Graph {
	sub := NewGraph()
	for _, n := range g.nodes {
		if keep(n) {
			sub.AddNode(n)
		}
	}
	for e := range g.Edges() {
		if sub.HasNode(e.U) && sub.HasNode(e.V) {
			sub.AddEdge(e.U, e.V)
		}
	}
	return sub
}
