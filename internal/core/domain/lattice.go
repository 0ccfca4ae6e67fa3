package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// A ProblemEntry is a single coefficient of an Ising problem. If I == J it is a
// linear term, otherwise a coupler between I and J.
type ProblemEntry struct {
	I     int
	J     int
	Value float64
}

// Coupler is a weighted edge of the logical graph.
type Coupler struct {
	Edge
	Weight float64
}

// LogicalGraph is the spin model handed to the embedding search. It is built
// once from the lattice size and never mutated afterwards.
type LogicalGraph struct {
	l       int
	graph   *Graph
	weights map[Edge]float64
}

// NewSquareLattice builds the L×L cylinder: node (x, y) has index x*L+y, the y
// direction wraps around with alternating ±1 couplers and the x direction is
// open with +1 couplers.
func NewSquareLattice(l int) (*LogicalGraph, error) {
	if l < 1 {
		return nil, zerr.With(ErrInvalidLatticeSize, "L", l)
	}

	lg := &LogicalGraph{
		l:       l,
		graph:   NewGraph(),
		weights: make(map[Edge]float64),
	}

	for x := range l {
		for y := range l {
			lg.graph.AddNode(x*l + y)
		}
	}

	for x := range l {
		for y := range l {
			u := x*l + y
			w := -1.0
			if (x+y)%2 == 1 {
				w = 1.0
			}
			lg.setCoupler(u, x*l+(y+1)%l, w)
			if x < l-1 {
				lg.setCoupler(u, (x+1)*l+y, 1)
			}
		}
	}

	return lg, nil
}

// setCoupler keeps the first weight assigned to a pair; the wrap-around only
// revisits a pair when L == 2.
func (lg *LogicalGraph) setCoupler(u, v int, w float64) {
	if !lg.graph.AddEdge(u, v) {
		return
	}
	lg.weights[NewEdge(u, v)] = w
}

// L returns the linear lattice size.
func (lg *LogicalGraph) L() int {
	return lg.l
}

// Nodes returns the logical nodes sorted by index. This is the column order
// of every EmbeddingTable built for the graph.
func (lg *LogicalGraph) Nodes() []int {
	return lg.graph.Nodes()
}

// Graph returns the unweighted view of the lattice.
func (lg *LogicalGraph) Graph() *Graph {
	return lg.graph
}

// Weight returns the coupler weight between u and v and whether they are coupled.
func (lg *LogicalGraph) Weight(u, v int) (float64, bool) {
	w, ok := lg.weights[NewEdge(u, v)]
	return w, ok
}

// Couplers returns the weighted edges ordered by (U, V).
func (lg *LogicalGraph) Couplers() []Coupler {
	out := make([]Coupler, 0, len(lg.weights))
	for e := range lg.graph.Edges() {
		out = append(out, Coupler{Edge: e, Weight: lg.weights[e]})
	}
	return out
}

// Problem returns the couplers as Ising problem entries.
func (lg *LogicalGraph) Problem() []ProblemEntry {
	cs := lg.Couplers()
	out := make([]ProblemEntry, 0, len(cs))
	for _, c := range cs {
		out = append(out, ProblemEntry{I: c.U, J: c.V, Value: c.Weight})
	}
	return slices.Clip(out)
}
