package raster

import (
	"context"
	"math/rand/v2"

	"github.com/anneal-lab/embedcache/internal/core/domain"
)

const (
	// annealMovesPerNode bounds the local search at this many moves per
	// source node.
	annealMovesPerNode = 4000

	// annealNoise is the chance of taking a random candidate instead of the
	// best one.
	annealNoise = 0.1
)

// annealer is a min-conflicts local search over injective layouts. Source
// nodes start on a breadth first walk of target, then the node of a broken
// edge repeatedly moves to, or swaps with, whichever qubit next to its
// neighbours' images breaks the fewest edges.
type annealer struct {
	target *domain.Graph
	nbrs   map[int][]int

	nodes []int
	adj   [][]int
	img   []int
	occ   map[int]int

	bad      []int
	total    int
	violated []int
	slot     []int

	mark  map[int]int
	epoch int
	rng   *rand.Rand
}

// anneal returns nil, nil when maxMoves pass without every edge in place. The
// seed is fixed so the same graphs always produce the same embedding.
func anneal(ctx context.Context, source, target *domain.Graph, nbrs map[int][]int, maxMoves int) (domain.Embedding, error) {
	a := newAnnealer(source, target, nbrs)
	if a == nil {
		return nil, nil
	}

	var cands []int
	for moves := 0; a.total > 0; moves++ {
		if moves >= maxMoves {
			return nil, nil
		}
		if moves%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		v := a.violated[a.rng.IntN(len(a.violated))]
		cands = a.candidates(v, cands[:0])
		if len(cands) == 0 {
			continue
		}

		var q int
		if a.rng.Float64() < annealNoise {
			q = cands[a.rng.IntN(len(cands))]
		} else {
			q = a.best(v, cands)
		}
		a.move(v, q)
	}

	emb := make(domain.Embedding, len(a.nodes))
	for i, n := range a.nodes {
		emb[n] = a.img[i]
	}
	return emb, nil
}

func newAnnealer(source, target *domain.Graph, nbrs map[int][]int) *annealer {
	nodes := bfsOrder(source, source.Neighbors)
	qubits := bfsOrder(target, func(n int) []int { return nbrs[n] })

	if len(qubits) < len(nodes) {
		return nil
	}

	a := &annealer{
		target: target,
		nbrs:   nbrs,
		nodes:  nodes,
		adj:    make([][]int, len(nodes)),
		img:    make([]int, len(nodes)),
		occ:    make(map[int]int, len(nodes)),
		bad:    make([]int, len(nodes)),
		slot:   make([]int, len(nodes)),
		mark:   make(map[int]int),
		rng:    rand.New(rand.NewPCG(0x5eed, 0xcafe)),
	}

	index := make(map[int]int, len(nodes))
	for i, n := range nodes {
		index[n] = i
	}
	for i, n := range nodes {
		for _, w := range source.Neighbors(n) {
			a.adj[i] = append(a.adj[i], index[w])
		}
		a.img[i] = qubits[i]
		a.occ[qubits[i]] = i
		a.slot[i] = -1
	}
	for i := range nodes {
		a.refresh(i)
	}
	return a
}

// bfsOrder walks every component breadth first, starting each one from its
// lowest node.
func bfsOrder(g *domain.Graph, neighbors func(int) []int) []int {
	nodes := g.Nodes()
	seen := make(map[int]bool, len(nodes))
	order := make([]int, 0, len(nodes))
	for _, root := range nodes {
		if seen[root] {
			continue
		}
		seen[root] = true
		order = append(order, root)
		for i := len(order) - 1; i < len(order); i++ {
			for _, w := range neighbors(order[i]) {
				if !seen[w] {
					seen[w] = true
					order = append(order, w)
				}
			}
		}
	}
	return order
}

// candidates lists the qubits next to the images of v's neighbours, other
// than v's own.
func (a *annealer) candidates(v int, out []int) []int {
	a.epoch++
	a.mark[a.img[v]] = a.epoch
	for _, u := range a.adj[v] {
		for _, q := range a.nbrs[a.img[u]] {
			if a.mark[q] != a.epoch {
				a.mark[q] = a.epoch
				out = append(out, q)
			}
		}
	}
	return out
}

// best returns the candidate with the lowest change in broken edges, ties
// broken at random.
func (a *annealer) best(v int, cands []int) int {
	bestDelta, ties := 0, 0
	var pick int
	for _, q := range cands {
		d := a.delta(v, q)
		switch {
		case ties == 0 || d < bestDelta:
			bestDelta, pick, ties = d, q, 1
		case d == bestDelta:
			ties++
			if a.rng.IntN(ties) == 0 {
				pick = q
			}
		}
	}
	return pick
}

// delta is the change in broken edges from moving v to q, swapping with the
// node on q when there is one.
func (a *annealer) delta(v, q int) int {
	w, taken := a.occ[q]
	if !taken {
		return a.badAt(v, q, -1, 0) - a.bad[v]
	}

	// A v-w edge is counted from both ends before and after, and a swap
	// leaves it as it was.
	pv := a.img[v]
	return a.badAt(v, q, w, pv) + a.badAt(w, pv, v, q) - a.bad[v] - a.bad[w]
}

// badAt counts the broken edges of v if it sat on q, with other placed on at.
func (a *annealer) badAt(v, q, other, at int) int {
	n := 0
	for _, u := range a.adj[v] {
		pu := a.img[u]
		if u == other {
			pu = at
		}
		if !a.target.HasEdge(q, pu) {
			n++
		}
	}
	return n
}

func (a *annealer) move(v, q int) {
	pv := a.img[v]
	w, taken := a.occ[q]

	a.img[v] = q
	a.occ[q] = v
	if taken {
		a.img[w] = pv
		a.occ[pv] = w
	} else {
		delete(a.occ, pv)
	}

	a.refresh(v)
	for _, u := range a.adj[v] {
		a.refresh(u)
	}
	if taken {
		a.refresh(w)
		for _, u := range a.adj[w] {
			a.refresh(u)
		}
	}
}

// refresh recounts the broken edges of v and keeps the violated set current.
func (a *annealer) refresh(v int) {
	n := a.badAt(v, a.img[v], -1, 0)
	a.total += n - a.bad[v]
	a.bad[v] = n

	switch {
	case n > 0 && a.slot[v] < 0:
		a.slot[v] = len(a.violated)
		a.violated = append(a.violated, v)
	case n == 0 && a.slot[v] >= 0:
		last := a.violated[len(a.violated)-1]
		a.violated[a.slot[v]] = last
		a.slot[last] = a.slot[v]
		a.violated = a.violated[:len(a.violated)-1]
		a.slot[v] = -1
	}
}
