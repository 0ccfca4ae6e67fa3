package raster

import (
	"context"
	"errors"
	"slices"

	"github.com/anneal-lab/embedcache/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	checkEvery = 1024

	// backtrackSteps is how far the exact search goes before handing over to
	// the local search.
	backtrackSteps = 1 << 17
)

var errBacktrackBudget = zerr.New("backtracking step budget exhausted")

// matcher finds an injective map of source nodes to target nodes under which
// every source edge lands on a target edge.
type matcher struct {
	ctx    context.Context
	source *domain.Graph
	target *domain.Graph
	nbrs   map[int][]int
	order  []int
	prev   [][]int
	assign []int
	used   map[int]bool
	steps  int
	budget int
}

// match returns nil, nil when no embedding was found. Small graphs are
// settled by backtracking. When that runs out of steps the local search takes
// over, so a nil result then means none was found rather than none exists.
func match(ctx context.Context, source, target *domain.Graph) (domain.Embedding, error) {
	return matchWithin(ctx, source, target, backtrackSteps)
}

func matchWithin(ctx context.Context, source, target *domain.Graph, budget int) (domain.Embedding, error) {
	if source.NumNodes() > target.NumNodes() || source.NumEdges() > target.NumEdges() {
		return nil, nil
	}
	if source.NumNodes() == 0 {
		return domain.Embedding{}, nil
	}

	m := &matcher{
		ctx:    ctx,
		source: source,
		target: target,
		nbrs:   make(map[int][]int, target.NumNodes()),
		used:   make(map[int]bool, source.NumNodes()),
		budget: budget,
	}
	for _, n := range target.Nodes() {
		m.nbrs[n] = target.Neighbors(n)
	}
	m.orderNodes()
	m.assign = make([]int, len(m.order))

	ok, err := m.extend(0)
	if errors.Is(err, errBacktrackBudget) {
		return anneal(ctx, source, target, m.nbrs, annealMovesPerNode*source.NumNodes())
	}
	if err != nil || !ok {
		return nil, err
	}

	emb := make(domain.Embedding, len(m.order))
	for i, v := range m.order {
		emb[v] = m.assign[i]
	}
	return emb, nil
}

// orderNodes lays out source nodes breadth first, starting each component
// from its highest-degree node, and records for every position the earlier
// positions it is adjacent to.
func (m *matcher) orderNodes() {
	nodes := m.source.Nodes()
	pos := make(map[int]int, len(nodes))
	seen := make(map[int]bool, len(nodes))

	byDegree := slices.Clone(nodes)
	slices.SortStableFunc(byDegree, func(a, b int) int {
		return m.source.Degree(b) - m.source.Degree(a)
	})

	for _, root := range byDegree {
		if seen[root] {
			continue
		}
		seen[root] = true
		queue := []int{root}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			pos[v] = len(m.order)
			m.order = append(m.order, v)
			for _, w := range m.source.Neighbors(v) {
				if !seen[w] {
					seen[w] = true
					queue = append(queue, w)
				}
			}
		}
	}

	m.prev = make([][]int, len(m.order))
	for i, v := range m.order {
		for _, w := range m.source.Neighbors(v) {
			if p := pos[w]; p < i {
				m.prev[i] = append(m.prev[i], p)
			}
		}
		slices.Sort(m.prev[i])
	}
}

func (m *matcher) extend(i int) (bool, error) {
	if i == len(m.order) {
		return true, nil
	}

	m.steps++
	if m.steps > m.budget {
		return false, errBacktrackBudget
	}
	if m.steps%checkEvery == 0 {
		if err := m.ctx.Err(); err != nil {
			return false, err
		}
	}

	v := m.order[i]
	candidates := m.target.Nodes()
	if len(m.prev[i]) > 0 {
		candidates = m.nbrs[m.assign[m.prev[i][0]]]
	}

	for _, c := range candidates {
		if !m.feasible(i, v, c) {
			continue
		}
		m.assign[i] = c
		m.used[c] = true
		ok, err := m.extend(i + 1)
		if err != nil || ok {
			return ok, err
		}
		delete(m.used, c)
	}
	return false, nil
}

func (m *matcher) feasible(i, v, c int) bool {
	if m.used[c] || len(m.nbrs[c]) < m.source.Degree(v) {
		return false
	}
	for _, p := range m.prev[i] {
		if !m.target.HasEdge(m.assign[p], c) {
			return false
		}
	}
	return true
}
