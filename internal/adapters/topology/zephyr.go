package topology

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/anneal-lab/embedcache/internal/core/domain"
	"go.trai.ch/zerr"
)

const defaultZephyrTile = 4

// ZephyrParams describes a Zephyr graph Z(m, t): 2m+1 lines of qubits in each
// orientation, t qubit pairs per line and m segments along a line.
type ZephyrParams struct {
	M        int
	Tile     int
	Disabled []int
}

// ParseZephyr parses "M" or "MxT", optionally followed by ",disabled=a;b;c".
func ParseZephyr(s string) (ZephyrParams, error) {
	dims, opts, _ := strings.Cut(s, ",")

	parts := strings.Split(dims, "x")
	if len(parts) > 2 {
		return ZephyrParams{}, domain.ErrInvalidTopologySpec
	}
	vals := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 1 {
			return ZephyrParams{}, zerr.With(domain.ErrInvalidTopologySpec, "dimension", part)
		}
		vals[i] = v
	}

	p := ZephyrParams{M: vals[0], Tile: defaultZephyrTile}
	if len(vals) > 1 {
		p.Tile = vals[1]
	}

	disabled, err := parseDisabled(opts, p.tiling().Size())
	if err != nil {
		return ZephyrParams{}, err
	}
	p.Disabled = disabled
	return p, nil
}

// ID returns the topology id of the fully working graph.
func (p ZephyrParams) ID() string {
	return fmt.Sprintf("zephyr_m%d_t%d", p.M, p.Tile)
}

// tiling groups the qubits into (M+1)×(M+1) tiles. A vertical qubit (0, w, k,
// j, z) sits in tile (z, w/2), a horizontal one (1, w, k, j, z) in tile
// (w/2, z), so moving one tile is a symmetry of the graph.
func (p ZephyrParams) tiling() *domain.Tiling {
	return &domain.Tiling{Rows: p.M + 1, Cols: p.M + 1, NodesPerTile: 8 * p.Tile}
}

// Index returns the node index of qubit (u, w, k, j, z): orientation u, line
// w, pair k, offset j and segment z.
func (p ZephyrParams) Index(u, w, k, j, z int) int {
	row, col := z, w/2
	if u == 1 {
		row, col = w/2, z
	}
	slot := u*4*p.Tile + ((w%2)*p.Tile+k)*2 + j
	return (row*(p.M+1)+col)*8*p.Tile + slot
}

// Build generates the Zephyr topology. A qubit with offset j on segment z
// spans the perpendicular lines 2z+j and 2z+j+1, and crosses every
// perpendicular qubit whose span covers its own line.
func (p ZephyrParams) Build() (*domain.Topology, error) {
	disabled := make(map[int]bool, len(p.Disabled))
	for _, n := range p.Disabled {
		disabled[n] = true
	}

	g := domain.NewGraph()
	add := func(a, b int) {
		if !disabled[a] && !disabled[b] {
			g.AddEdge(a, b)
		}
	}

	lines := 2*p.M + 1
	for u := range 2 {
		for w := range lines {
			for k := range p.Tile {
				for z := range p.M {
					for j := range 2 {
						if n := p.Index(u, w, k, j, z); !disabled[n] {
							g.AddNode(n)
						}
						if z+1 < p.M {
							add(p.Index(u, w, k, j, z), p.Index(u, w, k, j, z+1))
						}
					}
					add(p.Index(u, w, k, 0, z), p.Index(u, w, k, 1, z))
					if z > 0 {
						add(p.Index(u, w, k, 0, z), p.Index(u, w, k, 1, z-1))
					}
				}
			}
		}
	}

	for w := range lines {
		for k := range p.Tile {
			for z := range p.M {
				for j := range 2 {
					for _, hw := range []int{2*z + j, 2*z + j + 1} {
						for _, s := range []int{w - 1, w} {
							if s < 0 || s >= 2*p.M {
								continue
							}
							for hk := range p.Tile {
								add(p.Index(0, w, k, j, z), p.Index(1, hw, hk, s%2, s/2))
							}
						}
					}
				}
			}
		}
	}

	topo, err := domain.NewTopology(p.ID(), g, p.tiling())
	if err != nil {
		return nil, err
	}
	if len(p.Disabled) > 0 {
		topo.ID += "_" + topo.Fingerprint()[:8]
	}
	return topo, nil
}
