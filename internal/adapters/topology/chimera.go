package topology

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/anneal-lab/embedcache/internal/core/domain"
	"go.trai.ch/zerr"
)

const defaultShore = 4

// ChimeraParams describes an M×N grid of K_{T,T} unit cells.
type ChimeraParams struct {
	Rows     int
	Cols     int
	Shore    int
	Disabled []int
}

// ParseChimera parses "M", "MxN" or "MxNxT", optionally followed by
// ",disabled=a;b;c".
func ParseChimera(s string) (ChimeraParams, error) {
	dims, opts, _ := strings.Cut(s, ",")

	parts := strings.Split(dims, "x")
	if len(parts) > 3 {
		return ChimeraParams{}, domain.ErrInvalidTopologySpec
	}
	vals := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 1 {
			return ChimeraParams{}, zerr.With(domain.ErrInvalidTopologySpec, "dimension", part)
		}
		vals[i] = v
	}

	p := ChimeraParams{Rows: vals[0], Cols: vals[0], Shore: defaultShore}
	if len(vals) > 1 {
		p.Cols = vals[1]
	}
	if len(vals) > 2 {
		p.Shore = vals[2]
	}

	disabled, err := parseDisabled(opts, p.Rows*p.Cols*2*p.Shore)
	if err != nil {
		return ChimeraParams{}, err
	}
	p.Disabled = disabled

	return p, nil
}

// ID returns the topology id of the fully working graph. Build appends a
// fingerprint prefix when qubits are disabled.
func (p ChimeraParams) ID() string {
	return fmt.Sprintf("chimera_m%d_n%d_t%d", p.Rows, p.Cols, p.Shore)
}

// Index returns the linear index of qubit k on side u of cell (r, c).
func (p ChimeraParams) Index(r, c, u, k int) int {
	return ((r*p.Cols+c)*2+u)*p.Shore + k
}

// Build generates the Chimera topology. Side 0 couples vertically between
// rows, side 1 horizontally between columns.
func (p ChimeraParams) Build() (*domain.Topology, error) {
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

	for r := range p.Rows {
		for c := range p.Cols {
			for k := range p.Shore {
				for _, u := range []int{0, 1} {
					if n := p.Index(r, c, u, k); !disabled[n] {
						g.AddNode(n)
					}
				}
				for k2 := range p.Shore {
					add(p.Index(r, c, 0, k), p.Index(r, c, 1, k2))
				}
				if r+1 < p.Rows {
					add(p.Index(r, c, 0, k), p.Index(r+1, c, 0, k))
				}
				if c+1 < p.Cols {
					add(p.Index(r, c, 1, k), p.Index(r, c+1, 1, k))
				}
			}
		}
	}

	tiling := &domain.Tiling{
		Rows:         p.Rows,
		Cols:         p.Cols,
		NodesPerTile: 2 * p.Shore,
	}
	topo, err := domain.NewTopology(p.ID(), g, tiling)
	if err != nil {
		return nil, err
	}
	if len(p.Disabled) > 0 {
		topo.ID += "_" + topo.Fingerprint()[:8]
	}
	return topo, nil
}

// parseDisabled parses the "disabled=a;b;c" option listing inoperable qubits
// below size.
func parseDisabled(opts string, size int) ([]int, error) {
	if opts == "" {
		return nil, nil
	}
	list, ok := strings.CutPrefix(opts, "disabled=")
	if !ok {
		return nil, zerr.With(domain.ErrInvalidTopologySpec, "option", opts)
	}
	var out []int
	for item := range strings.SplitSeq(list, ";") {
		if item == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(item))
		if err != nil || n < 0 || n >= size {
			return nil, zerr.With(domain.ErrInvalidTopologySpec, "disabled", item)
		}
		out = append(out, n)
	}
	return out, nil
}
