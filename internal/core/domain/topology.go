package domain

import (
	"encoding/binary"
	"fmt"
	"regexp"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

var validTopologyIDRegex = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Tiling describes a topology whose nodes are indexed tile-major: node n lives
// in tile n / NodesPerTile, and tile t sits at row t / Cols, column t % Cols.
type Tiling struct {
	Rows         int `yaml:"rows"`
	Cols         int `yaml:"cols"`
	NodesPerTile int `yaml:"nodes_per_tile"`
}

// Tile returns the tile coordinates of node n.
func (t Tiling) Tile(n int) (row, col int) {
	tile := n / t.NodesPerTile
	return tile / t.Cols, tile % t.Cols
}

// Translate moves node n by (dr, dc) tiles. It reports false when the result
// falls outside the tiling.
func (t Tiling) Translate(n, dr, dc int) (int, bool) {
	row, col := t.Tile(n)
	row += dr
	col += dc
	if row < 0 || row >= t.Rows || col < 0 || col >= t.Cols {
		return 0, false
	}
	return n + (dr*t.Cols+dc)*t.NodesPerTile, true
}

// Size returns the number of node slots covered by the tiling.
func (t Tiling) Size() int {
	return t.Rows * t.Cols * t.NodesPerTile
}

// Topology is the physical connectivity of a processor, identified by a stable
// id such as a chip id. Nodes absent from the graph are inoperable qubits.
type Topology struct {
	ID     string
	Graph  *Graph
	Tiling *Tiling
}

// NewTopology validates the id and tiling and returns a Topology.
func NewTopology(id string, g *Graph, tiling *Tiling) (*Topology, error) {
	if !validTopologyIDRegex.MatchString(id) {
		return nil, zerr.With(ErrInvalidTopologyID, "topology_id", id)
	}
	if tiling != nil {
		if tiling.Rows < 1 || tiling.Cols < 1 || tiling.NodesPerTile < 1 {
			return nil, zerr.With(ErrInvalidTiling, "topology_id", id)
		}
		for _, n := range g.Nodes() {
			if n < 0 || n >= tiling.Size() {
				return nil, zerr.With(zerr.With(ErrInvalidTiling, "topology_id", id), "node", n)
			}
		}
	}
	return &Topology{ID: id, Graph: g, Tiling: tiling}, nil
}

// Fingerprint hashes the node and edge sets. Two topologies sharing an id but
// differing in working qubits or couplers have different fingerprints.
func (t *Topology) Fingerprint() string {
	h := xxhash.New()
	var buf [8]byte
	write := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v)) //nolint:gosec // node indices are non-negative
		_, _ = h.Write(buf[:])
	}

	for _, n := range t.Graph.Nodes() {
		write(n)
	}
	_, _ = h.Write([]byte{0})
	for e := range t.Graph.Edges() {
		write(e.U)
		write(e.V)
	}

	return fmt.Sprintf("%016x", h.Sum64())
}
