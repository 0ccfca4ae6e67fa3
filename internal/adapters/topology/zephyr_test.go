package topology_test

import (
	"testing"

	"github.com/anneal-lab/embedcache/internal/adapters/topology"
	"github.com/anneal-lab/embedcache/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseZephyr(t *testing.T) {
	tests := []struct {
		in      string
		want    topology.ZephyrParams
		wantErr bool
	}{
		{in: "6", want: topology.ZephyrParams{M: 6, Tile: 4}},
		{in: "4x2", want: topology.ZephyrParams{M: 4, Tile: 2}},
		{in: "1x1,disabled=0;7", want: topology.ZephyrParams{M: 1, Tile: 1, Disabled: []int{0, 7}}},
		{in: "", wantErr: true},
		{in: "0", wantErr: true},
		{in: "2x2x2", wantErr: true},
		{in: "1x1,disabled=32", wantErr: true},
		{in: "1x1,broken=1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := topology.ParseZephyr(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorContains(t, err, domain.ErrInvalidTopologySpec.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestZephyr_Build(t *testing.T) {
	p := topology.ZephyrParams{M: 3, Tile: 4}
	topo, err := p.Build()
	require.NoError(t, err)

	assert.Equal(t, "zephyr_m3_t4", topo.ID)
	assert.Equal(t, &domain.Tiling{Rows: 4, Cols: 4, NodesPerTile: 32}, topo.Tiling)
	// 4tm(2m+1) qubits.
	assert.Equal(t, 4*4*3*7, topo.Graph.NumNodes())
	// External 224, odd 280 and internal 16t²m² couplers.
	assert.Equal(t, 224+280+2304, topo.Graph.NumEdges())

	q := p.Index(0, 3, 0, 1, 1)
	assert.Equal(t, 169, q)
	assert.Equal(t, 20, topo.Graph.Degree(q))

	// Internal couplers reach every pair of a crossing line.
	assert.True(t, topo.Graph.HasEdge(q, p.Index(1, 3, 2, 0, 1)))
	assert.True(t, topo.Graph.HasEdge(q, p.Index(1, 4, 3, 1, 1)))
	assert.False(t, topo.Graph.HasEdge(q, p.Index(1, 5, 0, 0, 1)))
	assert.False(t, topo.Graph.HasEdge(q, p.Index(1, 3, 0, 0, 0)))

	// Odd couplers join overlapping parallel qubits, external ones continue a line.
	assert.True(t, topo.Graph.HasEdge(q, p.Index(0, 3, 0, 0, 1)))
	assert.True(t, topo.Graph.HasEdge(q, p.Index(0, 3, 0, 0, 2)))
	assert.True(t, topo.Graph.HasEdge(q, p.Index(0, 3, 0, 1, 2)))
	assert.True(t, topo.Graph.HasEdge(q, p.Index(0, 3, 0, 1, 0)))
	assert.False(t, topo.Graph.HasEdge(q, p.Index(0, 3, 1, 1, 2)))
}

func TestZephyr_TranslationPreservesCouplers(t *testing.T) {
	topo, err := topology.ZephyrParams{M: 3, Tile: 2}.Build()
	require.NoError(t, err)

	shifts := [][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}
	for e := range topo.Graph.Edges() {
		for _, s := range shifts {
			u, okU := topo.Tiling.Translate(e.U, s[0], s[1])
			v, okV := topo.Tiling.Translate(e.V, s[0], s[1])
			if !okU || !okV || !topo.Graph.HasNode(u) || !topo.Graph.HasNode(v) {
				continue
			}
			assert.True(t, topo.Graph.HasEdge(u, v), "coupler %v shifted by %v", e, s)
		}
	}
}

func TestZephyr_Disabled(t *testing.T) {
	p := topology.ZephyrParams{M: 2, Tile: 2}
	full, err := p.Build()
	require.NoError(t, err)

	q := p.Index(0, 1, 0, 0, 0)
	p.Disabled = []int{q}
	broken, err := p.Build()
	require.NoError(t, err)

	assert.False(t, broken.Graph.HasNode(q))
	assert.Equal(t, full.Graph.NumNodes()-1, broken.Graph.NumNodes())
	assert.Equal(t, full.Graph.NumEdges()-full.Graph.Degree(q), broken.Graph.NumEdges())
	assert.NotEqual(t, full.ID, broken.ID)
}
