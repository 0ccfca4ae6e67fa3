package topology_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/anneal-lab/embedcache/internal/adapters/topology"
	"github.com/anneal-lab/embedcache/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTopology(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chip.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestProvider_Chimera(t *testing.T) {
	topo, err := topology.NewProvider().Load(context.Background(), "chimera:4x4x4")
	require.NoError(t, err)
	assert.Equal(t, "chimera_m4_n4_t4", topo.ID)
	assert.Equal(t, 128, topo.Graph.NumNodes())
}

func TestProvider_Zephyr(t *testing.T) {
	topo, err := topology.NewProvider().Load(context.Background(), "zephyr:6")
	require.NoError(t, err)
	assert.Equal(t, "zephyr_m6_t4", topo.ID)
	assert.Equal(t, 1248, topo.Graph.NumNodes())

	_, err = topology.NewProvider().Load(context.Background(), "zephyr:6x4x4")
	assert.ErrorContains(t, err, domain.ErrInvalidTopologySpec.Error())
}

func TestProvider_File(t *testing.T) {
	path := writeTopology(t, `
id: Advantage_system4.1
tiling:
  rows: 1
  cols: 2
  nodes_per_tile: 2
nodes: [3]
edges:
  - [0, 1]
  - [1, 2]
`)

	topo, err := topology.NewProvider().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Advantage_system4.1", topo.ID)
	assert.Equal(t, []int{0, 1, 2, 3}, topo.Graph.Nodes())
	assert.Equal(t, 2, topo.Graph.NumEdges())
	assert.Equal(t, &domain.Tiling{Rows: 1, Cols: 2, NodesPerTile: 2}, topo.Tiling)
}

func TestProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		spec    func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "empty spec",
			spec:    func(*testing.T) string { return " " },
			wantErr: domain.ErrNoTopologySpecified,
		},
		{
			name:    "bad chimera",
			spec:    func(*testing.T) string { return "chimera:x" },
			wantErr: domain.ErrInvalidTopologySpec,
		},
		{
			name:    "missing file",
			spec:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
			wantErr: domain.ErrTopologyReadFailed,
		},
		{
			name:    "malformed yaml",
			spec:    func(t *testing.T) string { return writeTopology(t, "edges: [") },
			wantErr: domain.ErrTopologyParseFailed,
		},
		{
			name:    "self loop",
			spec:    func(t *testing.T) string { return writeTopology(t, "id: chip\nedges: [[1, 1]]\n") },
			wantErr: domain.ErrTopologyParseFailed,
		},
		{
			name:    "invalid id",
			spec:    func(t *testing.T) string { return writeTopology(t, "id: ../chip\nedges: [[0, 1]]\n") },
			wantErr: domain.ErrInvalidTopologyID,
		},
		{
			name: "node outside tiling",
			spec: func(t *testing.T) string {
				return writeTopology(t, "id: chip\ntiling: {rows: 1, cols: 1, nodes_per_tile: 1}\nedges: [[0, 1]]\n")
			},
			wantErr: domain.ErrInvalidTiling,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := topology.NewProvider().Load(context.Background(), tt.spec(t))
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}

func TestProvider_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := topology.NewProvider().Load(ctx, "chimera:2")
	require.ErrorIs(t, err, context.Canceled)
}
