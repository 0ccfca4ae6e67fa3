package app_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/anneal-lab/embedcache/internal/adapters/store"
	"github.com/anneal-lab/embedcache/internal/adapters/telemetry"
	"github.com/anneal-lab/embedcache/internal/adapters/telemetry/progrock"
	"github.com/anneal-lab/embedcache/internal/app"
	"github.com/anneal-lab/embedcache/internal/core/domain"
	"github.com/anneal-lab/embedcache/internal/core/ports"
	"github.com/anneal-lab/embedcache/internal/core/ports/mocks"
	"github.com/anneal-lab/embedcache/internal/engine/embedcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type harness struct {
	app        *app.App
	store      *store.Store
	topologies *mocks.MockTopologyProvider
	searcher   *mocks.MockEmbeddingSearcher
	topo       *domain.Topology
}

func newHarness(t *testing.T, cfg *domain.Config, tel ports.Telemetry) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	g := domain.NewGraph()
	for n := range 16 {
		g.AddEdge(n, (n+1)%16)
	}
	topo, err := domain.NewTopology("ring16", g, nil)
	require.NoError(t, err)

	h := &harness{
		store:      store.NewStore(filepath.Join(t.TempDir(), cfg.CacheDir)),
		topologies: mocks.NewMockTopologyProvider(ctrl),
		searcher:   mocks.NewMockEmbeddingSearcher(ctrl),
		topo:       topo,
	}
	cache := embedcache.New(h.store, h.searcher, mockLogger, tel, cfg.Search)
	h.app = app.New(cache, h.topologies, h.searcher, h.store, cfg, mockLogger, tel)
	return h
}

func TestApp_Embed(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Topology = "ring16.yaml"
	h := newHarness(t, cfg, telemetry.NewNoOp())
	ctx := context.Background()

	h.topologies.EXPECT().Load(gomock.Any(), "ring16.yaml").Return(h.topo, nil).Times(2)
	h.searcher.EXPECT().RasterBreadthLowerBound(gomock.Any(), h.topo).Return(1, nil)
	h.searcher.EXPECT().
		Search(gomock.Any(), gomock.Any(), h.topo, domain.SearchOptions{Timeout: 3 * time.Second, RasterBreadth: 2, MaxNumEmb: 1}).
		Return([]domain.Embedding{{0: 4, 1: 5, 2: 7, 3: 6}}, nil)

	res, err := h.app.Embed(ctx, app.EmbedOptions{L: 2, Timeout: 3 * time.Second, RasterBreadth: 2})
	require.NoError(t, err)
	assert.Equal(t, embedcache.SourceSearch, res.Source)
	assert.Equal(t, "ring16", res.Topology.ID)
	assert.Equal(t, domain.EmbeddingTable{{4, 5, 7, 6}}, res.Table)
	assert.Equal(t, h.store.Path(domain.CacheKey{TopologyID: "ring16", L: 2}), res.Path)

	res, err = h.app.Embed(ctx, app.EmbedOptions{L: 2})
	require.NoError(t, err)
	assert.Equal(t, embedcache.SourceCache, res.Source)
	assert.Equal(t, domain.EmbeddingTable{{4, 5, 7, 6}}, res.Table)
}

func TestApp_Embed_ExplicitTopologyWins(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Topology = "configured"
	h := newHarness(t, cfg, telemetry.NewNoOp())

	h.topologies.EXPECT().Load(gomock.Any(), "chimera:2").Return(h.topo, nil)
	h.searcher.EXPECT().RasterBreadthLowerBound(gomock.Any(), h.topo).Return(1, nil)
	h.searcher.EXPECT().Search(gomock.Any(), gomock.Any(), h.topo, cfg.Search).
		Return([]domain.Embedding{{0: 0}}, nil)

	res, err := h.app.Embed(context.Background(), app.EmbedOptions{L: 1, Topology: "chimera:2", NoCache: true})
	require.NoError(t, err)
	assert.Equal(t, domain.EmbeddingTable{{0}}, res.Table)
}

func TestApp_Embed_MaxNumEmbOverride(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Topology = "ring16.yaml"
	h := newHarness(t, cfg, telemetry.NewNoOp())

	want := cfg.Search
	want.MaxNumEmb = 0
	h.topologies.EXPECT().Load(gomock.Any(), "ring16.yaml").Return(h.topo, nil)
	h.searcher.EXPECT().RasterBreadthLowerBound(gomock.Any(), h.topo).Return(1, nil)
	h.searcher.EXPECT().Search(gomock.Any(), gomock.Any(), h.topo, want).
		Return([]domain.Embedding{{0: 0, 1: 1, 2: 3, 3: 2}, {0: 8, 1: 9, 2: 11, 3: 10}}, nil)

	unlimited := 0
	res, err := h.app.Embed(context.Background(), app.EmbedOptions{L: 2, NoCache: true, MaxNumEmb: &unlimited})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Table.Rows())
}

func TestApp_Embed_NoTopology(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Topology = ""
	h := newHarness(t, cfg, telemetry.NewNoOp())

	_, err := h.app.Embed(context.Background(), app.EmbedOptions{L: 2})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrNoTopologySpecified.Error())
}

func TestApp_Embed_TopologyError(t *testing.T) {
	h := newHarness(t, domain.DefaultConfig(), telemetry.NewNoOp())
	h.topologies.EXPECT().Load(gomock.Any(), "missing.yaml").Return(nil, domain.ErrTopologyReadFailed)

	_, err := h.app.Embed(context.Background(), app.EmbedOptions{L: 2, Topology: "missing.yaml"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrTopologyReadFailed.Error())
}

func TestApp_Bound(t *testing.T) {
	h := newHarness(t, domain.DefaultConfig(), telemetry.NewNoOp())
	h.topologies.EXPECT().Load(gomock.Any(), "ring16.yaml").Return(h.topo, nil)
	h.searcher.EXPECT().RasterBreadthLowerBound(gomock.Any(), h.topo).
		DoAndReturn(func(source *domain.Graph, _ *domain.Topology) (int, error) {
			assert.Equal(t, 9, source.NumNodes())
			return 2, nil
		})

	res, err := h.app.Bound(context.Background(), 3, "ring16.yaml")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Bound)
	assert.Equal(t, 3, res.L)
	assert.Equal(t, "ring16", res.Topology.ID)
}

func TestApp_Bound_InvalidL(t *testing.T) {
	h := newHarness(t, domain.DefaultConfig(), telemetry.NewNoOp())

	_, err := h.app.Bound(context.Background(), 0, "ring16.yaml")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidLatticeSize.Error())
}

func TestApp_Describe(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Topology = "ring16.yaml"
	h := newHarness(t, cfg, telemetry.NewNoOp())
	h.topologies.EXPECT().Load(gomock.Any(), "ring16.yaml").Return(h.topo, nil)

	topo, err := h.app.Describe(context.Background(), "")
	require.NoError(t, err)
	assert.Same(t, h.topo, topo)
}

func TestApp_Clean(t *testing.T) {
	h := newHarness(t, domain.DefaultConfig(), telemetry.NewNoOp())
	key := domain.CacheKey{TopologyID: "ring16", L: 2}
	require.NoError(t, h.store.Put(key, domain.EmbeddingTable{{1, 2, 3, 4}}))

	require.NoError(t, h.app.Clean(context.Background()))

	got, err := h.store.Get(key)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestApp_Report(t *testing.T) {
	cfg := domain.DefaultConfig()
	h := newHarness(t, cfg, progrock.New())
	h.topologies.EXPECT().Load(gomock.Any(), "ring16.yaml").Return(h.topo, nil)
	h.searcher.EXPECT().RasterBreadthLowerBound(gomock.Any(), h.topo).Return(1, nil)
	h.searcher.EXPECT().Search(gomock.Any(), gomock.Any(), h.topo, cfg.Search).
		Return([]domain.Embedding{{0: 0, 1: 1, 2: 3, 3: 2}}, nil)

	_, err := h.app.Embed(context.Background(), app.EmbedOptions{L: 2, Topology: "ring16.yaml"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, h.app.Report(&buf))
	assert.Contains(t, buf.String(), "load ring16/L02")
	assert.Contains(t, buf.String(), "search ring16/L02")
	assert.Contains(t, buf.String(), "persist ring16/L02")

	buf.Reset()
	quiet := newHarness(t, cfg, telemetry.NewNoOp())
	require.NoError(t, quiet.app.Report(&buf))
	assert.Empty(t, buf.String())
}
