// Package app implements the application layer for embedcache.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/anneal-lab/embedcache/internal/core/domain"
	"github.com/anneal-lab/embedcache/internal/core/ports"
	"github.com/anneal-lab/embedcache/internal/engine/embedcache"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	cache      *embedcache.Cache
	topologies ports.TopologyProvider
	searcher   ports.EmbeddingSearcher
	store      ports.EmbeddingStore
	config     *domain.Config
	logger     ports.Logger
	telemetry  ports.Telemetry
}

// New creates a new App instance.
func New(
	cache *embedcache.Cache,
	topologies ports.TopologyProvider,
	searcher ports.EmbeddingSearcher,
	store ports.EmbeddingStore,
	cfg *domain.Config,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *App {
	return &App{
		cache:      cache,
		topologies: topologies,
		searcher:   searcher,
		store:      store,
		config:     cfg,
		logger:     logger,
		telemetry:  telemetry,
	}
}

// EmbedOptions configures a single Embed call. Zero values fall back to the
// configuration.
type EmbedOptions struct {
	L             int
	Topology      string
	NoCache       bool
	Timeout       time.Duration
	RasterBreadth int
	// MaxNumEmb overrides the configured embedding cap when set. Zero keeps
	// every disjoint embedding the search finds.
	MaxNumEmb *int
}

// EmbedResult is the resolved embedding table and where it came from.
type EmbedResult struct {
	*embedcache.Resolution
	Topology *domain.Topology
}

// Embed resolves the embeddings of an L×L lattice into the selected topology.
func (a *App) Embed(ctx context.Context, opts EmbedOptions) (*EmbedResult, error) {
	topo, err := a.loadTopology(ctx, opts.Topology)
	if err != nil {
		return nil, err
	}

	var resolveOpts []embedcache.ResolveOption
	if opts.Timeout > 0 {
		resolveOpts = append(resolveOpts, embedcache.WithTimeout(opts.Timeout))
	}
	if opts.RasterBreadth > 0 {
		resolveOpts = append(resolveOpts, embedcache.WithRasterBreadth(opts.RasterBreadth))
	}
	if opts.MaxNumEmb != nil {
		resolveOpts = append(resolveOpts, embedcache.WithMaxEmbeddings(*opts.MaxNumEmb))
	}

	res, err := a.cache.ResolveDetailed(ctx, topo, opts.L, !opts.NoCache, resolveOpts...)
	if err != nil {
		return nil, err
	}
	return &EmbedResult{Resolution: res, Topology: topo}, nil
}

// BoundResult reports the smallest raster breadth that could hold the lattice.
type BoundResult struct {
	Topology *domain.Topology
	L        int
	Bound    int
}

// Bound computes the raster breadth lower bound for an L×L lattice.
func (a *App) Bound(ctx context.Context, l int, spec string) (*BoundResult, error) {
	graph, err := domain.NewSquareLattice(l)
	if err != nil {
		return nil, err
	}

	topo, err := a.loadTopology(ctx, spec)
	if err != nil {
		return nil, err
	}

	bound, err := a.searcher.RasterBreadthLowerBound(graph.Graph(), topo)
	if err != nil {
		return nil, zerr.With(err, "L", l)
	}
	return &BoundResult{Topology: topo, L: l, Bound: bound}, nil
}

// Describe loads the topology named by spec, or the configured one.
func (a *App) Describe(ctx context.Context, spec string) (*domain.Topology, error) {
	return a.loadTopology(ctx, spec)
}

// Clean removes every cached embedding table.
func (a *App) Clean(_ context.Context) error {
	if err := a.store.Remove(); err != nil {
		return err
	}
	a.logger.Info("removed cached embeddings")
	return nil
}

// Report writes the recorded progress of this run to w, when the telemetry
// backend keeps one.
func (a *App) Report(w io.Writer) error {
	r, ok := a.telemetry.(interface{ Report(io.Writer) error })
	if !ok {
		return nil
	}
	return r.Report(w)
}

func (a *App) loadTopology(ctx context.Context, spec string) (*domain.Topology, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" && a.config != nil {
		spec = a.config.Topology
	}
	if spec == "" {
		return nil, domain.ErrNoTopologySpecified
	}

	topo, err := a.topologies.Load(ctx, spec)
	if err != nil {
		return nil, err
	}
	a.logger.Info(fmt.Sprintf("using topology %s (%d qubits, %d couplers)",
		topo.ID, topo.Graph.NumNodes(), topo.Graph.NumEdges()))
	return topo, nil
}
