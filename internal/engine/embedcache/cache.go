// Package embedcache resolves lattice embeddings, reusing cached tables when
// they are present and valid and searching for new ones otherwise.
package embedcache

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/anneal-lab/embedcache/internal/core/domain"
	"github.com/anneal-lab/embedcache/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Source tells where a resolved table came from.
type Source string

const (
	// SourceCache indicates the table was read from the store.
	SourceCache Source = "cache"
	// SourceSearch indicates the table was computed and then persisted.
	SourceSearch Source = "search"
)

// Resolution is the outcome of a resolve call.
type Resolution struct {
	Table   domain.EmbeddingTable
	Graph   *domain.LogicalGraph
	Key     domain.CacheKey
	Path    string
	Source  Source
	Elapsed time.Duration
}

// ResolveOption overrides the search options of a single call.
type ResolveOption func(*domain.SearchOptions)

// WithTimeout sets the search time budget.
func WithTimeout(d time.Duration) ResolveOption {
	return func(o *domain.SearchOptions) {
		o.Timeout = d
	}
}

// WithRasterBreadth sets the raster breadth handed to the search.
func WithRasterBreadth(b int) ResolveOption {
	return func(o *domain.SearchOptions) {
		o.RasterBreadth = b
	}
}

// WithMaxEmbeddings caps the number of disjoint embeddings kept. Zero keeps
// every one the search finds.
func WithMaxEmbeddings(n int) ResolveOption {
	return func(o *domain.SearchOptions) {
		o.MaxNumEmb = n
	}
}

// Cache resolves embeddings of square lattices into processor topologies.
type Cache struct {
	store     ports.EmbeddingStore
	searcher  ports.EmbeddingSearcher
	logger    ports.Logger
	telemetry ports.Telemetry
	opts      domain.SearchOptions

	requestGroup singleflight.Group
	flights      flights
}

// New creates a Cache. opts is the search budget used unless a call overrides it.
func New(
	store ports.EmbeddingStore,
	searcher ports.EmbeddingSearcher,
	logger ports.Logger,
	telemetry ports.Telemetry,
	opts domain.SearchOptions,
) *Cache {
	return &Cache{
		store:     store,
		searcher:  searcher,
		logger:    logger,
		telemetry: telemetry,
		opts:      opts,
	}
}

// Resolve returns the embedding table for an L×L lattice on topology together
// with the freshly built lattice. With useCache false the store is never read,
// but the computed table is still written.
func (c *Cache) Resolve(
	ctx context.Context,
	topology *domain.Topology,
	l int,
	useCache bool,
	opts ...ResolveOption,
) (domain.EmbeddingTable, *domain.LogicalGraph, error) {
	res, err := c.ResolveDetailed(ctx, topology, l, useCache, opts...)
	if err != nil {
		return nil, nil, err
	}
	return res.Table, res.Graph, nil
}

// ResolveDetailed is Resolve, additionally reporting the key, cache path and
// which path produced the table.
func (c *Cache) ResolveDetailed(
	ctx context.Context,
	topology *domain.Topology,
	l int,
	useCache bool,
	opts ...ResolveOption,
) (*Resolution, error) {
	graph, err := domain.NewSquareLattice(l)
	if err != nil {
		return nil, err
	}

	searchOpts := c.opts
	for _, opt := range opts {
		opt(&searchOpts)
	}
	if err := searchOpts.Validate(); err != nil {
		return nil, err
	}

	if topology == nil || topology.Graph == nil {
		return nil, domain.ErrMissingTopology
	}
	key := domain.NewCacheKey(topology, l)
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Concurrent calls for the same key and mode share one load or search. The
	// shared work is canceled only once every caller sharing it has gone.
	flightKey := fmt.Sprintf("%s|%s|%t|%d|%s|%d",
		key, topology.Fingerprint(), useCache, searchOpts.RasterBreadth, searchOpts.Timeout, searchOpts.MaxNumEmb)
	f := c.flights.join(ctx, flightKey)
	defer c.flights.leave(flightKey, f, &c.requestGroup)

	ch := c.requestGroup.DoChan(flightKey, func() (any, error) {
		return c.resolve(f.ctx, topology, graph, key, useCache, searchOpts)
	})
	var result singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result = <-ch:
	}
	if result.Err != nil {
		return nil, result.Err
	}

	shared := result.Val.(*Resolution)
	return &Resolution{
		Table:   cloneTable(shared.Table),
		Graph:   graph,
		Key:     shared.Key,
		Path:    shared.Path,
		Source:  shared.Source,
		Elapsed: shared.Elapsed,
	}, nil
}

func (c *Cache) resolve(
	ctx context.Context,
	topology *domain.Topology,
	graph *domain.LogicalGraph,
	key domain.CacheKey,
	useCache bool,
	opts domain.SearchOptions,
) (*Resolution, error) {
	res := &Resolution{Key: key, Path: c.store.Path(key)}

	if useCache {
		if table, ok := c.load(ctx, key, graph); ok {
			res.Table = table
			res.Source = SourceCache
			return res, nil
		}
	}

	table, elapsed, err := c.search(ctx, topology, graph, key, opts)
	if err != nil {
		return nil, err
	}

	if err := c.persist(ctx, key, table); err != nil {
		return nil, err
	}

	res.Table = table
	res.Source = SourceSearch
	res.Elapsed = elapsed
	return res, nil
}

// load reads the cached table. Missing and unusable entries are reported and
// swallowed so the caller falls back to a search.
func (c *Cache) load(ctx context.Context, key domain.CacheKey, graph *domain.LogicalGraph) (domain.EmbeddingTable, bool) {
	_, vertex := c.telemetry.Record(ctx, "load "+key.String())
	defer vertex.Complete(nil)

	table, err := c.store.Get(key)
	if err == nil && table == nil {
		msg := fmt.Sprintf("no cached embeddings for %s: %v", key, domain.ErrCacheMiss)
		c.logger.Info(msg)
		vertex.Log(domain.LogLevelInfo, msg)
		return nil, false
	}
	if err == nil && table.Cols() != len(graph.Nodes()) {
		err = zerr.With(zerr.With(domain.ErrCacheCorrupt, "columns", table.Cols()), "nodes", len(graph.Nodes()))
	}
	if err != nil {
		msg := fmt.Sprintf("ignoring cached embeddings for %s: %v", key, err)
		c.logger.Warn(msg)
		vertex.Log(domain.LogLevelWarn, msg)
		return nil, false
	}

	vertex.Cached()
	return table, true
}

func (c *Cache) search(
	ctx context.Context,
	topology *domain.Topology,
	graph *domain.LogicalGraph,
	key domain.CacheKey,
	opts domain.SearchOptions,
) (domain.EmbeddingTable, time.Duration, error) {
	ctx, vertex := c.telemetry.Record(ctx, "search "+key.String())

	source := graph.Graph()
	bound, err := c.searcher.RasterBreadthLowerBound(source, topology)
	switch {
	case err != nil:
		c.logger.Warn(fmt.Sprintf("no raster breadth lower bound for %s: %v", key, err))
	case opts.RasterBreadth < bound:
		c.logger.Warn(fmt.Sprintf("raster breadth %d is below the lower bound %d for %s", opts.RasterBreadth, bound, key))
	default:
		msg := fmt.Sprintf("raster breadth lower bound for %s: %d", key, bound)
		c.logger.Info(msg)
		vertex.Log(domain.LogLevelInfo, msg)
	}

	start := time.Now()
	embeddings, err := c.searcher.Search(ctx, source, topology, opts)
	elapsed := time.Since(start)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrEmbeddingSearchFailed.Error()), "key", key.String())
		vertex.Complete(err)
		return nil, elapsed, err
	}

	table, err := domain.NewEmbeddingTable(embeddings, graph.Nodes())
	if err == nil && table.Rows() == 0 {
		err = domain.ErrNoEmbeddingFound
	}
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrEmbeddingSearchFailed.Error()), "key", key.String())
		vertex.Complete(err)
		return nil, elapsed, err
	}

	msg := fmt.Sprintf("found %d embeddings for %s in %s", table.Rows(), key, elapsed.Round(time.Millisecond))
	c.logger.Info(msg)
	vertex.Log(domain.LogLevelInfo, msg)
	vertex.Complete(nil)
	return table, elapsed, nil
}

func (c *Cache) persist(ctx context.Context, key domain.CacheKey, table domain.EmbeddingTable) error {
	_, vertex := c.telemetry.Record(ctx, "persist "+key.String())
	err := c.store.Put(key, table)
	vertex.Complete(err)
	return err
}

func cloneTable(t domain.EmbeddingTable) domain.EmbeddingTable {
	out := make(domain.EmbeddingTable, len(t))
	for i, row := range t {
		out[i] = slices.Clone(row)
	}
	return out
}
