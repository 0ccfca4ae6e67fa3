// Package raster implements a raster embedding search: a subgraph embedding is
// found in one window of tiles and then rastered across the whole topology.
package raster

import (
	"context"
	"runtime"

	"github.com/anneal-lab/embedcache/internal/core/domain"
	"github.com/anneal-lab/embedcache/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.EmbeddingSearcher = (*Searcher)(nil)

// Searcher implements ports.EmbeddingSearcher.
type Searcher struct {
	workers int
}

// NewSearcher creates a Searcher that searches up to runtime.NumCPU() windows
// at a time.
func NewSearcher() *Searcher {
	return &Searcher{workers: runtime.NumCPU()}
}

// RasterBreadthLowerBound returns the smallest window breadth with enough
// nodes to hold source.
func (s *Searcher) RasterBreadthLowerBound(source *domain.Graph, target *domain.Topology) (int, error) {
	n := source.NumNodes()
	if target.Tiling == nil {
		if target.Graph.NumNodes() >= n {
			return 1, nil
		}
		return 0, tooLarge(source, target)
	}

	t := target.Tiling
	for b := 1; b <= min(t.Rows, t.Cols); b++ {
		if b*b*t.NodesPerTile >= n {
			return b, nil
		}
	}
	return 0, tooLarge(source, target)
}

func tooLarge(source *domain.Graph, target *domain.Topology) error {
	return zerr.With(zerr.With(domain.ErrSourceTooLarge, "source_nodes", source.NumNodes()), "topology_id", target.ID)
}

// Search returns pairwise disjoint embeddings of source found in target within
// opts.Timeout, ordered by the window they were found in and capped by
// opts.MaxNumEmb. Embeddings found before the timeout are returned; finding
// none is an error.
func (s *Searcher) Search(
	ctx context.Context,
	source *domain.Graph,
	target *domain.Topology,
	opts domain.SearchOptions,
) ([]domain.Embedding, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	searchCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	var found []domain.Embedding
	if target.Tiling == nil {
		emb, err := match(searchCtx, source, target.Graph)
		if err == nil && emb != nil {
			found = append(found, emb)
		}
	} else {
		found = s.raster(searchCtx, source, target, opts)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(found) == 0 {
		err := zerr.With(domain.ErrNoEmbeddingFound, "topology_id", target.ID)
		if searchCtx.Err() != nil {
			err = zerr.With(err, "timeout", opts.Timeout.String())
		}
		return nil, err
	}
	return found, nil
}

type origin struct {
	row, col int
}

// raster finds a prototype embedding in the first window that holds one, then
// moves it to every later window, searching a window directly where the
// translated copy does not fit. Embeddings are kept in window order as long as
// they share no node with the ones already kept.
func (s *Searcher) raster(ctx context.Context, source *domain.Graph, target *domain.Topology, opts domain.SearchOptions) []domain.Embedding {
	t := target.Tiling
	b := min(opts.RasterBreadth, t.Rows, t.Cols)

	var origins []origin
	for r := 0; r+b <= t.Rows; r++ {
		for c := 0; c+b <= t.Cols; c++ {
			origins = append(origins, origin{row: r, col: c})
		}
	}

	// Windows before the prototype's gave up nothing, so rastering starts at
	// the prototype.
	first := -1
	var proto domain.Embedding
	for i, o := range origins {
		emb, err := match(ctx, source, window(target, o, b, nil))
		if err != nil {
			return nil
		}
		if emb != nil {
			first, proto = i, emb
			break
		}
	}
	if proto == nil {
		return nil
	}
	if opts.MaxNumEmb == 1 {
		return []domain.Embedding{proto}
	}

	candidates := make([]domain.Embedding, len(origins))
	candidates[first] = proto

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := first + 1; i < len(origins); i++ {
		o := origins[i]
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			dr, dc := o.row-origins[first].row, o.col-origins[first].col
			if emb, ok := translate(proto, source, target, dr, dc); ok {
				candidates[i] = emb
				return nil
			}
			// A timeout here only loses this window.
			if emb, err := match(gctx, source, window(target, o, b, nil)); err == nil {
				candidates[i] = emb
			}
			return nil
		})
	}
	_ = g.Wait()

	return disjoint(ctx, source, target, origins[first:], candidates[first:], b, opts.MaxNumEmb)
}

// disjoint keeps candidates in order while they avoid every node already
// taken. A window whose candidate collides is searched again without the taken
// nodes. Windows without a candidate are skipped.
func disjoint(
	ctx context.Context,
	source *domain.Graph,
	target *domain.Topology,
	origins []origin,
	candidates []domain.Embedding,
	b int,
	limit int,
) []domain.Embedding {
	taken := make(map[int]bool)
	var out []domain.Embedding
	for i, emb := range candidates {
		if limit > 0 && len(out) >= limit {
			break
		}
		if emb == nil {
			continue
		}
		if overlaps(emb, taken) {
			var err error
			emb, err = match(ctx, source, window(target, origins[i], b, taken))
			if err != nil {
				break
			}
			if emb == nil {
				continue
			}
		}
		for _, q := range emb {
			taken[q] = true
		}
		out = append(out, emb)
	}
	return out
}

func overlaps(emb domain.Embedding, taken map[int]bool) bool {
	for _, q := range emb {
		if taken[q] {
			return true
		}
	}
	return false
}

// window returns the subgraph of target covered by the b×b tiles at o, leaving
// out the nodes in exclude.
func window(target *domain.Topology, o origin, b int, exclude map[int]bool) *domain.Graph {
	return target.Graph.Subgraph(func(n int) bool {
		r, c := target.Tiling.Tile(n)
		return !exclude[n] && r >= o.row && r < o.row+b && c >= o.col && c < o.col+b
	})
}

// translate shifts every image of proto by (dr, dc) tiles and reports whether
// the result is still an embedding in target.
func translate(proto domain.Embedding, source *domain.Graph, target *domain.Topology, dr, dc int) (domain.Embedding, bool) {
	out := make(domain.Embedding, len(proto))
	for v, q := range proto {
		n, ok := target.Tiling.Translate(q, dr, dc)
		if !ok || !target.Graph.HasNode(n) {
			return nil, false
		}
		out[v] = n
	}
	for e := range source.Edges() {
		if !target.Graph.HasEdge(out[e.U], out[e.V]) {
			return nil, false
		}
	}
	return out, true
}
