// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/anneal-lab/embedcache/internal/core/domain"
)

// EmbeddingSearcher finds embeddings of a logical graph in a target topology.
//
//go:generate go run go.uber.org/mock/mockgen -source=searcher.go -destination=mocks/mock_searcher.go -package=mocks
type EmbeddingSearcher interface {
	// Search returns one or more embeddings of source in target. It gives up
	// once opts.Timeout has elapsed and returns an error if nothing was found.
	Search(ctx context.Context, source *domain.Graph, target *domain.Topology, opts domain.SearchOptions) ([]domain.Embedding, error)

	// RasterBreadthLowerBound returns the smallest raster breadth that could
	// possibly hold source.
	RasterBreadthLowerBound(source *domain.Graph, target *domain.Topology) (int, error)
}
