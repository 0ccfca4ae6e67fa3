package raster

import (
	"context"

	"github.com/anneal-lab/embedcache/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the raster searcher Graft node.
const NodeID graft.ID = "adapter.raster_searcher"

func init() {
	graft.Register(graft.Node[ports.EmbeddingSearcher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EmbeddingSearcher, error) {
			return NewSearcher(), nil
		},
	})
}
