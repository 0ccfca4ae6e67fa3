package store

import (
	"context"

	"github.com/anneal-lab/embedcache/internal/adapters/config"
	"github.com/anneal-lab/embedcache/internal/core/domain"
	"github.com/anneal-lab/embedcache/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the embedding store Graft node.
const NodeID graft.ID = "adapter.embedding_store"

func init() {
	graft.Register(graft.Node[ports.EmbeddingStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.EmbeddingStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(cfg.CacheDir), nil
		},
	})
}
