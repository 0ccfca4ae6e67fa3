package embedcache

import (
	"context"

	"github.com/anneal-lab/embedcache/internal/adapters/config"              //nolint:depguard // Wired in engine wiring
	"github.com/anneal-lab/embedcache/internal/adapters/logger"              //nolint:depguard // Wired in engine wiring
	"github.com/anneal-lab/embedcache/internal/adapters/raster"              //nolint:depguard // Wired in engine wiring
	"github.com/anneal-lab/embedcache/internal/adapters/store"               //nolint:depguard // Wired in engine wiring
	"github.com/anneal-lab/embedcache/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"github.com/anneal-lab/embedcache/internal/core/domain"
	"github.com/anneal-lab/embedcache/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the embedding cache Graft node.
const NodeID graft.ID = "engine.embedcache"

func init() {
	graft.Register(graft.Node[*Cache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			store.NodeID,
			raster.NodeID,
			logger.NodeID,
			progrock.NodeID,
			config.ConfigNodeID,
		},
		Run: func(ctx context.Context) (*Cache, error) {
			embeddingStore, err := graft.Dep[ports.EmbeddingStore](ctx)
			if err != nil {
				return nil, err
			}

			searcher, err := graft.Dep[ports.EmbeddingSearcher](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			return New(embeddingStore, searcher, log, telemetry, cfg.Search), nil
		},
	})
}
