package app

import (
	"context"

	"github.com/anneal-lab/embedcache/internal/adapters/config"              //nolint:depguard // Wired in app layer
	"github.com/anneal-lab/embedcache/internal/adapters/logger"              //nolint:depguard // Wired in app layer
	"github.com/anneal-lab/embedcache/internal/adapters/raster"              //nolint:depguard // Wired in app layer
	"github.com/anneal-lab/embedcache/internal/adapters/store"               //nolint:depguard // Wired in app layer
	"github.com/anneal-lab/embedcache/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"github.com/anneal-lab/embedcache/internal/adapters/topology"            //nolint:depguard // Wired in app layer
	"github.com/anneal-lab/embedcache/internal/core/domain"
	"github.com/anneal-lab/embedcache/internal/core/ports"
	"github.com/anneal-lab/embedcache/internal/engine/embedcache"
	"github.com/grindlemire/graft"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			embedcache.NodeID,
			topology.NodeID,
			raster.NodeID,
			store.NodeID,
			config.ConfigNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cache, err := graft.Dep[*embedcache.Cache](ctx)
	if err != nil {
		return nil, err
	}

	topologies, err := graft.Dep[ports.TopologyProvider](ctx)
	if err != nil {
		return nil, err
	}

	searcher, err := graft.Dep[ports.EmbeddingSearcher](ctx)
	if err != nil {
		return nil, err
	}

	embeddingStore, err := graft.Dep[ports.EmbeddingStore](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[*domain.Config](ctx)
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

	return New(cache, topologies, searcher, embeddingStore, cfg, log, telemetry), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
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

	return NewComponents(app, log, telemetry), nil
}
