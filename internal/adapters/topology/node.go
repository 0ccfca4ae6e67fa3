package topology

import (
	"context"

	"github.com/anneal-lab/embedcache/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the topology provider Graft node.
const NodeID graft.ID = "adapter.topology"

func init() {
	graft.Register(graft.Node[ports.TopologyProvider]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TopologyProvider, error) {
			return NewProvider(), nil
		},
	})
}
