package ports

import (
	"context"

	"github.com/anneal-lab/embedcache/internal/core/domain"
)

// TopologyProvider resolves a topology spec to the processor graph it names.
//
//go:generate go run go.uber.org/mock/mockgen -source=topology.go -destination=mocks/mock_topology.go -package=mocks
type TopologyProvider interface {
	// Load returns the topology described by spec, either a generator such as
	// "zephyr:6x4" or "chimera:16x16x4", or the path of a topology file.
	Load(ctx context.Context, spec string) (*domain.Topology, error)
}
