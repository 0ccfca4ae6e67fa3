// Package topology resolves topology specs to processor graphs.
package topology

import (
	"context"
	"strings"

	"github.com/anneal-lab/embedcache/internal/core/domain"
	"github.com/anneal-lab/embedcache/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	chimeraPrefix = "chimera:"
	zephyrPrefix  = "zephyr:"
)

var _ ports.TopologyProvider = (*Provider)(nil)

// Provider implements ports.TopologyProvider for generated Chimera and Zephyr
// graphs and YAML topology files.
type Provider struct{}

// NewProvider creates a new Provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Load returns the topology described by spec.
func (p *Provider) Load(ctx context.Context, spec string) (*domain.Topology, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, domain.ErrNoTopologySpecified
	}

	if rest, ok := strings.CutPrefix(spec, chimeraPrefix); ok {
		params, err := ParseChimera(rest)
		if err != nil {
			return nil, zerr.With(err, "spec", spec)
		}
		return params.Build()
	}
	if rest, ok := strings.CutPrefix(spec, zephyrPrefix); ok {
		params, err := ParseZephyr(rest)
		if err != nil {
			return nil, zerr.With(err, "spec", spec)
		}
		return params.Build()
	}

	return LoadFile(spec)
}
