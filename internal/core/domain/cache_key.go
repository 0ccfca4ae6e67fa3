package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

// CacheKey identifies the cached embeddings of an L×L lattice on one topology.
type CacheKey struct {
	TopologyID string
	L          int
}

// NewCacheKey derives the key for a topology and lattice size.
func NewCacheKey(topology *Topology, l int) CacheKey {
	return CacheKey{TopologyID: topology.ID, L: l}
}

// Filename returns the cache file name for the key.
func (k CacheKey) Filename() string {
	return fmt.Sprintf("%s__L%02d_square_embeddings_cached.txt", k.TopologyID, k.L)
}

// Validate rejects keys that cannot name a file inside the cache directory.
func (k CacheKey) Validate() error {
	if !validTopologyIDRegex.MatchString(k.TopologyID) {
		return zerr.With(ErrInvalidTopologyID, "topology_id", k.TopologyID)
	}
	if k.L < 1 {
		return zerr.With(ErrInvalidLatticeSize, "L", k.L)
	}
	return nil
}

// String implements fmt.Stringer.
func (k CacheKey) String() string {
	return fmt.Sprintf("%s/L%02d", k.TopologyID, k.L)
}
