package domain_test

import (
	"testing"

	"github.com/anneal-lab/embedcache/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCacheKey_Filename(t *testing.T) {
	tests := []struct {
		key  domain.CacheKey
		want string
	}{
		{domain.CacheKey{TopologyID: "Advantage_system4.1", L: 12}, "Advantage_system4.1__L12_square_embeddings_cached.txt"},
		{domain.CacheKey{TopologyID: "chip", L: 4}, "chip__L04_square_embeddings_cached.txt"},
		{domain.CacheKey{TopologyID: "chip", L: 128}, "chip__L128_square_embeddings_cached.txt"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.key.Filename())
	}
}

func TestCacheKey_Isolation(t *testing.T) {
	keys := []domain.CacheKey{
		{TopologyID: "A", L: 4},
		{TopologyID: "B", L: 4},
		{TopologyID: "A", L: 5},
		{TopologyID: "A", L: 45},
		{TopologyID: "A__L4", L: 5},
	}

	seen := make(map[string]domain.CacheKey)
	for _, k := range keys {
		name := k.Filename()
		if prev, ok := seen[name]; ok {
			t.Fatalf("keys %v and %v share file %q", prev, k, name)
		}
		seen[name] = k
	}
}

func TestCacheKey_Validate(t *testing.T) {
	tests := []struct {
		name    string
		key     domain.CacheKey
		wantErr error
	}{
		{name: "valid", key: domain.CacheKey{TopologyID: "zephyr_m6_t4", L: 12}},
		{name: "parent directory", key: domain.CacheKey{TopologyID: "../escaped", L: 2}, wantErr: domain.ErrInvalidTopologyID},
		{name: "absolute path", key: domain.CacheKey{TopologyID: "/tmp/chip", L: 2}, wantErr: domain.ErrInvalidTopologyID},
		{name: "empty id", key: domain.CacheKey{L: 2}, wantErr: domain.ErrInvalidTopologyID},
		{name: "zero size", key: domain.CacheKey{TopologyID: "chip"}, wantErr: domain.ErrInvalidLatticeSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.key.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}
