package ports

import "github.com/anneal-lab/embedcache/internal/core/domain"

// EmbeddingStore persists embedding tables keyed by topology and lattice size.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type EmbeddingStore interface {
	// Get retrieves the embedding table for a key.
	// Returns nil, nil if no entry exists. An entry that cannot be read or
	// parsed is reported as an error.
	Get(key domain.CacheKey) (domain.EmbeddingTable, error)

	// Put writes the embedding table for a key, creating the cache directory
	// and overwriting any existing entry.
	Put(key domain.CacheKey, table domain.EmbeddingTable) error

	// Path returns the file the key is stored in.
	Path(key domain.CacheKey) string

	// Remove deletes every cached entry.
	Remove() error
}
