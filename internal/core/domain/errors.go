package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidLatticeSize is returned when a lattice is requested with L < 1.
	ErrInvalidLatticeSize = zerr.New("lattice size must be a positive integer")

	// ErrInvalidTopologyID is returned when a topology identifier cannot be used as a cache key.
	ErrInvalidTopologyID = zerr.New("topology id can only contain alphanumeric characters, dots, hyphens and underscores")

	// ErrMissingTopology is returned when an operation is handed a nil topology.
	ErrMissingTopology = zerr.New("topology is required")

	// ErrInvalidTopologySpec is returned when a topology spec string cannot be interpreted.
	ErrInvalidTopologySpec = zerr.New("invalid topology spec, expected zephyr:MxT, chimera:MxNxT or a topology file")

	// ErrTopologyReadFailed is returned when a topology file cannot be read.
	ErrTopologyReadFailed = zerr.New("failed to read topology file")

	// ErrTopologyParseFailed is returned when a topology file cannot be parsed.
	ErrTopologyParseFailed = zerr.New("failed to parse topology file")

	// ErrInvalidTiling is returned when a tiling does not describe the topology's nodes.
	ErrInvalidTiling = zerr.New("invalid tiling")

	// ErrNoTopologySpecified is returned when neither a flag nor the config names a topology.
	ErrNoTopologySpecified = zerr.New("no topology specified")

	// ErrIncompleteEmbedding is returned when an embedding does not map every logical node.
	ErrIncompleteEmbedding = zerr.New("embedding does not cover every logical node")

	// ErrCacheMiss is returned when no cache entry exists for a key.
	ErrCacheMiss = zerr.New("cache miss")

	// ErrCacheCorrupt is returned when a cache entry exists but is not a valid embedding table.
	ErrCacheCorrupt = zerr.New("cache entry is not a valid embedding table")

	// ErrStoreReadFailed is returned when a cache entry cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read cached embeddings")

	// ErrStoreCreateFailed is returned when the cache directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create embedding cache directory")

	// ErrStoreWriteFailed is returned when a cache entry cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write cached embeddings")

	// ErrStoreRemoveFailed is returned when the cache directory cannot be removed.
	ErrStoreRemoveFailed = zerr.New("failed to remove embedding cache directory")

	// ErrSourceTooLarge is returned when the logical graph cannot fit in the target topology.
	ErrSourceTooLarge = zerr.New("logical graph is larger than the target topology")

	// ErrNoEmbeddingFound is returned when the search finishes without a single embedding.
	ErrNoEmbeddingFound = zerr.New("no embedding found")

	// ErrEmbeddingSearchFailed is returned when the fallback embedding search fails.
	ErrEmbeddingSearchFailed = zerr.New("embedding search failed")

	// ErrInvalidSearchOptions is returned when a search is requested with a non-positive budget or breadth.
	ErrInvalidSearchOptions = zerr.New("invalid search options")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when the config file holds values out of range.
	ErrInvalidConfig = zerr.New("invalid configuration")
)
