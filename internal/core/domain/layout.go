package domain

import "time"

const (
	// CacheDirName is the default directory holding cached embedding tables.
	CacheDirName = "cached_embeddings"

	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "embedcache.yaml"

	// DefaultTopology is the generated chip used when neither a flag nor the
	// configuration file names one.
	DefaultTopology = "zephyr:6x4"

	// DefaultSearchTimeout is the time budget handed to the embedding search.
	DefaultSearchTimeout = 10 * time.Second

	// DefaultRasterBreadth is the raster breadth handed to the embedding search.
	DefaultRasterBreadth = 6

	// DefaultMaxNumEmb is the number of disjoint embeddings a search keeps.
	DefaultMaxNumEmb = 1

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
