// Package store implements the on-disk embedding cache, one text file per key.
package store

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/anneal-lab/embedcache/internal/core/domain"
	"github.com/anneal-lab/embedcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.EmbeddingStore = (*Store)(nil)

// Store implements ports.EmbeddingStore using a file-per-key strategy.
type Store struct {
	root string
}

// NewStore creates a new EmbeddingStore rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Root returns the cache directory.
func (s *Store) Root() string {
	return s.root
}

// Path returns the file the key is stored in.
func (s *Store) Path(key domain.CacheKey) string {
	return filepath.Join(s.root, key.Filename())
}

// Get retrieves the embedding table for a key.
func (s *Store) Get(key domain.CacheKey) (domain.EmbeddingTable, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	path := s.Path(key)
	//nolint:gosec // Path is built from the cache root and a validated key
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", path)
	}

	table, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCorrupt.Error()), "path", path)
	}

	return table, nil
}

// Put writes the embedding table, overwriting any existing entry.
func (s *Store) Put(key domain.CacheKey, table domain.EmbeddingTable) error {
	if err := key.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.root, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", s.root)
	}

	path := s.Path(key)
	//nolint:gosec // Path is built from the cache root and a validated key
	if err := os.WriteFile(path, encode(table), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}

	return nil
}

// Remove deletes the cache directory and everything in it.
func (s *Store) Remove() error {
	if err := os.RemoveAll(s.root); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreRemoveFailed.Error()), "path", s.root)
	}
	return nil
}
