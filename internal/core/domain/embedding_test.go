package domain_test

import (
	"testing"
	"time"

	"github.com/anneal-lab/embedcache/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbeddingTable_ColumnOrder(t *testing.T) {
	embeddings := []domain.Embedding{
		{0: 10, 1: 11, 2: 12, 3: 13},
		{3: 23, 2: 22, 1: 21, 0: 20},
	}

	table, err := domain.NewEmbeddingTable(embeddings, []int{0, 1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, domain.EmbeddingTable{{10, 11, 12, 13}, {20, 21, 22, 23}}, table)
	assert.Equal(t, 2, table.Rows())
	assert.Equal(t, 4, table.Cols())

	assert.Equal(t, embeddings[1], table.Embedding(1, []int{0, 1, 2, 3}))
}

func TestNewEmbeddingTable_Incomplete(t *testing.T) {
	_, err := domain.NewEmbeddingTable([]domain.Embedding{{0: 1}}, []int{0, 1})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrIncompleteEmbedding.Error())
}

func TestEmbeddingTable_Equal(t *testing.T) {
	a := domain.EmbeddingTable{{1, 2}, {3, 4}}
	assert.True(t, a.Equal(domain.EmbeddingTable{{1, 2}, {3, 4}}))
	assert.False(t, a.Equal(domain.EmbeddingTable{{1, 2}}))
	assert.False(t, a.Equal(domain.EmbeddingTable{{1, 2}, {4, 3}}))
	assert.Equal(t, 0, domain.EmbeddingTable{}.Cols())
}

func TestSearchOptions_Validate(t *testing.T) {
	require.NoError(t, domain.DefaultSearchOptions().Validate())

	err := domain.SearchOptions{Timeout: 0, RasterBreadth: 2}.Validate()
	assert.ErrorContains(t, err, domain.ErrInvalidSearchOptions.Error())

	err = domain.SearchOptions{Timeout: time.Second, RasterBreadth: 0}.Validate()
	assert.ErrorContains(t, err, domain.ErrInvalidSearchOptions.Error())

	err = domain.SearchOptions{Timeout: time.Second, RasterBreadth: 1, MaxNumEmb: -1}.Validate()
	assert.ErrorContains(t, err, domain.ErrInvalidSearchOptions.Error())

	require.NoError(t, domain.SearchOptions{Timeout: time.Second, RasterBreadth: 1, MaxNumEmb: 0}.Validate())
	assert.Equal(t, 1, domain.DefaultSearchOptions().MaxNumEmb)
}
