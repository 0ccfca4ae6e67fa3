package domain

import (
	"slices"
	"time"

	"go.trai.ch/zerr"
)

// Embedding maps each logical node to the physical node it is placed on.
type Embedding map[int]int

// EmbeddingTable holds one embedding per row. Column j is the physical node of
// the j-th logical node in sorted node order.
type EmbeddingTable [][]int

// NewEmbeddingTable converts embeddings to rows using order as the column order.
func NewEmbeddingTable(embeddings []Embedding, order []int) (EmbeddingTable, error) {
	table := make(EmbeddingTable, 0, len(embeddings))
	for i, emb := range embeddings {
		row := make([]int, len(order))
		for j, node := range order {
			q, ok := emb[node]
			if !ok {
				return nil, zerr.With(zerr.With(ErrIncompleteEmbedding, "embedding", i), "node", node)
			}
			row[j] = q
		}
		table = append(table, row)
	}
	return table, nil
}

// Rows returns the number of embeddings in the table.
func (t EmbeddingTable) Rows() int {
	return len(t)
}

// Cols returns the number of logical nodes per embedding.
func (t EmbeddingTable) Cols() int {
	if len(t) == 0 {
		return 0
	}
	return len(t[0])
}

// Embedding returns row i as a mapping keyed by the nodes of order.
func (t EmbeddingTable) Embedding(i int, order []int) Embedding {
	emb := make(Embedding, len(order))
	for j, node := range order {
		emb[node] = t[i][j]
	}
	return emb
}

// Equal reports whether both tables hold the same rows.
func (t EmbeddingTable) Equal(other EmbeddingTable) bool {
	return slices.EqualFunc(t, other, slices.Equal[[]int])
}

// SearchOptions bounds a single embedding search. Embeddings returned by one
// search never share a physical node; MaxNumEmb caps how many are kept, and
// zero keeps every one found.
type SearchOptions struct {
	Timeout       time.Duration `yaml:"timeout"`
	RasterBreadth int           `yaml:"raster_breadth"`
	MaxNumEmb     int           `yaml:"max_num_emb"`
}

// DefaultSearchOptions returns the search budget used when nothing else is configured.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Timeout:       DefaultSearchTimeout,
		RasterBreadth: DefaultRasterBreadth,
		MaxNumEmb:     DefaultMaxNumEmb,
	}
}

// Validate checks that the budget, breadth and cap are usable.
func (o SearchOptions) Validate() error {
	if o.Timeout <= 0 {
		return zerr.With(ErrInvalidSearchOptions, "timeout", o.Timeout.String())
	}
	if o.RasterBreadth < 1 {
		return zerr.With(ErrInvalidSearchOptions, "raster_breadth", o.RasterBreadth)
	}
	if o.MaxNumEmb < 0 {
		return zerr.With(ErrInvalidSearchOptions, "max_num_emb", o.MaxNumEmb)
	}
	return nil
}
