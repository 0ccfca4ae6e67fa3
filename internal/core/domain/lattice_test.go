package domain_test

import (
	"testing"

	"github.com/anneal-lab/embedcache/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func TestNewSquareLattice_L2(t *testing.T) {
	lg, err := domain.NewSquareLattice(2)
	require.NoError(t, err)

	assert.Equal(t, 2, lg.L())
	assert.Equal(t, []int{0, 1, 2, 3}, lg.Nodes())

	w, ok := lg.Weight(0, 1)
	require.True(t, ok)
	assert.InDelta(t, -1.0, w, 0)

	// The order of the endpoints does not matter.
	w, ok = lg.Weight(1, 0)
	require.True(t, ok)
	assert.InDelta(t, -1.0, w, 0)

	// (1,0) is odd: the wrap coupler 2-3 starts at +1.
	w, ok = lg.Weight(2, 3)
	require.True(t, ok)
	assert.InDelta(t, 1.0, w, 0)

	// Open direction.
	w, ok = lg.Weight(0, 2)
	require.True(t, ok)
	assert.InDelta(t, 1.0, w, 0)

	_, ok = lg.Weight(0, 3)
	assert.False(t, ok)

	assert.Len(t, lg.Couplers(), 4)
}

func TestNewSquareLattice_L3(t *testing.T) {
	lg, err := domain.NewSquareLattice(3)
	require.NoError(t, err)

	// 3 rings of 3 wrap couplers plus 2*3 open couplers.
	assert.Len(t, lg.Couplers(), 15)

	tests := []struct {
		u, v int
		want float64
	}{
		{0, 1, -1}, // x=0,y=0
		{1, 2, 1},  // x=0,y=1
		{2, 0, -1}, // x=0,y=2 wraps
		{3, 4, 1},  // x=1,y=0
		{5, 3, 1},  // x=1,y=2 wraps
		{0, 3, 1},
		{5, 8, 1},
	}
	for _, tt := range tests {
		w, ok := lg.Weight(tt.u, tt.v)
		require.True(t, ok, "coupler %d-%d", tt.u, tt.v)
		assert.InDelta(t, tt.want, w, 0, "coupler %d-%d", tt.u, tt.v)
	}

	// No open coupler leaves the last row.
	_, ok := lg.Weight(6, 0)
	assert.False(t, ok)
}

func TestNewSquareLattice_Deterministic(t *testing.T) {
	for _, l := range []int{1, 2, 3, 4, 7} {
		a, err := domain.NewSquareLattice(l)
		require.NoError(t, err)
		b, err := domain.NewSquareLattice(l)
		require.NoError(t, err)

		assert.Equal(t, a.Nodes(), b.Nodes())
		assert.Equal(t, a.Couplers(), b.Couplers())
		assert.Equal(t, a.Problem(), b.Problem())
		assert.Len(t, a.Nodes(), l*l)
	}
}

func TestNewSquareLattice_L1(t *testing.T) {
	lg, err := domain.NewSquareLattice(1)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, lg.Nodes())
	assert.Empty(t, lg.Couplers())
}

func TestNewSquareLattice_Invalid(t *testing.T) {
	for _, l := range []int{0, -3} {
		_, err := domain.NewSquareLattice(l)
		require.Error(t, err)
		require.ErrorContains(t, err, domain.ErrInvalidLatticeSize.Error())

		zErr, ok := err.(*zerr.Error)
		require.True(t, ok)
		assert.Equal(t, l, zErr.Metadata()["L"])
	}
}

func TestLogicalGraph_Problem(t *testing.T) {
	lg, err := domain.NewSquareLattice(2)
	require.NoError(t, err)

	assert.Equal(t, []domain.ProblemEntry{
		{I: 0, J: 1, Value: -1},
		{I: 0, J: 2, Value: 1},
		{I: 1, J: 3, Value: 1},
		{I: 2, J: 3, Value: 1},
	}, lg.Problem())
}
