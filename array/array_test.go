package array

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDense(t *testing.T) {
	testData := map[string]struct {
		data  []float64
		shape []int
		err   error
	}{
		"valid 2d": {
			data:  []float64{1, 2, 3, 4, 5, 6},
			shape: []int{2, 3},
		},
		"valid 3d": {
			data:  make([]float64, 24),
			shape: []int{2, 3, 4},
		},
		"length mismatch": {
			data:  []float64{1, 2, 3},
			shape: []int{2, 2},
			err:   ErrShapeMismatch,
		},
		"negative dim": {
			data:  []float64{},
			shape: []int{-1, 2},
			err:   ErrNegativeDim,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			d, err := NewDense(td.data, td.shape...)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.shape, d.Shape())
			assert.Equal(t, len(td.data), d.Size())
		})
	}
}

func TestFullAndNaNs(t *testing.T) {
	d, err := Full(7.0, 2, 2)
	require.NoError(t, err)
	for _, v := range d.Values() {
		assert.Equal(t, 7.0, v)
	}

	n, err := NaNs(3, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, n.Size())
	for _, v := range n.Values() {
		assert.True(t, math.IsNaN(v))
	}
}

func TestAtSet(t *testing.T) {
	d, err := Zeros(2, 3, 2)
	require.NoError(t, err)

	require.NoError(t, d.Set(5.0, 1, 2, 0))
	got, err := d.At(1, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)

	// row-major: last axis varies fastest
	assert.Equal(t, 5.0, d.Values()[1*6+2*2+0])

	_, err = d.At(1, 2)
	assert.ErrorIs(t, err, ErrIndexRankMismatch)

	_, err = d.At(2, 0, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)

	err = d.Set(1.0, 0, 3, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
}

func TestPage(t *testing.T) {
	d, err := NewDense([]float64{1, 2, 3, 4, 5, 6}, 3, 2)
	require.NoError(t, err)

	page, err := d.Page(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, page)

	_, err = d.Page(3)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = d.Page(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
}

func TestReshape(t *testing.T) {
	d, err := Zeros(4, 3)
	require.NoError(t, err)

	require.NoError(t, d.Reshape(2, 2, 3))
	assert.Equal(t, []int{2, 2, 3}, d.Shape())
	assert.Equal(t, 3, d.Rank())

	assert.ErrorIs(t, d.Reshape(5, 2), ErrSizeMismatch)
	assert.ErrorIs(t, d.Reshape(-2, 6), ErrNegativeDim)
}
