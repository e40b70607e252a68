// Package array provides a dense n-dimensional float64 array stored row-major.
// The assembler uses it as the working and output form, with NaN as the
// missing-value fill.
package array

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrNegativeDim        = errors.New("negative dimensions not allowed")
	ErrShapeMismatch      = errors.New("data length does not match shape")
	ErrSizeMismatch       = errors.New("new shape has a different size")
	ErrIndexRankMismatch  = errors.New("index rank does not match array rank")
	ErrIndexOutOfBounds   = errors.New("index is out of bounds")
	ErrUninitializedArray = errors.New("uninitialized array")
)

// Dense is a dense n-dimensional array. Data is stored row-major: the last
// axis varies fastest.
type Dense struct {
	data  []float64
	shape []int
}

// NewDense wraps data into an array of the given shape without copying.
func NewDense(data []float64, shape ...int) (*Dense, error) {
	size, err := sizeOf(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != size {
		return nil, fmt.Errorf("%d values for shape %v, %w", len(data), shape, ErrShapeMismatch)
	}
	s := make([]int, len(shape))
	copy(s, shape)
	return &Dense{data: data, shape: s}, nil
}

// Zeros returns a zero-filled array of the given shape.
func Zeros(shape ...int) (*Dense, error) {
	size, err := sizeOf(shape)
	if err != nil {
		return nil, err
	}
	s := make([]int, len(shape))
	copy(s, shape)
	return &Dense{data: make([]float64, size), shape: s}, nil
}

// Full returns an array of the given shape with every element set to v.
func Full(v float64, shape ...int) (*Dense, error) {
	d, err := Zeros(shape...)
	if err != nil {
		return nil, err
	}
	if v != 0 {
		floats.AddConst(v, d.data)
	}
	return d, nil
}

// NaNs returns an all-missing array of the given shape.
func NaNs(shape ...int) (*Dense, error) {
	return Full(math.NaN(), shape...)
}

func sizeOf(shape []int) (int, error) {
	size := 1
	for _, dim := range shape {
		if dim < 0 {
			return 0, ErrNegativeDim
		}
		size *= dim
	}
	return size, nil
}

// Shape returns a copy of the array's dimensions.
func (d *Dense) Shape() []int {
	s := make([]int, len(d.shape))
	copy(s, d.shape)
	return s
}

func (d *Dense) Rank() int { return len(d.shape) }

func (d *Dense) Size() int { return len(d.data) }

// Values returns the underlying row-major storage as a view.
func (d *Dense) Values() []float64 { return d.data }

func (d *Dense) offset(idx []int) (int, error) {
	if len(idx) != len(d.shape) {
		return 0, fmt.Errorf("%d indices for rank %d, %w", len(idx), len(d.shape), ErrIndexRankMismatch)
	}
	off := 0
	for axis, i := range idx {
		if i < 0 || i >= d.shape[axis] {
			return 0, fmt.Errorf("index %d on axis %d of size %d, %w", i, axis, d.shape[axis], ErrIndexOutOfBounds)
		}
		off = off*d.shape[axis] + i
	}
	return off, nil
}

// At retrieves a single element by full index.
func (d *Dense) At(idx ...int) (float64, error) {
	off, err := d.offset(idx)
	if err != nil {
		return 0, err
	}
	return d.data[off], nil
}

// Set assigns a single element by full index.
func (d *Dense) Set(v float64, idx ...int) error {
	off, err := d.offset(idx)
	if err != nil {
		return err
	}
	d.data[off] = v
	return nil
}

// Page returns a view of the i-th slice along the leading axis, flattened.
func (d *Dense) Page(i int) ([]float64, error) {
	if len(d.shape) == 0 {
		return nil, ErrUninitializedArray
	}
	if i < 0 || i >= d.shape[0] {
		return nil, fmt.Errorf("page %d of %d, %w", i, d.shape[0], ErrIndexOutOfBounds)
	}
	page := len(d.data) / d.shape[0]
	return d.data[i*page : (i+1)*page], nil
}

// Reshape reinterprets the array in place with a new shape of equal size.
func (d *Dense) Reshape(shape ...int) error {
	size, err := sizeOf(shape)
	if err != nil {
		return err
	}
	if size != len(d.data) {
		return fmt.Errorf("size %d to %d, %w", len(d.data), size, ErrSizeMismatch)
	}
	s := make([]int, len(shape))
	copy(s, shape)
	d.shape = s
	return nil
}
