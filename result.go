package macrots

import (
	"errors"

	"github.com/econforge/macrots/stats"
)

var ErrColumnOutOfBounds = errors.New("column is out of bounds")

// Column returns the first-alternative values of the j-th requested name, one
// value per period of the resolved range.
func (r *Result) Column(j int) ([]float64, error) {
	shape := r.Data.Shape()
	if j < 0 || len(shape) < 2 || j >= shape[1] {
		return nil, ErrColumnOutOfBounds
	}
	alts := 1
	for _, dim := range shape[2:] {
		alts *= dim
	}
	out := make([]float64, shape[0])
	for p := range out {
		page, err := r.Data.Page(p)
		if err != nil {
			return nil, err
		}
		out[p] = page[j*alts]
	}
	return out, nil
}

// Describe summarizes the non-missing values of every included name across all
// alternatives.
func (r *Result) Describe() map[string]stats.Summary {
	out := make(map[string]stats.Summary, len(r.Names))
	shape := r.Data.Shape()
	if len(shape) < 2 {
		return out
	}
	alts := 1
	for _, dim := range shape[2:] {
		alts *= dim
	}
	for j, name := range r.Requested {
		if !r.Included[j] {
			continue
		}
		vals := make([]float64, 0, shape[0]*alts)
		for p := 0; p < shape[0]; p++ {
			page, err := r.Data.Page(p)
			if err != nil {
				break
			}
			vals = append(vals, page[j*alts:(j+1)*alts]...)
		}
		out[name] = stats.Describe(vals)
	}
	return out
}
