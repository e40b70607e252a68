// Package stats provides NaN-aware descriptive summaries of numeric columns.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the non-missing values of one column.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Stddev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Describe summarizes xs ignoring NaN entries. An all-missing or empty input
// yields Count 0 with NaN moments.
func Describe(xs []float64) Summary {
	obs := make([]float64, 0, len(xs))
	for _, v := range xs {
		if math.IsNaN(v) {
			continue
		}
		obs = append(obs, v)
	}
	if len(obs) == 0 {
		return Summary{
			Mean:   math.NaN(),
			Stddev: math.NaN(),
			Min:    math.NaN(),
			Max:    math.NaN(),
		}
	}

	mean, stddev := stat.MeanStdDev(obs, nil)
	if len(obs) < 2 {
		stddev = 0
	}
	return Summary{
		Count:  len(obs),
		Mean:   mean,
		Stddev: stddev,
		Min:    floats.Min(obs),
		Max:    floats.Max(obs),
	}
}
