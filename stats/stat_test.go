package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	nan := math.NaN()
	testData := map[string]struct {
		input    []float64
		expected Summary
	}{
		"plain": {
			input:    []float64{1, 2, 3, 4},
			expected: Summary{Count: 4, Mean: 2.5, Min: 1, Max: 4},
		},
		"ignores missing": {
			input:    []float64{nan, 2, nan, 4},
			expected: Summary{Count: 2, Mean: 3, Min: 2, Max: 4},
		},
		"single observation": {
			input:    []float64{5, nan},
			expected: Summary{Count: 1, Mean: 5, Stddev: 0, Min: 5, Max: 5},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			got := Describe(td.input)
			assert.Equal(t, td.expected.Count, got.Count)
			assert.InDelta(t, td.expected.Mean, got.Mean, 1e-12)
			assert.Equal(t, td.expected.Min, got.Min)
			assert.Equal(t, td.expected.Max, got.Max)
		})
	}
}

func TestDescribeStddev(t *testing.T) {
	got := Describe([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 2.138, got.Stddev, 1e-3)
}

func TestDescribeEmpty(t *testing.T) {
	for name, input := range map[string][]float64{
		"empty":       {},
		"all missing": {math.NaN(), math.NaN()},
	} {
		t.Run(name, func(t *testing.T) {
			got := Describe(input)
			assert.Zero(t, got.Count)
			assert.True(t, math.IsNaN(got.Mean))
			assert.True(t, math.IsNaN(got.Min))
			assert.True(t, math.IsNaN(got.Max))
		})
	}
}
