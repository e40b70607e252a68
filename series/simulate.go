package series

import (
	"math"
	"math/rand/v2"

	"github.com/econforge/macrots/period"
	"gonum.org/v1/gonum/floats"
)

// GenerateTrend produces n values growing linearly from level by slope per
// period.
func GenerateTrend(n int, level, slope float64) []float64 {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, level+slope*float64(i))
	}
	return y
}

// GenerateWave produces a sinusoid with the given amplitude and period length
// in periods.
func GenerateWave(n int, amp, periodLen, phase float64) []float64 {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, amp*math.Sin(2.0*math.Pi*(float64(i)+phase)/periodLen))
	}
	return y
}

// GenerateNoise produces gaussian noise scaled by noiseScale.
func GenerateNoise(n int, noiseScale float64) []float64 {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, rand.NormFloat64()*noiseScale)
	}
	return y
}

// GenerateShock adds a level shift of bias starting at period index chpt.
func GenerateShock(n, chpt int, bias float64) []float64 {
	y := make([]float64, n)
	for i := chpt; i < n; i++ {
		y[i] = bias
	}
	return y
}

// Simulate builds a single-column series over rng from a trend plus an annual
// seasonal wave plus noise. The range must be bounded.
func Simulate(rng period.Range, level, slope, seasonalAmp, noiseScale float64) (*Series, error) {
	n := rng.Len()
	y := GenerateTrend(n, level, slope)
	floats.Add(y, GenerateWave(n, seasonalAmp, float64(rng.Frequency().PeriodsPerYear()), 0))
	floats.Add(y, GenerateNoise(n, noiseScale))
	return NewVector(rng.Start, y)
}
