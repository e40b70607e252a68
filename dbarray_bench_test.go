package macrots

import (
	"fmt"
	"os"
	"testing"

	"github.com/econforge/macrots/database"
	"github.com/econforge/macrots/period"
	"github.com/econforge/macrots/series"
	"github.com/goccy/go-json"
	"github.com/pkg/profile"
)

var benchRes *Result

func setupBenchDB(b *testing.B, numSeries, numPeriods int) (*database.DB, []string) {
	b.Helper()
	rng, err := period.NewRange(period.Month(1990, 1), period.Month(1990, 1).Add(numPeriods-1))
	if err != nil {
		panic(err)
	}

	db := database.New()
	names := make([]string, 0, numSeries)
	for i := 0; i < numSeries; i++ {
		name := fmt.Sprintf("series_%03d", i)
		s, err := series.Simulate(rng, 100, 0.1, 5, 1)
		if err != nil {
			panic(err)
		}
		db.Set(name, s)
		names = append(names, name)
	}
	return db, names
}

func BenchmarkAssemble(b *testing.B) {
	db, names := setupBenchDB(b, 100, 600)

	var err error
	b.ResetTimer()
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	for b.Loop() {
		benchRes, err = Assemble(db, names, period.Range{}, nil)
		if err != nil {
			panic(err)
		}
	}

	bytes, err := json.MarshalIndent(benchRes, "", "  ")
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile("benchmark_result.json", bytes, 0o644); err != nil {
		panic(err)
	}
}
