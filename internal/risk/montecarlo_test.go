package risk

import (
	"errors"
	"testing"
)

func bootstrapConfig(seed int64) MonteCarloConfig {
	cfg := DefaultMonteCarloConfig()
	cfg.NumSimulations = 2000
	cfg.Seed = seed
	return cfg
}

func TestMonteCarloReproducibleWithSeed(t *testing.T) {
	series := mixedReturns()

	a, err := NewMonteCarloSimulator(bootstrapConfig(42)).Simulate(series)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	b, err := NewMonteCarloSimulator(bootstrapConfig(42)).Simulate(series)
	if err != nil {
		t.Fatal(err)
	}

	// Same seed, same input: identical distribution statistics
	if a.VaR95 != b.VaR95 || a.MeanReturn != b.MeanReturn || a.StdDev != b.StdDev {
		t.Error("seeded runs must produce identical results")
	}

	// Run IDs stay unique for audit purposes
	if a.RunID == b.RunID {
		t.Error("run IDs must be unique per run")
	}
}

func TestMonteCarloStatisticsAreCoherent(t *testing.T) {
	result, err := NewMonteCarloSimulator(bootstrapConfig(7)).Simulate(mixedReturns())
	if err != nil {
		t.Fatal(err)
	}

	if result.CVaR95 < result.VaR95 {
		t.Errorf("CVaR95 %f < VaR95 %f", result.CVaR95, result.VaR95)
	}
	if result.VaR99 < result.VaR95 {
		t.Errorf("VaR99 %f < VaR95 %f, deeper tail must not shrink", result.VaR99, result.VaR95)
	}

	// Percentiles are monotone
	prev := result.Percentiles[1]
	for _, p := range []int{5, 10, 25, 50, 75, 90, 95, 99} {
		if result.Percentiles[p] < prev {
			t.Errorf("percentile %d below percentile before it", p)
		}
		prev = result.Percentiles[p]
	}

	if result.InputSampleCount != mixedReturns().Len() {
		t.Errorf("InputSampleCount = %d, want %d", result.InputSampleCount, mixedReturns().Len())
	}
}

func TestMonteCarloParametric(t *testing.T) {
	cfg := bootstrapConfig(11)
	cfg.Method = MCParametricNormal

	result, err := NewMonteCarloSimulator(cfg).Simulate(mixedReturns())
	if err != nil {
		t.Fatal(err)
	}
	if result.StdDev <= 0 {
		t.Errorf("StdDev = %f, want positive", result.StdDev)
	}
}

func TestMonteCarloFailClosed(t *testing.T) {
	small := &ReturnSeries{Ticker: "SMALL", Returns: make([]float64, 10)}

	_, err := NewMonteCarloSimulator(bootstrapConfig(1)).Simulate(small)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("error = %v, want ErrInsufficientData below MinSamples", err)
	}

	_, err = NewMonteCarloSimulator(bootstrapConfig(1)).Simulate(&ReturnSeries{Ticker: "EMPTY"})
	if !errors.Is(err, ErrEmptySeries) {
		t.Errorf("error = %v, want ErrEmptySeries", err)
	}
}
