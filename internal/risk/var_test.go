package risk

import (
	"errors"
	"math"
	"testing"
)

func mixedReturns() *ReturnSeries {
	// 100 returns: mostly small, a few deep losses in the tail
	returns := make([]float64, 100)
	for i := range returns {
		returns[i] = 0.001 * float64(i%10-5)
	}
	returns[10] = -0.08
	returns[40] = -0.06
	returns[70] = -0.05
	return &ReturnSeries{Ticker: "TEST", Returns: returns}
}

func TestHistoricalVaR(t *testing.T) {
	result, err := CalculateVaR(mixedReturns(), 0.95, 1, MethodHistorical)
	if err != nil {
		t.Fatalf("CalculateVaR() error = %v", err)
	}

	if result.VaR <= 0 {
		t.Errorf("VaR = %f, want positive loss", result.VaR)
	}

	// Expected shortfall is at least the threshold loss
	if result.CVaR < result.VaR {
		t.Errorf("CVaR %f < VaR %f, tail mean must be at least the threshold", result.CVaR, result.VaR)
	}
}

func TestParametricVaR(t *testing.T) {
	result, err := CalculateVaR(mixedReturns(), 0.95, 1, MethodParametric)
	if err != nil {
		t.Fatalf("CalculateVaR() error = %v", err)
	}

	series := mixedReturns()
	want := NormInv(0.95)*StdDev(series.Returns) - Mean(series.Returns)
	if math.Abs(result.VaR-want) > 1e-9 {
		t.Errorf("parametric VaR = %f, want mean - z·σ flipped = %f", result.VaR, want)
	}
	if result.CVaR < result.VaR {
		t.Errorf("parametric CVaR %f < VaR %f", result.CVaR, result.VaR)
	}
}

func TestVaRHoldingPeriodScaling(t *testing.T) {
	daily, err := CalculateVaR(mixedReturns(), 0.95, 1, MethodHistorical)
	if err != nil {
		t.Fatal(err)
	}
	weekly, err := CalculateVaR(mixedReturns(), 0.95, 5, MethodHistorical)
	if err != nil {
		t.Fatal(err)
	}

	want := daily.VaR * math.Sqrt(5)
	if math.Abs(weekly.VaR-want) > 1e-12 {
		t.Errorf("5-day VaR = %f, want sqrt-of-time scaled %f", weekly.VaR, want)
	}
}

func TestVaREmptySeries(t *testing.T) {
	_, err := CalculateVaR(&ReturnSeries{Ticker: "EMPTY"}, 0.95, 1, MethodHistorical)
	if !errors.Is(err, ErrEmptySeries) {
		t.Errorf("error = %v, want ErrEmptySeries", err)
	}
}

func TestVaRUnknownMethod(t *testing.T) {
	_, err := CalculateVaR(mixedReturns(), 0.95, 1, VaRMethod("bogus"))
	if !errors.Is(err, ErrInvalidMethod) {
		t.Errorf("error = %v, want ErrInvalidMethod", err)
	}
}

func TestVaRAllPositiveReturns(t *testing.T) {
	series := &ReturnSeries{
		Ticker:  "UP",
		Returns: []float64{0.01, 0.02, 0.01, 0.03, 0.02},
	}

	result, err := CalculateVaR(series, 0.95, 1, MethodHistorical)
	if err != nil {
		t.Fatal(err)
	}

	// No losses in history: VaR clamps to zero, never negative
	if result.VaR != 0 {
		t.Errorf("VaR = %f, want 0 for loss-free history", result.VaR)
	}
}

func TestNormInv(t *testing.T) {
	tests := []struct {
		p    float64
		want float64
		tol  float64
	}{
		{0.95, 1.645, 1e-3},
		{0.99, 2.326, 1e-3},
		{0.975, 1.96, 1e-2},
		{0.5, 0, 1e-9},
	}

	for _, tt := range tests {
		if got := NormInv(tt.p); math.Abs(got-tt.want) > tt.tol {
			t.Errorf("NormInv(%f) = %f, want %f", tt.p, got, tt.want)
		}
	}

	// Symmetry of the approximation tails
	if got := NormInv(0.01) + NormInv(0.99); math.Abs(got) > 1e-2 {
		t.Errorf("NormInv(0.01) + NormInv(0.99) = %f, want ~0", got)
	}
}
