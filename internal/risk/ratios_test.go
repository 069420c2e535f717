package risk

import (
	"errors"
	"math"
	"testing"
)

func TestCalculateRatios(t *testing.T) {
	series := &ReturnSeries{
		Ticker:  "TEST",
		Returns: []float64{0.01, -0.005, 0.02, -0.01, 0.015, 0.002, -0.008},
	}

	result, err := CalculateRatios(series, 0.045)
	if err != nil {
		t.Fatalf("CalculateRatios() error = %v", err)
	}

	wantReturn := Mean(series.Returns) * 252
	if math.Abs(result.AnnualizedReturn-wantReturn) > 1e-12 {
		t.Errorf("AnnualizedReturn = %f, want %f", result.AnnualizedReturn, wantReturn)
	}

	wantVol := StdDev(series.Returns) * math.Sqrt(252)
	if math.Abs(result.AnnualizedVolatility-wantVol) > 1e-12 {
		t.Errorf("AnnualizedVolatility = %f, want %f", result.AnnualizedVolatility, wantVol)
	}

	wantSharpe := (wantReturn - 0.045) / wantVol
	if math.Abs(result.Sharpe-wantSharpe) > 1e-12 {
		t.Errorf("Sharpe = %f, want %f", result.Sharpe, wantSharpe)
	}

	// Sortino penalizes only downside: with mixed returns it differs from Sharpe
	if result.Sortino == result.Sharpe {
		t.Error("Sortino should differ from Sharpe for mixed returns")
	}
}

func TestCalculateRatiosFlatSeries(t *testing.T) {
	// Constant price for 100 days: zero volatility everywhere
	series := &ReturnSeries{Ticker: "FLAT", Returns: make([]float64, 99)}

	result, err := CalculateRatios(series, 0.045)
	if err != nil {
		t.Fatalf("CalculateRatios() error = %v", err)
	}

	// Division by zero volatility must yield the 0 sentinel, not NaN/Inf
	if result.Sharpe != 0 {
		t.Errorf("Sharpe = %f, want 0 sentinel for zero volatility", result.Sharpe)
	}
	if result.Sortino != 0 {
		t.Errorf("Sortino = %f, want 0 sentinel", result.Sortino)
	}
	if math.IsNaN(result.Sharpe) || math.IsInf(result.Sharpe, 0) {
		t.Error("Sharpe must stay finite")
	}
}

func TestCalculateRatiosConstantDrift(t *testing.T) {
	// Constant daily loss: zero volatility, but every return sits below the
	// risk-free threshold. The distance to the threshold must not turn into
	// a fabricated downside deviation for Sortino.
	returns := make([]float64, 99)
	for i := range returns {
		returns[i] = -0.001
	}
	series := &ReturnSeries{Ticker: "DRIFT", Returns: returns}

	result, err := CalculateRatios(series, 0.045)
	if err != nil {
		t.Fatalf("CalculateRatios() error = %v", err)
	}

	if result.AnnualizedVolatility != 0 {
		t.Errorf("AnnualizedVolatility = %f, want 0 for constant series", result.AnnualizedVolatility)
	}
	if result.Sharpe != 0 {
		t.Errorf("Sharpe = %f, want 0 sentinel", result.Sharpe)
	}
	if result.Sortino != 0 {
		t.Errorf("Sortino = %f, want 0 sentinel for zero volatility", result.Sortino)
	}
}

func TestCalculateRatiosEmpty(t *testing.T) {
	_, err := CalculateRatios(&ReturnSeries{Ticker: "EMPTY"}, 0.045)
	if !errors.Is(err, ErrEmptySeries) {
		t.Errorf("error = %v, want ErrEmptySeries", err)
	}
}

func TestGradeRatio(t *testing.T) {
	tests := []struct {
		ratio float64
		want  RatioGrade
	}{
		{2.5, GradeExcellent},
		{2.0, GradeExcellent},
		{1.5, GradeGood},
		{0.7, GradeModerate},
		{0.2, GradeBelowAverage},
		{0.0, GradeBelowAverage},
		{-0.5, GradePoor},
	}

	for _, tt := range tests {
		if got := gradeRatio(tt.ratio); got != tt.want {
			t.Errorf("gradeRatio(%f) = %s, want %s", tt.ratio, got, tt.want)
		}
	}
}
