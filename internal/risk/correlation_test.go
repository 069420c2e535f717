package risk

import (
	"errors"
	"math"
	"testing"
)

func TestCorrelationMatrix(t *testing.T) {
	base := make([]float64, 60)
	inverse := make([]float64, 60)
	noise := make([]float64, 60)
	for i := range base {
		base[i] = 0.001*float64(i%11) - 0.004
		inverse[i] = -base[i]
		noise[i] = 0.002 * float64((i*7)%13-6)
	}

	series := []*ReturnSeries{
		syntheticSeries("AAA", base),
		syntheticSeries("BBB", inverse),
		syntheticSeries("CCC", noise),
	}

	result, err := CalculateCorrelationMatrix(series)
	if err != nil {
		t.Fatalf("CalculateCorrelationMatrix() error = %v", err)
	}

	// Diagonal is exactly 1.0
	for i := range result.Matrix {
		if result.Matrix[i][i] != 1.0 {
			t.Errorf("diagonal [%d][%d] = %f, want 1.0", i, i, result.Matrix[i][i])
		}
	}

	// Symmetry
	for i := range result.Matrix {
		for j := range result.Matrix[i] {
			if result.Matrix[i][j] != result.Matrix[j][i] {
				t.Errorf("matrix not symmetric at [%d][%d]", i, j)
			}
		}
	}

	// AAA vs BBB are perfectly inversely correlated
	if math.Abs(result.Matrix[0][1]-(-1.0)) > 1e-9 {
		t.Errorf("corr(AAA,BBB) = %f, want -1.0", result.Matrix[0][1])
	}

	if result.Lowest == nil || result.Lowest.Correlation > -0.99 {
		t.Error("lowest pair should be the inverse pair")
	}
	if result.Highest == nil {
		t.Fatal("highest pair missing")
	}
}

func TestCorrelationMatrixTooFewTickers(t *testing.T) {
	_, err := CalculateCorrelationMatrix([]*ReturnSeries{syntheticSeries("ONLY", make([]float64, 60))})
	if !errors.Is(err, ErrTooFewTickers) {
		t.Errorf("error = %v, want ErrTooFewTickers", err)
	}
}

func TestCorrelationMatrixEmptySeries(t *testing.T) {
	series := []*ReturnSeries{
		syntheticSeries("AAA", make([]float64, 60)),
		{Ticker: "EMPTY"},
	}

	_, err := CalculateCorrelationMatrix(series)
	if !errors.Is(err, ErrEmptySeries) {
		t.Errorf("error = %v, want ErrEmptySeries identifying the bad ticker", err)
	}
}
