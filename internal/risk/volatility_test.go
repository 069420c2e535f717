package risk

import (
	"errors"
	"testing"
)

func TestRollingVolatility(t *testing.T) {
	// 60 alternating returns so every window has the same spread
	returns := make([]float64, 60)
	for i := range returns {
		if i%2 == 0 {
			returns[i] = 0.01
		} else {
			returns[i] = -0.01
		}
	}
	series := &ReturnSeries{Ticker: "TEST", Returns: returns}

	result, err := CalculateRollingVolatility(series, 30)
	if err != nil {
		t.Fatalf("CalculateRollingVolatility() error = %v", err)
	}

	if result.Window != 30 {
		t.Errorf("Window = %d, want 30", result.Window)
	}
	if result.Current <= 0 {
		t.Errorf("Current = %f, want positive volatility", result.Current)
	}
	// 윈도우가 전부 동일한 변동성이면 min/avg/max가 같아야 함 (부동소수점 허용오차)
	if result.Min-result.Average > 1e-12 || result.Average-result.Max > 1e-12 {
		t.Errorf("min/avg/max ordering broken: %f/%f/%f", result.Min, result.Average, result.Max)
	}
	if result.PercentileRank < 0 || result.PercentileRank > 100 {
		t.Errorf("PercentileRank = %f, want 0-100", result.PercentileRank)
	}
	if result.Historical <= 0 {
		t.Errorf("Historical = %f, want positive", result.Historical)
	}
	if result.RiskLevel == "" {
		t.Error("RiskLevel should be classified")
	}
}

func TestClassifyVolatility(t *testing.T) {
	tests := []struct {
		vol  float64
		want string
	}{
		{0.60, "Very High"},
		{0.40, "High"},
		{0.25, "Moderate"},
		{0.15, "Low"},
		{0.05, "Very Low"},
	}

	for _, tt := range tests {
		if got := classifyVolatility(tt.vol); got != tt.want {
			t.Errorf("classifyVolatility(%f) = %s, want %s", tt.vol, got, tt.want)
		}
	}
}

func TestRollingVolatilityFlatSeries(t *testing.T) {
	series := &ReturnSeries{Ticker: "FLAT", Returns: make([]float64, 60)}

	result, err := CalculateRollingVolatility(series, 30)
	if err != nil {
		t.Fatalf("CalculateRollingVolatility() error = %v", err)
	}
	if result.Current != 0 {
		t.Errorf("Current = %f, want 0 for flat series", result.Current)
	}
}

func TestRollingVolatilityDefaultWindow(t *testing.T) {
	series := &ReturnSeries{Ticker: "TEST", Returns: make([]float64, 60)}

	result, err := CalculateRollingVolatility(series, 0)
	if err != nil {
		t.Fatal(err)
	}
	if result.Window != DefaultVolatilityWindow {
		t.Errorf("Window = %d, want default %d", result.Window, DefaultVolatilityWindow)
	}
}

func TestRollingVolatilityTooShort(t *testing.T) {
	series := &ReturnSeries{Ticker: "SHORT", Returns: make([]float64, 10)}

	_, err := CalculateRollingVolatility(series, 30)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("error = %v, want ErrInsufficientData", err)
	}
}
