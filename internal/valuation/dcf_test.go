package valuation

import (
	"errors"
	"math"
	"testing"
)

// flatGrowthFixture: revenue 100B, 30% operating margin, flat 10% growth,
// 0.80 conversion, known market snapshot.
func flatGrowthFixture() (*HistoricalFinancials, *ProjectionSeries) {
	fin := &HistoricalFinancials{
		Ticker:            "AAPL",
		CurrentPrice:      150,
		SharesOutstanding: 10e9,
		MarketCap:         1500e9,
		TotalDebt:         100e9,
		TotalCash:         60e9,
		Years: []YearFinancials{
			{Year: 2024, Revenue: 100e9, OperatingIncome: 30e9, HasRevenue: true, HasOperatingIncome: true},
		},
	}

	a := DefaultAssumptions()
	growth := []float64{0.10, 0.10, 0.10, 0.10, 0.10}
	margins := []float64{0.30, 0.30, 0.30, 0.30, 0.30}
	projection, err := ProjectFinancials(fin, a, growth, margins)
	if err != nil {
		panic(err)
	}
	return fin, projection
}

func TestCalculateDCFGordonGrowth(t *testing.T) {
	fin, projection := flatGrowthFixture()

	wacc := WACCComponents{WACC: 0.10}
	result, err := CalculateDCF(fin, wacc, projection, 0.025)
	if err != nil {
		t.Fatalf("CalculateDCF() error = %v", err)
	}

	// Hand-computed terminal value:
	// finalFCF = 100e9 × 1.1^5 × 0.30 × 0.80
	finalFCF := 100e9 * math.Pow(1.1, 5) * 0.30 * 0.80
	wantTV := finalFCF * 1.025 / (0.10 - 0.025)
	if math.Abs(result.TerminalValue-wantTV) > 1 {
		t.Errorf("TerminalValue = %f, want %f", result.TerminalValue, wantTV)
	}

	wantPVTV := wantTV / math.Pow(1.1, 5)
	if math.Abs(result.PVOfTerminalValue-wantPVTV) > 1 {
		t.Errorf("PVOfTerminalValue = %f, want %f", result.PVOfTerminalValue, wantPVTV)
	}

	// Enterprise value identity
	if math.Abs(result.EnterpriseValue-(result.PVOfFCFs+result.PVOfTerminalValue)) > 1e-6 {
		t.Error("EnterpriseValue != PVOfFCFs + PVOfTerminalValue")
	}

	// Equity chain
	wantNetDebt := 100e9 - 60e9
	if result.NetDebt != wantNetDebt {
		t.Errorf("NetDebt = %f, want %f", result.NetDebt, wantNetDebt)
	}
	if math.Abs(result.EquityValue-(result.EnterpriseValue-wantNetDebt)) > 1e-6 {
		t.Error("EquityValue != EnterpriseValue - NetDebt")
	}
	if math.Abs(result.IntrinsicPerShare-result.EquityValue/10e9) > 1e-9 {
		t.Error("IntrinsicPerShare != EquityValue / SharesOutstanding")
	}
}

func TestCalculateDCFWACCBelowGrowth(t *testing.T) {
	fin, projection := flatGrowthFixture()

	for _, wacc := range []float64{0.025, 0.02} {
		_, err := CalculateDCF(fin, WACCComponents{WACC: wacc}, projection, 0.025)
		if !errors.Is(err, ErrTerminalGrowth) {
			t.Errorf("CalculateDCF(wacc=%f) error = %v, want ErrTerminalGrowth", wacc, err)
		}
	}
}

func TestCalculateDCFZeroShares(t *testing.T) {
	fin, projection := flatGrowthFixture()
	fin.SharesOutstanding = 0

	result, err := CalculateDCF(fin, WACCComponents{WACC: 0.10}, projection, 0.025)
	if err != nil {
		t.Fatalf("CalculateDCF() error = %v", err)
	}
	if result.IntrinsicPerShare != 0 {
		t.Errorf("IntrinsicPerShare = %f, want 0 sentinel for zero shares", result.IntrinsicPerShare)
	}
}

func TestClassifyUpside(t *testing.T) {
	tests := []struct {
		upside float64
		want   Verdict
	}{
		{25, VerdictUndervalued},
		{10.01, VerdictUndervalued},
		{10, VerdictFairlyValued},
		{0, VerdictFairlyValued},
		{-10, VerdictFairlyValued},
		{-10.01, VerdictOvervalued},
		{-40, VerdictOvervalued},
	}

	for _, tt := range tests {
		if got := classifyUpside(tt.upside); got != tt.want {
			t.Errorf("classifyUpside(%f) = %s, want %s", tt.upside, got, tt.want)
		}
	}
}
