package valuation

import (
	"math"
	"testing"
)

func TestComputeWACC(t *testing.T) {
	a := DefaultAssumptions()

	tests := []struct {
		name string
		fin  *HistoricalFinancials
		check func(t *testing.T, w WACCComponents)
	}{
		{
			name: "standard inputs",
			fin: &HistoricalFinancials{
				Ticker:    "AAPL",
				MarketCap: 3000e9,
				TotalDebt: 100e9,
				Beta:      1.2,
				Years: []YearFinancials{
					{Year: 2024, InterestExpense: 4e9, HasInterestExpense: true},
				},
			},
			check: func(t *testing.T, w WACCComponents) {
				wantRe := 0.045 + 1.2*0.055
				if math.Abs(w.CostOfEquity-wantRe) > 1e-12 {
					t.Errorf("CostOfEquity = %f, want %f", w.CostOfEquity, wantRe)
				}
				wantRd := 4e9 / 100e9
				if math.Abs(w.CostOfDebt-wantRd) > 1e-12 {
					t.Errorf("CostOfDebt = %f, want %f", w.CostOfDebt, wantRd)
				}
				wantWACC := w.EquityWeight*wantRe + w.DebtWeight*wantRd*(1-0.21)
				if math.Abs(w.WACC-wantWACC) > 1e-12 {
					t.Errorf("WACC = %f, want %f", w.WACC, wantWACC)
				}
			},
		},
		{
			name: "missing beta falls back to 1.0",
			fin:  &HistoricalFinancials{MarketCap: 100e9},
			check: func(t *testing.T, w WACCComponents) {
				if w.Beta != 1.0 {
					t.Errorf("Beta = %f, want 1.0", w.Beta)
				}
			},
		},
		{
			name: "no interest expense uses risk-free plus spread",
			fin:  &HistoricalFinancials{MarketCap: 100e9, TotalDebt: 20e9},
			check: func(t *testing.T, w WACCComponents) {
				if math.Abs(w.CostOfDebt-(0.045+0.02)) > 1e-12 {
					t.Errorf("CostOfDebt = %f, want fallback %f", w.CostOfDebt, 0.045+0.02)
				}
			},
		},
		{
			name: "zero total value puts all weight on equity",
			fin:  &HistoricalFinancials{},
			check: func(t *testing.T, w WACCComponents) {
				if w.EquityWeight != 1.0 || w.DebtWeight != 0.0 {
					t.Errorf("weights = %f/%f, want 1/0", w.EquityWeight, w.DebtWeight)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ComputeWACC(tt.fin, a)

			// Weight invariant holds on every path
			if math.Abs(w.EquityWeight+w.DebtWeight-1.0) > 1e-9 {
				t.Errorf("weights sum to %f, want 1.0", w.EquityWeight+w.DebtWeight)
			}
			tt.check(t, w)
		})
	}
}
