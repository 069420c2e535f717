package valuation

import (
	"fmt"
	"math"
)

// =============================================================================
// Sensitivity Grid
// =============================================================================

// SensitivityAnalysis re-prices one cached projection across a WACC ×
// terminal-growth lattice.
//
// 프로젝션은 셀마다 다시 만들지 않음 (데이터 재조회 방지)
// WACC ≤ g인 셀은 터미널 가치 0으로 대체해 그리드를 끝까지 채움
func SensitivityAnalysis(fin *HistoricalFinancials, projection *ProjectionSeries, waccLo, waccHi, growthLo, growthHi float64, steps int) (*SensitivityGrid, error) {
	if steps < 2 {
		return nil, fmt.Errorf("%w: steps=%d", ErrBadGrid, steps)
	}
	if waccHi < waccLo || growthHi < growthLo {
		return nil, fmt.Errorf("%w: ranges must be ascending", ErrBadGrid)
	}
	if len(projection.Years) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRevenue, fin.Ticker)
	}

	waccs := linspace(waccLo, waccHi, steps)
	growths := linspace(growthLo, growthHi, steps)

	grid := &SensitivityGrid{
		Ticker:   fin.Ticker,
		WACCs:    waccs,
		Growths:  growths,
		PerShare: make([][]float64, steps),
	}

	for i, wacc := range waccs {
		grid.PerShare[i] = make([]float64, steps)
		for j, growth := range growths {
			grid.PerShare[i][j] = perShareAt(fin, projection, wacc, growth)
		}
	}

	return grid, nil
}

// perShareAt prices one (WACC, growth) cell against the cached projection
func perShareAt(fin *HistoricalFinancials, projection *ProjectionSeries, wacc, growth float64) float64 {
	pvFCFs := discountCashFlows(projection, wacc)

	// Sentinel: invalid Gordon-growth cells contribute no terminal value
	pvTerminal := 0.0
	if wacc > growth {
		n := len(projection.Years)
		finalFCF := projection.Years[n-1].FreeCashFlow
		terminal := finalFCF * (1 + growth) / (wacc - growth)
		pvTerminal = terminal / math.Pow(1+wacc, float64(n))
	}

	equity := pvFCFs + pvTerminal - (fin.TotalDebt - fin.TotalCash)
	if fin.SharesOutstanding <= 0 {
		return 0
	}
	return equity / fin.SharesOutstanding
}

// linspace evenly spaced values from lo to hi inclusive
func linspace(lo, hi float64, steps int) []float64 {
	out := make([]float64, steps)
	step := (hi - lo) / float64(steps-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[steps-1] = hi
	return out
}
