package risk

import "fmt"

// MinAlignedObservations 베타 계산에 필요한 최소 정렬 관측치
const MinAlignedObservations = 30

// =============================================================================
// CAPM Beta / Alpha
// =============================================================================

// CalculateBetaAlpha regresses the stock series against the benchmark.
// 두 시계열을 날짜 기준 inner join 후 계산, 관측치 30개 미만이면 실패
func CalculateBetaAlpha(stock, benchmark *ReturnSeries, riskFreeRate float64) (*BetaResult, error) {
	if stock == nil || stock.Len() == 0 {
		return nil, ErrEmptySeries
	}
	if benchmark == nil || benchmark.Len() == 0 {
		return nil, ErrEmptySeries
	}

	x, y := AlignSeries(stock, benchmark)
	if len(x) < MinAlignedObservations {
		return nil, fmt.Errorf("%w: %s vs %s has %d, need %d",
			ErrInsufficientData, stock.Ticker, benchmark.Ticker, len(x), MinAlignedObservations)
	}

	marketVar := Covariance(y, y)
	beta := 0.0
	if marketVar > 0 {
		beta = Covariance(x, y) / marketVar
	}

	// Jensen's alpha: 실제 연환산 수익률 − CAPM 기대 수익률
	stockAnnual := Mean(x) * TradingDaysPerYear
	marketAnnual := Mean(y) * TradingDaysPerYear
	expected := riskFreeRate + beta*(marketAnnual-riskFreeRate)
	alpha := stockAnnual - expected

	corr := Correlation(x, y)

	return &BetaResult{
		Ticker:       stock.Ticker,
		Benchmark:    benchmark.Ticker,
		Beta:         beta,
		Alpha:        alpha,
		Correlation:  corr,
		RSquared:     corr * corr,
		Observations: len(x),
	}, nil
}
