package risk

import (
	"fmt"
	"math"
)

// =============================================================================
// Sharpe / Sortino Ratios
// =============================================================================

// CalculateRatios annualizes the series and computes risk-adjusted ratios.
// riskFreeRate: 연환산 무위험 수익률 (예: 0.045)
// 변동성 0 (무변동 시계열)이면 비율은 센티널 0, NaN/Inf 금지
func CalculateRatios(series *ReturnSeries, riskFreeRate float64) (*RatioResult, error) {
	if series == nil || series.Len() == 0 {
		ticker := ""
		if series != nil {
			ticker = series.Ticker
		}
		return nil, fmt.Errorf("%w: %s", ErrEmptySeries, ticker)
	}

	annualReturn := Mean(series.Returns) * TradingDaysPerYear
	annualVol := StdDev(series.Returns) * math.Sqrt(TradingDaysPerYear)

	sharpe := 0.0
	if annualVol > 0 {
		sharpe = (annualReturn - riskFreeRate) / annualVol
	}

	downside := downsideDeviation(series.Returns, riskFreeRate/TradingDaysPerYear)
	annualDownside := downside * math.Sqrt(TradingDaysPerYear)

	// 무변동 시계열은 임계값과의 거리만으로 downside가 생기므로
	// Sortino도 Sharpe와 같이 센티널 0으로 처리
	sortino := 0.0
	if annualVol > 0 && annualDownside > 0 {
		sortino = (annualReturn - riskFreeRate) / annualDownside
	}

	return &RatioResult{
		Ticker:               series.Ticker,
		AnnualizedReturn:     annualReturn,
		AnnualizedVolatility: annualVol,
		DownsideDeviation:    annualDownside,
		RiskFreeRate:         riskFreeRate,
		Sharpe:               sharpe,
		Sortino:              sortino,
		SharpeGrade:          gradeRatio(sharpe),
		SortinoGrade:         gradeRatio(sortino),
	}, nil
}

// downsideDeviation std of returns below the daily risk-free threshold
func downsideDeviation(returns []float64, threshold float64) float64 {
	var sumSq float64
	count := 0
	for _, r := range returns {
		if r < threshold {
			diff := r - threshold
			sumSq += diff * diff
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return math.Sqrt(sumSq / float64(count))
}

// gradeRatio 정성 해석 버킷
func gradeRatio(ratio float64) RatioGrade {
	switch {
	case ratio >= 2:
		return GradeExcellent
	case ratio >= 1:
		return GradeGood
	case ratio >= 0.5:
		return GradeModerate
	case ratio >= 0:
		return GradeBelowAverage
	default:
		return GradePoor
	}
}
