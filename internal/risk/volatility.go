package risk

import (
	"fmt"
	"math"
)

// DefaultVolatilityWindow 롤링 변동성 기본 윈도우 (일)
const DefaultVolatilityWindow = 30

// =============================================================================
// Rolling Volatility
// =============================================================================

// CalculateRollingVolatility computes annualized volatility over a sliding
// window and ranks the current value within the full history.
func CalculateRollingVolatility(series *ReturnSeries, window int) (*VolatilityResult, error) {
	if series == nil || series.Len() == 0 {
		ticker := ""
		if series != nil {
			ticker = series.Ticker
		}
		return nil, fmt.Errorf("%w: %s", ErrEmptySeries, ticker)
	}
	if window <= 1 {
		window = DefaultVolatilityWindow
	}
	if series.Len() < window {
		return nil, fmt.Errorf("%w: %s needs %d returns, has %d",
			ErrInsufficientData, series.Ticker, window, series.Len())
	}

	annualize := math.Sqrt(TradingDaysPerYear)
	rolling := make([]float64, 0, series.Len()-window+1)
	for i := window; i <= series.Len(); i++ {
		rolling = append(rolling, StdDev(series.Returns[i-window:i])*annualize)
	}

	current := rolling[len(rolling)-1]

	minV, maxV := rolling[0], rolling[0]
	for _, v := range rolling {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	historical := StdDev(series.Returns) * annualize

	return &VolatilityResult{
		Ticker:         series.Ticker,
		Window:         window,
		Historical:     historical,
		Current:        current,
		PercentileRank: PercentileRank(rolling, current),
		Min:            minV,
		Max:            maxV,
		Average:        Mean(rolling),
		RiskLevel:      classifyVolatility(historical),
	}, nil
}

// classifyVolatility buckets annualized volatility into a qualitative level
func classifyVolatility(vol float64) string {
	switch {
	case vol > 0.50:
		return "Very High"
	case vol > 0.35:
		return "High"
	case vol > 0.20:
		return "Moderate"
	case vol > 0.10:
		return "Low"
	default:
		return "Very Low"
	}
}
