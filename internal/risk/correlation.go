package risk

import (
	"fmt"
	"time"
)

// =============================================================================
// Correlation Matrix
// =============================================================================

// CalculateCorrelationMatrix computes pairwise Pearson correlations across
// N >= 2 tickers, aligned on their common trading dates.
// 대각선은 항상 1.0, 최고/최저 상관 쌍을 함께 보고
func CalculateCorrelationMatrix(series []*ReturnSeries) (*CorrelationMatrix, error) {
	if len(series) < 2 {
		return nil, ErrTooFewTickers
	}

	for _, s := range series {
		if s == nil || s.Len() == 0 {
			ticker := ""
			if s != nil {
				ticker = s.Ticker
			}
			return nil, fmt.Errorf("%w: %s", ErrEmptySeries, ticker)
		}
	}

	aligned, obs := alignAll(series)
	if obs < 2 {
		return nil, fmt.Errorf("%w: %d common observations", ErrInsufficientData, obs)
	}

	n := len(series)
	result := &CorrelationMatrix{
		Tickers:      make([]string, n),
		Matrix:       make([][]float64, n),
		Observations: obs,
	}

	for i, s := range series {
		result.Tickers[i] = s.Ticker
		result.Matrix[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		result.Matrix[i][i] = 1.0
		for j := i + 1; j < n; j++ {
			corr := Correlation(aligned[i], aligned[j])
			result.Matrix[i][j] = corr
			result.Matrix[j][i] = corr

			pair := &CorrelationPair{
				TickerA:     result.Tickers[i],
				TickerB:     result.Tickers[j],
				Correlation: corr,
			}
			if result.Highest == nil || corr > result.Highest.Correlation {
				result.Highest = pair
			}
			if result.Lowest == nil || corr < result.Lowest.Correlation {
				result.Lowest = pair
			}
		}
	}

	return result, nil
}

// alignAll keeps only the dates every series shares
func alignAll(series []*ReturnSeries) ([][]float64, int) {
	counts := make(map[time.Time]int)
	for _, s := range series {
		for _, d := range s.Dates {
			counts[d]++
		}
	}

	common := make(map[time.Time]bool)
	for d, c := range counts {
		if c == len(series) {
			common[d] = true
		}
	}

	aligned := make([][]float64, len(series))
	for i, s := range series {
		for j, d := range s.Dates {
			if common[d] {
				aligned[i] = append(aligned[i], s.Returns[j])
			}
		}
	}

	obs := 0
	if len(aligned) > 0 {
		obs = len(aligned[0])
	}
	return aligned, obs
}
