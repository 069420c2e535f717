package risk

import (
	"fmt"

	"github.com/wonny/aurelius/internal/marketdata"
)

// =============================================================================
// Maximum Drawdown
// =============================================================================

// CalculateMaxDrawdown walks the price series against its running maximum.
// 낙폭은 음수로 표현 (-0.25 = 고점 대비 25% 하락)
// 현재 낙폭은 역대 최대 낙폭보다 깊을 수 있음 (하락이 진행 중인 경우)
func CalculateMaxDrawdown(ticker string, candles []marketdata.Candle) (*DrawdownResult, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySeries, ticker)
	}

	result := &DrawdownResult{Ticker: ticker}

	runningMax := candles[0].Close
	peakIdx := 0
	maxDD := 0.0
	troughIdx := 0
	maxDDPeakIdx := 0
	ddSum := 0.0
	ddCount := 0

	for i, c := range candles {
		if c.Close > runningMax {
			runningMax = c.Close
			peakIdx = i
		}
		if runningMax == 0 {
			continue
		}

		dd := (c.Close - runningMax) / runningMax
		ddSum += dd
		ddCount++
		if dd < maxDD {
			maxDD = dd
			troughIdx = i
			maxDDPeakIdx = peakIdx
		}
	}

	result.MaxDrawdown = maxDD
	result.PeakDate = candles[maxDDPeakIdx].Date
	result.PeakPrice = candles[maxDDPeakIdx].Close
	result.TroughDate = candles[troughIdx].Date
	result.TroughPrice = candles[troughIdx].Close

	// Recovery: first close at or above the pre-drawdown peak after the trough
	for i := troughIdx + 1; i < len(candles); i++ {
		if candles[i].Close >= result.PeakPrice {
			result.Recovered = true
			result.RecoveryDate = candles[i].Date
			result.RecoveryDays = int(candles[i].Date.Sub(result.TroughDate).Hours() / 24)
			break
		}
	}

	// 현재 낙폭: 마지막 종가 vs 전체 최고가
	last := candles[len(candles)-1].Close
	if runningMax > 0 {
		result.CurrentDrawdown = (last - runningMax) / runningMax
	}
	if ddCount > 0 {
		result.AverageDrawdown = ddSum / float64(ddCount)
	}

	return result, nil
}
