package risk

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/wonny/aurelius/internal/marketdata"
)

// =============================================================================
// Return Series Construction & Statistics
// =============================================================================

// NewReturnSeries derives daily simple returns from OHLCV close prices.
// ⭐ SSOT: 수익률 시계열 생성은 이 함수에서만 (simple return 규약)
func NewReturnSeries(ticker string, candles []marketdata.Candle) (*ReturnSeries, error) {
	if len(candles) < 2 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySeries, ticker)
	}

	series := &ReturnSeries{
		Ticker:  ticker,
		Dates:   make([]time.Time, 0, len(candles)-1),
		Returns: make([]float64, 0, len(candles)-1),
	}

	for i := 1; i < len(candles); i++ {
		prev := candles[i-1].Close
		if prev == 0 {
			continue
		}
		series.Dates = append(series.Dates, candles[i].Date)
		series.Returns = append(series.Returns, (candles[i].Close-prev)/prev)
	}

	if len(series.Returns) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySeries, ticker)
	}
	return series, nil
}

// AlignSeries inner-joins two return series on date.
// 거래일 불일치(휴장, 상장일 차이)는 교집합만 남김
func AlignSeries(a, b *ReturnSeries) (x, y []float64) {
	byDate := make(map[time.Time]float64, len(b.Returns))
	for i, d := range b.Dates {
		byDate[d] = b.Returns[i]
	}

	for i, d := range a.Dates {
		if v, ok := byDate[d]; ok {
			x = append(x, a.Returns[i])
			y = append(y, v)
		}
	}
	return x, y
}

// Mean 평균
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev 표본 표준편차 (n-1)
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var sumSq float64
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

// Covariance 표본 공분산 (n-1)
func Covariance(x, y []float64) float64 {
	n := len(x)
	if n < 2 || len(y) != n {
		return 0
	}
	mx, my := Mean(x), Mean(y)
	var sum float64
	for i := 0; i < n; i++ {
		sum += (x[i] - mx) * (y[i] - my)
	}
	return sum / float64(n-1)
}

// Correlation 피어슨 상관계수, 분산 0이면 센티널 0
func Correlation(x, y []float64) float64 {
	sx, sy := StdDev(x), StdDev(y)
	if sx == 0 || sy == 0 {
		return 0
	}
	return Covariance(x, y) / (sx * sy)
}

// Percentile 선형 보간 백분위수 (정렬된 입력, p: 0-100)
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	idx := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := idx - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PercentileRank 전체 분포 내에서 v가 차지하는 백분위 (0-100)
func PercentileRank(values []float64, v float64) float64 {
	if len(values) == 0 {
		return 0
	}
	below := 0
	for _, x := range values {
		if x <= v {
			below++
		}
	}
	return float64(below) / float64(len(values)) * 100
}

// sortedCopy ascending copy, 원본은 불변 유지
func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}
