package risk

import (
	"fmt"
	"math"
)

// =============================================================================
// VaR (Value at Risk) Calculation
// =============================================================================

// CalculateVaR computes VaR and CVaR for one return series.
// confidence: 신뢰수준 (예: 0.95, 0.99)
// holdingPeriod: 보유 기간 (일), √t 스케일링 적용
// 반환값: VaR/CVaR는 손실을 양수로 표현 (예: 0.05 = 5% 손실 가능)
func CalculateVaR(series *ReturnSeries, confidence float64, holdingPeriod int, method VaRMethod) (*VaRResult, error) {
	if series == nil || series.Len() == 0 {
		ticker := ""
		if series != nil {
			ticker = series.Ticker
		}
		return nil, fmt.Errorf("%w: %s", ErrEmptySeries, ticker)
	}
	if holdingPeriod < 1 {
		holdingPeriod = 1
	}

	var dailyVaR, dailyCVaR float64
	switch method {
	case MethodHistorical:
		dailyVaR, dailyCVaR = historicalVaR(series.Returns, confidence)
	case MethodParametric:
		dailyVaR, dailyCVaR = parametricVaR(series.Returns, confidence)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidMethod, method)
	}

	// Square-root-of-time rule
	scale := math.Sqrt(float64(holdingPeriod))

	return &VaRResult{
		Ticker:        series.Ticker,
		Method:        method,
		Confidence:    confidence,
		HoldingPeriod: holdingPeriod,
		VaR:           dailyVaR * scale,
		CVaR:          dailyCVaR * scale,
		Observations:  series.Len(),
	}, nil
}

// historicalVaR empirical (1-confidence) percentile + tail mean
// 수익률 오름차순 정렬 → 손실이 앞에 옴
func historicalVaR(returns []float64, confidence float64) (varValue, cvar float64) {
	sorted := sortedCopy(returns)

	percentile := 1.0 - confidence
	idx := int(math.Floor(percentile * float64(len(sorted))))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}

	// VaR = 손실을 양수로 표현
	if sorted[idx] < 0 {
		varValue = -sorted[idx]
	}

	// CVaR (Expected Shortfall): VaR 이하 구간의 평균 손실
	var sum float64
	count := 0
	for i := 0; i <= idx && i < len(sorted); i++ {
		sum += sorted[i]
		count++
	}
	if count > 0 {
		if avg := sum / float64(count); avg < 0 {
			cvar = -avg
		}
	}
	return varValue, cvar
}

// parametricVaR normal-distribution quantile: mean - z·σ
func parametricVaR(returns []float64, confidence float64) (varValue, cvar float64) {
	mean := Mean(returns)
	stdDev := StdDev(returns)

	z := NormInv(confidence)

	// (1-c) 분위수 = mean - z·σ, 손실 양수 규약으로 뒤집음
	if q := mean - z*stdDev; q < 0 {
		varValue = -q
	}

	// Parametric CVaR: 정규분포 tail 기댓값
	// E[loss | loss > VaR] = σ·φ(z)/(1-c) - mean
	if c := stdDev*NormPDF(z)/(1-confidence) - mean; c > varValue {
		cvar = c
	} else {
		cvar = varValue
	}
	return varValue, cvar
}

// =============================================================================
// Normal Distribution Helpers
// =============================================================================

// NormInv 정규분포 역함수 (Quantile Function)
// Beasley-Springer-Moro approximation
func NormInv(p float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}

	// 일반적인 신뢰수준에 대한 빠른 반환
	switch p {
	case 0.99:
		return 2.326
	case 0.95:
		return 1.645
	case 0.90:
		return 1.282
	case 0.975:
		return 1.96
	}

	a := []float64{
		-3.969683028665376e+01,
		2.209460984245205e+02,
		-2.759285104469687e+02,
		1.383577518672690e+02,
		-3.066479806614716e+01,
		2.506628277459239e+00,
	}
	b := []float64{
		-5.447609879822406e+01,
		1.615858368580409e+02,
		-1.556989798598866e+02,
		6.680131188771972e+01,
		-1.328068155288572e+01,
	}
	c := []float64{
		-7.784894002430293e-03,
		-3.223964580411365e-01,
		-2.400758277161838e+00,
		-2.549732539343734e+00,
		4.374664141464968e+00,
		2.938163982698783e+00,
	}
	d := []float64{
		7.784695709041462e-03,
		3.224671290700398e-01,
		2.445134137142996e+00,
		3.754408661907416e+00,
	}

	pLow := 0.02425
	pHigh := 1 - pLow

	var q, r float64

	switch {
	case p < pLow:
		q = math.Sqrt(-2 * math.Log(p))
		return (((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	case p <= pHigh:
		q = p - 0.5
		r = q * q
		return (((((a[0]*r+a[1])*r+a[2])*r+a[3])*r+a[4])*r + a[5]) * q /
			(((((b[0]*r+b[1])*r+b[2])*r+b[3])*r+b[4])*r + 1)
	default:
		q = math.Sqrt(-2 * math.Log(1-p))
		return -(((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	}
}

// NormPDF 정규분포 확률밀도함수
func NormPDF(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}
