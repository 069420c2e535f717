package valuation

import (
	"fmt"
	"math"
)

// =============================================================================
// DCF Valuation
// =============================================================================

// CalculateDCF discounts the projection and terminal value to an intrinsic
// per-share figure.
// ⭐ SSOT: 기업가치 → 주당가치 변환은 이 함수에서만
//
// 불변식: EnterpriseValue = ΣPV(FCF) + PV(터미널가치)
// WACC ≤ 터미널 성장률이면 고든 성장 공식이 발산 → 도메인 에러
func CalculateDCF(fin *HistoricalFinancials, wacc WACCComponents, projection *ProjectionSeries, terminalGrowth float64) (*DCFValuation, error) {
	if wacc.WACC <= terminalGrowth {
		return nil, fmt.Errorf("%w: wacc=%.4f growth=%.4f (%s)",
			ErrTerminalGrowth, wacc.WACC, terminalGrowth, fin.Ticker)
	}
	if len(projection.Years) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRevenue, fin.Ticker)
	}

	pvFCFs := discountCashFlows(projection, wacc.WACC)

	n := len(projection.Years)
	finalFCF := projection.Years[n-1].FreeCashFlow
	terminalValue := finalFCF * (1 + terminalGrowth) / (wacc.WACC - terminalGrowth)
	pvTerminal := terminalValue / math.Pow(1+wacc.WACC, float64(n))

	enterpriseValue := pvFCFs + pvTerminal
	netDebt := fin.TotalDebt - fin.TotalCash
	equityValue := enterpriseValue - netDebt

	perShare := 0.0
	if fin.SharesOutstanding > 0 {
		perShare = equityValue / fin.SharesOutstanding
	}

	upside := 0.0
	if fin.CurrentPrice > 0 {
		upside = (perShare - fin.CurrentPrice) / fin.CurrentPrice * 100
	}

	return &DCFValuation{
		Ticker:            fin.Ticker,
		WACC:              wacc,
		Projection:        projection,
		TerminalGrowth:    terminalGrowth,
		PVOfFCFs:          pvFCFs,
		TerminalValue:     terminalValue,
		PVOfTerminalValue: pvTerminal,
		EnterpriseValue:   enterpriseValue,
		NetDebt:           netDebt,
		EquityValue:       equityValue,
		IntrinsicPerShare: perShare,
		CurrentPrice:      fin.CurrentPrice,
		UpsidePct:         upside,
		Verdict:           classifyUpside(upside),
	}, nil
}

// discountCashFlows ΣFCF_i / (1+WACC)^i, i = 1..N
func discountCashFlows(projection *ProjectionSeries, wacc float64) float64 {
	pv := 0.0
	for i, y := range projection.Years {
		pv += y.FreeCashFlow / math.Pow(1+wacc, float64(i+1))
	}
	return pv
}

// classifyUpside ±10% 기준 3단계 판정
func classifyUpside(upsidePct float64) Verdict {
	switch {
	case upsidePct > 10:
		return VerdictUndervalued
	case upsidePct < -10:
		return VerdictOvervalued
	default:
		return VerdictFairlyValued
	}
}
