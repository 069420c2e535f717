package valuation

// =============================================================================
// WACC Estimator (CAPM)
// =============================================================================

// ComputeWACC derives the blended discount rate from the market snapshot.
// ⭐ SSOT: 할인율 계산은 이 함수에서만
//
// 자기자본비용 = rf + β × MRP
// 타인자본비용 = 이자비용/총부채, 도출 불가 시 rf + 스프레드
// 가중치 = 시가총액 : 총부채 (둘 다 0이면 자기자본 100%)
func ComputeWACC(fin *HistoricalFinancials, a Assumptions) WACCComponents {
	beta := fin.Beta
	if beta == 0 {
		beta = a.DefaultBeta
	}

	costOfEquity := a.RiskFreeRate + beta*a.MarketRiskPremium

	costOfDebt := a.RiskFreeRate + a.DebtSpread
	if interest, ok := fin.LatestInterestExpense(); ok && fin.TotalDebt > 0 {
		costOfDebt = interest / fin.TotalDebt
	}

	totalValue := fin.MarketCap + fin.TotalDebt
	equityWeight, debtWeight := 1.0, 0.0
	if totalValue > 0 {
		equityWeight = fin.MarketCap / totalValue
		debtWeight = 1 - equityWeight
	}

	wacc := equityWeight*costOfEquity + debtWeight*costOfDebt*(1-a.TaxRate)

	return WACCComponents{
		RiskFreeRate:      a.RiskFreeRate,
		MarketRiskPremium: a.MarketRiskPremium,
		Beta:              beta,
		CostOfEquity:      costOfEquity,
		CostOfDebt:        costOfDebt,
		TaxRate:           a.TaxRate,
		EquityWeight:      equityWeight,
		DebtWeight:        debtWeight,
		WACC:              wacc,
	}
}
