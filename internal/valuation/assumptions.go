package valuation

// Assumptions are the model inputs every valuation run receives explicitly.
// 전역 상수 대신 호출마다 주입 → 테스트에서 가정을 바꿔 결정적으로 검증 가능
type Assumptions struct {
	RiskFreeRate      float64 `json:"risk_free_rate"`
	MarketRiskPremium float64 `json:"market_risk_premium"`
	TaxRate           float64 `json:"tax_rate"`
	TerminalGrowth    float64 `json:"terminal_growth"`

	// DebtSpread is added to the risk-free rate when cost of debt
	// cannot be derived from interest expense.
	DebtSpread float64 `json:"debt_spread"`

	// DefaultBeta is used when the market snapshot carries no beta.
	DefaultBeta float64 `json:"default_beta"`

	// DefaultCAGR applies when fewer than 2 positive revenue points exist.
	DefaultCAGR float64 `json:"default_cagr"`

	// DefaultConversionRatio FCF/영업이익 비율의 폴백값
	// 과거 데이터에서 도출 불가능할 때만 사용
	DefaultConversionRatio float64 `json:"default_conversion_ratio"`

	// GrowthMultipliers scale the base CAGR per projection year,
	// GrowthCaps bound the result. Both must be at least ProjectionYears long.
	// TODO: 멀티플라이어/캡 스케줄은 휴리스틱. 프로덕트 확정 전까지 기본값 유지
	GrowthMultipliers []float64 `json:"growth_multipliers"`
	GrowthCaps        []float64 `json:"growth_caps"`

	// Margin drift per projected year, in percentage points of revenue.
	MarginCompression float64 `json:"margin_compression"` // 고마진(>30%) 기업: 연 -1.0pt
	MarginExpansion   float64 `json:"margin_expansion"`   // 그 외: 연 +0.5pt
	HighMarginLevel   float64 `json:"high_margin_level"`

	ProjectionYears int `json:"projection_years"`
}

// DefaultAssumptions returns the standard model inputs
// ⭐ SSOT: 밸류에이션 기본 가정은 여기서만 정의
func DefaultAssumptions() Assumptions {
	return Assumptions{
		RiskFreeRate:           0.045,
		MarketRiskPremium:      0.055,
		TaxRate:                0.21,
		TerminalGrowth:         0.025,
		DebtSpread:             0.02,
		DefaultBeta:            1.0,
		DefaultCAGR:            0.10,
		DefaultConversionRatio: 0.80,
		GrowthMultipliers:      []float64{1.0, 0.85, 0.70, 0.55, 0.40},
		GrowthCaps:             []float64{0.30, 0.25, 0.20, 0.15, 0.10},
		MarginCompression:      -0.01,
		MarginExpansion:        0.005,
		HighMarginLevel:        0.30,
		ProjectionYears:        5,
	}
}
