package valuation

import (
	"errors"
	"math"

	"github.com/wonny/aurelius/internal/marketdata"
)

// =============================================================================
// Valuation Types
// =============================================================================

var (
	// ErrNoRevenue historical statements carry no usable revenue figures
	ErrNoRevenue = errors.New("no revenue data")
	// ErrTerminalGrowth WACC must exceed terminal growth for Gordon growth
	ErrTerminalGrowth = errors.New("wacc must exceed terminal growth")
	// ErrBadGrid sensitivity grid parameters are unusable
	ErrBadGrid = errors.New("invalid sensitivity grid parameters")
)

// YearFinancials one historical fiscal year, normalized for valuation.
// FCF는 영업현금흐름 − |CapEx|로 파생 (소스마다 CapEx 부호가 달라 절대값 사용)
type YearFinancials struct {
	Year              int     `json:"year"`
	Revenue           float64 `json:"revenue"`
	OperatingIncome   float64 `json:"operating_income"`
	NetIncome         float64 `json:"net_income"`
	InterestExpense   float64 `json:"interest_expense"`
	OperatingCashFlow float64 `json:"operating_cash_flow"`
	CapEx             float64 `json:"capex"`
	FreeCashFlow      float64 `json:"free_cash_flow"`

	HasRevenue         bool `json:"-"`
	HasOperatingIncome bool `json:"-"`
	HasInterestExpense bool `json:"-"`
	HasFreeCashFlow    bool `json:"-"`
}

// HistoricalFinancials the full per-ticker valuation input: statement history
// (most recent fiscal year first) plus the point-in-time market snapshot.
// 요청마다 새로 구성, 불변으로 취급
type HistoricalFinancials struct {
	Ticker            string           `json:"ticker"`
	Years             []YearFinancials `json:"years"`
	CurrentPrice      float64          `json:"current_price"`
	SharesOutstanding float64          `json:"shares_outstanding"`
	MarketCap         float64          `json:"market_cap"`
	Beta              float64          `json:"beta"`
	TotalDebt         float64          `json:"total_debt"`
	TotalCash         float64          `json:"total_cash"`
}

// BuildHistoricalFinancials normalizes adapter records into valuation inputs
func BuildHistoricalFinancials(info *marketdata.StockInfo, statements []marketdata.FiscalYear) *HistoricalFinancials {
	years := make([]YearFinancials, 0, len(statements))
	for _, fy := range statements {
		y := YearFinancials{Year: fy.Year}

		if fy.Revenue != nil {
			y.Revenue = *fy.Revenue
			y.HasRevenue = true
		}
		if fy.OperatingIncome != nil {
			y.OperatingIncome = *fy.OperatingIncome
			y.HasOperatingIncome = true
		}
		if fy.NetIncome != nil {
			y.NetIncome = *fy.NetIncome
		}
		if fy.InterestExpense != nil {
			y.InterestExpense = math.Abs(*fy.InterestExpense)
			y.HasInterestExpense = true
		}
		if fy.OperatingCashFlow != nil {
			y.OperatingCashFlow = *fy.OperatingCashFlow
		}
		if fy.CapEx != nil {
			y.CapEx = math.Abs(*fy.CapEx)
		}
		if fy.OperatingCashFlow != nil && fy.CapEx != nil {
			y.FreeCashFlow = y.OperatingCashFlow - y.CapEx
			y.HasFreeCashFlow = true
		}

		years = append(years, y)
	}

	return &HistoricalFinancials{
		Ticker:            info.Ticker,
		Years:             years,
		CurrentPrice:      info.CurrentPrice,
		SharesOutstanding: info.SharesOutstanding,
		MarketCap:         info.MarketCap,
		Beta:              info.Beta,
		TotalDebt:         info.TotalDebt,
		TotalCash:         info.TotalCash,
	}
}

// LatestInterestExpense returns the most recent reported interest expense
func (h *HistoricalFinancials) LatestInterestExpense() (float64, bool) {
	for _, y := range h.Years {
		if y.HasInterestExpense {
			return y.InterestExpense, true
		}
	}
	return 0, false
}

// LatestOperatingMargin returns the most recent operating margin
func (h *HistoricalFinancials) LatestOperatingMargin() (float64, bool) {
	for _, y := range h.Years {
		if y.HasRevenue && y.HasOperatingIncome && y.Revenue != 0 {
			return y.OperatingIncome / y.Revenue, true
		}
	}
	return 0, false
}

// WACCComponents the CAPM-derived discount rate and its inputs
// 불변식: EquityWeight + DebtWeight == 1
type WACCComponents struct {
	RiskFreeRate      float64 `json:"risk_free_rate"`
	MarketRiskPremium float64 `json:"market_risk_premium"`
	Beta              float64 `json:"beta"`
	CostOfEquity      float64 `json:"cost_of_equity"`
	CostOfDebt        float64 `json:"cost_of_debt"`
	TaxRate           float64 `json:"tax_rate"`
	EquityWeight      float64 `json:"equity_weight"`
	DebtWeight        float64 `json:"debt_weight"`
	WACC              float64 `json:"wacc"`
}

// ProjectedYear one forecast year of the projection series
type ProjectedYear struct {
	Year            int     `json:"year"`
	GrowthRate      float64 `json:"growth_rate"`
	Revenue         float64 `json:"revenue"`
	OperatingMargin float64 `json:"operating_margin"`
	OperatingIncome float64 `json:"operating_income"`
	FCFMargin       float64 `json:"fcf_margin"`
	FreeCashFlow    float64 `json:"free_cash_flow"`
}

// ProjectionSeries the N-year forecast driving the DCF
type ProjectionSeries struct {
	BaseYear        int             `json:"base_year"`
	BaseRevenue     float64         `json:"base_revenue"`
	BaseCAGR        float64         `json:"base_cagr"`
	ConversionRatio float64         `json:"conversion_ratio"`
	Years           []ProjectedYear `json:"years"`
}

// Verdict three-way valuation call
type Verdict string

const (
	VerdictUndervalued  Verdict = "UNDERVALUED"
	VerdictOvervalued   Verdict = "OVERVALUED"
	VerdictFairlyValued Verdict = "FAIRLY VALUED"
)

// DCFValuation the final intrinsic-value output
type DCFValuation struct {
	Ticker              string            `json:"ticker"`
	WACC                WACCComponents    `json:"wacc"`
	Projection          *ProjectionSeries `json:"projection"`
	TerminalGrowth      float64           `json:"terminal_growth"`
	PVOfFCFs            float64           `json:"pv_of_fcfs"`
	TerminalValue       float64           `json:"terminal_value"`
	PVOfTerminalValue   float64           `json:"pv_of_terminal_value"`
	EnterpriseValue     float64           `json:"enterprise_value"`
	NetDebt             float64           `json:"net_debt"`
	EquityValue         float64           `json:"equity_value"`
	IntrinsicPerShare   float64           `json:"intrinsic_per_share"`
	CurrentPrice        float64           `json:"current_price"`
	UpsidePct           float64           `json:"upside_pct"`
	Verdict             Verdict           `json:"verdict"`
}

// SensitivityGrid per-share values across a WACC × terminal-growth lattice.
// WACC ≤ g인 셀은 터미널 가치 0 센티널로 채움 (그리드는 항상 완전히 렌더)
type SensitivityGrid struct {
	Ticker    string      `json:"ticker"`
	WACCs     []float64   `json:"waccs"`
	Growths   []float64   `json:"growths"`
	PerShare  [][]float64 `json:"per_share"`
	BaseWACC  float64     `json:"base_wacc"`
	BaseValue float64     `json:"base_value"`
}
