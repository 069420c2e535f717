package valuation

import (
	"fmt"
	"math"
)

// =============================================================================
// Financial Projector
// =============================================================================

// ProjectFinancials builds the N-year forecast that drives the DCF.
//
// 성장률 미지정 시: 최근 양수 매출 2개로 CAGR 도출 → 감쇠 스케줄 적용
// 마진 미지정 시: 고마진 기업은 연간 압축, 그 외 완만한 확장
// FCF = 매출 × 영업마진 × 전환비율 (최근 연도의 FCF/영업이익 비율)
func ProjectFinancials(fin *HistoricalFinancials, a Assumptions, growthRates, marginTargets []float64) (*ProjectionSeries, error) {
	base, baseYear, err := latestRevenue(fin)
	if err != nil {
		return nil, err
	}

	years := a.ProjectionYears
	if years <= 0 {
		years = 5
	}

	cagr := historicalCAGR(fin, a.DefaultCAGR)

	if growthRates == nil {
		growthRates = scheduleGrowth(cagr, years, a)
	}
	if len(growthRates) < years {
		return nil, fmt.Errorf("need %d growth rates, got %d", years, len(growthRates))
	}

	if marginTargets == nil {
		marginTargets = scheduleMargins(fin, years, a)
	}
	if len(marginTargets) < years {
		return nil, fmt.Errorf("need %d margin targets, got %d", years, len(marginTargets))
	}

	ratio := conversionRatio(fin, a.DefaultConversionRatio)

	series := &ProjectionSeries{
		BaseYear:        baseYear,
		BaseRevenue:     base,
		BaseCAGR:        cagr,
		ConversionRatio: ratio,
		Years:           make([]ProjectedYear, 0, years),
	}

	revenue := base
	for i := 0; i < years; i++ {
		revenue *= 1 + growthRates[i]
		margin := marginTargets[i]
		opIncome := revenue * margin
		fcf := opIncome * ratio

		fcfMargin := 0.0
		if revenue != 0 {
			fcfMargin = fcf / revenue
		}

		series.Years = append(series.Years, ProjectedYear{
			Year:            baseYear + i + 1,
			GrowthRate:      growthRates[i],
			Revenue:         revenue,
			OperatingMargin: margin,
			OperatingIncome: opIncome,
			FCFMargin:       fcfMargin,
			FreeCashFlow:    fcf,
		})
	}

	return series, nil
}

// latestRevenue finds the most recent positive revenue figure
func latestRevenue(fin *HistoricalFinancials) (float64, int, error) {
	for _, y := range fin.Years {
		if y.HasRevenue && y.Revenue > 0 {
			return y.Revenue, y.Year, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: %s", ErrNoRevenue, fin.Ticker)
}

// historicalCAGR derives annual growth from the two most recent positive
// revenue points, annualized across the year gap.
// 양수 매출 2개 미만이면 기본값으로 대체
func historicalCAGR(fin *HistoricalFinancials, fallback float64) float64 {
	type point struct {
		year    int
		revenue float64
	}
	var recent, prior *point

	for i := range fin.Years {
		y := fin.Years[i]
		if !y.HasRevenue || y.Revenue <= 0 {
			continue
		}
		p := point{year: y.Year, revenue: y.Revenue}
		if recent == nil {
			recent = &p
		} else {
			prior = &p
			break
		}
	}

	if recent == nil || prior == nil || recent.year <= prior.year {
		return fallback
	}

	gap := float64(recent.year - prior.year)
	return math.Pow(recent.revenue/prior.revenue, 1/gap) - 1
}

// scheduleGrowth applies the declining-multiplier schedule with per-year caps
func scheduleGrowth(cagr float64, years int, a Assumptions) []float64 {
	rates := make([]float64, years)
	for i := 0; i < years; i++ {
		mult, cap := 1.0, math.Inf(1)
		if i < len(a.GrowthMultipliers) {
			mult = a.GrowthMultipliers[i]
		} else if n := len(a.GrowthMultipliers); n > 0 {
			mult = a.GrowthMultipliers[n-1]
		}
		if i < len(a.GrowthCaps) {
			cap = a.GrowthCaps[i]
		} else if n := len(a.GrowthCaps); n > 0 {
			cap = a.GrowthCaps[n-1]
		}
		rates[i] = math.Min(cagr*mult, cap)
	}
	return rates
}

// scheduleMargins drifts the latest operating margin year over year
func scheduleMargins(fin *HistoricalFinancials, years int, a Assumptions) []float64 {
	margin, ok := fin.LatestOperatingMargin()
	if !ok {
		margin = 0
	}

	drift := a.MarginExpansion
	if margin > a.HighMarginLevel {
		drift = a.MarginCompression
	}

	margins := make([]float64, years)
	for i := 0; i < years; i++ {
		margin += drift
		margins[i] = margin
	}
	return margins
}

// conversionRatio FCF/영업이익 비율, 최근 연도 둘 다 존재하고 0이 아닐 때만
func conversionRatio(fin *HistoricalFinancials, fallback float64) float64 {
	for _, y := range fin.Years {
		if y.HasFreeCashFlow && y.HasOperatingIncome && y.OperatingIncome != 0 && y.FreeCashFlow != 0 {
			return y.FreeCashFlow / y.OperatingIncome
		}
	}
	return fallback
}
