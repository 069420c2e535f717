package valuation

import (
	"context"
	"fmt"

	"github.com/wonny/aurelius/internal/marketdata"
	"github.com/wonny/aurelius/pkg/logger"
)

// =============================================================================
// Valuation Service
// =============================================================================

// Options tune a single valuation run. Zero value = model defaults.
type Options struct {
	// GrowthRates overrides the declining-multiplier schedule (len >= years)
	GrowthRates []float64
	// MarginTargets overrides the margin drift schedule (len >= years)
	MarginTargets []float64
	// TerminalGrowth overrides the default terminal growth when non-zero
	TerminalGrowth float64
	// WACCOverride forces the discount rate when non-zero (components keep
	// their CAPM-derived values for display)
	WACCOverride float64
}

// Service assembles valuation inputs from the market data adapter and runs
// the pure calculators.
// 계산 로직은 순수 함수로 분리, 서비스는 조립만 담당
type Service struct {
	provider marketdata.Provider
	logger   *logger.Logger
	defaults Assumptions
}

// NewService creates the valuation service
func NewService(provider marketdata.Provider, log *logger.Logger) *Service {
	return &Service{
		provider: provider,
		logger:   log,
		defaults: DefaultAssumptions(),
	}
}

// Assumptions returns the model defaults the service runs with
func (s *Service) Assumptions() Assumptions {
	return s.defaults
}

// Valuate runs the full DCF pipeline for one ticker
func (s *Service) Valuate(ctx context.Context, ticker string, opts Options) (*DCFValuation, error) {
	fin, err := s.fetchFinancials(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return s.valuate(fin, opts)
}

// WACC computes the CAPM discount-rate components for one ticker
func (s *Service) WACC(ctx context.Context, ticker string) (*WACCComponents, error) {
	fin, err := s.fetchFinancials(ctx, ticker)
	if err != nil {
		return nil, err
	}
	wacc := ComputeWACC(fin, s.defaults)
	return &wacc, nil
}

// Projection builds the forecast series for one ticker without discounting it
func (s *Service) Projection(ctx context.Context, ticker string, opts Options) (*ProjectionSeries, error) {
	fin, err := s.fetchFinancials(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return ProjectFinancials(fin, s.defaults, opts.GrowthRates, opts.MarginTargets)
}

// Sensitivity runs the valuation grid for one ticker.
// 프로젝션은 한 번만 계산하고 격자 전체에 재사용
func (s *Service) Sensitivity(ctx context.Context, ticker string, waccLo, waccHi, growthLo, growthHi float64, steps int) (*SensitivityGrid, error) {
	fin, err := s.fetchFinancials(ctx, ticker)
	if err != nil {
		return nil, err
	}

	wacc := ComputeWACC(fin, s.defaults)
	projection, err := ProjectFinancials(fin, s.defaults, nil, nil)
	if err != nil {
		return nil, err
	}

	grid, err := SensitivityAnalysis(fin, projection, waccLo, waccHi, growthLo, growthHi, steps)
	if err != nil {
		return nil, err
	}

	grid.BaseWACC = wacc.WACC
	if wacc.WACC > s.defaults.TerminalGrowth {
		grid.BaseValue = perShareAt(fin, projection, wacc.WACC, s.defaults.TerminalGrowth)
	}

	s.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"steps":  steps,
	}).Debug("Sensitivity grid computed")
	return grid, nil
}

// fetchFinancials pulls the snapshot + statements and normalizes them
func (s *Service) fetchFinancials(ctx context.Context, ticker string) (*HistoricalFinancials, error) {
	info, err := s.provider.GetStockInfo(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("stock info fetch failed for %s: %w", ticker, err)
	}

	statements, err := s.provider.GetFinancials(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("financials fetch failed for %s: %w", ticker, err)
	}

	return BuildHistoricalFinancials(info, statements), nil
}

// valuate runs the pure pipeline against prepared inputs
func (s *Service) valuate(fin *HistoricalFinancials, opts Options) (*DCFValuation, error) {
	wacc := ComputeWACC(fin, s.defaults)
	if opts.WACCOverride != 0 {
		wacc.WACC = opts.WACCOverride
	}

	projection, err := ProjectFinancials(fin, s.defaults, opts.GrowthRates, opts.MarginTargets)
	if err != nil {
		return nil, err
	}

	terminalGrowth := s.defaults.TerminalGrowth
	if opts.TerminalGrowth != 0 {
		terminalGrowth = opts.TerminalGrowth
	}

	result, err := CalculateDCF(fin, wacc, projection, terminalGrowth)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"ticker":    fin.Ticker,
		"wacc":      wacc.WACC,
		"per_share": result.IntrinsicPerShare,
		"verdict":   result.Verdict,
	}).Info("DCF valuation complete")
	return result, nil
}
