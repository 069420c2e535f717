package risk

import (
	"context"
	"fmt"

	"github.com/wonny/aurelius/internal/marketdata"
	"github.com/wonny/aurelius/pkg/logger"
)

// DefaultBenchmark 베타 계산 기본 벤치마크 (S&P 500)
const DefaultBenchmark = "SPY"

// =============================================================================
// Risk Service
// =============================================================================

// Service assembles return series from the market data adapter and runs the
// pure risk calculators. Each call is independent, no shared state.
// 한 종목의 실패가 다른 종목 계산에 영향을 주지 않음
type Service struct {
	provider marketdata.Provider
	logger   *logger.Logger
}

// NewService creates the risk analytics service
func NewService(provider marketdata.Provider, log *logger.Logger) *Service {
	return &Service{
		provider: provider,
		logger:   log,
	}
}

// fetchReturns pulls candles and derives the daily return series
func (s *Service) fetchReturns(ctx context.Context, ticker, period string) (*ReturnSeries, error) {
	candles, err := s.provider.GetDailyCandles(ctx, ticker, period)
	if err != nil {
		return nil, fmt.Errorf("candle fetch failed for %s: %w", ticker, err)
	}
	return NewReturnSeries(ticker, candles)
}

// VaR computes Value-at-Risk for one ticker over a lookback period
func (s *Service) VaR(ctx context.Context, ticker, period string, confidence float64, holdingPeriod int, method VaRMethod) (*VaRResult, error) {
	series, err := s.fetchReturns(ctx, ticker, period)
	if err != nil {
		return nil, err
	}

	result, err := CalculateVaR(series, confidence, holdingPeriod, method)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"ticker":     ticker,
		"method":     method,
		"confidence": confidence,
		"var":        result.VaR,
	}).Debug("VaR computed")
	return result, nil
}

// Ratios computes Sharpe/Sortino for one ticker
func (s *Service) Ratios(ctx context.Context, ticker, period string, riskFreeRate float64) (*RatioResult, error) {
	series, err := s.fetchReturns(ctx, ticker, period)
	if err != nil {
		return nil, err
	}
	return CalculateRatios(series, riskFreeRate)
}

// MaxDrawdown computes the drawdown profile from raw prices
func (s *Service) MaxDrawdown(ctx context.Context, ticker, period string) (*DrawdownResult, error) {
	candles, err := s.provider.GetDailyCandles(ctx, ticker, period)
	if err != nil {
		return nil, fmt.Errorf("candle fetch failed for %s: %w", ticker, err)
	}
	return CalculateMaxDrawdown(ticker, candles)
}

// RollingVolatility computes windowed annualized volatility
func (s *Service) RollingVolatility(ctx context.Context, ticker, period string, window int) (*VolatilityResult, error) {
	series, err := s.fetchReturns(ctx, ticker, period)
	if err != nil {
		return nil, err
	}
	return CalculateRollingVolatility(series, window)
}

// BetaAlpha regresses a ticker against a benchmark.
// benchmark 빈 문자열이면 기본 벤치마크 사용
func (s *Service) BetaAlpha(ctx context.Context, ticker, benchmark, period string, riskFreeRate float64) (*BetaResult, error) {
	if benchmark == "" {
		benchmark = DefaultBenchmark
	}

	stock, err := s.fetchReturns(ctx, ticker, period)
	if err != nil {
		return nil, err
	}
	market, err := s.fetchReturns(ctx, benchmark, period)
	if err != nil {
		return nil, fmt.Errorf("benchmark %s: %w", benchmark, err)
	}

	return CalculateBetaAlpha(stock, market, riskFreeRate)
}

// Correlations builds the pairwise correlation matrix for N >= 2 tickers
func (s *Service) Correlations(ctx context.Context, tickers []string, period string) (*CorrelationMatrix, error) {
	if len(tickers) < 2 {
		return nil, ErrTooFewTickers
	}

	series := make([]*ReturnSeries, 0, len(tickers))
	for _, ticker := range tickers {
		rs, err := s.fetchReturns(ctx, ticker, period)
		if err != nil {
			return nil, err
		}
		series = append(series, rs)
	}

	return CalculateCorrelationMatrix(series)
}

// MonteCarlo runs the configured simulation for one ticker
func (s *Service) MonteCarlo(ctx context.Context, ticker, period string, config MonteCarloConfig) (*MonteCarloResult, error) {
	series, err := s.fetchReturns(ctx, ticker, period)
	if err != nil {
		return nil, err
	}

	result, err := NewMonteCarloSimulator(config).Simulate(series)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"run_id": result.RunID,
		"sims":   config.NumSimulations,
	}).Debug("Monte Carlo simulation complete")
	return result, nil
}
