package risk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/aurelius/internal/marketdata"
	"github.com/wonny/aurelius/pkg/logger"
)

// fakeProvider serves canned candles per ticker
type fakeProvider struct {
	candles map[string][]marketdata.Candle
}

func (f *fakeProvider) GetStockInfo(_ context.Context, _ string) (*marketdata.StockInfo, error) {
	return nil, marketdata.ErrNoData
}

func (f *fakeProvider) GetDailyCandles(_ context.Context, ticker, _ string) ([]marketdata.Candle, error) {
	c, ok := f.candles[ticker]
	if !ok {
		return nil, marketdata.ErrNoData
	}
	return c, nil
}

func (f *fakeProvider) GetFinancials(_ context.Context, _ string) ([]marketdata.FiscalYear, error) {
	return nil, marketdata.ErrNoData
}

func trendingCandles(n int, start, step float64) []marketdata.Candle {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	candles := make([]marketdata.Candle, n)
	price := start
	for i := range candles {
		candles[i] = marketdata.Candle{Date: base.AddDate(0, 0, i), Close: price}
		price += step
		if i%7 == 3 {
			price -= 2 * step // occasional pullback
		}
	}
	return candles
}

func testService() *Service {
	provider := &fakeProvider{candles: map[string][]marketdata.Candle{
		"AAPL": trendingCandles(120, 150, 0.5),
		"SPY":  trendingCandles(120, 400, 0.8),
		"MSFT": trendingCandles(120, 300, 0.6),
	}}
	return NewService(provider, logger.NewNop())
}

func TestServiceVaR(t *testing.T) {
	svc := testService()

	result, err := svc.VaR(context.Background(), "AAPL", "1y", 0.95, 1, MethodHistorical)
	require.NoError(t, err)

	assert.Equal(t, "AAPL", result.Ticker)
	assert.GreaterOrEqual(t, result.CVaR, result.VaR)
	assert.Equal(t, 119, result.Observations)
}

func TestServiceVaRUnknownTicker(t *testing.T) {
	svc := testService()

	_, err := svc.VaR(context.Background(), "NOPE", "1y", 0.95, 1, MethodHistorical)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOPE")
}

func TestServiceRatiosAndDrawdown(t *testing.T) {
	svc := testService()

	ratios, err := svc.Ratios(context.Background(), "AAPL", "1y", 0.045)
	require.NoError(t, err)
	assert.NotZero(t, ratios.AnnualizedVolatility)

	dd, err := svc.MaxDrawdown(context.Background(), "AAPL", "1y")
	require.NoError(t, err)
	assert.LessOrEqual(t, dd.MaxDrawdown, 0.0)
}

func TestServiceBetaAlphaDefaultBenchmark(t *testing.T) {
	svc := testService()

	result, err := svc.BetaAlpha(context.Background(), "AAPL", "", "1y", 0.045)
	require.NoError(t, err)
	assert.Equal(t, DefaultBenchmark, result.Benchmark)
	assert.GreaterOrEqual(t, result.Observations, MinAlignedObservations)
}

func TestServiceCorrelations(t *testing.T) {
	svc := testService()

	matrix, err := svc.Correlations(context.Background(), []string{"AAPL", "MSFT", "SPY"}, "1y")
	require.NoError(t, err)
	assert.Len(t, matrix.Tickers, 3)
	for i := range matrix.Matrix {
		assert.Equal(t, 1.0, matrix.Matrix[i][i])
	}

	_, err = svc.Correlations(context.Background(), []string{"AAPL"}, "1y")
	assert.ErrorIs(t, err, ErrTooFewTickers)
}

func TestServiceMonteCarlo(t *testing.T) {
	svc := testService()

	cfg := DefaultMonteCarloConfig()
	cfg.NumSimulations = 1000
	cfg.Seed = 99

	result, err := svc.MonteCarlo(context.Background(), "AAPL", "1y", cfg)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", result.Ticker)
	assert.NotEmpty(t, result.RunID)
}
