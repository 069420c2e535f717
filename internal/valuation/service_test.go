package valuation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/aurelius/internal/marketdata"
	"github.com/wonny/aurelius/pkg/logger"
)

// fakeProvider serves canned adapter responses
type fakeProvider struct {
	info       *marketdata.StockInfo
	financials []marketdata.FiscalYear
	infoErr    error
	finErr     error
}

func (f *fakeProvider) GetStockInfo(_ context.Context, _ string) (*marketdata.StockInfo, error) {
	return f.info, f.infoErr
}

func (f *fakeProvider) GetDailyCandles(_ context.Context, _, _ string) ([]marketdata.Candle, error) {
	return nil, nil
}

func (f *fakeProvider) GetFinancials(_ context.Context, _ string) ([]marketdata.FiscalYear, error) {
	return f.financials, f.finErr
}

func appleLikeProvider() *fakeProvider {
	return &fakeProvider{
		info: &marketdata.StockInfo{
			Ticker:            "AAPL",
			CurrentPrice:      195.5,
			SharesOutstanding: 15.4e9,
			MarketCap:         3000e9,
			Beta:              1.25,
			TotalDebt:         100e9,
			TotalCash:         60e9,
		},
		financials: []marketdata.FiscalYear{
			{
				Year:              2024,
				Revenue:           marketdata.F(391e9),
				OperatingIncome:   marketdata.F(123e9),
				InterestExpense:   marketdata.F(3.9e9),
				OperatingCashFlow: marketdata.F(118e9),
				CapEx:             marketdata.F(9.4e9),
			},
			{
				Year:            2023,
				Revenue:         marketdata.F(383e9),
				OperatingIncome: marketdata.F(114e9),
			},
		},
	}
}

func TestServiceValuate(t *testing.T) {
	svc := NewService(appleLikeProvider(), logger.NewNop())

	result, err := svc.Valuate(context.Background(), "AAPL", Options{})
	require.NoError(t, err)

	assert.Equal(t, "AAPL", result.Ticker)
	assert.Greater(t, result.EnterpriseValue, 0.0)
	assert.Greater(t, result.IntrinsicPerShare, 0.0)
	assert.InDelta(t, result.PVOfFCFs+result.PVOfTerminalValue, result.EnterpriseValue, 1e-6)
	assert.InDelta(t, 1.0, result.WACC.EquityWeight+result.WACC.DebtWeight, 1e-9)
	assert.Contains(t, []Verdict{VerdictUndervalued, VerdictOvervalued, VerdictFairlyValued}, result.Verdict)
}

func TestServiceValuateWACCOverride(t *testing.T) {
	svc := NewService(appleLikeProvider(), logger.NewNop())

	result, err := svc.Valuate(context.Background(), "AAPL", Options{WACCOverride: 0.12})
	require.NoError(t, err)
	assert.InDelta(t, 0.12, result.WACC.WACC, 1e-12)
}

func TestServiceValuateTerminalGrowthGuard(t *testing.T) {
	svc := NewService(appleLikeProvider(), logger.NewNop())

	// Force the discount rate below the terminal growth
	_, err := svc.Valuate(context.Background(), "AAPL", Options{
		WACCOverride:   0.02,
		TerminalGrowth: 0.025,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTerminalGrowth)
}

func TestServiceValuateFetchFailure(t *testing.T) {
	provider := appleLikeProvider()
	provider.infoErr = errors.New("upstream down")
	svc := NewService(provider, logger.NewNop())

	_, err := svc.Valuate(context.Background(), "AAPL", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AAPL")
}

func TestServiceValuateNoStatements(t *testing.T) {
	provider := appleLikeProvider()
	provider.financials = nil
	svc := NewService(provider, logger.NewNop())

	_, err := svc.Valuate(context.Background(), "AAPL", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoRevenue)
}

func TestServiceSensitivity(t *testing.T) {
	svc := NewService(appleLikeProvider(), logger.NewNop())

	grid, err := svc.Sensitivity(context.Background(), "AAPL", 0.08, 0.12, 0.015, 0.035, 5)
	require.NoError(t, err)

	assert.Len(t, grid.WACCs, 5)
	assert.Len(t, grid.Growths, 5)
	assert.Len(t, grid.PerShare, 5)
	for _, row := range grid.PerShare {
		assert.Len(t, row, 5)
	}
	assert.Greater(t, grid.BaseWACC, 0.0)
}
