package marketdata

import (
	"context"
	"errors"
	"time"
)

// =============================================================================
// Market Data Types
// =============================================================================

var (
	// ErrNoData upstream returned no rows for the ticker
	ErrNoData = errors.New("no market data")
	// ErrInvalidPeriod unknown lookback period string
	ErrInvalidPeriod = errors.New("invalid period")
)

// StockInfo point-in-time market data for a ticker
// ⭐ SSOT: 시가총액/주식수/부채 스냅샷은 이 구조체로만 전달
type StockInfo struct {
	Ticker            string  `json:"ticker"`
	Name              string  `json:"name"`
	Currency          string  `json:"currency"`
	CurrentPrice      float64 `json:"current_price"`
	SharesOutstanding float64 `json:"shares_outstanding"`
	MarketCap         float64 `json:"market_cap"`
	Beta              float64 `json:"beta"` // 0이면 미제공 (소비자가 1.0으로 대체)
	TotalDebt         float64 `json:"total_debt"`
	TotalCash         float64 `json:"total_cash"`
}

// Candle daily OHLCV bar
type Candle struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// FiscalYear one fiscal year of statement line items
// 라인 아이템은 소스에 없을 수 있으므로 전부 optional (*float64)
// 문자열 키 동적 접근 대신 명시적 필드로 결측을 드러냄
type FiscalYear struct {
	Year              int      `json:"year"`
	Revenue           *float64 `json:"revenue,omitempty"`
	GrossProfit       *float64 `json:"gross_profit,omitempty"`
	OperatingIncome   *float64 `json:"operating_income,omitempty"`
	NetIncome         *float64 `json:"net_income,omitempty"`
	InterestExpense   *float64 `json:"interest_expense,omitempty"`
	OperatingCashFlow *float64 `json:"operating_cash_flow,omitempty"`
	CapEx             *float64 `json:"capex,omitempty"`
}

// Provider is the market data adapter consumed by the calculation engines
// ⭐ SSOT: 외부 시장 데이터 접근은 이 인터페이스를 통해서만
type Provider interface {
	// GetStockInfo returns the current market snapshot for a ticker
	GetStockInfo(ctx context.Context, ticker string) (*StockInfo, error)

	// GetDailyCandles returns daily OHLCV bars for a lookback period
	// period: 1m, 3m, 6m, 1y, 2y, 5y
	GetDailyCandles(ctx context.Context, ticker string, period string) ([]Candle, error)

	// GetFinancials returns annual statement data, most recent fiscal year first
	GetFinancials(ctx context.Context, ticker string) ([]FiscalYear, error)
}

// validPeriods maps API period strings to Yahoo chart ranges
var validPeriods = map[string]string{
	"1m": "1mo",
	"3m": "3mo",
	"6m": "6mo",
	"1y": "1y",
	"2y": "2y",
	"5y": "5y",
}

// ChartRange translates a period string into the upstream range parameter
func ChartRange(period string) (string, error) {
	r, ok := validPeriods[period]
	if !ok {
		return "", ErrInvalidPeriod
	}
	return r, nil
}

// F is a shorthand for building optional line items
func F(v float64) *float64 {
	return &v
}
