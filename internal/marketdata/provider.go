package marketdata

import (
	"context"

	"github.com/wonny/aurelius/pkg/redis"
)

// Service implements Provider by combining the Yahoo client (quotes, candles)
// with the statement scraper (annual financials).
type Service struct {
	yahoo      *YahooClient
	statements *StatementsClient
}

// NewService creates the combined market data provider
func NewService(yahoo *YahooClient, statements *StatementsClient) *Service {
	return &Service{
		yahoo:      yahoo,
		statements: statements,
	}
}

// GetStockInfo returns the current market snapshot for a ticker
func (s *Service) GetStockInfo(ctx context.Context, ticker string) (*StockInfo, error) {
	return s.yahoo.FetchStockInfo(ctx, ticker)
}

// GetDailyCandles returns daily OHLCV bars for a lookback period
func (s *Service) GetDailyCandles(ctx context.Context, ticker string, period string) ([]Candle, error) {
	return s.yahoo.FetchDailyCandles(ctx, ticker, period)
}

// GetFinancials returns annual statement data, most recent fiscal year first
func (s *Service) GetFinancials(ctx context.Context, ticker string) ([]FiscalYear, error) {
	return s.statements.FetchFinancials(ctx, ticker)
}

// =============================================================================
// Cached Provider
// =============================================================================

// CachedProvider wraps a Provider with a Redis read-through cache
// ⭐ SSOT: 시장 데이터 캐싱 정책(TTL)은 여기서만 결정
type CachedProvider struct {
	inner Provider
	cache *redis.Cache
}

// NewCachedProvider wraps a provider with the cache
func NewCachedProvider(inner Provider, cache *redis.Cache) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		cache: cache,
	}
}

// GetStockInfo returns the cached snapshot or fetches a fresh one
func (p *CachedProvider) GetStockInfo(ctx context.Context, ticker string) (*StockInfo, error) {
	var info StockInfo
	err := p.cache.GetOrSet(ctx, redis.QuoteKey(ticker), &info, redis.TTLQuote, func() (interface{}, error) {
		return p.inner.GetStockInfo(ctx, ticker)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// GetDailyCandles returns cached candles or fetches fresh ones
func (p *CachedProvider) GetDailyCandles(ctx context.Context, ticker string, period string) ([]Candle, error) {
	var candles []Candle
	err := p.cache.GetOrSet(ctx, redis.OHLCVKey(ticker, period), &candles, redis.TTLOHLCV, func() (interface{}, error) {
		return p.inner.GetDailyCandles(ctx, ticker, period)
	})
	if err != nil {
		return nil, err
	}
	return candles, nil
}

// GetFinancials returns cached statements or fetches fresh ones
func (p *CachedProvider) GetFinancials(ctx context.Context, ticker string) ([]FiscalYear, error) {
	var years []FiscalYear
	err := p.cache.GetOrSet(ctx, redis.StatementsKey(ticker), &years, redis.TTLStatements, func() (interface{}, error) {
		return p.inner.GetFinancials(ctx, ticker)
	})
	if err != nil {
		return nil, err
	}
	return years, nil
}
