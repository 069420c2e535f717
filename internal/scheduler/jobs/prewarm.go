package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/aurelius/internal/marketdata"
	"github.com/wonny/aurelius/internal/watchlist"
	"github.com/wonny/aurelius/pkg/logger"
)

// PrewarmJob refreshes the market data cache for every watchlisted ticker
// before US market open, so the first valuation of the day hits warm data.
// ⭐ SSOT: 캐시 프리워밍 스케줄은 이 Job에서만
type PrewarmJob struct {
	provider marketdata.Provider
	repo     *watchlist.Repository
	logger   *logger.Logger

	// Periods to warm for the risk endpoints
	periods []string
}

// NewPrewarmJob creates the cache pre-warm job
func NewPrewarmJob(provider marketdata.Provider, repo *watchlist.Repository, log *logger.Logger) *PrewarmJob {
	return &PrewarmJob{
		provider: provider,
		repo:     repo,
		logger:   log,
		periods:  []string{"1y"},
	}
}

// Name returns the job name
func (j *PrewarmJob) Name() string {
	return "cache_prewarm"
}

// Schedule returns the cron schedule (08:30 ET, before US market open)
func (j *PrewarmJob) Schedule() string {
	return "0 30 8 * * 1-5"
}

// Run warms quotes, candles and financials for every watchlisted ticker.
// 티커 하나의 실패가 나머지 프리워밍을 막지 않음
func (j *PrewarmJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	entries, err := j.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list watchlist: %w", err)
	}
	if len(entries) == 0 {
		j.logger.Debug("Watchlist empty, nothing to prewarm")
		return nil
	}

	failures := 0
	for _, entry := range entries {
		if err := j.warmTicker(ctx, entry.Ticker); err != nil {
			failures++
			j.logger.WithError(err).WithField("ticker", entry.Ticker).Warn("Prewarm failed for ticker")
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"tickers":  len(entries),
		"failures": failures,
	}).Info("Cache prewarm complete")

	if failures == len(entries) {
		return fmt.Errorf("prewarm failed for all %d tickers", failures)
	}
	return nil
}

// warmTicker pulls everything the valuation and risk endpoints need
func (j *PrewarmJob) warmTicker(ctx context.Context, ticker string) error {
	if _, err := j.provider.GetStockInfo(ctx, ticker); err != nil {
		return err
	}
	if _, err := j.provider.GetFinancials(ctx, ticker); err != nil {
		return err
	}
	for _, period := range j.periods {
		if _, err := j.provider.GetDailyCandles(ctx, ticker, period); err != nil {
			return err
		}
	}
	return nil
}
