package commands

import (
	"github.com/wonny/aurelius/internal/marketdata"
	"github.com/wonny/aurelius/pkg/config"
	"github.com/wonny/aurelius/pkg/httputil"
	"github.com/wonny/aurelius/pkg/logger"
	"github.com/wonny/aurelius/pkg/redis"
)

// buildProvider assembles the market data chain shared by every command:
// HTTP client → Yahoo/statement clients → provider → optional Redis cache.
// ⭐ SSOT: 데이터 조립 순서는 여기서만
func buildProvider(cfg *config.Config, log *logger.Logger) (marketdata.Provider, *redis.Client, error) {
	httpClient := httputil.New(log).
		WithRateLimit(cfg.Yahoo.RateLimit, cfg.Yahoo.Burst)

	yahoo := marketdata.NewYahooClient(cfg, httpClient, log)
	statements := marketdata.NewStatementsClient(cfg, httpClient, log)

	var provider marketdata.Provider = marketdata.NewService(yahoo, statements)

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	if redisClient.Enabled() {
		provider = marketdata.NewCachedProvider(provider, redis.NewCache(redisClient, "aurelius"))
		log.Info("Market data cache enabled")
	}

	return provider, redisClient, nil
}

// setup loads config and builds the logger, honoring the verbose flag
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, logger.New(cfg), nil
}
