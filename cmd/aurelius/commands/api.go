package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/aurelius/internal/api"
	"github.com/wonny/aurelius/internal/api/handlers"
	"github.com/wonny/aurelius/internal/risk"
	"github.com/wonny/aurelius/internal/scheduler"
	"github.com/wonny/aurelius/internal/scheduler/jobs"
	"github.com/wonny/aurelius/internal/valuation"
	"github.com/wonny/aurelius/internal/watchlist"
	"github.com/wonny/aurelius/pkg/database"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- DCF 밸류에이션 / 리스크 지표 엔드포인트 제공
- (DB 설정 시) 관심종목 관리 + 캐시 프리워밍 스케줄러

Endpoints:
  GET  /health                             - Health check
  GET  /api/valuation/{ticker}/dcf         - DCF 내재가치
  GET  /api/valuation/{ticker}/sensitivity - WACC x 성장률 민감도
  GET  /api/risk/{ticker}/var              - VaR / CVaR
  GET  /api/risk/{ticker}/ratios           - Sharpe / Sortino
  GET  /api/risk/{ticker}/drawdown         - 최대 낙폭
  GET  /api/risk/{ticker}/volatility       - 롤링 변동성
  GET  /api/risk/{ticker}/beta             - Beta / Alpha
  GET  /api/risk/{ticker}/montecarlo       - Monte Carlo 시뮬레이션
  GET  /api/risk/correlations              - 상관관계 행렬
  GET  /api/market/{ticker}/quote          - 시세 조회
  GET  /api/watchlist                      - 관심종목 (DB 필요)

Example:
  go run ./cmd/aurelius api
  go run ./cmd/aurelius api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT env)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Aurelius API Server ===")

	// 1. Load config + logger
	cfg, log, err := setup()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 2. Build market data provider (Yahoo + statements, Redis cache if enabled)
	provider, redisClient, err := buildProvider(cfg, log)
	if err != nil {
		return fmt.Errorf("build provider: %w", err)
	}
	defer redisClient.Close()

	// 3. Create calculation services
	valuationSvc := valuation.NewService(provider, log)
	riskSvc := risk.NewService(provider, log)

	// 4. Create handlers
	h := api.Handlers{
		Valuation: handlers.NewValuationHandler(valuationSvc, log),
		Risk:      handlers.NewRiskHandler(riskSvc, log),
		Market:    handlers.NewMarketHandler(provider, log),
	}

	// 5. Connect to database (optional: watchlist + scheduler need it)
	if err := cfg.RequireDatabase(); err == nil {
		db, dbErr := database.New(cfg)
		if dbErr != nil {
			return fmt.Errorf("connect to database: %w", dbErr)
		}
		defer db.Close()

		log.Info("Connected to database")

		repo := watchlist.NewRepository(db.Pool)
		h.Watchlist = handlers.NewWatchlistHandler(repo, log)

		// 6. Scheduler: pre-warm the cache for watchlisted tickers
		sched := scheduler.New(log)
		if schedErr := sched.AddJob(jobs.NewPrewarmJob(provider, repo, log)); schedErr != nil {
			return fmt.Errorf("register prewarm job: %w", schedErr)
		}
		sched.Start()
		defer sched.Stop()
	} else {
		log.Warn("DATABASE_URL not set, watchlist endpoints and scheduler disabled")
	}

	// 7. Create router + server
	router := api.NewRouter(h, log)
	server := api.New(cfg, log, router)

	// 8. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/valuation/{ticker}/dcf")
	fmt.Println("  GET  /api/valuation/{ticker}/sensitivity")
	fmt.Println("  GET  /api/risk/{ticker}/var")
	fmt.Println("  GET  /api/risk/{ticker}/ratios")
	fmt.Println("  GET  /api/risk/{ticker}/drawdown")
	fmt.Println("  GET  /api/risk/{ticker}/volatility")
	fmt.Println("  GET  /api/risk/{ticker}/beta")
	fmt.Println("  GET  /api/risk/{ticker}/montecarlo")
	fmt.Println("  GET  /api/risk/correlations")
	fmt.Println("  GET  /api/market/{ticker}/quote")
	if h.Watchlist != nil {
		fmt.Println("  GET  /api/watchlist")
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
