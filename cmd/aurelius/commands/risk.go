package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/aurelius/internal/risk"
	"github.com/wonny/aurelius/internal/valuation"
)

// riskCmd represents the risk command
var riskCmd = &cobra.Command{
	Use:   "risk [ticker]",
	Short: "리스크 지표 계산",
	Long: `일간 수익률 기반 리스크 지표를 한번에 계산합니다.

이 명령어는:
- VaR / CVaR (historical + parametric)
- Sharpe / Sortino (연환산)
- 최대 낙폭 (MDD) + 회복 여부
- 롤링 변동성
- 벤치마크 대비 Beta / Alpha

Example:
  go run ./cmd/aurelius risk AAPL
  go run ./cmd/aurelius risk TSLA --period 2y --benchmark QQQ`,
	Args: cobra.ExactArgs(1),
	RunE: runRisk,
}

var (
	riskPeriod     string
	riskBenchmark  string
	riskConfidence float64
)

func init() {
	rootCmd.AddCommand(riskCmd)

	// Flags
	riskCmd.Flags().StringVar(&riskPeriod, "period", "1y", "조회 기간 (1m, 3m, 6m, 1y, 2y, 5y)")
	riskCmd.Flags().StringVar(&riskBenchmark, "benchmark", risk.DefaultBenchmark, "베타 계산 벤치마크")
	riskCmd.Flags().Float64Var(&riskConfidence, "confidence", 0.95, "VaR 신뢰수준")
}

func runRisk(cmd *cobra.Command, args []string) error {
	ticker := strings.ToUpper(args[0])
	fmt.Printf("=== Risk Metrics: %s (%s) ===\n\n", ticker, riskPeriod)

	ctx := cmd.Context()

	// 의존성 초기화
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	provider, redisClient, err := buildProvider(cfg, log)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	svc := risk.NewService(provider, log)
	riskFree := valuation.DefaultAssumptions().RiskFreeRate

	// VaR: historical과 parametric 둘 다
	fmt.Println("── Value at Risk ───────────────────────")
	for _, method := range []risk.VaRMethod{risk.MethodHistorical, risk.MethodParametric} {
		result, err := svc.VaR(ctx, ticker, riskPeriod, riskConfidence, 1, method)
		if err != nil {
			return fmt.Errorf("var %s: %w", ticker, err)
		}
		fmt.Printf("  %-11s VaR %.0f%% : %5.2f%%   CVaR: %5.2f%%   (n=%d)\n",
			result.Method, result.Confidence*100, result.VaR*100, result.CVaR*100, result.Observations)
	}

	// Sharpe / Sortino
	ratios, err := svc.Ratios(ctx, ticker, riskPeriod, riskFree)
	if err != nil {
		return fmt.Errorf("ratios %s: %w", ticker, err)
	}
	fmt.Println("\n── Risk-adjusted Returns ───────────────")
	fmt.Printf("  Annualized return: %6.1f%%\n", ratios.AnnualizedReturn*100)
	fmt.Printf("  Annualized vol   : %6.1f%%\n", ratios.AnnualizedVolatility*100)
	fmt.Printf("  Sharpe           : %6.2f (%s)\n", ratios.Sharpe, ratios.SharpeGrade)
	fmt.Printf("  Sortino          : %6.2f (%s)\n", ratios.Sortino, ratios.SortinoGrade)

	// 최대 낙폭
	dd, err := svc.MaxDrawdown(ctx, ticker, riskPeriod)
	if err != nil {
		return fmt.Errorf("drawdown %s: %w", ticker, err)
	}
	fmt.Println("\n── Drawdown ────────────────────────────")
	fmt.Printf("  Max drawdown     : %6.1f%% (%s → %s)\n",
		dd.MaxDrawdown*100, dd.PeakDate.Format("2006-01-02"), dd.TroughDate.Format("2006-01-02"))
	if dd.Recovered {
		fmt.Printf("  Recovered        : %s (%d days)\n", dd.RecoveryDate.Format("2006-01-02"), dd.RecoveryDays)
	} else {
		fmt.Println("  Recovered        : not yet")
	}
	fmt.Printf("  Current drawdown : %6.1f%%\n", dd.CurrentDrawdown*100)

	// 롤링 변동성
	vol, err := svc.RollingVolatility(ctx, ticker, riskPeriod, risk.DefaultVolatilityWindow)
	if err != nil {
		return fmt.Errorf("volatility %s: %w", ticker, err)
	}
	fmt.Println("\n── Rolling Volatility ──────────────────")
	fmt.Printf("  Current (%dd)    : %6.1f%% (p%.0f of range %.1f%%–%.1f%%)\n",
		vol.Window, vol.Current*100, vol.PercentileRank, vol.Min*100, vol.Max*100)

	// Beta / Alpha
	beta, err := svc.BetaAlpha(ctx, ticker, riskBenchmark, riskPeriod, riskFree)
	if err != nil {
		return fmt.Errorf("beta %s: %w", ticker, err)
	}
	fmt.Println("\n── Beta / Alpha ────────────────────────")
	fmt.Printf("  Benchmark        : %s\n", beta.Benchmark)
	fmt.Printf("  Beta             : %6.2f\n", beta.Beta)
	fmt.Printf("  Alpha (ann.)     : %6.2f%%\n", beta.Alpha*100)
	fmt.Printf("  R²               : %6.2f (n=%d)\n", beta.RSquared, beta.Observations)

	return nil
}
