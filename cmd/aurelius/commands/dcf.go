package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/aurelius/internal/valuation"
)

// dcfCmd represents the dcf command
var dcfCmd = &cobra.Command{
	Use:   "dcf [ticker]",
	Short: "DCF 내재가치 계산",
	Long: `5년 FCF 추정 + 터미널 가치로 내재가치를 계산합니다.

이 명령어는:
- 재무제표/시세 조회 (Yahoo + stockanalysis)
- CAPM 기반 WACC 계산
- 5년 FCF 추정 → DCF 할인 → 주당 내재가치

Example:
  go run ./cmd/aurelius dcf AAPL
  go run ./cmd/aurelius dcf MSFT --terminal-growth 0.03
  go run ./cmd/aurelius dcf NVDA --wacc 0.11 --sensitivity`,
	Args: cobra.ExactArgs(1),
	RunE: runDCF,
}

var (
	dcfTerminalGrowth float64
	dcfWACC           float64
	dcfSensitivity    bool
)

func init() {
	rootCmd.AddCommand(dcfCmd)

	// Flags
	dcfCmd.Flags().Float64Var(&dcfTerminalGrowth, "terminal-growth", 0, "터미널 성장률 (기본: 0.025)")
	dcfCmd.Flags().Float64Var(&dcfWACC, "wacc", 0, "WACC 강제 지정 (기본: CAPM 계산값)")
	dcfCmd.Flags().BoolVar(&dcfSensitivity, "sensitivity", false, "WACC x 성장률 민감도 그리드 출력")
}

func runDCF(cmd *cobra.Command, args []string) error {
	ticker := strings.ToUpper(args[0])
	fmt.Printf("=== DCF Valuation: %s ===\n\n", ticker)

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

	svc := valuation.NewService(provider, log)

	// 밸류에이션 실행
	result, err := svc.Valuate(ctx, ticker, valuation.Options{
		TerminalGrowth: dcfTerminalGrowth,
		WACCOverride:   dcfWACC,
	})
	if err != nil {
		return fmt.Errorf("valuate %s: %w", ticker, err)
	}

	printValuation(result)

	if dcfSensitivity {
		fmt.Println()
		a := svc.Assumptions()
		grid, err := svc.Sensitivity(ctx, ticker,
			result.WACC.WACC-0.02, result.WACC.WACC+0.02,
			a.TerminalGrowth-0.01, a.TerminalGrowth+0.01, 5)
		if err != nil {
			return fmt.Errorf("sensitivity %s: %w", ticker, err)
		}
		printSensitivity(grid)
	}

	return nil
}

func printValuation(v *valuation.DCFValuation) {
	fmt.Println("── WACC ────────────────────────────────")
	fmt.Printf("  Risk-free rate   : %6.2f%%\n", v.WACC.RiskFreeRate*100)
	fmt.Printf("  Beta             : %6.2f\n", v.WACC.Beta)
	fmt.Printf("  Cost of equity   : %6.2f%%\n", v.WACC.CostOfEquity*100)
	fmt.Printf("  Cost of debt     : %6.2f%%\n", v.WACC.CostOfDebt*100)
	fmt.Printf("  Weights (E/D)    : %5.1f%% / %.1f%%\n", v.WACC.EquityWeight*100, v.WACC.DebtWeight*100)
	fmt.Printf("  WACC             : %6.2f%%\n", v.WACC.WACC*100)

	fmt.Println("\n── Projection ──────────────────────────")
	fmt.Printf("  Base revenue     : %s (CAGR %.1f%%)\n", formatMoney(v.Projection.BaseRevenue), v.Projection.BaseCAGR*100)
	for _, y := range v.Projection.Years {
		fmt.Printf("  Year %d           : rev %s  margin %4.1f%%  FCF %s\n",
			y.Year, formatMoney(y.Revenue), y.OperatingMargin*100, formatMoney(y.FreeCashFlow))
	}

	fmt.Println("\n── Valuation ───────────────────────────")
	fmt.Printf("  PV of FCFs       : %s\n", formatMoney(v.PVOfFCFs))
	fmt.Printf("  PV of terminal   : %s (g=%.2f%%)\n", formatMoney(v.PVOfTerminalValue), v.TerminalGrowth*100)
	fmt.Printf("  Enterprise value : %s\n", formatMoney(v.EnterpriseValue))
	fmt.Printf("  Net debt         : %s\n", formatMoney(v.NetDebt))
	fmt.Printf("  Equity value     : %s\n", formatMoney(v.EquityValue))
	fmt.Println("  ────────────────────────────")
	fmt.Printf("  Intrinsic/share  : $%.2f\n", v.IntrinsicPerShare)
	fmt.Printf("  Current price    : $%.2f\n", v.CurrentPrice)
	fmt.Printf("  Upside           : %+.1f%%\n", v.UpsidePct)
	fmt.Printf("\n  ➡ %s\n", v.Verdict)
}

func printSensitivity(g *valuation.SensitivityGrid) {
	fmt.Println("── Sensitivity (per-share) ─────────────")
	fmt.Printf("  %-8s", "WACC\\g")
	for _, growth := range g.Growths {
		fmt.Printf("  %6.2f%%", growth*100)
	}
	fmt.Println()
	for i, wacc := range g.WACCs {
		fmt.Printf("  %6.2f%%", wacc*100)
		for j := range g.Growths {
			fmt.Printf("  %7.2f", g.PerShare[i][j])
		}
		fmt.Println()
	}
}

// formatMoney prints large dollar amounts in B/M units
func formatMoney(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("$%.1fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
