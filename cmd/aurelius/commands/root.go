package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aurelius",
	Short: "Aurelius - DCF 밸류에이션 & 리스크 분석 엔진",
	Long: `Aurelius CLI

내재가치(DCF)와 리스크 지표(VaR, Sharpe, MDD, Beta)를 계산하는
밸류에이션 백엔드.

Usage:
  go run ./cmd/aurelius [command]

Examples:
  go run ./cmd/aurelius api
  go run ./cmd/aurelius dcf AAPL
  go run ./cmd/aurelius risk AAPL --period 1y`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
