package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Generate and explore AI investment strategies",
	Long: `strategy collects investment preferences, asks the strategy backend
for a recommendation and shows the portfolio, its recent performance
and a rendered chart.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(generateCmd(), historyCmd(), marketCmd(), serveCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
