package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stonebriar/insbench/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "insbench",
	Short: "P&C insurance warehouse generator and agent evaluation harness",
	Long:  "Generates a deliberately messy property and casualty insurance warehouse (CDC versions, soft deletes, void and reversal transactions, inconsistent staging feeds) and scores an NL-to-SQL agent against its gold answer key.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
