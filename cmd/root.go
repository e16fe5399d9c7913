package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chronicdata/brfss-dash/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "brfss-dash",
	Short: "BRFSS nutrition, physical activity, and obesity dashboard",
	Long:  "Cleans raw BRFSS portal extracts into a tidy observation file and serves an interactive dashboard over it.",
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
