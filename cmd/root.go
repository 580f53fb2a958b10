package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/intakeworks/docvalid/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "docvalid",
	Short: "Document field extraction and validation engine",
	Long:  "Extracts structured fields from OCR text of identity and immigration documents, validates them against per-type rules, cross-checks document sets, and tracks extraction quality KPIs.",
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
