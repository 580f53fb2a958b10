package main

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/intakeworks/docvalid/internal/model"
)

var batchConcurrency int

type batchSummary struct {
	CaseFile string           `json:"case_file"`
	Status   model.CaseStatus `json:"status"`
	Coverage float64          `json:"coverage"`
	Findings int              `json:"findings"`
	Error    string           `json:"error,omitempty"`
}

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Analyze every case file in a directory concurrently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		processor, err := initProcessor()
		if err != nil {
			return err
		}

		entries, err := os.ReadDir(args[0])
		if err != nil {
			return eris.Wrapf(err, "read case dir %s", args[0])
		}

		var (
			mu        sync.Mutex
			summaries []batchSummary
		)

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(batchConcurrency)
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			entry := entry
			path := filepath.Join(args[0], entry.Name())
			g.Go(func() error {
				summary := batchSummary{CaseFile: entry.Name()}

				cf, err := readCaseFile(path)
				if err != nil {
					summary.Error = err.Error()
				} else if result, err := processor.AnalyzeCase(ctx, cf.Documents, cf.Context); err != nil {
					summary.Error = err.Error()
				} else {
					summary.Status = result.Analysis.Status
					summary.Coverage = result.Analysis.CoverageScore
					summary.Findings = len(result.Findings)
				}

				mu.Lock()
				summaries = append(summaries, summary)
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		zap.L().Info("batch complete", zap.Int("cases", len(summaries)))
		return printJSON(summaries)
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "max concurrent cases")
	rootCmd.AddCommand(batchCmd)
}
