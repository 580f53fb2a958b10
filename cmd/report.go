package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/intakeworks/docvalid/internal/metrics"
	"github.com/intakeworks/docvalid/internal/model"
)

var (
	reportSamples string
	reportWindow  int
	reportXLSX    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute a KPI report from a recorded sample log",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(reportSamples)
		if err != nil {
			return eris.Wrapf(err, "read samples %s", reportSamples)
		}
		var samples []model.MetricsSample
		if err := json.Unmarshal(data, &samples); err != nil {
			return eris.Wrapf(err, "parse samples %s", reportSamples)
		}

		log := metrics.NewSampleLog()
		for _, s := range samples {
			log.Append(s)
		}

		window := reportWindow
		if window <= 0 {
			window = cfg.Metrics.DefaultWindowDays
		}
		report := metrics.NewAggregator(log).Report(window)

		if reportXLSX != "" {
			if err := metrics.ExportXLSX(report, reportXLSX); err != nil {
				return err
			}
		}
		return printJSON(report)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportSamples, "samples", "samples.json", "path to the recorded samples JSON file")
	reportCmd.Flags().IntVar(&reportWindow, "window", 0, "trailing window in days (default from config)")
	reportCmd.Flags().StringVar(&reportXLSX, "xlsx", "", "also export the report to an XLSX file")
	rootCmd.AddCommand(reportCmd)
}
