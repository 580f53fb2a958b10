package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <case.json>",
	Short: "Analyze one case file and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		processor, err := initProcessor()
		if err != nil {
			return err
		}

		cf, err := readCaseFile(args[0])
		if err != nil {
			return err
		}
		if len(cf.Documents) == 0 {
			return eris.Errorf("case file %s holds no documents", args[0])
		}

		result, err := processor.AnalyzeCase(cmd.Context(), cf.Documents, cf.Context)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
