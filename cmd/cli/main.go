package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/davidsmarcelino/nps-dashboard/adapters/fetch"
	"github.com/davidsmarcelino/nps-dashboard/app"
	"github.com/davidsmarcelino/nps-dashboard/domain/nps"
	"github.com/davidsmarcelino/nps-dashboard/internal/config"
	"github.com/davidsmarcelino/nps-dashboard/internal/testkit"
)

var (
	flagColumns []string
	flagJSON    bool
)

var rootCmd = &cobra.Command{
	Use:   "nps",
	Short: "Calculate Net Promoter Score from survey exports",
	Long:  "Reads delimited survey exports (CSV, TSV, XLSX or Google Sheets URLs),\nfinds the score column and calculates the Net Promoter Score.",
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file-or-url>...",
	Short: "Analyze one or more survey sources",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appConfig, err := config.Load()
		if err != nil {
			return err
		}

		fetcher := fetch.NewHTTPFetcher(appConfig.Fetch.Timeout)
		calculator := nps.NewCalculator(nps.IdentifyConfig{
			SuggestiveMinValidPct: appConfig.Identify.SuggestiveMinValidPct,
			UnnamedMinValidPct:    appConfig.Identify.UnnamedMinValidPct,
			LenientMinValidPct:    appConfig.Identify.LenientMinValidPct,
		})
		service := app.NewAnalysisService(fetcher, calculator)

		analyses, err := service.AnalyzeAll(cmd.Context(), args, flagColumns)
		if err != nil {
			return err
		}

		if flagJSON {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(analyses)
		}
		for _, analysis := range analyses {
			fmt.Fprint(cmd.OutOrStdout(), app.BuildReport(analysis))
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return nil
	},
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print a synthetic survey export for testing",
	RunE: func(cmd *cobra.Command, args []string) error {
		generator := testkit.NewSurveyDataGenerator(testkit.DefaultSurveyConfig())
		_, err := fmt.Fprint(cmd.OutOrStdout(), generator.GenerateCSV())
		return err
	},
}

func init() {
	analyzeCmd.Flags().StringSliceVar(&flagColumns, "columns", nil, "score columns to use, skipping detection")
	analyzeCmd.Flags().BoolVar(&flagJSON, "json", false, "emit the full analysis as JSON")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(sampleCmd)
}

func main() {
	godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
