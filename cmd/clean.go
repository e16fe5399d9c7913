package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chronicdata/brfss-dash/internal/clean"
)

var (
	cleanInput   string
	cleanOutput  string
	cleanCharset string
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean a raw BRFSS extract into the dashboard dataset",
	Long: `Reads a raw BRFSS portal export (CSV or XLSX), normalizes columns,
coerces types, filters to the in-scope question codes, deduplicates, and
writes the cleaned observation file.

Per-row problems (bad types, missing values, out-of-scope questions) drop the
row and are reported as counts. A missing required column aborts the run.

Examples:
  brfss-dash clean --input Nutrition_BRFSS.csv --output cleaned_data.csv
  brfss-dash clean --input export.xlsx --output cleaned_data.csv
  brfss-dash clean --input latin1.csv --charset windows-1252`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts := clean.Options{
			InputPath:  cleanInput,
			OutputPath: cleanOutput,
			Charset:    cleanCharset,
		}
		if opts.InputPath == "" {
			opts.InputPath = cfg.Clean.Input
		}
		if opts.OutputPath == "" {
			opts.OutputPath = cfg.Clean.Output
		}
		if opts.Charset == "" {
			opts.Charset = cfg.Clean.Charset
		}
		if opts.InputPath == "" {
			return eris.New("clean: no input file (use --input or clean.input in config)")
		}

		zap.L().Info("cleaning raw extract",
			zap.String("input", opts.InputPath),
			zap.String("output", opts.OutputPath),
		)

		if _, err := clean.Run(cmd.Context(), opts); err != nil {
			return eris.Wrap(err, "clean")
		}
		return nil
	},
}

func init() {
	cleanCmd.Flags().StringVar(&cleanInput, "input", "", "raw extract path (.csv or .xlsx)")
	cleanCmd.Flags().StringVar(&cleanOutput, "output", "", "cleaned file path (default from config)")
	cleanCmd.Flags().StringVar(&cleanCharset, "charset", "", "input charset for CSV, e.g. windows-1252 (default UTF-8)")
	rootCmd.AddCommand(cleanCmd)
}
