package cmd

import (
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/irislab/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	anaInput    string
	anaWorkdir  string
	anaNoDerive bool
	anaBins     int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the analysis pipeline with overrides",
	Long: `Run the same pipeline as the bare irislab command. --input substitutes a CSV
with the same columns for the bundled dataset; --workdir changes where the
transcript, cleaned CSV and plots are written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := pipeline.FromConfig(cfg)
		if anaInput != "" {
			opts.InputPath = anaInput
			base := filepath.Base(anaInput)
			opts.DatasetName = strings.TrimSuffix(base, filepath.Ext(base))
		}
		if anaWorkdir != "" {
			opts.OutputDir = anaWorkdir
		}
		if anaNoDerive {
			opts.Derive = false
		}
		if anaBins > 0 {
			opts.Bins = anaBins
		}
		runPipeline(cmd, opts)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&anaInput, "input", "", "CSV file to analyze instead of the bundled dataset")
	analyzeCmd.Flags().StringVar(&anaWorkdir, "workdir", "", "directory for the transcript, cleaned CSV and plots (overrides output_dir)")
	analyzeCmd.Flags().BoolVar(&anaNoDerive, "no-derive", false, "skip the sepal_area and petal_area columns")
	analyzeCmd.Flags().IntVar(&anaBins, "bins", 0, "histogram bin count (overrides histogram_bins)")
}
