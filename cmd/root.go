package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/irislab/internal/config"
	"github.com/KaramelBytes/irislab/internal/pipeline"
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "irislab",
	Short: "irislab: exploratory analysis of the Iris dataset",
	Long: `irislab loads the bundled Iris dataset, cleans it, prints descriptive
statistics, grouped aggregates and correlations, renders four charts and saves
a cleaned CSV. Everything printed is mirrored to a transcript file.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		runPipeline(cmd, pipeline.FromConfig(cfg))
		return nil
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.irislab/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	log.SetHandler(cli.New(os.Stderr))
	log.SetLevel(log.InfoLevel)
	if debug {
		log.SetLevel(log.DebugLevel)
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to the built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c
	log.WithFields(log.Fields{"dataset": cfg.DatasetName, "output_dir": cfg.OutputDir}).Debug("config loaded")
}

// runPipeline runs one analysis with the console bound to the command output.
// Pipeline failures are reported by the run itself and never change the exit code.
func runPipeline(cmd *cobra.Command, opts pipeline.Options) *pipeline.Summary {
	opts.Debug = debug
	sum := pipeline.Run(opts, cmd.OutOrStdout())
	if sum.Err != nil {
		log.WithError(sum.Err).WithField("run_id", sum.RunID).Debug("run finished with error")
	} else {
		log.WithField("run_id", sum.RunID).Debug("run finished")
	}
	return sum
}
