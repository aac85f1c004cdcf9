package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DatasetName    string `mapstructure:"dataset_name" yaml:"dataset_name"`
	OutputDir      string `mapstructure:"output_dir" yaml:"output_dir"`
	PlotsDir       string `mapstructure:"plots_dir" yaml:"plots_dir"`
	TranscriptFile string `mapstructure:"transcript_file" yaml:"transcript_file"`
	HistogramBins  int    `mapstructure:"histogram_bins" yaml:"histogram_bins"`
	DeriveFeatures bool   `mapstructure:"derive_features" yaml:"derive_features"`

	// Chart rendering
	ChartWidth  int     `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight int     `mapstructure:"chart_height" yaml:"chart_height"`
	ChartDPI    float64 `mapstructure:"chart_dpi" yaml:"chart_dpi"`
}

// Default returns the built-in configuration without consulting disk or env.
func Default() *Global {
	return &Global{
		DatasetName:    "iris",
		OutputDir:      ".",
		PlotsDir:       "plots",
		TranscriptFile: "analysis_output.txt",
		HistogramBins:  12,
		DeriveFeatures: true,
		ChartWidth:     1200,
		ChartHeight:    675,
		ChartDPI:       150,
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.irislab/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".irislab")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("IRISLAB")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("dataset_name", d.DatasetName)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("plots_dir", d.PlotsDir)
	v.SetDefault("transcript_file", d.TranscriptFile)
	v.SetDefault("histogram_bins", d.HistogramBins)
	v.SetDefault("derive_features", d.DeriveFeatures)
	v.SetDefault("chart_width", d.ChartWidth)
	v.SetDefault("chart_height", d.ChartHeight)
	v.SetDefault("chart_dpi", d.ChartDPI)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".irislab"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.HistogramBins <= 0 {
		c.HistogramBins = d.HistogramBins
	}
	return &c, nil
}
