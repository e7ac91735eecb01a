package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "csvdash/internal/config"
)

var (
	// Global flags
	cfgFile string
	dataDir string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "csvdash",
	Short: "csvdash: CSV data dashboards from the command line or a browser",
	Long: `csvdash turns public-data CSV files (country MBTI percentages, subway
ridership, independence-activist rosters, crime statistics) into charts and
filterable tables, either rendered to files or served as HTML dashboards.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.csvdash/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the dataset CSV files (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("data-dir") && dataDir != "" {
		cfg.DataDir = dataDir
	}
}

// requireConfig guards commands that cannot run without configuration.
func requireConfig() (*cfgpkg.Global, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}
