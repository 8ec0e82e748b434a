// Package cmd provides the CLI commands for partquote.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"partquote/core/engine"
	"partquote/core/ui"
	"partquote/internal/config"
	"partquote/internal/logging"
)

// Version is the CLI release
const Version = "0.1.0"

var (
	cfgFile string
	verbose bool
	force   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "partquote",
	Short: "Quote machined parts from technical drawings",
	Long: `partquote estimates the unit price of a machined part from the text
recognized on its technical drawing.

It extracts plausible dimensions, classifies the shape, detects the
material and prices weight, machining time and setup with a fixed rate
card. Parts that are too heavy or too expensive are flagged for manual
review instead of being priced.

Examples:
  partquote quote drawing.txt
  echo "Flachstahl 100 x 8 x 6" | partquote quote -q 10 -f json
  partquote analyze drawing.png --target-price 250
  partquote rates`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, .json or .hcl")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// newEngine builds the quoting engine from the active configuration
func newEngine() (*engine.Engine, error) {
	cfg := config.Get()
	card, err := cfg.RateCard()
	if err != nil {
		return nil, err
	}
	return engine.New(cfg.Extraction.Range(), card, engine.WithLogger(logging.Logger)), nil
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "partquote version %s\n", Version)
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write the default configuration as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.Default().Save(path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		ui.NewAutoWriter(cmd.OutOrStdout()).Success("Wrote default configuration to %s", path)
		return nil
	},
}
