// =============================================================================
// AGS Data Validator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (agsval)
//   ├── validateCmd     (agsval validate FILE|DIR...)
//   ├── dictionariesCmd (agsval dictionaries [VERSION])
//   └── versionCmd      (agsval version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading agsval.yaml before any subcommand runs
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/AGS-data-validator/internal/config"
	"github.com/ginjaninja78/AGS-data-validator/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// cfg is the loaded configuration, set in PersistentPreRunE.
var cfg *config.Config

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "agsval",
	Short: "AGS Data Validator - check AGS4 geotechnical data files",
	Long: `AGS Data Validator checks AGS4 data files against the AGS4 rules and the
standard data dictionary, and reports every violation with the rule, GROUP,
line and HEADING involved.

Key Features:
  - All file-format rules (1 to 20) with numeric rule ordering
  - Standard dictionaries 4.0.3, 4.0.4 and 4.1 built in
  - User-defined groups and headings through the file's DICT group
  - Plain-text error logs and XLSX workbook exports
  - Concurrent validation of many files

Example Usage:
  agsval validate site.ags                  # Validate one file
  agsval validate ./data --report --xlsx    # Validate a directory, write outputs
  agsval validate site.ags --dictionary 4.0.4
  agsval dictionaries 4.1                   # List the groups of a dictionary`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logging.Setup(level, cfg.LogFormat)
		slog.Debug("configuration loaded", "path", cfgFile, "dictionary", cfg.Dictionary)
		return nil
	},

	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. It is called by main.main().
//
// Exit codes: 0 when every file is valid, 1 when findings were reported or
// the run failed.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrValidationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultPath,
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}
