// =============================================================================
// AGS Data Validator - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, the main command of the tool.
//
// COMMAND USAGE:
//   agsval validate FILE|DIR... [flags]
//
// FLAGS:
//   --dictionary       : Standard dictionary edition (4.0.3, 4.0.4, 4.1)
//   --disable          : Rule identifiers to suppress, e.g. 10a,19b
//   --report           : Write a plain-text error log per file
//   --xlsx             : Write an XLSX workbook per file
//   --output-dir       : Where logs and workbooks are written
//   --max-concurrency  : Files validated at once
//
// PROCESSING PIPELINE:
//   1. Expand the arguments into .ags files
//   2. Validate each file (concurrently across files, one goroutine per file)
//   3. Write the requested outputs for each file
//   4. Print one findings table per file, in argument order, and a summary
//
// A file that cannot be read does not stop the other files.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/AGS-data-validator/internal/config"
	"github.com/ginjaninja78/AGS-data-validator/internal/dictionary"
	"github.com/ginjaninja78/AGS-data-validator/internal/report"
	"github.com/ginjaninja78/AGS-data-validator/internal/validation"
	"github.com/ginjaninja78/AGS-data-validator/internal/xlsxexport"
	"github.com/ginjaninja78/AGS-data-validator/pkg/utils"
)

// ErrValidationFailed is returned when at least one file has findings. The
// findings themselves have already been printed.
var ErrValidationFailed = errors.New("validation failed")

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	dictionaryFlag     string
	disableFlag        []string
	reportFlag         bool
	xlsxFlag           bool
	outputDirFlag      string
	maxConcurrencyFlag int
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE|DIR...",
	Short: "Validate AGS4 data files",
	Long: `The validate command checks each named file, and every .ags file in each
named directory, against the AGS4 rules.

Findings are printed per file, ordered by rule. The command exits with status 1
when any file has findings or cannot be read.

Outputs (optional):
  - A plain-text error log per file (--report)
  - An XLSX workbook with the decoded GROUPs and a Diagnostics sheet (--xlsx)`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyValidateFlags(cmd, cfg); err != nil {
			return err
		}
		files, err := utils.DiscoverInputFiles(args, utils.DefaultExtension)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no %s files found", utils.DefaultExtension)
		}
		return validateFiles(cmd.OutOrStdout(), cfg, files)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&dictionaryFlag, "dictionary", "", "Standard dictionary edition (default from config, else the newest)")
	validateCmd.Flags().StringSliceVar(&disableFlag, "disable", nil, "Rule identifiers to suppress, e.g. 10a,19b")
	validateCmd.Flags().BoolVar(&reportFlag, "report", false, "Write a plain-text error log per file")
	validateCmd.Flags().BoolVar(&xlsxFlag, "xlsx", false, "Write an XLSX workbook per file")
	validateCmd.Flags().StringVar(&outputDirFlag, "output-dir", "", "Directory for logs and workbooks")
	validateCmd.Flags().IntVarP(&maxConcurrencyFlag, "max-concurrency", "j", 0, "Files validated at once")
}

// applyValidateFlags copies the flags the user actually set over c.
func applyValidateFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("dictionary") {
		c.Dictionary = dictionaryFlag
	}
	if flags.Changed("disable") {
		c.DisabledRules = append(c.DisabledRules, disableFlag...)
	}
	if flags.Changed("report") {
		c.WriteReport = reportFlag
	}
	if flags.Changed("xlsx") {
		c.ExportXLSX = xlsxFlag
	}
	if flags.Changed("output-dir") {
		c.OutputDir = outputDirFlag
	}
	if flags.Changed("max-concurrency") && maxConcurrencyFlag > 0 {
		c.MaxConcurrency = maxConcurrencyFlag
	}
	return c.Validate()
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// outcome is the result of one file.
type outcome struct {
	summary report.Summary
	err     error
}

// validateFiles validates files with at most c.MaxConcurrency running at
// once and prints the results to w in input order.
//
// RETURNS:
//   - nil when every file is valid.
//   - ErrValidationFailed when some file has findings.
//   - The joined per-file errors when some file could not be validated.
func validateFiles(w io.Writer, c *config.Config, files []string) error {
	version, err := c.Version()
	if err != nil {
		return err
	}
	disabled, err := c.Disabled()
	if err != nil {
		return err
	}

	fm := utils.NewFileManager(c.OutputDir, c.ReportNameFormat)
	if c.WriteReport || c.ExportXLSX {
		if err := fm.EnsureOutputDir(); err != nil {
			return err
		}
	}

	engine := validation.NewEngine(
		validation.WithLogger(slog.Default()),
		validation.WithDisabledRules(disabled...),
	)

	outcomes := make([]outcome, len(files))

	var eg errgroup.Group
	eg.SetLimit(c.MaxConcurrency)
	for i, file := range files {
		eg.Go(func() error {
			outcomes[i] = validateFile(engine, fm, c, file, version)
			return nil
		})
	}
	_ = eg.Wait()

	var failed []error
	findings := 0
	summaries := make([]report.Summary, 0, len(files))
	for _, o := range outcomes {
		if o.err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", o.summary.File, o.err))
			continue
		}
		report.RenderTable(w, o.summary.File, o.summary.Errors)
		findings += len(o.summary.Errors)
		summaries = append(summaries, o.summary)
	}
	if len(files) > 1 {
		report.RenderSummary(w, summaries)
	}

	switch {
	case len(failed) > 0:
		return fmt.Errorf("%d of %d file(s) could not be validated: %w", len(failed), len(files), errors.Join(failed...))
	case findings > 0:
		return ErrValidationFailed
	}
	return nil
}

// validateFile runs one file and writes its outputs. Output failures are
// reported as the file's error, after the findings are known.
func validateFile(engine *validation.Engine, fm *utils.FileManager, c *config.Config, file string, version dictionary.Version) outcome {
	runID := report.NewRunID()
	log := slog.Default().With("file", file, "run", runID.String())
	started := time.Now()

	res, err := engine.Validate(file, version)
	if err != nil {
		log.Error("validation aborted", "error", err)
		return outcome{summary: report.Summary{RunID: runID, File: file}, err: err}
	}

	s := report.Summary{
		RunID:      runID,
		File:       file,
		Dictionary: res.Version.String(),
		Started:    started,
		Duration:   res.Duration,
		Errors:     res.Errors,
	}

	base := fm.OutputPath(file, "", map[string]string{"uuid": runID.String()})
	if c.WriteReport {
		if err := report.WriteLogFile(base+".log", s); err != nil {
			return outcome{summary: s, err: err}
		}
		log.Info("report written", "path", base+".log")
	}
	if c.ExportXLSX {
		if err := xlsxexport.ExportFile(base+".xlsx", res.Container, res.Errors); err != nil {
			return outcome{summary: s, err: err}
		}
		log.Info("workbook written", "path", base+".xlsx")
	}
	return outcome{summary: s}
}
