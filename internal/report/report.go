// =============================================================================
// AGS Data Validator - Reports
// =============================================================================
//
// This module renders the findings of a validation run for people:
//   - a plain-text error log, one numbered line per finding (WriteLog)
//   - a console table of findings (RenderTable)
//   - a console summary across several files (RenderSummary)
//
// The log carries a run ID so that a log file, a workbook export and the
// console output of the same run can be matched up.
//
// =============================================================================

package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

// Summary describes one validated file.
type Summary struct {
	RunID      uuid.UUID
	File       string
	Dictionary string
	Started    time.Time
	Duration   time.Duration
	Errors     []types.RuleError
}

// NewRunID returns a fresh run identifier.
func NewRunID() uuid.UUID {
	return uuid.New()
}

// =============================================================================
// TEXT LOG
// =============================================================================

// Format renders findings as numbered lines.
func Format(errs []types.RuleError) string {
	if len(errs) == 0 {
		return "No validation errors.\n"
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Validation completed with %d error(s):\n\n", len(errs)))
	for i, e := range errs {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, e.Error()))
	}
	return builder.String()
}

// WriteLog writes a header followed by Format(s.Errors).
func WriteLog(w io.Writer, s Summary) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "AGS validation report\n")
	fmt.Fprintf(bw, "Run:        %s\n", s.RunID)
	fmt.Fprintf(bw, "File:       %s\n", s.File)
	fmt.Fprintf(bw, "Dictionary: %s\n", s.Dictionary)
	if !s.Started.IsZero() {
		fmt.Fprintf(bw, "Started:    %s\n", s.Started.Format(time.RFC3339))
	}
	fmt.Fprintf(bw, "Duration:   %s\n\n", s.Duration.Round(time.Millisecond))

	bw.WriteString(Format(s.Errors))
	return bw.Flush()
}

// WriteLogFile writes the log for s to path.
//
// PARAMETERS:
//   - path: The output file, created or truncated.
//   - s: The run to report.
//
// RETURNS:
//   - An error if the file cannot be created or written.
func WriteLogFile(path string, s Summary) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close report: %w", cerr)
		}
	}()
	return WriteLog(f, s)
}

// =============================================================================
// CONSOLE TABLES
// =============================================================================

// RenderTable prints the findings of one file.
func RenderTable(w io.Writer, file string, errs []types.RuleError) {
	if len(errs) == 0 {
		_, _ = fmt.Fprintf(w, "%s: no findings\n", file)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(file)
	t.AppendHeader(table.Row{"Rule", "Group", "Line", "Field", "Message"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Line", Align: text.AlignRight},
		{Name: "Message", WidthMax: 80},
	})

	for _, e := range errs {
		line := ""
		if e.RowNumber > 0 {
			line = fmt.Sprint(e.RowNumber)
		}
		t.AppendRow(table.Row{e.RuleID.String(), e.Group, line, e.Field, e.Message})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d findings)\n", len(errs))
}

// RenderSummary prints one line per file with its finding count and the
// rules involved.
func RenderSummary(w io.Writer, summaries []Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Dictionary", "Findings", "Rules"})

	total := 0
	for _, s := range summaries {
		total += len(s.Errors)
		t.AppendRow(table.Row{s.File, s.Dictionary, len(s.Errors), rulesInvolved(s.Errors)})
	}
	t.AppendFooter(table.Row{"", "", total, ""})
	t.Render()
}

// rulesInvolved lists the distinct rules in errs in numeric order. errs is
// already sorted by rule.
func rulesInvolved(errs []types.RuleError) string {
	counts := types.CountByRule(errs)
	var parts []string
	var last types.RuleID = -1
	for _, e := range errs {
		if e.RuleID == last {
			continue
		}
		last = e.RuleID
		parts = append(parts, fmt.Sprintf("%s(%d)", e.RuleID, counts[e.RuleID]))
	}
	return strings.Join(parts, " ")
}
