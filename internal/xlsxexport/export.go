// =============================================================================
// AGS Data Validator - XLSX Export
// =============================================================================
//
// This module writes a decoded file and its findings to an XLSX workbook:
//   - a "Diagnostics" sheet listing every finding
//   - one sheet per GROUP, in file order, with the HEADING, UNIT and TYPE rows
//     on top and one row per DATA row below
//
// Every sheet carries the source line in column A so that a cell can be
// traced back to the AGS file.
//
// =============================================================================

package xlsxexport

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/AGS-data-validator/internal/model"
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

// DiagnosticsSheet is the name of the findings sheet.
const DiagnosticsSheet = "Diagnostics"

// maxSheetName is the Excel limit on sheet name length.
const maxSheetName = 31

// Export writes the workbook to w.
func Export(w io.Writer, c *model.Container, errs []types.RuleError) error {
	f, err := build(c, errs)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ExportFile writes the workbook to path.
//
// PARAMETERS:
//   - path: The output .xlsx file.
//   - c: The decoded file.
//   - errs: The findings of the run.
//
// RETURNS:
//   - An error if the workbook cannot be built or saved.
func ExportFile(path string, c *model.Container, errs []types.RuleError) error {
	f, err := build(c, errs)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func build(c *model.Container, errs []types.RuleError) (*excelize.File, error) {
	f := excelize.NewFile()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	if err := f.SetSheetName(f.GetSheetName(0), DiagnosticsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeDiagnostics(f, errs, header); err != nil {
		f.Close()
		return nil, err
	}

	used := map[string]bool{strings.ToLower(DiagnosticsSheet): true}
	for _, g := range c.Groups() {
		name := sheetName(g.Name, used)
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		if err := writeGroup(f, name, g, header); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeDiagnostics(f *excelize.File, errs []types.RuleError, header int) error {
	rows := [][]any{{"Rule", "Group", "Line", "Field", "Message"}}
	for _, e := range errs {
		rows = append(rows, []any{e.RuleID.String(), e.Group, e.RowNumber, e.Field, e.Message})
	}
	return writeRows(f, DiagnosticsSheet, rows, header, 1)
}

func writeGroup(f *excelize.File, sheet string, g *model.Group, header int) error {
	descriptor := func(d model.Descriptor, value func(*model.Column) string) []any {
		row := []any{g.DescriptorRow(d), d.String()}
		for _, col := range g.Columns {
			row = append(row, value(col))
		}
		return row
	}

	rows := [][]any{
		descriptor(model.DescriptorHeading, func(c *model.Column) string { return c.Heading }),
		descriptor(model.DescriptorUnit, func(c *model.Column) string { return c.Unit }),
		descriptor(model.DescriptorType, func(c *model.Column) string { return c.Type }),
	}
	for i, line := range g.Lines {
		row := []any{line, model.DescriptorData.String()}
		for _, col := range g.Columns {
			row = append(row, col.Value(i))
		}
		rows = append(rows, row)
	}
	return writeRows(f, sheet, rows, header, 3)
}

// writeRows writes rows from A1 down, styles the first headerRows rows and
// freezes them.
func writeRows(f *excelize.File, sheet string, rows [][]any, style, headerRows int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
		}
	}
	if err := f.SetRowStyle(sheet, 1, headerRows, style); err != nil {
		return fmt.Errorf("failed to style %s: %w", sheet, err)
	}
	top, err := excelize.CoordinatesToCellName(1, headerRows+1)
	if err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRows,
		TopLeftCell: top,
		ActivePane:  "bottomLeft",
	})
}

// sheetName turns a GROUP name into a unique, legal sheet name. Sheet names
// are case-insensitive, so used is keyed by the lower-cased name.
func sheetName(group string, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, group)
	if name == "" {
		name = "_"
	}
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}

	base := name
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf("~%d", n)
		if len(base)+len(suffix) > maxSheetName {
			base = base[:maxSheetName-len(suffix)]
		}
		name = base + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}
