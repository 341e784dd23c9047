package validation

import (
	"log/slog"
	"strings"

	"github.com/ginjaninja78/AGS-data-validator/internal/dictionary"
	"github.com/ginjaninja78/AGS-data-validator/internal/model"
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

// keySep joins KEY values when tuples are compared. It cannot appear in a
// valid AGS field.
const keySep = "\x1f"

// Context is what file and group rules see. The Container is read-only here.
type Context struct {
	Container *model.Container
	Schema    *dictionary.Schema

	// Dir is the directory holding the subject file. FILE references are
	// resolved against it.
	Dir string

	Prober Prober
	Logger *slog.Logger

	errs *types.Collector

	// linkIndex caches, per target GROUP and delimiter, how many rows render
	// each KEY tuple.
	linkIndex map[string]map[string]int
}

// Report records a finding.
func (c *Context) Report(rule types.RuleID, group string, row int, field, format string, args ...any) {
	c.errs.Addf(rule, group, row, field, format, args...)
}

// tranValue returns a non-blank value from the single TRAN row.
func (c *Context) tranValue(heading string) (string, bool) {
	tran := c.Container.Group("TRAN")
	if tran == nil || tran.RowCount() == 0 {
		return "", false
	}
	v, ok := tran.Row(0).Value(heading)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Delimiter returns TRAN_DLIM, the separator between a record link's GROUP
// and KEY values.
func (c *Context) Delimiter() (string, bool) {
	return c.tranValue("TRAN_DLIM")
}

// Concatenator returns TRAN_RCON, the separator between values of a
// multi-valued RL or PA field.
func (c *Context) Concatenator() (string, bool) {
	return c.tranValue("TRAN_RCON")
}

// splitValues splits a multi-valued cell on the file's concatenator. Without
// a concatenator the cell is one value.
func (c *Context) splitValues(cell string) []string {
	if rcon, ok := c.Concatenator(); ok {
		return strings.Split(cell, rcon)
	}
	return []string{cell}
}

// keyHeadings returns the effective KEY HEADINGs of g that are present as
// columns.
func (c *Context) keyHeadings(g *model.Group) []string {
	return model.Intersect(c.Schema.KeyHeadings(g.Name), g.Headings())
}

// columnsOfType returns every column across the file declared with typ in its
// TYPE row.
func (c *Context) columnsOfType(typ string) []*model.Column {
	var out []*model.Column
	for _, g := range c.Container.Groups() {
		out = append(out, model.ColumnsOfType(g, typ)...)
	}
	return out
}

// populated reports whether any column holds a non-blank value.
func populated(cols []*model.Column) bool {
	for _, col := range cols {
		if len(col.Distinct()) > 0 {
			return true
		}
	}
	return false
}

// linkCounts returns, for target, how many rows render each KEY tuple when
// joined with delim.
func (c *Context) linkCounts(target *model.Group, keys []string, delim string) map[string]int {
	id := target.Name + keySep + delim
	if counts, ok := c.linkIndex[id]; ok {
		return counts
	}
	counts := make(map[string]int, target.RowCount())
	for _, row := range target.Rows() {
		counts[row.KeyString(keys, delim)]++
	}
	if c.linkIndex == nil {
		c.linkIndex = make(map[string]map[string]int)
	}
	c.linkIndex[id] = counts
	return counts
}
