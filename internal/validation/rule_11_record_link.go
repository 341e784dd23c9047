package validation

import (
	"strings"

	"github.com/ginjaninja78/AGS-data-validator/internal/model"
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

// typeRecordLink and typePickList are the TYPE codes of multi-valued fields.
const (
	typeRecordLink = "RL"
	typePickList   = "PA"
)

func init() {
	Register(RuleDef{
		ID:          types.RuleDelimiter,
		Name:        "tran-delimiter",
		Scope:       ScopeFile,
		Description: "TRAN_DLIM must be given when the file holds record links",
		File:        checkDelimiter,
	})
	Register(RuleDef{
		ID:          types.RuleConcatenator,
		Name:        "tran-concatenator",
		Scope:       ScopeFile,
		Description: "TRAN_RCON must be given when the file holds record links or abbreviations",
		File:        checkConcatenator,
	})
	Register(RuleDef{
		ID:          types.RuleRecordLink,
		Name:        "record-link",
		Scope:       ScopeGroup,
		Description: "Each record link must name an existing GROUP and match exactly one of its rows",
		Group:       checkRecordLinks,
	})
}

// =============================================================================
// 11a / 11b TRAN separators
// =============================================================================

func checkDelimiter(ctx *Context) {
	if !populated(ctx.columnsOfType(typeRecordLink)) {
		return
	}
	if _, ok := ctx.Delimiter(); !ok {
		ctx.Report(types.RuleDelimiter, "TRAN", tranLine(ctx), "TRAN_DLIM",
			"TRAN_DLIM missing, record links cannot be checked")
	}
}

func checkConcatenator(ctx *Context) {
	used := append(ctx.columnsOfType(typeRecordLink), ctx.columnsOfType(typePickList)...)
	if !populated(used) {
		return
	}
	if _, ok := ctx.Concatenator(); !ok {
		ctx.Report(types.RuleConcatenator, "TRAN", tranLine(ctx), "TRAN_RCON",
			"TRAN_RCON missing, multi-valued fields are read as single values")
	}
}

// tranLine points findings about TRAN fields at the TRAN HEADING row.
func tranLine(ctx *Context) int {
	if tran := ctx.Container.Group("TRAN"); tran != nil {
		return tran.HeadingRow
	}
	return 0
}

// =============================================================================
// 11c RECORD LINKS
// =============================================================================

// checkRecordLinks resolves every link expression in the GROUP's RL columns.
// An expression is GROUP<dlim>KEY1<dlim>KEY2..., several expressions in one
// cell are joined by the concatenator.
func checkRecordLinks(ctx *Context, g *model.Group) {
	cols := model.ColumnsOfType(g, typeRecordLink)
	if len(cols) == 0 {
		return
	}
	delim, ok := ctx.Delimiter()
	if !ok {
		return
	}

	for _, col := range cols {
		for i, cell := range col.Data {
			if cell == "" {
				continue
			}
			line := g.Lines[i]
			for _, expr := range ctx.splitValues(cell) {
				checkLink(ctx, g.Name, col.Heading, line, expr, delim)
			}
		}
	}
}

func checkLink(ctx *Context, group, heading string, line int, expr, delim string) {
	if !strings.Contains(expr, delim) {
		ctx.Report(types.RuleRecordLink, group, line, heading, "record link %q has no delimiter %q", expr, delim)
		return
	}

	parts := strings.Split(expr, delim)
	targetName, values := parts[0], parts[1:]

	target := ctx.Container.Group(targetName)
	if target == nil {
		ctx.Report(types.RuleRecordLink, group, line, heading, "record link %q references missing GROUP %s", expr, targetName)
		return
	}
	keys := ctx.keyHeadings(target)
	if len(keys) == 0 {
		ctx.Report(types.RuleRecordLink, group, line, heading, "record link %q: GROUP %s has no KEY fields", expr, targetName)
		return
	}

	switch {
	case len(values) < len(keys):
		ctx.Report(types.RuleRecordLink, group, line, heading,
			"record link %q has too few KEY values, %s expects %d", expr, targetName, len(keys))
		return
	case len(values) > len(keys):
		ctx.Report(types.RuleRecordLink, group, line, heading,
			"record link %q has too many KEY values, %s expects %d", expr, targetName, len(keys))
		return
	}

	switch n := ctx.linkCounts(target, keys, delim)[strings.Join(values, delim)]; {
	case n == 0:
		ctx.Report(types.RuleRecordLink, group, line, heading, "record link %q not found in %s", expr, targetName)
	case n > 1:
		ctx.Report(types.RuleRecordLink, group, line, heading, "record link %q is ambiguous, %d rows of %s match", expr, n, targetName)
	}
}
