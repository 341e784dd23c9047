package validation

import (
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

func init() {
	Register(RuleDef{
		ID:          types.RuleAbbr,
		Name:        "abbr-group",
		Scope:       ScopeFile,
		Description: "Every abbreviation used in a PA field must be defined in ABBR for that HEADING",
		File:        checkAbbreviations,
	})
}

// checkAbbreviations looks up every PA value in the ABBR rows whose
// ABBR_HDNG names the value's HEADING. Multi-valued cells are split on the
// file's concatenator first.
func checkAbbreviations(ctx *Context) {
	cols := ctx.columnsOfType(typePickList)
	if !populated(cols) {
		return
	}

	abbr := ctx.Container.Group("ABBR")
	if abbr == nil {
		ctx.Report(types.RuleAbbr, "ABBR", 0, "", "ABBR group missing, PA fields are populated")
		return
	}
	for _, h := range []string{"ABBR_HDNG", "ABBR_CODE"} {
		if !abbr.HasColumn(h) {
			ctx.Report(types.RuleAbbr, "ABBR", abbr.HeadingRow, h, "%s missing from ABBR group", h)
			return
		}
	}

	defined := make(map[string]map[string]bool)
	for _, row := range abbr.Rows() {
		h := row.Get("ABBR_HDNG")
		if defined[h] == nil {
			defined[h] = make(map[string]bool)
		}
		defined[h][row.Get("ABBR_CODE")] = true
	}

	for _, col := range cols {
		g := col.Group
		for i, cell := range col.Data {
			if cell == "" {
				continue
			}
			for _, code := range ctx.splitValues(cell) {
				if !defined[col.Heading][code] {
					ctx.Report(types.RuleAbbr, g.Name, g.Lines[i], col.Heading,
						"abbreviation %q not defined in ABBR for %s", code, col.Heading)
				}
			}
		}
	}
}

