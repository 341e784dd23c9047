package validation

import (
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

func init() {
	Register(RuleDef{
		ID:          types.RuleProj,
		Name:        "proj-group",
		Scope:       ScopeFile,
		Description: "The PROJ group must exist with exactly one DATA row",
		File:        func(ctx *Context) { checkSingleton(ctx, types.RuleProj, "PROJ") },
	})
	Register(RuleDef{
		ID:          types.RuleTran,
		Name:        "tran-group",
		Scope:       ScopeFile,
		Description: "The TRAN group must exist with exactly one DATA row",
		File:        func(ctx *Context) { checkSingleton(ctx, types.RuleTran, "TRAN") },
	})
}

// checkSingleton reports a GROUP that is missing, empty, or holds more than
// one DATA row.
func checkSingleton(ctx *Context, rule types.RuleID, name string) {
	g := ctx.Container.Group(name)
	switch {
	case g == nil:
		ctx.Report(rule, name, 0, "", "%s group missing", name)
	case g.RowCount() == 0:
		ctx.Report(rule, name, g.GroupRow, "", "%s group has no DATA rows", name)
	case g.RowCount() > 1:
		ctx.Report(rule, name, g.Lines[1], "", "%s group has more than one DATA row", name)
	}
}
