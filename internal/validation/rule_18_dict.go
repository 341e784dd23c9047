package validation

import (
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

func init() {
	Register(RuleDef{
		ID:          types.RuleDict,
		Name:        "dict-group",
		Scope:       ScopeFile,
		Description: "A DICT group must be present when the file uses GROUPs or HEADINGs outside the standard dictionary",
		File:        checkDictRequired,
	})
}

func checkDictRequired(ctx *Context) {
	if ctx.Container.Has("DICT") {
		return
	}
	ref := ctx.Schema.Reference()
	for _, g := range ctx.Container.Groups() {
		if ref.Group(g.Name) == nil {
			ctx.Report(types.RuleDict, g.Name, g.GroupRow, "",
				"GROUP %s is not in the standard dictionary and no DICT group is present", g.Name)
			continue
		}
		for _, h := range g.Headings() {
			if !ctx.Schema.InReference(g.Name, h) {
				ctx.Report(types.RuleDict, g.Name, g.HeadingRow, h,
					"HEADING %s is not in the standard dictionary and no DICT group is present", h)
			}
		}
	}
}
