package validation

import (
	"strings"

	"github.com/ginjaninja78/AGS-data-validator/internal/dictionary"
	"github.com/ginjaninja78/AGS-data-validator/internal/model"
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

func init() {
	Register(RuleDef{
		ID:          types.RuleKey,
		Name:        "key-fields",
		Scope:       ScopeGroup,
		Description: "KEY fields must be present and their combined values unique",
		Group:       checkKeyFields,
	})
	Register(RuleDef{
		ID:          types.RuleRequired,
		Name:        "required-fields",
		Scope:       ScopeGroup,
		Description: "REQUIRED fields must be present and never blank",
		Group:       checkRequiredFields,
	})
	Register(RuleDef{
		ID:          types.RuleParent,
		Name:        "parent-group",
		Scope:       ScopeGroup,
		Description: "Every row of a child GROUP must match a row of its parent on the parent's KEY fields",
		Group:       checkParentGroup,
	})
}

// =============================================================================
// 10a KEY
// =============================================================================

func checkKeyFields(ctx *Context, g *model.Group) {
	keys := ctx.Schema.KeyHeadings(g.Name)
	if len(keys) == 0 {
		return
	}
	for _, k := range keys {
		if !g.HasColumn(k) {
			ctx.Report(types.RuleKey, g.Name, g.HeadingRow, k, "KEY field %s missing", k)
		}
	}

	present := model.Intersect(keys, g.Headings())
	if len(present) == 0 {
		return
	}

	counts := make(map[string]int, g.RowCount())
	for _, row := range g.Rows() {
		counts[row.KeyString(present, keySep)]++
	}
	for _, row := range g.Rows() {
		if counts[row.KeyString(present, keySep)] > 1 {
			ctx.Report(types.RuleKey, g.Name, row.Line(), "",
				"duplicate KEY field combination %s", row.KeyString(present, "|"))
		}
	}
}

// =============================================================================
// 10b REQUIRED
// =============================================================================

func checkRequiredFields(ctx *Context, g *model.Group) {
	required := ctx.Schema.RequiredHeadings(g.Name)
	if len(required) == 0 {
		return
	}
	for _, h := range required {
		if !g.HasColumn(h) {
			ctx.Report(types.RuleRequired, g.Name, g.HeadingRow, h, "REQUIRED field %s missing", h)
		}
	}

	present := model.Intersect(required, g.Headings())
	for _, row := range g.Rows() {
		var blank []string
		for _, h := range present {
			if row.Get(h) == "" {
				blank = append(blank, h)
			}
		}
		if len(blank) > 0 {
			fields := strings.Join(blank, ",")
			ctx.Report(types.RuleRequired, g.Name, row.Line(), fields, "REQUIRED field(s) %s blank", fields)
		}
	}
}

// =============================================================================
// 10c PARENT
// =============================================================================

func checkParentGroup(ctx *Context, g *model.Group) {
	if dictionary.IsRoot(g.Name) {
		return
	}

	// Undefined GROUPs have no parent either.
	parentName := ctx.Schema.Parent(g.Name)
	if parentName == "" {
		ctx.Report(types.RuleParent, g.Name, g.GroupRow, "", "no parent GROUP declared for %s", g.Name)
		return
	}
	parent := ctx.Container.Group(parentName)
	if parent == nil {
		ctx.Report(types.RuleParent, g.Name, g.GroupRow, "", "parent GROUP %s missing from file", parentName)
		return
	}

	parentKeys := ctx.Schema.KeyHeadings(parentName)
	if len(parentKeys) == 0 {
		ctx.Report(types.RuleParent, g.Name, g.GroupRow, "", "KEY fields of parent GROUP %s cannot be resolved", parentName)
		return
	}

	var shared []string
	for _, k := range parentKeys {
		switch {
		case !g.HasColumn(k):
			ctx.Report(types.RuleParent, g.Name, g.HeadingRow, k, "parent KEY field %s missing", k)
		case !parent.HasColumn(k):
			ctx.Report(types.RuleParent, g.Name, parent.HeadingRow, k, "KEY field %s missing from parent GROUP %s", k, parentName)
		default:
			shared = append(shared, k)
		}
	}
	if len(shared) != len(parentKeys) {
		return
	}

	known := make(map[string]bool, parent.RowCount())
	for _, row := range parent.Rows() {
		known[row.KeyString(shared, keySep)] = true
	}
	for _, row := range g.Rows() {
		if !known[row.KeyString(shared, keySep)] {
			ctx.Report(types.RuleParent, g.Name, row.Line(), "",
				"no %s row matches %s", parentName, row.KeyString(shared, "|"))
		}
	}
}
