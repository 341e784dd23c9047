package validation

import (
	"github.com/ginjaninja78/AGS-data-validator/internal/model"
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

// typeUnitCode marks columns whose values are units.
const typeUnitCode = "PU"

func init() {
	Register(RuleDef{
		ID:          types.RuleUnit,
		Name:        "unit-group",
		Scope:       ScopeFile,
		Description: "The UNIT group must define every unit used in the file",
		File:        checkUnits,
	})
	Register(RuleDef{
		ID:          types.RuleType,
		Name:        "type-group",
		Scope:       ScopeFile,
		Description: "The TYPE group must define every data type used in the file",
		File:        checkTypes,
	})
}

// usage is the first place a code is used.
type usage struct {
	code  string
	group string
	line  int
	field string
}

// collectUsage records codes in first-seen order, one usage per code.
type collectUsage struct {
	seen map[string]bool
	list []usage
}

func (c *collectUsage) add(code, group string, line int, field string) {
	if code == "" || c.seen[code] {
		return
	}
	if c.seen == nil {
		c.seen = make(map[string]bool)
	}
	c.seen[code] = true
	c.list = append(c.list, usage{code: code, group: group, line: line, field: field})
}

// checkDefinitions reports a missing definition GROUP, a missing code
// column, and every used code the GROUP does not define.
func checkDefinitions(ctx *Context, rule types.RuleID, groupName, codeHeading, kind string, used []usage) {
	defs := ctx.Container.Group(groupName)
	if defs == nil {
		ctx.Report(rule, groupName, 0, "", "%s group missing", groupName)
		return
	}
	codes := defs.Column(codeHeading)
	if codes == nil {
		ctx.Report(rule, groupName, defs.HeadingRow, codeHeading, "%s missing from %s group", codeHeading, groupName)
		return
	}

	defined := make(map[string]bool, len(codes.Data))
	for _, v := range codes.Data {
		defined[v] = true
	}
	for _, u := range used {
		if !defined[u.code] {
			ctx.Report(rule, u.group, u.line, u.field, "%s %q not defined in %s group", kind, u.code, groupName)
		}
	}
}

func checkUnits(ctx *Context) {
	var used collectUsage
	for _, g := range ctx.Container.Groups() {
		for _, col := range g.Columns {
			used.add(col.Unit, g.Name, g.UnitRow, col.Heading)
		}
	}
	for _, g := range ctx.Container.Groups() {
		for _, col := range model.ColumnsOfType(g, typeUnitCode) {
			for i, v := range col.Data {
				used.add(v, g.Name, g.Lines[i], col.Heading)
			}
		}
	}
	checkDefinitions(ctx, types.RuleUnit, "UNIT", "UNIT_UNIT", "unit", used.list)
}

func checkTypes(ctx *Context) {
	var used collectUsage
	for _, g := range ctx.Container.Groups() {
		for _, col := range g.Columns {
			used.add(col.Type, g.Name, g.TypeRow, col.Heading)
		}
	}
	checkDefinitions(ctx, types.RuleType, "TYPE", "TYPE_TYPE", "data type", used.list)
}
