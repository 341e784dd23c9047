package validation

import (
	"github.com/ginjaninja78/AGS-data-validator/internal/model"
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

func init() {
	Register(RuleDef{
		ID:          types.RuleDataRows,
		Name:        "data-rows",
		Scope:       ScopeGroup,
		Description: "Each GROUP must contain at least one DATA row",
		Group:       checkDataRows,
	})
	Register(RuleDef{
		ID:          types.RuleDescriptorRows,
		Name:        "descriptor-rows",
		Scope:       ScopeGroup,
		Description: "HEADING, UNIT and TYPE rows must exist, in that order, one directly after the other",
		Group:       checkDescriptorRows,
	})
}

func checkDataRows(ctx *Context, g *model.Group) {
	if g.RowCount() == 0 {
		ctx.Report(types.RuleDataRows, g.Name, g.GroupRow, "", "GROUP %s has no DATA rows", g.Name)
	}
}

func checkDescriptorRows(ctx *Context, g *model.Group) {
	for _, d := range []model.Descriptor{model.DescriptorHeading, model.DescriptorUnit, model.DescriptorType} {
		if g.DescriptorRow(d) == 0 {
			ctx.Report(types.RuleDescriptorRows, g.Name, g.GroupRow, "", "%s row missing", d)
		}
	}

	// Each row must sit directly below its predecessor.
	order := []model.Descriptor{model.DescriptorHeading, model.DescriptorUnit, model.DescriptorType}
	for i := 1; i < len(order); i++ {
		prev, cur := g.DescriptorRow(order[i-1]), g.DescriptorRow(order[i])
		if prev == 0 || cur == 0 {
			continue
		}
		if cur != prev+1 {
			ctx.Report(types.RuleDescriptorRows, g.Name, cur, "",
				"%s row is misplaced, expected directly after the %s row on line %d", order[i], order[i-1], prev)
		}
	}
}
