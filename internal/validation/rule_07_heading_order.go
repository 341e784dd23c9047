package validation

import (
	"strings"

	"github.com/ginjaninja78/AGS-data-validator/internal/model"
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

func init() {
	Register(RuleDef{
		ID:          types.RuleHeadingOrder,
		Name:        "heading-order",
		Scope:       ScopeGroup,
		Description: "HEADINGs must appear in dictionary order",
		Group:       checkHeadingOrder,
	})
}

// checkHeadingOrder compares the HEADINGs both sources share, once in
// dictionary order and once in file order, and reports the first position
// where they disagree.
func checkHeadingOrder(ctx *Context, g *model.Group) {
	ref := ctx.Schema.Headings(g.Name)
	if len(ref) == 0 {
		return
	}
	file := g.Headings()

	expected := model.Intersect(ref, file)
	found := model.Intersect(file, ref)

	for i := range expected {
		if expected[i] == found[i] {
			continue
		}
		ctx.Report(types.RuleHeadingOrder, g.Name, g.HeadingRow, found[i],
			"HEADING %s found where %s expected, dictionary order continues %s",
			found[i], expected[i], strings.Join(expected[i+1:], ","))
		return
	}
}
