package validation

import (
	"regexp"
	"strings"

	"github.com/ginjaninja78/AGS-data-validator/internal/model"
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

const maxHeadingLength = 9

var (
	groupNamePattern    = regexp.MustCompile(`^[A-Z]{4}$`)
	headingCharsPattern = regexp.MustCompile(`^[A-Z0-9_]+$`)
)

func init() {
	Register(RuleDef{
		ID:          types.RuleGroupName,
		Name:        "group-name",
		Scope:       ScopeGroup,
		Description: "GROUP names must be four uppercase letters",
		Group:       checkGroupName,
	})
	Register(RuleDef{
		ID:          types.RuleHeadingName,
		Name:        "heading-name",
		Scope:       ScopeGroup,
		Description: "HEADINGs may only use uppercase letters, digits and underscore, up to nine characters",
		Group:       checkHeadingNames,
	})
	Register(RuleDef{
		ID:          types.RuleHeadingForm,
		Name:        "heading-form",
		Scope:       ScopeGroup,
		Description: "HEADINGs must read GGGG_FFFF with a known GROUP prefix and be defined in the dictionary",
		Group:       checkHeadingForm,
	})
}

func checkGroupName(ctx *Context, g *model.Group) {
	if !groupNamePattern.MatchString(g.Name) {
		ctx.Report(types.RuleGroupName, g.Name, g.GroupRow, "", "GROUP name %q must be four uppercase letters", g.Name)
	}
}

func checkHeadingNames(ctx *Context, g *model.Group) {
	for _, h := range g.Headings() {
		if h == model.DescriptorHeading.String() {
			continue
		}
		if !headingCharsPattern.MatchString(h) {
			ctx.Report(types.RuleHeadingName, g.Name, g.HeadingRow, h,
				"HEADING %q may only contain uppercase letters, digits and underscore", h)
		}
		if len(h) > maxHeadingLength {
			ctx.Report(types.RuleHeadingName, g.Name, g.HeadingRow, h,
				"HEADING %s is longer than %d characters", h, maxHeadingLength)
		}
	}
}

func checkHeadingForm(ctx *Context, g *model.Group) {
	defined := ctx.Schema.Headings(g.Name)

	for _, h := range g.Headings() {
		if h == model.DescriptorHeading.String() {
			continue
		}

		prefix, suffix, found := strings.Cut(h, "_")
		if !found || len(prefix) != 4 || len(suffix) == 0 || len(suffix) > 4 {
			ctx.Report(types.RuleHeadingForm, g.Name, g.HeadingRow, h, "HEADING %s is not of the form GGGG_FFFF", h)
		} else if !ctx.Schema.HasGroup(prefix) && !ctx.Container.Has(prefix) {
			ctx.Report(types.RuleHeadingForm, g.Name, g.HeadingRow, h, "HEADING %s prefix %s is not a known GROUP", h, prefix)
		}

		if !model.Contains(defined, h) {
			ctx.Report(types.RuleHeadingForm, g.Name, g.HeadingRow, h, "HEADING %s is not defined in the dictionary for %s", h, g.Name)
		}
	}
}
