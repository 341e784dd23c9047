package validation

import (
	"strings"

	"github.com/ginjaninja78/AGS-data-validator/internal/model"
	"github.com/ginjaninja78/AGS-data-validator/internal/numeric"
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

func init() {
	Register(RuleDef{
		ID:          types.RuleDataType,
		Name:        "data-type",
		Scope:       ScopeRow,
		Description: "Values must be written in the format of the column's TYPE",
	})
}

// Non-numeric TYPE codes with a checkable format.
const (
	typeYesNo    = "YN"
	typeDateTime = "DT"
	typeDecimal  = "U"
)

// checkDataTypes checks every cell of one freshly stored DATA row against the
// TYPE declared in the file's TYPE row. Blank cells and TYPEs without a
// format are skipped.
func checkDataTypes(errs *types.Collector, g *model.Group, index int) {
	line := g.Lines[index]
	for _, col := range g.Columns {
		value := col.Value(index)
		if value == "" || col.Type == "" {
			continue
		}
		if !validType(col, value) {
			errs.Addf(types.RuleDataType, g.Name, line, col.Heading,
				"value %q does not match TYPE %s", value, col.Type)
		}
	}
}

func validType(col *model.Column, value string) bool {
	typ := strings.TrimSpace(col.Type)
	switch {
	case numeric.Handles(typ):
		return numeric.Valid(typ, value)
	case typ == typeYesNo:
		v := strings.ToUpper(value)
		return v == "Y" || v == "N"
	case typ == typeDateTime:
		_, ok := model.AsTime(value, col.Unit)
		return ok
	case typ == typeDecimal:
		_, ok := model.AsDecimal(value)
		return ok
	default:
		return true
	}
}
