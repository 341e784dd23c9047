// =============================================================================
// AGS Data Validator - Query / Extension Layer
// =============================================================================
//
// Read-only traversal helpers used by the rule engine and by exporters:
//   - Row views and lookups by heading or position
//   - Row filters by field value
//   - Column selection by status or type
//   - Delimited KEY string rendering
//   - Typed coercion of raw string cells
//   - Order-preserving set helpers and GROUP merging for dictionaries
//
// None of these functions modify the model.
//
// =============================================================================

package model

import (
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// ROW VIEW
// =============================================================================

// Row indexes into a Group at a fixed position.
type Row struct {
	group *Group
	index int
}

// Group returns the GROUP the row belongs to.
func (r Row) Group() *Group { return r.group }

// Index returns the row position within the GROUP.
func (r Row) Index() int { return r.index }

// Line returns the source line number of the row.
func (r Row) Line() int {
	if r.group == nil || r.index >= len(r.group.Lines) {
		return 0
	}
	return r.group.Lines[r.index]
}

// Value returns the cell under heading and whether the heading exists.
func (r Row) Value(heading string) (string, bool) {
	col := r.group.Column(heading)
	if col == nil {
		return "", false
	}
	return col.Value(r.index), true
}

// Get returns the cell under heading, or "" when the heading is absent.
func (r Row) Get(heading string) string {
	v, _ := r.Value(heading)
	return v
}

// At returns the cell in column position i.
func (r Row) At(i int) string {
	if i < 0 || i >= len(r.group.Columns) {
		return ""
	}
	return r.group.Columns[i].Value(r.index)
}

// Values returns the cells under the given headings, in order.
func (r Row) Values(headings []string) []string {
	out := make([]string, len(headings))
	for i, h := range headings {
		out[i] = r.Get(h)
	}
	return out
}

// KeyString renders the row's values under headings joined by sep.
func (r Row) KeyString(headings []string, sep string) string {
	return strings.Join(r.Values(headings), sep)
}

// =============================================================================
// ROW FILTERS
// =============================================================================

// FilterRows returns the rows whose value under heading equals value.
func FilterRows(g *Group, heading, value string) []Row {
	col := g.Column(heading)
	if col == nil {
		return nil
	}
	var out []Row
	for i, v := range col.Data {
		if v == value {
			out = append(out, g.Row(i))
		}
	}
	return out
}

// FilterRowsFunc returns the rows for which keep returns true.
func FilterRowsFunc(g *Group, keep func(Row) bool) []Row {
	var out []Row
	for i := 0; i < g.RowCount(); i++ {
		if row := g.Row(i); keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// =============================================================================
// COLUMN SELECTION
// =============================================================================

// ColumnsWhere returns the columns for which keep returns true.
func ColumnsWhere(g *Group, keep func(*Column) bool) []*Column {
	if g == nil {
		return nil
	}
	var out []*Column
	for _, c := range g.Columns {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// KeyColumns returns the columns whose status includes KEY.
func KeyColumns(g *Group) []*Column {
	return ColumnsWhere(g, func(c *Column) bool { return c.Status.IsKey() })
}

// RequiredColumns returns the columns whose status includes REQUIRED.
func RequiredColumns(g *Group) []*Column {
	return ColumnsWhere(g, func(c *Column) bool { return c.Status.IsRequired() })
}

// ColumnsOfType returns the columns declared with any of the given types.
func ColumnsOfType(g *Group, types ...string) []*Column {
	return ColumnsWhere(g, func(c *Column) bool {
		for _, t := range types {
			if c.Type == t {
				return true
			}
		}
		return false
	})
}

// HeadingsOf returns the headings of cols.
func HeadingsOf(cols []*Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Heading
	}
	return out
}

// =============================================================================
// TYPED COERCION
// =============================================================================

// AsInt parses an integer cell. ok is false for blank or malformed values.
func AsInt(s string) (v int64, ok bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// AsDecimal parses a plain decimal cell (no exponent, no thousands
// separators). ok is false for blank or malformed values.
func AsDecimal(s string) (v float64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "eEinfINFxX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// dateTokens maps AGS date/time UNIT tokens to Go layout fragments.
// "mm" is resolved separately because it means month or minute by position.
var dateTokens = map[string]string{
	"yyyy": "2006",
	"dd":   "02",
	"hh":   "15",
	"ss":   "05",
}

// TimeLayout converts an AGS date/time UNIT such as "yyyy-mm-ddThh:mm:ss" into
// a Go time layout. "mm" means minutes once "hh" has been seen and month
// otherwise. ok is false when the unit carries no recognised tokens.
func TimeLayout(unit string) (layout string, ok bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	var b strings.Builder
	afterHour := false
	for len(u) > 0 {
		switch {
		case strings.HasPrefix(u, "yyyy"):
			b.WriteString(dateTokens["yyyy"])
			u = u[4:]
			ok = true
		case strings.HasPrefix(u, "mm"):
			if afterHour {
				b.WriteString("04")
			} else {
				b.WriteString("01")
			}
			u = u[2:]
			ok = true
		case strings.HasPrefix(u, "dd"), strings.HasPrefix(u, "ss"):
			b.WriteString(dateTokens[u[:2]])
			u = u[2:]
			ok = true
		case strings.HasPrefix(u, "hh"):
			afterHour = true
			b.WriteString(dateTokens["hh"])
			u = u[2:]
			ok = true
		case strings.HasPrefix(u, ".sss"):
			b.WriteString(".000")
			u = u[4:]
		case u[0] == 't':
			b.WriteByte('T')
			u = u[1:]
		default:
			b.WriteByte(u[0])
			u = u[1:]
		}
	}
	return b.String(), ok
}

// AsTime parses a date/time cell using an AGS UNIT format. When unit is blank
// the ISO date forms AGS allows are tried in turn.
func AsTime(s, unit string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	layouts := []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02", "15:04:05", "15:04"}
	if layout, ok := TimeLayout(unit); ok {
		layouts = []string{layout}
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// =============================================================================
// SET HELPERS
// =============================================================================

// Intersect returns the elements of a that also occur in b, in the order of a,
// without duplicates.
func Intersect(a, b []string) []string {
	in := make(map[string]bool, len(b))
	for _, s := range b {
		in[s] = true
	}
	seen := make(map[string]bool)
	var out []string
	for _, s := range a {
		if in[s] && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// Union returns the elements of a followed by the elements of b not already
// present, without duplicates.
func Union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// Contains reports whether list holds s.
func Contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// =============================================================================
// GROUP MERGING
// =============================================================================

// MergeGroups builds a schema GROUP from primary and secondary: primary's
// columns first, then secondary's columns whose heading is not yet present.
// Scalar attributes come from primary unless blank there. Either argument may
// be nil; the result never shares Column values with its inputs.
func MergeGroups(primary, secondary *Group) *Group {
	if primary == nil && secondary == nil {
		return nil
	}
	name := ""
	switch {
	case primary != nil:
		name = primary.Name
	default:
		name = secondary.Name
	}
	merged := NewGroup(name)
	for _, src := range []*Group{primary, secondary} {
		if src == nil {
			continue
		}
		if merged.ParentGroup == "" {
			merged.ParentGroup = src.ParentGroup
		}
		if merged.Description == "" {
			merged.Description = src.Description
		}
		for _, c := range src.Columns {
			if merged.HasColumn(c.Heading) {
				continue
			}
			col := merged.AddColumn(c.Heading)
			col.Unit = c.Unit
			col.Type = c.Type
			col.Status = c.Status
			col.Description = c.Description
		}
	}
	return merged
}
