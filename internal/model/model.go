// =============================================================================
// AGS Data Validator - Data Model
// =============================================================================
//
// This package holds the columnar model shared by subject files and reference
// dictionaries:
//
//   Container ── ordered, name-unique Groups
//     Group   ── descriptor row numbers, row-origin line numbers, Columns
//       Column ── Heading / Unit / Type / Status, raw string cell values
//
// Rows are never stored. A Row is a view (Group + index) created on demand.
// All cell data is kept as the raw string read from the file; typed access
// goes through the coercion helpers in query.go.
//
// =============================================================================

package model

import (
	"strings"
)

// =============================================================================
// STATUS
// =============================================================================

// Status is the dictionary status of a HEADING.
type Status uint8

const (
	// StatusNone means no status was declared.
	StatusNone Status = iota
	// StatusOther is the explicit "OTHER" status.
	StatusOther
	// StatusKey marks a KEY field.
	StatusKey
	// StatusRequired marks a REQUIRED field.
	StatusRequired
	// StatusKeyRequired marks a field that is both KEY and REQUIRED.
	StatusKeyRequired
)

// ParseStatus converts a DICT_STAT value into a Status. Unknown values map to
// StatusNone.
func ParseStatus(s string) Status {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "KEY":
		return StatusKey
	case "REQUIRED":
		return StatusRequired
	case "KEY+REQUIRED", "REQUIRED+KEY":
		return StatusKeyRequired
	case "OTHER":
		return StatusOther
	default:
		return StatusNone
	}
}

// IsKey reports whether the status includes KEY.
func (s Status) IsKey() bool {
	return s == StatusKey || s == StatusKeyRequired
}

// IsRequired reports whether the status includes REQUIRED.
func (s Status) IsRequired() bool {
	return s == StatusRequired || s == StatusKeyRequired
}

func (s Status) String() string {
	switch s {
	case StatusOther:
		return "OTHER"
	case StatusKey:
		return "KEY"
	case StatusRequired:
		return "REQUIRED"
	case StatusKeyRequired:
		return "KEY+REQUIRED"
	default:
		return ""
	}
}

// =============================================================================
// DESCRIPTORS
// =============================================================================

// Descriptor identifies one of the schema rows of a GROUP.
type Descriptor int

const (
	DescriptorGroup Descriptor = iota
	DescriptorHeading
	DescriptorUnit
	DescriptorType
	DescriptorData
)

// Descriptors lists the descriptor keywords in the order they appear in a
// well-formed GROUP.
var Descriptors = []Descriptor{DescriptorGroup, DescriptorHeading, DescriptorUnit, DescriptorType, DescriptorData}

func (d Descriptor) String() string {
	switch d {
	case DescriptorGroup:
		return "GROUP"
	case DescriptorHeading:
		return "HEADING"
	case DescriptorUnit:
		return "UNIT"
	case DescriptorType:
		return "TYPE"
	case DescriptorData:
		return "DATA"
	default:
		return ""
	}
}

// ParseDescriptor maps a row's first field to a Descriptor.
func ParseDescriptor(s string) (Descriptor, bool) {
	for _, d := range Descriptors {
		if d.String() == s {
			return d, true
		}
	}
	return 0, false
}

// =============================================================================
// CONTAINER
// =============================================================================

// Container owns the ordered GROUPs of one file.
type Container struct {
	// Path is the source file path ("" for embedded resources).
	Path string

	groups []*Group
	index  map[string]int
}

// NewContainer creates an empty Container for the given source path.
func NewContainer(path string) *Container {
	return &Container{
		Path:  path,
		index: make(map[string]int),
	}
}

// Add appends g. It returns false and leaves the Container unchanged when a
// GROUP with the same name is already present.
func (c *Container) Add(g *Group) bool {
	if _, exists := c.index[g.Name]; exists {
		return false
	}
	c.index[g.Name] = len(c.groups)
	c.groups = append(c.groups, g)
	return true
}

// Group returns the GROUP with the given name, or nil.
func (c *Container) Group(name string) *Group {
	if c == nil {
		return nil
	}
	if i, ok := c.index[name]; ok {
		return c.groups[i]
	}
	return nil
}

// Has reports whether a GROUP with the given name exists.
func (c *Container) Has(name string) bool {
	return c.Group(name) != nil
}

// At returns the GROUP at position i (file order).
func (c *Container) At(i int) *Group {
	return c.groups[i]
}

// Len returns the number of GROUPs.
func (c *Container) Len() int {
	if c == nil {
		return 0
	}
	return len(c.groups)
}

// Groups returns the GROUPs in file order. The slice must not be modified.
func (c *Container) Groups() []*Group {
	if c == nil {
		return nil
	}
	return c.groups
}

// Names returns the GROUP names in file order.
func (c *Container) Names() []string {
	names := make([]string, len(c.groups))
	for i, g := range c.groups {
		names[i] = g.Name
	}
	return names
}

// =============================================================================
// GROUP
// =============================================================================

// Group is one named block of the file.
type Group struct {
	Name string

	// 1-based source lines of the descriptor rows; 0 means the row is missing.
	GroupRow   int
	HeadingRow int
	UnitRow    int
	TypeRow    int

	// DataRow is the line of the first DATA row, 0 if there is none.
	DataRow int

	// ParentGroup names the parent GROUP. It is resolved through a Container
	// lookup, never stored as a pointer.
	ParentGroup string

	// Description is the DICT_DESC text for dictionary groups.
	Description string

	// Lines holds the source line of every DATA row, in file order. It is the
	// stable external row identifier and is never rewritten.
	Lines []int

	// Columns holds the HEADING columns in file order.
	Columns []*Column

	byHeading map[string]int
}

// NewGroup creates an empty GROUP.
func NewGroup(name string) *Group {
	return &Group{
		Name:      name,
		byHeading: make(map[string]int),
	}
}

// DescriptorRow returns the source line of the given descriptor row.
func (g *Group) DescriptorRow(d Descriptor) int {
	switch d {
	case DescriptorGroup:
		return g.GroupRow
	case DescriptorHeading:
		return g.HeadingRow
	case DescriptorUnit:
		return g.UnitRow
	case DescriptorType:
		return g.TypeRow
	case DescriptorData:
		return g.DataRow
	default:
		return 0
	}
}

// SetDescriptorRow records line for descriptor d if it has not been set yet.
// It returns false when the row was already recorded.
func (g *Group) SetDescriptorRow(d Descriptor, line int) bool {
	var target *int
	switch d {
	case DescriptorGroup:
		target = &g.GroupRow
	case DescriptorHeading:
		target = &g.HeadingRow
	case DescriptorUnit:
		target = &g.UnitRow
	case DescriptorType:
		target = &g.TypeRow
	case DescriptorData:
		target = &g.DataRow
	default:
		return false
	}
	if *target != 0 {
		return false
	}
	*target = line
	return true
}

// AddColumn appends a new column with the given heading and returns it.
// When the heading already exists the first column keeps the name lookup.
func (g *Group) AddColumn(heading string) *Column {
	col := &Column{Heading: heading, Group: g}
	if g.byHeading == nil {
		g.byHeading = make(map[string]int)
	}
	if _, exists := g.byHeading[heading]; !exists {
		g.byHeading[heading] = len(g.Columns)
	}
	// Keep every column the same length as the row-origin sequence.
	if n := len(g.Lines); n > 0 {
		col.Data = make([]string, n)
	}
	g.Columns = append(g.Columns, col)
	return col
}

// Column returns the column with the given heading, or nil.
func (g *Group) Column(heading string) *Column {
	if g == nil {
		return nil
	}
	if i, ok := g.byHeading[heading]; ok {
		return g.Columns[i]
	}
	return nil
}

// HasColumn reports whether the heading is present.
func (g *Group) HasColumn(heading string) bool {
	return g.Column(heading) != nil
}

// Headings returns the column headings in order.
func (g *Group) Headings() []string {
	if g == nil {
		return nil
	}
	out := make([]string, len(g.Columns))
	for i, c := range g.Columns {
		out[i] = c.Heading
	}
	return out
}

// AppendRow adds one DATA row. values are matched to columns by position;
// missing values become "" and surplus values are dropped so that every
// column stays the same length as Lines.
func (g *Group) AppendRow(line int, values []string) {
	g.Lines = append(g.Lines, line)
	for i, col := range g.Columns {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		col.Data = append(col.Data, v)
	}
}

// RowCount returns the number of DATA rows.
func (g *Group) RowCount() int {
	if g == nil {
		return 0
	}
	return len(g.Lines)
}

// Row returns a view over row i.
func (g *Group) Row(i int) Row {
	return Row{group: g, index: i}
}

// Rows returns views over all rows.
func (g *Group) Rows() []Row {
	rows := make([]Row, g.RowCount())
	for i := range rows {
		rows[i] = Row{group: g, index: i}
	}
	return rows
}

// =============================================================================
// COLUMN
// =============================================================================

// Column is one HEADING of a GROUP together with its cell values.
type Column struct {
	Heading string
	Unit    string
	Type    string
	Status  Status

	// Description is the DICT_DESC text for dictionary columns.
	Description string

	// Group is the owning GROUP (non-owning back-reference).
	Group *Group

	// Data holds the raw cell values, one per DATA row, in file order.
	Data []string
}

// Value returns the cell at row i, or "" when out of range.
func (c *Column) Value(i int) string {
	if c == nil || i < 0 || i >= len(c.Data) {
		return ""
	}
	return c.Data[i]
}

// Distinct returns the distinct non-empty values in first-seen order.
func (c *Column) Distinct() []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range c.Data {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
