package decoder

import (
	"github.com/ginjaninja78/AGS-data-validator/internal/model"
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

// =============================================================================
// MODEL BUILDER
// =============================================================================

// Builder consumes classified rows and grows a Container from them.
//
// Findings that depend on the state built so far (a row before any GROUP, a
// row before the HEADING row, a field count that disagrees with the HEADING
// row, a repeated descriptor row, a repeated GROUP) are raised here. Findings
// that only need the row itself live in checks.go.
type Builder struct {
	container *model.Container
	errs      *types.Collector

	// current is the GROUP rows are applied to. It is nil before the first
	// GROUP row.
	current *model.Group

	// attached is false when current is not part of the container: a GROUP
	// whose name is blank or already taken. Its rows are still tracked so
	// field counts can be checked.
	attached bool
}

// NewBuilder creates a Builder for the file at path.
func NewBuilder(path string, errs *types.Collector) *Builder {
	return &Builder{
		container: model.NewContainer(path),
		errs:      errs,
	}
}

// Container returns the Container built so far.
func (b *Builder) Container() *model.Container {
	return b.container
}

// Current returns the GROUP rows are currently applied to, or nil.
func (b *Builder) Current() *model.Group {
	return b.current
}

// CurrentName returns the name of the current GROUP, or "".
func (b *Builder) CurrentName() string {
	if b.current == nil {
		return ""
	}
	return b.current.Name
}

// Apply incorporates one row. It returns true when a DATA row was appended to
// a GROUP held by the container.
func (b *Builder) Apply(ev *Event) bool {
	if ev.Blank || !ev.Known {
		return false
	}
	if ev.Descriptor == model.DescriptorGroup {
		b.startGroup(ev)
		return false
	}

	g := b.current
	if g == nil {
		b.errs.Addf(types.RuleFieldCount, "", ev.Line, "", "%s row appears before any GROUP row", ev.Descriptor)
		return false
	}

	values := ev.Fields[1:]

	if ev.Descriptor == model.DescriptorHeading {
		if g.SetDescriptorRow(model.DescriptorHeading, ev.Line) {
			for _, h := range values {
				g.AddColumn(h)
			}
			return false
		}
		b.errs.Addf(types.RuleDescriptorRows, g.Name, ev.Line, "", "HEADING row repeated, first HEADING row is line %d", g.HeadingRow)
		b.checkWidth(g, ev)
		return false
	}

	if g.HeadingRow == 0 {
		b.errs.Addf(types.RuleFieldCount, g.Name, ev.Line, "", "HEADING row missing")
		// Placement is still judged by rule 2b.
		if ev.Descriptor == model.DescriptorUnit || ev.Descriptor == model.DescriptorType {
			g.SetDescriptorRow(ev.Descriptor, ev.Line)
		}
		return false
	}
	b.checkWidth(g, ev)

	switch ev.Descriptor {
	case model.DescriptorUnit, model.DescriptorType:
		if first := g.DescriptorRow(ev.Descriptor); first != 0 {
			b.errs.Addf(types.RuleDescriptorRows, g.Name, ev.Line, "", "%s row repeated, first %s row is line %d", ev.Descriptor, ev.Descriptor, first)
			return false
		}
		g.SetDescriptorRow(ev.Descriptor, ev.Line)
		for i, col := range g.Columns {
			v := ""
			if i < len(values) {
				v = values[i]
			}
			if ev.Descriptor == model.DescriptorUnit {
				col.Unit = v
			} else {
				col.Type = v
			}
		}
	case model.DescriptorData:
		g.SetDescriptorRow(model.DescriptorData, ev.Line)
		g.AppendRow(ev.Line, values)
		return b.attached
	}
	return false
}

// startGroup opens a new GROUP. A blank or repeated name yields a detached
// GROUP: rows are still read against it but it never enters the container.
func (b *Builder) startGroup(ev *Event) {
	name := ""
	if len(ev.Fields) > 1 {
		name = ev.Fields[1]
	}

	g := model.NewGroup(name)
	g.GroupRow = ev.Line
	b.current = g
	b.attached = false

	if name == "" {
		return
	}
	if first := b.container.Group(name); first != nil {
		b.errs.Addf(types.RuleDataRows, name, ev.Line, "", "GROUP %s appears more than once, first occurrence is line %d", name, first.GroupRow)
		return
	}
	b.attached = b.container.Add(g)
}

// checkWidth compares the row's field count with the HEADING row, counting
// the descriptor field.
func (b *Builder) checkWidth(g *model.Group, ev *Event) {
	want := len(g.Columns) + 1
	if got := len(ev.Fields); got != want {
		b.errs.Addf(types.RuleFieldCount, g.Name, ev.Line, "", "%s row has %d fields, HEADING row has %d", ev.Descriptor, got, want)
	}
}
