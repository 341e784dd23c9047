package dictionary

import (
	"github.com/ginjaninja78/AGS-data-validator/internal/model"
)

// RootGroups have no natural parent and are exempt from parent-link checks.
var RootGroups = []string{
	"PROJ", "TRAN", "ABBR", "DICT", "UNIT", "TYPE", "LOCA", "FILE", "LBSG", "PREM", "STND",
}

// IsRoot reports whether name is one of the RootGroups.
func IsRoot(name string) bool {
	return model.Contains(RootGroups, name)
}

// Schema resolves the effective definition of a GROUP: the standard
// dictionary entry merged with any definition the subject file adds in its
// own DICT group. Standard headings come first, then file-defined ones.
//
// A Schema belongs to one validation run and is not safe for concurrent use.
type Schema struct {
	ref  *Dictionary
	user *model.Container

	merged map[string]*model.Group
}

// NewSchema builds the effective schema for file against ref. file may be nil
// or carry no DICT group.
func NewSchema(ref *Dictionary, file *model.Container) *Schema {
	return &Schema{
		ref:    ref,
		user:   FromDict(file.Group("DICT")),
		merged: make(map[string]*model.Group),
	}
}

// Reference returns the standard dictionary.
func (s *Schema) Reference() *Dictionary {
	return s.ref
}

// UserDefined returns the GROUPs defined by the subject file's DICT group.
func (s *Schema) UserDefined() *model.Container {
	return s.user
}

// Group returns the effective definition of name, or nil when neither source
// defines it.
func (s *Schema) Group(name string) *model.Group {
	if g, ok := s.merged[name]; ok {
		return g
	}
	g := model.MergeGroups(s.ref.Group(name), s.user.Group(name))
	s.merged[name] = g
	return g
}

// HasGroup reports whether name is defined by either source.
func (s *Schema) HasGroup(name string) bool {
	return s.Group(name) != nil
}

// Headings returns the effective HEADINGs of name in dictionary order.
func (s *Schema) Headings(name string) []string {
	return s.Group(name).Headings()
}

// Column returns the effective definition of a HEADING, or nil.
func (s *Schema) Column(group, heading string) *model.Column {
	return s.Group(group).Column(heading)
}

// KeyHeadings returns the HEADINGs of name whose status includes KEY.
func (s *Schema) KeyHeadings(name string) []string {
	return model.HeadingsOf(model.KeyColumns(s.Group(name)))
}

// RequiredHeadings returns the HEADINGs of name whose status includes REQUIRED.
func (s *Schema) RequiredHeadings(name string) []string {
	return model.HeadingsOf(model.RequiredColumns(s.Group(name)))
}

// Parent returns the declared parent GROUP of name, or "".
func (s *Schema) Parent(name string) string {
	g := s.Group(name)
	if g == nil {
		return ""
	}
	return g.ParentGroup
}

// InReference reports whether the standard dictionary defines heading under
// group.
func (s *Schema) InReference(group, heading string) bool {
	return s.ref.Group(group).HasColumn(heading)
}
