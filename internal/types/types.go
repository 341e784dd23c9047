// =============================================================================
// AGS Data Validator - Shared Types
// =============================================================================
//
// This package contains the diagnostic types shared by the decoder (row-scope
// checks run inline while reading) and the validation engine (group and file
// scope rules). Keeping them here avoids an import cycle between:
//   - decoder
//   - validation
//   - report / xlsxexport
//
// =============================================================================

package types

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// StatusFail is the only status ever attached to an emitted RuleError.
const StatusFail = "Fail"

// =============================================================================
// RULE IDENTIFIERS
// =============================================================================

// RuleID is the numeric form of an AGS rule identifier: the rule number times
// ten plus the subcase (a=1, b=2, c=3). Rule "10a" is 101, rule "2" is 20.
// Sorting on this value gives the numeric order reports expect.
type RuleID int

// Rule builds a RuleID from a rule number and an optional subcase letter.
// An empty subcase yields number*10.
func Rule(number int, subcase string) RuleID {
	id := number * 10
	if subcase != "" {
		id += int(strings.ToLower(subcase)[0]-'a') + 1
	}
	return RuleID(id)
}

// ErrInvalidRuleID is returned by ParseRuleID for text that is not a rule
// identifier.
var ErrInvalidRuleID = errors.New("invalid rule identifier")

// ParseRuleID reads the documented form of a rule identifier, e.g. "10a" or
// "13". An optional "rule" prefix is ignored.
func ParseRuleID(s string) (RuleID, error) {
	text := strings.ToLower(strings.TrimSpace(s))
	text = strings.TrimSpace(strings.TrimPrefix(text, "rule"))

	digits := strings.TrimRight(text, "abc")
	subcase := text[len(digits):]
	if len(subcase) > 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRuleID, s)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRuleID, s)
	}
	return Rule(n, subcase), nil
}

// Number returns the rule number without the subcase.
func (r RuleID) Number() int {
	return int(r) / 10
}

// Subcase returns the subcase letter ("" when the rule has none).
func (r RuleID) Subcase() string {
	sub := int(r) % 10
	if sub == 0 {
		return ""
	}
	return string(rune('a' + sub - 1))
}

// String renders the identifier as printed in AGS documentation, e.g. "10a".
func (r RuleID) String() string {
	return fmt.Sprintf("%d%s", r.Number(), r.Subcase())
}

// Rule identifiers used across the decoder and the engine.
const (
	RuleASCII            RuleID = 10
	RuleDataRows         RuleID = 20
	RuleLineTerminator   RuleID = 21
	RuleDescriptorRows   RuleID = 22
	RuleDuplicateHeading RuleID = 23
	RuleDataDescriptor   RuleID = 30
	RuleGroupRowFields   RuleID = 41
	RuleFieldCount       RuleID = 42
	RuleQuoting          RuleID = 50
	RuleHeadingOrder     RuleID = 70
	RuleDataType         RuleID = 80
	RuleKey              RuleID = 101
	RuleRequired         RuleID = 102
	RuleParent           RuleID = 103
	RuleDelimiter        RuleID = 111
	RuleConcatenator     RuleID = 112
	RuleRecordLink       RuleID = 113
	RuleProj             RuleID = 130
	RuleTran             RuleID = 140
	RuleUnit             RuleID = 150
	RuleAbbr             RuleID = 160
	RuleType             RuleID = 170
	RuleDict             RuleID = 180
	RuleGroupName        RuleID = 190
	RuleHeadingName      RuleID = 191
	RuleHeadingForm      RuleID = 192
	RuleFile             RuleID = 200
)

// =============================================================================
// RULE ERROR
// =============================================================================

// RuleError is a single finding produced by a validation run.
type RuleError struct {
	// Status is always StatusFail for emitted findings.
	Status string

	// RuleID identifies the violated rule.
	RuleID RuleID

	// Group is the GROUP the finding belongs to ("" for file-level findings
	// raised before any GROUP row).
	Group string

	// RowNumber is the 1-based source line of the offending row, or 0 when the
	// finding concerns the file or GROUP as a whole.
	RowNumber int

	// Field is the HEADING involved, if any.
	Field string

	// Message is the human-readable description.
	Message string
}

// Error implements the error interface so a RuleError can be logged or
// wrapped like any other error value.
func (e RuleError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rule %s", e.RuleID)
	if e.Group != "" {
		fmt.Fprintf(&b, " [%s]", e.Group)
	}
	if e.RowNumber > 0 {
		fmt.Fprintf(&b, " line %d", e.RowNumber)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " %s", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// =============================================================================
// COLLECTOR
// =============================================================================

// Collector accumulates RuleErrors for one validation run.
// It is not safe for concurrent use; a run owns its collector exclusively.
type Collector struct {
	errors   []RuleError
	disabled map[RuleID]bool
}

// NewCollector creates an empty collector. Findings for any rule listed in
// disabled are dropped on Add.
func NewCollector(disabled ...RuleID) *Collector {
	c := &Collector{disabled: make(map[RuleID]bool, len(disabled))}
	for _, id := range disabled {
		c.disabled[id] = true
	}
	return c
}

// Add records a finding. Status is forced to StatusFail.
func (c *Collector) Add(e RuleError) {
	if c.disabled[e.RuleID] {
		return
	}
	e.Status = StatusFail
	c.errors = append(c.errors, e)
}

// Addf is a convenience wrapper around Add that formats the message.
func (c *Collector) Addf(rule RuleID, group string, row int, field, format string, args ...any) {
	c.Add(RuleError{
		RuleID:    rule,
		Group:     group,
		RowNumber: row,
		Field:     field,
		Message:   fmt.Sprintf(format, args...),
	})
}

// Disabled reports whether findings for rule are suppressed.
func (c *Collector) Disabled(rule RuleID) bool {
	return c.disabled[rule]
}

// Len returns the number of findings recorded so far.
func (c *Collector) Len() int {
	return len(c.errors)
}

// Sorted returns a copy of the findings stably sorted by ascending RuleID.
// Findings with the same RuleID keep the order in which they were added.
func (c *Collector) Sorted() []RuleError {
	out := make([]RuleError, len(c.errors))
	copy(out, c.errors)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RuleID < out[j].RuleID
	})
	return out
}

// CountByRule returns the number of findings per rule.
func CountByRule(errs []RuleError) map[RuleID]int {
	counts := make(map[RuleID]int)
	for _, e := range errs {
		counts[e.RuleID]++
	}
	return counts
}
