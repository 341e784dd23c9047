package decoder

import (
	"errors"
	"strings"

	"github.com/ginjaninja78/AGS-data-validator/internal/model"
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

// =============================================================================
// ROW-LEVEL CHECKS
// =============================================================================
//
// These checks only look at the row itself. They run for every physical line
// once the row has been applied, so findings carry the GROUP the row ended up
// in. Blank lines only go through the encoding and terminator checks.
//
// =============================================================================

// checkRow runs every row-level check on ev. raw is the line as read,
// terminator included.
func checkRow(ev *Event, raw, group string, errs *types.Collector) {
	checkEncoding(ev.Line, raw, group, errs)
	checkTerminator(ev.Line, raw, group, errs)

	if ev.Blank {
		return
	}

	checkQuoting(ev, group, errs)

	if !ev.Known {
		errs.Addf(types.RuleDataDescriptor, group, ev.Line, "", "unknown data descriptor %q", ev.Fields[0])
		return
	}

	switch ev.Descriptor {
	case model.DescriptorGroup:
		checkGroupRow(ev, group, errs)
	case model.DescriptorHeading:
		checkDuplicateHeadings(ev, group, errs)
	}
}

// checkEncoding reports the first byte outside 7-bit ASCII. One finding per
// line is enough to locate the problem.
func checkEncoding(line int, raw, group string, errs *types.Collector) {
	for i := 0; i < len(raw); i++ {
		if raw[i] > 0x7F {
			errs.Addf(types.RuleASCII, group, line, "", "non-ASCII character at column %d", i+1)
			return
		}
	}
}

func checkTerminator(line int, raw, group string, errs *types.Collector) {
	if !strings.HasSuffix(raw, "\r\n") {
		errs.Addf(types.RuleLineTerminator, group, line, "", "line is not terminated by CR LF")
	}
}

func checkQuoting(ev *Event, group string, errs *types.Collector) {
	for _, issue := range ev.Issues {
		switch {
		case errors.Is(issue.Err, ErrUnquoted):
			errs.Addf(types.RuleQuoting, group, ev.Line, "", "field %d is not enclosed in double quotes", issue.Field)
		default:
			errs.Addf(types.RuleQuoting, group, ev.Line, "", "field %d: %v", issue.Field, issue.Err)
		}
	}
	for i, f := range ev.Fields {
		if f != "" && strings.TrimSpace(f) == "" {
			errs.Addf(types.RuleQuoting, group, ev.Line, "", "field %d contains only whitespace", i+1)
		}
	}
}

func checkGroupRow(ev *Event, group string, errs *types.Collector) {
	switch {
	case len(ev.Fields) > 2:
		errs.Addf(types.RuleGroupRowFields, group, ev.Line, "", "GROUP row has extra fields, expected 2 found %d", len(ev.Fields))
	case len(ev.Fields) < 2 || ev.Fields[1] == "":
		errs.Addf(types.RuleGroupRowFields, group, ev.Line, "", "GROUP row is malformed, no GROUP name")
	}
}

// checkDuplicateHeadings reports each HEADING name that occurs more than once,
// once per name.
func checkDuplicateHeadings(ev *Event, group string, errs *types.Collector) {
	seen := make(map[string]int, len(ev.Fields))
	for _, h := range ev.Fields[1:] {
		seen[h]++
		if seen[h] == 2 {
			errs.Addf(types.RuleDuplicateHeading, group, ev.Line, h, "HEADING %s appears more than once", h)
		}
	}
}
