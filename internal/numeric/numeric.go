// =============================================================================
// AGS Data Validator - Numeric Format Checker
// =============================================================================
//
// AGS numeric TYPEs fix the exact written precision of a value:
//   - nDP : exactly n decimal places            (0DP .. 6DP)
//   - nSF : exactly n significant figures       (1SF .. 6SF)
//   - MC  : moisture content, either a bare non-negative integer or 2SF
//
// Every pattern is compiled once when the package loads and stored in a table
// indexed by precision; no pattern is built per cell.
//
// =============================================================================

package numeric

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxPrecision is the largest precision with a precompiled pattern.
const MaxPrecision = 6

// TypeMoistureContent is the moisture content TYPE code.
const TypeMoistureContent = "MC"

// Kind distinguishes decimal-place from significant-figure precision.
type Kind int

const (
	DecimalPlaces Kind = iota
	SignificantFigures
)

func (k Kind) String() string {
	if k == SignificantFigures {
		return "SF"
	}
	return "DP"
}

var (
	dpPatterns [MaxPrecision + 1]*regexp.Regexp
	sfPatterns [MaxPrecision + 1]*regexp.Regexp
	bareInt    = regexp.MustCompile(`^[0-9]+$`)
)

func init() {
	for n := 0; n <= MaxPrecision; n++ {
		dpPatterns[n] = regexp.MustCompile(decimalPlacesPattern(n))
		if n > 0 {
			sfPatterns[n] = regexp.MustCompile(significantFiguresPattern(n))
		}
	}
}

// decimalPlacesPattern matches an optionally signed number with exactly n
// digits after the decimal point (no point at all when n is 0).
func decimalPlacesPattern(n int) string {
	if n == 0 {
		return `^-?[0-9]+$`
	}
	return fmt.Sprintf(`^-?[0-9]+\.[0-9]{%d}$`, n)
}

// significantFiguresPattern matches an optionally signed number written with
// exactly n significant figures. The alternatives are:
//
//	0, 0.0, 0.00 zero written to n figures
//	0.000ddd     leading zeros are not significant
//	d.dd, dd.d   k integer digits followed by n-k decimals
//	ddd          exactly n integer digits
//	ddd00        n significant digits padded with trailing zeros
func significantFiguresPattern(n int) string {
	zero := `0`
	if n > 1 {
		zero = fmt.Sprintf(`0\.0{%d}`, n-1)
	}
	alts := []string{
		zero,
		fmt.Sprintf(`0\.0*[1-9][0-9]{%d}`, n-1),
	}
	for k := 1; k < n; k++ {
		alts = append(alts, fmt.Sprintf(`[1-9][0-9]{%d}\.[0-9]{%d}`, k-1, n-k))
	}
	alts = append(alts, fmt.Sprintf(`[1-9][0-9]{%d}0*`, n-1))
	return `^-?(?:` + strings.Join(alts, "|") + `)$`
}

// ParseType splits a TYPE code such as "2DP" or "3SF" into its precision and
// kind. ok is false for any other TYPE or for precisions with no pattern.
func ParseType(typ string) (precision int, kind Kind, ok bool) {
	typ = strings.TrimSpace(typ)
	if len(typ) < 3 {
		return 0, 0, false
	}
	suffix := typ[len(typ)-2:]
	switch suffix {
	case "DP":
		kind = DecimalPlaces
	case "SF":
		kind = SignificantFigures
	default:
		return 0, 0, false
	}
	precision, err := strconv.Atoi(typ[:len(typ)-2])
	if err != nil || precision < 0 || precision > MaxPrecision {
		return 0, 0, false
	}
	if kind == SignificantFigures && precision == 0 {
		return 0, 0, false
	}
	return precision, kind, true
}

// Handles reports whether typ is one of the numeric TYPEs this package checks.
func Handles(typ string) bool {
	if typ == TypeMoistureContent {
		return true
	}
	_, _, ok := ParseType(typ)
	return ok
}

// Valid reports whether value is written in the precision typ demands.
// Blank values and TYPEs this package does not handle are always valid.
func Valid(typ, value string) bool {
	if value == "" {
		return true
	}
	if typ == TypeMoistureContent {
		return bareInt.MatchString(value) || sfPatterns[2].MatchString(value)
	}
	precision, kind, ok := ParseType(typ)
	if !ok {
		return true
	}
	if kind == SignificantFigures {
		return sfPatterns[precision].MatchString(value)
	}
	return dpPatterns[precision].MatchString(value)
}
