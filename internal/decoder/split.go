package decoder

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnquoted is reported for a field not enclosed in double quotes.
	ErrUnquoted = errors.New("field is not enclosed in double quotes")
	// ErrBareQuote is reported when text follows the closing quote of a field.
	ErrBareQuote = errors.New("unescaped double quote in field")
	// ErrUnterminatedQuote is reported when a quoted field is not closed before the end of the line.
	ErrUnterminatedQuote = errors.New("unterminated quoted field")
)

// FieldError locates a quoting problem within one line.
type FieldError struct {
	// Field is the 1-based field position.
	Field int
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %d: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Split breaks one line (terminator already removed) into its comma separated
// fields, unquoting each and collapsing doubled quotes. Splitting never fails:
// malformed fields are recovered as well as possible and reported as issues so
// the row can still be classified.
func Split(line string) (fields []string, issues []*FieldError) {
	if line == "" {
		return nil, nil
	}

	n := len(line)
	i := 0
	for pos := 1; ; pos++ {
		var b strings.Builder

		if line[i] == '"' {
			i++
			closed := false
			for i < n {
				c := line[i]
				if c == '"' {
					if i+1 < n && line[i+1] == '"' {
						b.WriteByte('"')
						i += 2
						continue
					}
					i++
					closed = true
					break
				}
				b.WriteByte(c)
				i++
			}

			switch {
			case !closed:
				issues = append(issues, &FieldError{Field: pos, Err: ErrUnterminatedQuote})
			case i < n && line[i] != ',':
				issues = append(issues, &FieldError{Field: pos, Err: ErrBareQuote})
				for i < n && line[i] != ',' {
					b.WriteByte(line[i])
					i++
				}
			}
		} else {
			start := i
			for i < n && line[i] != ',' {
				i++
			}
			b.WriteString(line[start:i])
			issues = append(issues, &FieldError{Field: pos, Err: ErrUnquoted})
		}

		fields = append(fields, b.String())
		if i >= n {
			return fields, issues
		}

		// Skip the separator. A trailing comma yields one more, empty and
		// unquoted, field on the next pass.
		i++
		if i == n {
			fields = append(fields, "")
			issues = append(issues, &FieldError{Field: pos + 1, Err: ErrUnquoted})
			return fields, issues
		}
	}
}
