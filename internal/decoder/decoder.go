// =============================================================================
// AGS Data Validator - Row Decoder
// =============================================================================
//
// This module turns the physical lines of an AGS file into the columnar model.
// It makes a single streaming pass:
//   - each line is split into fields and classified by its data descriptor
//   - the Builder applies the row to the current GROUP
//   - row-level format checks run against the line
//   - an optional row hook sees every DATA row as soon as it is stored
//
// Decoding never stops on a malformed row. Only I/O failures end the pass
// early; everything else becomes a finding in the Collector.
//
// USAGE:
//   dec, err := decoder.Open(path, errs)
//   if err != nil {
//       return err
//   }
//   defer dec.Close()
//
//   for dec.Next() {
//       ev := dec.Event()
//       // inspect the row...
//   }
//
//   if err := dec.Err(); err != nil {
//       return err
//   }
//   container := dec.Container()
//
// =============================================================================

package decoder

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/AGS-data-validator/internal/model"
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

// =============================================================================
// EVENTS
// =============================================================================

// Event is one classified physical line.
type Event struct {
	// Line is the 1-based source line number.
	Line int

	// Text is the line without its terminator.
	Text string

	// Fields holds the unquoted field values. Fields[0] is the descriptor.
	Fields []string

	// Issues lists the quoting problems found while splitting.
	Issues []*FieldError

	// Descriptor is valid only when Known is true.
	Descriptor model.Descriptor
	Known      bool

	// Blank is true for an empty or whitespace-only line.
	Blank bool

	// Group is the name of the GROUP the row was applied to.
	Group string
}

func newEvent(line int, raw string) Event {
	text := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
	ev := Event{Line: line, Text: text}
	if strings.TrimSpace(text) == "" {
		ev.Blank = true
		return ev
	}
	ev.Fields, ev.Issues = Split(text)
	ev.Descriptor, ev.Known = model.ParseDescriptor(ev.Fields[0])
	return ev
}

// RowHook is called for every DATA row stored in the Container, with the
// GROUP and the index of the new row.
type RowHook func(g *model.Group, index int)

// =============================================================================
// DECODER
// =============================================================================

// Decoder reads an AGS file one line at a time.
type Decoder struct {
	file    *os.File
	reader  *bufio.Reader
	errs    *types.Collector
	builder *Builder
	hook    RowHook

	event Event
	line  int
	done  bool
	err   error
}

// NewDecoder creates a Decoder reading from r. path is recorded on the
// Container and is used to resolve FILE references; it may be "".
//
// PARAMETERS:
//   - r: The source of the file content.
//   - path: The subject file path.
//   - errs: The collector receiving row-level findings.
//
// RETURNS:
//   - A Decoder positioned before the first line.
func NewDecoder(r io.Reader, path string, errs *types.Collector) *Decoder {
	return &Decoder{
		reader:  bufio.NewReader(r),
		errs:    errs,
		builder: NewBuilder(path, errs),
	}
}

// Open creates a Decoder over the file at path. The caller must Close it.
func Open(path string, errs *types.Collector) (*Decoder, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	d := NewDecoder(file, path, errs)
	d.file = file
	return d, nil
}

// OnRow installs a hook that sees every DATA row as it is stored.
func (d *Decoder) OnRow(hook RowHook) {
	d.hook = hook
}

// Next reads, applies and checks the next line. It returns false at the end
// of input or after a read error.
func (d *Decoder) Next() bool {
	if d.done || d.err != nil {
		return false
	}

	raw, err := d.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		d.err = fmt.Errorf("error reading line %d: %w", d.line+1, err)
		return false
	}
	if err == io.EOF {
		d.done = true
		if raw == "" {
			return false
		}
	}

	d.line++
	ev := newEvent(d.line, raw)

	appended := d.builder.Apply(&ev)
	ev.Group = d.builder.CurrentName()
	checkRow(&ev, raw, ev.Group, d.errs)

	if appended && d.hook != nil {
		g := d.builder.Current()
		d.hook(g, g.RowCount()-1)
	}

	d.event = ev
	return true
}

// Event returns the line most recently read by Next.
func (d *Decoder) Event() Event {
	return d.event
}

// Line returns the number of lines read so far.
func (d *Decoder) Line() int {
	return d.line
}

// Err returns the read error that ended the pass, if any.
func (d *Decoder) Err() error {
	return d.err
}

// Container returns the model built so far. After Next has returned false it
// is complete.
func (d *Decoder) Container() *model.Container {
	return d.builder.Container()
}

// Decode drains the remaining lines and returns the finished Container.
func (d *Decoder) Decode() (*model.Container, error) {
	for d.Next() {
	}
	return d.Container(), d.Err()
}

// Close closes the underlying file when the Decoder was created by Open.
func (d *Decoder) Close() error {
	if d.file == nil {
		return nil
	}
	return d.file.Close()
}

// DecodeFile opens, decodes and closes the file at path.
func DecodeFile(path string, errs *types.Collector) (*model.Container, error) {
	d, err := Open(path, errs)
	if err != nil {
		return nil, err
	}
	defer d.Close()
	return d.Decode()
}
