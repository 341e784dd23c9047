package decoder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/AGS-data-validator/internal/model"
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

// crlf joins lines with CR LF, terminating the last one as well.
func crlf(lines ...string) string {
	return strings.Join(lines, "\r\n") + "\r\n"
}

func decode(t *testing.T, content string) (*model.Container, []types.RuleError) {
	t.Helper()
	errs := types.NewCollector()
	c, err := NewDecoder(strings.NewReader(content), "test.ags", errs).Decode()
	require.NoError(t, err)
	return c, errs.Sorted()
}

func ruleIDs(errs []types.RuleError) []types.RuleID {
	ids := make([]types.RuleID, len(errs))
	for i, e := range errs {
		ids[i] = e.RuleID
	}
	return ids
}

var wellFormed = crlf(
	`"GROUP","LOCA"`,
	`"HEADING","LOCA_ID","LOCA_TYPE","LOCA_GL"`,
	`"UNIT","","","m"`,
	`"TYPE","ID","PA","2DP"`,
	`"DATA","BH01","CP","12.30"`,
	`"DATA","BH02","TP","9.10"`,
	``,
	`"GROUP","SAMP"`,
	`"HEADING","LOCA_ID","SAMP_TOP"`,
	`"UNIT","","m"`,
	`"TYPE","ID","2DP"`,
	`"DATA","BH01","1.00"`,
)

// =============================================================================
// Split
// =============================================================================

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		fields []string
		issues []error
	}{
		{"plain", `"DATA","a","b"`, []string{"DATA", "a", "b"}, nil},
		{"doubled quote", `"DATA","say ""hi"""`, []string{"DATA", `say "hi"`}, nil},
		{"comma inside quotes", `"DATA","a,b"`, []string{"DATA", "a,b"}, nil},
		{"empty quoted", `"DATA",""`, []string{"DATA", ""}, nil},
		{"unquoted", `DATA,"a"`, []string{"DATA", "a"}, []error{ErrUnquoted}},
		{"unterminated", `"DATA","a`, []string{"DATA", "a"}, []error{ErrUnterminatedQuote}},
		{"text after quote", `"DATA","a"b,"c"`, []string{"DATA", "ab", "c"}, []error{ErrBareQuote}},
		{"trailing comma", `"DATA","a",`, []string{"DATA", "a", ""}, []error{ErrUnquoted}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fields, issues := Split(tt.line)
			assert.Equal(t, tt.fields, fields)
			require.Len(t, issues, len(tt.issues))
			for i, want := range tt.issues {
				assert.ErrorIs(t, issues[i], want)
			}
		})
	}
}

// =============================================================================
// Model building
// =============================================================================

func TestDecode_WellFormed(t *testing.T) {
	c, errs := decode(t, wellFormed)
	assert.Empty(t, errs)

	require.Equal(t, []string{"LOCA", "SAMP"}, c.Names())

	loca := c.Group("LOCA")
	assert.Equal(t, 1, loca.GroupRow)
	assert.Equal(t, 2, loca.HeadingRow)
	assert.Equal(t, 3, loca.UnitRow)
	assert.Equal(t, 4, loca.TypeRow)
	assert.Equal(t, 5, loca.DataRow)
	assert.Equal(t, "m", loca.Column("LOCA_GL").Unit)
	assert.Equal(t, "2DP", loca.Column("LOCA_GL").Type)
	assert.Equal(t, "TP", loca.Row(1).Get("LOCA_TYPE"))

	samp := c.Group("SAMP")
	assert.Equal(t, []int{12}, samp.Lines)
}

func TestDecode_RowOriginInvariants(t *testing.T) {
	c, _ := decode(t, wellFormed)

	for _, g := range c.Groups() {
		for _, col := range g.Columns {
			assert.Len(t, col.Data, g.RowCount(), "%s.%s", g.Name, col.Heading)
		}
		for i := 1; i < len(g.Lines); i++ {
			assert.Greater(t, g.Lines[i], g.Lines[i-1])
		}
	}

	// Every origin line points at a DATA row in the source.
	lines := strings.Split(wellFormed, "\r\n")
	for _, g := range c.Groups() {
		for i, line := range g.Lines {
			src := lines[line-1]
			assert.True(t, strings.HasPrefix(src, `"DATA"`), src)
			assert.Contains(t, src, g.Row(i).At(0))
		}
	}
}

func TestDecode_DuplicateGroupKeepsFirst(t *testing.T) {
	c, errs := decode(t, crlf(
		`"GROUP","PROJ"`,
		`"HEADING","PROJ_ID"`,
		`"UNIT",""`,
		`"TYPE","ID"`,
		`"DATA","P1"`,
		`"GROUP","PROJ"`,
		`"HEADING","PROJ_ID"`,
		`"UNIT",""`,
		`"TYPE","ID"`,
		`"DATA","P2"`,
	))

	require.Len(t, errs, 1)
	assert.Equal(t, types.RuleDataRows, errs[0].RuleID)
	assert.Equal(t, 6, errs[0].RowNumber)

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, []string{"P1"}, c.Group("PROJ").Column("PROJ_ID").Data)
}

// =============================================================================
// Row-level checks
// =============================================================================

func TestDecode_RowChecks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []types.RuleID
		row     int
	}{
		{
			name:    "non-ASCII byte",
			content: crlf(`"GROUP","LOCA"`, `"HEADING","LOCA_ID"`, `"UNIT",""`, `"TYPE","X"`, "\"DATA\",\"caf\xc3\xa9\""),
			want:    []types.RuleID{types.RuleASCII},
			row:     5,
		},
		{
			name:    "LF only",
			content: `"GROUP","LOCA"` + "\n" + crlf(`"HEADING","LOCA_ID"`),
			want:    []types.RuleID{types.RuleLineTerminator},
			row:     1,
		},
		{
			name:    "missing final terminator",
			content: crlf(`"GROUP","LOCA"`) + `"HEADING","LOCA_ID"`,
			want:    []types.RuleID{types.RuleLineTerminator},
			row:     2,
		},
		{
			name:    "duplicate heading",
			content: crlf(`"GROUP","LOCA"`, `"HEADING","LOCA_ID","LOCA_ID"`),
			want:    []types.RuleID{types.RuleDuplicateHeading},
			row:     2,
		},
		{
			name:    "unknown descriptor",
			content: crlf(`"GROUP","LOCA"`, `"NOTE","x"`),
			want:    []types.RuleID{types.RuleDataDescriptor},
			row:     2,
		},
		{
			name:    "GROUP extra fields",
			content: crlf(`"GROUP","LOCA",""`),
			want:    []types.RuleID{types.RuleGroupRowFields},
			row:     1,
		},
		{
			name:    "GROUP without name",
			content: crlf(`"GROUP"`),
			want:    []types.RuleID{types.RuleGroupRowFields},
			row:     1,
		},
		{
			name:    "DATA before HEADING",
			content: crlf(`"GROUP","LOCA"`, `"DATA","BH01"`),
			want:    []types.RuleID{types.RuleFieldCount},
			row:     2,
		},
		{
			name:    "field count mismatch",
			content: crlf(`"GROUP","LOCA"`, `"HEADING","LOCA_ID","LOCA_GL"`, `"UNIT","",""`, `"TYPE","ID","2DP"`, `"DATA","BH01"`),
			want:    []types.RuleID{types.RuleFieldCount},
			row:     5,
		},
		{
			name:    "unquoted field",
			content: crlf(`"GROUP",LOCA`),
			want:    []types.RuleID{types.RuleQuoting},
			row:     1,
		},
		{
			name:    "whitespace-only field",
			content: crlf(`"GROUP","LOCA"`, `"HEADING","LOCA_ID"`, `"UNIT","  "`),
			want:    []types.RuleID{types.RuleQuoting},
			row:     3,
		},
		{
			name:    "repeated UNIT row",
			content: crlf(`"GROUP","LOCA"`, `"HEADING","LOCA_ID"`, `"UNIT",""`, `"UNIT",""`),
			want:    []types.RuleID{types.RuleDescriptorRows},
			row:     4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, errs := decode(t, tt.content)
			require.Equal(t, tt.want, ruleIDs(errs), "%v", errs)
			assert.Equal(t, tt.row, errs[0].RowNumber)
			assert.Equal(t, types.StatusFail, errs[0].Status)
		})
	}
}

func TestDecode_BlankLinesOnlyCheckedForEncodingAndTerminator(t *testing.T) {
	_, errs := decode(t, crlf(`"GROUP","LOCA"`, ``, `   `))
	assert.Empty(t, errs)

	_, errs = decode(t, crlf(`"GROUP","LOCA"`)+"\n")
	assert.Equal(t, []types.RuleID{types.RuleLineTerminator}, ruleIDs(errs))
}

// =============================================================================
// Streaming API
// =============================================================================

func TestDecoder_EventsAndHook(t *testing.T) {
	errs := types.NewCollector()
	d := NewDecoder(strings.NewReader(wellFormed), "", errs)

	var hooked []int
	d.OnRow(func(g *model.Group, index int) {
		hooked = append(hooked, g.Lines[index])
	})

	var descriptors []string
	for d.Next() {
		ev := d.Event()
		if ev.Known {
			descriptors = append(descriptors, ev.Descriptor.String())
		}
	}
	require.NoError(t, d.Err())

	assert.Equal(t, 12, d.Line())
	assert.Equal(t, []int{5, 6, 12}, hooked)
	assert.Len(t, descriptors, 11)
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.ags")
	require.NoError(t, os.WriteFile(path, []byte(wellFormed), 0o644))

	errs := types.NewCollector()
	c, err := DecodeFile(path, errs)
	require.NoError(t, err)
	assert.Equal(t, path, c.Path)
	assert.Equal(t, 2, c.Len())

	_, err = DecodeFile(filepath.Join(t.TempDir(), "missing.ags"), errs)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
