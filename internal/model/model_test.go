package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Fixtures
// =============================================================================

func newLoca() *Group {
	g := NewGroup("LOCA")
	g.AddColumn("LOCA_ID").Status = StatusKeyRequired
	g.AddColumn("LOCA_TYPE").Type = "PA"
	g.AddColumn("LOCA_GL").Type = "2DP"
	g.AppendRow(10, []string{"BH01", "CP", "12.30"})
	g.AppendRow(11, []string{"BH02", "TP"})
	g.AppendRow(12, []string{"BH03", "CP", "9.00", "surplus"})
	return g
}

// =============================================================================
// Container / Group
// =============================================================================

func TestContainer_NameUnique(t *testing.T) {
	c := NewContainer("x.ags")
	require.True(t, c.Add(NewGroup("PROJ")))
	require.True(t, c.Add(NewGroup("TRAN")))
	assert.False(t, c.Add(NewGroup("PROJ")))

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"PROJ", "TRAN"}, c.Names())
	assert.Same(t, c.At(1), c.Group("TRAN"))
	assert.Nil(t, c.Group("LOCA"))
}

func TestGroup_ColumnsStayEqualLength(t *testing.T) {
	g := newLoca()

	require.Equal(t, 3, g.RowCount())
	for _, col := range g.Columns {
		assert.Len(t, col.Data, g.RowCount(), col.Heading)
		assert.Same(t, g, col.Group)
	}
	assert.Equal(t, "", g.Column("LOCA_GL").Value(1))
	assert.Equal(t, []int{10, 11, 12}, g.Lines)

	// A column added after rows exist is padded to the current length.
	late := g.AddColumn("LOCA_REM")
	assert.Len(t, late.Data, 3)
}

func TestGroup_DescriptorRows(t *testing.T) {
	g := NewGroup("SAMP")
	assert.True(t, g.SetDescriptorRow(DescriptorHeading, 5))
	assert.False(t, g.SetDescriptorRow(DescriptorHeading, 9))
	assert.True(t, g.SetDescriptorRow(DescriptorUnit, 6))

	assert.Equal(t, 5, g.DescriptorRow(DescriptorHeading))
	assert.Equal(t, 6, g.DescriptorRow(DescriptorUnit))
	assert.Equal(t, 0, g.DescriptorRow(DescriptorType))
}

func TestParseStatus(t *testing.T) {
	tests := map[string]Status{
		"KEY":            StatusKey,
		"REQUIRED":       StatusRequired,
		"KEY+REQUIRED":   StatusKeyRequired,
		"key + required": StatusKeyRequired,
		"OTHER":          StatusOther,
		"":               StatusNone,
	}
	for in, want := range tests {
		got := ParseStatus(in)
		assert.Equal(t, want, got, in)
	}
	assert.True(t, StatusKeyRequired.IsKey())
	assert.True(t, StatusKeyRequired.IsRequired())
	assert.False(t, StatusOther.IsKey())
}

// =============================================================================
// Query layer
// =============================================================================

func TestRow_Lookups(t *testing.T) {
	g := newLoca()
	row := g.Row(0)

	assert.Equal(t, 10, row.Line())
	assert.Equal(t, "CP", row.Get("LOCA_TYPE"))
	assert.Equal(t, "12.30", row.At(2))
	_, ok := row.Value("NOPE")
	assert.False(t, ok)
	assert.Equal(t, "BH01|CP", row.KeyString([]string{"LOCA_ID", "LOCA_TYPE"}, "|"))
}

func TestFilterRows(t *testing.T) {
	g := newLoca()

	rows := FilterRows(g, "LOCA_TYPE", "CP")
	require.Len(t, rows, 2)
	assert.Equal(t, 10, rows[0].Line())
	assert.Equal(t, 12, rows[1].Line())

	assert.Nil(t, FilterRows(g, "MISSING", "CP"))

	blank := FilterRowsFunc(g, func(r Row) bool { return r.Get("LOCA_GL") == "" })
	require.Len(t, blank, 1)
	assert.Equal(t, 11, blank[0].Line())
}

func TestColumnSelection(t *testing.T) {
	g := newLoca()
	assert.Equal(t, []string{"LOCA_ID"}, HeadingsOf(KeyColumns(g)))
	assert.Equal(t, []string{"LOCA_ID"}, HeadingsOf(RequiredColumns(g)))
	assert.Equal(t, []string{"LOCA_TYPE"}, HeadingsOf(ColumnsOfType(g, "PA", "PU")))
}

func TestSetHelpers(t *testing.T) {
	assert.Equal(t, []string{"A", "C"}, Intersect([]string{"A", "B", "C", "A"}, []string{"C", "A"}))
	assert.Equal(t, []string{"A", "B", "C", "D"}, Union([]string{"A", "B", "C"}, []string{"C", "D", "A"}))
	assert.True(t, Contains([]string{"x"}, "x"))
}

func TestMergeGroups(t *testing.T) {
	ref := NewGroup("LOCA")
	ref.AddColumn("LOCA_ID").Status = StatusKeyRequired
	ref.AddColumn("LOCA_TYPE").Type = "PA"

	user := NewGroup("LOCA")
	user.ParentGroup = "PROJ"
	user.AddColumn("LOCA_TYPE").Type = "X"
	user.AddColumn("LOCA_XTRA").Type = "X"

	merged := MergeGroups(ref, user)
	assert.Equal(t, []string{"LOCA_ID", "LOCA_TYPE", "LOCA_XTRA"}, merged.Headings())
	assert.Equal(t, "PA", merged.Column("LOCA_TYPE").Type, "reference wins on duplicates")
	assert.Equal(t, "PROJ", merged.ParentGroup)
	assert.NotSame(t, ref.Column("LOCA_ID"), merged.Column("LOCA_ID"))

	assert.Equal(t, []string{"LOCA_TYPE", "LOCA_XTRA"}, MergeGroups(nil, user).Headings())
	assert.Nil(t, MergeGroups(nil, nil))
}

func TestCoercion(t *testing.T) {
	n, ok := AsInt(" 42 ")
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)
	_, ok = AsInt("4.2")
	assert.False(t, ok)

	f, ok := AsDecimal("-1.50")
	assert.True(t, ok)
	assert.InDelta(t, -1.5, f, 1e-9)
	_, ok = AsDecimal("1e3")
	assert.False(t, ok)
	_, ok = AsDecimal("NaN")
	assert.False(t, ok)
}

func TestTimeLayout(t *testing.T) {
	tests := []struct {
		unit   string
		layout string
		ok     bool
	}{
		{"yyyy-mm-dd", "2006-01-02", true},
		{"yyyy-mm-ddThh:mm", "2006-01-02T15:04", true},
		{"yyyy-mm-ddThh:mm:ss", "2006-01-02T15:04:05", true},
		{"yyyy-mm-ddThh:mm:ss.sss", "2006-01-02T15:04:05.000", true},
		{"hh:mm:ss.sss", "15:04:05.000", true},
		{"hh:mm", "15:04", true},
		{"m", "m", false},
	}
	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			layout, ok := TimeLayout(tt.unit)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.layout, layout)
		})
	}

	ts, ok := AsTime("2024-02-29", "yyyy-mm-dd")
	require.True(t, ok)
	assert.Equal(t, time.February, ts.Month())

	_, ok = AsTime("2024-02-30", "yyyy-mm-dd")
	assert.False(t, ok)

	_, ok = AsTime("2024-02-01T10:30", "")
	assert.True(t, ok)

	ts, ok = AsTime("2024-05-01T10:20:30.123", "yyyy-mm-ddThh:mm:ss.sss")
	require.True(t, ok)
	assert.Equal(t, 123*time.Millisecond, time.Duration(ts.Nanosecond()))

	_, ok = AsTime("2024-05-01T10:20:30.12", "yyyy-mm-ddThh:mm:ss.sss")
	assert.False(t, ok)
}
