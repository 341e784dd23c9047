package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/AGS-data-validator/internal/model"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in   string
		want Version
	}{
		{"4.1", V4_1},
		{"v4.0.4", V4_0_4},
		{"4_0_3", V4_0_3},
		{" 4.1 ", V4_1},
	}
	for _, tt := range tests {
		got, err := ParseVersion(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseVersion("3.1")
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestLoad_AllVersions(t *testing.T) {
	for _, v := range Versions {
		t.Run(v.String(), func(t *testing.T) {
			d, err := Load(v)
			require.NoError(t, err)
			assert.Equal(t, v, d.Version)

			for _, name := range []string{"PROJ", "TRAN", "ABBR", "DICT", "TYPE", "UNIT", "LOCA", "SAMP"} {
				assert.True(t, d.Groups().Has(name), name)
			}

			loca := d.Group("LOCA")
			require.NotNil(t, loca)
			assert.Equal(t, "LOCA_ID", loca.Columns[0].Heading)
			assert.Equal(t, model.StatusKeyRequired, loca.Column("LOCA_ID").Status)
			assert.Equal(t, "2DP", loca.Column("LOCA_GL").Type)
			assert.Equal(t, "m", loca.Column("LOCA_GL").Unit)

			assert.Equal(t, "LOCA", d.Group("SAMP").ParentGroup)
			assert.Equal(t, "MONG", d.Group("MOND").ParentGroup)
		})
	}
}

func TestLoad_EditionDifferences(t *testing.T) {
	v403, err := Load(V4_0_3)
	require.NoError(t, err)
	v41, err := Load(V4_1)
	require.NoError(t, err)

	for _, h := range []string{"LOCA_ALID", "LOCA_OFFS", "LOCA_CNGE", "LOCA_TRAN"} {
		assert.False(t, v403.Group("LOCA").HasColumn(h), h)
		assert.True(t, v41.Group("LOCA").HasColumn(h), h)
	}
	assert.True(t, v403.Group("SAMP").HasColumn("SAMP_RECV"))
	assert.Equal(t, v403.Groups().Names(), v41.Groups().Names())
}

func TestLoad_StandardGroups(t *testing.T) {
	tests := []struct {
		group    string
		parent   string
		keys     []string
		required []string
	}{
		{"CORE", "LOCA", []string{"LOCA_ID", "CORE_TOP"}, []string{"LOCA_ID", "CORE_TOP"}},
		{"DETL", "LOCA", []string{"LOCA_ID", "DETL_TOP", "DETL_BASE"}, []string{"LOCA_ID", "DETL_TOP", "DETL_BASE", "DETL_DESC"}},
		{"ERES", "SAMP", []string{
			"LOCA_ID", "SAMP_TOP", "SAMP_REF", "SAMP_TYPE", "SAMP_ID", "SPEC_REF", "SPEC_DPTH",
			"ERES_CODE", "ERES_METH", "ERES_MATX", "ERES_RTYP", "ERES_TESN",
		}, []string{"LOCA_ID", "SAMP_TOP", "ERES_CODE", "ERES_METH", "ERES_MATX", "ERES_RTYP"}},
		{"ISPT", "LOCA", []string{"LOCA_ID", "ISPT_TOP"}, []string{"LOCA_ID", "ISPT_TOP", "ISPT_NVAL"}},
		{"WSTD", "WSTG", []string{"LOCA_ID", "WSTG_DPTH", "WSTD_NMIN"}, []string{"LOCA_ID", "WSTG_DPTH", "WSTD_NMIN"}},
		{"GRAT", "GRAG", []string{
			"LOCA_ID", "SAMP_TOP", "SAMP_REF", "SAMP_TYPE", "SAMP_ID", "SPEC_REF", "SPEC_DPTH", "GRAT_SIZE",
		}, []string{"LOCA_ID", "SAMP_TOP", "GRAT_SIZE"}},
	}

	for _, v := range Versions {
		d, err := Load(v)
		require.NoError(t, err)
		s := NewSchema(d, nil)
		for _, tt := range tests {
			t.Run(v.String()+"/"+tt.group, func(t *testing.T) {
				g := d.Group(tt.group)
				require.NotNil(t, g)
				assert.Equal(t, tt.parent, g.ParentGroup)
				assert.Equal(t, tt.keys, s.KeyHeadings(tt.group))
				assert.Equal(t, tt.required, s.RequiredHeadings(tt.group))
				assert.NotEmpty(t, g.Description)
			})
		}

		core := d.Group("CORE")
		assert.Equal(t, "2DP", core.Column("CORE_BASE").Type)
		assert.Equal(t, "m", core.Column("CORE_BASE").Unit)
		assert.Equal(t, model.StatusOther, core.Column("CORE_BASE").Status)
	}
}

// Every child GROUP carries the KEY fields of its parent.
func TestLoad_ParentKeysInherited(t *testing.T) {
	d, err := Load(Default)
	require.NoError(t, err)
	s := NewSchema(d, nil)

	for _, g := range d.Groups().Groups() {
		if g.ParentGroup == "" {
			continue
		}
		require.True(t, d.Groups().Has(g.ParentGroup), "%s parent %s", g.Name, g.ParentGroup)
		for _, k := range s.KeyHeadings(g.ParentGroup) {
			assert.True(t, g.HasColumn(k), "%s lacks %s KEY %s", g.Name, g.ParentGroup, k)
		}
	}
}

func TestLoad_Cached(t *testing.T) {
	a, err := Load(V4_1)
	require.NoError(t, err)
	b, err := Load(V4_1)
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = Load(Version("9.9"))
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

// userDict builds a subject-file DICT group defining one extra heading on
// LOCA and a new GROUP ZZZZ under LOCA.
func userDict() *model.Container {
	dict := model.NewGroup("DICT")
	for _, h := range []string{"DICT_TYPE", "DICT_GRP", "DICT_HDNG", "DICT_STAT", "DICT_DTYP", "DICT_PGRP"} {
		dict.AddColumn(h)
	}
	dict.AppendRow(10, []string{"HEADING", "LOCA", "LOCA_XTRA", "OTHER", "X", ""})
	dict.AppendRow(11, []string{"HEADING", "LOCA", "LOCA_ID", "OTHER", "X", ""})
	dict.AppendRow(12, []string{"GROUP", "ZZZZ", "", "", "", "LOCA"})
	dict.AppendRow(13, []string{"HEADING", "ZZZZ", "LOCA_ID", "KEY+REQUIRED", "ID", ""})
	dict.AppendRow(14, []string{"HEADING", "ZZZZ", "ZZZZ_VAL", "REQUIRED", "2DP", ""})

	c := model.NewContainer("site.ags")
	c.Add(dict)
	return c
}

func TestFromDict(t *testing.T) {
	defs := FromDict(userDict().Group("DICT"))
	assert.Equal(t, []string{"LOCA", "ZZZZ"}, defs.Names())
	assert.Equal(t, "LOCA", defs.Group("ZZZZ").ParentGroup)
	assert.Equal(t, model.StatusRequired, defs.Group("ZZZZ").Column("ZZZZ_VAL").Status)

	assert.Equal(t, 0, FromDict(nil).Len())
}

func TestSchema_Effective(t *testing.T) {
	ref, err := Load(V4_1)
	require.NoError(t, err)
	s := NewSchema(ref, userDict())

	loca := s.Headings("LOCA")
	assert.Equal(t, "LOCA_ID", loca[0])
	assert.Equal(t, "LOCA_XTRA", loca[len(loca)-1], "file-defined headings follow the standard ones")
	assert.Equal(t, model.StatusKeyRequired, s.Column("LOCA", "LOCA_ID").Status, "standard definition wins")

	assert.True(t, s.HasGroup("ZZZZ"))
	assert.Equal(t, "LOCA", s.Parent("ZZZZ"))
	assert.Equal(t, []string{"LOCA_ID"}, s.KeyHeadings("ZZZZ"))
	assert.Equal(t, []string{"LOCA_ID", "ZZZZ_VAL"}, s.RequiredHeadings("ZZZZ"))

	assert.True(t, s.InReference("LOCA", "LOCA_GL"))
	assert.False(t, s.InReference("LOCA", "LOCA_XTRA"))
	assert.False(t, s.HasGroup("NOPE"))
	assert.Nil(t, s.Headings("NOPE"))

	assert.Equal(t, []string{"LOCA_ID", "SAMP_TOP"}, s.RequiredHeadings("SAMP"))
}

func TestIsRoot(t *testing.T) {
	assert.True(t, IsRoot("PROJ"))
	assert.True(t, IsRoot("LOCA"))
	assert.False(t, IsRoot("SAMP"))
}
