package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

func sampleErrors() []types.RuleError {
	return []types.RuleError{
		{Status: types.StatusFail, RuleID: types.RuleLineTerminator, Group: "LOCA", RowNumber: 12, Message: "line is not terminated by CR LF"},
		{Status: types.StatusFail, RuleID: types.RuleKey, Group: "LOCA", RowNumber: 14, Message: "duplicate KEY field combination BH01"},
		{Status: types.StatusFail, RuleID: types.RuleKey, Group: "LOCA", RowNumber: 15, Message: "duplicate KEY field combination BH01"},
		{Status: types.StatusFail, RuleID: types.RuleProj, Group: "PROJ", Message: "PROJ group missing"},
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "No validation errors.\n", Format(nil))

	out := Format(sampleErrors())
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Validation completed with 4 error(s):", lines[0])
	assert.Equal(t, "1. Rule 2a [LOCA] line 12: line is not terminated by CR LF", lines[2])
	assert.Equal(t, "4. Rule 13 [PROJ]: PROJ group missing", lines[5])
}

func TestWriteLogFile(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	path := filepath.Join(t.TempDir(), "site.log")

	err := WriteLogFile(path, Summary{
		RunID:      id,
		File:       "site.ags",
		Dictionary: "4.1",
		Duration:   1500 * time.Microsecond,
		Errors:     sampleErrors(),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Run:        "+id.String())
	assert.Contains(t, content, "Dictionary: 4.1")
	assert.Contains(t, content, "Duration:   2ms")
	assert.NotContains(t, content, "Started:")
	assert.Contains(t, content, "3. Rule 10a [LOCA] line 15")
}

func TestWriteLogFile_BadPath(t *testing.T) {
	err := WriteLogFile(filepath.Join(t.TempDir(), "missing", "site.log"), Summary{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, "site.ags", nil)
	assert.Equal(t, "site.ags: no findings\n", buf.String())

	buf.Reset()
	RenderTable(&buf, "site.ags", sampleErrors())
	out := buf.String()
	assert.Contains(t, out, "site.ags")
	assert.Contains(t, out, "10a")
	assert.Contains(t, out, "PROJ group missing")
	assert.Contains(t, out, "(4 findings)")
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	RenderSummary(&buf, []Summary{
		{File: "a.ags", Dictionary: "4.1", Errors: sampleErrors()},
		{File: "b.ags", Dictionary: "4.1"},
	})
	out := buf.String()
	assert.Contains(t, out, "a.ags")
	assert.Contains(t, out, "2a(1) 10a(2) 13(1)")
	assert.Contains(t, out, "b.ags")
}

func TestNewRunID(t *testing.T) {
	assert.NotEqual(t, NewRunID(), NewRunID())
}
