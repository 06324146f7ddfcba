package report

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shareware/internal/license"
)

func sampleSnapshot() map[string]license.Entry {
	registry := license.NewRegistry()
	now := time.Now()
	registry.AddOrUpdate("alpha", license.NewEvent("alpha", "free-as-in-beer", license.StateActivated, now))
	registry.AddOrUpdate("beta", license.NewEvent("beta", "", license.StateUnactivated, now))
	registry.AddOrUpdate("gamma", license.NewEvent("gamma", "junk", license.StateInvalid, now))
	registry.AddOrUpdate("gamma", license.NewEvent("gamma", "junk", license.StateInvalid, now))
	return registry.Snapshot()
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleSnapshot())

	assert.Equal(t, []string{"alpha"}, s.Activated)
	assert.Equal(t, []string{"beta"}, s.Unactivated)
	assert.Equal(t, []string{"gamma"}, s.Invalid)
	assert.Equal(t, 4, s.TotalEvents)
}

func TestSummarize_EmptySnapshot(t *testing.T) {
	s := Summarize(map[string]license.Entry{})

	assert.Empty(t, s.Activated)
	assert.Empty(t, s.Unactivated)
	assert.Empty(t, s.Invalid)
	assert.Zero(t, s.TotalEvents)
}

func TestRender(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Render(&b, sampleSnapshot()))
	out := b.String()

	assert.Contains(t, out, "activated")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "unactivated")
	assert.Contains(t, out, "beta")
	assert.Contains(t, out, "invalid")
	assert.Contains(t, out, "gamma")
	assert.Contains(t, out, "namespaces: 3, events: 4")
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteWorkbook(path, sampleSnapshot()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{summarySheet, eventsSheet}, f.GetSheetList())

	// Summary sheet: header plus one row per namespace.
	rows, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"State", "Namespace"}, rows[0])
	assert.Equal(t, []string{"activated", "alpha"}, rows[1])

	// Events sheet: header plus one row per event.
	rows, err = f.GetRows(eventsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Namespace", rows[0][1])
}

func TestWriteWorkbook_EmptySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteWorkbook(path, map[string]license.Entry{}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
