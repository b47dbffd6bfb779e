package export_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpowernl/nginx2json/internal/export"
	"github.com/hpowernl/nginx2json/pkg/models"
)

func sampleRecords() []*models.LogRecord {
	addr := "203.0.113.10"
	ok := &models.LogRecord{
		LineNumber: 1,
		ParseOK:    true,
		RemoteAddr: &addr,
		UA:         &models.UAInfo{Device: models.DeviceInfo{Type: models.DevicePC, IsPC: true}},
	}
	failed := &models.LogRecord{
		LineNumber: 2,
		ParseOK:    false,
		Error:      "line does not match combined log format",
		Raw:        "garbage line",
	}
	return []*models.LogRecord{ok, failed}
}

func TestWriteRecordsBareArray(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.json")
	exporter := export.NewDataExporter()
	require.NoError(t, exporter.WriteRecords(sampleRecords(), path, false, false, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []*models.LogRecord
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].LineNumber)
	assert.True(t, got[0].ParseOK)
	assert.False(t, got[1].ParseOK)
	assert.Equal(t, "garbage line", got[1].Raw)
	assert.Nil(t, got[1].RemoteAddr)
}

func TestWriteRecordsWrapped(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.json")
	meta := &models.RunMetadata{
		Source:          "access.log",
		GeneratedAt:     "2025-09-12T01:12:03Z",
		TotalLines:      2,
		ParseErrors:     1,
		UserAgentParser: "heuristics",
	}
	exporter := export.NewDataExporter()
	require.NoError(t, exporter.WriteRecords(sampleRecords(), path, true, true, meta))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc models.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "access.log", doc.Metadata.Source)
	assert.Equal(t, 1, doc.Metadata.ParseErrors)
	assert.Equal(t, "heuristics", doc.Metadata.UserAgentParser)
	assert.Len(t, doc.Entries, 2)

	// Pretty mode indents.
	assert.True(t, strings.Contains(string(data), "\n  "))
}

func TestWriteErrorLog(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "errors.log")
	exporter := export.NewDataExporter()
	require.NoError(t, exporter.WriteErrorLog(sampleRecords(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "2\tline does not match combined log format\tgarbage line", lines[0])
}

func TestExportSummaryCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "summary.csv")
	summary := &models.Summary{
		TotalLines:  2,
		ParsedLines: 1,
		ParseErrors: 1,
		UniqueIPs:   1,
		Browsers:    []models.BrowserStat{{Browser: "Chrome", Count: 1}},
		Statuses:    []models.StatusStat{{Status: 200, Class: "success", Count: 1}},
	}
	exporter := export.NewDataExporter()
	require.NoError(t, exporter.ExportSummaryCSV(summary, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Unique IPs,1")
	assert.Contains(t, string(data), "Browser: Chrome,1")
	assert.Contains(t, string(data), "Status: 200,1")
}

func TestExportSummaryJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "summary.json")
	summary := &models.Summary{TotalLines: 2, ParseErrors: 1}
	exporter := export.NewDataExporter()
	require.NoError(t, exporter.ExportSummaryJSON(summary, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got models.Summary
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 2, got.TotalLines)
	assert.Equal(t, 1, got.ParseErrors)
}
