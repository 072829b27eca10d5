package exporter

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telcli/internal/dataprocessing"
)

func sampleTable() *dataprocessing.Table {
	table := dataprocessing.NewTable("Timestamp", "Raw")
	table.AppendRow([]string{"2024-03-01 10:00", "12"})
	table.AppendRow([]string{"2024-03-01 11:00", "7.5"})
	return table
}

func TestCSVWriter_WriteTable(t *testing.T) {
	writer := NewCSVWriter(slog.Default())
	path := filepath.Join(t.TempDir(), "out", "report.csv")

	err := writer.WriteTable(path, sampleTable(), WriteOptions{})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "Timestamp,Raw\n2024-03-01 10:00,12\n2024-03-01 11:00,7.5\n"
	assert.Equal(t, want, string(content))
}

func TestCSVWriter_WriteSimpleCSV_BOM(t *testing.T) {
	writer := NewCSVWriter(slog.Default())
	path := filepath.Join(t.TempDir(), "report.csv")

	err := writer.WriteSimpleCSV(path, sampleTable())
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	// UTF-8 BOM, then the header row.
	require.True(t, len(content) > 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, content[:3])
	assert.Contains(t, string(content[3:]), "Timestamp,Raw\n")
}

func TestCSVWriter_WriteTable_Append(t *testing.T) {
	writer := NewCSVWriter(slog.Default())
	path := filepath.Join(t.TempDir(), "report.csv")

	require.NoError(t, writer.WriteTable(path, sampleTable(), WriteOptions{}))

	extra := dataprocessing.NewTable("Timestamp", "Raw")
	extra.AppendRow([]string{"2024-03-01 12:00", "3"})
	require.NoError(t, writer.WriteTable(path, extra, WriteOptions{Append: true}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	// Appending adds rows without repeating the header.
	want := "Timestamp,Raw\n2024-03-01 10:00,12\n2024-03-01 11:00,7.5\n2024-03-01 12:00,3\n"
	assert.Equal(t, want, string(content))
}

func TestCSVWriter_WriteTable_QuotesCommas(t *testing.T) {
	writer := NewCSVWriter(slog.Default())
	path := filepath.Join(t.TempDir(), "report.csv")

	table := dataprocessing.NewTable("Timestamp", "Source_Sheet")
	table.AppendRow([]string{"2024-03-01", "TQ-100-A, TQ-100-B"})

	require.NoError(t, writer.WriteTable(path, table, WriteOptions{}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"TQ-100-A, TQ-100-B"`)
}
