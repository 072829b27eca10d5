package exporter

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telcli/internal/dataprocessing"
	apperrors "telcli/internal/errors"
	"telcli/internal/workbook"
)

func TestExcelWriter_WriteWorkbook(t *testing.T) {
	writer := NewExcelWriter(slog.Default())
	path := filepath.Join(t.TempDir(), "artifacts", "processed.xlsx")

	second := dataprocessing.NewTable("Timestamp", "Raw")
	second.AppendRow([]string{"2024-03-02 09:00", "3"})

	err := writer.WriteWorkbook(path, []NamedTable{
		{Name: "TQ-100", Table: sampleTable()},
		{Name: "TX-200", Table: second},
	})
	require.NoError(t, err)

	doc, err := workbook.Open(path)
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, []string{"TQ-100", "TX-200"}, doc.SheetNames())

	rows, err := doc.Rows("TQ-100")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Timestamp", "Raw"}, rows[0])
	assert.Equal(t, "12", rows[1][1])
	assert.Equal(t, "7.5", rows[2][1])
}

func TestExcelWriter_WriteWorkbook_TruncatesSheetNames(t *testing.T) {
	writer := NewExcelWriter(slog.Default())
	path := filepath.Join(t.TempDir(), "processed.xlsx")

	long := strings.Repeat("G", 40)
	err := writer.WriteWorkbook(path, []NamedTable{
		{Name: long, Table: sampleTable()},
	})
	require.NoError(t, err)

	doc, err := workbook.Open(path)
	require.NoError(t, err)
	defer doc.Close()

	names := doc.SheetNames()
	require.Len(t, names, 1)
	assert.Equal(t, strings.Repeat("G", 31), names[0])
}

func TestExcelWriter_WriteWorkbook_NoTables(t *testing.T) {
	writer := NewExcelWriter(slog.Default())

	err := writer.WriteWorkbook(filepath.Join(t.TempDir(), "empty.xlsx"), nil)

	assert.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}
