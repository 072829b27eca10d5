package workbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "telcli/internal/errors"
)

func writeTestXLSX(t *testing.T, dir, name string, sheets map[string][][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for sheetName, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", sheetName))
			first = false
		} else {
			_, err := f.NewSheet(sheetName)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sheetName, cell, &row))
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    Format
	}{
		{
			name:    "zip signature",
			content: []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00, 0x00, 0x00},
			want:    FormatXLSX,
		},
		{
			name:    "ole signature",
			content: []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1},
			want:    FormatXLS,
		},
		{
			name:    "plain text",
			content: []byte("timestamp,value\n2024-01-01,42\n"),
			want:    FormatUnknown,
		},
		{
			name:    "empty file",
			content: []byte{},
			want:    FormatUnknown,
		},
		{
			name:    "short file",
			content: []byte{0x50, 0x4B},
			want:    FormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "probe.bin")
			require.NoError(t, os.WriteFile(path, tt.content, 0644))

			got, err := DetectFormat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat_MissingFile(t *testing.T) {
	_, err := DetectFormat(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}

func TestDetectFormat_RealWorkbook(t *testing.T) {
	path := writeTestXLSX(t, t.TempDir(), "real.xlsx", map[string][][]interface{}{
		"Data": {{"Timestamp", "Raw"}, {"2024-03-01", 42}},
	})

	format, err := DetectFormat(path)
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, format)
}

func TestOpen_XLSX(t *testing.T) {
	path := writeTestXLSX(t, t.TempDir(), "sensors.xlsx", map[string][][]interface{}{
		"TQ-100": {
			{"Timestamp", "Raw"},
			{"2024-03-01 10:00", 12.5},
			{"2024-03-01 11:00", 13},
		},
	})

	doc, err := Open(path)
	require.NoError(t, err)
	defer doc.Close()

	names := doc.SheetNames()
	require.Equal(t, []string{"TQ-100"}, names)

	rows, err := doc.Rows("TQ-100")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Timestamp", "Raw"}, rows[0])
	assert.Equal(t, "12.5", rows[1][1])
}

func TestOpen_MultiSheetOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "multi.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Zebra"))
	_, err := f.NewSheet("Alpha")
	require.NoError(t, err)
	_, err = f.NewSheet("Mango")
	require.NoError(t, err)
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	doc, err := Open(path)
	require.NoError(t, err)
	defer doc.Close()

	// Workbook order, not alphabetical.
	assert.Equal(t, []string{"Zebra", "Alpha", "Mango"}, doc.SheetNames())
}

func TestOpen_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook at all"), 0644))

	_, err := Open(path)
	assert.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeFormat),
		"expected unsupported format error, got %v", err)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}

func TestReadSheets(t *testing.T) {
	path := writeTestXLSX(t, t.TempDir(), "batch.xlsx", map[string][][]interface{}{
		"Readings": {
			{"Timestamp", "Temp", "Humidity"},
			{"2024-03-01", 21.5, 40},
		},
	})

	names, sheets, err := ReadSheets(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Readings"}, names)
	require.Contains(t, sheets, "Readings")
	assert.Equal(t, []string{"Timestamp", "Temp", "Humidity"}, sheets["Readings"][0])
}
