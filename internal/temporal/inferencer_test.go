package temporal

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestInferencer_InferFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     Key
		wantOK   bool
	}{
		{
			name:     "iso date with day",
			fileName: "Telemetry_2024-03-15.xlsx",
			want:     Key{Year: 2024, Month: 3},
			wantOK:   true,
		},
		{
			name:     "day first date",
			fileName: "15-03-2024_log.xlsx",
			want:     Key{Year: 2024, Month: 3},
			wantOK:   true,
		},
		{
			name:     "compact date",
			fileName: "sensors_20240315.xlsx",
			want:     Key{Year: 2024, Month: 3},
			wantOK:   true,
		},
		{
			name:     "month name then year",
			fileName: "Mar-2024_data.xlsx",
			want:     Key{Year: 2024, Month: 3},
			wantOK:   true,
		},
		{
			name:     "full month name",
			fileName: "January_2024.xlsx",
			want:     Key{Year: 2024, Month: 1},
			wantOK:   true,
		},
		{
			name:     "four letter month abbreviation",
			fileName: "Sept-2024_readings.xlsx",
			want:     Key{Year: 2024, Month: 9},
			wantOK:   true,
		},
		{
			name:     "year then month name",
			fileName: "2024_feb_export.xlsx",
			want:     Key{Year: 2024, Month: 2},
			wantOK:   true,
		},
		{
			name:     "year dash month",
			fileName: "2024-03_batch.xlsx",
			want:     Key{Year: 2024, Month: 3},
			wantOK:   true,
		},
		{
			name:     "month dash year",
			fileName: "03-2024_export.xlsx",
			want:     Key{Year: 2024, Month: 3},
			wantOK:   true,
		},
		{
			name:     "compact year month",
			fileName: "202403_readings.xlsx",
			want:     Key{Year: 2024, Month: 3},
			wantOK:   true,
		},
		{
			name:     "single digit month",
			fileName: "2024-3_data.xlsx",
			want:     Key{Year: 2024, Month: 3},
			wantOK:   true,
		},
		{
			name:     "out of range values rejected",
			fileName: "9999-13-01.xlsx",
			wantOK:   false,
		},
		{
			name:     "invalid match falls through to later pattern",
			fileName: "9999_99_99_Mar-2024.xlsx",
			want:     Key{Year: 2024, Month: 3},
			wantOK:   true,
		},
		{
			name:     "year without month",
			fileName: "2024_readings.xlsx",
			wantOK:   false,
		},
		{
			name:     "no date at all",
			fileName: "readings.xlsx",
			wantOK:   false,
		},
		{
			name:     "month thirteen rejected",
			fileName: "13-2024_readings.xlsx",
			wantOK:   false,
		},
	}

	inferencer := NewInferencer(slog.Default())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := inferencer.InferFromFilename(tt.fileName)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestInferencer_Infer_ContentFallback(t *testing.T) {
	dir := t.TempDir()
	inferencer := NewInferencer(slog.Default())

	t.Run("date column provides the key", func(t *testing.T) {
		path := filepath.Join(dir, "readings.xlsx")
		writeSheet(t, path, [][]interface{}{
			{"Sensor", "Date", "Raw"},
			{"TQ-100", "2024-07-15", "12.5"},
			{"TQ-100", "2024-07-16", "13.0"},
		})

		key, ok := inferencer.Infer(path)
		require.True(t, ok)
		assert.Equal(t, Key{Year: 2024, Month: 7}, key)
	})

	t.Run("time column works too", func(t *testing.T) {
		path := filepath.Join(dir, "hourly.xlsx")
		writeSheet(t, path, [][]interface{}{
			{"Timestamp", "Raw"},
			{"2023-11-02 10:00", "4.2"},
		})

		key, ok := inferencer.Infer(path)
		require.True(t, ok)
		assert.Equal(t, Key{Year: 2023, Month: 11}, key)
	})

	t.Run("no date columns means undetermined", func(t *testing.T) {
		path := filepath.Join(dir, "nometa.xlsx")
		writeSheet(t, path, [][]interface{}{
			{"Sensor", "Raw"},
			{"TQ-100", "12.5"},
		})

		_, ok := inferencer.Infer(path)
		assert.False(t, ok)
	})

	t.Run("filename wins over content", func(t *testing.T) {
		path := filepath.Join(dir, "2022-05_data.xlsx")
		writeSheet(t, path, [][]interface{}{
			{"Date", "Raw"},
			{"2024-07-15", "12.5"},
		})

		key, ok := inferencer.Infer(path)
		require.True(t, ok)
		assert.Equal(t, Key{Year: 2022, Month: 5}, key)
	})

	t.Run("non spreadsheet extension skips content", func(t *testing.T) {
		_, ok := inferencer.Infer(filepath.Join(dir, "notes.txt"))
		assert.False(t, ok)
	})
}

func writeSheet(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestKey_Valid(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want bool
	}{
		{"typical key", Key{2024, 3}, true},
		{"lower bound", Key{2000, 1}, true},
		{"upper bound", Key{2100, 12}, true},
		{"year too early", Key{1999, 6}, false},
		{"year too late", Key{2101, 6}, false},
		{"month zero", Key{2024, 0}, false},
		{"month thirteen", Key{2024, 13}, false},
		{"zero value", Key{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.Valid())
		})
	}
}

func TestKey_MonthName(t *testing.T) {
	assert.Equal(t, "March", Key{Year: 2024, Month: 3}.MonthName())
	assert.Equal(t, "December", Key{Year: 2024, Month: 12}.MonthName())
	assert.Equal(t, "", Key{}.MonthName())
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		explicit Key
		inferred Key
		want     Key
	}{
		{
			name:     "explicit wins outright",
			explicit: Key{2022, 5},
			inferred: Key{2024, 7},
			want:     Key{2022, 5},
		},
		{
			name:     "inference fills unset fields",
			explicit: Key{},
			inferred: Key{2024, 7},
			want:     Key{2024, 7},
		},
		{
			name:     "partial explicit keeps its field",
			explicit: Key{Year: 2022},
			inferred: Key{2024, 7},
			want:     Key{2022, 7},
		},
		{
			name:     "explicit month only",
			explicit: Key{Month: 2},
			inferred: Key{2024, 7},
			want:     Key{2024, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.explicit, tt.inferred))
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"iso datetime", "2024-03-01 10:30:00", true},
		{"iso datetime no seconds", "2024-03-01 10:30", true},
		{"iso date", "2024-03-01", true},
		{"slash date", "3/1/2024", true},
		{"slash datetime", "3/1/2024 10:30", true},
		{"month name date", "02-Jan-06", true},
		{"empty", "", false},
		{"whitespace", "   ", false},
		{"plain number", "1234", false},
		{"sensor id", "TQ-100", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseTimestamp(tt.input)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
