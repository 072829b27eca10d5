package report

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telcli/internal/dataprocessing"
	apperrors "telcli/internal/errors"
)

func TestService_Inspect(t *testing.T) {
	svc, _ := newTestService(t)

	path := filepath.Join(t.TempDir(), "sensors.xlsx")
	writeWorkbook(t, path, []fixtureSheet{
		rawSheet("TQ-100-A"),
		rawSheet("TQ-100-B"),
		{name: "ZZ-900-A", rows: [][]interface{}{
			{"Serial", "Firmware"},
			{"A1", "1.0.3"},
		}},
	})

	inspection, err := svc.Inspect(context.Background(), path, dataprocessing.RawWorkbookOptions())
	require.NoError(t, err)

	assert.Equal(t, path, inspection.Path)
	assert.Equal(t, "xlsx", inspection.Format)
	assert.Equal(t, 3, inspection.Sheets)
	require.Len(t, inspection.Groups, 2)

	first := inspection.Groups[0]
	assert.Equal(t, "TQ-100", first.Key)
	require.Len(t, first.Members, 2)
	for _, member := range first.Members {
		assert.True(t, member.Usable)
		assert.Equal(t, []string{"Raw"}, member.ValueColumns)
		assert.Equal(t, "Reading Time", member.TimestampColumn)
		assert.Equal(t, 2, member.Rows)
		assert.Empty(t, member.Reason)
	}

	second := inspection.Groups[1]
	assert.Equal(t, "ZZ-900", second.Key)
	require.Len(t, second.Members, 1)
	assert.False(t, second.Members[0].Usable)
	assert.Equal(t, "no requested value columns present", second.Members[0].Reason)
}

func TestService_Inspect_TimestampReasons(t *testing.T) {
	svc, _ := newTestService(t)

	path := filepath.Join(t.TempDir(), "sensors.xlsx")
	writeWorkbook(t, path, []fixtureSheet{
		{name: "TQ-100-A", rows: [][]interface{}{
			{"Serial", "Raw"},
			{"A1", 5},
		}},
	})

	t.Run("auto mode", func(t *testing.T) {
		inspection, err := svc.Inspect(context.Background(), path, dataprocessing.RawWorkbookOptions())
		require.NoError(t, err)
		member := inspection.Groups[0].Members[0]
		assert.False(t, member.Usable)
		assert.Equal(t, "no time or date column detected", member.Reason)
	})

	t.Run("explicit column", func(t *testing.T) {
		opts := dataprocessing.RawWorkbookOptions()
		opts.AutoTimestamp = false
		opts.TimestampColumn = "Logged At"

		inspection, err := svc.Inspect(context.Background(), path, opts)
		require.NoError(t, err)
		member := inspection.Groups[0].Members[0]
		assert.False(t, member.Usable)
		assert.Equal(t, "timestamp column Logged At not present", member.Reason)
	})
}

func TestService_Inspect_MissingFile(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Inspect(context.Background(), filepath.Join(t.TempDir(), "ghost.xlsx"),
		dataprocessing.RawWorkbookOptions())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}

func TestService_Inspect_DefaultPrefixFromConfig(t *testing.T) {
	svc, _ := newTestService(t)

	path := filepath.Join(t.TempDir(), "sensors.xlsx")
	writeWorkbook(t, path, []fixtureSheet{rawSheet("TQ-100-A")})

	opts := dataprocessing.RawWorkbookOptions()
	opts.PrefixLength = 0

	inspection, err := svc.Inspect(context.Background(), path, opts)
	require.NoError(t, err)
	require.Len(t, inspection.Groups, 1)
	assert.Equal(t, "TQ-100", inspection.Groups[0].Key)
}
