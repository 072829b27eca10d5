package dataprocessing

import (
	"strings"
)

// SheetProfile records which of the requested columns a sheet can actually
// supply. Aggregation consults the profile and skips unusable sheets
// instead of failing the workbook.
type SheetProfile struct {
	SheetName           string
	PresentValueColumns []string
	// TimestampColumn is the resolved source column name, empty when the
	// sheet has none.
	TimestampColumn string
	Usable          bool
}

// ResolveProfile inspects a sheet header against the requested columns.
//
// Value columns keep the request order and are filtered to those present.
// Timestamp resolution depends on the options: an explicit column must
// match exactly, auto mode picks the first column whose name contains
// "time" or "date" (case-insensitive), and otherwise no timestamp is
// resolved. The sheet is usable when at least one value column is present
// and a timestamp was resolved if the options demand one.
func ResolveProfile(sheetName string, header []string, opts Options) SheetProfile {
	profile := SheetProfile{SheetName: sheetName}

	for _, want := range opts.ValueColumns {
		for _, col := range header {
			if col == want {
				profile.PresentValueColumns = append(profile.PresentValueColumns, want)
				break
			}
		}
	}

	switch {
	case opts.TimestampColumn != "":
		for _, col := range header {
			if col == opts.TimestampColumn {
				profile.TimestampColumn = col
				break
			}
		}
	case opts.AutoTimestamp:
		for _, col := range header {
			lower := strings.ToLower(col)
			if strings.Contains(lower, "time") || strings.Contains(lower, "date") {
				profile.TimestampColumn = col
				break
			}
		}
	}

	requireTimestamp := opts.TimestampColumn != "" || opts.AutoTimestamp
	profile.Usable = len(profile.PresentValueColumns) > 0 &&
		(!requireTimestamp || profile.TimestampColumn != "")

	return profile
}
