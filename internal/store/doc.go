// Package store manages the on-disk hierarchy that organized telemetry
// files live in: one directory per year, twelve per-month subdirectories
// named with a numeric prefix (01_January .. 12_December) so listings
// stay in calendar order.
//
// This package contains two main components:
//
// Store: Places incoming files into the hierarchy under their temporal
// key, with collision-safe naming, and lists what a year or month holds.
// Placement never overwrites silently; an occupied destination name gets
// a unix-timestamp suffix unless the caller asks for overwrite.
//
// FindSpreadsheetFiles: Discovers the spreadsheet files in a directory,
// non-recursively, skipping Office lock files.
//
// Example usage:
//
//	st := store.NewStore("/data/telemetry", logger)
//
//	// Create the skeleton for a year
//	dirs, err := st.EnsureYearLayout(2024)
//
//	// File an incoming workbook under March 2024
//	dst, err := st.Place(ctx, "/incoming/readings.xlsx",
//		temporal.Key{Year: 2024, Month: 3}, store.PlaceOptions{Move: true})
//
//	// See everything organized for the year
//	byMonth, err := st.List(2024)
package store
