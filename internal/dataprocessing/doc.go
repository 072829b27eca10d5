// Package dataprocessing turns raw telemetry workbooks into aggregated
// tables. It groups a workbook's sheets by name prefix, resolves which of
// the requested columns each sheet can supply, and merges sheet data per
// group with optional summation over shared timestamps.
//
// # Architecture
//
// The package is organized into four parts:
//
//  1. Grouper: partitions sheet names into prefix groups
//  2. Profile: capability check of one sheet against the requested columns
//  3. Table: in-memory tabular results with column-aligned appends
//  4. Engine: drives grouping, projection, sorting and merging per workbook
//
// # Usage
//
// Aggregating a workbook with explicit columns:
//
//	engine := dataprocessing.NewEngine(logger)
//	result, err := engine.Aggregate("sensors.xlsx", dataprocessing.Options{
//	    ValueColumns:    []string{"Temp", "Humidity"},
//	    TimestampColumn: "Timestamp",
//	    SumValues:       true,
//	    TagSourceSheet:  true,
//	})
//
// The single-column flow for instrument exports:
//
//	result, err := engine.ProcessRawWorkbook("TQ-100_2024-03.xlsx")
//	table := dataprocessing.FlattenGroups(result)
//
// # Data Flow
//
//	Workbook → SheetGroups → per-sheet SheetProfile → projected Tables
//	         → per-group merge (sort, optional sum) → Result
//
// # Error Handling
//
// Failures are isolated at sheet granularity: a sheet that cannot be read
// or lacks the requested columns is skipped and logged, never fatal. Only
// a workbook that cannot be opened at all fails the operation.
package dataprocessing
