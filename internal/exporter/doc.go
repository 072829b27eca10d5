// Package exporter writes aggregated telemetry tables to disk.
//
// This package contains two main components:
//
// ExcelWriter: Writes one or more named tables as worksheets of an xlsx
// workbook, with a bold header row and numeric cells restored to typed
// values. Used for processed per-file artifacts and the annual report.
//
// CSVWriter: Writes a single table as a CSV file, optionally with a UTF-8
// BOM for Excel compatibility. Used for the CSV escort of the annual
// report.
//
// Example usage:
//
//	excel := exporter.NewExcelWriter(logger)
//	err := excel.WriteWorkbook("processed_2024-03.xlsx", []exporter.NamedTable{
//	    {Name: "TQ-100", Table: table},
//	})
//
//	csv := exporter.NewCSVWriter(logger)
//	err = csv.WriteSimpleCSV("annual_2024.csv", combined)
package exporter
