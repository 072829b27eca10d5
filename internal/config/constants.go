package config

// Application constants shared across packages
const (
	// Application Info
	AppName    = "telcli"
	AppVersion = "1.2.0"

	// Temporal key bounds. Keys outside these ranges are treated as
	// undetermined rather than stored.
	MinYear = 2000
	MaxYear = 2100

	// Sheet grouping and aggregation defaults
	DefaultPrefixLength = 6
	DefaultValueColumn  = "Raw"

	// Workbook sheet names are capped by the xlsx format.
	MaxSheetNameLength = 31

	// Canonical column names used across aggregation output
	ColumnTimestamp   = "Timestamp"
	ColumnSourceSheet = "Source_Sheet"
	ColumnModel       = "Model"
	ColumnMonth       = "Month"
	ColumnMonthNum    = "MonthNum"

	// Annual report artifact layout
	AnnualSummarySheet  = "Annual_Summary"
	MonthsIncludedSheet = "Months_Included"
	AnnualReportPattern = "Annual_Report_%d.xlsx"

	// Immediate-processing artifacts written next to stored files
	ProcessedFilePrefix = "processed_"

	// File Paths (relative to executable)
	DefaultStoreDir   = "store"
	DefaultReportsDir = "reports"
	DefaultLogsDir    = "logs"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)
