package domain

import (
	"time"
)

// AnnualReport describes a generated annual report artifact.
type AnnualReport struct {
	Year        int            `json:"year"`
	OutputPath  string         `json:"output_path,omitempty"`
	CSVPath     string         `json:"csv_path,omitempty"`
	TotalRows   int            `json:"total_rows"`
	Months      []MonthSummary `json:"months"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// MonthSummary records one month that contributed data to an annual
// report. FilesProcessed counts every stored file for the month, not
// just the ones that yielded rows.
type MonthSummary struct {
	Month          int    `json:"month"`
	MonthName      string `json:"month_name"`
	FilesProcessed int    `json:"files_processed"`
}

// Empty reports whether the annual report carries no data at all.
func (r *AnnualReport) Empty() bool {
	return r.TotalRows == 0
}
