package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"telcli/internal/config"
	"telcli/internal/dataprocessing"
	"telcli/internal/exporter"
	"telcli/internal/infrastructure"
	"telcli/internal/store"
	"telcli/internal/temporal"
	"telcli/pkg/contracts/domain"
)

// ProcessFunc turns one stored workbook into rows for the combined
// annual table. A nil table or an empty one means the file contributed
// nothing; an error skips the file without aborting the year.
type ProcessFunc func(path string) (*dataprocessing.Table, error)

// AnnualReportRequest describes one annual report build. OutputPath
// defaults to <store root>/<year>/Annual_Report_<year>.xlsx; CSVPath is
// optional. A nil Process runs the raw single-column flow.
type AnnualReportRequest struct {
	Year       int    `json:"year" validate:"required,year_range"`
	OutputPath string `json:"output_path"`
	CSVPath    string `json:"csv_path"`

	Process ProcessFunc `json:"-"`
}

// RawProcessFunc returns the default annual ProcessFunc: the raw
// single-column flow, flattened into one table with each row stamped by
// its group key under a Model column.
func (s *Service) RawProcessFunc() ProcessFunc {
	return func(path string) (*dataprocessing.Table, error) {
		result, err := s.engine.ProcessRawWorkbook(path)
		if err != nil {
			return nil, err
		}
		return dataprocessing.FlattenGroups(result), nil
	}
}

// AggregateProcessFunc returns an annual ProcessFunc running the generic
// engine with the given options, flattened across groups.
func (s *Service) AggregateProcessFunc(opts dataprocessing.Options) ProcessFunc {
	return func(path string) (*dataprocessing.Table, error) {
		result, err := s.engine.Aggregate(path, opts)
		if err != nil {
			return nil, err
		}
		return dataprocessing.FlattenGroups(result), nil
	}
}

// BuildAnnualReport combines a year's stored files into one table and,
// when any rows were collected, writes the annual workbook plus an
// optional CSV escort. Months are visited in calendar order with files
// sorted by name, so repeated runs over the same store produce identical
// artifacts. A year with no data yields an empty report and no files.
func (s *Service) BuildAnnualReport(ctx context.Context, req AnnualReportRequest) (*domain.AnnualReport, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	if err := s.structValidator.ValidateStruct(req); err != nil {
		return nil, err
	}

	process := req.Process
	if process == nil {
		process = s.RawProcessFunc()
	}

	byMonth, err := s.store.List(req.Year)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Annual report build started",
		slog.Int("year", req.Year))

	combined := dataprocessing.NewTable()
	var months []domain.MonthSummary
	for month := 1; month <= 12; month++ {
		files := sourceFiles(byMonth[month])
		contributed := false
		for _, path := range files {
			table, err := process(path)
			if err != nil {
				s.logger.WarnContext(ctx, "Skipping file after processing error",
					slog.String("file", path),
					slog.String("error", err.Error()))
				continue
			}
			if table == nil || table.IsEmpty() {
				continue
			}

			table.EnsureConstantColumn(config.ColumnMonth, temporal.Key{Year: req.Year, Month: month}.MonthName())
			table.EnsureConstantColumn(config.ColumnMonthNum, strconv.Itoa(month))
			combined.AppendTable(table)
			contributed = true
		}
		if contributed {
			months = append(months, domain.MonthSummary{
				Month:          month,
				MonthName:      temporal.Key{Year: req.Year, Month: month}.MonthName(),
				FilesProcessed: len(files),
			})
		}
	}

	annual := &domain.AnnualReport{
		Year:        req.Year,
		Months:      months,
		TotalRows:   len(combined.Rows),
		GeneratedAt: time.Now(),
	}
	if combined.IsEmpty() {
		s.logger.InfoContext(ctx, "No data found for year", slog.Int("year", req.Year))
		return annual, nil
	}

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = filepath.Join(s.store.YearDir(req.Year),
			fmt.Sprintf(config.AnnualReportPattern, req.Year))
	}
	if err := s.writeAnnualArtifact(ctx, outputPath, combined, months); err != nil {
		return nil, err
	}
	annual.OutputPath = outputPath

	if req.CSVPath != "" {
		if err := s.csv.WriteSimpleCSV(req.CSVPath, combined); err != nil {
			return nil, err
		}
		annual.CSVPath = req.CSVPath
	}

	s.logger.InfoContext(ctx, "Annual report build completed",
		slog.Int("year", req.Year),
		slog.Int("rows", annual.TotalRows),
		slog.Int("months", len(months)),
		slog.String("output", outputPath))
	return annual, nil
}

func (s *Service) writeAnnualArtifact(ctx context.Context, outputPath string, combined *dataprocessing.Table, months []domain.MonthSummary) error {
	if err := s.fileValidator.ValidateOutputDirectory(filepath.Dir(outputPath)); err != nil {
		return err
	}

	// A previous artifact is kept as .bak; losing the backup is only
	// worth a warning.
	if _, err := os.Stat(outputPath); err == nil {
		backupPath := outputPath + ".bak"
		if err := store.CopyFile(outputPath, backupPath); err != nil {
			s.logger.WarnContext(ctx, "Could not back up existing report",
				slog.String("path", backupPath),
				slog.String("error", err.Error()))
		} else {
			s.logger.InfoContext(ctx, "Backed up existing report",
				slog.String("path", backupPath))
		}
	}

	tables := []exporter.NamedTable{
		{Name: config.AnnualSummarySheet, Table: combined},
		{Name: config.MonthsIncludedSheet, Table: monthsTable(months)},
	}
	return s.excel.WriteWorkbook(outputPath, tables)
}

// sourceFiles filters out derived artifacts so a month ingested with
// immediate processing is not combined twice.
func sourceFiles(files []string) []string {
	out := make([]string, 0, len(files))
	for _, path := range files {
		if strings.HasPrefix(filepath.Base(path), config.ProcessedFilePrefix) {
			continue
		}
		out = append(out, path)
	}
	return out
}

// monthsTable renders the month summaries as the Months_Included sheet.
func monthsTable(months []domain.MonthSummary) *dataprocessing.Table {
	table := dataprocessing.NewTable(config.ColumnMonth, config.ColumnMonthNum, "Files Processed")
	for _, m := range months {
		table.AppendRow([]string{m.MonthName, strconv.Itoa(m.Month), strconv.Itoa(m.FilesProcessed)})
	}
	return table
}
