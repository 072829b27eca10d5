// Package report orchestrates the telemetry workbook lifecycle: ingest
// batches that file incoming spreadsheets into the year/month store, and
// annual report builds that combine a year's stored data into one
// artifact.
//
// # Architecture
//
// The package exposes a single Service wired from the lower layers:
//
//   - temporal.Inferencer resolves each file's year/month key
//   - store.Store owns placement and the directory hierarchy
//   - dataprocessing.Engine turns workbooks into tables
//   - exporter writers render xlsx and CSV artifacts
//   - validation guards request DTOs and filesystem preconditions
//
// # Usage
//
//	svc := report.NewServiceWithLogger(cfg, st, logger)
//
//	batch, err := svc.IngestBatch(ctx, report.IngestRequest{
//		SourceDir:          "/incoming",
//		Move:               true,
//		ProcessImmediately: true,
//	})
//
//	annual, err := svc.BuildAnnualReport(ctx, report.AnnualReportRequest{
//		Year:    2024,
//		CSVPath: "/reports/2024.csv",
//	})
//
// # Error Handling
//
// Operations distinguish batch-fatal conditions (missing source
// directory, unwritable output directory) from per-file ones. Per-file
// failures are folded into the returned report as records so one corrupt
// workbook never sinks a batch or a year.
package report
