package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	apperrors "telcli/internal/errors"
	"telcli/internal/report"
	"telcli/pkg/contracts/domain"
)

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <source-dir>",
		Short: "File incoming spreadsheets into the year/month store",
		Long: `Scan a directory for spreadsheet files and file each one into the store
under its year and month. The period is read from the filename, falling
back to date columns inside the workbook; --year and --month override
whatever was detected.

Examples:
  # Copy everything from the download folder into the store
  telemetry ingest ~/Downloads/telemetry

  # Move files, forcing them all under July 2024
  telemetry ingest --move --year 2024 --month 7 /mnt/export

  # Organize and immediately build per-model tables next to each file
  telemetry ingest --process ~/Downloads/telemetry`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().Int("year", 0, "Year to file under (default: detect per file)")
	cmd.Flags().Int("month", 0, "Month to file under (default: detect per file)")
	cmd.Flags().Bool("move", false, "Move files instead of copying them")
	cmd.Flags().Bool("process", false, "Process each file after filing it")
	cmd.Flags().Bool("overwrite", false, "Overwrite existing files instead of renaming")
	cmd.Flags().Bool("json", false, "Print the batch report as JSON")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	year, _ := cmd.Flags().GetInt("year")
	month, _ := cmd.Flags().GetInt("month")
	move, _ := cmd.Flags().GetBool("move")
	process, _ := cmd.Flags().GetBool("process")
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	asJSON, _ := cmd.Flags().GetBool("json")

	var bar *progressbar.ProgressBar
	req := report.IngestRequest{
		SourceDir:          args[0],
		Year:               year,
		Month:              month,
		Move:               move,
		ProcessImmediately: process,
		Overwrite:          overwrite,
	}
	if !asJSON {
		req.Progress = func(done, total int) {
			if bar == nil {
				bar = newIngestBar(cmd.ErrOrStderr(), total)
			}
			_ = bar.Add(1)
		}
	}

	batch, err := svc.IngestBatch(cmd.Context(), req)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(cmd.OutOrStdout(), batch)
	}
	printBatchReport(cmd.OutOrStdout(), batch)

	if batch.Failed() > 0 {
		return apperrors.NewPartialFailureError(
			fmt.Sprintf("%d of %d files could not be organized", batch.Failed(), batch.TotalFiles),
			batch.Failed())
	}
	return nil
}

func newIngestBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Organizing workbooks..."),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}

func printBatchReport(w io.Writer, batch *domain.BatchReport) {
	fmt.Fprintf(w, "Batch %s: %d files found, %d organized, %d errors\n",
		batch.BatchID, batch.TotalFiles, batch.Succeeded(), batch.Failed())

	for _, item := range batch.Organized {
		fmt.Fprintf(w, "  ✓ %s → %s\n", filepath.Base(item.Original), item.Destination)
		if item.Processed != "" {
			fmt.Fprintf(w, "      processed: %s\n", filepath.Base(item.Processed))
		}
		if item.ProcessingError != "" {
			fmt.Fprintf(w, "      processing error: %s\n", item.ProcessingError)
		}
	}
	for _, failure := range batch.Errors {
		fmt.Fprintf(w, "  ✗ %s: %s\n", filepath.Base(failure.File), failure.Error)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
