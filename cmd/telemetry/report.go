package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"telcli/internal/dataprocessing"
	apperrors "telcli/internal/errors"
	"telcli/internal/report"
	"telcli/pkg/contracts/domain"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <year>",
		Short: "Combine a year's stored files into an annual report",
		Long: `Walk the store for a year, process every filed workbook, and write one
annual workbook with the combined rows plus a sheet listing the months
that contributed.

By default each file goes through the raw single-column flow. Passing
--columns switches to the generic aggregation engine with the given
value columns.

Examples:
  # Annual report with the default flow and artifact location
  telemetry report 2024

  # Sum temperature readings per timestamp, with a CSV copy
  telemetry report 2024 --columns Temperature --sum --csv /tmp/2024.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runReport,
	}

	cmd.Flags().StringP("output", "o", "", "Annual workbook path (default: <store>/<year>/Annual_Report_<year>.xlsx)")
	cmd.Flags().String("csv", "", "Also export the combined table as CSV to this path")
	addAggregationFlags(cmd)
	cmd.Flags().Bool("sum", false, "Collapse rows sharing a timestamp by summing value columns")
	cmd.Flags().Bool("json", false, "Print the report summary as JSON")

	return cmd
}

// addAggregationFlags registers the flags shared by report and inspect.
func addAggregationFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("columns", nil, "Value columns to aggregate (default: config)")
	cmd.Flags().String("timestamp-column", "", "Exact timestamp column name (default: auto-detect)")
	cmd.Flags().Int("prefix-len", 0, "Sheet name prefix length for grouping (default: config)")
}

// aggregationOptionsFromFlags layers set flags over the configured
// aggregation defaults.
func aggregationOptionsFromFlags(cmd *cobra.Command) dataprocessing.Options {
	opts := svc.DefaultAggregationOptions()

	if cmd.Flags().Changed("columns") {
		opts.ValueColumns, _ = cmd.Flags().GetStringSlice("columns")
	}
	if cmd.Flags().Changed("timestamp-column") {
		opts.TimestampColumn, _ = cmd.Flags().GetString("timestamp-column")
		opts.AutoTimestamp = false
	}
	if cmd.Flags().Changed("prefix-len") {
		opts.PrefixLength, _ = cmd.Flags().GetInt("prefix-len")
	}
	if cmd.Flags().Changed("sum") {
		opts.SumValues, _ = cmd.Flags().GetBool("sum")
	}
	return opts
}

func runReport(cmd *cobra.Command, args []string) error {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return apperrors.NewAppValidationError(fmt.Sprintf("year must be a number, got %q", args[0]))
	}

	output, _ := cmd.Flags().GetString("output")
	csvPath, _ := cmd.Flags().GetString("csv")
	asJSON, _ := cmd.Flags().GetBool("json")

	req := report.AnnualReportRequest{
		Year:       year,
		OutputPath: output,
		CSVPath:    csvPath,
	}
	// Any aggregation flag switches from the raw flow to the generic
	// engine.
	if cmd.Flags().Changed("columns") || cmd.Flags().Changed("timestamp-column") ||
		cmd.Flags().Changed("sum") || cmd.Flags().Changed("prefix-len") {
		req.Process = svc.AggregateProcessFunc(aggregationOptionsFromFlags(cmd))
	}

	annual, err := svc.BuildAnnualReport(cmd.Context(), req)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(cmd.OutOrStdout(), annual)
	}
	printAnnualReport(cmd.OutOrStdout(), annual)
	return nil
}

func printAnnualReport(w io.Writer, annual *domain.AnnualReport) {
	if annual.Empty() {
		fmt.Fprintf(w, "No data found for year %d\n", annual.Year)
		return
	}

	fmt.Fprintf(w, "Annual report for %d: %d rows from %d months\n",
		annual.Year, annual.TotalRows, len(annual.Months))
	for _, month := range annual.Months {
		fmt.Fprintf(w, "  %-10s %d files\n", month.MonthName, month.FilesProcessed)
	}
	fmt.Fprintf(w, "  workbook: %s\n", annual.OutputPath)
	if annual.CSVPath != "" {
		fmt.Fprintf(w, "  csv:      %s\n", annual.CSVPath)
	}
}
