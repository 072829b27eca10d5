package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"telcli/internal/report"
)

func inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <workbook>",
		Short: "Preview how a workbook would be grouped and aggregated",
		Long: `Open a workbook and show its detected format, the sheet groups the
engine would form, and whether each sheet carries the columns
aggregation needs. Nothing is written.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}

	addAggregationFlags(cmd)
	cmd.Flags().Bool("json", false, "Print the inspection as JSON")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	inspection, err := svc.Inspect(cmd.Context(), args[0], aggregationOptionsFromFlags(cmd))
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(cmd.OutOrStdout(), inspection)
	}
	printInspection(cmd.OutOrStdout(), inspection)
	return nil
}

func printInspection(w io.Writer, inspection *report.Inspection) {
	fmt.Fprintf(w, "%s (%s): %d sheets in %d groups\n",
		filepath.Base(inspection.Path), inspection.Format, inspection.Sheets, len(inspection.Groups))

	for _, group := range inspection.Groups {
		fmt.Fprintf(w, "  %s\n", group.Key)
		for _, member := range group.Members {
			if member.Usable {
				fmt.Fprintf(w, "    ✓ %-20s %d rows, timestamp %q, values %s\n",
					member.Name, member.Rows, member.TimestampColumn,
					strings.Join(member.ValueColumns, ", "))
			} else {
				fmt.Fprintf(w, "    ✗ %-20s %s\n", member.Name, member.Reason)
			}
		}
	}
}
