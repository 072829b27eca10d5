package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "telcli/internal/errors"
	"telcli/internal/store"
)

// monthListing is the JSON shape for one month of store inventory.
type monthListing struct {
	Month     int      `json:"month"`
	MonthName string   `json:"month_name"`
	Files     []string `json:"files"`
}

type storeListing struct {
	Year   int            `json:"year"`
	Root   string         `json:"root"`
	Months []monthListing `json:"months"`
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <year> [month]",
		Short: "Show the store inventory for a year or month",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runList,
	}

	cmd.Flags().Bool("json", false, "Print the inventory as JSON")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return apperrors.NewAppValidationError(fmt.Sprintf("year must be a number, got %q", args[0]))
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	st := svc.Store()

	listing := storeListing{Year: year, Root: st.Root()}
	if len(args) == 2 {
		month, err := strconv.Atoi(args[1])
		if err != nil {
			return apperrors.NewAppValidationError(fmt.Sprintf("month must be a number, got %q", args[1]))
		}
		files, err := st.ListMonth(year, month)
		if err != nil {
			return err
		}
		listing.Months = []monthListing{monthEntry(month, files)}
	} else {
		byMonth, err := st.List(year)
		if err != nil {
			return err
		}
		for month := 1; month <= 12; month++ {
			listing.Months = append(listing.Months, monthEntry(month, byMonth[month]))
		}
	}

	if asJSON {
		return printJSON(cmd.OutOrStdout(), listing)
	}
	printStoreListing(cmd.OutOrStdout(), listing)
	return nil
}

func monthEntry(month int, files []string) monthListing {
	return monthListing{
		Month:     month,
		MonthName: store.MonthDirName(month),
		Files:     files,
	}
}

func printStoreListing(w io.Writer, listing storeListing) {
	fmt.Fprintf(w, "Store inventory for %d under %s\n", listing.Year, listing.Root)
	total := 0
	for _, month := range listing.Months {
		fmt.Fprintf(w, "  %-12s %d files\n", month.MonthName, len(month.Files))
		for _, file := range month.Files {
			fmt.Fprintf(w, "      %s\n", filepath.Base(file))
		}
		total += len(month.Files)
	}
	fmt.Fprintf(w, "Total: %d files\n", total)
}
