package dataprocessing

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"telcli/internal/config"
	"telcli/internal/errors"
	"telcli/internal/workbook"
)

// Options controls how a workbook is aggregated.
type Options struct {
	// ValueColumns are the columns to carry through, in output order. At
	// least one is required.
	ValueColumns []string
	// TimestampColumn names the timestamp column explicitly. Sheets
	// lacking it are skipped.
	TimestampColumn string
	// AutoTimestamp detects the first column whose name contains "time"
	// or "date" when no explicit column is set.
	AutoTimestamp bool
	// SumValues collapses rows sharing an identical timestamp by numeric
	// addition of the value columns.
	SumValues bool
	// TagSourceSheet records each row's originating sheet under a
	// Source_Sheet column.
	TagSourceSheet bool
	// PrefixLength groups sheets by their first N characters. Zero or
	// negative falls back to the default.
	PrefixLength int
}

// RawWorkbookOptions returns the options of the single-column flow used
// for workbooks straight off the instruments: the Raw column against an
// auto-detected timestamp, concatenated without collapsing.
func RawWorkbookOptions() Options {
	return Options{
		ValueColumns:  []string{config.DefaultValueColumn},
		AutoTimestamp: true,
		PrefixLength:  config.DefaultPrefixLength,
	}
}

// Result holds the aggregation outcome for one workbook. Tables maps group
// keys to their aggregated tables; groups that produced no rows are
// absent.
type Result struct {
	Groups SheetGroups
	Tables map[string]*Table
}

// ProcessedGroups returns the number of groups that produced data.
func (r *Result) ProcessedGroups() int {
	return len(r.Tables)
}

// Engine aggregates workbook sheets into per-group tables. It is purely
// functional over the data it reads and safe to reuse across files.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates an aggregation engine.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger.With(slog.String("component", "aggregation"))}
}

// Aggregate reads the workbook at path and merges its sheets per group.
//
// Sheets are grouped by name prefix, then each member sheet is profiled
// and, when usable, projected onto the canonical Timestamp column plus the
// requested value columns. Per-sheet failures are logged and skipped; only
// failures to open the workbook itself are returned. Groups whose combined
// table ends up empty are omitted from the result.
func (e *Engine) Aggregate(path string, opts Options) (*Result, error) {
	if len(opts.ValueColumns) == 0 {
		return nil, errors.NewAppValidationError("at least one value column is required")
	}
	if opts.PrefixLength < 1 {
		opts.PrefixLength = config.DefaultPrefixLength
	}

	doc, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	names := doc.SheetNames()
	groups := GroupSheets(names, opts.PrefixLength)
	result := &Result{Groups: groups, Tables: make(map[string]*Table)}

	for _, key := range groups.Order {
		combined := &Table{}

		for _, sheet := range groups.Members[key] {
			rows, err := doc.Rows(sheet)
			if err != nil {
				e.logger.Warn("Skipping unreadable sheet",
					slog.String("file", path),
					slog.String("sheet", sheet),
					slog.String("error", err.Error()))
				continue
			}
			if len(rows) == 0 {
				continue
			}

			profile := ResolveProfile(sheet, rows[0], opts)
			if !profile.Usable {
				e.logger.Debug("Skipping sheet without requested columns",
					slog.String("file", path),
					slog.String("sheet", sheet))
				continue
			}

			combined.AppendTable(project(rows, profile, opts))
		}

		if combined.IsEmpty() {
			continue
		}

		if combined.ColumnIndex(config.ColumnTimestamp) >= 0 {
			combined.SortByColumn(config.ColumnTimestamp)
			if opts.SumValues {
				combined = collapseByTimestamp(combined, opts.ValueColumns)
			}
		}

		result.Tables[key] = combined
	}

	e.logger.Debug("Aggregated workbook",
		slog.String("file", path),
		slog.Int("total_groups", result.Groups.TotalGroups()),
		slog.Int("processed_groups", result.ProcessedGroups()))
	return result, nil
}

// ProcessRawWorkbook runs the single-column Raw flow against a workbook.
func (e *Engine) ProcessRawWorkbook(path string) (*Result, error) {
	return e.Aggregate(path, RawWorkbookOptions())
}

// project extracts the profiled columns from raw sheet rows. The resolved
// timestamp column is renamed to the canonical Timestamp name and placed
// first. Rows whose projected cells are all blank are dropped.
func project(rows [][]string, profile SheetProfile, opts Options) *Table {
	header := rows[0]

	var columns []string
	var srcIdx []int
	if profile.TimestampColumn != "" {
		columns = append(columns, config.ColumnTimestamp)
		srcIdx = append(srcIdx, indexOf(header, profile.TimestampColumn))
	}
	for _, col := range profile.PresentValueColumns {
		columns = append(columns, col)
		srcIdx = append(srcIdx, indexOf(header, col))
	}

	out := NewTable(columns...)
	for _, row := range rows[1:] {
		cells := make([]string, len(srcIdx))
		blank := true
		for i, si := range srcIdx {
			if si >= 0 && si < len(row) {
				cells[i] = row[si]
			}
			if strings.TrimSpace(cells[i]) != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		out.AppendRow(cells)
	}

	if opts.TagSourceSheet {
		out.EnsureConstantColumn(config.ColumnSourceSheet, profile.SheetName)
	}
	return out
}

// collapseByTimestamp merges rows sharing an identical timestamp cell into
// one row per value column by numeric addition. Missing and non-numeric
// cells count as zero. Rows with an empty timestamp are dropped, matching
// group-by semantics over missing keys. Input rows are already sorted, so
// first-appearance order keeps the output sorted.
func collapseByTimestamp(t *Table, valueColumns []string) *Table {
	tsIdx := t.ColumnIndex(config.ColumnTimestamp)
	srcIdx := t.ColumnIndex(config.ColumnSourceSheet)

	columns := []string{config.ColumnTimestamp}
	var valIdx []int
	for _, col := range valueColumns {
		if idx := t.ColumnIndex(col); idx >= 0 {
			columns = append(columns, col)
			valIdx = append(valIdx, idx)
		}
	}
	if srcIdx >= 0 {
		columns = append(columns, config.ColumnSourceSheet)
	}

	type aggRow struct {
		sums   []float64
		sheets map[string]struct{}
	}
	var order []string
	agg := make(map[string]*aggRow)

	for _, row := range t.Rows {
		ts := cellAt(row, tsIdx)
		if strings.TrimSpace(ts) == "" {
			continue
		}

		a, seen := agg[ts]
		if !seen {
			a = &aggRow{
				sums:   make([]float64, len(valIdx)),
				sheets: make(map[string]struct{}),
			}
			agg[ts] = a
			order = append(order, ts)
		}

		for i, vi := range valIdx {
			cell := strings.TrimSpace(cellAt(row, vi))
			if num, err := strconv.ParseFloat(cell, 64); err == nil {
				a.sums[i] += num
			}
		}
		if srcIdx >= 0 {
			if sheet := cellAt(row, srcIdx); sheet != "" {
				a.sheets[sheet] = struct{}{}
			}
		}
	}

	out := NewTable(columns...)
	for _, ts := range order {
		a := agg[ts]
		row := make([]string, 0, len(columns))
		row = append(row, ts)
		for _, sum := range a.sums {
			row = append(row, strconv.FormatFloat(sum, 'f', -1, 64))
		}
		if srcIdx >= 0 {
			row = append(row, joinSheetSet(a.sheets))
		}
		out.AppendRow(row)
	}
	return out
}

// FlattenGroups combines a result's per-group tables into one, stamping
// each row's group under a Model column. Group order follows sheet order
// in the source workbook.
func FlattenGroups(result *Result) *Table {
	combined := &Table{}
	for _, key := range result.Groups.Order {
		table, ok := result.Tables[key]
		if !ok || table.IsEmpty() {
			continue
		}
		stamped := table.Clone()
		stamped.EnsureConstantColumn(config.ColumnModel, SheetName(key))
		combined.AppendTable(stamped)
	}
	return combined
}

// SheetName converts a group key into a legal worksheet name by enforcing
// the 31 character cap.
func SheetName(groupKey string) string {
	runes := []rune(groupKey)
	if len(runes) <= config.MaxSheetNameLength {
		return groupKey
	}
	return string(runes[:config.MaxSheetNameLength])
}

func indexOf(header []string, name string) int {
	for i, col := range header {
		if col == name {
			return i
		}
	}
	return -1
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func joinSheetSet(sheets map[string]struct{}) string {
	names := make([]string, 0, len(sheets))
	for name := range sheets {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
