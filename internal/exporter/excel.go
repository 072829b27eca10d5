package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"telcli/internal/dataprocessing"
	"telcli/internal/errors"
)

// ExcelWriter writes aggregated tables as xlsx workbooks.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates a new Excel writer instance.
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger}
}

// NamedTable pairs a worksheet name with the table to write under it.
type NamedTable struct {
	Name  string
	Table *dataprocessing.Table
}

// WriteWorkbook writes the tables as worksheets, in order. Sheet names are
// capped to the format's 31 character limit. At least one table is
// required; the xlsx container cannot hold zero sheets.
func (w *ExcelWriter) WriteWorkbook(path string, tables []NamedTable) error {
	if len(tables) == 0 {
		return errors.NewAppValidationError("no tables to write")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to create directory for %s", path), err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, nt := range tables {
		sheet := dataprocessing.SheetName(nt.Name)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return errors.NewStorageError(fmt.Sprintf("failed to name sheet %q", sheet), err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return errors.NewStorageError(fmt.Sprintf("failed to create sheet %q", sheet), err)
			}
		}

		if err := w.writeSheet(f, sheet, nt.Table); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to save workbook %s", path), err)
	}

	w.logger.Info("Wrote workbook",
		slog.String("path", path),
		slog.Int("sheets", len(tables)))
	return nil
}

func (w *ExcelWriter) writeSheet(f *excelize.File, sheet string, table *dataprocessing.Table) error {
	header := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to write header of %q", sheet), err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		f.SetRowStyle(sheet, 1, 1, style)
	}

	for r, row := range table.Rows {
		cells := make([]interface{}, len(row))
		for i, cell := range row {
			cells[i] = cellValue(cell)
		}
		addr, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return errors.NewStorageError(fmt.Sprintf("bad cell coordinates in %q", sheet), err)
		}
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to write row %d of %q", r+2, sheet), err)
		}
	}

	return nil
}

// cellValue converts table text back to a typed cell where it parses as a
// number, so downstream spreadsheet tooling sees numerics, not text.
func cellValue(cell string) interface{} {
	if cell == "" {
		return ""
	}
	if num, err := strconv.ParseFloat(cell, 64); err == nil {
		return num
	}
	return cell
}
