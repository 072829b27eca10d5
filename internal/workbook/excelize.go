package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// excelizeBackend reads OOXML workbooks through excelize.
type excelizeBackend struct{}

func (b *excelizeBackend) Name() string { return "excelize" }

func (b *excelizeBackend) CanOpen(format Format) bool {
	return format == FormatXLSX
}

func (b *excelizeBackend) Open(path string) (Document, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("excelize open: %w", err)
	}
	return &excelizeDocument{file: f}, nil
}

type excelizeDocument struct {
	file *excelize.File
}

func (d *excelizeDocument) SheetNames() []string {
	return d.file.GetSheetList()
}

func (d *excelizeDocument) Rows(sheet string) ([][]string, error) {
	rows, err := d.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("excelize read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func (d *excelizeDocument) Close() error {
	return d.file.Close()
}
