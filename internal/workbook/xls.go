package workbook

import (
	"fmt"
	"io"

	"github.com/extrame/xls"
)

// xlsBackend reads legacy BIFF workbooks through extrame/xls. The library
// is read-only, which is all ingestion needs.
type xlsBackend struct{}

func (b *xlsBackend) Name() string { return "xls" }

func (b *xlsBackend) CanOpen(format Format) bool {
	return format == FormatXLS
}

func (b *xlsBackend) Open(path string) (Document, error) {
	wb, closer, err := xls.OpenWithCloser(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("xls open: %w", err)
	}
	return &xlsDocument{book: wb, closer: closer}, nil
}

type xlsDocument struct {
	book   *xls.WorkBook
	closer io.Closer
}

func (d *xlsDocument) SheetNames() []string {
	names := make([]string, 0, d.book.NumSheets())
	for i := 0; i < d.book.NumSheets(); i++ {
		if sheet := d.book.GetSheet(i); sheet != nil {
			names = append(names, sheet.Name)
		}
	}
	return names
}

func (d *xlsDocument) Rows(sheet string) ([][]string, error) {
	var ws *xls.WorkSheet
	for i := 0; i < d.book.NumSheets(); i++ {
		if s := d.book.GetSheet(i); s != nil && s.Name == sheet {
			ws = s
			break
		}
	}
	if ws == nil {
		return nil, fmt.Errorf("xls: sheet %q not found", sheet)
	}

	// MaxRow is the highest row index, not a count.
	rows := make([][]string, 0, int(ws.MaxRow)+1)
	for r := 0; r <= int(ws.MaxRow); r++ {
		row := ws.Row(r)
		if row == nil {
			// Keep row positions aligned for sparse sheets.
			rows = append(rows, []string{})
			continue
		}

		cells := make([]string, 0, row.LastCol())
		for c := 0; c < row.LastCol(); c++ {
			if c < row.FirstCol() {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, row.Col(c))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func (d *xlsDocument) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}
