// Package workbook reads spreadsheet files behind a single interface.
//
// Modern .xlsx workbooks and legacy .xls workbooks use entirely different
// containers, so each gets its own backend. Open detects the container by
// magic bytes and walks the backend list in order, which keeps callers
// ignorant of which library actually parsed the file.
package workbook

import (
	"fmt"
	"log/slog"

	"telcli/internal/errors"
)

// Document is an open workbook. Implementations are read-only and must be
// closed after use.
type Document interface {
	// SheetNames returns the sheet names in workbook order.
	SheetNames() []string
	// Rows returns the sheet's cells as rows of strings. Trailing empty
	// cells may be trimmed, so rows can be ragged.
	Rows(sheet string) ([][]string, error)
	Close() error
}

// Backend opens workbooks of a particular container format.
type Backend interface {
	Name() string
	CanOpen(format Format) bool
	Open(path string) (Document, error)
}

// backends are tried in order. The xlsx backend comes first because nearly
// all inputs are OOXML.
var backends = []Backend{
	&excelizeBackend{},
	&xlsBackend{},
}

// Open detects the file format and opens it with the first backend that
// accepts it. An unknown format is offered to every backend before giving
// up, since detection is a hint rather than a verdict.
func Open(path string) (Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, b := range backends {
		if format != FormatUnknown && !b.CanOpen(format) {
			continue
		}

		doc, openErr := b.Open(path)
		if openErr == nil {
			slog.Debug("Opened workbook",
				slog.String("path", path),
				slog.String("backend", b.Name()),
				slog.String("format", string(format)))
			return doc, nil
		}

		slog.Debug("Backend failed to open workbook",
			slog.String("path", path),
			slog.String("backend", b.Name()),
			slog.String("error", openErr.Error()))
		lastErr = openErr
	}

	if lastErr != nil {
		return nil, errors.NewFormatError(
			fmt.Sprintf("unsupported workbook format for %s (detected %s)", path, format), lastErr)
	}
	return nil, errors.NewFormatError(
		fmt.Sprintf("unsupported workbook format for %s (detected %s)", path, format), nil)
}

// ReadSheets opens a workbook, reads every sheet, and closes it. Sheet
// order is preserved in the returned name slice.
func ReadSheets(path string) ([]string, map[string][][]string, error) {
	doc, err := Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer doc.Close()

	names := doc.SheetNames()
	sheets := make(map[string][][]string, len(names))
	for _, name := range names {
		rows, err := doc.Rows(name)
		if err != nil {
			return nil, nil, errors.NewParsingError(
				fmt.Sprintf("failed to read sheet %q in %s", name, path), err)
		}
		sheets[name] = rows
	}
	return names, sheets, nil
}
