package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"telcli/internal/dataprocessing"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Append    bool
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteTable writes a table to a CSV file with the given options. The
// header row is skipped when appending.
func (w *CSVWriter) WriteTable(path string, table *dataprocessing.Table, options WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("path", path),
		slog.Int("record_count", len(table.Rows)))

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Open file with appropriate flags
	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Write BOM if requested (helps Excel recognize UTF-8)
	if options.BOMPrefix && !options.Append {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if !options.Append && len(table.Columns) > 0 {
		if err := writer.Write(table.Columns); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range table.Rows {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// WriteSimpleCSV writes a table with headers and a BOM prefix.
func (w *CSVWriter) WriteSimpleCSV(path string, table *dataprocessing.Table) error {
	return w.WriteTable(path, table, WriteOptions{
		Append:    false,
		BOMPrefix: true,
	})
}
