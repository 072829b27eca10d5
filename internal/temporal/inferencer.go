package temporal

import (
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"telcli/internal/workbook"
)

// contentSampleRows is how many data rows the content fallback inspects.
const contentSampleRows = 10

// datePattern pairs a filename regexp with the extraction of its capture
// groups. Patterns are tried in declaration order; a match whose extracted
// key fails validation is discarded and the scan continues, so syntactic
// hits never beat semantically valid ones further down the list.
type datePattern struct {
	re      *regexp.Regexp
	extract func(match []string) (Key, bool)
}

var datePatterns = []datePattern{
	// YYYY-MM-DD, with - _ . as separators throughout.
	{
		re:      regexp.MustCompile(`(\d{4})[-_.](\d{1,2})[-_.](\d{1,2})`),
		extract: extractYearMonth,
	},
	// DD-MM-YYYY
	{
		re: regexp.MustCompile(`(\d{1,2})[-_.](\d{1,2})[-_.](\d{4})`),
		extract: func(match []string) (Key, bool) {
			return numericKey(match[3], match[2])
		},
	},
	// YYYYMMDD
	{
		re:      regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`),
		extract: extractYearMonth,
	},
	// MonthName-YYYY, full names or abbreviations
	{
		re: regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*[-_.](\d{4})`),
		extract: func(match []string) (Key, bool) {
			return namedKey(match[2], match[1])
		},
	},
	// YYYY-MonthName
	{
		re: regexp.MustCompile(`(?i)(\d{4})[-_.](jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*`),
		extract: func(match []string) (Key, bool) {
			return namedKey(match[1], match[2])
		},
	},
	// YYYY-MM, month not followed by another digit or a dot
	{
		re:      regexp.MustCompile(`(\d{4})[-_.](\d{1,2})([^\d.]|$)`),
		extract: extractYearMonth,
	},
	// MM-YYYY
	{
		re: regexp.MustCompile(`(\d{1,2})[-_.](\d{4})`),
		extract: func(match []string) (Key, bool) {
			return numericKey(match[2], match[1])
		},
	},
	// YYYYMM, month not followed by another digit or a dot
	{
		re:      regexp.MustCompile(`(\d{4})(\d{2})([^\d.]|$)`),
		extract: extractYearMonth,
	},
}

func extractYearMonth(match []string) (Key, bool) {
	return numericKey(match[1], match[2])
}

func numericKey(yearStr, monthStr string) (Key, bool) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return Key{}, false
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return Key{}, false
	}
	return Key{Year: year, Month: month}, true
}

func namedKey(yearStr, monthToken string) (Key, bool) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return Key{}, false
	}
	month, ok := monthFromName(monthToken)
	if !ok {
		return Key{}, false
	}
	return Key{Year: year, Month: month}, true
}

// monthFromName resolves a month token by prefix match against full names
// and 3-letter abbreviations. Trailing characters are tolerated, so
// "January", "Jan" and "Jan25" all resolve to 1.
func monthFromName(token string) (int, bool) {
	token = strings.ToLower(token)
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		if strings.HasPrefix(token, full) || strings.HasPrefix(token, full[:3]) {
			return int(m), true
		}
	}
	return 0, false
}

// Inferencer derives temporal keys for files.
type Inferencer struct {
	logger *slog.Logger
}

// NewInferencer creates an inferencer.
func NewInferencer(logger *slog.Logger) *Inferencer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inferencer{logger: logger.With(slog.String("component", "temporal"))}
}

// Infer derives a key for the file at path, trying the filename first and
// workbook content second. The boolean is false when both strategies fail;
// the caller decides whether that is an error.
func (i *Inferencer) Infer(path string) (Key, bool) {
	if key, ok := i.InferFromFilename(filepath.Base(path)); ok {
		return key, true
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" || ext == ".xls" {
		if key, ok := i.inferFromContent(path); ok {
			return key, true
		}
	}

	i.logger.Debug("Could not determine year and month", slog.String("file", path))
	return Key{}, false
}

// InferFromFilename scans the filename against the date patterns in order
// and returns the first match that validates.
func (i *Inferencer) InferFromFilename(name string) (Key, bool) {
	for _, p := range datePatterns {
		match := p.re.FindStringSubmatch(name)
		if match == nil {
			continue
		}
		key, ok := p.extract(match)
		if !ok || !key.Valid() {
			// Syntactic hit with invalid values; keep scanning.
			continue
		}
		i.logger.Debug("Inferred key from filename",
			slog.String("file", name),
			slog.String("key", key.String()))
		return key, true
	}
	return Key{}, false
}

// inferFromContent opens the workbook and scans the first sheet for a
// column whose name mentions date or time, taking the year and month of
// its first parseable value.
func (i *Inferencer) inferFromContent(path string) (Key, bool) {
	doc, err := workbook.Open(path)
	if err != nil {
		i.logger.Debug("Content fallback could not open workbook",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return Key{}, false
	}
	defer doc.Close()

	names := doc.SheetNames()
	if len(names) == 0 {
		return Key{}, false
	}
	rows, err := doc.Rows(names[0])
	if err != nil || len(rows) < 2 {
		return Key{}, false
	}

	header := rows[0]
	limit := len(rows)
	if limit > contentSampleRows+1 {
		limit = contentSampleRows + 1
	}

	for col, name := range header {
		lower := strings.ToLower(name)
		if !strings.Contains(lower, "date") && !strings.Contains(lower, "time") {
			continue
		}

		for r := 1; r < limit; r++ {
			if col >= len(rows[r]) {
				continue
			}
			cell := strings.TrimSpace(rows[r][col])
			if cell == "" {
				continue
			}

			// Only the first populated value of the column counts.
			if ts, ok := ParseTimestamp(cell); ok {
				key := Key{Year: ts.Year(), Month: int(ts.Month())}
				if key.Valid() {
					i.logger.Debug("Inferred key from content",
						slog.String("file", path),
						slog.String("column", name),
						slog.String("key", key.String()))
					return key, true
				}
			}
			break
		}
	}
	return Key{}, false
}
