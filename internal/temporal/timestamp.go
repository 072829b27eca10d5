package temporal

import (
	"strings"
	"time"
)

// timestampLayouts are tried in order when parsing cell text. The list
// covers ISO forms, the slash forms common in exported telemetry, and the
// short styles spreadsheet readers emit for date-formatted cells.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"1/2/06 15:04",
	"01-02-06 15:04",
	"02-Jan-06",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseTimestamp parses cell text as a point in time. It returns false for
// empty cells and anything no layout accepts.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
