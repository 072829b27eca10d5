// Package temporal derives (year, month) placement keys for telemetry
// files, from filenames first and workbook content as a fallback.
package temporal

import (
	"fmt"
	"time"

	"telcli/internal/config"
)

// Key is a (year, month) pair controlling where a file is stored. The zero
// value means undetermined.
type Key struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Valid reports whether the key falls inside the storable range. Keys
// outside it are treated as undetermined, not clamped.
func (k Key) Valid() bool {
	return k.Year >= config.MinYear && k.Year <= config.MaxYear &&
		k.Month >= 1 && k.Month <= 12
}

// MonthName returns the English month name, or empty for an unset month.
func (k Key) MonthName() string {
	if k.Month < 1 || k.Month > 12 {
		return ""
	}
	return time.Month(k.Month).String()
}

func (k Key) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, k.Month)
}

// Resolve overlays inferred values onto explicit ones. Caller-supplied
// fields win outright; inference only fills what the caller left unset.
func Resolve(explicit, inferred Key) Key {
	out := explicit
	if out.Year == 0 {
		out.Year = inferred.Year
	}
	if out.Month == 0 {
		out.Month = inferred.Month
	}
	return out
}
