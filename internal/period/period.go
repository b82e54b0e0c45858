// Package period scopes dated records to a calendar month.
package period

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the day-granularity layout records use.
const DateLayout = "2006-01-02"

// Period is a calendar month.
type Period struct {
	Year  int
	Month time.Month
}

// Of returns the period containing t.
func Of(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Current returns the period containing now.
func Current(now time.Time) Period { return Of(now) }

// Parse reads a "YYYY-MM" string.
func Parse(s string) (Period, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: want YYYY-MM", s)
	}
	return Of(t), nil
}

// New builds a period, rejecting months outside 1..12.
func New(year int, month int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("invalid month %d: must be between 1 and 12", month)
	}
	if year < 1 {
		return Period{}, fmt.Errorf("invalid year %d", year)
	}
	return Period{Year: year, Month: time.Month(month)}, nil
}

// String returns the "YYYY-MM" form.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Label returns a human label such as "October 2026".
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// Contains reports whether date falls in the period.
// Unparsable dates are never contained.
func (p Period) Contains(date string) bool {
	t, err := ParseDate(date)
	if err != nil {
		return false
	}
	return t.Year() == p.Year && t.Month() == p.Month
}

// ParseDate reads a day ("2006-01-02") or a full RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
}

// NormalizeDate rewrites a parseable date in DateLayout.
func NormalizeDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

// Dated is implemented by records carrying a date field.
type Dated interface {
	RecordDate() string
}

// FilterByMonth returns the records whose date falls in p.
// A nil p selects everything and returns records unchanged.
// Records with unparsable dates are dropped.
func FilterByMonth[T Dated](records []T, p *Period) []T {
	if p == nil {
		return records
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if p.Contains(r.RecordDate()) {
			out = append(out, r)
		}
	}
	return out
}
