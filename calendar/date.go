package calendar

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar date with day granularity
// =============================================================================

// Date is a calendar date. It carries no time-of-day and no time zone
// semantics: the underlying instant is pinned to midnight UTC so that
// comparisons and day arithmetic are exact.
type Date struct {
	t time.Time
}

// ISOFormat is the wire representation of a Date.
const ISOFormat = "2006-01-02"

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(ISOFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }
func (d Date) IsZero() bool      { return d.t.IsZero() }

func (d Date) String() string { return d.t.Format(ISOFormat) }

// DaysBetween returns the number of calendar days from one date to another.
func DaysBetween(from, to Date) int { return int(to.t.Sub(from.t).Hours() / 24) }

// =============================================================================
// JSON - Dates cross serialization boundaries as "YYYY-MM-DD"
// =============================================================================

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s (expected quoted YYYY-MM-DD)", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
