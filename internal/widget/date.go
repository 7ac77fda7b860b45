package widget

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date formats accepted by Date.Format.
const (
	FormatISO     = "yyyy-MM-dd"
	FormatDMY     = "dd-MM-yyyy"
	FormatUS      = "MM/dd/yyyy"
	FormatCompact = "compact"
)

// ErrInvalidDate is returned for unparsable or non-existent calendar dates.
var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar day with no time-of-day or zone. The zero value means
// "not set".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a date, normalising overflow the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

// DateOf takes the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current calendar day in loc.
func Today(now time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(now.In(loc))
}

func (d Date) IsZero() bool { return d == Date{} }

// Time returns the date at noon UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC)
}

func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmp.Compare(d.Year, o.Year)
	case d.Month != o.Month:
		return cmp.Compare(d.Month, o.Month)
	default:
		return cmp.Compare(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }
func (d Date) Equal(o Date) bool  { return d == o }

func (d Date) AddDays(n int) Date { return DateOf(d.Time().AddDate(0, 0, n)) }

// AddMonths moves by whole months; day overflow rolls into the next month.
func (d Date) AddMonths(n int) Date { return DateOf(d.Time().AddDate(0, n, 0)) }

func (d Date) FirstOfMonth() Date { return Date{Year: d.Year, Month: d.Month, Day: 1} }

func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// DaysUntil returns the number of nights from d to o.
func (d Date) DaysUntil(o Date) int {
	return int(o.Time().Sub(d.Time()).Hours() / 24)
}

// String renders the date as YYYY-MM-DD, or "" when unset.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(FormatISO)
}

// Format renders the date in one of the widget formats. Unknown formats use
// dd-MM-yyyy.
func (d Date) Format(layout string) string {
	switch layout {
	case FormatISO:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	case FormatUS:
		return fmt.Sprintf("%02d/%02d/%04d", d.Month, d.Day, d.Year)
	case FormatCompact:
		return fmt.Sprintf("%02d/%02d/%02d", d.Day, d.Month, d.Year%100)
	default:
		return fmt.Sprintf("%02d-%02d-%04d", d.Day, d.Month, d.Year)
	}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseISODate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseISODate parses YYYY-MM-DD.
func ParseISODate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return exactDate(s, parts[0], parts[1], parts[2])
}

// ParseDMY parses DD-MM-YYYY, the format host pages push updates in.
func ParseDMY(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return exactDate(s, parts[2], parts[1], parts[0])
}

// ParseMonth parses YYYY-MM into the first day of that month.
func ParseMonth(s string) (Date, error) {
	return ParseISODate(strings.TrimSpace(s) + "-01")
}

// exactDate rejects values that time.Date would silently normalise.
func exactDate(raw, ys, ms, ds string) (Date, error) {
	y, errY := strconv.Atoi(ys)
	m, errM := strconv.Atoi(ms)
	d, errD := strconv.Atoi(ds)
	if errY != nil || errM != nil || errD != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	date := NewDate(y, time.Month(m), d)
	if date.Year != y || int(date.Month) != m || date.Day != d {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return date, nil
}
