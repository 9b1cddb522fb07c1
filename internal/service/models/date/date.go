package date

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// Layout is the storage and wire format of a Date.
const Layout = "2006-01-02"

var parseLayouts = []string{
	Layout,
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// ErrNullDate is returned when scanning a NULL column into a Date.
var ErrNullDate = errors.New("date is null")

// Date is a calendar day without a time of day, stored as YYYY-MM-DD.
type Date struct {
	time.Time
}

// New returns the Date for the given calendar day.
func New(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates t to its calendar day.
func FromTime(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// Parse reads a Date from YYYY-MM-DD. Timestamps are accepted and truncated.
func Parse(s string) (Date, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t), nil
		}
	}

	return Date{}, fmt.Errorf("invalid date %q", s)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(Layout)
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

// DaysUntil returns the number of whole days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Sub(d.Time).Hours() / 24)
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner. Drivers hand back either time.Time (postgres DATE)
// or text (sqlite TEXT).
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = FromTime(v)

		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*d = parsed

		return nil
	case []byte:
		return d.Scan(string(v))
	case nil:
		return ErrNullDate
	default:
		return fmt.Errorf("cannot scan %T into date", src)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed

	return nil
}

// MarshalJSON writes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON reads a quoted date string.
func (d *Date) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid date %s", b)
	}

	return d.UnmarshalText(b[1 : len(b)-1])
}
