package kernel

import (
	"fmt"
	"time"

	"restaurant/internal/pkg/errs"
)

// DateLayout is the wire and storage form of a calendar date.
const DateLayout = "2006-01-02"

// ErrDateIsNotConstructed is returned when validating a zero Date.
var ErrDateIsNotConstructed = errs.NewValueIsRequiredError("date must be created via DateOf or ParseDate")

// Date is a calendar day without a time zone. Daily aggregates are keyed by it
// and the retention sweep compares against it.
type Date struct {
	day time.Time // midnight UTC
}

// DateOf returns the calendar day t falls on in loc. A nil loc means UTC.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Date{day: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date", fmt.Errorf("%q is not YYYY-MM-DD", s))
	}
	return Date{day: t}, nil
}

// String returns the YYYY-MM-DD form, or an empty string for the zero Date.
func (d Date) String() string {
	if d.day.IsZero() {
		return ""
	}
	return d.day.Format(DateLayout)
}

// AddDays shifts the date by n calendar days; n may be negative.
func (d Date) AddDays(n int) Date {
	return Date{day: d.day.AddDate(0, 0, n)}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.day.Before(other.day)
}

// IsEqual reports whether both values name the same day.
func (d Date) IsEqual(other Date) bool {
	return d.day.Equal(other.day)
}

// StartIn returns the first instant of the day in loc.
func (d Date) StartIn(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.day.Year(), d.day.Month(), d.day.Day(), 0, 0, 0, 0, loc)
}

// IsZero reports whether the date was never set.
func (d Date) IsZero() bool {
	return d.day.IsZero()
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrDateIsNotConstructed
	}
	return nil
}

// MarshalText renders the YYYY-MM-DD form.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(data []byte) error {
	parsed, err := ParseDate(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
