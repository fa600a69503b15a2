package term

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date encoded as the integer YYYYMMDD.
type Date int

const dateLayout = "20060102"

// DateOf encodes the calendar date of t.
func DateOf(t time.Time) Date {
	return Date(t.Year()*10000 + int(t.Month())*100 + t.Day())
}

// ParseDate parses an 8-digit YYYYMMDD string and rejects impossible dates.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("term: %q is not a number: %w", s, err)
	}
	d := Date(n)
	if _, err := d.Time(); err != nil {
		return 0, err
	}
	return d, nil
}

// Time returns d at midnight UTC. Dates that do not exist on the Gregorian
// calendar (20230230, 20231301, ...) are rejected instead of normalized.
func (d Date) Time() (time.Time, error) {
	t, err := time.Parse(dateLayout, fmt.Sprintf("%08d", int(d)))
	if err != nil || d < 10000101 {
		return time.Time{}, fmt.Errorf("term: invalid date %d", int(d))
	}
	return t, nil
}

// Valid reports whether d is a real calendar date.
func (d Date) Valid() bool {
	_, err := d.Time()
	return err == nil
}

// AddDays shifts d by n calendar days across month and year boundaries.
func (d Date) AddDays(n int) (Date, error) {
	t, err := d.Time()
	if err != nil {
		return 0, err
	}
	return DateOf(t.AddDate(0, 0, n)), nil
}

// Weekday returns the day of the week d falls on.
func (d Date) Weekday() (time.Weekday, error) {
	t, err := d.Time()
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%08d", int(d))
}
