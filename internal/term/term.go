// Package term resolves course term codes against the academic term-date
// table and aligns a course's first meeting to the weekdays it is held on.
package term

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

var (
	// ErrInvalidTerm is returned for term codes that are neither A-D nor a semester name.
	ErrInvalidTerm = errors.New("invalid term")
	// ErrUnsupportedDay is returned when a Saturday or Sunday meeting is requested.
	ErrUnsupportedDay = errors.New("unsupported meeting day")
	// ErrTermTableIntegrity marks a persisted term table that must be re-collected.
	ErrTermTableIntegrity = errors.New("term table integrity")
)

// Slots is the number of dates in a term table: start and end for terms A-D.
const Slots = 8

// Table holds the start/end dates of terms A, B, C and D in that order.
// A+B form the Fall semester, C+D the Spring semester.
type Table [Slots]Date

// Validate checks that every slot is a real date, each term ends on or after
// its start, and each term starts after the previous one ended.
func (t Table) Validate() error {
	for i, d := range t {
		if !d.Valid() {
			return fmt.Errorf("%w: slot %d: invalid date %d", ErrTermTableIntegrity, i, int(d))
		}
	}
	for i := 0; i < Slots; i += 2 {
		if t[i+1] < t[i] {
			return fmt.Errorf("%w: term %c ends %s before it starts %s", ErrTermTableIntegrity, 'A'+i/2, t[i+1], t[i])
		}
		if i > 0 && t[i] <= t[i-1] {
			return fmt.Errorf("%w: term %c starts %s before term %c ends %s", ErrTermTableIntegrity, 'A'+i/2, t[i], 'A'+i/2-1, t[i-1])
		}
	}
	return nil
}

// Code identifies the term a course runs in: "A".."D" or "Fall"/"Spring".
type Code string

const (
	Fall   Code = "Fall"
	Spring Code = "Spring"
)

var semesterStart = map[Code]int{
	Fall:   0,
	Spring: 4,
}

// ResolveBounds returns the table indices of the first and last date of code.
// A single term spans one pair; a semester spans both of its terms.
func ResolveBounds(code Code) (start, end int, err error) {
	if len(code) == 1 && code[0] >= 'A' && code[0] <= 'D' {
		start = int(code[0]-'A') * 2
		return start, start + 1, nil
	}
	if start, ok := semesterStart[code]; ok {
		return start, start + 3, nil
	}
	return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTerm, string(code))
}

// Day is a two-letter iCalendar weekday token.
type Day string

const (
	Monday    Day = "MO"
	Tuesday   Day = "TU"
	Wednesday Day = "WE"
	Thursday  Day = "TH"
	Friday    Day = "FR"
)

var dayOf = map[time.Weekday]Day{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
}

// DayOf maps a weekday to its token; Saturday and Sunday have none.
func DayOf(w time.Weekday) (Day, bool) {
	d, ok := dayOf[w]
	return d, ok
}

// AlignFirstOccurrence finds the first date on or after table[start] that
// falls on one of days. shift is the number of calendar days between the
// term start and that date, so it is zero when the term starts on a meeting
// day.
//
// A term start or search date that lands on a Saturday or Sunday is stepped
// over, not rejected. ErrUnsupportedDay is reserved for a weekend or unknown
// day token in days, and for a day set that matches nothing within a week.
func AlignFirstOccurrence(table Table, start int, days []Day) (aligned Date, shift int, err error) {
	if start < 0 || start >= Slots {
		return 0, 0, fmt.Errorf("term: table index %d out of range", start)
	}
	first := table[start]
	for _, d := range days {
		if !slices.Contains(weekdays, d) {
			return 0, 0, fmt.Errorf("%w: %q", ErrUnsupportedDay, string(d))
		}
	}

	// Search forward until a match, then step back to the matching day.
	probe := 0
	for {
		if probe > 7 {
			return 0, 0, fmt.Errorf("%w: no weekday in %v", ErrUnsupportedDay, days)
		}
		date, err := first.AddDays(probe)
		if err != nil {
			return 0, 0, err
		}
		probe++
		w, err := date.Weekday()
		if err != nil {
			return 0, 0, err
		}
		if d, ok := DayOf(w); ok && slices.Contains(days, d) {
			break
		}
	}
	shift = probe - 1

	aligned, err = first.AddDays(shift)
	if err != nil {
		return 0, 0, err
	}
	return aligned, shift, nil
}

var weekdays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}
