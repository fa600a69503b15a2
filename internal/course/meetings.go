package course

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"coursecal/internal/term"
)

// ErrMalformedMeetings is returned when a meetings string cannot be split
// into its day pattern and start/end times.
var ErrMalformedMeetings = errors.New("malformed meetings encoding")

// Meeting is the parsed form of a meetings string such as
// "M-W-F | 10:00 AM - 10:50 AM".
type Meeting struct {
	Days  []term.Day
	Start string // HHMMSS, 24-hour
	End   string // HHMMSS, 24-hour
}

var letterDays = map[rune]term.Day{
	'M': term.Monday,
	'T': term.Tuesday,
	'W': term.Wednesday,
	'R': term.Thursday,
	'F': term.Friday,
}

// ParseMeetings splits a meetings string at its first '|' into the day
// pattern and the time range, and the time range at its first '-' into the
// start and end times.
func ParseMeetings(s string) (Meeting, error) {
	dayPart, timePart, ok := strings.Cut(s, "|")
	if !ok {
		return Meeting{}, fmt.Errorf("%w: %q has no '|'", ErrMalformedMeetings, s)
	}
	days, err := ParseDays(dayPart)
	if err != nil {
		return Meeting{}, err
	}
	start, end, err := ParseTimeRange(timePart)
	if err != nil {
		return Meeting{}, err
	}
	return Meeting{Days: days, Start: start, End: end}, nil
}

// ParseDays maps a day pattern like "M-W-F" to ordered, de-duplicated ICS
// weekday tokens. Any 'S' (Saturday or Sunday) fails with term.ErrUnsupportedDay.
func ParseDays(pattern string) ([]term.Day, error) {
	pattern = strings.TrimSpace(pattern)
	if strings.Contains(pattern, "S") {
		return nil, fmt.Errorf("%w: weekend day in %q", term.ErrUnsupportedDay, pattern)
	}

	var days []term.Day
	seen := make(map[term.Day]bool)
	for _, tok := range strings.Split(pattern, "-") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, fmt.Errorf("%w: empty day in %q", ErrMalformedMeetings, pattern)
		}
		for _, r := range tok {
			d, ok := letterDays[r]
			if !ok {
				return nil, fmt.Errorf("%w: unknown day %q in %q", ErrMalformedMeetings, r, pattern)
			}
			if !seen[d] {
				seen[d] = true
				days = append(days, d)
			}
		}
	}
	return days, nil
}

// ParseTimeRange converts "10:00 AM - 10:50 AM" or "10:00-10:50 AM" to a pair
// of HHMMSS strings. A side without AM/PM takes the other side's marker,
// flipped if that would put the start after the end.
func ParseTimeRange(s string) (start, end string, err error) {
	startPart, endPart, ok := strings.Cut(s, "-")
	if !ok {
		return "", "", fmt.Errorf("%w: %q has no '-' between times", ErrMalformedMeetings, strings.TrimSpace(s))
	}
	sc, sm := splitClock(startPart)
	ec, em := splitClock(endPart)

	switch {
	case sm == "" && em != "":
		sm = em
		if clockAfter(sc, sm, ec, em) {
			sm = flip(sm)
		}
	case em == "" && sm != "":
		em = sm
		if clockAfter(sc, sm, ec, em) {
			em = flip(em)
		}
	}

	startT, err := parseClock(sc, sm)
	if err != nil {
		return "", "", err
	}
	endT, err := parseClock(ec, em)
	if err != nil {
		return "", "", err
	}
	return formatClock(startT), formatClock(endT), nil
}

// ParseTime converts a single "H:MM AM" style time to HHMMSS.
func ParseTime(s string) (string, error) {
	c, m := splitClock(s)
	t, err := parseClock(c, m)
	if err != nil {
		return "", err
	}
	return formatClock(t), nil
}

// splitClock separates "10:50 AM" / "10:50am" into "10:50" and "AM".
func splitClock(s string) (clock, meridiem string) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, m := range []string{"AM", "PM"} {
		if strings.HasSuffix(s, m) {
			return strings.TrimSpace(strings.TrimSuffix(s, m)), m
		}
	}
	return s, ""
}

// parseClock reads H:MM with an optional meridiem; without one the clock is 24-hour.
func parseClock(clock, meridiem string) (time.Time, error) {
	layout := "15:04"
	value := clock
	if meridiem != "" {
		layout = "3:04 PM"
		value = clock + " " + meridiem
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad time %q", ErrMalformedMeetings, strings.TrimSpace(value))
	}
	return t, nil
}

func clockAfter(sc, sm, ec, em string) bool {
	s, err1 := parseClock(sc, sm)
	e, err2 := parseClock(ec, em)
	return err1 == nil && err2 == nil && s.After(e)
}

func flip(m string) string {
	if m == "AM" {
		return "PM"
	}
	return "AM"
}

func formatClock(t time.Time) string {
	return fmt.Sprintf("%02d%02d00", t.Hour(), t.Minute())
}
