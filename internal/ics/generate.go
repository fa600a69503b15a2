package ics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"coursecal/internal/course"
	"coursecal/internal/term"
)

// ErrMissingTermTable is returned when events are generated without a term table.
var ErrMissingTermTable = errors.New("ics: term table not configured")

// TZID is the only time zone events are written in.
const TZID = "America/New_York"

const (
	crlf        = "\r\n"
	stampLayout = "20060102T150405"
	// untilTime puts UNTIL just before midnight Eastern on the end date.
	untilTime = "T035959Z"
)

// Resolved is where and when a course's weekly recurrence starts and stops.
type Resolved struct {
	FirstStart term.Date // first meeting date
	Shift      int       // days between the term start and FirstStart
	Until      term.Date // term end date + 1 day
	Days       []term.Day
	StartTime  string // HHMMSS
	EndTime    string // HHMMSS
}

// Generator turns course records into VEVENT blocks against one term table.
type Generator struct {
	table *term.Table
	now   func() time.Time
	uid   func() string
}

// Option customizes a Generator.
type Option func(*Generator)

// WithClock sets the clock used for DTSTAMP, CREATED and LAST-MODIFIED.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithUIDFunc sets the UID source; the default is a random UUID.
func WithUIDFunc(f func() string) Option {
	return func(g *Generator) { g.uid = f }
}

// NewGenerator returns a Generator bound to table. A nil table is accepted
// so that misconfiguration surfaces as ErrMissingTermTable on Generate.
func NewGenerator(table *term.Table, opts ...Option) *Generator {
	g := &Generator{
		table: table,
		now:   time.Now,
		uid:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Resolve computes the first meeting date, the recurrence end and the
// meeting days and times of rec.
func (g *Generator) Resolve(rec course.Record) (Resolved, error) {
	if g.table == nil {
		return Resolved{}, ErrMissingTermTable
	}
	start, end, err := term.ResolveBounds(rec.Term)
	if err != nil {
		return Resolved{}, err
	}
	m, err := rec.Meeting()
	if err != nil {
		return Resolved{}, err
	}
	first, shift, err := term.AlignFirstOccurrence(*g.table, start, m.Days)
	if err != nil {
		return Resolved{}, err
	}
	until, err := g.table[end].AddDays(1)
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{
		FirstStart: first,
		Shift:      shift,
		Until:      until,
		Days:       m.Days,
		StartTime:  m.Start,
		EndTime:    m.End,
	}, nil
}

// Generate renders the VEVENT block for rec. Lines are CRLF separated and
// the block carries no trailing line break.
func (g *Generator) Generate(rec course.Record) (string, error) {
	r, err := g.Resolve(rec)
	if err != nil {
		return "", fmt.Errorf("ics: course %s: %w", rec.CourseID, err)
	}

	now := g.now().UTC().Format(stampLayout) + "Z"
	days := make([]string, len(r.Days))
	for i, d := range r.Days {
		days[i] = string(d)
	}
	summary := rec.DisplayName()
	if summary == "" {
		summary = rec.CourseID
	}

	lines := []string{
		"BEGIN:VEVENT",
		"DTSTART;TZID=" + TZID + ":" + r.FirstStart.String() + "T" + r.StartTime,
		"DTEND;TZID=" + TZID + ":" + r.FirstStart.String() + "T" + r.EndTime,
		"RRULE:FREQ=WEEKLY;UNTIL=" + r.Until.String() + untilTime + ";BYDAY=" + strings.Join(days, ","),
		"DTSTAMP:" + now,
		"UID:" + g.uid(),
		"CREATED:" + now,
		Fold("DESCRIPTION:"+Description(rec), FoldWidth),
		"LAST-MODIFIED:" + now,
		"SEQUENCE:0",
		"STATUS:CONFIRMED",
		"SUMMARY:" + summary,
		"TRANSP:OPAQUE",
		"END:VEVENT",
	}
	return strings.Join(lines, crlf), nil
}

// GenerateAll renders every record, stopping at the first failure.
func (g *Generator) GenerateAll(recs []course.Record) ([]string, error) {
	events := make([]string, 0, len(recs))
	for _, rec := range recs {
		ev, err := g.Generate(rec)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// Description is the event text: course id, the meetings string as written
// in the schedule with the location, and the instructor, separated by
// escaped newlines.
func Description(rec course.Record) string {
	return rec.CourseID + `\n` + rec.Meetings + " | " + rec.Location + `\n` + rec.Instructor
}
