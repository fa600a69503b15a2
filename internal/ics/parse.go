package ics

import (
	"bytes"
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	ical "github.com/arran4/golang-ical"

	appLog "coursecal/internal/log"
)

// ParsedEvent is a VEVENT read back from an assembled calendar.
type ParsedEvent struct {
	UID         string
	Summary     string
	Description string

	Start time.Time
	End   time.Time

	RawRRule string
}

// ParseCalendar parses an ICS document with golang-ical. It is used to check
// that generated output is readable by a real parser and to feed
// ExpandOccurrences. Every event must carry a UID, DTSTART, DTEND and RRULE.
func ParseCalendar(body []byte) ([]ParsedEvent, error) {
	if len(body) == 0 {
		return nil, errors.New("ics: empty calendar")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ics: parse calendar: %w", err)
	}

	events := make([]ParsedEvent, 0, len(cal.Events()))
	for i, ve := range cal.Events() {
		ev, err := parseVEvent(ve)
		if err != nil {
			return nil, fmt.Errorf("ics: event %d: %w", i+1, err)
		}
		events = append(events, ev)
	}

	appLog.Debug("ics parse completed", "event_count", len(events))
	return events, nil
}

func parseVEvent(ve *ical.VEvent) (ParsedEvent, error) {
	var out ParsedEvent

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uidProp.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return out, fmt.Errorf("uid %s: DTSTART: %w", out.UID, err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return out, fmt.Errorf("uid %s: DTEND: %w", out.UID, err)
	}
	out.Start = start
	out.End = end

	rruleProp := ve.GetProperty(ical.ComponentPropertyRrule)
	if rruleProp == nil || rruleProp.Value == "" {
		return out, fmt.Errorf("uid %s: missing RRULE", out.UID)
	}
	out.RawRRule = rruleProp.Value

	return out, nil
}
