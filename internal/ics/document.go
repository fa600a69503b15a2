package ics

import "strings"

// DefaultProdID identifies the producer in the VCALENDAR header.
const DefaultProdID = "-//coursecal//Course Schedule//EN"

// Calendar is the VCALENDAR envelope events are wrapped in.
type Calendar struct {
	ProdID string
}

// vtimezone describes America/New_York with its current DST rules.
var vtimezone = []string{
	"BEGIN:VTIMEZONE",
	"TZID:" + TZID,
	"BEGIN:DAYLIGHT",
	"TZOFFSETFROM:-0500",
	"TZOFFSETTO:-0400",
	"TZNAME:EDT",
	"DTSTART:19700308T020000",
	"RRULE:FREQ=YEARLY;BYMONTH=3;BYDAY=2SU",
	"END:DAYLIGHT",
	"BEGIN:STANDARD",
	"TZOFFSETFROM:-0400",
	"TZOFFSETTO:-0500",
	"TZNAME:EST",
	"DTSTART:19701101T020000",
	"RRULE:FREQ=YEARLY;BYMONTH=11;BYDAY=1SU",
	"END:STANDARD",
	"END:VTIMEZONE",
}

// Assemble wraps events with the calendar header and footer.
func (c Calendar) Assemble(events []string) string {
	prodID := c.ProdID
	if prodID == "" {
		prodID = DefaultProdID
	}

	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR" + crlf)
	b.WriteString("VERSION:2.0" + crlf)
	b.WriteString("PRODID:" + prodID + crlf)
	b.WriteString("CALSCALE:GREGORIAN" + crlf)
	for _, line := range vtimezone {
		b.WriteString(line + crlf)
	}
	for _, ev := range events {
		b.WriteString(ev + crlf)
	}
	b.WriteString("END:VCALENDAR" + crlf)
	return b.String()
}

// Assemble wraps events with the default calendar envelope.
func Assemble(events []string) string {
	return Calendar{}.Assemble(events)
}
