package model

import "time"

// Occurrence is a single class meeting produced by expanding a course's
// weekly recurrence.
type Occurrence struct {
	UID string // iCalendar UID of the course event

	// InstanceKey uniquely identifies a single meeting, derived from the
	// local start time.
	InstanceKey string

	Summary     string
	Description string

	// Start / End are in the configured display timezone.
	Start time.Time
	End   time.Time
}
