// Package course holds one course offering as read from a schedule
// spreadsheet and derives the values an ICS event needs from it.
package course

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"coursecal/internal/term"
)

// Formats whose course ids carry a section-group suffix after a second '-'.
const (
	FormatLecture    = "Lecture"
	FormatLaboratory = "Laboratory"
	FormatDiscussion = "Discussion"
)

// Record is one course offering: a row of the schedule spreadsheet.
type Record struct {
	Term       term.Code `validate:"required"`
	CourseID   string    `validate:"required"`
	Format     string    `validate:"required"`
	Meetings   string    `validate:"required,contains=0x7C"`
	Location   string
	Instructor string
	Delivery   string
}

var validate = validator.New()

// Validate checks required fields and that the term code resolves.
func (r Record) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				switch fe.Field() {
				case "Term":
					return fmt.Errorf("course %s: %w: term is empty", r.CourseID, term.ErrInvalidTerm)
				case "Meetings":
					return fmt.Errorf("course %s: %w: %q", r.CourseID, ErrMalformedMeetings, r.Meetings)
				}
			}
		}
		return fmt.Errorf("course %s: %w", r.CourseID, err)
	}
	if _, _, err := term.ResolveBounds(r.Term); err != nil {
		return fmt.Errorf("course %s: %w", r.CourseID, err)
	}
	return nil
}

// Meeting parses the record's meetings string.
func (r Record) Meeting() (Meeting, error) {
	return ParseMeetings(r.Meetings)
}

// DisplayName is the short title shown as the event summary. It is the course
// id up to the first '-', or up to the second '-' for lab and discussion
// sections. A '/' (cross-listed course) always cuts at the '/' instead.
// Returns "" while the id or format is unset.
func (r Record) DisplayName() string {
	id := r.CourseID
	if id == "" || r.Format == "" {
		return ""
	}
	if i := strings.IndexByte(id, '/'); i >= 0 {
		return id[:i]
	}

	first := strings.IndexByte(id, '-')
	if first < 0 {
		return id
	}
	if r.Format != FormatLaboratory && r.Format != FormatDiscussion {
		return id[:first]
	}
	second := strings.IndexByte(id[first+1:], '-')
	if second < 0 {
		return id
	}
	return id[:first+1+second]
}

func (r Record) String() string {
	return fmt.Sprintf("%s %s (%s, term %s)", r.CourseID, r.Format, r.Meetings, r.Term)
}

var (
	termPattern     = regexp.MustCompile(`^\d{4} \w* (\w) Term$`)
	semesterPattern = regexp.MustCompile(`^\d{4} (\w*) Semester$`)
)

// CleanTermCode reduces a spreadsheet term cell to a term code:
// "2023 Fall A Term" gives "A" and "2023 Fall Semester" gives "Fall".
// Any other shape reports false.
func CleanTermCode(raw string) (term.Code, bool) {
	raw = strings.TrimSpace(raw)
	if m := termPattern.FindStringSubmatch(raw); m != nil {
		return term.Code(m[1]), true
	}
	if m := semesterPattern.FindStringSubmatch(raw); m != nil {
		return term.Code(m[1]), true
	}
	return "", false
}

// Builder assembles a Record field by field, normalizing the term cell.
type Builder struct {
	rec     Record
	rawTerm string
	termOK  bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Term sets the term from a raw spreadsheet cell such as "2023 Fall A Term".
func (b *Builder) Term(raw string) *Builder {
	b.rawTerm = raw
	b.rec.Term, b.termOK = CleanTermCode(raw)
	return b
}

// CourseID sets the section id, e.g. "CS-1101-01".
func (b *Builder) CourseID(id string) *Builder {
	b.rec.CourseID = strings.TrimSpace(id)
	return b
}

// Format sets the instructional format (Lecture, Laboratory, Discussion).
func (b *Builder) Format(format string) *Builder {
	b.rec.Format = strings.TrimSpace(format)
	return b
}

// Meetings sets the encoded meeting pattern, e.g. "M-W-F | 10:00 AM - 10:50 AM".
func (b *Builder) Meetings(meetings string) *Builder {
	b.rec.Meetings = strings.TrimSpace(meetings)
	return b
}

// Location sets the room.
func (b *Builder) Location(location string) *Builder {
	b.rec.Location = strings.TrimSpace(location)
	return b
}

// Instructor sets the instructor name.
func (b *Builder) Instructor(instructor string) *Builder {
	b.rec.Instructor = strings.TrimSpace(instructor)
	return b
}

// Delivery sets the delivery mode, e.g. "In-Person".
func (b *Builder) Delivery(delivery string) *Builder {
	b.rec.Delivery = strings.TrimSpace(delivery)
	return b
}

// Build returns the finished record, or an error if the term cell did not
// clean to a known term or a required field is missing.
func (b *Builder) Build() (Record, error) {
	if !b.termOK {
		return Record{}, fmt.Errorf("course %s: %w: cannot read term %q", b.rec.CourseID, term.ErrInvalidTerm, b.rawTerm)
	}
	if err := b.rec.Validate(); err != nil {
		return Record{}, err
	}
	return b.rec, nil
}
