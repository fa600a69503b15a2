package sheet

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"coursecal/internal/course"
	"coursecal/internal/term"
)

func TestReadWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	rows := [][]string{
		{"2023 Fall A Term", "CS-1101-01", "Lecture", "M-W-F | 10:00 AM - 10:50 AM", "Fuller Labs 320", "Ada Lovelace", "In-Person"},
		{"", "", "", "", "", "", ""},
		{"2023 Fall Semester", "MA-1021-L02", "Laboratory", "T-R | 2:00 PM - 3:50 PM", "Stratton 202", "Emmy Noether"},
	}
	if err := WriteTemplate(path, rows); err != nil {
		t.Fatalf("WriteTemplate returned an error: %v", err)
	}

	recs, err := Read(path)
	if err != nil {
		t.Fatalf("Read returned an error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("Read returned %d records, want 2", len(recs))
	}

	want0 := course.Record{
		Term:       "A",
		CourseID:   "CS-1101-01",
		Format:     course.FormatLecture,
		Meetings:   "M-W-F | 10:00 AM - 10:50 AM",
		Location:   "Fuller Labs 320",
		Instructor: "Ada Lovelace",
		Delivery:   "In-Person",
	}
	if recs[0] != want0 {
		t.Errorf("record 0 = %+v, want %+v", recs[0], want0)
	}
	if recs[1].Term != term.Fall || recs[1].Delivery != "" {
		t.Errorf("record 1 = %+v", recs[1])
	}
}

func TestRecordsRowNumber(t *testing.T) {
	rows := [][]string{
		Header,
		{"2023 Fall A Term", "CS-1101-01", "Lecture", "M-W-F | 10:00 AM - 10:50 AM"},
		{"2023 Summer Semester", "CS-1102-01", "Lecture", "M | 9:00 AM - 9:50 AM"},
	}
	_, err := Records(rows)
	if !errors.Is(err, term.ErrInvalidTerm) {
		t.Fatalf("Records error = %v, want ErrInvalidTerm", err)
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("error %q does not name row 3", err)
	}
}

func TestRecordsHeaderOnly(t *testing.T) {
	recs, err := Records([][]string{Header})
	if err != nil {
		t.Fatalf("Records returned an error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Records returned %d records, want 0", len(recs))
	}
	if _, err := Records(nil); err == nil {
		t.Error("Records(nil) should fail without a header row")
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Error("Read should fail for a missing workbook")
	}
}
