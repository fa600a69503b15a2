package term

import (
	"errors"
	"testing"
	"time"
)

// fall2023 is a realistic table: A/B in the fall, C/D in the spring.
var fall2023 = Table{
	20230824, 20231020,
	20231023, 20231215,
	20240111, 20240301,
	20240311, 20240502,
}

func TestResolveBoundsLetters(t *testing.T) {
	for _, c := range "ABCD" {
		start, end, err := ResolveBounds(Code(string(c)))
		if err != nil {
			t.Fatalf("ResolveBounds(%c) returned an error: %v", c, err)
		}
		want := int(c-'A') * 2
		if start != want || end != want+1 {
			t.Errorf("ResolveBounds(%c) = (%d, %d), want (%d, %d)", c, start, end, want, want+1)
		}
	}
}

func TestResolveBoundsSemesters(t *testing.T) {
	tests := []struct {
		code       Code
		start, end int
	}{
		{Fall, 0, 3},
		{Spring, 4, 7},
	}
	for _, tt := range tests {
		start, end, err := ResolveBounds(tt.code)
		if err != nil {
			t.Fatalf("ResolveBounds(%s) returned an error: %v", tt.code, err)
		}
		if start != tt.start || end != tt.end {
			t.Errorf("ResolveBounds(%s) = (%d, %d), want (%d, %d)", tt.code, start, end, tt.start, tt.end)
		}
	}
}

func TestResolveBoundsInvalid(t *testing.T) {
	for _, code := range []Code{"", "E", "a", "Summer", "AB", "fall"} {
		if _, _, err := ResolveBounds(code); !errors.Is(err, ErrInvalidTerm) {
			t.Errorf("ResolveBounds(%q) error = %v, want ErrInvalidTerm", code, err)
		}
	}
}

func TestAlignFirstOccurrence(t *testing.T) {
	tests := []struct {
		name      string
		table     Table
		start     int
		days      []Day
		wantDate  Date
		wantShift int
	}{
		{
			// 2023-08-24 is a Thursday.
			name:      "thursday start, MWF class",
			table:     fall2023,
			start:     0,
			days:      []Day{Monday, Wednesday, Friday},
			wantDate:  20230825,
			wantShift: 1,
		},
		{
			name:      "start already on a meeting day",
			table:     fall2023,
			start:     0,
			days:      []Day{Tuesday, Thursday},
			wantDate:  20230824,
			wantShift: 0,
		},
		{
			name:      "crosses a weekend",
			table:     fall2023,
			start:     0,
			days:      []Day{Monday},
			wantDate:  20230828,
			wantShift: 4,
		},
		{
			// 2023-10-31 is a Tuesday.
			name:      "crosses a month boundary",
			table:     Table{20231031, 20231215},
			start:     0,
			days:      []Day{Wednesday},
			wantDate:  20231101,
			wantShift: 1,
		},
		{
			// 2024-12-31 is a Tuesday.
			name:      "crosses a year boundary",
			table:     Table{20241231, 20250301},
			start:     0,
			days:      []Day{Friday},
			wantDate:  20250103,
			wantShift: 3,
		},
		{
			// 2024-02-28 is a Wednesday, 2024 is a leap year.
			name:      "leap day",
			table:     Table{20240228, 20240501},
			start:     0,
			days:      []Day{Thursday},
			wantDate:  20240229,
			wantShift: 1,
		},
		{
			name:      "spring semester start index",
			table:     fall2023,
			start:     4,
			days:      []Day{Thursday},
			wantDate:  20240111,
			wantShift: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, shift, err := AlignFirstOccurrence(tt.table, tt.start, tt.days)
			if err != nil {
				t.Fatalf("AlignFirstOccurrence() returned an error: %v", err)
			}
			if got != tt.wantDate || shift != tt.wantShift {
				t.Errorf("AlignFirstOccurrence() = (%s, %d), want (%s, %d)", got, shift, tt.wantDate, tt.wantShift)
			}
			if shift < 0 {
				t.Errorf("shift must never be negative, got %d", shift)
			}
			w, _ := got.Weekday()
			if w == time.Saturday || w == time.Sunday {
				t.Errorf("aligned date %s falls on a weekend", got)
			}
		})
	}
}

func TestAlignFirstOccurrenceNeverWeekend(t *testing.T) {
	all := []Day{Monday, Tuesday, Wednesday, Thursday, Friday}
	start := Date(20230101)
	for i := 0; i < 60; i++ {
		d, _ := start.AddDays(i)
		for _, day := range all {
			got, shift, err := AlignFirstOccurrence(Table{d, d}, 0, []Day{day})
			if err != nil {
				t.Fatalf("AlignFirstOccurrence(%s, %s) returned an error: %v", d, day, err)
			}
			w, _ := got.Weekday()
			if got, _ := DayOf(w); got != day {
				t.Errorf("AlignFirstOccurrence(%s, %s) landed on %s", d, day, w)
			}
			if shift < 0 || shift > 6 {
				t.Errorf("AlignFirstOccurrence(%s, %s) shift = %d", d, day, shift)
			}
		}
	}
}

func TestAlignFirstOccurrenceUnsupported(t *testing.T) {
	if _, _, err := AlignFirstOccurrence(fall2023, 0, []Day{"SA"}); !errors.Is(err, ErrUnsupportedDay) {
		t.Errorf("weekend token error = %v, want ErrUnsupportedDay", err)
	}
	if _, _, err := AlignFirstOccurrence(fall2023, 0, nil); !errors.Is(err, ErrUnsupportedDay) {
		t.Errorf("empty day set error = %v, want ErrUnsupportedDay", err)
	}
	if _, _, err := AlignFirstOccurrence(fall2023, 8, []Day{Monday}); err == nil {
		t.Error("expected an error for an out-of-range index")
	}
}

func TestDateAddDaysAndValidity(t *testing.T) {
	tests := []struct {
		in   Date
		n    int
		want Date
	}{
		{20231020, 1, 20231021},
		{20230131, 1, 20230201},
		{20231231, 1, 20240101},
		{20240228, 1, 20240229},
		{20230228, 1, 20230301},
		{20240301, -1, 20240229},
	}
	for _, tt := range tests {
		got, err := tt.in.AddDays(tt.n)
		if err != nil {
			t.Fatalf("%s.AddDays(%d) returned an error: %v", tt.in, tt.n, err)
		}
		if got != tt.want {
			t.Errorf("%s.AddDays(%d) = %s, want %s", tt.in, tt.n, got, tt.want)
		}
	}

	for _, bad := range []Date{0, 20230230, 20231301, 20230000, 2023082} {
		if bad.Valid() {
			t.Errorf("%d should not be a valid date", int(bad))
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 20230824 ")
	if err != nil || d != 20230824 {
		t.Errorf("ParseDate() = (%s, %v)", d, err)
	}
	if _, err := ParseDate("2023-08-24"); err == nil {
		t.Error("expected an error for a dashed date")
	}
	if _, err := ParseDate("20230231"); err == nil {
		t.Error("expected an error for February 31st")
	}
}

func TestTableValidate(t *testing.T) {
	if err := fall2023.Validate(); err != nil {
		t.Fatalf("Validate() returned an error: %v", err)
	}

	reversed := fall2023
	reversed[0], reversed[1] = reversed[1], reversed[0]
	if err := reversed.Validate(); !errors.Is(err, ErrTermTableIntegrity) {
		t.Errorf("reversed term error = %v, want ErrTermTableIntegrity", err)
	}

	overlapping := fall2023
	overlapping[2] = overlapping[1]
	if err := overlapping.Validate(); !errors.Is(err, ErrTermTableIntegrity) {
		t.Errorf("overlapping terms error = %v, want ErrTermTableIntegrity", err)
	}

	var zero Table
	if err := zero.Validate(); !errors.Is(err, ErrTermTableIntegrity) {
		t.Errorf("zero table error = %v, want ErrTermTableIntegrity", err)
	}
}

func TestAlignFirstOccurrenceWeekendStart(t *testing.T) {
	// 2023-09-02 is a Saturday.
	table := Table{20230902, 20231020}
	got, shift, err := AlignFirstOccurrence(table, 0, []Day{Monday})
	if err != nil {
		t.Fatalf("AlignFirstOccurrence returned an error for a Saturday start: %v", err)
	}
	if got != 20230904 || shift != 2 {
		t.Errorf("AlignFirstOccurrence = (%s, %d), want (20230904, 2)", got, shift)
	}
}
