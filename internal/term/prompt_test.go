package term

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestPrompterCollect(t *testing.T) {
	answers := strings.Join([]string{
		"08/24/2023", "10/20/2023",
		"10/23/2023", "12/15/2023",
		"01/11/2024", "03/01/2024",
		"03/11/2024", "05/02/2024",
	}, "\n")
	var out bytes.Buffer

	got, err := NewPrompter(strings.NewReader(answers), &out).Collect()
	if err != nil {
		t.Fatalf("Collect() returned an error: %v", err)
	}
	if got != fall2023 {
		t.Errorf("Collect() = %v, want %v", got, fall2023)
	}
	if !strings.Contains(out.String(), "Enter the end date of D term (MM/DD/YYYY):") {
		t.Errorf("missing prompt for D term end date in %q", out.String())
	}
}

func TestPrompterRetriesInvalidInput(t *testing.T) {
	answers := strings.Join([]string{
		"8/24/2023", "02/30/2023", "08/24/2023",
		"08/01/2023", "10/20/2023",
		"10/23/2023", "12/15/2023",
		"01/11/2024", "03/01/2024",
		"03/11/2024", "05/02/2024",
	}, " ")
	var out bytes.Buffer

	got, err := NewPrompter(strings.NewReader(answers), &out).Collect()
	if err != nil {
		t.Fatalf("Collect() returned an error: %v", err)
	}
	if got != fall2023 {
		t.Errorf("Collect() = %v, want %v", got, fall2023)
	}
	if n := strings.Count(out.String(), "Invalid date entered."); n != 2 {
		t.Errorf("Expected 2 invalid-date messages, got %d", n)
	}
	if !strings.Contains(out.String(), "must not be before 20230824") {
		t.Errorf("Expected an end-before-start message in %q", out.String())
	}
}

func TestPrompterEOF(t *testing.T) {
	_, err := NewPrompter(strings.NewReader("08/24/2023"), io.Discard).Collect()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Collect() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestPrompterRetriesOverlappingStart(t *testing.T) {
	answers := strings.Join([]string{
		"08/24/2023", "10/20/2023",
		"10/01/2023", "10/20/2023", "10/23/2023", "12/15/2023",
		"01/11/2024", "03/01/2024",
		"03/11/2024", "05/02/2024",
	}, "\n")
	var out bytes.Buffer

	got, err := NewPrompter(strings.NewReader(answers), &out).Collect()
	if err != nil {
		t.Fatalf("Collect() returned an error: %v", err)
	}
	if got != fall2023 {
		t.Errorf("Collect() = %v, want %v", got, fall2023)
	}
	msg := "The start date must be after 20231020, the end of A term."
	if n := strings.Count(out.String(), msg); n != 2 {
		t.Errorf("Expected 2 overlapping-start messages, got %d in %q", n, out.String())
	}
	if n := strings.Count(out.String(), "Enter the start date of B term"); n != 3 {
		t.Errorf("Expected the B start question 3 times, got %d", n)
	}
}
