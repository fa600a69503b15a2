package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Prompter collects the term table interactively, one MM/DD/YYYY date at a time.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter reads answers from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return &Prompter{in: sc, out: out}
}

// Collect asks for the start and end date of terms A through D. A start
// that does not fall after the previous term's end is asked again, as is an
// end before its start, so the returned table always validates.
func (p *Prompter) Collect() (Table, error) {
	var t Table
	fmt.Fprintln(p.out, "Please respond to the following prompts to enter the term dates: ")
	for i := 0; i < Slots; i += 2 {
		name := rune('A' + i/2)

		var startBound Date
		startMsg := ""
		if i > 0 {
			prevEnd := t[i-1]
			b, err := prevEnd.AddDays(1)
			if err != nil {
				return Table{}, err
			}
			startBound = b
			startMsg = fmt.Sprintf("The start date must be after %s, the end of %c term. Please try again.", prevEnd, name-1)
		}
		start, err := p.ask("start", name, startBound, startMsg)
		if err != nil {
			return Table{}, err
		}

		endMsg := fmt.Sprintf("The end date must not be before %s. Please try again.", start)
		end, err := p.ask("end", name, start, endMsg)
		if err != nil {
			return Table{}, err
		}
		t[i], t[i+1] = start, end
	}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// ask repeats the question until it gets a real date not before notBefore,
// printing tooEarly whenever an answer falls short of it.
func (p *Prompter) ask(which string, name rune, notBefore Date, tooEarly string) (Date, error) {
	for {
		fmt.Fprintf(p.out, "Enter the %s date of %c term (MM/DD/YYYY): \n", which, name)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return 0, fmt.Errorf("term: read answer: %w", err)
			}
			return 0, fmt.Errorf("term: read answer: %w", io.ErrUnexpectedEOF)
		}
		d, err := parseUSDate(p.in.Text())
		if err != nil {
			fmt.Fprintln(p.out, "Invalid date entered. Please try again.")
			continue
		}
		if d < notBefore {
			fmt.Fprintln(p.out, tooEarly)
			continue
		}
		return d, nil
	}
}

func parseUSDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) != len("01/02/2006") {
		return 0, errors.New("term: expected MM/DD/YYYY")
	}
	t, err := time.Parse("01/02/2006", s)
	if err != nil {
		return 0, err
	}
	return DateOf(t), nil
}
