package term

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"coursecal/internal/fsutil"
)

// DefaultTableFile is where the term dates are kept between runs.
const DefaultTableFile = "term_dates.txt"

// LoadTable reads a term table written by SaveTable: eight YYYYMMDD values,
// one per line. A missing file returns an error wrapping fs.ErrNotExist; a
// file with the wrong number of lines, a non-numeric line or dates that break
// the table invariants returns ErrTermTableIntegrity.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("term: read %s: %w", path, err)
	}
	return ParseTable(data)
}

// ParseTable decodes the newline-separated table format.
func ParseTable(data []byte) (Table, error) {
	var t Table
	n := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if n >= Slots {
			return Table{}, fmt.Errorf("%w: more than %d dates", ErrTermTableIntegrity, Slots)
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			return Table{}, fmt.Errorf("%w: line %d: %q is not a date", ErrTermTableIntegrity, n+1, line)
		}
		t[n] = Date(v)
		n++
	}
	if err := sc.Err(); err != nil {
		return Table{}, fmt.Errorf("term: scan table: %w", err)
	}
	if n < Slots {
		return Table{}, fmt.Errorf("%w: found %d of %d dates", ErrTermTableIntegrity, n, Slots)
	}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// Bytes encodes t as eight newline-separated values without a trailing newline.
func (t Table) Bytes() []byte {
	lines := make([]string, Slots)
	for i, d := range t {
		lines[i] = strconv.Itoa(int(d))
	}
	return []byte(strings.Join(lines, "\n"))
}

// SaveTable replaces the file at path with t.
func SaveTable(path string, t Table) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return fsutil.ReplaceFile(path, t.Bytes(), 0o644)
}
