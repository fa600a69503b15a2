// Package pipeline ties the term table, the schedule spreadsheet and the ICS
// generator together into one calendar file.
package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"coursecal/internal/course"
	"coursecal/internal/fsutil"
	"coursecal/internal/ics"
	appLog "coursecal/internal/log"
	"coursecal/internal/sheet"
	"coursecal/internal/term"
)

// Collector supplies a fresh term table, usually by asking the user.
type Collector interface {
	Collect() (term.Table, error)
}

// LoadTerms reads the term table at path. If the file is missing or fails
// its integrity checks it is discarded, re-collected through c and saved.
// With a nil c the failure is returned instead. Other read errors abort.
func LoadTerms(path string, c Collector) (term.Table, error) {
	t, err := term.LoadTable(path)
	if err == nil {
		appLog.Debug("term table loaded", "path", path)
		return t, nil
	}

	missing := errors.Is(err, fs.ErrNotExist)
	if !missing && !errors.Is(err, term.ErrTermTableIntegrity) {
		return term.Table{}, fmt.Errorf("pipeline: load term table: %w", err)
	}
	if c == nil {
		return term.Table{}, fmt.Errorf("pipeline: term table unusable and no prompt available: %w", err)
	}

	if missing {
		appLog.Info("term table not found; collecting term dates", "path", path)
	} else {
		appLog.Warn("term table failed integrity check; collecting term dates", "path", path, "err", err)
		if rerr := os.Remove(path); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
			return term.Table{}, fmt.Errorf("pipeline: discard term table: %w", rerr)
		}
	}

	t, err = c.Collect()
	if err != nil {
		return term.Table{}, fmt.Errorf("pipeline: collect term dates: %w", err)
	}
	if err := term.SaveTable(path, t); err != nil {
		return term.Table{}, fmt.Errorf("pipeline: save term table: %w", err)
	}
	appLog.Info("term table saved", "path", path)
	return t, nil
}

// Build renders every record against table and wraps the events in a
// calendar document. Any failing record aborts the whole build.
func Build(table term.Table, recs []course.Record, cal ics.Calendar, opts ...ics.Option) (string, error) {
	gen := ics.NewGenerator(&table, opts...)
	events, err := gen.GenerateAll(recs)
	if err != nil {
		return "", fmt.Errorf("pipeline: %w", err)
	}
	appLog.Debug("events generated", "count", len(events))
	return cal.Assemble(events), nil
}

// WriteCalendar replaces the file at path with doc. If an existing file
// cannot be removed nothing is written.
func WriteCalendar(path, doc string) error {
	if err := fsutil.ReplaceFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("pipeline: write calendar: %w", err)
	}
	appLog.Info("calendar written", "path", path, "bytes", len(doc))
	return nil
}

// Options locates the inputs and output of a Run.
type Options struct {
	TermDates string
	Schedule  string
	Output    string // empty skips writing
	ProdID    string

	// Collector is asked for term dates when the table is unusable. Nil
	// makes a missing or broken table an error.
	Collector Collector

	Generator []ics.Option
}

// Result is what a Run produced.
type Result struct {
	Table    term.Table
	Records  []course.Record
	Document string
}

// Run loads the term table and schedule, builds the calendar and writes it.
func Run(opts Options) (Result, error) {
	table, err := LoadTerms(opts.TermDates, opts.Collector)
	if err != nil {
		return Result{}, err
	}
	recs, err := sheet.Read(opts.Schedule)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: %w", err)
	}
	doc, err := Build(table, recs, ics.Calendar{ProdID: opts.ProdID}, opts.Generator...)
	if err != nil {
		return Result{}, err
	}
	if opts.Output != "" {
		if err := WriteCalendar(opts.Output, doc); err != nil {
			return Result{}, err
		}
	}
	return Result{Table: table, Records: recs, Document: doc}, nil
}
