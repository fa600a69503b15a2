// Package sheet reads a course schedule spreadsheet into course records.
package sheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"coursecal/internal/course"
	appLog "coursecal/internal/log"
)

// Columns is the number of schedule columns, in order: term, course id,
// format, meetings, location, instructor, delivery.
const Columns = 7

// Header is the first row written by WriteTemplate.
var Header = []string{"Term", "Course", "Format", "Meetings", "Location", "Instructor", "Delivery"}

// Read opens the xlsx workbook at path and builds one record per row of its
// first sheet. The header row and blank rows are skipped. The first row that
// fails to build aborts the read with its 1-based row number.
func Read(path string) ([]course.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("sheet: open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			appLog.Warn("sheet: close workbook failed", "path", path, "err", cerr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("sheet: %s has no worksheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("sheet: read %s: %w", sheets[0], err)
	}

	recs, err := Records(rows)
	if err != nil {
		return nil, err
	}
	appLog.Info("schedule loaded", "path", path, "sheet", sheets[0], "courses", len(recs))
	return recs, nil
}

// Records builds course records from raw rows, the first being the header.
func Records(rows [][]string) ([]course.Record, error) {
	if len(rows) == 0 {
		return nil, errors.New("sheet: no header row")
	}
	var recs []course.Record
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rec, err := build(row)
		if err != nil {
			return nil, fmt.Errorf("sheet: row %d: %w", i+2, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func build(row []string) (course.Record, error) {
	cells := make([]string, Columns)
	copy(cells, row)
	return course.NewBuilder().
		Term(cells[0]).
		CourseID(cells[1]).
		Format(cells[2]).
		Meetings(cells[3]).
		Location(cells[4]).
		Instructor(cells[5]).
		Delivery(cells[6]).
		Build()
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteTemplate saves a workbook holding the header row and rows beneath it.
// It is used to produce an empty schedule to fill in.
func WriteTemplate(path string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if err := f.SetSheetRow(sheetName, "A1", &Header); err != nil {
		return fmt.Errorf("sheet: write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("sheet: row %d: %w", i+2, err)
		}
		r := row
		if err := f.SetSheetRow(sheetName, cell, &r); err != nil {
			return fmt.Errorf("sheet: write row %d: %w", i+2, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("sheet: save %s: %w", path, err)
	}
	return nil
}
