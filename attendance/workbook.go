package attendance

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	Checkmark  = "✅"
	DateFormat = "02/01/2006"
)

var (
	ErrUnknownGroup = errors.New("unknown group")
	ErrNoDateColumn = errors.New("no check-in column")
)

// Workbook is an attendance workbook with one worksheet per group. Row 1 holds the
// date headers and column A holds the student names.
type Workbook struct {
	file     *excelize.File
	date1904 bool
}

type Student struct {
	Name      string
	CheckedIn bool
	row       int
}

// Register is the attendance of a group for a single date. Column is the 1-based
// worksheet column for the date and is 0 if the worksheet has no such column.
type Register struct {
	Group    string
	Date     string
	Column   int
	Students []Student
}

// Table is a worksheet as a header row plus records, with the date headers normalised
// to dd/mm/yyyy.
type Table struct {
	Header  []string
	Records [][]string
}

type Result int

const (
	NotFound Result = iota
	CheckedIn
	AlreadyCheckedIn
)

func (r Result) String() string {
	switch r {
	case CheckedIn:
		return "checked in"
	case AlreadyCheckedIn:
		return "already checked in"
	default:
		return "not found"
	}
}

func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open workbook %v (%w)", path, err)
	}

	w := Workbook{file: f}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		w.date1904 = *props.Date1904
	}

	return &w, nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

func (w *Workbook) Groups() []string {
	return w.file.GetSheetList()
}

func (w *Workbook) Register(group string, date time.Time) (*Register, error) {
	rows, err := w.rows(group)
	if err != nil {
		return nil, err
	}

	today := date.Format(DateFormat)
	register := Register{
		Group:    group,
		Date:     today,
		Students: []Student{},
	}

	if len(rows) > 0 {
		for i, h := range w.header(group, rows[0]) {
			if i > 0 && h == today {
				register.Column = i + 1
				break
			}
		}
	}

	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}

		name := clean(row[0])
		if name == "" {
			continue
		}

		student := Student{
			Name: name,
			row:  i + 1,
		}

		if register.Column > 0 && len(row) >= register.Column {
			student.CheckedIn = row[register.Column-1] == Checkmark
		}

		register.Students = append(register.Students, student)
	}

	if register.Column == 0 {
		return &register, fmt.Errorf("%w for %v", ErrNoDateColumn, today)
	}

	return &register, nil
}

// CheckIn marks the student present for the date and saves the workbook. A student
// that is already checked in is left as is and nothing is written.
func (w *Workbook) CheckIn(group string, date time.Time, student string) (Result, error) {
	register, err := w.Register(group, date)
	if err != nil {
		return NotFound, err
	}

	name := clean(student)
	for _, s := range register.Students {
		if s.Name != name {
			continue
		}

		if s.CheckedIn {
			return AlreadyCheckedIn, nil
		}

		cell, err := excelize.CoordinatesToCellName(register.Column, s.row)
		if err != nil {
			return NotFound, err
		}

		if err := w.file.SetCellValue(group, cell, Checkmark); err != nil {
			return NotFound, fmt.Errorf("unable to update %v!%v (%w)", group, cell, err)
		}

		if err := w.file.Save(); err != nil {
			return NotFound, fmt.Errorf("unable to save workbook (%w)", err)
		}

		return CheckedIn, nil
	}

	return NotFound, nil
}

// Table returns the group worksheet, skipping rows without a student name. Records are
// padded to the width of the header row.
func (w *Workbook) Table(group string) (*Table, error) {
	rows, err := w.rows(group)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("empty worksheet '%v'", group)
	}

	table := Table{
		Header:  w.header(group, rows[0]),
		Records: [][]string{},
	}

	for _, row := range rows[1:] {
		if len(row) == 0 || clean(row[0]) == "" {
			continue
		}

		record := make([]string, len(table.Header))
		for i := range record {
			if i < len(row) {
				record[i] = clean(row[i])
			}
		}

		table.Records = append(table.Records, record)
	}

	return &table, nil
}

func (w *Workbook) rows(group string) ([][]string, error) {
	// exact match, excelize sheet lookups ignore case
	exists := false
	for _, sheet := range w.file.GetSheetList() {
		if sheet == group {
			exists = true
			break
		}
	}

	if !exists {
		return nil, fmt.Errorf("%w '%v'", ErrUnknownGroup, group)
	}

	rows, err := w.file.GetRows(group)
	if err != nil {
		return nil, fmt.Errorf("unable to read worksheet '%v' (%w)", group, err)
	}

	return rows, nil
}

// header converts date-typed header cells to dd/mm/yyyy from the underlying Excel serial,
// whatever their display format. Text headers are only trimmed.
func (w *Workbook) header(group string, row []string) []string {
	header := make([]string, len(row))

	for i, v := range row {
		header[i] = clean(v)
		if i == 0 {
			continue
		}

		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			continue
		}

		if t, ok := w.date(group, cell, v); ok {
			header[i] = t.Format(DateFormat)
		}
	}

	return header
}

// date returns the date for a numeric cell that is displayed as something other than
// its raw value i.e. a cell with a date number format.
func (w *Workbook) date(sheet, cell, displayed string) (time.Time, bool) {
	switch typ, err := w.file.GetCellType(sheet, cell); {
	case err != nil:
		return time.Time{}, false
	case typ == excelize.CellTypeSharedString, typ == excelize.CellTypeInlineString:
		return time.Time{}, false
	}

	raw, err := w.file.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil || raw == displayed {
		return time.Time{}, false
	}

	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil || serial <= 0 {
		return time.Time{}, false
	}

	t, err := excelize.ExcelDateToTime(serial, w.date1904)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

func clean(v string) string {
	return strings.TrimSpace(v)
}

func normalise(v string) string {
	return strings.ToLower(strings.ReplaceAll(v, " ", ""))
}
