package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"google.golang.org/api/sheets/v4"

	"github.com/csiga-ovi/checkin-sheets/attendance"
)

func tableToTSV(f io.Writer, table *attendance.Table) error {
	if len(table.Header) == 0 {
		return fmt.Errorf("missing/invalid header row")
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	w.Write(table.Header)
	for _, record := range table.Records {
		w.Write(record)
	}

	w.Flush()

	return w.Error()
}

// tableToSheet returns the header row and data rows of the table as value ranges
// anchored at the top left corner of area.
func tableToSheet(table *attendance.Table, area string) (*sheets.ValueRange, *sheets.ValueRange, error) {
	match := regexp.MustCompile(`(.+?)!([a-zA-Z]+)([0-9]+):([a-zA-Z]+)([0-9]+)?`).FindStringSubmatch(area)
	if len(match) < 5 {
		return nil, nil, fmt.Errorf("invalid spreadsheet range '%s'", area)
	}

	name := match[1]
	left := match[2]
	top, _ := strconv.Atoi(match[3])
	right := match[4]

	if len(table.Header) == 0 {
		return nil, nil, fmt.Errorf("missing/invalid header row")
	}

	// header
	h := make([]any, len(table.Header))
	for i, v := range table.Header {
		h[i] = v
	}

	header := sheets.ValueRange{
		Range:  fmt.Sprintf("%s!%s%v:%s%v", name, left, top, right, top),
		Values: [][]any{h},
	}

	// data
	rows := make([][]any, 0)
	for _, record := range table.Records {
		row := make([]any, len(record))
		for i, v := range record {
			row[i] = v
		}

		rows = append(rows, row)
	}

	data := sheets.ValueRange{
		Range:  fmt.Sprintf("%s!%s%v:%s", name, left, top+1, right),
		Values: rows,
	}

	return &header, &data, nil
}
