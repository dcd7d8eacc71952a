package commands

import (
	"reflect"
	"strings"
	"testing"

	"google.golang.org/api/sheets/v4"

	"github.com/csiga-ovi/checkin-sheets/attendance"
)

var csiga = attendance.Table{
	Header: []string{"Name", "04/06/2024", "05/06/2024"},
	Records: [][]string{
		{"Anna", "✅", ""},
		{"Bela", "", "✅"},
	},
}

func TestTableToTSV(t *testing.T) {
	expected := `Name	04/06/2024	05/06/2024
Anna	✅	
Bela		✅
`

	var f strings.Builder

	if err := tableToTSV(&f, &csiga); err != nil {
		t.Fatalf("Unexpected error returned from tableToTSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %s\n   got:      %s\n", expected, f.String())
	}
}

func TestTableToTSVWithoutHeader(t *testing.T) {
	var f strings.Builder

	if err := tableToTSV(&f, &attendance.Table{}); err == nil {
		t.Errorf("Expected error return for missing header, got %v", err)
	}
}

func TestTableToSheet(t *testing.T) {
	expected := struct {
		header sheets.ValueRange
		data   sheets.ValueRange
	}{
		header: sheets.ValueRange{
			Range:  "Csiga!B2:ZZ2",
			Values: [][]any{{"Name", "04/06/2024", "05/06/2024"}},
		},
		data: sheets.ValueRange{
			Range: "Csiga!B3:ZZ",
			Values: [][]any{
				{"Anna", "✅", ""},
				{"Bela", "", "✅"},
			},
		},
	}

	header, data, err := tableToSheet(&csiga, "Csiga!B2:ZZ")
	if err != nil {
		t.Fatalf("Unexpected error returned from tableToSheet (%v)", err)
	}

	if !reflect.DeepEqual(*header, expected.header) {
		t.Errorf("Incorrect header\n   expected: %+v\n   got:      %+v\n", expected.header, *header)
	}

	if !reflect.DeepEqual(*data, expected.data) {
		t.Errorf("Incorrect data\n   expected: %+v\n   got:      %+v\n", expected.data, *data)
	}
}

func TestTableToSheetWithQuotedWorksheet(t *testing.T) {
	header, data, err := tableToSheet(&csiga, "'Katica halado'!A1:ZZ")
	if err != nil {
		t.Fatalf("Unexpected error returned from tableToSheet (%v)", err)
	}

	if header.Range != "'Katica halado'!A1:ZZ1" {
		t.Errorf("Incorrect header range - expected:%v, got:%v", "'Katica halado'!A1:ZZ1", header.Range)
	}

	if data.Range != "'Katica halado'!A2:ZZ" {
		t.Errorf("Incorrect data range - expected:%v, got:%v", "'Katica halado'!A2:ZZ", data.Range)
	}
}

func TestTableToSheetWithInvalidRange(t *testing.T) {
	if _, _, err := tableToSheet(&csiga, "Csiga"); err == nil {
		t.Errorf("Expected error return for invalid range, got %v", err)
	}
}
