package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/csiga-ovi/checkin-sheets/attendance"
)

var ExportCmd = Export{
	workdir:     DEFAULT_WORKDIR,
	credentials: DEFAULT_CREDENTIALS,
	file:        DEFAULT_FILE,
	group:       "",
	tsv:         "",
	url:         "",
	area:        "",
	debug:       false,
}

type Export struct {
	workdir     string
	credentials string
	file        string
	group       string
	tsv         string
	url         string
	area        string
	debug       bool
}

func (cmd *Export) Name() string {
	return "export"
}

func (cmd *Export) Description() string {
	return "Exports the attendance register for a group to a TSV file and/or a Google Sheets worksheet"
}

func (cmd *Export) Usage() string {
	return "--group <group> [--tsv <file>] [--url <url> --range <range>]"
}

func (cmd *Export) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] export [options] --group <group> [--tsv <file>] [--url <URL> --range <range>]\n", APP)
	fmt.Println()
	fmt.Println("  Exports the attendance register for a group from the local workbook to a TSV file and/or a")
	fmt.Println("  Google Sheets worksheet")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    checkin-sheets export --group "Csiga" --tsv "csiga.tsv"`)
	fmt.Println()
	fmt.Println(`    checkin-sheets --debug export --credentials "credentials.json" \`)
	fmt.Println(`                                  --group "Csiga" \`)
	fmt.Println(`                                  --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                                  --range "Csiga!A1:ZZ"`)
	fmt.Println()
}

func (cmd *Export) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("export", flag.ExitOnError)

	flagset.StringVar(&cmd.workdir, "workdir", cmd.workdir, "Directory for working files (tokens, etc)")
	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the 'credentials.json' file. Ignored if GOOGLE_CREDENTIALS is set")
	flagset.StringVar(&cmd.file, "file", cmd.file, "Local path for the attendance workbook")
	flagset.StringVar(&cmd.group, "group", cmd.group, "Group (worksheet) to export")
	flagset.StringVar(&cmd.tsv, "tsv", cmd.tsv, "TSV file")
	flagset.StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL")
	flagset.StringVar(&cmd.area, "range", cmd.area, "Spreadsheet range e.g. 'Csiga!A1:ZZ'. Defaults to the group worksheet")

	return flagset
}

func (cmd *Export) Execute(args ...any) error {
	ctx, options := parse(args)

	cmd.debug = options.Debug

	// ... check parameters
	if err := cmd.validate(); err != nil {
		return err
	}

	table, err := attendance.NewStore(cmd.file).Table(cmd.group)
	if err != nil {
		return err
	}

	if cmd.debug {
		debugf("%v  %v columns  %v students", cmd.group, len(table.Header), len(table.Records))
	}

	if cmd.tsv != "" {
		if err := cmd.toTSV(table); err != nil {
			return err
		}

		infof("Exported %v to TSV file %v", cmd.group, cmd.tsv)
	}

	if cmd.url != "" {
		if err := cmd.toSheet(ctx, table); err != nil {
			return err
		}

		infof("Exported %v to Google Sheets %v", cmd.group, cmd.area)
	}

	return nil
}

func (cmd *Export) validate() error {
	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	if strings.TrimSpace(cmd.group) == "" {
		return fmt.Errorf("--group is a required option")
	}

	if strings.TrimSpace(cmd.tsv) == "" && strings.TrimSpace(cmd.url) == "" {
		return fmt.Errorf("at least one of --tsv or --url is required")
	}

	if cmd.url != "" {
		if _, err := spreadsheetID(cmd.url); err != nil {
			return err
		}

		if strings.TrimSpace(cmd.area) == "" {
			cmd.area = fmt.Sprintf("'%s'!A1:ZZ", strings.ReplaceAll(cmd.group, "'", "''"))
		}

		if match := regexp.MustCompile(`(.+?)!([a-zA-Z]+)([0-9]+):([a-zA-Z]+)([0-9]+)?`).FindStringSubmatch(cmd.area); len(match) < 5 {
			return fmt.Errorf("invalid range '%s' - expected something like 'Csiga!A1:ZZ'", cmd.area)
		}
	}

	return nil
}

func (cmd *Export) toTSV(table *attendance.Table) error {
	dir := filepath.Dir(cmd.tsv)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := tableToTSV(tmp, table); err != nil {
		return fmt.Errorf("error creating TSV file (%w)", err)
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), cmd.tsv)
}

func (cmd *Export) toSheet(ctx context.Context, table *attendance.Table) error {
	id, err := spreadsheetID(cmd.url)
	if err != nil {
		return err
	}

	if cmd.debug {
		debugf("Spreadsheet - ID:%s  range:%s", id, cmd.area)
	}

	opt, err := authorize(ctx, cmd.credentials, SHEETS, cmd.workdir)
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%w)", err)
	}

	google, err := sheets.NewService(ctx, opt)
	if err != nil {
		return fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	spreadsheet, err := getSpreadsheet(google, id, ctx)
	if err != nil {
		return err
	}

	header, data, err := tableToSheet(table, cmd.area)
	if err != nil {
		return err
	}

	if err := cmd.clear(ctx, google, spreadsheet.SpreadsheetId); err != nil {
		return err
	}

	rq := sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             []*sheets.ValueRange{header, data},
	}

	if _, err := google.Spreadsheets.Values.BatchUpdate(spreadsheet.SpreadsheetId, &rq).Context(ctx).Do(); err != nil {
		return err
	}

	return nil
}

// clear empties the export range so that rows for students no longer in the group
// do not linger below the new data.
func (cmd *Export) clear(ctx context.Context, google *sheets.Service, spreadsheetID string) error {
	rq := sheets.BatchClearValuesRequest{
		Ranges: []string{cmd.area},
	}

	if _, err := google.Spreadsheets.Values.BatchClear(spreadsheetID, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("error clearing range %v (%w)", cmd.area, err)
	}

	return nil
}
