package commands

import (
	"context"
	"flag"
	"fmt"
	"log"
	"regexp"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"

	"github.com/csiga-ovi/checkin-sheets/gdrive"
)

const APP = "checkin-sheets"

type Options struct {
	Debug bool
}

// command holds the options shared by the commands that work with the Google Drive
// copy of the attendance workbook.
type command struct {
	workdir     string
	credentials string
	workbook    string
	file        string
	debug       bool
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.workdir, "workdir", c.workdir, "Directory for working files (tokens, etc)")
	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Path for the 'credentials.json' file. Ignored if GOOGLE_CREDENTIALS is set")
	flagset.StringVar(&c.workbook, "workbook", c.workbook, "Name of the attendance workbook in Google Drive")
	flagset.StringVar(&c.file, "file", c.file, "Local path for the attendance workbook")

	return flagset
}

func (c *command) validate() error {
	if strings.TrimSpace(c.workbook) == "" {
		return fmt.Errorf("--workbook is a required option")
	}

	if strings.TrimSpace(c.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	return nil
}

func (c *command) remote(ctx context.Context) (*gdrive.Drive, error) {
	opt, err := authorize(ctx, c.credentials, DRIVE, c.workdir)
	if err != nil {
		return nil, fmt.Errorf("authentication/authorization error (%w)", err)
	}

	service, err := drive.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Google Drive client (%w)", err)
	}

	remote, err := gdrive.Find(ctx, service, c.workbook)
	if err != nil {
		return nil, err
	}

	if c.debug {
		debugf("Google Drive - file:%s  ID:%s", remote.Name(), remote.FileID())
	}

	return remote, nil
}

// parse extracts the context and global options from the Execute arguments.
func parse(args []any) (context.Context, *Options) {
	ctx := context.Background()
	options := &Options{}

	for _, arg := range args {
		switch v := arg.(type) {
		case context.Context:
			ctx = v
		case *Options:
			options = v
		}
	}

	return ctx, options
}

func getSpreadsheet(google *sheets.Service, id string, ctx context.Context) (*sheets.Spreadsheet, error) {
	spreadsheet, err := google.Spreadsheets.Get(id).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet (%w)", err)
	}

	return spreadsheet, nil
}

func spreadsheetID(url string) (string, error) {
	match := regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`).FindStringSubmatch(strings.TrimSpace(url))
	if len(match) < 2 {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return match[1], nil
}

func helpOptions(flagset *flag.FlagSet) {
	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}
