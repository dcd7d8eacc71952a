package commands

import (
	"flag"
	"fmt"
	"os"
)

var PutCmd = Put{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
		workbook:    DEFAULT_WORKBOOK,
		file:        DEFAULT_FILE,
		debug:       false,
	},
}

type Put struct {
	command
}

func (cmd *Put) Name() string {
	return "put"
}

func (cmd *Put) Description() string {
	return "Uploads a local attendance workbook to Google Drive"
}

func (cmd *Put) Usage() string {
	return "--workbook <name> --file <file>"
}

func (cmd *Put) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] put [options] --workbook <name> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Uploads a local attendance workbook to Google Drive, replacing the content of the")
	fmt.Println("  existing Google Drive file")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    checkin-sheets --debug put --credentials "credentials.json" \`)
	fmt.Println(`                               --workbook "student_roster.xlsx" \`)
	fmt.Println(`                               --file "roster.xlsx"`)
	fmt.Println()
}

func (cmd *Put) FlagSet() *flag.FlagSet {
	return cmd.flagset("put")
}

func (cmd *Put) Execute(args ...any) error {
	ctx, options := parse(args)

	cmd.debug = options.Debug

	// ... check parameters
	if err := cmd.validate(); err != nil {
		return err
	}

	if _, err := os.Stat(cmd.file); err != nil {
		return fmt.Errorf("invalid workbook file (%w)", err)
	}

	remote, err := cmd.remote(ctx)
	if err != nil {
		return err
	}

	if err := remote.Upload(ctx, cmd.file); err != nil {
		return err
	}

	infof("Uploaded %v to Google Drive %v", cmd.file, remote.Name())

	return nil
}
