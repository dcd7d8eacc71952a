package commands

import (
	"flag"
	"fmt"
)

var GetCmd = Get{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
		workbook:    DEFAULT_WORKBOOK,
		file:        DEFAULT_FILE,
		debug:       false,
	},
}

type Get struct {
	command
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Downloads the attendance workbook from Google Drive to a local file"
}

func (cmd *Get) Usage() string {
	return "--workbook <name> --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options] --workbook <name> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads the attendance workbook from Google Drive, replacing the local copy")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    checkin-sheets --debug get --credentials "credentials.json" \`)
	fmt.Println(`                               --workbook "student_roster.xlsx" \`)
	fmt.Println(`                               --file "roster.xlsx"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	return cmd.flagset("get")
}

func (cmd *Get) Execute(args ...any) error {
	ctx, options := parse(args)

	cmd.debug = options.Debug

	// ... check parameters
	if err := cmd.validate(); err != nil {
		return err
	}

	remote, err := cmd.remote(ctx)
	if err != nil {
		return err
	}

	if revision, err := remote.Revision(ctx); err != nil {
		warnf("unable to retrieve revision for %v (%v)", remote.Name(), err)
	} else if cmd.debug {
		debugf("%v  revision:%v  modified:%v", remote.Name(), revision.ID, revision.Modified.Format("2006-01-02 15:04:05"))
	}

	if err := remote.Download(ctx, cmd.file); err != nil {
		return err
	}

	infof("Retrieved %v to file %v", remote.Name(), cmd.file)

	return nil
}
