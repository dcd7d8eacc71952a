package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	uhppoted "github.com/uhppoted/uhppoted-lib/command"

	"github.com/csiga-ovi/checkin-sheets/commands"
)

var cli = []uhppoted.Command{
	&commands.VersionCmd,
	&commands.RunCmd,
	&commands.GetCmd,
	&commands.PutCmd,
	&commands.ExportCmd,
	&commands.AuthoriseCmd,
}

var options = commands.Options{
	Debug: false,
}

var env = ".env"

var help = uhppoted.NewHelp(commands.APP, cli, nil)

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.StringVar(&env, "env", env, "Environment file with e.g. GOOGLE_CREDENTIALS and PORT")
	flag.Parse()

	if err := godotenv.Load(env); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("%-5s could not load environment file %v (%v)", "WARN", env, err)
	}

	cmd, err := uhppoted.Parse(cli, nil, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if cmd == nil {
		help.Execute(ctx)
		os.Exit(1)
	}

	if err = cmd.Execute(ctx, &options); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}
