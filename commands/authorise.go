package commands

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var AuthoriseCmd = Authorise{
	workdir:     DEFAULT_WORKDIR,
	credentials: DEFAULT_CREDENTIALS,
	scope:       "drive",
	debug:       false,
}

type Authorise struct {
	workdir     string
	credentials string
	scope       string
	debug       bool
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises checkin-sheets to access Google Drive or Google Sheets with OAuth2 client credentials"
}

func (cmd *Authorise) Usage() string {
	return "--credentials <file> [--scope drive|sheets]"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] authorise [options] --credentials <file>\n", APP)
	fmt.Println()
	fmt.Println("  Authorises checkin-sheets to access Google Drive (or Google Sheets) and caches the OAuth2")
	fmt.Println("  tokens in the working directory. Not required for service account credentials.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    checkin-sheets authorise --credentials "credentials.json"`)
	fmt.Println(`    checkin-sheets authorise --credentials "credentials.json" --scope sheets`)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("authorise", flag.ExitOnError)

	flagset.StringVar(&cmd.workdir, "workdir", cmd.workdir, "Directory for working files (tokens, etc)")
	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the 'credentials.json' file")
	flagset.StringVar(&cmd.scope, "scope", cmd.scope, "Access scope ('drive' or 'sheets')")

	return flagset
}

func (cmd *Authorise) Execute(args ...any) error {
	ctx, options := parse(args)

	cmd.debug = options.Debug

	// ... check parameters
	if strings.TrimSpace(cmd.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	var scope string
	switch strings.ToLower(strings.TrimSpace(cmd.scope)) {
	case "drive":
		scope = DRIVE
	case "sheets":
		scope = SHEETS
	default:
		return fmt.Errorf("invalid --scope '%v' - expected 'drive' or 'sheets'", cmd.scope)
	}

	b, err := os.ReadFile(cmd.credentials)
	if err != nil {
		return err
	}

	config, err := google.ConfigFromJSON(b, scope)
	if err != nil {
		return fmt.Errorf("invalid OAuth2 client credentials (%w)", err)
	}

	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code: \n%v\n", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return fmt.Errorf("unable to read authorization code (%w)", err)
	}

	token, err := config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("unable to retrieve token from web (%w)", err)
	}

	tokens := tokensFile(cmd.credentials, scope, cmd.workdir)
	if err := saveToken(tokens, token); err != nil {
		return err
	}

	infof("Saved OAuth2 tokens to %v", tokens)

	return nil
}
