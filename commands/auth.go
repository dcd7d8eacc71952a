package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	DRIVE  = drive.DriveScope
	SHEETS = sheets.SpreadsheetsScope

	ENV_CREDENTIALS = "GOOGLE_CREDENTIALS"
)

// authorize returns the client option for the credentials in the GOOGLE_CREDENTIALS
// environment variable or, failing that, the credentials file. Service account and
// authorized user credentials are used directly; OAuth2 client credentials need the
// tokens cached by the 'authorise' command.
func authorize(ctx context.Context, credentials, scope, workdir string) (option.ClientOption, error) {
	b, err := readCredentials(credentials)
	if err != nil {
		return nil, err
	}

	var header struct {
		Type string `json:"type"`
	}

	if err := json.Unmarshal(b, &header); err != nil {
		return nil, fmt.Errorf("invalid credentials (%w)", err)
	}

	switch header.Type {
	case "service_account", "authorized_user":
		creds, err := google.CredentialsFromJSON(ctx, b, scope)
		if err != nil {
			return nil, err
		}

		return option.WithCredentials(creds), nil

	default:
		config, err := google.ConfigFromJSON(b, scope)
		if err != nil {
			return nil, err
		}

		tokens := tokensFile(credentials, scope, workdir)
		token, err := tokenFromFile(tokens)
		if err != nil {
			return nil, fmt.Errorf("no OAuth2 tokens in %v - run '%v authorise' first (%w)", tokens, APP, err)
		}

		return option.WithHTTPClient(config.Client(ctx, token)), nil
	}
}

func readCredentials(credentials string) ([]byte, error) {
	if v := strings.TrimSpace(os.Getenv(ENV_CREDENTIALS)); v != "" {
		return []byte(v), nil
	}

	if strings.TrimSpace(credentials) == "" {
		return nil, fmt.Errorf("missing credentials - set %v or use --credentials", ENV_CREDENTIALS)
	}

	return os.ReadFile(credentials)
}

func tokensFile(credentials, scope, workdir string) string {
	_, file := filepath.Split(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))
	if name == "" {
		name = "credentials"
	}

	switch {
	case strings.HasPrefix(scope, SHEETS):
		return filepath.Join(workdir, ".google", fmt.Sprintf("%s.sheets", name))

	case strings.HasPrefix(scope, DRIVE):
		return filepath.Join(workdir, ".google", fmt.Sprintf("%s.drive", name))

	default:
		return filepath.Join(workdir, ".google", fmt.Sprintf("%s.tokens", name))
	}
}

// Retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

// Saves a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth2 token (%w)", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
