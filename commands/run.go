package commands

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/csiga-ovi/checkin-sheets/attendance"
	"github.com/csiga-ovi/checkin-sheets/gdrive"
	"github.com/csiga-ovi/checkin-sheets/httpd"
)

var RunCmd = Run{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
		workbook:    DEFAULT_WORKBOOK,
		file:        DEFAULT_FILE,
		debug:       false,
	},

	bind:             "",
	interval:         15 * time.Minute,
	groups:           "",
	refresh:          false,
	allowMissingDate: false,
	connections:      64,
}

type Run struct {
	command
	bind             string
	interval         time.Duration
	groups           string
	refresh          bool
	allowMissingDate bool
	connections      int
}

func (cmd *Run) Name() string {
	return "run"
}

func (cmd *Run) Description() string {
	return "Downloads the attendance workbook from Google Drive and runs the check-in web server"
}

func (cmd *Run) Usage() string {
	return "--workbook <name> [--bind <address>] [--interval <duration>]"
}

func (cmd *Run) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] run [options] --workbook <name>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads the attendance workbook from Google Drive and runs the check-in web server,")
	fmt.Println("  uploading check-ins back to Google Drive periodically and on request (/sync)")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    checkin-sheets run --workbook "student_roster.xlsx"`)
	fmt.Println()
	fmt.Println(`    GOOGLE_CREDENTIALS="$(cat service-account.json)" checkin-sheets --debug run --workbook "student_roster.xlsx" \`)
	fmt.Println(`                                                                             --bind ":8080" \`)
	fmt.Println(`                                                                             --groups "groups.tsv" \`)
	fmt.Println(`                                                                             --interval 5m`)
	fmt.Println()
}

func (cmd *Run) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("run")

	flagset.StringVar(&cmd.bind, "bind", cmd.bind, "HTTP server address. Defaults to :$PORT or :5000")
	flagset.DurationVar(&cmd.interval, "interval", cmd.interval, "Interval between uploads of local changes to Google Drive")
	flagset.StringVar(&cmd.groups, "groups", cmd.groups, "TSV file with the group names and icons. Defaults to the built-in groups")
	flagset.BoolVar(&cmd.refresh, "refresh", cmd.refresh, "Downloads the workbook before each request if it has changed in Google Drive")
	flagset.BoolVar(&cmd.allowMissingDate, "allow-missing-date", cmd.allowMissingDate, "Displays a read-only student list for groups without a check-in column for today")
	flagset.IntVar(&cmd.connections, "connections", cmd.connections, "Maximum number of concurrent HTTP connections (0 is unlimited)")

	return flagset
}

func (cmd *Run) Execute(args ...any) error {
	ctx, options := parse(args)

	cmd.debug = options.Debug

	// ... check parameters
	if err := cmd.validate(); err != nil {
		return err
	}

	if cmd.interval <= 0 {
		return fmt.Errorf("invalid --interval (%v)", cmd.interval)
	}

	bind := cmd.bind
	if strings.TrimSpace(bind) == "" {
		bind = ":" + envOr("PORT", "5000")
	}

	groups, err := cmd.loadGroups()
	if err != nil {
		return err
	}

	// ... initialise workbook
	remote, err := cmd.remote(ctx)
	if err != nil {
		return err
	}

	store := attendance.NewStore(cmd.file)
	syncer := gdrive.NewSyncer(remote, store)
	store.OnChange = syncer.MarkDirty

	if err := syncer.Fetch(ctx); err != nil {
		return fmt.Errorf("unable to download workbook (%w)", err)
	}

	infof("Downloaded %v to %v", remote.Name(), cmd.file)

	worksheets, err := store.Groups()
	if err != nil {
		return err
	}

	for _, g := range groups {
		if !contains(worksheets, g.Name) {
			warnf("no worksheet for group '%v'", g.Name)
		}
	}

	// ... run
	server, err := httpd.NewServer(store, syncer, httpd.Options{
		Groups:           groups,
		AllowMissingDate: cmd.allowMissingDate,
		Refresh:          cmd.refresh,
		MaxConnections:   cmd.connections,
		Debug:            cmd.debug,
	})

	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		syncer.Run(ctx, cmd.interval)
	}()

	err = server.ListenAndServe(ctx, bind)

	cancel()
	wg.Wait()

	return err
}

func (cmd *Run) loadGroups() ([]attendance.Group, error) {
	if strings.TrimSpace(cmd.groups) == "" {
		return attendance.DefaultGroups, nil
	}

	f, err := os.Open(cmd.groups)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	groups, err := attendance.LoadGroups(f)
	if err != nil {
		return nil, fmt.Errorf("invalid groups file %v (%w)", cmd.groups, err)
	}

	return groups, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}

	return false
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
