package httpd

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/netutil"

	"github.com/csiga-ovi/checkin-sheets/attendance"
	"github.com/csiga-ovi/checkin-sheets/httpd/html"
)

type Store interface {
	Register(group string, date time.Time) (*attendance.Register, error)
	CheckIn(group string, date time.Time, student string) (attendance.Result, error)
}

type Syncer interface {
	Sync(ctx context.Context) (bool, error)
	Refresh(ctx context.Context) (bool, error)
}

type Options struct {
	Groups []attendance.Group

	// AllowMissingDate renders a read-only student grid for a group without a
	// column for today, instead of failing the request.
	AllowMissingDate bool

	// Refresh re-downloads the workbook before each group request if the remote
	// copy has changed.
	Refresh bool

	// MaxConnections limits the number of concurrent connections (0 is unlimited).
	MaxConnections int

	Now   func() time.Time
	Debug bool
}

type Server struct {
	store   Store
	syncer  Syncer
	options Options
	pages   *template.Template
}

func NewServer(store Store, syncer Syncer, options Options) (*Server, error) {
	pages, err := template.ParseFS(html.HTML, "*.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing page templates (%w)", err)
	}

	if options.Now == nil {
		options.Now = time.Now
	}

	if options.Groups == nil {
		options.Groups = attendance.DefaultGroups
	}

	return &Server{
		store:   store,
		syncer:  syncer,
		options: options,
		pages:   pages,
	}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.home)
	mux.HandleFunc("GET /group/{group}", s.group)
	mux.HandleFunc("POST /group/{group}", s.checkin)
	mux.HandleFunc("GET /sync", s.sync)

	return mux
}

// ListenAndServe runs the HTTP server until the context is cancelled and then shuts it
// down, allowing in-flight requests a few seconds to complete.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	if s.options.MaxConnections > 0 {
		listener = netutil.LimitListener(listener, s.options.MaxConnections)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errs := make(chan error, 1)

	go func() {
		errs <- srv.Serve(listener)
	}()

	infof("listening on %v", listener.Addr())

	select {
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		return srv.Shutdown(shutdown)

	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.pages.ExecuteTemplate(w, name, data); err != nil {
		warnf("error rendering %v (%v)", name, err)
	}
}

func (s *Server) debugf(format string, args ...any) {
	if s.options.Debug {
		log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
	}
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}
