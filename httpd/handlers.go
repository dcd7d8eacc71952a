package httpd

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/csiga-ovi/checkin-sheets/attendance"
)

type groupsPage struct {
	Groups []attendance.Group
}

type groupPage struct {
	Group    string
	Icon     string
	Date     string
	Closed   bool
	Checked  string
	Students []attendance.Student
}

type syncPage struct {
	Error string
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	s.render(w, "groups.html", groupsPage{
		Groups: s.options.Groups,
	})
}

func (s *Server) group(w http.ResponseWriter, r *http.Request) {
	group := r.PathValue("group")

	s.refresh(r)

	register, ok := s.register(w, group)
	if !ok {
		return
	}

	s.render(w, "group.html", groupPage{
		Group:    group,
		Icon:     attendance.Icon(s.options.Groups, group),
		Date:     register.Date,
		Closed:   register.Column == 0,
		Checked:  r.URL.Query().Get("checked"),
		Students: register.Students,
	})
}

func (s *Server) checkin(w http.ResponseWriter, r *http.Request) {
	group := r.PathValue("group")
	student := strings.TrimSpace(r.PostFormValue("student"))

	if student == "" {
		http.Error(w, "Missing 'student' field.", http.StatusBadRequest)
		return
	}

	s.refresh(r)

	register, ok := s.register(w, group)
	if !ok {
		return
	}

	if register.Column > 0 {
		result, err := s.store.CheckIn(group, s.options.Now(), student)
		if err != nil {
			warnf("check-in %v/%v failed (%v)", group, student, err)
			http.Error(w, "Error updating workbook.", http.StatusInternalServerError)
			return
		}

		switch result {
		case attendance.CheckedIn:
			infof("%v  %v checked in for %v", group, student, register.Date)
		case attendance.AlreadyCheckedIn:
			s.debugf("%v  %v already checked in for %v", group, student, register.Date)
		default:
			warnf("%v  unknown student '%v'", group, student)
		}
	}

	redirect := fmt.Sprintf("/group/%s?checked=%s", url.PathEscape(group), url.QueryEscape(student))

	http.Redirect(w, r, redirect, http.StatusFound)
}

func (s *Server) sync(w http.ResponseWriter, r *http.Request) {
	page := syncPage{}

	if uploaded, err := s.syncer.Sync(r.Context()); err != nil {
		warnf("sync failed (%v)", err)
		page.Error = err.Error()
	} else if !uploaded {
		s.debugf("sync skipped, no local changes")
	}

	s.render(w, "sync.html", page)
}

// register retrieves today's register for the group, writing the error response
// if there isn't one.
func (s *Server) register(w http.ResponseWriter, group string) (*attendance.Register, bool) {
	register, err := s.store.Register(group, s.options.Now())

	switch {
	case err == nil:
		return register, true

	case errors.Is(err, attendance.ErrUnknownGroup):
		http.Error(w, fmt.Sprintf("Group '%s' not found.", group), http.StatusNotFound)

	case errors.Is(err, attendance.ErrNoDateColumn) && s.options.AllowMissingDate:
		return register, true

	case errors.Is(err, attendance.ErrNoDateColumn):
		date := s.options.Now().Format(attendance.DateFormat)
		http.Error(w, fmt.Sprintf("No check-in column found for today (%s).", date), http.StatusBadRequest)

	default:
		warnf("error reading workbook (%v)", err)
		http.Error(w, "Error reading workbook.", http.StatusInternalServerError)
	}

	return nil, false
}

func (s *Server) refresh(r *http.Request) {
	if !s.options.Refresh {
		return
	}

	if refreshed, err := s.syncer.Refresh(r.Context()); err != nil {
		warnf("refresh failed (%v)", err)
	} else if refreshed {
		s.debugf("workbook refreshed from Google Drive")
	}
}
