package gdrive

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type stub struct {
	revision  string
	downloads int
	uploads   int
	err       error
}

func (s *stub) Download(ctx context.Context, path string) error {
	s.downloads++
	return nil
}

func (s *stub) Upload(ctx context.Context, path string) error {
	if s.err != nil {
		return s.err
	}

	s.uploads++
	return nil
}

func (s *stub) Revision(ctx context.Context) (*Revision, error) {
	return &Revision{
		ID:       s.revision,
		Modified: time.Date(2024, time.June, 5, 10, 30, 0, 0, time.UTC),
	}, nil
}

type file struct {
	mu sync.RWMutex
}

func (f *file) View(g func(string) error) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return g("student_roster.xlsx")
}

func (f *file) Replace(g func(string) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return g("student_roster.xlsx")
}

func TestSyncSkipsUploadWhenClean(t *testing.T) {
	remote := stub{revision: "r1"}
	syncer := NewSyncer(&remote, &file{})

	uploaded, err := syncer.Sync(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error returned from Sync (%v)", err)
	}

	if uploaded || remote.uploads != 0 {
		t.Errorf("Expected upload to be skipped - uploaded:%v, uploads:%v", uploaded, remote.uploads)
	}
}

func TestSyncUploadsOnceWhenDirty(t *testing.T) {
	remote := stub{revision: "r1"}
	syncer := NewSyncer(&remote, &file{})

	syncer.MarkDirty()

	for i := 0; i < 3; i++ {
		if _, err := syncer.Sync(context.Background()); err != nil {
			t.Fatalf("Unexpected error returned from Sync (%v)", err)
		}
	}

	if remote.uploads != 1 {
		t.Errorf("Incorrect number of uploads - expected:%v, got:%v", 1, remote.uploads)
	}

	if syncer.Dirty() {
		t.Errorf("Expected dirty flag to be cleared after upload")
	}
}

func TestSyncKeepsDirtyFlagOnError(t *testing.T) {
	remote := stub{revision: "r1", err: errors.New("quota exceeded")}
	syncer := NewSyncer(&remote, &file{})

	syncer.MarkDirty()

	if _, err := syncer.Sync(context.Background()); err == nil {
		t.Fatalf("Expected error from Sync, got %v", err)
	}

	if !syncer.Dirty() {
		t.Errorf("Expected dirty flag to be set after failed upload")
	}

	remote.err = nil
	if uploaded, err := syncer.Sync(context.Background()); err != nil || !uploaded {
		t.Errorf("Expected retry to upload - uploaded:%v, error:%v", uploaded, err)
	}
}

func TestFetch(t *testing.T) {
	remote := stub{revision: "r1"}
	syncer := NewSyncer(&remote, &file{})

	syncer.MarkDirty()

	if err := syncer.Fetch(context.Background()); err != nil {
		t.Fatalf("Unexpected error returned from Fetch (%v)", err)
	}

	if remote.downloads != 1 {
		t.Errorf("Incorrect number of downloads - expected:%v, got:%v", 1, remote.downloads)
	}

	if syncer.Dirty() {
		t.Errorf("Expected dirty flag to be cleared after download")
	}
}

func TestRefresh(t *testing.T) {
	remote := stub{revision: "r1"}
	syncer := NewSyncer(&remote, &file{})

	if err := syncer.Fetch(context.Background()); err != nil {
		t.Fatalf("Unexpected error returned from Fetch (%v)", err)
	}

	if refreshed, err := syncer.Refresh(context.Background()); err != nil {
		t.Fatalf("Unexpected error returned from Refresh (%v)", err)
	} else if refreshed {
		t.Errorf("Expected refresh to be skipped for unchanged revision")
	}

	remote.revision = "r2"
	if refreshed, err := syncer.Refresh(context.Background()); err != nil {
		t.Fatalf("Unexpected error returned from Refresh (%v)", err)
	} else if !refreshed {
		t.Errorf("Expected refresh to download new revision")
	}

	if remote.downloads != 2 {
		t.Errorf("Incorrect number of downloads - expected:%v, got:%v", 2, remote.downloads)
	}
}

func TestRefreshDoesNotOverwriteLocalChanges(t *testing.T) {
	remote := stub{revision: "r1"}
	syncer := NewSyncer(&remote, &file{})

	if err := syncer.Fetch(context.Background()); err != nil {
		t.Fatalf("Unexpected error returned from Fetch (%v)", err)
	}

	syncer.MarkDirty()
	remote.revision = "r2"

	if refreshed, err := syncer.Refresh(context.Background()); err != nil {
		t.Fatalf("Unexpected error returned from Refresh (%v)", err)
	} else if refreshed {
		t.Errorf("Expected refresh to be skipped for dirty local copy")
	}

	if remote.downloads != 1 {
		t.Errorf("Incorrect number of downloads - expected:%v, got:%v", 1, remote.downloads)
	}
}

func TestRunUploadsOutstandingChangesOnExit(t *testing.T) {
	remote := stub{revision: "r1"}
	syncer := NewSyncer(&remote, &file{})
	ctx, cancel := context.WithCancel(context.Background())

	syncer.MarkDirty()
	cancel()
	syncer.Run(ctx, time.Hour)

	if remote.uploads != 1 {
		t.Errorf("Incorrect number of uploads - expected:%v, got:%v", 1, remote.uploads)
	}
}

func TestEscape(t *testing.T) {
	if v := escape(`Tom's \ roster.xlsx`); v != `Tom\'s \\ roster.xlsx` {
		t.Errorf("Incorrect escaped name - got:%v", v)
	}
}
