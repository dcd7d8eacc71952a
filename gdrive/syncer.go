package gdrive

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

type Remote interface {
	Download(ctx context.Context, path string) error
	Upload(ctx context.Context, path string) error
	Revision(ctx context.Context) (*Revision, error)
}

// File is the local copy of the remote file. View holds off writers and Replace holds
// off everybody.
type File interface {
	View(func(path string) error) error
	Replace(func(path string) error) error
}

// Syncer keeps a local file and a remote file in step. Local changes set the dirty flag
// and are only uploaded while it is set.
type Syncer struct {
	remote   Remote
	file     File
	dirty    atomic.Bool
	revision string
	mu       sync.Mutex
}

func NewSyncer(remote Remote, file File) *Syncer {
	return &Syncer{
		remote: remote,
		file:   file,
	}
}

func (s *Syncer) MarkDirty() {
	s.dirty.Store(true)
}

func (s *Syncer) Dirty() bool {
	return s.dirty.Load()
}

// Fetch unconditionally downloads the remote file, discarding any local changes.
func (s *Syncer) Fetch(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	revision, err := s.remote.Revision(ctx)
	if err != nil {
		return fmt.Errorf("unable to retrieve file revision (%w)", err)
	}

	err = s.file.Replace(func(path string) error {
		if err := s.remote.Download(ctx, path); err != nil {
			return err
		}

		s.dirty.Store(false)
		return nil
	})

	if err != nil {
		return err
	}

	s.revision = revision.ID
	info(fmt.Sprintf("downloaded revision %v (%v)", revision.ID, revision.Modified.Format("2006-01-02 15:04:05")))

	return nil
}

// Refresh downloads the remote file if it has changed since the last download or
// upload. A dirty local copy is never overwritten.
func (s *Syncer) Refresh(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirty.Load() {
		return false, nil
	}

	revision, err := s.remote.Revision(ctx)
	if err != nil {
		return false, fmt.Errorf("unable to retrieve file revision (%w)", err)
	} else if revision.ID == s.revision {
		return false, nil
	}

	downloaded := false
	err = s.file.Replace(func(path string) error {
		if s.dirty.Load() {
			return nil
		}

		if err := s.remote.Download(ctx, path); err != nil {
			return err
		}

		downloaded = true
		return nil
	})

	if err != nil {
		return false, err
	}

	if downloaded {
		s.revision = revision.ID
		info(fmt.Sprintf("refreshed to revision %v", revision.ID))
	}

	return downloaded, nil
}

// Sync uploads the local file if it has changed since the last upload. The dirty flag
// is cleared only if the upload succeeded.
func (s *Syncer) Sync(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty.Load() {
		return false, nil
	}

	err := s.file.View(func(path string) error {
		if err := s.remote.Upload(ctx, path); err != nil {
			return err
		}

		s.dirty.Store(false)
		return nil
	})

	if err != nil {
		return false, err
	}

	if revision, err := s.remote.Revision(ctx); err != nil {
		warn(fmt.Sprintf("unable to retrieve revision after upload (%v)", err))
	} else {
		s.revision = revision.ID
	}

	info("uploaded local changes")

	return true, nil
}

// Run syncs on every tick of interval until the context is cancelled, after which it
// makes one last attempt to upload outstanding changes.
func (s *Syncer) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			final, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
			defer cancel()

			if _, err := s.Sync(final); err != nil {
				warn(fmt.Sprintf("final sync failed (%v)", err))
			}
			return

		case <-ticker.C:
			if _, err := s.Sync(ctx); err != nil {
				warn(fmt.Sprintf("periodic sync failed (%v)", err))
			}
		}
	}
}

func info(msg string) {
	log.Printf("%-5s %s", "INFO", msg)
}

func warn(msg string) {
	log.Printf("%-5s %s", "WARN", msg)
}
